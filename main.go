package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"datav/internal/collector"
	"datav/internal/config"
	"datav/internal/source"
	"datav/ui/tui"
)

func main() {
	// Use the interface to allow for different collector implementations
	var provider collector.StatsProvider = collector.NewSystemCollector(collector.DefaultCollectorConfig())

	rec, err := source.NewRecorder(provider, nil)
	if err != nil {
		fmt.Printf("Error creating recorder: %v\n", err)
		os.Exit(1)
	}

	// the alt screen owns the terminal
	logrus.SetOutput(io.Discard)

	if err := tui.Start(rec, config.Defaults()); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
