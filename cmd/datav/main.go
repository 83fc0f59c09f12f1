package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"datav/internal/config"
)

//nolint:gochecknoglobals // Cobra flag bindings live at package scope.
var (
	releaseVersion = "dev"

	verbose    bool
	logFile    string
	configPath string

	rootCmd = &cobra.Command{
		Use:   "datav",
		Short: "Animated dashboard widgets for the terminal.",
		Long: `datav renders scroll boards, ranking boards, rings, ponds, fly-lines and
decorations in the terminal. The demo gallery feeds them with live samples of
this machine; board shows a single scroll board from a YAML file or a DuckDB
query; trace prints carousel frames as plain text.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
)

//nolint:gochecknoinits // Cobra command wiring.
func init() {
	// stdout belongs to the TUI and to trace output
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file while a TUI is running")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Dashboard YAML file")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(traceCmd)

	rootCmd.Version = releaseVersion
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func loadDashboard() (config.Dashboard, error) {
	d, err := config.Load(configPath)
	if err != nil {
		return config.Dashboard{}, err
	}
	return *d, nil
}

// redirectLogs points logrus at --log-file, or discards it, while a TUI owns
// the terminal. The returned func restores the previous output.
func redirectLogs() (func(), error) {
	logger := logrus.StandardLogger()
	prev := logger.Out

	var out io.Writer = io.Discard
	var file *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		out = f
	}
	logger.SetOutput(out)

	return func() {
		logger.SetOutput(prev)
		if file != nil {
			_ = file.Close()
		}
	}, nil
}
