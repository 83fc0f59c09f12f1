package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"datav/internal/collector"
	"datav/internal/feed"
	"datav/internal/source"
	"datav/ui/tui"
)

//nolint:gochecknoglobals // Cobra flag bindings live at package scope.
var (
	dbPath    string
	retention int

	demoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Run the widget gallery on live samples of this machine",
		Long: `demo opens the gallery: a menu of widget pages fed every refresh period with
CPU, memory, disk, load and process samples. With --db every sample is also
recorded in a DuckDB file by a background recorder that pushes each sample to
the gallery. The CPU history chart starts from what the file already holds and
the ranking board shows per-core averages over the recorded history.`,
		Args: cobra.NoArgs,
		RunE: runDemo,
	}
)

//nolint:gochecknoinits // Cobra command wiring.
func init() {
	demoCmd.Flags().StringVar(&dbPath, "db", "", "Record sample history in this DuckDB file")
	demoCmd.Flags().IntVar(&retention, "retention", 600, "Samples kept in the history file, 0 keeps all")
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadDashboard()
	if err != nil {
		return err
	}

	collCfg := collector.DefaultCollectorConfig().WithPollInterval(cfg.Refresh)
	if err := collCfg.Validate(); err != nil {
		return fmt.Errorf("collector config: %w", err)
	}
	coll := collector.NewSystemCollector(collCfg)

	var opts []tui.Option
	var store *source.Store
	if dbPath != "" {
		store, err = openHistory(cmd.Context(), dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		series, err := store.Series(cmd.Context(), source.MetricCPU, cfg.LineChart.MaxPoints)
		if err != nil {
			logrus.WithError(err).Warn("could not read CPU history")
		} else {
			opts = append(opts, tui.WithHistory(series))
		}
	}

	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	if store == nil {
		rec, err := source.NewRecorder(coll, nil,
			source.WithInterval(cfg.Refresh),
			source.WithRecorderLogger(logrus.StandardLogger()),
		)
		if err != nil {
			return err
		}
		return tui.Start(rec, cfg, opts...)
	}

	prog := tui.NewProgram(nil, cfg, opts...)
	rec, err := startRecording(cmd.Context(), coll, store, cfg.Refresh, prog.Send)
	if err != nil {
		return err
	}
	defer rec.Stop()
	return prog.Run()
}

// startRecording runs a recorder that stores every sample and hands it to
// send with the ranking replaced by per-core averages from the store.
func startRecording(
	ctx context.Context,
	provider collector.StatsProvider,
	store *source.Store,
	interval time.Duration,
	send func(tui.SampleMsg),
) (*source.Recorder, error) {
	rec, err := source.NewRecorder(provider, store,
		source.WithInterval(interval),
		source.WithRetention(retention),
		source.WithRecorderLogger(logrus.StandardLogger()),
		source.WithSampleHandler(func(snap feed.Snapshot) {
			send(tui.SampleMsg{Snapshot: withCoreAverages(ctx, store, snap)})
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := rec.Start(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

func withCoreAverages(ctx context.Context, store *source.Store, snap feed.Snapshot) feed.Snapshot {
	cores, err := store.CoreAverages(ctx)
	if err != nil {
		logrus.WithError(err).Warn("could not read core averages")
		return snap
	}
	if len(cores) > 0 {
		snap.Cores = cores
	}
	return snap
}

func openHistory(ctx context.Context, path string) (*source.Store, error) {
	store, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return store, nil
}
