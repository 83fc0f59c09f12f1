package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"datav/internal/carousel"
	"datav/internal/config"
	"datav/internal/cotask"
	"datav/ui/console"
)

//nolint:gochecknoglobals // Cobra flag bindings live at package scope.
var (
	traceRows     int
	traceDuration time.Duration
	tracePage     bool

	traceCmd = &cobra.Command{
		Use:   "trace",
		Short: "Print scroll board carousel frames as plain text",
		Long: `trace runs the scroll board carousel without a terminal UI and prints every
frame it emits: the advance, the collapse of the rows that scrolled out and the
settled window. Rows come from scroll_board.data in --config, or are generated
when the config has none.`,
		Args: cobra.NoArgs,
		RunE: runTrace,
	}
)

//nolint:gochecknoinits // Cobra command wiring.
func init() {
	traceCmd.Flags().IntVar(&traceRows, "rows", 8, "Generated rows when the config has no data")
	traceCmd.Flags().DurationVarP(&traceDuration, "duration", "d", 10*time.Second, "How long to run")
	traceCmd.Flags().BoolVar(&tracePage, "page", false, "Scroll a whole page per step")
}

func traceData(cfg config.ScrollBoard, n int) ([]string, [][]string) {
	if len(cfg.Data) > 0 {
		return cfg.Header, cfg.Data
	}
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{"row " + strconv.Itoa(i+1), fmt.Sprintf("%.1f", float64((i*37)%100))}
	}
	return []string{"name", "value"}, rows
}

func runTrace(cmd *cobra.Command, _ []string) error {
	cfg, err := loadDashboard()
	if err != nil {
		return err
	}
	header, rows := traceData(cfg.ScrollBoard, traceRows)

	opts := carousel.DefaultOptions()
	opts.RowNum = cfg.ScrollBoard.RowNum
	opts.Cadence = cfg.ScrollBoard.Wait()
	opts.Mode = carousel.Mode(cfg.ScrollBoard.Carousel)
	if tracePage {
		opts.Mode = carousel.Page
	}
	opts.HoverPause = false
	opts.Logger = logrus.WithField("widget", "trace")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, traceDuration)
	defer cancel()

	sched, err := runCarousel(ctx, opts, header, rows, cmd.OutOrStdout())
	if sched != nil {
		logrus.WithField("cycles", sched.Cycles()).Debug("trace finished")
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runCarousel prints carousel frames until ctx ends. The scheduler is
// destroyed on the loop before the loop stops, so no timer outlives it.
func runCarousel(
	ctx context.Context,
	opts carousel.Options,
	header []string,
	rows [][]string,
	out io.Writer,
) (*carousel.Scheduler[[]string], error) {
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()

	loop := cotask.NewLoop()
	var sched *carousel.Scheduler[[]string]
	loop.Post(func() {
		sched = carousel.New(loop, opts, func(f carousel.Frame[[]string]) {
			console.Print(out, header, f)
		})
		sched.SetData(rows)
	})
	go func() {
		select {
		case <-ctx.Done():
		case <-loopCtx.Done():
			return
		}
		loop.Post(func() {
			if sched != nil {
				sched.Destroy()
			}
			stopLoop()
		})
	}()

	err := loop.Run(loopCtx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return sched, ctxErr
	}
	return sched, err
}
