package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"datav/internal/collector"
	"datav/internal/feed"
)

const (
	defaultPollInterval = time.Second
	defaultRetention    = 600
)

// Recorder orchestrates the sample pipeline: provider -> feed -> store.
type Recorder struct {
	provider  collector.StatsProvider
	store     *Store
	interval  time.Duration
	retention int
	onSample  func(feed.Snapshot)
	log       logrus.FieldLogger

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithInterval sets the polling period.
func WithInterval(d time.Duration) RecorderOption {
	return func(r *Recorder) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithRetention caps the number of stored samples. Zero keeps everything.
func WithRetention(n int) RecorderOption {
	return func(r *Recorder) {
		if n >= 0 {
			r.retention = n
		}
	}
}

// WithSampleHandler is called with every snapshot after it was stored.
func WithSampleHandler(fn func(feed.Snapshot)) RecorderOption {
	return func(r *Recorder) { r.onSample = fn }
}

func WithRecorderLogger(l logrus.FieldLogger) RecorderOption {
	return func(r *Recorder) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRecorder creates a recorder. The store may be nil, in which case
// snapshots are only handed to the sample handler.
func NewRecorder(p collector.StatsProvider, s *Store, opts ...RecorderOption) (*Recorder, error) {
	if p == nil {
		return nil, errors.New("stats provider is required")
	}
	r := &Recorder{
		provider:  p,
		store:     s,
		interval:  defaultPollInterval,
		retention: defaultRetention,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.log = r.log.WithField("component", "recorder")
	return r, nil
}

// Start begins the periodic collection loop.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return errors.New("recorder already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true
	r.wg.Add(1)
	r.mu.Unlock()

	go r.loop(ctx)
	return nil
}

// Stop cancels the loop and waits for an in-flight pull to finish.
func (r *Recorder) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.running = false
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}

// Running reports whether the loop is active.
func (r *Recorder) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// PullOnce executes a single collection cycle immediately.
func (r *Recorder) PullOnce(ctx context.Context) (feed.Snapshot, error) {
	return r.execute(ctx)
}

func (r *Recorder) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.execute(ctx); err != nil && ctx.Err() == nil {
				r.log.WithError(err).Warn("sample pull failed")
			}
		}
	}
}

func (r *Recorder) execute(ctx context.Context) (feed.Snapshot, error) {
	stats, err := r.provider.GetRawMetrics(ctx)
	if err != nil {
		return feed.Snapshot{}, fmt.Errorf("collect: %w", err)
	}
	if stats == nil {
		return feed.Snapshot{}, errors.New("collect: provider returned no stats")
	}

	snap := feed.Build(*stats)

	if r.store != nil {
		if err := r.store.InsertSample(ctx, *stats, snap.Status); err != nil {
			return snap, fmt.Errorf("persist sample: %w", err)
		}
		if err := r.store.Prune(ctx, r.retention); err != nil {
			return snap, fmt.Errorf("prune history: %w", err)
		}
	}

	r.log.WithFields(logrus.Fields{
		"cpu":    stats.CPUUsage,
		"ram":    stats.RAMUsage,
		"status": snap.Status,
	}).Debug("sample recorded")

	if r.onSample != nil {
		r.onSample(snap)
	}
	return snap, nil
}
