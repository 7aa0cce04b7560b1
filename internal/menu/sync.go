package menu

import (
	"context"
	"errors"
	"fmt"
	"log"

	"codeberg.org/snonux/selectrans/internal/history"
	"codeberg.org/snonux/selectrans/internal/locale"
	"codeberg.org/snonux/selectrans/internal/settings"
)

// ErrStopped is returned by Rebuild after Close.
var ErrStopped = errors.New("menu synchronizer stopped")

// Host is the context menu owner.
type Host interface {
	// RemoveAll deletes every item.
	RemoveAll(ctx context.Context) error

	// Create adds one item. Creating an existing id fails.
	Create(ctx context.Context, item Item) error
}

// Logger receives non-fatal failures.
type Logger interface {
	Printf(format string, v ...any)
}

// Config configures a Synchronizer.
type Config struct {
	// RankLimit caps the number of language items; <= 0 means no cap.
	RankLimit int

	// Labels renders item titles. Defaults to English.
	Labels *locale.Labels

	Logger Logger

	// OnRebuild, when set, is called on the worker after every rebuild
	// with its error.
	OnRebuild func(err error)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RankLimit: history.DefaultRankLimit,
		Labels:    locale.New(""),
		Logger:    log.Default(),
	}
}

// queueSize bounds pending requests. Requests beyond it are dropped by
// ScheduleRebuild since a pending rebuild will see the latest state anyway.
const queueSize = 32

type request struct {
	done chan error
}

// Synchronizer rebuilds the menu from the settings store. All rebuilds
// run on one goroutine; requests queued while a rebuild runs are served
// by a single follow-up rebuild that reads the settings when it starts.
type Synchronizer struct {
	store  settings.Store
	host   Host
	config *Config

	reqs    chan request
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewSynchronizer starts a synchronizer. It stops when ctx is done or
// Close is called.
func NewSynchronizer(ctx context.Context, store settings.Store, host Host, config *Config) *Synchronizer {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Labels == nil {
		config.Labels = locale.New("")
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	syncCtx, cancel := context.WithCancel(ctx)
	s := &Synchronizer{
		store:   store,
		host:    host,
		config:  config,
		reqs:    make(chan request, queueSize),
		ctx:     syncCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

// ScheduleRebuild queues a rebuild and returns immediately.
func (s *Synchronizer) ScheduleRebuild() {
	select {
	case s.reqs <- request{}:
	case <-s.ctx.Done():
	default:
	}
}

// Rebuild queues a rebuild and waits for it to finish.
func (s *Synchronizer) Rebuild(ctx context.Context) error {
	req := request{done: make(chan error, 1)}

	select {
	case s.reqs <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrStopped
	}

	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrStopped
	}
}

// Close stops the worker and waits for a running rebuild to finish.
func (s *Synchronizer) Close() {
	s.cancel()
	<-s.stopped
}

func (s *Synchronizer) run() {
	defer close(s.stopped)

	for {
		select {
		case <-s.ctx.Done():
			return
		case req := <-s.reqs:
			waiters := s.drain(req)
			err := s.rebuild(s.ctx)
			if s.config.OnRebuild != nil {
				s.config.OnRebuild(err)
			}
			for _, w := range waiters {
				w <- err
			}
		}
	}
}

// drain collects every request already queued so one rebuild serves them.
func (s *Synchronizer) drain(first request) []chan error {
	var waiters []chan error
	if first.done != nil {
		waiters = append(waiters, first.done)
	}
	for {
		select {
		case req := <-s.reqs:
			if req.done != nil {
				waiters = append(waiters, req.done)
			}
		default:
			return waiters
		}
	}
}

func (s *Synchronizer) rebuild(ctx context.Context) error {
	st, err := settings.Load(ctx, s.store)
	if err != nil {
		s.config.Logger.Printf("menu rebuild skipped: %v", err)
		return err
	}

	ranked := st.TargetLanguages
	if entries, err := settings.LoadHistory(ctx, s.store); err != nil {
		s.config.Logger.Printf("menu: ignoring history: %v", err)
	} else {
		ranked = history.Rank(entries, st.TargetLanguages, s.config.RankLimit)
	}
	items := Build(st, ranked, s.config.Labels)

	if err := s.host.RemoveAll(ctx); err != nil {
		s.config.Logger.Printf("menu rebuild aborted: %v", err)
		return fmt.Errorf("failed to remove menu items: %w", err)
	}
	for _, item := range items {
		if err := s.host.Create(ctx, item); err != nil {
			s.config.Logger.Printf("menu: failed to create %s: %v", item.ID, err)
		}
	}
	return nil
}
