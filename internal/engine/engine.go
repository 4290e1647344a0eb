// Package engine runs a session on a single goroutine. Transport goroutines
// submit work through Do and Post; the geofence tick runs on the same loop.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/zonehunt/internal/dependencies/clock"
	"github.com/mcoot/zonehunt/internal/dependencies/random"
	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/services/session"
)

const inboxSize = 256

// Config holds engine settings
type Config struct {
	// TickInterval is the geofence cadence
	TickInterval time.Duration
	Session      session.Config
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() Config {
	return Config{
		TickInterval: time.Second,
		Session:      session.DefaultConfig(),
	}
}

type command struct {
	fn   func(*session.Session) error
	done chan error // nil for fire-and-forget
}

// Engine owns a Session and serialises every mutation through its inbox
type Engine struct {
	session      *session.Session
	inbox        chan command
	tickInterval time.Duration
	logger       *slog.Logger

	quit     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// New creates an engine and its session. Call Run to start processing.
func New(cfg Config, clk clock.Clock, rnd random.Random, publisher session.Publisher, logger *slog.Logger, opts ...session.Option) *Engine {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	e := &Engine{
		inbox:        make(chan command, inboxSize),
		tickInterval: cfg.TickInterval,
		logger:       logger.With(slog.String("component", "engine")),
		quit:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	opts = append([]session.Option{session.WithDispatch(e.dispatch)}, opts...)
	e.session = session.New(cfg.Session, clk, rnd, publisher, logger, opts...)
	return e
}

// Run processes commands and ticks until ctx is cancelled or Stop is called
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()
	defer close(e.stopped)
	defer e.session.Stop()

	e.logger.Info("engine started", slog.Duration("tick_interval", e.tickInterval))
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopped", slog.String("reason", ctx.Err().Error()))
			return
		case <-e.quit:
			e.logger.Info("engine stopped")
			return
		case cmd := <-e.inbox:
			e.execute(cmd)
		case <-ticker.C:
			e.execute(command{fn: func(s *session.Session) error {
				s.Tick()
				return nil
			}})
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.quit)
	})
}

// Done is closed once Run has returned
func (e *Engine) Done() <-chan struct{} {
	return e.stopped
}

// Do runs fn on the engine goroutine and waits for its result
func (e *Engine) Do(ctx context.Context, fn func(*session.Session) error) error {
	if e.isStopped() {
		return model.ErrEngineStopped
	}
	done := make(chan error, 1)
	select {
	case e.inbox <- command{fn: fn, done: done}:
	case <-e.quit:
		return model.ErrEngineStopped
	case <-e.stopped:
		return model.ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-e.stopped:
		return model.ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post queues fn without waiting. It reports false if the engine has stopped.
func (e *Engine) Post(fn func(*session.Session)) bool {
	if e.isStopped() {
		return false
	}
	select {
	case e.inbox <- command{fn: func(s *session.Session) error {
		fn(s)
		return nil
	}}:
		return true
	case <-e.quit:
		return false
	case <-e.stopped:
		return false
	}
}

func (e *Engine) isStopped() bool {
	select {
	case <-e.quit:
		return true
	case <-e.stopped:
		return true
	default:
		return false
	}
}

// dispatch brings timer callbacks back onto the engine goroutine
func (e *Engine) dispatch(f func()) {
	e.Post(func(*session.Session) { f() })
}

func (e *Engine) execute(cmd command) {
	err := e.safeRun(cmd.fn)
	if cmd.done != nil {
		cmd.done <- err
	}
}

// safeRun keeps a panicking command from taking the loop down
func (e *Engine) safeRun(fn func(*session.Session) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic in engine command", slog.Any("panic", r))
			err = fmt.Errorf("engine command panicked: %v", r)
		}
	}()
	return fn(e.session)
}
