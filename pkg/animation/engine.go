package animation

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledly-go/ledly/pkg/capability"
	"github.com/ledly-go/ledly/pkg/log"
)

const breathingName = "breathing"

// Sleeper pauses between animation steps.
type Sleeper interface {
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep implements Sleeper.
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Config configures an Engine.
type Config struct {
	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger

	// EventLogger receives animation progress events. Nil disables capture.
	EventLogger log.Logger

	// SessionID tags captured events.
	SessionID string

	// Sleeper pauses between steps. Defaults to a context-aware timer.
	Sleeper Sleeper
}

// Engine runs software animations.
type Engine struct {
	logger    *slog.Logger
	events    log.Logger
	sessionID string
	sleeper   Sleeper
	now       func() time.Time
}

// NewEngine creates an Engine.
func NewEngine(cfg Config) *Engine {
	sleeper := cfg.Sleeper
	if sleeper == nil {
		sleeper = timerSleeper{}
	}
	return &Engine{
		logger:    cfg.Logger,
		events:    log.OrNoop(cfg.EventLogger),
		sessionID: cfg.SessionID,
		sleeper:   sleeper,
		now:       time.Now,
	}
}

// Breathe runs b on dev. Writes are issued strictly in order; the context is
// checked before every step and during every pause.
func (e *Engine) Breathe(ctx context.Context, dev capability.Writable, p capability.Protocol, b Breathing) error {
	if err := b.Validate(); err != nil {
		return err
	}

	name := deviceName(dev)
	interval := b.Speed.Interval()
	steps := Steps()

	e.debugLog("animation: breathing started",
		"device", name, "color", b.Color.String(), "repeat", b.Repeat.String(), "interval", interval)
	e.emit(name, log.AnimationStarted, 0, interval)

	for breath := 0; b.Repeat.Infinite() || breath < b.Repeat.Count(); breath++ {
		for _, level := range steps {
			if err := ctx.Err(); err != nil {
				return e.abort(name, breath, err)
			}
			opt := capability.LevelWithColor(float32(level)/maxLevel, b.Color)
			if err := capability.Set(ctx, dev, p, opt); err != nil {
				return e.abort(name, breath, err)
			}
			if err := e.sleeper.Sleep(ctx, interval); err != nil {
				return e.abort(name, breath, err)
			}
		}
		e.emit(name, log.AnimationBreath, breath+1, 0)
	}

	e.debugLog("animation: breathing finished", "device", name, "breaths", b.Repeat.Count())
	e.emit(name, log.AnimationFinished, b.Repeat.Count(), 0)
	return nil
}

func (e *Engine) abort(name string, breaths int, err error) error {
	e.debugLog("animation: breathing aborted", "device", name, "breaths", breaths, "error", err)
	e.emit(name, log.AnimationAborted, breaths, 0)
	return err
}

func (e *Engine) emit(device string, phase log.AnimationPhase, breath int, interval time.Duration) {
	e.events.Log(log.Event{
		Timestamp: e.now(),
		SessionID: e.sessionID,
		Category:  log.CategoryAnimation,
		Device:    device,
		Animation: &log.AnimationEvent{
			Name:     breathingName,
			Phase:    phase,
			Breath:   breath,
			Interval: interval,
		},
	})
}

func (e *Engine) debugLog(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func deviceName(dev capability.Writable) string {
	if n, ok := dev.(interface{ Name() string }); ok {
		return n.Name()
	}
	return ""
}

var defaultEngine = NewEngine(Config{})

// Breathe runs b on dev with a default engine.
func Breathe(ctx context.Context, dev capability.Writable, p capability.Protocol, b Breathing) error {
	return defaultEngine.Breathe(ctx, dev, p, b)
}
