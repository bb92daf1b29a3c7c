package animation

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ledly-go/ledly/pkg/capability"
	"github.com/ledly-go/ledly/pkg/log"
	"github.com/ledly-go/ledly/pkg/protocol"
)

type recorder struct {
	name    string
	writes  [][]byte
	failAt  int
	failErr error
	onWrite func(n int)
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Write(_ context.Context, data []byte) error {
	if r.failErr != nil && len(r.writes) == r.failAt {
		return r.failErr
	}
	r.writes = append(r.writes, data)
	if r.onWrite != nil {
		r.onWrite(len(r.writes))
	}
	return nil
}

type sleepRecorder struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (s *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.slept = append(s.slept, d)
	s.mu.Unlock()
	return ctx.Err()
}

type captureLogger struct {
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) { c.events = append(c.events, e) }

func TestSpeedIntervals(t *testing.T) {
	want := map[Speed]time.Duration{
		Fastest: 5 * time.Millisecond,
		Faster:  20 * time.Millisecond,
		Fast:    50 * time.Millisecond,
		Normal:  200 * time.Millisecond,
		Slow:    300 * time.Millisecond,
		Slower:  400 * time.Millisecond,
		Slowest: 600 * time.Millisecond,
	}
	for s, d := range want {
		if got := s.Interval(); got != d {
			t.Errorf("%s.Interval() = %v, want %v", s, got, d)
		}
	}

	order := []Speed{Fastest, Faster, Fast, Normal, Slow, Slower, Slowest}
	for i := 1; i < len(order); i++ {
		if order[i-1].Interval() >= order[i].Interval() {
			t.Errorf("%s must be strictly faster than %s", order[i-1], order[i])
		}
	}
}

func TestParseSpeed(t *testing.T) {
	for _, s := range []Speed{Slowest, Slower, Slow, Normal, Fast, Faster, Fastest} {
		got, err := ParseSpeed(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSpeed(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseSpeed("ludicrous"); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("expected ErrInvalidSpeed, got %v", err)
	}
}

func TestSteps(t *testing.T) {
	steps := Steps()
	if len(steps) != 202 || StepsPerBreath != 202 {
		t.Fatalf("expected 202 steps, got %d", len(steps))
	}
	for i := 0; i <= 100; i++ {
		if steps[i] != i {
			t.Fatalf("ascending step %d = %d", i, steps[i])
		}
		if steps[101+i] != 100-i {
			t.Fatalf("descending step %d = %d", i, steps[101+i])
		}
	}
}

func TestBreatheOneBreath(t *testing.T) {
	rec := &recorder{name: "QHM-1"}
	sleeper := &sleepRecorder{}
	e := NewEngine(Config{Sleeper: sleeper})

	b := Breathing{Color: capability.RGB(200, 100, 50), Repeat: FiniteCount(1), Speed: Normal}
	if err := e.Breathe(context.Background(), rec, protocol.GenericRGB{}, b); err != nil {
		t.Fatalf("Breathe failed: %v", err)
	}

	if len(rec.writes) != 202 {
		t.Fatalf("expected 202 writes, got %d", len(rec.writes))
	}
	if len(sleeper.slept) != 202 {
		t.Errorf("expected one pause per write, got %d", len(sleeper.slept))
	}
	for _, d := range sleeper.slept {
		if d != 200*time.Millisecond {
			t.Fatalf("unexpected pause %v", d)
		}
	}

	dark := []byte{0x56, 0, 0, 0, 0x00, 0xF0, 0xAA}
	full := []byte{0x56, 200, 100, 50, 0x00, 0xF0, 0xAA}
	if !bytes.Equal(rec.writes[0], dark) || !bytes.Equal(rec.writes[201], dark) {
		t.Errorf("expected breath to start and end dark")
	}
	if !bytes.Equal(rec.writes[100], full) || !bytes.Equal(rec.writes[101], full) {
		t.Errorf("expected full color at the peak, got % X and % X", rec.writes[100], rec.writes[101])
	}
}

func TestBreatheFiniteCount(t *testing.T) {
	tests := []struct {
		repeat Repeat
		writes int
	}{
		{FiniteCount(0), 0},
		{FiniteCount(1), 202},
		{FiniteCount(2), 404},
		{FiniteCount(3), 606},
	}
	for _, tt := range tests {
		t.Run(tt.repeat.String(), func(t *testing.T) {
			rec := &recorder{}
			e := NewEngine(Config{Sleeper: &sleepRecorder{}})
			b := Breathing{Color: capability.RGB(1, 2, 3), Repeat: tt.repeat, Speed: Fastest}
			if err := e.Breathe(context.Background(), rec, protocol.GenericRGB{}, b); err != nil {
				t.Fatalf("Breathe failed: %v", err)
			}
			if len(rec.writes) != tt.writes {
				t.Errorf("expected %d writes, got %d", tt.writes, len(rec.writes))
			}
		})
	}
}

func TestBreatheInvalid(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(Config{Sleeper: &sleepRecorder{}})

	err := e.Breathe(context.Background(), rec, protocol.GenericRGB{}, Breathing{Repeat: FiniteCount(-1)})
	if !errors.Is(err, ErrInvalidRepeat) {
		t.Errorf("expected ErrInvalidRepeat, got %v", err)
	}
	err = e.Breathe(context.Background(), rec, protocol.GenericRGB{}, Breathing{Repeat: FiniteCount(1), Speed: Speed(42)})
	if !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("expected ErrInvalidSpeed, got %v", err)
	}
	if len(rec.writes) != 0 {
		t.Error("invalid animations must not write")
	}
}

func TestBreatheWriteErrorAborts(t *testing.T) {
	boom := errors.New("connection lost")
	rec := &recorder{name: "QHM-1", failAt: 50, failErr: boom}
	capture := &captureLogger{}
	e := NewEngine(Config{Sleeper: &sleepRecorder{}, EventLogger: capture, SessionID: "s"})

	b := Breathing{Color: capability.RGB(255, 0, 0), Repeat: InfiniteCount, Speed: Fastest}
	err := e.Breathe(context.Background(), rec, protocol.GenericRGB{}, b)
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if len(rec.writes) != 50 {
		t.Errorf("expected 50 writes before the failure, got %d", len(rec.writes))
	}

	last := capture.events[len(capture.events)-1]
	if last.Animation == nil || last.Animation.Phase != log.AnimationAborted {
		t.Errorf("expected an aborted event, got %+v", last)
	}
	if last.Device != "QHM-1" || last.SessionID != "s" {
		t.Errorf("unexpected event tags %q %q", last.Device, last.SessionID)
	}
}

func TestBreatheInfiniteCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	rec.onWrite = func(n int) {
		if n == 1000 {
			cancel()
		}
	}
	e := NewEngine(Config{Sleeper: &sleepRecorder{}})

	b := Breathing{Color: capability.RGB(0, 0, 255), Repeat: InfiniteCount, Speed: Fastest}
	err := e.Breathe(ctx, rec, protocol.GenericRGB{}, b)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(rec.writes) != 1000 {
		t.Errorf("expected writes to stop at cancellation, got %d", len(rec.writes))
	}
}

func TestBreatheEvents(t *testing.T) {
	rec := &recorder{name: "QHM-1"}
	capture := &captureLogger{}
	e := NewEngine(Config{Sleeper: &sleepRecorder{}, EventLogger: capture})

	b := Breathing{Color: capability.RGB(1, 1, 1), Repeat: FiniteCount(2), Speed: Fast}
	if err := e.Breathe(context.Background(), rec, protocol.GenericRGB{}, b); err != nil {
		t.Fatal(err)
	}

	want := []log.AnimationPhase{log.AnimationStarted, log.AnimationBreath, log.AnimationBreath, log.AnimationFinished}
	if len(capture.events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(capture.events))
	}
	for i, phase := range want {
		ev := capture.events[i]
		if ev.Category != log.CategoryAnimation || ev.Animation.Phase != phase {
			t.Errorf("event %d: expected %s, got %+v", i, phase, ev.Animation)
		}
	}
	if capture.events[0].Animation.Interval != 50*time.Millisecond {
		t.Errorf("expected start event to carry the interval")
	}
	if capture.events[2].Animation.Breath != 2 {
		t.Errorf("expected second breath event to count 2, got %d", capture.events[2].Animation.Breath)
	}
}

func TestTimerSleeperCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := timerSleeper{}.Sleep(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("cancelled sleep must return promptly")
	}

	if err := (timerSleeper{}).Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPackageBreatheZeroCount(t *testing.T) {
	rec := &recorder{}
	b := Breathing{Color: capability.RGB(1, 1, 1), Repeat: FiniteCount(0), Speed: Slowest}
	if err := Breathe(context.Background(), rec, protocol.GenericRGB{}, b); err != nil {
		t.Fatal(err)
	}
	if len(rec.writes) != 0 {
		t.Errorf("expected no writes, got %d", len(rec.writes))
	}
}
