package log

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type captureLogger struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureLogger) Log(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func writeEvent(session, device string, data []byte) Event {
	return Event{
		Timestamp: time.Now(),
		SessionID: session,
		Category:  CategoryWrite,
		Device:    device,
		Write:     NewWriteEvent("0000ffd9-0000-1000-8000-00805f9b34fb", data),
	}
}

func TestEncodeDecodeWriteEvent(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)
	in := Event{
		Timestamp: ts,
		SessionID: "sess-1",
		Category:  CategoryWrite,
		Device:    "QHM-0A1B",
		Address:   "AA:BB:CC:DD:EE:FF",
		Write:     NewWriteEvent("0000ffd9-0000-1000-8000-00805f9b34fb", []byte{0x56, 1, 2, 3, 0x00, 0xF0, 0xAA}),
	}

	data, err := EncodeEvent(in)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	out, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !out.Timestamp.Equal(ts) {
		t.Errorf("timestamp: got %v, want %v", out.Timestamp, ts)
	}
	if out.Write == nil {
		t.Fatal("expected write payload")
	}
	if !bytes.Equal(out.Write.Data, in.Write.Data) || out.Write.Size != 7 {
		t.Errorf("write payload mismatch: %+v", out.Write)
	}
	if out.StateChange != nil || out.Animation != nil || out.Error != nil {
		t.Error("unexpected extra payloads")
	}
}

func TestNewWriteEventTruncates(t *testing.T) {
	data := make([]byte, MaxCapturedBytes+10)
	ev := NewWriteEvent("x", data)

	if ev.Size != len(data) {
		t.Errorf("Size = %d, want %d", ev.Size, len(data))
	}
	if len(ev.Data) != MaxCapturedBytes || !ev.Truncated {
		t.Errorf("expected truncation to %d bytes, got %d (truncated=%v)", MaxCapturedBytes, len(ev.Data), ev.Truncated)
	}

	data[0] = 0xFF
	if ev.Data[0] == 0xFF {
		t.Error("captured data must be a copy")
	}
}

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.llog")

	fl, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	fl.Log(writeEvent("s1", "lamp-a", []byte{0xCC, 0x23, 0x33}))
	fl.Log(writeEvent("s1", "lamp-b", []byte{0xCC, 0x24, 0x33}))
	fl.Log(Event{
		Timestamp:   time.Now(),
		SessionID:   "s1",
		Category:    CategoryState,
		Device:      "lamp-a",
		StateChange: &StateChangeEvent{Entity: StateEntityConnection, NewState: "CONNECTED"},
	})

	if err := fl.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	fl.Log(writeEvent("s1", "lamp-a", nil)) // dropped

	t.Run("AllEvents", func(t *testing.T) {
		r, err := NewReader(path)
		if err != nil {
			t.Fatalf("NewReader failed: %v", err)
		}
		defer r.Close()

		count := 0
		for {
			_, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			count++
		}
		if count != 3 {
			t.Errorf("expected 3 events, got %d", count)
		}
	})

	t.Run("FilterByDeviceAndCategory", func(t *testing.T) {
		cat := CategoryWrite
		r, err := NewFilteredReader(path, Filter{Device: "lamp-a", Category: &cat})
		if err != nil {
			t.Fatalf("NewFilteredReader failed: %v", err)
		}
		defer r.Close()

		ev, err := r.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if ev.Device != "lamp-a" || ev.Write == nil || ev.Write.Data[1] != 0x23 {
			t.Errorf("unexpected event: %+v", ev)
		}
		if _, err := r.Next(); err != io.EOF {
			t.Errorf("expected io.EOF, got %v", err)
		}
	})
}

func TestStreamReader(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := 0; i < 3; i++ {
		if err := enc.Encode(writeEvent("s2", "lamp", []byte{byte(i)})); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	r := NewStreamReader(&buf, Filter{SessionID: "s2"})
	defer r.Close()

	for i := 0; i < 3; i++ {
		ev, err := r.Next()
		if err != nil {
			t.Fatalf("Next %d failed: %v", i, err)
		}
		if ev.Write.Data[0] != byte(i) {
			t.Errorf("event %d out of order", i)
		}
	}
}

func TestFilterTimeRange(t *testing.T) {
	now := time.Now()
	start := now.Add(-time.Minute)
	end := now

	f := Filter{TimeStart: &start, TimeEnd: &end}

	if !f.Matches(Event{Timestamp: now.Add(-30 * time.Second)}) {
		t.Error("expected event inside range to match")
	}
	if f.Matches(Event{Timestamp: now}) {
		t.Error("TimeEnd is exclusive")
	}
	if f.Matches(Event{Timestamp: now.Add(-2 * time.Minute)}) {
		t.Error("expected event before range to be filtered")
	}
}

func TestMultiLogger(t *testing.T) {
	a, b := &captureLogger{}, &captureLogger{}
	m := NewMultiLogger(a, nil, b)

	m.Log(writeEvent("s", "d", []byte{1}))

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("expected both loggers to receive the event, got %d and %d", len(a.events), len(b.events))
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("expected NoopLogger for nil")
	}
	c := &captureLogger{}
	if OrNoop(c) != Logger(c) {
		t.Error("expected logger to be returned unchanged")
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewSlogAdapter(logger).Log(writeEvent("sess-9", "lamp", []byte{0xCC, 0x23, 0x33}))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["session"] != "sess-9" {
		t.Errorf("session: got %v", entry["session"])
	}
	if entry["category"] != "WRITE" {
		t.Errorf("category: got %v", entry["category"])
	}
	if entry["data"] != "cc2333" {
		t.Errorf("data: got %v", entry["data"])
	}
	if entry["size"] != float64(3) {
		t.Errorf("size: got %v", entry["size"])
	}
}

func TestStringers(t *testing.T) {
	if CategoryAnimation.String() != "ANIMATION" || Category(99).String() != "UNKNOWN" {
		t.Error("Category.String mismatch")
	}
	if StateEntityWriteCharacteristic.String() != "WRITE_CHAR" {
		t.Error("StateEntity.String mismatch")
	}
	if AnimationAborted.String() != "ABORTED" {
		t.Error("AnimationPhase.String mismatch")
	}
}
