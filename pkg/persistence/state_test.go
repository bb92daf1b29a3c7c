package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStateStore(t *testing.T) {
	t.Run("LoadNonExistent", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStateStore(filepath.Join(dir, "nonexistent.json"))

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got == nil || len(got.Devices) != 0 {
			t.Errorf("Load() = %v, want empty state for non-existent file", got)
		}
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStateStore(filepath.Join(dir, "sub", "state.json"))

		seen := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		state := &ControllerState{}
		state.Upsert(DeviceRecord{
			Address:             "AA:BB:CC:DD:EE:FF",
			Name:                "QHM-0A1B",
			Alias:               "desk",
			WriteCharacteristic: "0000ffd9-0000-1000-8000-00805f9b34fb",
			LastSeenAt:          seen,
		})

		if err := store.Save(state); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if state.Version != StateVersion || state.SavedAt.IsZero() {
			t.Error("Save() must stamp version and time")
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		rec, ok := got.Device("AA:BB:CC:DD:EE:FF")
		if !ok {
			t.Fatal("expected device record")
		}
		if rec.Alias != "desk" || rec.Name != "QHM-0A1B" {
			t.Errorf("unexpected record %+v", rec)
		}
		if !rec.LastSeenAt.Equal(seen) {
			t.Errorf("LastSeenAt = %v, want %v", rec.LastSeenAt, seen)
		}
	})

	t.Run("LoadCorrupt", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "state.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewStateStore(path).Load(); err == nil {
			t.Error("expected error for corrupt file")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStateStore(filepath.Join(dir, "state.json"))
		if err := store.Save(&ControllerState{}); err != nil {
			t.Fatal(err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
			t.Error("expected state file to be removed")
		}
		if err := store.Clear(); err != nil {
			t.Errorf("Clear() on missing file error = %v", err)
		}
	})
}

func TestControllerStateRecords(t *testing.T) {
	state := &ControllerState{}
	state.Upsert(DeviceRecord{Address: "02", Alias: "b"})
	state.Upsert(DeviceRecord{Address: "01", Alias: "a"})
	state.Upsert(DeviceRecord{Address: "02", Alias: "bb"})

	if len(state.Devices) != 2 {
		t.Fatalf("expected 2 records, got %d", len(state.Devices))
	}
	if state.Devices[0].Address != "01" {
		t.Error("expected records sorted by address")
	}
	if rec, _ := state.Device("02"); rec.Alias != "bb" {
		t.Errorf("expected upsert to replace, got %q", rec.Alias)
	}

	if !state.Remove("01") || state.Remove("01") {
		t.Error("unexpected Remove result")
	}
	if _, ok := state.Device("01"); ok {
		t.Error("expected record to be removed")
	}
}
