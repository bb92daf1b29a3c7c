package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// ControllerState contains the runtime state for a ledly controller.
type ControllerState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Devices contains the remembered peripherals.
	Devices []DeviceRecord `json:"devices,omitempty"`
}

// DeviceRecord is what is remembered about one peripheral.
type DeviceRecord struct {
	// Address is the peripheral address (the record key).
	Address string `json:"address"`

	// Name is the last advertised name.
	Name string `json:"name,omitempty"`

	// Alias is the user alias.
	Alias string `json:"alias,omitempty"`

	// WriteCharacteristic is the canonical identifier of the write role.
	WriteCharacteristic string `json:"write_characteristic,omitempty"`

	// LastSeenAt is when the peripheral was last connected.
	LastSeenAt time.Time `json:"last_seen_at,omitempty"`
}

// Device returns the record for address.
func (s *ControllerState) Device(address string) (DeviceRecord, bool) {
	for _, d := range s.Devices {
		if d.Address == address {
			return d, true
		}
	}
	return DeviceRecord{}, false
}

// Upsert inserts or replaces the record with the same address. Records are
// kept sorted by address.
func (s *ControllerState) Upsert(rec DeviceRecord) {
	for i, d := range s.Devices {
		if d.Address == rec.Address {
			s.Devices[i] = rec
			return
		}
	}
	s.Devices = append(s.Devices, rec)
	sort.Slice(s.Devices, func(i, j int) bool {
		return s.Devices[i].Address < s.Devices[j].Address
	})
}

// Remove deletes the record for address.
func (s *ControllerState) Remove(address string) bool {
	for i, d := range s.Devices {
		if d.Address == address {
			s.Devices = append(s.Devices[:i], s.Devices[i+1:]...)
			return true
		}
	}
	return false
}

// StateStore manages persistence of controller state to a JSON file.
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a new state store.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Path returns the state file path.
func (s *StateStore) Path() string {
	return s.path
}

// Save persists the state to disk.
func (s *StateStore) Save(state *ControllerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	state.SavedAt = time.Now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the state from disk.
// Returns an empty state if the file doesn't exist.
func (s *StateStore) Load() (*ControllerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &ControllerState{Version: StateVersion}, nil
	}
	if err != nil {
		return nil, err
	}

	state := &ControllerState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Clear removes the state file.
func (s *StateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
