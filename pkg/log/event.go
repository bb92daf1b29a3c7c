package log

import "time"

// Event is one captured protocol event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the controller run that produced the event (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"3,keyasint"`

	// Device is the peripheral name.
	Device string `cbor:"4,keyasint,omitempty"`

	// Address is the peripheral address as reported by the transport.
	Address string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Write       *WriteEvent       `cbor:"10,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"`
	Animation   *AnimationEvent   `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryWrite indicates a command buffer written to a characteristic.
	CategoryWrite Category = 0
	// CategoryState indicates a connection or assignment change.
	CategoryState Category = 1
	// CategoryAnimation indicates software animation progress.
	CategoryAnimation Category = 2
	// CategoryError indicates a failure.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryWrite:
		return "WRITE"
	case CategoryState:
		return "STATE"
	case CategoryAnimation:
		return "ANIMATION"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MaxCapturedBytes is the largest payload stored verbatim in a WriteEvent.
const MaxCapturedBytes = 64

// WriteEvent captures one buffer handed to the transport.
type WriteEvent struct {
	// Characteristic is the canonical identifier written to.
	Characteristic string `cbor:"1,keyasint"`

	// Size is the buffer size in bytes.
	Size int `cbor:"2,keyasint"`

	// Data is the buffer (truncated to MaxCapturedBytes).
	Data []byte `cbor:"3,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"4,keyasint,omitempty"`

	// Duration is how long the transport call took.
	Duration time.Duration `cbor:"5,keyasint,omitempty"`
}

// NewWriteEvent builds a WriteEvent, copying at most MaxCapturedBytes of data.
func NewWriteEvent(char string, data []byte) *WriteEvent {
	n := len(data)
	if n > MaxCapturedBytes {
		n = MaxCapturedBytes
	}
	captured := make([]byte, n)
	copy(captured, data)
	return &WriteEvent{
		Characteristic: char,
		Size:           len(data),
		Data:           captured,
		Truncated:      len(data) > MaxCapturedBytes,
	}
}

// StateChangeEvent captures connection and assignment changes.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what changed state.
type StateEntity uint8

const (
	// StateEntityConnection is the link to the peripheral.
	StateEntityConnection StateEntity = 0
	// StateEntityWriteCharacteristic is the default write characteristic.
	StateEntityWriteCharacteristic StateEntity = 1
	// StateEntityReadCharacteristic is the default read characteristic.
	StateEntityReadCharacteristic StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityConnection:
		return "CONNECTION"
	case StateEntityWriteCharacteristic:
		return "WRITE_CHAR"
	case StateEntityReadCharacteristic:
		return "READ_CHAR"
	default:
		return "UNKNOWN"
	}
}

// AnimationEvent captures the progress of a software animation.
type AnimationEvent struct {
	// Name is the animation name (e.g. "breathing").
	Name string `cbor:"1,keyasint"`

	// Phase is the lifecycle point reached.
	Phase AnimationPhase `cbor:"2,keyasint"`

	// Breath is the number of completed breaths.
	Breath int `cbor:"3,keyasint,omitempty"`

	// Interval is the pause between steps.
	Interval time.Duration `cbor:"4,keyasint,omitempty"`
}

// AnimationPhase is a point in an animation's lifecycle.
type AnimationPhase uint8

const (
	// AnimationStarted is emitted before the first step.
	AnimationStarted AnimationPhase = 0
	// AnimationBreath is emitted after each completed breath.
	AnimationBreath AnimationPhase = 1
	// AnimationFinished is emitted when all breaths completed.
	AnimationFinished AnimationPhase = 2
	// AnimationAborted is emitted on error or cancellation.
	AnimationAborted AnimationPhase = 3
)

// String returns the phase name.
func (p AnimationPhase) String() string {
	switch p {
	case AnimationStarted:
		return "STARTED"
	case AnimationBreath:
		return "BREATH"
	case AnimationFinished:
		return "FINISHED"
	case AnimationAborted:
		return "ABORTED"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures a failure.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
