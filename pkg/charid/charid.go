package charid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidIdentifier is returned when a textual identifier cannot be parsed.
var ErrInvalidIdentifier = errors.New("invalid characteristic identifier")

// BaseUUID is the base template of the canonical identifier space.
var BaseUUID = uuid.MustParse("00000000-0000-1000-8000-00805f9b34fb")

// Identifier is any form of characteristic identifier that can be resolved
// into the canonical 128-bit space.
type Identifier interface {
	// UUID returns the canonical 128-bit identifier.
	UUID() uuid.UUID
}

// UUID16 is a 16-bit short-form identifier.
type UUID16 uint16

// UUID resolves the identifier into the canonical space.
func (u UUID16) UUID() uuid.UUID {
	return UUID32(uint32(u)).UUID()
}

// String returns the identifier as four hex digits.
func (u UUID16) String() string {
	return fmt.Sprintf("%04x", uint16(u))
}

// UUID32 is a 32-bit short-form identifier.
type UUID32 uint32

// UUID resolves the identifier into the canonical space.
func (u UUID32) UUID() uuid.UUID {
	id := BaseUUID
	var short [4]byte
	binary.BigEndian.PutUint32(short[:], uint32(u))
	for i := range short {
		id[i] |= short[i]
	}
	return id
}

// String returns the identifier as eight hex digits.
func (u UUID32) String() string {
	return fmt.Sprintf("%08x", uint32(u))
}

// UUID128 is an identifier already in canonical form.
type UUID128 uuid.UUID

// UUID returns the identifier unchanged.
func (u UUID128) UUID() uuid.UUID {
	return uuid.UUID(u)
}

// String returns the standard textual form.
func (u UUID128) String() string {
	return uuid.UUID(u).String()
}

// Resolve returns the canonical 128-bit form of id.
func Resolve(id Identifier) uuid.UUID {
	return id.UUID()
}

// From16 resolves a 16-bit short form.
func From16(v uint16) uuid.UUID {
	return UUID16(v).UUID()
}

// From32 resolves a 32-bit short form.
func From32(v uint32) uuid.UUID {
	return UUID32(v).UUID()
}

// Short returns the 32-bit short form of u when u lies in the base space.
func Short(u uuid.UUID) (uint32, bool) {
	for i := 4; i < len(u); i++ {
		if u[i] != BaseUUID[i] {
			return 0, false
		}
	}
	return binary.BigEndian.Uint32(u[:4]), true
}

// Parse parses a textual identifier.
//
// Accepted forms are 4 hex digits (16-bit), 8 hex digits (32-bit), either
// optionally prefixed with "0x", and any textual UUID accepted by uuid.Parse.
func Parse(s string) (Identifier, error) {
	raw := strings.TrimSpace(s)
	hex := strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")

	switch len(hex) {
	case 4:
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
		}
		return UUID16(v), nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
		}
		return UUID32(v), nil
	}

	u, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return UUID128(u), nil
}

// Compile-time interface satisfaction checks.
var (
	_ Identifier = UUID16(0)
	_ Identifier = UUID32(0)
	_ Identifier = UUID128{}
)
