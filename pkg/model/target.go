package model

import (
	"fmt"

	"github.com/ledly-go/ledly/pkg/charid"
	"github.com/ledly-go/ledly/pkg/gatt"
)

// CharRole is a role a characteristic can be assigned to.
type CharRole uint8

const (
	// RoleWrite is the characteristic capability buffers are written to.
	RoleWrite CharRole = iota
	// RoleRead is the characteristic state is read or notified from.
	RoleRead
)

// String returns the role name.
func (r CharRole) String() string {
	switch r {
	case RoleWrite:
		return "write"
	case RoleRead:
		return "read"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Target selects one characteristic among the discovered ones.
// Build one with ByIdentifier or ByKind.
type Target struct {
	id   charid.Identifier
	kind gatt.OpKind
}

// ByIdentifier targets the characteristic with the canonical form of id.
func ByIdentifier(id charid.Identifier) Target {
	return Target{id: id}
}

// ByKind targets the first characteristic whose properties equal kind exactly.
func ByKind(kind gatt.OpKind) Target {
	return Target{kind: kind}
}

// resolve picks the target from chars.
func (t Target) resolve(chars []gatt.Characteristic) (gatt.Characteristic, bool) {
	if t.id != nil {
		return gatt.Find(chars, t.id)
	}
	matches := gatt.Select(chars, t.kind)
	if len(matches) == 0 {
		return gatt.Characteristic{}, false
	}
	return matches[0], true
}

// String returns the target in display form.
func (t Target) String() string {
	if t.id != nil {
		return fmt.Sprintf("id %s", charid.Resolve(t.id))
	}
	return fmt.Sprintf("kind %s", t.kind)
}
