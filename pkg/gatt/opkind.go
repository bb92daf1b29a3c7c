package gatt

import "strings"

// OpKind is the set of operations a characteristic supports.
type OpKind uint8

const (
	// OpBroadcast permits broadcasts of the value.
	OpBroadcast OpKind = 1 << iota

	// OpRead permits reads.
	OpRead

	// OpWriteWithoutResponse permits unacknowledged writes.
	OpWriteWithoutResponse

	// OpWrite permits acknowledged writes.
	OpWrite

	// OpNotify permits notifications.
	OpNotify

	// OpIndicate permits indications.
	OpIndicate

	// OpAuthenticatedSignedWrites permits signed writes.
	OpAuthenticatedSignedWrites

	// OpExtendedProperties indicates an extended properties descriptor.
	OpExtendedProperties
)

var opKindNames = []struct {
	kind OpKind
	name string
}{
	{OpBroadcast, "broadcast"},
	{OpRead, "read"},
	{OpWriteWithoutResponse, "write-without-response"},
	{OpWrite, "write"},
	{OpNotify, "notify"},
	{OpIndicate, "indicate"},
	{OpAuthenticatedSignedWrites, "authenticated-signed-writes"},
	{OpExtendedProperties, "extended-properties"},
}

// Has returns true if every bit of other is set in k.
func (k OpKind) Has(other OpKind) bool { return k&other == other }

// CanWrite returns true if any form of write is permitted.
func (k OpKind) CanWrite() bool { return k&(OpWrite|OpWriteWithoutResponse) != 0 }

// String returns the set kinds joined by "|".
func (k OpKind) String() string {
	if k == 0 {
		return "-"
	}
	var parts []string
	for _, n := range opKindNames {
		if k&n.kind != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseOpKind parses a single kind name as produced by String.
func ParseOpKind(name string) (OpKind, bool) {
	for _, n := range opKindNames {
		if n.name == name {
			return n.kind, true
		}
	}
	return 0, false
}
