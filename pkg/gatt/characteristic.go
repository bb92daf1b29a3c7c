package gatt

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ledly-go/ledly/pkg/charid"
)

// Characteristic is an addressable communication point on a peripheral.
// Values are immutable once discovered.
type Characteristic struct {
	// UUID is the canonical 128-bit identifier.
	UUID uuid.UUID

	// Service is the identifier of the owning service (uuid.Nil when unknown).
	Service uuid.UUID

	// Properties is the set of supported operations.
	Properties OpKind
}

// Matches returns true when the properties equal kind exactly.
func (c Characteristic) Matches(kind OpKind) bool {
	return c.Properties == kind
}

// Is returns true when the characteristic has the canonical form of id.
func (c Characteristic) Is(id charid.Identifier) bool {
	return c.UUID == charid.Resolve(id)
}

// String returns the characteristic in display form.
func (c Characteristic) String() string {
	if short, ok := charid.Short(c.UUID); ok && short <= 0xFFFF {
		return fmt.Sprintf("%04x [%s]", short, c.Properties)
	}
	return fmt.Sprintf("%s [%s]", c.UUID, c.Properties)
}

// Select returns the characteristics whose properties equal kind exactly,
// preserving their order.
func Select(chars []Characteristic, kind OpKind) []Characteristic {
	var result []Characteristic
	for _, c := range chars {
		if c.Matches(kind) {
			result = append(result, c)
		}
	}
	return result
}

// Find returns the characteristic with the canonical form of id.
func Find(chars []Characteristic, id charid.Identifier) (Characteristic, bool) {
	want := charid.Resolve(id)
	for _, c := range chars {
		if c.UUID == want {
			return c, true
		}
	}
	return Characteristic{}, false
}
