package protocol

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ledly-go/ledly/pkg/capability"
)

// ErrUnknownProtocol is returned by Lookup for unregistered names.
var ErrUnknownProtocol = errors.New("unknown protocol")

// Registered protocol names.
const (
	NameGenericRGB       = "generic-rgb"
	NameGenericRGBLegacy = "generic-rgb-legacy"
)

var registry = map[string]capability.Protocol{
	NameGenericRGB:       GenericRGB{},
	NameGenericRGBLegacy: GenericRGB{LegacyOff: true},
}

// Lookup returns the protocol registered as name.
func Lookup(name string) (capability.Protocol, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownProtocol)
	}
	return p, nil
}

// Names returns the registered protocol names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
