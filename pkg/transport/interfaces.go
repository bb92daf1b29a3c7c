package transport

import (
	"context"
	"time"

	"github.com/ledly-go/ledly/pkg/gatt"
)

// Conn is a connected peripheral.
type Conn interface {
	// Address returns the peripheral address.
	Address() string

	// Discover returns the characteristics of every service on the peripheral.
	Discover(ctx context.Context) ([]gatt.Characteristic, error)

	// Write sends data to char as an unacknowledged write.
	Write(ctx context.Context, char gatt.Characteristic, data []byte) error

	// Disconnect closes the link.
	Disconnect(ctx context.Context) error
}

// Advertisement is a peripheral seen while scanning.
type Advertisement struct {
	// Name is the advertised local name ("Unknown" when absent).
	Name string

	// Address is the peripheral address.
	Address string

	// RSSI is the received signal strength in dBm.
	RSSI int16
}

// Scanner finds and connects peripherals.
type Scanner interface {
	// Scan listens for advertisements for at most timeout and returns each
	// peripheral once, in the order first seen.
	Scan(ctx context.Context, timeout time.Duration) ([]Advertisement, error)

	// Connect establishes a link to an advertised peripheral.
	Connect(ctx context.Context, adv Advertisement) (Conn, error)
}

// UnknownName is used for peripherals that advertise no local name.
const UnknownName = "Unknown"
