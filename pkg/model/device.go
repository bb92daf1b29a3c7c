package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledly-go/ledly/pkg/charid"
	"github.com/ledly-go/ledly/pkg/gatt"
	"github.com/ledly-go/ledly/pkg/transport"
)

// Device errors.
var (
	ErrNoMatchingCharacteristic = errors.New("no matching characteristic")
	ErrNoWriteCharacteristic    = errors.New("no write characteristic assigned")
	ErrNotConnected             = errors.New("device not connected")
)

// DefaultWriteCharacteristic is the write characteristic of the LedDevice
// family (QHM-* and compatible controllers).
const DefaultWriteCharacteristic = charid.UUID16(0xFFD9)

// Device is a connected lighting peripheral.
// It is not safe for concurrent use.
type Device struct {
	name  string
	alias string
	conn  transport.Conn

	chars     []gatt.Characteristic
	writeChar *gatt.Characteristic
	readChar  *gatt.Characteristic
}

// NewDevice creates a device over an established connection. The alias
// defaults to name when empty.
func NewDevice(name, alias string, conn transport.Conn) *Device {
	if alias == "" {
		alias = name
	}
	return &Device{
		name:  name,
		alias: alias,
		conn:  conn,
	}
}

// Name returns the advertised name.
func (d *Device) Name() string {
	return d.name
}

// Alias returns the user alias.
func (d *Device) Alias() string {
	return d.alias
}

// SetAlias sets the user alias. An empty alias restores the name.
func (d *Device) SetAlias(alias string) {
	if alias == "" {
		alias = d.name
	}
	d.alias = alias
}

// Address returns the transport address, or "" without a connection.
func (d *Device) Address() string {
	if d.conn == nil {
		return ""
	}
	return d.conn.Address()
}

// Conn returns the transport connection.
func (d *Device) Conn() transport.Conn {
	return d.conn
}

// SetCharacteristics replaces the discovered characteristics. Role
// assignments are left untouched; a write to a characteristic that is no
// longer listed fails with transport.ErrCharacteristicUnresolved.
func (d *Device) SetCharacteristics(chars []gatt.Characteristic) {
	d.chars = append([]gatt.Characteristic(nil), chars...)
}

// Characteristics returns a copy of the discovered characteristics.
func (d *Device) Characteristics() []gatt.Characteristic {
	return append([]gatt.Characteristic(nil), d.chars...)
}

// CharacteristicsByKind returns the characteristics whose properties equal
// kind exactly.
func (d *Device) CharacteristicsByKind(kind gatt.OpKind) []gatt.Characteristic {
	return gatt.Select(d.chars, kind)
}

// Discover refreshes the characteristics from the connection.
func (d *Device) Discover(ctx context.Context) error {
	if d.conn == nil {
		return ErrNotConnected
	}
	chars, err := d.conn.Discover(ctx)
	if err != nil {
		return fmt.Errorf("discover %s: %w", d.name, err)
	}
	d.SetCharacteristics(chars)
	return nil
}

// AssignDefault points role at the characteristic selected by target.
// On failure the previous assignment is kept.
func (d *Device) AssignDefault(role CharRole, target Target) error {
	c, ok := target.resolve(d.chars)
	if !ok {
		return fmt.Errorf("%s: %s %s: %w", d.name, role, target, ErrNoMatchingCharacteristic)
	}
	switch role {
	case RoleWrite:
		d.writeChar = &c
	case RoleRead:
		d.readChar = &c
	default:
		return fmt.Errorf("unknown role %s", role)
	}
	return nil
}

// WriteCharacteristic returns the write role, if assigned.
func (d *Device) WriteCharacteristic() (gatt.Characteristic, bool) {
	if d.writeChar == nil {
		return gatt.Characteristic{}, false
	}
	return *d.writeChar, true
}

// ReadCharacteristic returns the read role, if assigned.
func (d *Device) ReadCharacteristic() (gatt.Characteristic, bool) {
	if d.readChar == nil {
		return gatt.Characteristic{}, false
	}
	return *d.readChar, true
}

// Write sends data to the write characteristic.
func (d *Device) Write(ctx context.Context, data []byte) error {
	if d.writeChar == nil {
		return fmt.Errorf("%s: %w", d.name, ErrNoWriteCharacteristic)
	}
	if d.conn == nil {
		return fmt.Errorf("%s: %w", d.name, ErrNotConnected)
	}
	if _, ok := gatt.Find(d.chars, charid.UUID128(d.writeChar.UUID)); !ok {
		werr := transport.NewWriteError(d.conn.Address(), d.writeChar.UUID, transport.ErrCharacteristicUnresolved)
		return fmt.Errorf("%s: %w", d.name, werr)
	}
	if err := d.conn.Write(ctx, *d.writeChar, data); err != nil {
		return fmt.Errorf("%s: %w", d.name, err)
	}
	return nil
}

// Disconnect closes the connection. The device keeps its characteristics
// but can no longer be written to.
func (d *Device) Disconnect(ctx context.Context) error {
	if d.conn == nil {
		return nil
	}
	err := d.conn.Disconnect(ctx)
	d.conn = nil
	if err != nil {
		return fmt.Errorf("disconnect %s: %w", d.name, err)
	}
	return nil
}

// String returns the display form "alias (name) address".
func (d *Device) String() string {
	label := d.name
	if d.alias != d.name {
		label = fmt.Sprintf("%s (%s)", d.alias, d.name)
	}
	if addr := d.Address(); addr != "" {
		return label + " " + addr
	}
	return label
}

// Info is a snapshot of a device.
type Info struct {
	Name                string   `json:"name"`
	Alias               string   `json:"alias"`
	Address             string   `json:"address"`
	Characteristics     []string `json:"characteristics"`
	WriteCharacteristic string   `json:"writeCharacteristic,omitempty"`
	ReadCharacteristic  string   `json:"readCharacteristic,omitempty"`
}

// Info returns a snapshot of the device.
func (d *Device) Info() Info {
	info := Info{
		Name:    d.name,
		Alias:   d.alias,
		Address: d.Address(),
	}
	for _, c := range d.chars {
		info.Characteristics = append(info.Characteristics, c.String())
	}
	if d.writeChar != nil {
		info.WriteCharacteristic = d.writeChar.UUID.String()
	}
	if d.readChar != nil {
		info.ReadCharacteristic = d.readChar.UUID.String()
	}
	return info
}
