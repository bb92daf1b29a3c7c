package model

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/ledly-go/ledly/pkg/charid"
	"github.com/ledly-go/ledly/pkg/gatt"
	"github.com/ledly-go/ledly/pkg/transport"
	"github.com/ledly-go/ledly/pkg/transport/memory"
	"github.com/ledly-go/ledly/pkg/transport/mocks"
)

var (
	charWrite = gatt.Characteristic{
		UUID:       charid.From16(0xFFD9),
		Properties: gatt.OpWriteWithoutResponse,
	}
	charNotify = gatt.Characteristic{
		UUID:       charid.From16(0xFFD4),
		Properties: gatt.OpNotify,
	}
	charBoth = gatt.Characteristic{
		UUID:       charid.From16(0xFFE1),
		Properties: gatt.OpWrite | gatt.OpWriteWithoutResponse | gatt.OpNotify,
	}
)

func newTestDevice(t *testing.T) (*Device, *memory.Peripheral) {
	t.Helper()
	p := memory.NewPeripheral("QHM-0A1B", "AA:BB:CC:DD:EE:FF", charWrite, charNotify, charBoth)
	d := NewDevice("QHM-0A1B", "", p)
	if err := d.Discover(context.Background()); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	return d, p
}

func TestNewDeviceAlias(t *testing.T) {
	d := NewDevice("QHM-0A1B", "", nil)
	if d.Alias() != "QHM-0A1B" {
		t.Errorf("expected alias to default to name, got %q", d.Alias())
	}

	d.SetAlias("desk")
	if d.Alias() != "desk" {
		t.Errorf("expected alias desk, got %q", d.Alias())
	}
	if d.String() != "desk (QHM-0A1B)" {
		t.Errorf("unexpected String(): %q", d.String())
	}

	d.SetAlias("")
	if d.Alias() != "QHM-0A1B" {
		t.Errorf("expected empty alias to restore name, got %q", d.Alias())
	}
}

func TestWriteWithoutCharacteristic(t *testing.T) {
	d, p := newTestDevice(t)

	err := d.Write(context.Background(), []byte{0xCC, 0x23, 0x33})
	if !errors.Is(err, ErrNoWriteCharacteristic) {
		t.Fatalf("expected ErrNoWriteCharacteristic, got %v", err)
	}
	if p.WriteCount() != 0 {
		t.Error("nothing must reach the transport")
	}
}

func TestAssignDefaultByIdentifier(t *testing.T) {
	d, p := newTestDevice(t)

	if err := d.AssignDefault(RoleWrite, ByIdentifier(DefaultWriteCharacteristic)); err != nil {
		t.Fatalf("AssignDefault failed: %v", err)
	}
	c, ok := d.WriteCharacteristic()
	if !ok || c.UUID != charWrite.UUID {
		t.Fatalf("expected write role %s, got %v", charWrite.UUID, c)
	}

	if err := d.Write(context.Background(), []byte{0xCC, 0x23, 0x33}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	writes := p.Writes()
	if len(writes) != 1 || writes[0].Char.UUID != charWrite.UUID {
		t.Fatalf("unexpected writes: %+v", writes)
	}
}

func TestAssignDefaultByKindIsExact(t *testing.T) {
	d, _ := newTestDevice(t)

	if err := d.AssignDefault(RoleWrite, ByKind(gatt.OpWrite|gatt.OpWriteWithoutResponse)); !errors.Is(err, ErrNoMatchingCharacteristic) {
		t.Fatalf("expected no match for a subset of a superset, got %v", err)
	}
	if _, ok := d.WriteCharacteristic(); ok {
		t.Error("failed assignment must not set the write role")
	}

	if err := d.AssignDefault(RoleRead, ByKind(gatt.OpNotify)); err != nil {
		t.Fatalf("AssignDefault failed: %v", err)
	}
	c, ok := d.ReadCharacteristic()
	if !ok || c.UUID != charNotify.UUID {
		t.Errorf("expected read role %s, got %v", charNotify.UUID, c)
	}
	if _, ok := d.WriteCharacteristic(); ok {
		t.Error("assigning the read role must not touch the write role")
	}
}

func TestAssignDefaultKeepsPrevious(t *testing.T) {
	d, _ := newTestDevice(t)
	if err := d.AssignDefault(RoleWrite, ByIdentifier(DefaultWriteCharacteristic)); err != nil {
		t.Fatal(err)
	}

	err := d.AssignDefault(RoleWrite, ByIdentifier(charid.UUID16(0x1234)))
	if !errors.Is(err, ErrNoMatchingCharacteristic) {
		t.Fatalf("expected ErrNoMatchingCharacteristic, got %v", err)
	}
	c, ok := d.WriteCharacteristic()
	if !ok || c.UUID != charWrite.UUID {
		t.Error("expected previous write role to be kept")
	}
}

func TestSetCharacteristicsKeepsRoles(t *testing.T) {
	d, p := newTestDevice(t)
	if err := d.AssignDefault(RoleWrite, ByIdentifier(DefaultWriteCharacteristic)); err != nil {
		t.Fatal(err)
	}

	d.SetCharacteristics([]gatt.Characteristic{charNotify})
	wc, ok := d.WriteCharacteristic()
	if !ok || wc.UUID != charWrite.UUID {
		t.Fatalf("expected write role to survive rediscovery, got %v, %v", wc, ok)
	}
	if got := d.CharacteristicsByKind(gatt.OpNotify); len(got) != 1 {
		t.Errorf("expected 1 notify characteristic, got %d", len(got))
	}

	err := d.Write(context.Background(), []byte{1})
	if !errors.Is(err, transport.ErrCharacteristicUnresolved) {
		t.Fatalf("expected ErrCharacteristicUnresolved, got %v", err)
	}
	var we *transport.WriteError
	if !errors.As(err, &we) || we.Char != charWrite.UUID || we.Address != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("unexpected write error: %#v", we)
	}
	if p.WriteCount() != 0 {
		t.Errorf("expected no transport write, got %d", p.WriteCount())
	}

	d.SetCharacteristics([]gatt.Characteristic{charWrite, charNotify})
	if err := d.Write(context.Background(), []byte{1}); err != nil {
		t.Errorf("expected write to succeed once the characteristic is back, got %v", err)
	}
}

func TestWritePropagatesTransportError(t *testing.T) {
	d, p := newTestDevice(t)
	if err := d.AssignDefault(RoleWrite, ByIdentifier(DefaultWriteCharacteristic)); err != nil {
		t.Fatal(err)
	}
	p.FailAfter(0, transport.ErrConnectionLost)

	err := d.Write(context.Background(), []byte{1})
	if !errors.Is(err, transport.ErrConnectionLost) {
		t.Fatalf("expected ErrConnectionLost, got %v", err)
	}
	var we *transport.WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *transport.WriteError in chain, got %T", err)
	}
}

func TestWriteUsesMockConn(t *testing.T) {
	conn := mocks.NewMockConn(t)
	conn.EXPECT().Discover(mock.Anything).Return([]gatt.Characteristic{charWrite}, nil).Once()
	conn.EXPECT().Write(mock.Anything, charWrite, []byte{0x56, 1, 2, 3, 0x00, 0xF0, 0xAA}).Return(nil).Once()
	conn.EXPECT().Disconnect(mock.Anything).Return(nil).Once()

	ctx := context.Background()
	d := NewDevice("QHM-1", "", conn)
	if err := d.Discover(ctx); err != nil {
		t.Fatal(err)
	}
	if err := d.AssignDefault(RoleWrite, ByIdentifier(DefaultWriteCharacteristic)); err != nil {
		t.Fatal(err)
	}
	if err := d.Write(ctx, []byte{0x56, 1, 2, 3, 0x00, 0xF0, 0xAA}); err != nil {
		t.Fatal(err)
	}
	if err := d.Disconnect(ctx); err != nil {
		t.Fatal(err)
	}
	if err := d.Write(ctx, []byte{1}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected after Disconnect, got %v", err)
	}
}

func TestInfo(t *testing.T) {
	d, _ := newTestDevice(t)
	_ = d.AssignDefault(RoleWrite, ByIdentifier(DefaultWriteCharacteristic))
	_ = d.AssignDefault(RoleRead, ByKind(gatt.OpNotify))

	info := d.Info()
	if info.Address != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("unexpected address %q", info.Address)
	}
	if len(info.Characteristics) != 3 {
		t.Errorf("expected 3 characteristics, got %d", len(info.Characteristics))
	}
	if !strings.HasPrefix(info.WriteCharacteristic, "0000ffd9") {
		t.Errorf("unexpected write characteristic %q", info.WriteCharacteristic)
	}
	if !strings.HasPrefix(info.ReadCharacteristic, "0000ffd4") {
		t.Errorf("unexpected read characteristic %q", info.ReadCharacteristic)
	}
}

func TestCharRoleString(t *testing.T) {
	if RoleWrite.String() != "write" || RoleRead.String() != "read" {
		t.Error("unexpected role names")
	}
	if !strings.HasPrefix(ByKind(gatt.OpNotify).String(), "kind") {
		t.Error("unexpected target string")
	}
}
