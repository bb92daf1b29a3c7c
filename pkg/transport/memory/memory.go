// Package memory provides an in-process peripheral implementing
// transport.Conn, and a Scanner over a fixed set of such peripherals.
//
// Peripherals record every write and can be programmed to fail, which makes
// them the workhorse of the package tests and of the CLI dry-run mode.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ledly-go/ledly/pkg/gatt"
	"github.com/ledly-go/ledly/pkg/transport"
)

// Write is one recorded write.
type Write struct {
	Char gatt.Characteristic
	Data []byte
}

// Peripheral is an in-memory transport.Conn.
// It is safe for concurrent use.
type Peripheral struct {
	mu sync.Mutex

	name    string
	address string
	chars   []gatt.Characteristic

	writes      []Write
	connected   bool
	failAfter   int
	failErr     error
	discoverErr error
	onWrite     func(Write)
}

// NewPeripheral creates a connected peripheral exposing chars.
func NewPeripheral(name, address string, chars ...gatt.Characteristic) *Peripheral {
	return &Peripheral{
		name:      name,
		address:   address,
		chars:     chars,
		connected: true,
		failAfter: -1,
	}
}

// Name returns the advertised name.
func (p *Peripheral) Name() string {
	return p.name
}

// Address implements transport.Conn.
func (p *Peripheral) Address() string {
	return p.address
}

// Discover implements transport.Conn.
func (p *Peripheral) Discover(ctx context.Context) ([]gatt.Characteristic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.discoverErr != nil {
		return nil, p.discoverErr
	}
	if !p.connected {
		return nil, transport.ErrConnectionLost
	}
	out := make([]gatt.Characteristic, len(p.chars))
	copy(out, p.chars)
	return out, nil
}

// Write implements transport.Conn.
func (p *Peripheral) Write(ctx context.Context, char gatt.Characteristic, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()

	if !p.connected {
		p.mu.Unlock()
		return transport.NewWriteError(p.address, char.UUID, transport.ErrConnectionLost)
	}
	if _, ok := p.find(char); !ok {
		p.mu.Unlock()
		return transport.NewWriteError(p.address, char.UUID, transport.ErrCharacteristicUnresolved)
	}
	if p.failAfter == 0 {
		p.mu.Unlock()
		return transport.NewWriteError(p.address, char.UUID, p.failErr)
	}
	if p.failAfter > 0 {
		p.failAfter--
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	w := Write{Char: char, Data: buf}
	p.writes = append(p.writes, w)
	hook := p.onWrite
	p.mu.Unlock()

	if hook != nil {
		hook(w)
	}
	return nil
}

// Disconnect implements transport.Conn.
func (p *Peripheral) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected = false
	return nil
}

func (p *Peripheral) find(char gatt.Characteristic) (gatt.Characteristic, bool) {
	for _, c := range p.chars {
		if c.UUID == char.UUID {
			return c, true
		}
	}
	return gatt.Characteristic{}, false
}

// Writes returns a copy of the recorded writes.
func (p *Peripheral) Writes() []Write {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Write, len(p.writes))
	copy(out, p.writes)
	return out
}

// WriteCount returns the number of recorded writes.
func (p *Peripheral) WriteCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.writes)
}

// Reset discards the recorded writes.
func (p *Peripheral) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes = nil
}

// Connected reports whether the link is up.
func (p *Peripheral) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// Reconnect brings a disconnected link back up.
func (p *Peripheral) Reconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected = true
}

// FailAfter makes the write following n successful writes fail with err,
// and every write after it. A nil err means transport.ErrWriteRejected.
// A negative n disables failures.
func (p *Peripheral) FailAfter(n int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		err = transport.ErrWriteRejected
	}
	p.failAfter = n
	p.failErr = err
}

// FailDiscover makes Discover return err.
func (p *Peripheral) FailDiscover(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.discoverErr = err
}

// OnWrite registers a hook called after every accepted write.
func (p *Peripheral) OnWrite(fn func(Write)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onWrite = fn
}

// Scanner is a transport.Scanner over a fixed set of peripherals.
type Scanner struct {
	mu          sync.Mutex
	peripherals []*Peripheral
	connectErr  map[string]error
}

// NewScanner creates a Scanner that advertises peripherals in order.
func NewScanner(peripherals ...*Peripheral) *Scanner {
	return &Scanner{
		peripherals: peripherals,
		connectErr:  make(map[string]error),
	}
}

// FailConnect makes Connect to address fail with err.
func (s *Scanner) FailConnect(address string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connectErr[address] = err
}

// Scan implements transport.Scanner. It returns immediately.
func (s *Scanner) Scan(ctx context.Context, timeout time.Duration) ([]transport.Advertisement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ads := make([]transport.Advertisement, 0, len(s.peripherals))
	for _, p := range s.peripherals {
		name := p.name
		if name == "" {
			name = transport.UnknownName
		}
		ads = append(ads, transport.Advertisement{Name: name, Address: p.address, RSSI: -50})
	}
	return ads, nil
}

// Connect implements transport.Scanner.
func (s *Scanner) Connect(ctx context.Context, adv transport.Advertisement) (transport.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.connectErr[adv.Address]; err != nil {
		return nil, err
	}
	for _, p := range s.peripherals {
		if p.address == adv.Address {
			p.Reconnect()
			return p, nil
		}
	}
	return nil, fmt.Errorf("no peripheral at %s: %w", adv.Address, transport.ErrConnectionLost)
}

var (
	_ transport.Conn    = (*Peripheral)(nil)
	_ transport.Scanner = (*Scanner)(nil)
)
