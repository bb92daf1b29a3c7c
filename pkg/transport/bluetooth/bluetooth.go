// Package bluetooth implements transport.Scanner and transport.Conn on top of
// the host Bluetooth LE stack via tinygo.org/x/bluetooth.
package bluetooth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/ledly-go/ledly/pkg/gatt"
	"github.com/ledly-go/ledly/pkg/transport"
)

// Config configures a Scanner.
type Config struct {
	// Adapter is the host adapter. Defaults to bluetooth.DefaultAdapter.
	Adapter *bluetooth.Adapter

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// Scanner scans for and connects to peripherals on a host adapter.
type Scanner struct {
	adapter *bluetooth.Adapter
	logger  *slog.Logger

	enableOnce sync.Once
	enableErr  error

	mu      sync.Mutex
	seen    map[string]bluetooth.Address
	conns   map[string]*Conn
	scanMux sync.Mutex
}

// NewScanner creates a Scanner. The adapter is enabled lazily on first use.
func NewScanner(cfg Config) *Scanner {
	adapter := cfg.Adapter
	if adapter == nil {
		adapter = bluetooth.DefaultAdapter
	}
	return &Scanner{
		adapter: adapter,
		logger:  cfg.Logger,
		seen:    make(map[string]bluetooth.Address),
		conns:   make(map[string]*Conn),
	}
}

func (s *Scanner) enable() error {
	s.enableOnce.Do(func() {
		if err := s.adapter.Enable(); err != nil {
			s.enableErr = fmt.Errorf("enable adapter: %w", err)
			return
		}
		s.adapter.SetConnectHandler(s.onConnect)
	})
	return s.enableErr
}

func (s *Scanner) onConnect(device bluetooth.Device, connected bool) {
	addr := device.Address.String()
	s.debugLog("bluetooth: connect handler", "address", addr, "connected", connected)
	if connected {
		return
	}
	s.mu.Lock()
	c := s.conns[addr]
	s.mu.Unlock()
	if c != nil {
		c.markLost()
	}
}

// Scan implements transport.Scanner. Each address is reported once, with the
// first advertised name seen for it.
func (s *Scanner) Scan(ctx context.Context, timeout time.Duration) ([]transport.Advertisement, error) {
	if err := s.enable(); err != nil {
		return nil, err
	}

	s.scanMux.Lock()
	defer s.scanMux.Unlock()

	var (
		mu    sync.Mutex
		ads   []transport.Advertisement
		index = make(map[string]int)
	)

	done := make(chan error, 1)
	go func() {
		done <- s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			addr := result.Address.String()
			name := result.LocalName()

			mu.Lock()
			defer mu.Unlock()
			if i, ok := index[addr]; ok {
				if ads[i].Name == transport.UnknownName && name != "" {
					ads[i].Name = name
				}
				return
			}
			if name == "" {
				name = transport.UnknownName
			}
			index[addr] = len(ads)
			ads = append(ads, transport.Advertisement{Name: name, Address: addr, RSSI: result.RSSI})

			s.mu.Lock()
			s.seen[addr] = result.Address
			s.mu.Unlock()
		})
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var scanErr error
	select {
	case <-timer.C:
	case <-ctx.Done():
		scanErr = ctx.Err()
	case err := <-done:
		// Scan returned on its own; nothing to stop.
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		done = nil
	}
	if done != nil {
		if err := s.adapter.StopScan(); err != nil {
			s.debugLog("bluetooth: stop scan failed", "error", err)
		}
		if err := <-done; err != nil && scanErr == nil {
			scanErr = fmt.Errorf("scan: %w", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	s.debugLog("bluetooth: scan finished", "found", len(ads))
	if scanErr != nil {
		return nil, scanErr
	}
	out := make([]transport.Advertisement, len(ads))
	copy(out, ads)
	return out, nil
}

// Connect implements transport.Scanner. adv must have been reported by Scan.
func (s *Scanner) Connect(ctx context.Context, adv transport.Advertisement) (transport.Conn, error) {
	if err := s.enable(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	addr, ok := s.seen[adv.Address]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("connect %s: not seen in a scan: %w", adv.Address, transport.ErrConnectionLost)
	}

	device, err := s.adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", adv.Address, err)
	}

	c := &Conn{
		scanner: s,
		device:  device,
		address: adv.Address,
		chars:   make(map[uuid.UUID]bluetooth.DeviceCharacteristic),
	}
	s.mu.Lock()
	s.conns[adv.Address] = c
	s.mu.Unlock()

	s.debugLog("bluetooth: connected", "address", adv.Address, "name", adv.Name)
	return c, nil
}

func (s *Scanner) forget(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, address)
}

func (s *Scanner) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// Conn is a link to one peripheral.
type Conn struct {
	scanner *Scanner
	device  bluetooth.Device
	address string

	mu         sync.Mutex
	chars      map[uuid.UUID]bluetooth.DeviceCharacteristic
	discovered bool
	lost       bool
}

// Address implements transport.Conn.
func (c *Conn) Address() string {
	return c.address
}

// Discover implements transport.Conn. Properties are not reported by the
// host stack and are left empty.
func (c *Conn) Discover(ctx context.Context) ([]gatt.Characteristic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lost {
		return nil, transport.ErrConnectionLost
	}
	return c.discoverLocked()
}

func (c *Conn) discoverLocked() ([]gatt.Characteristic, error) {
	services, err := c.device.DiscoverServices(nil)
	if err != nil {
		return nil, fmt.Errorf("discover services: %w", err)
	}

	var out []gatt.Characteristic
	for _, svc := range services {
		svcID, err := uuid.Parse(svc.UUID().String())
		if err != nil {
			return nil, fmt.Errorf("service uuid %s: %w", svc.UUID(), err)
		}
		chars, err := svc.DiscoverCharacteristics(nil)
		if err != nil {
			return nil, fmt.Errorf("discover characteristics of %s: %w", svcID, err)
		}
		for _, ch := range chars {
			id, err := uuid.Parse(ch.UUID().String())
			if err != nil {
				return nil, fmt.Errorf("characteristic uuid %s: %w", ch.UUID(), err)
			}
			c.chars[id] = ch
			out = append(out, gatt.Characteristic{UUID: id, Service: svcID})
		}
	}
	c.discovered = true
	c.scanner.debugLog("bluetooth: discovered", "address", c.address, "characteristics", len(out))
	return out, nil
}

// Write implements transport.Conn using an unacknowledged write.
func (c *Conn) Write(ctx context.Context, char gatt.Characteristic, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lost {
		return transport.NewWriteError(c.address, char.UUID, transport.ErrConnectionLost)
	}
	if !c.discovered {
		if _, err := c.discoverLocked(); err != nil {
			return transport.NewWriteError(c.address, char.UUID, err)
		}
	}
	dc, ok := c.chars[char.UUID]
	if !ok {
		return transport.NewWriteError(c.address, char.UUID, transport.ErrCharacteristicUnresolved)
	}
	if _, err := dc.WriteWithoutResponse(data); err != nil {
		return transport.NewWriteError(c.address, char.UUID, fmt.Errorf("%w: %v", transport.ErrWriteRejected, err))
	}
	return nil
}

// Disconnect implements transport.Conn.
func (c *Conn) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scanner.forget(c.address)
	if c.lost {
		return nil
	}
	c.lost = true
	if err := c.device.Disconnect(); err != nil {
		return fmt.Errorf("disconnect %s: %w", c.address, err)
	}
	return nil
}

func (c *Conn) markLost() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lost = true
}

var (
	_ transport.Scanner = (*Scanner)(nil)
	_ transport.Conn    = (*Conn)(nil)
)
