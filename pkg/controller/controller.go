package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledly-go/ledly/pkg/charid"
	"github.com/ledly-go/ledly/pkg/log"
	"github.com/ledly-go/ledly/pkg/model"
	"github.com/ledly-go/ledly/pkg/persistence"
	"github.com/ledly-go/ledly/pkg/transport"
)

// Controller errors.
var (
	ErrNoScanner      = errors.New("no scanner configured")
	ErrDeviceNotFound = errors.New("device not found")
)

// DefaultScanTimeout bounds a scan when Config.ScanTimeout is zero.
const DefaultScanTimeout = 2 * time.Second

// Config configures a Controller.
type Config struct {
	// Scanner finds and connects peripherals. Required.
	Scanner transport.Scanner

	// NamePrefix keeps only advertisements whose name contains it.
	NamePrefix string

	// ScanTimeout bounds a scan. Defaults to DefaultScanTimeout.
	ScanTimeout time.Duration

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger

	// ProtocolLogger receives protocol events. Nil disables capture.
	ProtocolLogger log.Logger

	// SessionID tags protocol events. Defaults to a random UUID.
	SessionID string

	// WriteIdentifier returns the write characteristic configured for a
	// peripheral name, or nil to fall back to the remembered one. Optional.
	WriteIdentifier func(name string) charid.Identifier

	// State holds remembered aliases and write characteristics. It is read
	// and updated in place on connect; saving it is up to the caller.
	State *persistence.ControllerState
}

// Controller manages connected devices. It is not safe for concurrent use.
type Controller struct {
	scanner     transport.Scanner
	prefix      string
	scanTimeout time.Duration
	logger      *slog.Logger
	events      log.Logger
	sessionID   string
	state       *persistence.ControllerState
	writeID     func(name string) charid.Identifier
	now         func() time.Time

	devices []*model.Device
}

// New creates a Controller.
func New(cfg Config) (*Controller, error) {
	if cfg.Scanner == nil {
		return nil, ErrNoScanner
	}
	timeout := cfg.ScanTimeout
	if timeout <= 0 {
		timeout = DefaultScanTimeout
	}
	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	return &Controller{
		scanner:     cfg.Scanner,
		prefix:      cfg.NamePrefix,
		scanTimeout: timeout,
		logger:      cfg.Logger,
		events:      log.OrNoop(cfg.ProtocolLogger),
		sessionID:   sessionID,
		state:       cfg.State,
		writeID:     cfg.WriteIdentifier,
		now:         time.Now,
	}, nil
}

// SessionID returns the ID tagging this controller's protocol events.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Discover scans for peripherals whose name contains the name prefix.
func (c *Controller) Discover(ctx context.Context) ([]transport.Advertisement, error) {
	ads, err := c.scanner.Scan(ctx, c.scanTimeout)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	var matched []transport.Advertisement
	for _, ad := range ads {
		if strings.Contains(ad.Name, c.prefix) {
			matched = append(matched, ad)
		}
	}
	c.debugLog("controller: discovered", "seen", len(ads), "matched", len(matched), "prefix", c.prefix)
	return matched, nil
}

// Connect replaces the managed devices by connections to ads. Each device is
// discovered and gets its write characteristic assigned: id when non-nil,
// else Config.WriteIdentifier for its name, else the remembered one, else
// model.DefaultWriteCharacteristic.
//
// Previously managed devices are disconnected first. On failure the devices
// connected so far stay managed and the failing one is disconnected.
func (c *Controller) Connect(ctx context.Context, ads []transport.Advertisement, id charid.Identifier) error {
	if err := c.DisconnectAll(ctx); err != nil {
		c.debugLog("controller: disconnect before connect failed", "error", err)
	}

	for _, ad := range ads {
		dev, err := c.connectOne(ctx, ad, id)
		if err != nil {
			return err
		}
		c.devices = append(c.devices, dev)
	}
	return nil
}

// ConnectDiscovered discovers peripherals and connects all of them.
func (c *Controller) ConnectDiscovered(ctx context.Context, id charid.Identifier) error {
	ads, err := c.Discover(ctx)
	if err != nil {
		return err
	}
	return c.Connect(ctx, ads, id)
}

func (c *Controller) connectOne(ctx context.Context, ad transport.Advertisement, id charid.Identifier) (*model.Device, error) {
	raw, err := c.scanner.Connect(ctx, ad)
	if err != nil {
		return nil, fmt.Errorf("connect %s (%s): %w", ad.Name, ad.Address, err)
	}
	conn := transport.NewTracedConn(raw, c.events, c.sessionID, ad.Name)
	c.emitState(ad, log.StateEntityConnection, "", "CONNECTED")

	rec, known := c.remembered(ad.Address)
	dev := model.NewDevice(ad.Name, rec.Alias, conn)

	fail := func(err error) (*model.Device, error) {
		if derr := dev.Disconnect(ctx); derr != nil {
			c.debugLog("controller: disconnect after failure", "device", ad.Name, "error", derr)
		}
		return nil, err
	}

	if err := dev.Discover(ctx); err != nil {
		return fail(err)
	}

	target := id
	if target == nil && c.writeID != nil {
		target = c.writeID(ad.Name)
	}
	if target == nil && known && rec.WriteCharacteristic != "" {
		if parsed, err := charid.Parse(rec.WriteCharacteristic); err == nil {
			target = parsed
		}
	}
	if target == nil {
		target = model.DefaultWriteCharacteristic
	}
	if err := dev.AssignDefault(model.RoleWrite, model.ByIdentifier(target)); err != nil {
		return fail(err)
	}

	wc, _ := dev.WriteCharacteristic()
	c.emitState(ad, log.StateEntityWriteCharacteristic, "", wc.UUID.String())
	c.remember(dev)

	c.debugLog("controller: connected",
		"device", dev.Name(), "address", dev.Address(), "characteristics", len(dev.Characteristics()), "write", wc.UUID)
	return dev, nil
}

// SetAllCharacteristic assigns the write characteristic selected by target
// on every managed device. Devices without a match keep their assignment;
// their errors are joined.
func (c *Controller) SetAllCharacteristic(target model.Target) error {
	var errs []error
	for _, dev := range c.devices {
		if err := dev.AssignDefault(model.RoleWrite, target); err != nil {
			errs = append(errs, err)
			continue
		}
		wc, _ := dev.WriteCharacteristic()
		c.emitState(advertisement(dev), log.StateEntityWriteCharacteristic, "", wc.UUID.String())
		c.remember(dev)
	}
	return errors.Join(errs...)
}

// List returns the managed devices in connection order.
func (c *Controller) List() []*model.Device {
	return append([]*model.Device(nil), c.devices...)
}

// Get returns the managed device whose name or alias is name.
func (c *Controller) Get(name string) (*model.Device, error) {
	for _, dev := range c.devices {
		if dev.Name() == name || dev.Alias() == name {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrDeviceNotFound)
}

// SetAlias sets the alias of the device called name and remembers it.
func (c *Controller) SetAlias(name, alias string) error {
	dev, err := c.Get(name)
	if err != nil {
		return err
	}
	dev.SetAlias(alias)
	c.remember(dev)
	return nil
}

// DisconnectAll disconnects and forgets every managed device. All devices
// are attempted; errors are joined.
func (c *Controller) DisconnectAll(ctx context.Context) error {
	var errs []error
	for _, dev := range c.devices {
		if err := dev.Disconnect(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.devices = nil
	return errors.Join(errs...)
}

func (c *Controller) remembered(address string) (persistence.DeviceRecord, bool) {
	if c.state == nil {
		return persistence.DeviceRecord{}, false
	}
	return c.state.Device(address)
}

func (c *Controller) remember(dev *model.Device) {
	if c.state == nil {
		return
	}
	rec := persistence.DeviceRecord{
		Address:    dev.Address(),
		Name:       dev.Name(),
		LastSeenAt: c.now(),
	}
	if dev.Alias() != dev.Name() {
		rec.Alias = dev.Alias()
	}
	if wc, ok := dev.WriteCharacteristic(); ok {
		rec.WriteCharacteristic = wc.UUID.String()
	}
	c.state.Upsert(rec)
}

func (c *Controller) emitState(ad transport.Advertisement, entity log.StateEntity, oldState, newState string) {
	c.events.Log(log.Event{
		Timestamp: c.now(),
		SessionID: c.sessionID,
		Category:  log.CategoryState,
		Device:    ad.Name,
		Address:   ad.Address,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
		},
	})
}

func advertisement(dev *model.Device) transport.Advertisement {
	return transport.Advertisement{Name: dev.Name(), Address: dev.Address()}
}

func (c *Controller) debugLog(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
