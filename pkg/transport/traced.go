package transport

import (
	"context"
	"time"

	"github.com/ledly-go/ledly/pkg/gatt"
	"github.com/ledly-go/ledly/pkg/log"
)

// TracedConn records the traffic of an inner Conn as protocol log events.
// Results of the inner Conn are returned unchanged.
type TracedConn struct {
	inner     Conn
	logger    log.Logger
	sessionID string
	device    string
	now       func() time.Time
}

// NewTracedConn wraps inner. A nil logger disables capture.
func NewTracedConn(inner Conn, logger log.Logger, sessionID, device string) *TracedConn {
	return &TracedConn{
		inner:     inner,
		logger:    log.OrNoop(logger),
		sessionID: sessionID,
		device:    device,
		now:       time.Now,
	}
}

// Unwrap returns the wrapped Conn.
func (c *TracedConn) Unwrap() Conn {
	return c.inner
}

// Address returns the inner address.
func (c *TracedConn) Address() string {
	return c.inner.Address()
}

// Discover discovers characteristics and records failures.
func (c *TracedConn) Discover(ctx context.Context) ([]gatt.Characteristic, error) {
	chars, err := c.inner.Discover(ctx)
	if err != nil {
		c.logError(err, "discover")
	}
	return chars, err
}

// Write writes data and records the buffer.
func (c *TracedConn) Write(ctx context.Context, char gatt.Characteristic, data []byte) error {
	start := c.now()
	err := c.inner.Write(ctx, char, data)

	ev := log.NewWriteEvent(char.UUID.String(), data)
	ev.Duration = c.now().Sub(start)
	c.logger.Log(c.event(log.CategoryWrite, func(e *log.Event) { e.Write = ev }))

	if err != nil {
		c.logError(err, "write "+char.UUID.String())
	}
	return err
}

// Disconnect closes the inner link and records the state change.
func (c *TracedConn) Disconnect(ctx context.Context) error {
	err := c.inner.Disconnect(ctx)
	if err != nil {
		c.logError(err, "disconnect")
		return err
	}
	c.logger.Log(c.event(log.CategoryState, func(e *log.Event) {
		e.StateChange = &log.StateChangeEvent{
			Entity:   log.StateEntityConnection,
			OldState: "CONNECTED",
			NewState: "DISCONNECTED",
		}
	}))
	return nil
}

func (c *TracedConn) logError(err error, op string) {
	c.logger.Log(c.event(log.CategoryError, func(e *log.Event) {
		e.Error = &log.ErrorEventData{Message: err.Error(), Context: op}
	}))
}

func (c *TracedConn) event(cat log.Category, fill func(*log.Event)) log.Event {
	e := log.Event{
		Timestamp: c.now(),
		SessionID: c.sessionID,
		Category:  cat,
		Device:    c.device,
		Address:   c.inner.Address(),
	}
	fill(&e)
	return e
}

var _ Conn = (*TracedConn)(nil)
