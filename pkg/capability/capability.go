package capability

import (
	"context"
	"fmt"
)

// Protocol encodes options for one peripheral family. Each method returns a
// fresh buffer owned by the caller.
type Protocol interface {
	Power(p Power) ([]byte, error)
	Color(c Color) ([]byte, error)
	Brightness(b Brightness) ([]byte, error)
	HWAnimate(a HWAnimate) ([]byte, error)
}

// Writable accepts command buffers for its write characteristic.
type Writable interface {
	Write(ctx context.Context, data []byte) error
}

// Encode validates opt and returns its buffer under p.
func Encode(p Protocol, opt Option) ([]byte, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	buf, err := opt.encode(p)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", opt, err)
	}
	return buf, nil
}

// Set encodes opt with p and writes the buffer to dev. Nothing is written
// when validation or encoding fails.
func Set(ctx context.Context, dev Writable, p Protocol, opt Option) error {
	buf, err := Encode(p, opt)
	if err != nil {
		return err
	}
	return dev.Write(ctx, buf)
}

// TurnOn powers the peripheral on.
func TurnOn(ctx context.Context, dev Writable, p Protocol) error {
	return Set(ctx, dev, p, PowerOn)
}

// TurnOff powers the peripheral off.
func TurnOff(ctx context.Context, dev Writable, p Protocol) error {
	return Set(ctx, dev, p, PowerOff)
}

// SetColor sets a static color.
func SetColor(ctx context.Context, dev Writable, p Protocol, r, g, b uint8) error {
	return Set(ctx, dev, p, RGB(r, g, b))
}

// SetBrightness sets color (r, g, b) at level.
func SetBrightness(ctx context.Context, dev Writable, p Protocol, level float32, r, g, b uint8) error {
	return Set(ctx, dev, p, LevelWithColor(level, RGB(r, g, b)))
}

// Pulsate starts the hardware pulsating animation.
func Pulsate(ctx context.Context, dev Writable, p Protocol, color StaticColor, speed HWSpeed) error {
	return Set(ctx, dev, p, Pulsating(color, speed))
}
