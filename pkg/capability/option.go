package capability

import (
	"errors"
	"fmt"
	"math"
)

// Option errors.
var (
	ErrInvalidRange  = errors.New("value out of range")
	ErrInvalidOption = errors.New("invalid option")
	ErrNotSupported  = errors.New("option not supported by protocol")
)

// Option is a capability option. The set of implementations is closed.
type Option interface {
	// Validate reports whether the option is well formed.
	Validate() error

	encode(p Protocol) ([]byte, error)
}

// Power is the power capability.
type Power uint8

const (
	PowerOff Power = iota
	PowerOn
)

// Validate implements Option.
func (p Power) Validate() error {
	if p > PowerOn {
		return fmt.Errorf("power %d: %w", uint8(p), ErrInvalidOption)
	}
	return nil
}

// String returns "on" or "off".
func (p Power) String() string {
	switch p {
	case PowerOn:
		return "on"
	case PowerOff:
		return "off"
	default:
		return fmt.Sprintf("power(%d)", uint8(p))
	}
}

func (p Power) encode(proto Protocol) ([]byte, error) { return proto.Power(p) }

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// RGB returns the color (r, g, b).
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Validate implements Option. Every triple is valid.
func (c Color) Validate() error { return nil }

// Scale multiplies each component by level and truncates toward zero.
func (c Color) Scale(level float32) Color {
	return Color{
		R: uint8(float32(c.R) * level),
		G: uint8(float32(c.G) * level),
		B: uint8(float32(c.B) * level),
	}
}

// String returns the color as "#rrggbb".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) encode(proto Protocol) ([]byte, error) { return proto.Color(c) }

// Brightness is a level in [0,1], optionally combined with a color.
type Brightness struct {
	level    float32
	color    Color
	hasColor bool
}

// Level returns a brightness option without a color.
func Level(level float32) Brightness {
	return Brightness{level: level}
}

// LevelWithColor returns a brightness option applied to color.
func LevelWithColor(level float32, color Color) Brightness {
	return Brightness{level: level, color: color, hasColor: true}
}

// Value returns the level.
func (b Brightness) Value() float32 { return b.level }

// Color returns the color, if one was given.
func (b Brightness) Color() (Color, bool) { return b.color, b.hasColor }

// Validate implements Option.
func (b Brightness) Validate() error {
	l := float64(b.level)
	if math.IsNaN(l) || l < 0 || l > 1 {
		return fmt.Errorf("brightness %v: %w", b.level, ErrInvalidRange)
	}
	return nil
}

func (b Brightness) encode(proto Protocol) ([]byte, error) { return proto.Brightness(b) }

// StaticColor is a color the peripheral can animate natively.
type StaticColor uint8

const (
	Red StaticColor = iota
	Green
	Blue
)

// Validate reports whether c is a known color.
func (c StaticColor) Validate() error {
	if c > Blue {
		return fmt.Errorf("static color %d: %w", uint8(c), ErrInvalidOption)
	}
	return nil
}

// String returns the color name.
func (c StaticColor) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("static(%d)", uint8(c))
	}
}

// HWSpeed is one of the nine hardware animation speeds, Speed1 the slowest.
type HWSpeed uint8

const (
	Speed1 HWSpeed = iota + 1
	Speed2
	Speed3
	Speed4
	Speed5
	Speed6
	Speed7
	Speed8
	Speed9
)

// Validate reports whether s is one of Speed1..Speed9.
func (s HWSpeed) Validate() error {
	if s < Speed1 || s > Speed9 {
		return fmt.Errorf("hardware speed %d: %w", uint8(s), ErrInvalidOption)
	}
	return nil
}

// HWAnimate is a hardware-native animation.
type HWAnimate struct {
	Color StaticColor
	Speed HWSpeed
}

// Pulsating returns a pulsating animation of color at speed.
func Pulsating(color StaticColor, speed HWSpeed) HWAnimate {
	return HWAnimate{Color: color, Speed: speed}
}

// Validate implements Option.
func (a HWAnimate) Validate() error {
	if err := a.Color.Validate(); err != nil {
		return err
	}
	return a.Speed.Validate()
}

func (a HWAnimate) encode(proto Protocol) ([]byte, error) { return proto.HWAnimate(a) }

var (
	_ Option = Power(0)
	_ Option = Color{}
	_ Option = Brightness{}
	_ Option = HWAnimate{}
)
