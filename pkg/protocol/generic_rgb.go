package protocol

import (
	"fmt"

	"github.com/ledly-go/ledly/pkg/capability"
)

// GenericRGB command bytes.
const (
	powerPrefix  byte = 0xCC
	powerOn      byte = 0x23
	powerOff     byte = 0x24
	powerSuffix  byte = 0x33
	colorPrefix  byte = 0x56
	colorMode    byte = 0xF0
	colorSuffix  byte = 0xAA
	effectPrefix byte = 0xBB
	effectSuffix byte = 0x44
)

// staticColorCodes maps capability.StaticColor to pulsating effect codes.
var staticColorCodes = map[capability.StaticColor]byte{
	capability.Red:   0x26,
	capability.Green: 0x27,
	capability.Blue:  0x28,
}

// speedCodes maps capability.HWSpeed to effect speed bytes. The steps are
// not uniform and must match the firmware.
var speedCodes = map[capability.HWSpeed]byte{
	capability.Speed1: 0x1F,
	capability.Speed2: 0x1B,
	capability.Speed3: 0x1A,
	capability.Speed4: 0x17,
	capability.Speed5: 0x13,
	capability.Speed6: 0x10,
	capability.Speed7: 0x0C,
	capability.Speed8: 0x05,
	capability.Speed9: 0x01,
}

// GenericRGB encodes the GenericRGB command set. The zero value is ready
// to use.
type GenericRGB struct {
	// LegacyOff encodes Power Off as Color(0,0,0).
	LegacyOff bool
}

// Power implements capability.Protocol.
func (g GenericRGB) Power(p capability.Power) ([]byte, error) {
	switch p {
	case capability.PowerOn:
		return []byte{powerPrefix, powerOn, powerSuffix}, nil
	case capability.PowerOff:
		if g.LegacyOff {
			return g.Color(capability.RGB(0, 0, 0))
		}
		return []byte{powerPrefix, powerOff, powerSuffix}, nil
	default:
		return nil, fmt.Errorf("power %s: %w", p, capability.ErrInvalidOption)
	}
}

// Color implements capability.Protocol.
func (GenericRGB) Color(c capability.Color) ([]byte, error) {
	return []byte{colorPrefix, c.R, c.G, c.B, 0x00, colorMode, colorSuffix}, nil
}

// Brightness implements capability.Protocol.
func (g GenericRGB) Brightness(b capability.Brightness) ([]byte, error) {
	c, ok := b.Color()
	if !ok {
		return nil, fmt.Errorf("brightness level without color: %w", capability.ErrNotSupported)
	}
	return g.Color(c.Scale(b.Value()))
}

// HWAnimate implements capability.Protocol.
func (GenericRGB) HWAnimate(a capability.HWAnimate) ([]byte, error) {
	color, ok := staticColorCodes[a.Color]
	if !ok {
		return nil, fmt.Errorf("static color %s: %w", a.Color, capability.ErrInvalidOption)
	}
	speed, ok := speedCodes[a.Speed]
	if !ok {
		return nil, fmt.Errorf("hardware speed %d: %w", uint8(a.Speed), capability.ErrInvalidOption)
	}
	return []byte{effectPrefix, color, speed, effectSuffix}, nil
}

var _ capability.Protocol = GenericRGB{}
