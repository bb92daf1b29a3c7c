package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ledly-go/ledly/pkg/capability"
)

func TestGenericRGBPower(t *testing.T) {
	var g GenericRGB

	on, err := g.Power(capability.PowerOn)
	if err != nil || !bytes.Equal(on, []byte{0xCC, 0x23, 0x33}) {
		t.Errorf("Power On = % X, %v", on, err)
	}
	off, err := g.Power(capability.PowerOff)
	if err != nil || !bytes.Equal(off, []byte{0xCC, 0x24, 0x33}) {
		t.Errorf("Power Off = % X, %v", off, err)
	}
}

func TestGenericRGBLegacyOff(t *testing.T) {
	g := GenericRGB{LegacyOff: true}
	off, err := g.Power(capability.PowerOff)
	if err != nil || !bytes.Equal(off, []byte{0x56, 0, 0, 0, 0x00, 0xF0, 0xAA}) {
		t.Errorf("legacy Power Off = % X, %v", off, err)
	}
	on, _ := g.Power(capability.PowerOn)
	if !bytes.Equal(on, []byte{0xCC, 0x23, 0x33}) {
		t.Errorf("legacy Power On = % X", on)
	}
}

func TestGenericRGBColorAllComponents(t *testing.T) {
	var g GenericRGB
	for _, v := range []int{0, 1, 0x7F, 0x80, 0xFE, 0xFF} {
		for _, c := range []capability.Color{
			capability.RGB(uint8(v), 0, 0),
			capability.RGB(0, uint8(v), 0),
			capability.RGB(0, 0, uint8(v)),
			capability.RGB(uint8(v), uint8(v), uint8(v)),
		} {
			got, err := g.Color(c)
			want := []byte{0x56, c.R, c.G, c.B, 0x00, 0xF0, 0xAA}
			if err != nil || !bytes.Equal(got, want) {
				t.Errorf("Color(%v) = % X, %v; want % X", c, got, err, want)
			}
		}
	}
}

func TestGenericRGBBrightness(t *testing.T) {
	var g GenericRGB
	base := capability.RGB(200, 100, 50)

	tests := []struct {
		level float32
		want  []byte
	}{
		{0, []byte{0x56, 0, 0, 0, 0x00, 0xF0, 0xAA}},
		{1, []byte{0x56, 200, 100, 50, 0x00, 0xF0, 0xAA}},
		{0.5, []byte{0x56, 100, 50, 25, 0x00, 0xF0, 0xAA}},
	}
	for _, tt := range tests {
		got, err := g.Brightness(capability.LevelWithColor(tt.level, base))
		if err != nil || !bytes.Equal(got, tt.want) {
			t.Errorf("LevelWithColor(%v) = % X, %v; want % X", tt.level, got, err, tt.want)
		}
	}
}

func TestGenericRGBBareLevelNotSupported(t *testing.T) {
	var g GenericRGB
	for _, l := range []float32{0, 0.5, 1} {
		buf, err := g.Brightness(capability.Level(l))
		if !errors.Is(err, capability.ErrNotSupported) {
			t.Errorf("Level(%v): expected ErrNotSupported, got %v", l, err)
		}
		if buf != nil {
			t.Errorf("Level(%v): expected no buffer, got % X", l, buf)
		}
	}
}

func TestGenericRGBPulsating(t *testing.T) {
	var g GenericRGB

	colors := map[capability.StaticColor]byte{
		capability.Red:   0x26,
		capability.Green: 0x27,
		capability.Blue:  0x28,
	}
	speeds := []byte{0x1F, 0x1B, 0x1A, 0x17, 0x13, 0x10, 0x0C, 0x05, 0x01}

	for color, code := range colors {
		for i, speed := range speeds {
			s := capability.HWSpeed(i + 1)
			got, err := g.HWAnimate(capability.Pulsating(color, s))
			want := []byte{0xBB, code, speed, 0x44}
			if err != nil || !bytes.Equal(got, want) {
				t.Errorf("Pulsating(%s, %d) = % X, %v; want % X", color, s, got, err, want)
			}
		}
	}
}

func TestGenericRGBPulsatingInvalid(t *testing.T) {
	var g GenericRGB
	if _, err := g.HWAnimate(capability.Pulsating(capability.StaticColor(3), capability.Speed1)); !errors.Is(err, capability.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption for unknown color, got %v", err)
	}
	if _, err := g.HWAnimate(capability.Pulsating(capability.Red, 0)); !errors.Is(err, capability.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption for unknown speed, got %v", err)
	}
}

func TestFreshBuffers(t *testing.T) {
	var g GenericRGB
	a, _ := g.Power(capability.PowerOn)
	a[0] = 0
	b, _ := g.Power(capability.PowerOn)
	if b[0] != 0xCC {
		t.Error("buffers must not be shared between calls")
	}
}

func TestLookup(t *testing.T) {
	p, err := Lookup(NameGenericRGB)
	if err != nil {
		t.Fatal(err)
	}
	if g, ok := p.(GenericRGB); !ok || g.LegacyOff {
		t.Errorf("unexpected protocol %#v", p)
	}

	p, err = Lookup(NameGenericRGBLegacy)
	if err != nil {
		t.Fatal(err)
	}
	if g, ok := p.(GenericRGB); !ok || !g.LegacyOff {
		t.Errorf("unexpected protocol %#v", p)
	}

	if _, err := Lookup("triones"); !errors.Is(err, ErrUnknownProtocol) {
		t.Errorf("expected ErrUnknownProtocol, got %v", err)
	}

	names := Names()
	if len(names) != 2 || names[0] != NameGenericRGB {
		t.Errorf("unexpected names %v", names)
	}
}
