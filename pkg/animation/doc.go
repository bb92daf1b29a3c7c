// Package animation synthesizes software effects from timed capability
// writes.
//
// # Breathing
//
// One breath walks the brightness of a color from 0 to 100 percent and back,
// one write and one pause per level:
//
//	0, 1, ..., 100, 100, 99, ..., 0     (202 writes)
//
// The pause is set by Speed, from Fastest (5ms) to Slowest (600ms). A Repeat
// of FiniteCount(n) performs n breaths; InfiniteCount breathes until the
// context is cancelled or a write fails. The first error aborts the
// animation and is returned unchanged; the peripheral may be left mid-fade.
//
//	err := animation.Breathe(ctx, dev, protocol.GenericRGB{}, animation.Breathing{
//		Color:  capability.RGB(255, 0, 128),
//		Repeat: animation.InfiniteCount,
//		Speed:  animation.Fast,
//	})
package animation
