// Package protocol implements capability.Protocol for peripheral families.
//
// # GenericRGB
//
// The GenericRGB command set is spoken by the common QHM-*, Triones and
// ELK-style controllers. All buffers are sent as unacknowledged writes to
// characteristic 0xFFD9:
//
//	Power On                  CC 23 33
//	Power Off                 CC 24 33
//	Color RGB(r,g,b)          56 rr gg bb 00 F0 AA
//	LevelWithColor(l, c)      Color(c scaled by l, truncated)
//	Pulsating(color, speed)   BB cc ss 44
//
// A bare brightness Level has no layout and fails with
// capability.ErrNotSupported.
//
// The legacy variant encodes Power Off as Color(0,0,0), which blanks the
// LEDs even while a hardware animation is running.
package protocol
