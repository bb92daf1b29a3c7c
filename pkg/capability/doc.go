// Package capability defines the uniform operation surface of a lighting
// peripheral.
//
// Each capability is a closed set of options:
//
//	Power       PowerOn | PowerOff
//	Color       RGB(r, g, b)
//	Brightness  Level(l) | LevelWithColor(l, color)
//	HWAnimate   Pulsating(static color, hardware speed)
//
// A Protocol turns options into command buffers for one peripheral family.
// Set is the single dispatch point: it validates the option, asks the
// protocol for the buffer and writes it to a Writable (usually
// *model.Device). Encoding failures are returned before anything is written.
//
// Software breathing is driven from above by package animation, which issues
// a timed sequence of brightness options through Set.
package capability
