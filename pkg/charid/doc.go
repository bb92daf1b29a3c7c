// Package charid resolves short Bluetooth characteristic identifiers into
// their canonical 128-bit form.
//
// # Canonical Space
//
// Every identifier handled by ledly lives in a single 128-bit space built
// from the Bluetooth base UUID:
//
//	xxxxxxxx-0000-1000-8000-00805F9B34FB
//
// The leading 32 bits (the x's) hold the short form. A 16-bit identifier is
// zero-extended to 32 bits first, so 0xFFD9 and 0x0000FFD9 resolve to the
// same value:
//
//	charid.Resolve(charid.UUID16(0xFFD9))     // 0000ffd9-0000-1000-8000-00805f9b34fb
//	charid.Resolve(charid.UUID32(0x0000FFD9)) // 0000ffd9-0000-1000-8000-00805f9b34fb
//
// A full 128-bit identifier resolves to itself.
package charid
