// Package gatt describes the characteristics a connected peripheral exposes
// and selects among them.
//
// # Operation Kinds
//
// Each characteristic carries an OpKind bit set mirroring the GATT
// characteristic properties field (bits 0..7):
//
//	Broadcast | Read | WriteWithoutResponse | Write |
//	Notify | Indicate | AuthenticatedSignedWrites | ExtendedProperties
//
// # Selection Policy
//
// Select compares the bit set of a characteristic against the filter with
// exact equality, not a subset test. A filter of
//
//	gatt.OpWrite | gatt.OpWriteWithoutResponse
//
// matches only characteristics whose properties are exactly that pair; a
// characteristic that is additionally notifiable is not selected. Older
// releases of the library briefly used subset matching, so callers porting
// filters should double check them.
package gatt
