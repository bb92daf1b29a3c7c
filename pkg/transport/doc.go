// Package transport defines the contract between the ledly core and the
// wireless link it drives.
//
// The core needs exactly one thing from a connected peripheral: write these
// bytes to this characteristic. Conn adds the few operations around that
// write which the device model and the controller use (address, discovery of
// characteristics, disconnect). Scanner is the discovery collaborator used by
// pkg/controller; the core itself never scans.
//
// Writes are fire-and-forget: a nil error only means the link accepted the
// buffer, never that the peripheral acted on it. Conn implementations do not
// retry and do not time out on their own; pass a context with a deadline if
// a stalled link must be abandoned.
//
// Implementations:
//   - transport/bluetooth: tinygo.org/x/bluetooth (BlueZ, CoreBluetooth, WinRT)
//   - transport/memory: in-process peripheral for tests and dry runs
//   - TracedConn: decorator recording every write as a protocol log event
package transport
