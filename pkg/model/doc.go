// Package model implements the ledly device model.
//
// # Device
//
// A Device is a connected peripheral: its advertised name, a user alias,
// the transport connection, the characteristics found by discovery and two
// role references into that set:
//
//	Device (QHM-0A1B)
//	├── Conn (transport, opaque)
//	├── Characteristics
//	│   ├── ffd9 [write-without-response]   <- write role
//	│   └── ffd4 [notify]                   <- read role
//	└── ...
//
// Capability calls funnel through Device.Write, which delivers the buffer to
// the write role. A Device without a write characteristic rejects writes with
// ErrNoWriteCharacteristic.
//
// # Assigning roles
//
// Roles are assigned with AssignDefault, either by canonical identifier or by
// the first characteristic whose properties exactly equal an operation kind:
//
//	dev.AssignDefault(model.RoleWrite, model.ByIdentifier(charid.UUID16(0xFFD9)))
//	dev.AssignDefault(model.RoleRead, model.ByKind(gatt.OpNotify))
//
// AssignDefault is the only mutator of the role references.
//
// # Concurrency
//
// A Device is owned by exactly one logical flow at a time and performs no
// locking. Drive several devices concurrently by running one flow per device.
package model
