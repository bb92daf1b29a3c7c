// Package controller manages the set of peripherals a ledly session drives.
//
// A Controller scans for advertisements (optionally restricted by a name
// prefix), connects to them, discovers their characteristics and assigns the
// write characteristic to each device. Devices are then driven one at a time
// by the caller through package capability and package animation.
//
//	ctrl, _ := controller.New(controller.Config{
//		Scanner:    bluetooth.NewScanner(bluetooth.Config{}),
//		NamePrefix: "QHM-",
//	})
//	if err := ctrl.ConnectDiscovered(ctx, nil); err != nil { ... }
//	for _, dev := range ctrl.List() {
//		capability.TurnOn(ctx, dev, protocol.GenericRGB{})
//	}
//	ctrl.DisconnectAll(ctx)
//
// Every connection is wrapped in a transport.TracedConn, so writes and
// failures reach the configured protocol logger tagged with the session ID.
package controller
