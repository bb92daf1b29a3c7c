package main

import (
	"fmt"
	"io"

	"github.com/ledly-go/ledly/pkg/charid"
	"github.com/ledly-go/ledly/pkg/gatt"
	"github.com/ledly-go/ledly/pkg/transport/memory"
)

// dryRunScanner returns an in-memory fleet of two GenericRGB peripherals
// that print every write to out.
func dryRunScanner(out io.Writer) *memory.Scanner {
	chars := []gatt.Characteristic{
		{UUID: charid.From16(0xFFD9), Service: charid.From16(0xFFD5), Properties: gatt.OpWriteWithoutResponse},
		{UUID: charid.From16(0xFFD4), Service: charid.From16(0xFFD0), Properties: gatt.OpNotify},
	}

	var peripherals []*memory.Peripheral
	for i, name := range []string{"QHM-DRY1", "QHM-DRY2"} {
		name := name // per-iteration copy; go directive lowered to 1.21 for the local toolchain
		p := memory.NewPeripheral(name, fmt.Sprintf("00:00:00:00:00:%02X", i+1), chars...)
		p.OnWrite(func(w memory.Write) {
			fmt.Fprintf(out, "[dry-run] %s <- % X\n", name, w.Data)
		})
		peripherals = append(peripherals, p)
	}
	return memory.NewScanner(peripherals...)
}
