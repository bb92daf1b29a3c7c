package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ledly-go/ledly/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Devices          map[string]*DeviceStats
	Sessions         map[string]bool
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// DeviceStats holds statistics for a single device.
type DeviceStats struct {
	Address      string
	FirstSeen    time.Time
	LastSeen     time.Time
	Events       int
	Writes       int
	BytesWritten int
	Breaths      int
	Errors       int
}

// Collect reads every event of the log file into Stats.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Devices:          make(map[string]*DeviceStats),
		Sessions:         make(map[string]bool),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++
		if event.SessionID != "" {
			stats.Sessions[event.SessionID] = true
		}

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.Error != nil {
			stats.Errors++
		}

		if event.Device == "" {
			continue
		}
		dev, ok := stats.Devices[event.Device]
		if !ok {
			dev = &DeviceStats{
				Address:   event.Address,
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Devices[event.Device] = dev
		}
		dev.Events++
		if event.Timestamp.After(dev.LastSeen) {
			dev.LastSeen = event.Timestamp
		}
		if event.Write != nil {
			dev.Writes++
			dev.BytesWritten += event.Write.Size
		}
		if event.Animation != nil && event.Animation.Phase == log.AnimationBreath {
			dev.Breaths++
		}
		if event.Error != nil {
			dev.Errors++
		}
	}
	return stats, nil
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== ledly Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Sessions:     %d\n", len(stats.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryWrite, log.CategoryState, log.CategoryAnimation, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Devices: %d\n", len(stats.Devices))
	if len(stats.Devices) > 0 {
		names := make([]string, 0, len(stats.Devices))
		for name := range stats.Devices {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(w)
		for _, name := range names {
			d := stats.Devices[name]
			duration := d.LastSeen.Sub(d.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  %s %s: %d events, duration %s\n", name, d.Address, d.Events, duration)
			if d.Writes > 0 {
				fmt.Fprintf(w, "           Writes: %d (%d bytes)\n", d.Writes, d.BytesWritten)
			}
			if d.Breaths > 0 {
				fmt.Fprintf(w, "           Breaths: %d\n", d.Breaths)
			}
			if d.Errors > 0 {
				fmt.Fprintf(w, "           Errors: %d\n", d.Errors)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
