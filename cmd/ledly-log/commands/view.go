// Package commands implements the ledly-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/ledly-go/ledly/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] CATEGORY device address
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [%s] %-9s %s\n", ts, shortenID(event.SessionID), event.Category, deviceLabel(event))

	switch {
	case event.Write != nil:
		formatWriteDetails(w, event.Write)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Animation != nil:
		formatAnimationDetails(w, event.Animation)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func deviceLabel(event log.Event) string {
	switch {
	case event.Device != "" && event.Address != "":
		return event.Device + " " + event.Address
	case event.Device != "":
		return event.Device
	default:
		return event.Address
	}
}

func formatWriteDetails(w io.Writer, we *log.WriteEvent) {
	fmt.Fprintf(w, "  Characteristic: %s\n", we.Characteristic)
	fmt.Fprintf(w, "  Size: %d bytes\n", we.Size)
	if len(we.Data) > 0 {
		fmt.Fprintf(w, "  Data: % X", we.Data)
		if we.Truncated {
			fmt.Fprint(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
	if we.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(we.Duration))
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity)
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatAnimationDetails(w io.Writer, a *log.AnimationEvent) {
	fmt.Fprintf(w, "  %s %s", a.Name, a.Phase)
	if a.Breath > 0 {
		fmt.Fprintf(w, " breath=%d", a.Breath)
	}
	if a.Interval > 0 {
		fmt.Fprintf(w, " interval=%s", formatDuration(a.Interval))
	}
	fmt.Fprintln(w)
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// RunView prints the events matching opts.
func RunView(path string, opts FilterOptions, output io.Writer) error {
	filter, err := opts.Filter()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}
