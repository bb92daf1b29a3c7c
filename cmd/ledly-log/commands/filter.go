package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ledly-go/ledly/pkg/log"
)

// FilterOptions specifies filtering criteria shared by the view and filter
// commands. Empty fields match everything.
type FilterOptions struct {
	Output    string
	SessionID string
	Device    string
	Category  string
	TimeStart string
	TimeEnd   string
}

// Filter converts the options into a log.Filter.
func (o FilterOptions) Filter() (log.Filter, error) {
	filter := log.Filter{
		SessionID: o.SessionID,
		Device:    o.Device,
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if o.Category != "" {
		c, err := ParseCategory(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// ParseCategory parses a category name (case-insensitive).
func ParseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "write":
		return log.CategoryWrite, nil
	case "state":
		return log.CategoryState, nil
	case "animation":
		return log.CategoryAnimation, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be write, state, animation, or error)", s)
	}
}

// RunFilter filters the log file and writes matching events to opts.Output.
func RunFilter(path string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Filter()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Close()
			return fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}

	if err := logger.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	fmt.Fprintf(w, "Filtered %d events to %s\n", count, opts.Output)
	return nil
}
