// Command ledly-log is a tool for viewing and analyzing ledly protocol log files.
//
// Log files are created by running ledly with the -protocol-log flag.
//
// Usage:
//
//	ledly-log <command> [flags] <file.llog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSONL or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	ledly-log view lights.llog
//
//	# View only the writes sent to one device
//	ledly-log view --category write --device QHM-1A2B lights.llog
//
//	# Export to CSV
//	ledly-log export --format csv -o lights.csv lights.llog
//
//	# Keep a single session
//	ledly-log filter --session 6f1c2a9e -o session.llog lights.llog
//
//	# Show statistics
//	ledly-log stats lights.llog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ledly-go/ledly/cmd/ledly-log/commands"
)

const usage = `ledly-log - ledly Protocol Log Analyzer

Usage:
  ledly-log <command> [flags] <file.llog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSONL or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "ledly-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func newFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "ledly-log %s - %s\n\nUsage:\n  ledly-log %s [flags] <file.llog>\n\nFlags:\n", name, synopsis, name)
		fs.PrintDefaults()
	}
	return fs
}

// logPath parses args and returns the single positional log file path.
func logPath(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := newFlagSet("view", "View log file in human-readable format")
	category := fs.String("category", "", "Filter by category (write, state, animation, error)")
	device := fs.String("device", "", "Filter by device name")
	session := fs.String("session", "", "Filter by session ID")
	path := logPath(fs, args)

	opts := commands.FilterOptions{Category: *category, Device: *device, SessionID: *session}
	if err := commands.RunView(path, opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export log file to JSONL or CSV format")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path := logPath(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter log file and write to new file")
	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	device := fs.String("device", "", "Filter by device name")
	category := fs.String("category", "", "Filter by category (write, state, animation, error)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	path := logPath(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:    *output,
		SessionID: *session,
		Device:    *device,
		Category:  *category,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
	}
	if err := commands.RunFilter(path, opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the log file")
	path := logPath(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
