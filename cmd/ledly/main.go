// Command ledly controls Bluetooth LE RGB lighting peripherals.
//
// Usage:
//
//	ledly [flags] <command> [args]
//	ledly [flags] -interactive
//
// Flags:
//
//	-config string        Configuration file path
//	-prefix string        Only use peripherals whose name contains prefix
//	-timeout duration     Scan timeout (default 2s)
//	-char string          Write characteristic, e.g. ffd9 (default: family default)
//	-protocol string      Protocol: generic-rgb, generic-rgb-legacy
//	-device string        Target a single device by name or alias
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-protocol-log string  Capture protocol events to this file (.llog)
//	-state string         State file remembering aliases and characteristics
//	-dry-run              Drive in-memory peripherals instead of the radio
//	-interactive          Start the interactive shell
//
// Examples:
//
//	# Turn every QHM-* light red
//	ledly -prefix QHM- color 255 0 0
//
//	# Breathe purple three times, slowly
//	ledly breathe 128 0 255 3 slow
//
//	# Try the commands without hardware
//	ledly -dry-run -interactive
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledly-go/ledly/cmd/ledly/interactive"
	"github.com/ledly-go/ledly/pkg/animation"
	"github.com/ledly-go/ledly/pkg/charid"
	"github.com/ledly-go/ledly/pkg/config"
	"github.com/ledly-go/ledly/pkg/controller"
	ledlylog "github.com/ledly-go/ledly/pkg/log"
	"github.com/ledly-go/ledly/pkg/persistence"
	"github.com/ledly-go/ledly/pkg/transport"
	"github.com/ledly-go/ledly/pkg/transport/bluetooth"
)

// Flags holds the command-line settings. Zero values leave the
// configuration file untouched.
type Flags struct {
	ConfigFile  string
	Prefix      string
	Timeout     time.Duration
	Char        string
	Protocol    string
	Device      string
	LogLevel    string
	ProtocolLog string
	StateFile   string
	DryRun      bool
	Interactive bool
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&flags.Prefix, "prefix", "", "Only use peripherals whose name contains prefix")
	flag.DurationVar(&flags.Timeout, "timeout", 0, "Scan timeout (default 2s)")
	flag.StringVar(&flags.Char, "char", "", "Write characteristic, e.g. ffd9")
	flag.StringVar(&flags.Protocol, "protocol", "", "Protocol: generic-rgb, generic-rgb-legacy")
	flag.StringVar(&flags.Device, "device", "", "Target a single device by name or alias")
	flag.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.ProtocolLog, "protocol-log", "", "Capture protocol events to this file")
	flag.StringVar(&flags.StateFile, "state", "", "State file remembering aliases and characteristics")
	flag.BoolVar(&flags.DryRun, "dry-run", false, "Drive in-memory peripherals instead of the radio")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Start the interactive shell")
}

func main() {
	flag.Parse()
	os.Exit(run())
}

// run executes the command line and returns the exit code. Deferred cleanup
// runs before the process exits.
func run() int {
	cfg, err := loadConfig(flags)
	if err != nil {
		log.Printf("Invalid configuration: %v", err)
		return 1
	}
	setupLogging(cfg.LogLevel)

	if !flags.Interactive && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, commandHelp)
		return 2
	}
	var oneShot Command
	if !flags.Interactive {
		if oneShot, err = ParseCommand(flag.Args()); err != nil {
			log.Printf("%v", err)
			return 1
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			log.Printf("Received signal: %v", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	logger := newSlogLogger(cfg.LogLevel)

	protoLogger, closeLog, err := openProtocolLog(cfg, logger)
	if err != nil {
		log.Printf("Failed to open protocol log: %v", err)
		return 1
	}
	defer closeLog()

	var store *persistence.StateStore
	state := &persistence.ControllerState{}
	if cfg.StateFile != "" {
		store = persistence.NewStateStore(cfg.StateFile)
		if state, err = store.Load(); err != nil {
			log.Printf("Failed to load state: %v", err)
			return 1
		}
	}

	var scanner transport.Scanner
	if cfg.DryRun {
		log.Println("Dry run: using in-memory peripherals")
		scanner = dryRunScanner(os.Stdout)
	} else {
		scanner = bluetooth.NewScanner(bluetooth.Config{Logger: logger})
	}

	ctrl, err := controller.New(controller.Config{
		Scanner:         scanner,
		NamePrefix:      cfg.NamePrefix,
		ScanTimeout:     cfg.ScanTimeout,
		Logger:          logger,
		ProtocolLogger:  protoLogger,
		WriteIdentifier: writeIdentifier(cfg),
		State:           state,
	})
	if err != nil {
		log.Printf("Failed to create controller: %v", err)
		return 1
	}

	if err := connect(ctx, ctrl, cfg); err != nil {
		log.Printf("Failed to connect: %v", err)
		return 1
	}
	defer func() {
		if err := ctrl.DisconnectAll(context.Background()); err != nil {
			log.Printf("Error disconnecting: %v", err)
		}
	}()

	saveState := func() error {
		if store == nil {
			return nil
		}
		return store.Save(state)
	}
	if err := saveState(); err != nil {
		log.Printf("Warning: Failed to save state: %v", err)
	}

	engine := animation.NewEngine(animation.Config{
		Logger:      logger,
		EventLogger: protoLogger,
		SessionID:   ctrl.SessionID(),
	})
	session := NewSession(ctrl, cfg, engine, os.Stdout)
	session.saveState = saveState
	if flags.Device != "" {
		if err := session.use(flags.Device); err != nil {
			log.Printf("%v", err)
			return 1
		}
	}

	if !flags.Interactive {
		if _, err := session.Execute(ctx, oneShot); err != nil {
			log.Printf("%s failed: %v", oneShot.Name, err)
			return 1
		}
		return 0
	}

	shell, err := interactive.New(session, "")
	if err != nil {
		log.Printf("Failed to create interactive shell: %v", err)
		return 1
	}
	// Redirect output through readline to avoid interfering with input
	log.SetOutput(shell.Stdout())
	session.out = shell.Stdout()
	session.background = true

	shell.Run(ctx, cancel)
	session.StopAnimation()
	log.Println("Goodbye!")
	return 0
}

// loadConfig reads the configuration file, if any, and applies the flags.
func loadConfig(f Flags) (*config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		loaded, err := config.Load(f.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.Prefix != "" {
		cfg.NamePrefix = f.Prefix
	}
	if f.Timeout > 0 {
		cfg.ScanTimeout = f.Timeout
	}
	if f.Char != "" {
		cfg.WriteCharacteristic = f.Char
	}
	if f.Protocol != "" {
		cfg.Protocol = f.Protocol
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.ProtocolLog != "" {
		cfg.ProtocolLog = f.ProtocolLog
	}
	if f.StateFile != "" {
		cfg.StateFile = f.StateFile
	}
	if f.DryRun {
		cfg.DryRun = true
	}
	return cfg, cfg.Validate()
}

// writeIdentifier resolves the configured write characteristic of a
// peripheral. cfg must be valid.
func writeIdentifier(cfg *config.Config) func(name string) charid.Identifier {
	return func(name string) charid.Identifier {
		id, err := cfg.WriteIdentifier(name)
		if err != nil {
			return nil
		}
		return id
	}
}

// connect discovers and connects the peripherals, then applies the per-device
// aliases of the configuration.
func connect(ctx context.Context, ctrl *controller.Controller, cfg *config.Config) error {
	log.Printf("Scanning for %s...", cfg.ScanTimeout)
	if err := ctrl.ConnectDiscovered(ctx, nil); err != nil {
		return err
	}

	for _, dev := range ctrl.List() {
		d, ok := cfg.Device(dev.Name())
		if !ok || d.Alias == "" || dev.Alias() != dev.Name() {
			continue
		}
		if err := ctrl.SetAlias(dev.Name(), d.Alias); err != nil {
			return err
		}
	}

	log.Printf("Connected %d device(s)", len(ctrl.List()))
	return nil
}

func openProtocolLog(cfg *config.Config, logger *slog.Logger) (ledlylog.Logger, func(), error) {
	var loggers []ledlylog.Logger
	closeFn := func() {}

	if cfg.ProtocolLog != "" {
		fl, err := ledlylog.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return nil, closeFn, err
		}
		loggers = append(loggers, fl)
		closeFn = func() {
			if err := fl.Close(); err != nil {
				log.Printf("Error closing protocol log: %v", err)
			}
		}
		log.Printf("Protocol log: %s", cfg.ProtocolLog)
	}
	if cfg.LogLevel == "debug" {
		loggers = append(loggers, ledlylog.NewSlogAdapter(logger))
	}
	return ledlylog.NewMultiLogger(loggers...), closeFn, nil
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}

func newSlogLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
