package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ledly-go/ledly/pkg/animation"
	"github.com/ledly-go/ledly/pkg/capability"
	"github.com/ledly-go/ledly/pkg/charid"
	"github.com/ledly-go/ledly/pkg/config"
	"github.com/ledly-go/ledly/pkg/controller"
	"github.com/ledly-go/ledly/pkg/model"
	"github.com/ledly-go/ledly/pkg/protocol"
)

// Session executes commands against the devices of a controller.
type Session struct {
	ctrl   *controller.Controller
	cfg    *config.Config
	engine *animation.Engine
	out    io.Writer

	// background runs animations asynchronously (interactive mode).
	background bool

	// saveState persists aliases and characteristics; may be nil.
	saveState func() error

	target string

	mu       sync.Mutex
	animStop context.CancelFunc
	animDone chan struct{}
	animErrs []error
}

// NewSession creates a Session writing its output to out.
func NewSession(ctrl *controller.Controller, cfg *config.Config, engine *animation.Engine, out io.Writer) *Session {
	return &Session{
		ctrl:   ctrl,
		cfg:    cfg,
		engine: engine,
		out:    out,
	}
}

// Execute runs cmd. It reports true when the session should end.
func (s *Session) Execute(ctx context.Context, cmd Command) (bool, error) {
	if cmd.Name != "help" && cmd.Name != "devices" && cmd.Name != "chars" {
		s.StopAnimation()
	}

	switch cmd.Name {
	case "on", "off", "color", "brightness", "pulsate":
		return false, s.apply(ctx, cmd.Option)
	case "breathe":
		return false, s.breathe(ctx, *cmd.Breathing)
	case "stop":
		return false, nil
	case "devices":
		s.listDevices()
		return false, nil
	case "chars":
		return false, s.listCharacteristics(cmd.Args)
	case "char":
		return false, s.setCharacteristic(cmd.Args[0])
	case "use":
		return false, s.use(cmd.Args[0])
	case "alias":
		if err := s.ctrl.SetAlias(cmd.Args[0], cmd.Args[1]); err != nil {
			return false, err
		}
		return false, s.save()
	case "help":
		fmt.Fprintln(s.out, commandHelp)
		return false, nil
	case "quit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: unknown command %q", ErrUsage, cmd.Name)
	}
}

func (s *Session) targets() ([]*model.Device, error) {
	if s.target != "" {
		dev, err := s.ctrl.Get(s.target)
		if err != nil {
			return nil, err
		}
		return []*model.Device{dev}, nil
	}
	devices := s.ctrl.List()
	if len(devices) == 0 {
		return nil, controller.ErrDeviceNotFound
	}
	return devices, nil
}

func (s *Session) protocolFor(dev *model.Device) (capability.Protocol, error) {
	return protocol.Lookup(s.cfg.ProtocolName(dev.Name()))
}

// apply sets opt on every target device in turn and stops at the first error.
func (s *Session) apply(ctx context.Context, opt capability.Option) error {
	devices, err := s.targets()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		proto, err := s.protocolFor(dev)
		if err != nil {
			return err
		}
		if err := capability.Set(ctx, dev, proto, opt); err != nil {
			return err
		}
	}
	fmt.Fprintf(s.out, "OK (%d device(s))\n", len(devices))
	return nil
}

// breathe runs one animation flow per target device.
func (s *Session) breathe(ctx context.Context, b animation.Breathing) error {
	devices, err := s.targets()
	if err != nil {
		return err
	}

	protos := make([]capability.Protocol, len(devices))
	for i, dev := range devices {
		if protos[i], err = s.protocolFor(dev); err != nil {
			return err
		}
	}

	animCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	errs := make([]error, len(devices))

	var wg sync.WaitGroup
	for i, dev := range devices {
		wg.Add(1)
		go func(i int, dev *model.Device) {
			defer wg.Done()
			errs[i] = s.engine.Breathe(animCtx, dev, protos[i], b)
		}(i, dev)
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	if s.background {
		s.mu.Lock()
		s.animStop = cancel
		s.animDone = done
		s.animErrs = errs
		s.mu.Unlock()
		fmt.Fprintf(s.out, "Breathing on %d device(s), 'stop' to end\n", len(devices))
		return nil
	}

	<-done
	cancel()
	if err := errors.Join(failures(errs)...); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "OK (%d device(s))\n", len(devices))
	return nil
}

// failures drops the nil and cancellation results of animation flows.
func failures(errs []error) []error {
	var out []error
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			out = append(out, err)
		}
	}
	return out
}

// StopAnimation cancels a background animation and waits for it to end.
func (s *Session) StopAnimation() {
	s.mu.Lock()
	stop, done, errs := s.animStop, s.animDone, s.animErrs
	s.animStop, s.animDone, s.animErrs = nil, nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	stop()
	<-done
	for _, err := range failures(errs) {
		fmt.Fprintf(s.out, "Animation failed: %v\n", err)
	}
}

func (s *Session) listDevices() {
	devices := s.ctrl.List()
	if len(devices) == 0 {
		fmt.Fprintln(s.out, "No devices connected")
		return
	}
	fmt.Fprintf(s.out, "\nConnected Devices (%d):\n", len(devices))
	fmt.Fprintln(s.out, "-------------------------------------------")
	for _, dev := range devices {
		info := dev.Info()
		fmt.Fprintf(s.out, "  %s\n", dev)
		fmt.Fprintf(s.out, "      Protocol: %s\n", s.cfg.ProtocolName(info.Name))
		fmt.Fprintf(s.out, "      Write:    %s\n", orNone(info.WriteCharacteristic))
		fmt.Fprintf(s.out, "      Chars:    %d\n", len(info.Characteristics))
	}
}

func (s *Session) listCharacteristics(args []string) error {
	devices, err := s.targets()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		chars := dev.Characteristics()
		if len(args) > 0 {
			kind, err := config.ParseKind(args[0])
			if err != nil {
				return err
			}
			chars = dev.CharacteristicsByKind(kind)
		}
		fmt.Fprintf(s.out, "%s:\n", dev)
		for _, c := range chars {
			fmt.Fprintf(s.out, "  %s\n", c)
		}
	}
	return nil
}

func (s *Session) setCharacteristic(arg string) error {
	var target model.Target
	if id, err := charid.Parse(arg); err == nil {
		target = model.ByIdentifier(id)
	} else {
		kind, kerr := config.ParseKind(arg)
		if kerr != nil {
			return fmt.Errorf("%w: %q is neither an identifier nor a kind", ErrUsage, arg)
		}
		target = model.ByKind(kind)
	}
	err := s.ctrl.SetAllCharacteristic(target)
	if serr := s.save(); serr != nil {
		return errors.Join(err, serr)
	}
	return err
}

func (s *Session) use(name string) error {
	if name == "all" {
		s.target = ""
		fmt.Fprintln(s.out, "Target: all devices")
		return nil
	}
	dev, err := s.ctrl.Get(name)
	if err != nil {
		return err
	}
	s.target = name
	fmt.Fprintf(s.out, "Target: %s\n", dev)
	return nil
}

func (s *Session) save() error {
	if s.saveState == nil {
		return nil
	}
	return s.saveState()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// ExecuteLine parses and runs one command line.
func (s *Session) ExecuteLine(ctx context.Context, fields []string) (bool, error) {
	cmd, err := ParseCommand(fields)
	if err != nil {
		return false, err
	}
	return s.Execute(ctx, cmd)
}
