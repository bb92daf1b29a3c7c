package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ledly-go/ledly/pkg/animation"
	"github.com/ledly-go/ledly/pkg/capability"
)

// ErrUsage is wrapped by every command parse failure.
var ErrUsage = errors.New("usage")

// Command is a parsed CLI command.
type Command struct {
	// Name is the canonical command name.
	Name string

	// Option is set for capability commands.
	Option capability.Option

	// Breathing is set for the breathe command.
	Breathing *animation.Breathing

	// Args holds the remaining arguments of other commands.
	Args []string
}

const commandHelp = `Commands:
  Control:
    on                                  - Power on
    off                                 - Power off
    color <r> <g> <b> | color #rrggbb   - Set a static color
    brightness <level> <r> <g> <b>      - Set a color at level 0..1
    pulsate <red|green|blue> <1-9>      - Start hardware pulsating
    breathe <r> <g> <b> [count|inf] [speed]
                                        - Software breathing (speed: slowest..fastest)
    stop                                - Stop a running animation

  Devices:
    devices                             - List connected devices
    use <name|all>                      - Select the target device
    chars [kind]                        - List characteristics, optionally by exact kind
    char <id|kind>                      - Set the write characteristic on all devices
    alias <name> <alias>                - Set a device alias

  General:
    help                                - Show this help
    quit                                - Exit`

// ParseCommand parses a command line split into fields.
func ParseCommand(fields []string) (Command, error) {
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty command", ErrUsage)
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	switch name {
	case "on":
		return Command{Name: "on", Option: capability.PowerOn}, nil

	case "off":
		return Command{Name: "off", Option: capability.PowerOff}, nil

	case "color", "c":
		c, err := parseColor(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Name: "color", Option: c}, nil

	case "brightness", "b":
		if len(args) < 2 {
			return Command{}, fmt.Errorf("%w: brightness <level> <r> <g> <b>", ErrUsage)
		}
		level, err := strconv.ParseFloat(args[0], 32)
		if err != nil {
			return Command{}, fmt.Errorf("%w: level %q: %v", ErrUsage, args[0], err)
		}
		c, err := parseColor(args[1:])
		if err != nil {
			return Command{}, err
		}
		opt := capability.LevelWithColor(float32(level), c)
		if err := opt.Validate(); err != nil {
			return Command{}, err
		}
		return Command{Name: "brightness", Option: opt}, nil

	case "pulsate", "p":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: pulsate <red|green|blue> <1-9>", ErrUsage)
		}
		color, err := parseStaticColor(args[0])
		if err != nil {
			return Command{}, err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > 9 {
			return Command{}, fmt.Errorf("%w: speed must be 1-9, got %q", ErrUsage, args[1])
		}
		return Command{Name: "pulsate", Option: capability.Pulsating(color, capability.HWSpeed(n))}, nil

	case "breathe":
		b, err := parseBreathing(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Name: "breathe", Breathing: &b}, nil

	case "devices", "list", "ls":
		return Command{Name: "devices"}, nil

	case "chars":
		return Command{Name: "chars", Args: args}, nil

	case "char":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: char <id|kind>", ErrUsage)
		}
		return Command{Name: "char", Args: args}, nil

	case "use":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: use <name|all>", ErrUsage)
		}
		return Command{Name: "use", Args: args}, nil

	case "alias":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: alias <name> <alias>", ErrUsage)
		}
		return Command{Name: "alias", Args: args}, nil

	case "stop":
		return Command{Name: "stop"}, nil

	case "help", "?":
		return Command{Name: "help"}, nil

	case "quit", "exit", "q":
		return Command{Name: "quit"}, nil

	default:
		return Command{}, fmt.Errorf("%w: unknown command %q (type 'help' for commands)", ErrUsage, name)
	}
}

func parseColor(args []string) (capability.Color, error) {
	if len(args) == 1 && strings.HasPrefix(args[0], "#") && len(args[0]) == 7 {
		v, err := strconv.ParseUint(args[0][1:], 16, 32)
		if err != nil {
			return capability.Color{}, fmt.Errorf("%w: color %q", ErrUsage, args[0])
		}
		return capability.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	if len(args) != 3 {
		return capability.Color{}, fmt.Errorf("%w: color <r> <g> <b> | #rrggbb", ErrUsage)
	}
	var rgb [3]uint8
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 8)
		if err != nil {
			return capability.Color{}, fmt.Errorf("%w: component %q must be 0-255", ErrUsage, a)
		}
		rgb[i] = uint8(v)
	}
	return capability.RGB(rgb[0], rgb[1], rgb[2]), nil
}

func parseStaticColor(s string) (capability.StaticColor, error) {
	switch strings.ToLower(s) {
	case "red":
		return capability.Red, nil
	case "green":
		return capability.Green, nil
	case "blue":
		return capability.Blue, nil
	default:
		return 0, fmt.Errorf("%w: static color must be red, green or blue, got %q", ErrUsage, s)
	}
}

func parseBreathing(args []string) (animation.Breathing, error) {
	b := animation.Breathing{Repeat: animation.FiniteCount(1), Speed: animation.Fast}

	n := 3
	if len(args) > 0 && strings.HasPrefix(args[0], "#") {
		n = 1
	}
	if len(args) < n {
		return b, fmt.Errorf("%w: breathe <r> <g> <b> [count|inf] [speed]", ErrUsage)
	}
	c, err := parseColor(args[:n])
	if err != nil {
		return b, err
	}
	b.Color = c
	rest := args[n:]

	if len(rest) > 0 {
		if rest[0] == "inf" || rest[0] == "infinite" {
			b.Repeat = animation.InfiniteCount
		} else {
			count, err := strconv.Atoi(rest[0])
			if err != nil {
				return b, fmt.Errorf("%w: count %q", ErrUsage, rest[0])
			}
			b.Repeat = animation.FiniteCount(count)
		}
	}
	if len(rest) > 1 {
		s, err := animation.ParseSpeed(strings.ToLower(rest[1]))
		if err != nil {
			return b, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		b.Speed = s
	}
	if len(rest) > 2 {
		return b, fmt.Errorf("%w: too many arguments", ErrUsage)
	}
	if err := b.Validate(); err != nil {
		return b, err
	}
	return b, nil
}
