// Package console provides a headless, line-oriented deck host for the
// Pomodoro action.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cast"

	"pomodorodeck/internal/core/model"
	"pomodorodeck/internal/core/pomodoro"
	"pomodorodeck/internal/host"
	"pomodorodeck/internal/i18n"
)

const callTimeout = 2 * time.Second

// ErrUnknownTarget is returned for a surface name with no placement.
var ErrUnknownTarget = errors.New("unknown surface")

// Renderer prints a surface.
type Renderer interface {
	Render() string
}

// Target is one named placement driven by the console.
type Target struct {
	Name      string
	Placement *host.Placement
	Surface   Renderer
}

// Console handles the interactive command loop.
type Console struct {
	out     io.Writer
	targets []Target
	rl      *readline.Instance
}

// New creates a console reading from the terminal.
func New(targets []Target) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "deck> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	console := newConsole(rl.Stdout(), targets)
	console.rl = rl
	return console, nil
}

func newConsole(out io.Writer, targets []Target) *Console {
	return &Console{
		out:     out,
		targets: targets,
	}
}

// Stdout returns a writer that coordinates with the prompt. Use it for log
// output.
func (console *Console) Stdout() io.Writer {
	return console.out
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends, or ctx is cancelled.
func (console *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer console.rl.Close()

	console.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := console.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(console.out, "Exiting...")
			cancel()
			return
		}

		if quit := console.Execute(ctx, line); quit {
			cancel()
			return
		}
	}
}

// Execute runs one command line and reports whether the console should exit.
func (console *Console) Execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		console.printHelp()

	case "status", "s":
		err = console.cmdStatus(ctx)

	case "press", "p":
		err = console.cmdPress(ctx, args)

	case "rows", "r":
		err = console.cmdRows(ctx, args)

	case "set":
		err = console.cmdSet(ctx, args)

	case "quit", "exit", "q":
		fmt.Fprintln(console.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(console.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(console.out, "Error: %v\n", err)
	}
	return false
}

func (console *Console) printHelp() {
	fmt.Fprintln(console.out, `
Pomodoro Deck Commands:
  Input:
    press [key|dial|touch|<event>]  - Press a surface (default: key)
                                      or send a raw event such as key_down
    status                          - Show every surface and its phase

  Configuration:
    rows [key|dial]                 - List config fields (default: key)
    set <field> <value> [key|dial]  - Change a config field
                                      colors are r,g,b[,a]

  General:
    help                            - Show this help
    quit                            - Exit`)
}

func (console *Console) cmdStatus(ctx context.Context) error {
	for _, target := range console.targets {
		var phase pomodoro.Phase
		err := console.call(ctx, target, func(action *pomodoro.Action) {
			phase = action.Phase()
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(console.out, "%-40s %s\n", target.Surface.Render(), phase)
	}
	return nil
}

func (console *Console) cmdPress(ctx context.Context, args []string) error {
	what := "key"
	if len(args) > 0 {
		what = strings.ToLower(args[0])
	}

	targetName, event, err := resolvePress(what)
	if err != nil {
		return err
	}
	target, err := console.target(targetName)
	if err != nil {
		return err
	}

	if err := console.call(ctx, target, func(action *pomodoro.Action) {
		action.OnInputEvent(event)
	}); err != nil {
		return err
	}
	fmt.Fprintln(console.out, target.Surface.Render())
	return nil
}

func resolvePress(what string) (string, pomodoro.InputEvent, error) {
	switch what {
	case "key":
		return "key", pomodoro.KeyShortUp, nil
	case "dial":
		return "dial", pomodoro.DialShortUp, nil
	case "touch":
		return "dial", pomodoro.DialShortTouchPress, nil
	}

	event, err := pomodoro.ParseInputEvent(what)
	if err != nil {
		return "", "", err
	}
	if strings.HasPrefix(what, "dial_") {
		return "dial", event, nil
	}
	return "key", event, nil
}

func (console *Console) cmdRows(ctx context.Context, args []string) error {
	target, err := console.target(optionalArg(args, 0, "key"))
	if err != nil {
		return err
	}

	fields, err := console.rows(ctx, target)
	if err != nil {
		return err
	}
	for _, field := range fields {
		fmt.Fprintf(console.out, "  %-22s %-7s %-12s %s\n", field.Key, field.Kind, fieldValue(field), i18n.T(field.Title))
	}
	return nil
}

func (console *Console) cmdSet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: set <field> <value> [key|dial]")
	}

	target, err := console.target(optionalArg(args, 2, "key"))
	if err != nil {
		return err
	}

	fields, err := console.rows(ctx, target)
	if err != nil {
		return err
	}
	field, err := pomodoro.FindField(fields, args[0])
	if err != nil {
		return err
	}

	apply, err := coerce(field, args[1])
	if err != nil {
		return fmt.Errorf("%s: %w", field.Key, err)
	}
	if err := console.call(ctx, target, func(*pomodoro.Action) { apply() }); err != nil {
		return err
	}
	fmt.Fprintln(console.out, target.Surface.Render())
	return nil
}

// coerce converts raw into the field's value type and returns the edit.
func coerce(field pomodoro.Field, raw string) (func(), error) {
	switch field.Kind {
	case pomodoro.FieldSpin:
		value, err := cast.ToIntE(raw)
		if err != nil {
			return nil, err
		}
		return func() { field.OnInt(value) }, nil

	case pomodoro.FieldEntry:
		return func() { field.OnText(raw) }, nil

	case pomodoro.FieldSwitch:
		value, err := cast.ToBoolE(raw)
		if err != nil {
			return nil, err
		}
		return func() { field.OnBool(value) }, nil

	case pomodoro.FieldColor:
		value, err := parseColor(raw)
		if err != nil {
			return nil, err
		}
		return func() { field.OnColor(value) }, nil
	}
	return nil, fmt.Errorf("unsupported field kind %q", field.Kind)
}

func parseColor(raw string) (model.RGBA, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return model.RGBA{}, fmt.Errorf("color %q: want r,g,b[,a]", raw)
	}

	value := model.RGBA{0, 0, 0, 255}
	for index, part := range parts {
		channel, err := cast.ToIntE(strings.TrimSpace(part))
		if err != nil {
			return model.RGBA{}, fmt.Errorf("color %q: %w", raw, err)
		}
		if channel < 0 || channel > 255 {
			return model.RGBA{}, fmt.Errorf("color %q: channel %d outside 0..255", raw, channel)
		}
		value[index] = uint8(channel)
	}
	return value, nil
}

func fieldValue(field pomodoro.Field) string {
	switch field.Kind {
	case pomodoro.FieldSpin:
		return cast.ToString(field.Int)
	case pomodoro.FieldEntry:
		return fmt.Sprintf("%q", field.Text)
	case pomodoro.FieldSwitch:
		return cast.ToString(field.Bool)
	case pomodoro.FieldColor:
		return formatColor(field.Color)
	}
	return ""
}

func (console *Console) rows(ctx context.Context, target Target) ([]pomodoro.Field, error) {
	var fields []pomodoro.Field
	err := console.call(ctx, target, func(action *pomodoro.Action) {
		fields = action.ConfigRows()
	})
	return fields, err
}

func (console *Console) call(ctx context.Context, target Target, fn func(action *pomodoro.Action)) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	return target.Placement.Call(ctx, fn)
}

func (console *Console) target(name string) (Target, error) {
	for _, target := range console.targets {
		if target.Name == name {
			return target, nil
		}
	}
	return Target{}, fmt.Errorf("%w: %s", ErrUnknownTarget, name)
}

func optionalArg(args []string, index int, fallback string) string {
	if len(args) > index {
		return strings.ToLower(args[index])
	}
	return fallback
}
