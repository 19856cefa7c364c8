package preferences

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodorodeck/internal/core/model"
	"pomodorodeck/internal/core/pomodoro"
	"pomodorodeck/internal/i18n"
)

const loadTimeout = 2 * time.Second

var errNotWholeNumber = errors.New("not a whole number")

// Target is the action placement being configured.
type Target interface {
	Do(fn func(action *pomodoro.Action)) error
	Call(ctx context.Context, fn func(action *pomodoro.Action)) error
}

// Window handles the configuration UI of one placement.
type Window struct {
	window fyne.Window
	target Target
}

// New creates a configuration window for target.
func New(app fyne.App, title string, target Target) *Window {
	window := app.NewWindow(title)
	window.SetCloseIntercept(func() {
		window.Hide()
	})
	window.Resize(fyne.NewSize(460, 420))

	return &Window{
		window: window,
		target: target,
	}
}

// Show reloads the config rows from the action and displays the window.
func (prefs *Window) Show() {
	var fields []pomodoro.Field
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	err := prefs.target.Call(ctx, func(action *pomodoro.Action) {
		fields = action.ConfigRows()
	})
	if err != nil {
		log.Printf("preferences: load rows: %v", err)
		return
	}

	prefs.window.SetContent(container.NewVScroll(buildForm(fields, prefs.apply, prefs.window)))
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Hide hides the window.
func (prefs *Window) Hide() {
	prefs.window.Hide()
}

func (prefs *Window) apply(fn func()) {
	err := prefs.target.Do(func(*pomodoro.Action) {
		fn()
	})
	if err != nil {
		log.Printf("preferences: apply: %v", err)
	}
}

func buildForm(fields []pomodoro.Field, apply func(func()), parent fyne.Window) *widget.Form {
	form := widget.NewForm()
	for _, field := range fields {
		var editor fyne.CanvasObject
		switch field.Kind {
		case pomodoro.FieldSpin:
			editor = newSpinEditor(field, apply).object
		case pomodoro.FieldEntry:
			editor = newTextEditor(field, apply)
		case pomodoro.FieldSwitch:
			editor = newSwitchEditor(field, apply)
		case pomodoro.FieldColor:
			editor = newColorEditor(field, apply, parent).object
		default:
			continue
		}
		form.AppendItem(&widget.FormItem{
			Text:     i18n.T(field.Title),
			Widget:   editor,
			HintText: i18n.T(field.Subtitle),
		})
	}
	return form
}

type spinEditor struct {
	field  pomodoro.Field
	apply  func(func())
	value  int
	entry  *widget.Entry
	minus  *widget.Button
	plus   *widget.Button
	object fyne.CanvasObject
}

func newSpinEditor(field pomodoro.Field, apply func(func())) *spinEditor {
	editor := &spinEditor{
		field: field,
		apply: apply,
		value: field.Int,
		entry: widget.NewEntry(),
	}

	editor.entry.SetText(strconv.Itoa(field.Int))
	editor.entry.Validator = func(text string) error {
		_, err := parseBoundedInt(text, field.Min, field.Max)
		if err != nil {
			return errors.New(i18n.T("Enter a whole number"))
		}
		return nil
	}
	editor.entry.OnChanged = func(text string) {
		value, err := parseBoundedInt(text, field.Min, field.Max)
		if err != nil {
			return
		}
		editor.commit(value)
	}

	editor.minus = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		editor.step(-1)
	})
	editor.plus = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		editor.step(1)
	})

	editor.object = container.NewBorder(nil, nil, editor.minus, editor.plus, editor.entry)
	return editor
}

func (editor *spinEditor) step(delta int) {
	value := clamp(editor.value+delta, editor.field.Min, editor.field.Max)
	editor.entry.SetText(strconv.Itoa(value))
}

func (editor *spinEditor) commit(value int) {
	if value == editor.value {
		return
	}
	editor.value = value
	if editor.field.OnInt == nil {
		return
	}
	onInt := editor.field.OnInt
	editor.apply(func() { onInt(value) })
}

func newTextEditor(field pomodoro.Field, apply func(func())) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText(field.Text)
	entry.OnChanged = func(text string) {
		if field.OnText == nil {
			return
		}
		apply(func() { field.OnText(text) })
	}
	return entry
}

func newSwitchEditor(field pomodoro.Field, apply func(func())) *widget.Check {
	check := widget.NewCheck("", nil)
	check.SetChecked(field.Bool)
	check.OnChanged = func(checked bool) {
		if field.OnBool == nil {
			return
		}
		apply(func() { field.OnBool(checked) })
	}
	return check
}

type colorEditor struct {
	field  pomodoro.Field
	apply  func(func())
	swatch *canvas.Rectangle
	button *widget.Button
	object fyne.CanvasObject
}

func newColorEditor(field pomodoro.Field, apply func(func()), parent fyne.Window) *colorEditor {
	editor := &colorEditor{
		field:  field,
		apply:  apply,
		swatch: canvas.NewRectangle(field.Color.NRGBA()),
	}
	editor.swatch.SetMinSize(fyne.NewSize(32, 24))
	editor.swatch.CornerRadius = 4

	editor.button = widget.NewButtonWithIcon(rgbaText(field.Color), theme.ColorPaletteIcon(), func() {
		picker := dialog.NewColorPicker(i18n.T(field.Title), i18n.T("Pick a color"), editor.choose, parent)
		picker.Advanced = true
		picker.SetColor(editor.field.Color.NRGBA())
		picker.Show()
	})

	editor.object = container.NewHBox(editor.swatch, editor.button, layout.NewSpacer())
	return editor
}

func (editor *colorEditor) choose(value color.Color) {
	picked := model.RGBAFromColor(value)
	editor.field.Color = picked
	editor.swatch.FillColor = picked.NRGBA()
	editor.swatch.Refresh()
	editor.button.SetText(rgbaText(picked))

	if editor.field.OnColor == nil {
		return
	}
	onColor := editor.field.OnColor
	editor.apply(func() { onColor(picked) })
}

func rgbaText(value model.RGBA) string {
	return fmt.Sprintf("%d, %d, %d, %d", value[0], value[1], value[2], value[3])
}

func parseBoundedInt(value string, minimum, maximum int) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errNotWholeNumber
	}
	if parsed < minimum || parsed > maximum {
		return 0, fmt.Errorf("%d outside %d..%d", parsed, minimum, maximum)
	}
	return parsed, nil
}

func clamp(value, minimum, maximum int) int {
	if value < minimum {
		return minimum
	}
	if value > maximum {
		return maximum
	}
	return value
}
