package pomodoro

import (
	"errors"
	"fmt"

	"pomodorodeck/internal/core/model"
)

// ErrUnknownField is returned when a field key does not exist.
var ErrUnknownField = errors.New("unknown config field")

// FieldKind defines which editor a config field needs.
type FieldKind string

const (
	FieldSpin   FieldKind = "spin"
	FieldEntry  FieldKind = "entry"
	FieldSwitch FieldKind = "switch"
	FieldColor  FieldKind = "color"
)

// Field describes one editable config row. Exactly one of the typed
// value/callback pairs is set, matching Kind.
type Field struct {
	Key      string
	Kind     FieldKind
	Title    string
	Subtitle string
	Min      int
	Max      int

	Int   int
	Text  string
	Bool  bool
	Color model.RGBA

	OnInt   func(int)
	OnText  func(string)
	OnBool  func(bool)
	OnColor func(model.RGBA)
}

// ConfigRows returns the editable fields, populated from the persisted settings.
func (action *Action) ConfigRows() []Field {
	persisted := ConfigFromSettings(action.host.Settings())

	return []Field{
		{
			Key:      KeyDurationFirst,
			Kind:     FieldSpin,
			Title:    "Timer 1 Duration (minutes)",
			Subtitle: "Focus timer duration",
			Min:      model.MinDurationMinutes,
			Max:      model.MaxDurationMinutes,
			Int:      persisted.Slots[0].DurationMinutes,
			OnInt:    func(minutes int) { action.SetSlotDuration(SlotFirst, minutes) },
		},
		{
			Key:      KeyDurationSecond,
			Kind:     FieldSpin,
			Title:    "Timer 2 Duration (minutes)",
			Subtitle: "Rest timer duration",
			Min:      model.MinDurationMinutes,
			Max:      model.MaxDurationMinutes,
			Int:      persisted.Slots[1].DurationMinutes,
			OnInt:    func(minutes int) { action.SetSlotDuration(SlotSecond, minutes) },
		},
		{
			Key:      KeyLabelFirst,
			Kind:     FieldEntry,
			Title:    "Timer 1 Label",
			Subtitle: "Name shown for focus timer",
			Text:     persisted.Slots[0].Label,
			OnText:   func(label string) { action.SetSlotLabel(SlotFirst, label) },
		},
		{
			Key:      KeyLabelSecond,
			Kind:     FieldEntry,
			Title:    "Timer 2 Label",
			Subtitle: "Name shown for rest timer",
			Text:     persisted.Slots[1].Label,
			OnText:   func(label string) { action.SetSlotLabel(SlotSecond, label) },
		},
		{
			Key:      KeyBlinkEnabled,
			Kind:     FieldSwitch,
			Title:    "Enable blinking",
			Subtitle: "Blink between colors when finished",
			Bool:     persisted.BlinkEnabled,
			OnBool:   action.SetBlinkEnabled,
		},
		{
			Key:      KeyColor1,
			Kind:     FieldColor,
			Title:    "Color 1",
			Subtitle: "Primary finish color",
			Color:    persisted.Color1,
			OnColor:  func(color model.RGBA) { action.SetColor(ColorPrimary, color) },
		},
		{
			Key:      KeyColor2,
			Kind:     FieldColor,
			Title:    "Color 2",
			Subtitle: "Secondary blink color",
			Color:    persisted.Color2,
			OnColor:  func(color model.RGBA) { action.SetColor(ColorSecondary, color) },
		},
	}
}

// FindField returns the field with the given key.
func FindField(fields []Field, key string) (Field, error) {
	for _, field := range fields {
		if field.Key == key {
			return field, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %s", ErrUnknownField, key)
}

// SetSlotDuration changes a slot duration. The display is redrawn only when
// the idle view of that slot is showing.
func (action *Action) SetSlotDuration(slot SlotIndex, minutes int) {
	if !slot.valid() {
		return
	}
	action.config.Slots[slot-1].DurationMinutes = model.ClampDuration(minutes)
	action.persist()

	if action.phase == PhaseIdle && action.active == slot {
		action.refresh()
	}
}

// SetSlotLabel changes a slot label. The display is redrawn when that slot
// is active, whatever the phase.
func (action *Action) SetSlotLabel(slot SlotIndex, label string) {
	if !slot.valid() {
		return
	}
	action.config.Slots[slot-1].Label = label
	action.persist()

	if action.active == slot {
		action.refresh()
	}
}

// SetBlinkEnabled takes effect on the next finish.
func (action *Action) SetBlinkEnabled(enabled bool) {
	action.config.BlinkEnabled = enabled
	action.persist()
}

// SetColor takes effect on the next finish or blink step.
func (action *Action) SetColor(index ColorIndex, color model.RGBA) {
	switch index {
	case ColorPrimary:
		action.config.Color1 = color
	case ColorSecondary:
		action.config.Color2 = color
	default:
		return
	}
	action.persist()
}

func (action *Action) persist() {
	settings := action.host.Settings()
	if settings == nil {
		settings = make(map[string]any, 7)
	}
	mergeConfig(settings, action.config)
	action.host.SetSettings(settings)
}
