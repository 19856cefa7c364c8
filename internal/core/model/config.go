package model

import "image/color"

// Duration bounds enforced by the configuration UI, in minutes.
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 120
)

// RGBA is a color as four bytes: red, green, blue, alpha.
type RGBA [4]uint8

// Transparent clears a background.
var Transparent = RGBA{0, 0, 0, 0}

// NRGBA converts the color for image/color consumers.
func (value RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: value[0], G: value[1], B: value[2], A: value[3]}
}

// Ints returns the color as a list of ints, the shape it is persisted in.
func (value RGBA) Ints() []int {
	return []int{int(value[0]), int(value[1]), int(value[2]), int(value[3])}
}

// RGBAFromColor converts any color to non-premultiplied bytes.
func RGBAFromColor(value color.Color) RGBA {
	if value == nil {
		return Transparent
	}
	nrgba := color.NRGBAModel.Convert(value).(color.NRGBA)
	return RGBA{nrgba.R, nrgba.G, nrgba.B, nrgba.A}
}

// Slot is one of the two countdown definitions.
type Slot struct {
	Label           string
	DurationMinutes int
}

// TimerConfig contains the user-editable settings of a Pomodoro action.
type TimerConfig struct {
	Slots        [2]Slot
	BlinkEnabled bool
	Color1       RGBA
	Color2       RGBA
}

// DefaultTimerConfig returns the settings used when nothing is persisted.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Slots: [2]Slot{
			{Label: "Focus", DurationMinutes: 25},
			{Label: "Rest", DurationMinutes: 5},
		},
		BlinkEnabled: true,
		Color1:       RGBA{255, 0, 0, 255},
		Color2:       RGBA{0, 0, 255, 255},
	}
}

// ClampDuration keeps a duration inside the configurable range.
func ClampDuration(minutes int) int {
	if minutes < MinDurationMinutes {
		return MinDurationMinutes
	}
	if minutes > MaxDurationMinutes {
		return MaxDurationMinutes
	}
	return minutes
}
