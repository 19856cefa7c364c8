package pomodoro

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomodorodeck/internal/core/model"
)

func TestConfigFromSettingsDefaults(t *testing.T) {
	assert.Equal(t, model.DefaultTimerConfig(), ConfigFromSettings(nil))
	assert.Equal(t, model.DefaultTimerConfig(), ConfigFromSettings(map[string]any{}))
}

func TestConfigFromSettingsAcceptsDecodedShapes(t *testing.T) {
	// JSON decoders produce float64 numbers, YAML produces int and []any.
	settings := map[string]any{
		KeyDurationFirst:  float64(45),
		KeyDurationSecond: "15",
		KeyLabelFirst:     "Code",
		KeyLabelSecond:    "Tea",
		KeyBlinkEnabled:   "false",
		KeyColor1:         []any{float64(10), 20, uint8(30), int64(40)},
		KeyColor2:         []int{1, 2, 3, 4},
	}

	config := ConfigFromSettings(settings)

	assert.Equal(t, model.TimerConfig{
		Slots: [2]model.Slot{
			{Label: "Code", DurationMinutes: 45},
			{Label: "Tea", DurationMinutes: 15},
		},
		BlinkEnabled: false,
		Color1:       model.RGBA{10, 20, 30, 40},
		Color2:       model.RGBA{1, 2, 3, 4},
	}, config)
}

func TestConfigFromSettingsFallsBackPerKey(t *testing.T) {
	settings := map[string]any{
		KeyDurationFirst:  "soon",
		KeyDurationSecond: 0,
		KeyLabelFirst:     nil,
		KeyColor1:         []int{1, 2, 3},
		KeyColor2:         []int{0, 0, 300, 255},
	}

	config := ConfigFromSettings(settings)
	defaults := model.DefaultTimerConfig()

	assert.Equal(t, 25, config.Slots[0].DurationMinutes)
	assert.Equal(t, 1, config.Slots[1].DurationMinutes)
	assert.Equal(t, defaults.Slots[0].Label, config.Slots[0].Label)
	assert.Equal(t, defaults.Color1, config.Color1)
	assert.Equal(t, defaults.Color2, config.Color2)
}

func TestSettingsFromConfig(t *testing.T) {
	settings := SettingsFromConfig(model.DefaultTimerConfig())

	assert.Equal(t, map[string]any{
		KeyDurationFirst:  25,
		KeyDurationSecond: 5,
		KeyLabelFirst:     "Focus",
		KeyLabelSecond:    "Rest",
		KeyBlinkEnabled:   true,
		KeyColor1:         []int{255, 0, 0, 255},
		KeyColor2:         []int{0, 0, 255, 255},
	}, settings)
	assert.Equal(t, model.DefaultTimerConfig(), ConfigFromSettings(settings))
}
