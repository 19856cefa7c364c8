package pomodoro

import (
	"github.com/go-viper/mapstructure/v2"

	"pomodorodeck/internal/core/model"
)

// Persisted settings keys.
const (
	KeyDurationFirst  = "duration_minutes_t1"
	KeyDurationSecond = "duration_minutes_t2"
	KeyLabelFirst     = "label_t1"
	KeyLabelSecond    = "label_t2"
	KeyBlinkEnabled   = "blink_enabled"
	KeyColor1         = "color1"
	KeyColor2         = "color2"
)

// ConfigFromSettings reads a persisted snapshot. Missing or malformed
// entries fall back to their defaults one key at a time.
func ConfigFromSettings(settings map[string]any) model.TimerConfig {
	config := model.DefaultTimerConfig()

	var minutes int
	if decodeSetting(settings, KeyDurationFirst, &minutes) {
		config.Slots[0].DurationMinutes = model.ClampDuration(minutes)
	}
	if decodeSetting(settings, KeyDurationSecond, &minutes) {
		config.Slots[1].DurationMinutes = model.ClampDuration(minutes)
	}

	var label string
	if decodeSetting(settings, KeyLabelFirst, &label) {
		config.Slots[0].Label = label
	}
	if decodeSetting(settings, KeyLabelSecond, &label) {
		config.Slots[1].Label = label
	}

	var blink bool
	if decodeSetting(settings, KeyBlinkEnabled, &blink) {
		config.BlinkEnabled = blink
	}

	if color, ok := decodeColor(settings, KeyColor1); ok {
		config.Color1 = color
	}
	if color, ok := decodeColor(settings, KeyColor2); ok {
		config.Color2 = color
	}
	return config
}

// SettingsFromConfig produces the persisted form of config.
func SettingsFromConfig(config model.TimerConfig) map[string]any {
	settings := make(map[string]any, 7)
	mergeConfig(settings, config)
	return settings
}

// mergeConfig writes every config key into settings, leaving unknown keys alone.
func mergeConfig(settings map[string]any, config model.TimerConfig) {
	settings[KeyDurationFirst] = config.Slots[0].DurationMinutes
	settings[KeyDurationSecond] = config.Slots[1].DurationMinutes
	settings[KeyLabelFirst] = config.Slots[0].Label
	settings[KeyLabelSecond] = config.Slots[1].Label
	settings[KeyBlinkEnabled] = config.BlinkEnabled
	settings[KeyColor1] = config.Color1.Ints()
	settings[KeyColor2] = config.Color2.Ints()
}

func decodeSetting(settings map[string]any, key string, target any) bool {
	raw, ok := settings[key]
	if !ok || raw == nil {
		return false
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return false
	}
	return decoder.Decode(raw) == nil
}

func decodeColor(settings map[string]any, key string) (model.RGBA, bool) {
	var channels []int
	if !decodeSetting(settings, key, &channels) || len(channels) != 4 {
		return model.RGBA{}, false
	}
	var color model.RGBA
	for index, channel := range channels {
		if channel < 0 || channel > 255 {
			return model.RGBA{}, false
		}
		color[index] = uint8(channel)
	}
	return color, true
}
