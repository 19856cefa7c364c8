package model

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampDuration(t *testing.T) {
	assert.Equal(t, 1, ClampDuration(-3))
	assert.Equal(t, 1, ClampDuration(0))
	assert.Equal(t, 25, ClampDuration(25))
	assert.Equal(t, 120, ClampDuration(121))
}

func TestRGBAConversions(t *testing.T) {
	value := RGBA{255, 128, 0, 200}

	assert.Equal(t, color.NRGBA{R: 255, G: 128, B: 0, A: 200}, value.NRGBA())
	assert.Equal(t, []int{255, 128, 0, 200}, value.Ints())
	assert.Equal(t, value, RGBAFromColor(value.NRGBA()))
	assert.Equal(t, RGBA{0, 0, 255, 255}, RGBAFromColor(color.RGBA{B: 255, A: 255}))
	assert.Equal(t, Transparent, RGBAFromColor(nil))
}

func TestDefaultTimerConfig(t *testing.T) {
	config := DefaultTimerConfig()

	assert.Equal(t, Slot{Label: "Focus", DurationMinutes: 25}, config.Slots[0])
	assert.Equal(t, Slot{Label: "Rest", DurationMinutes: 5}, config.Slots[1])
	assert.True(t, config.BlinkEnabled)
	assert.Equal(t, RGBA{255, 0, 0, 255}, config.Color1)
	assert.Equal(t, RGBA{0, 0, 255, 255}, config.Color2)
}
