package pomodoro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputEvent(t *testing.T) {
	for _, event := range InputEvents() {
		parsed, err := ParseInputEvent(string(event))
		require.NoError(t, err)
		assert.Equal(t, event, parsed)
	}

	_, err := ParseInputEvent("key_double_tap")
	assert.ErrorIs(t, err, ErrUnknownInputEvent)
}

func TestOnlyShortPressesConfirm(t *testing.T) {
	var confirms []InputEvent
	for _, event := range InputEvents() {
		if event.IsConfirm() {
			confirms = append(confirms, event)
		}
	}
	assert.Equal(t, []InputEvent{KeyShortUp, DialShortUp, DialShortTouchPress}, confirms)
}

func TestSlotOther(t *testing.T) {
	assert.Equal(t, SlotSecond, SlotFirst.Other())
	assert.Equal(t, SlotFirst, SlotSecond.Other())
	assert.False(t, SlotIndex(3).valid())
}
