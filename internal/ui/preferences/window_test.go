package preferences

import (
	"context"
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodorodeck/internal/core/model"
	"pomodorodeck/internal/core/pomodoro"
)

func runNow(fn func()) {
	fn()
}

func TestParseBoundedInt(t *testing.T) {
	value, err := parseBoundedInt(" 45 ", 1, 120)
	require.NoError(t, err)
	assert.Equal(t, 45, value)

	_, err = parseBoundedInt("abc", 1, 120)
	assert.ErrorIs(t, err, errNotWholeNumber)

	_, err = parseBoundedInt("0", 1, 120)
	assert.Error(t, err)

	_, err = parseBoundedInt("121", 1, 120)
	assert.Error(t, err)
}

func TestSpinEditorAppliesValidValues(t *testing.T) {
	test.NewTempApp(t)

	var applied []int
	editor := newSpinEditor(pomodoro.Field{
		Kind:  pomodoro.FieldSpin,
		Min:   1,
		Max:   120,
		Int:   119,
		OnInt: func(value int) { applied = append(applied, value) },
	}, runNow)

	assert.Equal(t, "119", editor.entry.Text)

	editor.entry.SetText("oops")
	editor.entry.SetText("500")
	assert.Empty(t, applied)

	editor.entry.SetText("30")
	test.Tap(editor.minus)
	assert.Equal(t, []int{30, 29}, applied)

	editor.entry.SetText("120")
	test.Tap(editor.plus)
	assert.Equal(t, []int{30, 29, 120}, applied)
	assert.Equal(t, "120", editor.entry.Text)
}

func TestColorEditorChoose(t *testing.T) {
	test.NewTempApp(t)

	var applied model.RGBA
	editor := newColorEditor(pomodoro.Field{
		Kind:    pomodoro.FieldColor,
		Color:   model.RGBA{255, 0, 0, 255},
		OnColor: func(value model.RGBA) { applied = value },
	}, runNow, nil)

	assert.Equal(t, "255, 0, 0, 255", editor.button.Text)

	editor.choose(color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	assert.Equal(t, model.RGBA{1, 2, 3, 255}, applied)
	assert.Equal(t, "1, 2, 3, 255", editor.button.Text)
}

func TestBuildFormFromConfigRows(t *testing.T) {
	test.NewTempApp(t)

	var labels []string
	var blink []bool
	fields := []pomodoro.Field{
		{Key: pomodoro.KeyLabelFirst, Kind: pomodoro.FieldEntry, Title: "Timer 1 Label", Text: "Focus", OnText: func(text string) { labels = append(labels, text) }},
		{Key: pomodoro.KeyBlinkEnabled, Kind: pomodoro.FieldSwitch, Title: "Enable blinking", Bool: true, OnBool: func(value bool) { blink = append(blink, value) }},
		{Key: "unknown", Kind: pomodoro.FieldKind("slider")},
	}

	form := buildForm(fields, runNow, nil)
	require.Len(t, form.Items, 2)
	assert.Equal(t, "Timer 1 Label", form.Items[0].Text)

	entry := form.Items[0].Widget.(*widget.Entry)
	assert.Equal(t, "Focus", entry.Text)
	entry.SetText("Study")
	assert.Equal(t, []string{"Study"}, labels)

	check := form.Items[1].Widget.(*widget.Check)
	assert.True(t, check.Checked)
	test.Tap(check)
	assert.Equal(t, []bool{false}, blink)
}

type stoppedTarget struct {
	calls int
}

func (target *stoppedTarget) Do(func(*pomodoro.Action)) error {
	return context.Canceled
}

func (target *stoppedTarget) Call(context.Context, func(*pomodoro.Action)) error {
	target.calls++
	return context.Canceled
}

func TestShowWithStoppedTarget(t *testing.T) {
	app := test.NewTempApp(t)
	target := &stoppedTarget{}

	prefs := New(app, "Settings", target)
	prefs.Show()
	assert.Equal(t, 1, target.calls)
	prefs.apply(func() { t.Fatal("must not run") })
}
