package console

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodorodeck/internal/core/model"
	"pomodorodeck/internal/core/pomodoro"
	"pomodorodeck/internal/host"
	"pomodorodeck/internal/i18n"
	"pomodorodeck/internal/plugin"
	"pomodorodeck/internal/storage"
)

type fixture struct {
	console *Console
	out     *bytes.Buffer
	store   *storage.Store
	key     *PaintedSurface
	dial    *TextSurface
	keyID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)

	loop := host.NewLoop(host.Options{TickInterval: time.Hour})
	loop.Start()
	t.Cleanup(loop.Stop)

	holder, err := plugin.New().Lookup(plugin.ID + "::Pomodoro")
	require.NoError(t, err)

	key := NewKeySurface()
	dial := NewDialSurface()

	keyID, err := store.Ensure(string(plugin.InputKey), holder.ID())
	require.NoError(t, err)
	dialID, err := store.Ensure(string(plugin.InputDial), holder.ID())
	require.NoError(t, err)

	started := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	options := pomodoro.Options{Now: func() time.Time { return started }}

	keyPlacement, err := loop.Attach(holder, keyID, key, store, options)
	require.NoError(t, err)
	dialPlacement, err := loop.Attach(holder, dialID, dial, store, options)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	console := newConsole(out, []Target{
		{Name: "key", Placement: keyPlacement, Surface: key},
		{Name: "dial", Placement: dialPlacement, Surface: dial},
	})

	return &fixture{
		console: console,
		out:     out,
		store:   store,
		key:     key,
		dial:    dial,
		keyID:   keyID,
	}
}

func (fixture *fixture) run(t *testing.T, line string) string {
	t.Helper()
	fixture.out.Reset()
	assert.False(t, fixture.console.Execute(context.Background(), line))
	return fixture.out.String()
}

func TestPressAndStatus(t *testing.T) {
	fixture := newFixture(t)

	output := fixture.run(t, "press")
	assert.Contains(t, output, "[key] 25:00    Focus")

	output = fixture.run(t, "status")
	assert.Contains(t, output, "running")
	assert.Contains(t, output, "[dial] 25:00    Focus")
	assert.Contains(t, output, "idle")

	output = fixture.run(t, "p touch")
	assert.Contains(t, output, "[dial]")

	output = fixture.run(t, "press key")
	assert.Contains(t, output, "[key] 05:00    Rest")
	assert.NotContains(t, output, "bg=")
}

func TestRawEventsRouteBySurface(t *testing.T) {
	fixture := newFixture(t)

	fixture.run(t, "press key_down")
	fixture.run(t, "press dial_turn_cw")
	output := fixture.run(t, "status")
	assert.NotContains(t, output, "running")

	output = fixture.run(t, "press dial_short_up")
	assert.Contains(t, output, "[dial]")
	assert.Contains(t, fixture.run(t, "status"), "running")

	output = fixture.run(t, "press key_double_tap")
	assert.Contains(t, output, "Error: unknown input event")
}

func TestSetPersistsThroughStore(t *testing.T) {
	fixture := newFixture(t)

	output := fixture.run(t, "set duration_minutes_t1 40")
	assert.Contains(t, output, "[key] 40:00")

	fixture.run(t, "set label_t1 Study")
	fixture.run(t, "set blink_enabled false")
	fixture.run(t, "set color2 1,2,3")

	settings, err := fixture.store.Load(fixture.keyID)
	require.NoError(t, err)
	config := pomodoro.ConfigFromSettings(settings)
	assert.Equal(t, 40, config.Slots[0].DurationMinutes)
	assert.Equal(t, "Study", config.Slots[0].Label)
	assert.False(t, config.BlinkEnabled)
	assert.Equal(t, model.RGBA{1, 2, 3, 255}, config.Color2)

	output = fixture.run(t, "rows")
	assert.Contains(t, output, "duration_minutes_t1")
	assert.Contains(t, output, "1,2,3,255")
	assert.Contains(t, output, `"Study"`)
}

func TestRowsAreLocalized(t *testing.T) {
	fixture := newFixture(t)
	t.Cleanup(func() { i18n.SetLang("en") })

	assert.Contains(t, fixture.run(t, "rows"), "Timer 1 Label")

	i18n.SetLang("es")
	output := fixture.run(t, "rows")
	assert.Contains(t, output, "Etiqueta del temporizador 1")
	assert.NotContains(t, output, "Timer 1 Label")
}

func TestSetRejectsBadInput(t *testing.T) {
	fixture := newFixture(t)

	assert.Contains(t, fixture.run(t, "set"), "usage: set")
	assert.Contains(t, fixture.run(t, "set nope 1"), "unknown config field")
	assert.Contains(t, fixture.run(t, "set duration_minutes_t1 soon"), "Error: duration_minutes_t1")
	assert.Contains(t, fixture.run(t, "set color1 1,2"), "want r,g,b[,a]")
	assert.Contains(t, fixture.run(t, "set label_t1 x touchpad"), "unknown surface")
	assert.Contains(t, fixture.run(t, "dance"), "Unknown command: dance")
}

func TestQuit(t *testing.T) {
	fixture := newFixture(t)
	assert.True(t, fixture.console.Execute(context.Background(), "quit"))
	assert.Contains(t, fixture.out.String(), "Exiting...")
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		raw     string
		want    model.RGBA
		wantErr bool
	}{
		{raw: "255,0,0", want: model.RGBA{255, 0, 0, 255}},
		{raw: "1, 2, 3, 4", want: model.RGBA{1, 2, 3, 4}},
		{raw: "256,0,0", wantErr: true},
		{raw: "a,b,c", wantErr: true},
		{raw: "1,2,3,4,5", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseColor(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got)
	}
}
