package chime

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"pomodorodeck/internal/core/pomodoro"
)

const (
	sampleRate = beep.SampleRate(44100)
	noteLength = 180 * time.Millisecond
)

var notes = []float64{880, 1175}

// Chime plays a short two-note tone when a countdown finishes.
type Chime struct {
	mu      sync.Mutex
	buffer  *beep.Buffer
	enabled bool
	play    func(...beep.Streamer)
}

// New prepares the tone and the speaker. Audio is disabled with a log line
// when either fails.
func New() *Chime {
	return newChime(speaker.Init, speaker.Play)
}

func newChime(initSpeaker func(beep.SampleRate, int) error, play func(...beep.Streamer)) *Chime {
	chime := &Chime{play: play}

	buffer, err := buildTone()
	if err != nil {
		log.Printf("audio disabled: build tone: %v", err)
		return chime
	}
	if err := initSpeaker(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio disabled: failed to initialize speaker: %v", err)
		return chime
	}

	chime.buffer = buffer
	chime.enabled = true
	return chime
}

// Enabled reports whether the speaker is usable.
func (chime *Chime) Enabled() bool {
	return chime.enabled
}

// HandleEvent rings on the transition into the finished phase.
func (chime *Chime) HandleEvent(event pomodoro.Event) {
	if event.Type != pomodoro.EventPhaseChange || event.Phase != pomodoro.PhaseFinishedBlinking {
		return
	}
	chime.Ring()
}

// Ring plays the tone once.
func (chime *Chime) Ring() {
	if !chime.enabled {
		return
	}

	chime.mu.Lock()
	defer chime.mu.Unlock()

	chime.play(chime.buffer.Streamer(0, chime.buffer.Len()))
}

func buildTone() (*beep.Buffer, error) {
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	buffer := beep.NewBuffer(format)

	for _, frequency := range notes {
		tone, err := generators.SineTone(sampleRate, frequency)
		if err != nil {
			return nil, err
		}
		quiet := &effects.Volume{
			Streamer: beep.Take(sampleRate.N(noteLength), tone),
			Base:     2,
			Volume:   -2,
		}
		buffer.Append(quiet)
	}
	return buffer, nil
}
