package console

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"pomodorodeck/internal/core/model"
	"pomodorodeck/internal/plugin"
)

// TextSurface records what a host surface would show so the console can
// print it.
type TextSurface struct {
	kind plugin.InputKind

	mu         sync.Mutex
	media      string
	center     string
	bottom     string
	background model.RGBA
}

// PaintedSurface is a TextSurface with background capability.
type PaintedSurface struct {
	*TextSurface
}

// NewKeySurface creates a key surface that paints its background.
func NewKeySurface() *PaintedSurface {
	return &PaintedSurface{TextSurface: &TextSurface{kind: plugin.InputKey}}
}

// NewDialSurface creates a dial surface without background capability.
func NewDialSurface() *TextSurface {
	return &TextSurface{kind: plugin.InputDial}
}

func (surface *TextSurface) Kind() plugin.InputKind {
	return surface.kind
}

func (surface *TextSurface) SetMedia(path string, size float64, valign float64) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.media = path
}

func (surface *TextSurface) SetCenterLabel(text string) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.center = text
}

func (surface *TextSurface) SetBottomLabel(text string) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.bottom = text
}

func (surface *PaintedSurface) SetBackgroundColor(value model.RGBA) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.background = value
}

// Render returns a one-line view of the surface.
func (surface *TextSurface) Render() string {
	surface.mu.Lock()
	defer surface.mu.Unlock()

	var builder strings.Builder
	fmt.Fprintf(&builder, "[%s] %-8s %s", surface.kind, surface.center, surface.bottom)
	if surface.background != model.Transparent {
		fmt.Fprintf(&builder, "  bg=%s", formatColor(surface.background))
	}
	if surface.media != "" {
		fmt.Fprintf(&builder, "  icon=%s", filepath.Base(surface.media))
	}
	return builder.String()
}

func formatColor(value model.RGBA) string {
	return fmt.Sprintf("%d,%d,%d,%d", value[0], value[1], value[2], value[3])
}
