package deck

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"pomodorodeck/internal/core/model"
	"pomodorodeck/internal/core/pomodoro"
	"pomodorodeck/internal/plugin"
)

const (
	surfaceSide     = float32(96)
	centerTextSize  = 20
	bottomTextSize  = 12
	surfaceRadius   = 10
	defaultMediaFit = 0.35
)

var (
	faceColor = color.NRGBA{R: 24, G: 24, B: 27, A: 255}
	textColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Surface is a simulated key or dial face. It implements the display
// capability of a host surface; only key surfaces paint backgrounds.
type Surface struct {
	kind     plugin.InputKind
	onInput  func(pomodoro.InputEvent)
	face     *canvas.Rectangle
	fill     *canvas.Rectangle
	image    *canvas.Image
	center   *canvas.Text
	bottom   *canvas.Text
	layout   *faceLayout
	content  *fyne.Container
	tappable *TappableContainer
}

// KeySurface is a Surface that can fill its background.
type KeySurface struct {
	*Surface
}

// NewKey creates a key surface. onInput receives every emitted event.
func NewKey(onInput func(pomodoro.InputEvent)) *KeySurface {
	return &KeySurface{Surface: newSurface(plugin.InputKey, onInput)}
}

// NewDial creates a dial surface without background capability.
func NewDial(onInput func(pomodoro.InputEvent)) *Surface {
	return newSurface(plugin.InputDial, onInput)
}

func newSurface(kind plugin.InputKind, onInput func(pomodoro.InputEvent)) *Surface {
	face := canvas.NewRectangle(faceColor)
	face.CornerRadius = surfaceRadius
	if kind == plugin.InputDial {
		face.CornerRadius = surfaceSide / 2
	}

	fill := canvas.NewRectangle(color.Transparent)
	fill.CornerRadius = face.CornerRadius

	image := canvas.NewImageFromResource(nil)
	image.FillMode = canvas.ImageFillContain

	center := canvas.NewText("--:--", textColor)
	center.Alignment = fyne.TextAlignCenter
	center.TextStyle = fyne.TextStyle{Bold: true}
	center.TextSize = centerTextSize

	bottom := canvas.NewText("", textColor)
	bottom.Alignment = fyne.TextAlignCenter
	bottom.TextSize = bottomTextSize

	arrangement := &faceLayout{mediaSize: defaultMediaFit, mediaVAlign: -1}
	content := container.NewStack(face, fill, container.New(arrangement, image, center, bottom))

	surface := &Surface{
		kind:    kind,
		onInput: onInput,
		face:    face,
		fill:    fill,
		image:   image,
		center:  center,
		bottom:  bottom,
		layout:  arrangement,
		content: content,
	}

	surface.tappable = NewTappableContainer(content, func() {
		surface.emit(GesturePrimary)
	}, func(_ *fyne.PointEvent) {
		surface.emit(GestureSecondary)
	})
	surface.tappable.OnScrolled = func(e *fyne.ScrollEvent) {
		if e.Scrolled.DY > 0 {
			surface.emit(GestureScrollUp)
		} else if e.Scrolled.DY < 0 {
			surface.emit(GestureScrollDown)
		}
	}

	return surface
}

// Kind returns the surface kind.
func (surface *Surface) Kind() plugin.InputKind {
	return surface.kind
}

// Object returns the tappable canvas object of the surface.
func (surface *Surface) Object() fyne.CanvasObject {
	return surface.tappable
}

// SetMedia shows the image at path. size is the fraction of the surface
// height, valign ranges from -1 (top) to 1 (bottom).
func (surface *Surface) SetMedia(path string, size float64, valign float64) {
	fyne.Do(func() {
		surface.layout.mediaSize = float32(size)
		surface.layout.mediaVAlign = float32(valign)
		surface.image.File = path
		surface.image.Refresh()
		surface.content.Refresh()
	})
}

// SetCenterLabel updates the center text.
func (surface *Surface) SetCenterLabel(text string) {
	fyne.Do(func() {
		surface.center.Text = text
		surface.center.Refresh()
	})
}

// SetBottomLabel updates the bottom text.
func (surface *Surface) SetBottomLabel(text string) {
	fyne.Do(func() {
		surface.bottom.Text = text
		surface.bottom.Refresh()
	})
}

// SetBackgroundColor fills the key face. Transparent shows the plain face.
func (surface *KeySurface) SetBackgroundColor(value model.RGBA) {
	fyne.Do(func() {
		surface.fill.FillColor = value.NRGBA()
		canvas.Refresh(surface.fill)
	})
}

func (surface *Surface) emit(gesture Gesture) {
	if surface.onInput == nil {
		return
	}
	for _, event := range Events(surface.kind, gesture) {
		surface.onInput(event)
	}
}

type faceLayout struct {
	mediaSize   float32
	mediaVAlign float32
}

func (layout *faceLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	image := objects[0]
	center := objects[1]
	bottom := objects[2]

	pad := size.Height * 0.05

	side := size.Height * layout.mediaSize
	free := size.Height - side - pad*2
	if free < 0 {
		free = 0
	}
	imageY := pad + free*(layout.mediaVAlign+1)/2
	image.Move(fyne.NewPos((size.Width-side)/2, imageY))
	image.Resize(fyne.NewSize(side, side))

	centerSize := center.MinSize()
	center.Move(fyne.NewPos(0, (size.Height-centerSize.Height)/2))
	center.Resize(fyne.NewSize(size.Width, centerSize.Height))

	bottomSize := bottom.MinSize()
	bottomY := size.Height - pad - bottomSize.Height
	if bottomY < 0 {
		bottomY = 0
	}
	bottom.Move(fyne.NewPos(0, bottomY))
	bottom.Resize(fyne.NewSize(size.Width, bottomSize.Height))
}

func (layout *faceLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(surfaceSide, surfaceSide)
}
