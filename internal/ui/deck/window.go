package deck

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Window is the virtual deck: a row of surfaces, each with a configure
// button underneath.
type Window struct {
	window fyne.Window
	row    *fyne.Container
}

// New creates a deck window. Closing it only hides it.
func New(app fyne.App, title string) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	row := container.NewHBox()
	window.SetContent(container.NewPadded(row))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return &Window{
		window: window,
		row:    row,
	}
}

// Add places a surface on the deck. onConfigure runs when its configure
// button is pressed.
func (deck *Window) Add(surface *Surface, configureLabel string, onConfigure func()) {
	configure := widget.NewButtonWithIcon(configureLabel, theme.SettingsIcon(), onConfigure)
	column := container.NewVBox(
		container.NewCenter(surface.Object()),
		layout.NewSpacer(),
		configure,
	)
	deck.row.Add(column)
}

// Show displays the deck window.
func (deck *Window) Show() {
	deck.window.Show()
	deck.window.RequestFocus()
}

// Hide hides the deck window.
func (deck *Window) Hide() {
	deck.window.Hide()
}

// Window returns the underlying fyne window, used as dialog parent.
func (deck *Window) Window() fyne.Window {
	return deck.window
}
