package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodorodeck/internal/core/pomodoro"
	"pomodorodeck/internal/i18n"
)

const menuTitle = "Pomodoro Deck"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowDeck      func()
	OnConfigureKey  func()
	OnConfigureDial func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	callbacks   Callbacks
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// Status returns the current status label.
func (manager *Manager) Status() string {
	return manager.statusLabel
}

// HandleEvent turns an action event into the status line.
func (manager *Manager) HandleEvent(event pomodoro.Event) {
	manager.SetStatus(StatusText(event))
}

// StatusText formats an action event for the tray.
func StatusText(event pomodoro.Event) string {
	switch event.Phase {
	case pomodoro.PhaseRunning:
		return fmt.Sprintf("%s %s", event.Label, pomodoro.FormatTime(event.Remaining))
	case pomodoro.PhaseFinishedBlinking:
		return fmt.Sprintf("%s: %s", event.Label, i18n.T("Time is up"))
	default:
		return fmt.Sprintf("%s (%s)", event.Label, i18n.T("Idle"))
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem(i18n.T("Show deck"), func() {
			if manager.callbacks.OnShowDeck != nil {
				manager.callbacks.OnShowDeck()
			}
		}),
		fyne.NewMenuItem(i18n.T("Configure key"), func() {
			if manager.callbacks.OnConfigureKey != nil {
				manager.callbacks.OnConfigureKey()
			}
		}),
		fyne.NewMenuItem(i18n.T("Configure dial"), func() {
			if manager.callbacks.OnConfigureDial != nil {
				manager.callbacks.OnConfigureDial()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("Quit"), func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
