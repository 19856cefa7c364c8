package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"pomodorodeck/internal/core/pomodoro"
	"pomodorodeck/internal/host"
	"pomodorodeck/internal/i18n"
	"pomodorodeck/internal/ui/chime"
	"pomodorodeck/internal/ui/deck"
	"pomodorodeck/internal/ui/preferences"
	"pomodorodeck/internal/ui/tray"
	"pomodorodeck/resources"
)

func runDeck(ctx context.Context, rt *session) error {
	fyneApp := app.NewWithID(appID)
	icon := resources.MustIcon(resources.IconFile)
	fyneApp.SetIcon(icon)

	deckWindow := deck.New(fyneApp, i18n.T("Pomodoro Deck"))

	var keyPlacement, dialPlacement *host.Placement
	key := deck.NewKey(func(event pomodoro.InputEvent) {
		dispatch(keyPlacement, event)
	})
	dial := deck.NewDial(func(event pomodoro.InputEvent) {
		dispatch(dialPlacement, event)
	})

	var err error
	if keyPlacement, err = rt.place(key); err != nil {
		return err
	}
	if dialPlacement, err = rt.place(dial); err != nil {
		return err
	}

	keyPrefs := preferences.New(fyneApp, fmt.Sprintf("%s: %s", i18n.T("Settings"), i18n.T("Configure key")), keyPlacement)
	dialPrefs := preferences.New(fyneApp, fmt.Sprintf("%s: %s", i18n.T("Settings"), i18n.T("Configure dial")), dialPlacement)

	deckWindow.Add(key.Surface, i18n.T("Configure"), keyPrefs.Show)
	deckWindow.Add(dial, i18n.T("Configure"), dialPrefs.Show)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayWindow := fyneApp.NewWindow(appName)
		trayWindow.SetContent(widget.NewLabel("Pomodoro Deck is running in the system tray."))
		trayWindow.SetCloseIntercept(func() {
			trayWindow.Hide()
		})
		trayWindow.Hide()
		desktopApp.SetSystemTrayWindow(trayWindow)

		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShowDeck:      deckWindow.Show,
			OnConfigureKey:  keyPrefs.Show,
			OnConfigureDial: dialPrefs.Show,
			OnQuit:          fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(icon)
	} else {
		log.Printf("system tray unsupported on this platform")
		deckWindow.Window().SetCloseIntercept(fyneApp.Quit)
	}

	bell := chime.New()

	keyEvents, err := subscribe(keyPlacement)
	if err != nil {
		return err
	}
	dialEvents, err := subscribe(dialPlacement)
	if err != nil {
		return err
	}

	go func() {
		for event := range keyEvents {
			bell.HandleEvent(event)
			if trayManager != nil {
				fyne.Do(func() {
					trayManager.HandleEvent(event)
				})
			}
		}
	}()
	go func() {
		for event := range dialEvents {
			bell.HandleEvent(event)
		}
	}()

	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	deckWindow.Show()
	fyneApp.Run()
	return nil
}
