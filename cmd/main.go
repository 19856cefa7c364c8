package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"pomodorodeck/internal/core/pomodoro"
	"pomodorodeck/internal/host"
	"pomodorodeck/internal/i18n"
	"pomodorodeck/internal/platform"
	"pomodorodeck/internal/plugin"
	"pomodorodeck/internal/storage"
	"pomodorodeck/resources"
)

const (
	appName = "PomodoroDeck"
	appID   = "dev.pomodorodeck.app"

	pomodoroAction = plugin.ID + "::Pomodoro"
	eventBuffer    = 16
)

type session struct {
	loop    *host.Loop
	store   *storage.Store
	holder  plugin.ActionHolder
	options pomodoro.Options
}

func main() {
	headless := flag.Bool("headless", false, "Run the readline console instead of the deck window")
	configPath := flag.String("config", "", "Settings file (default: user config dir)")
	assetsDir := flag.String("assets", "", "Directory the action icon is written to (default: next to the settings file)")
	flag.Parse()

	i18n.Setup()

	settingsPath := *configPath
	if settingsPath == "" {
		defaultPath, err := storage.DefaultPath(appName)
		if err != nil {
			log.Fatalf("settings: %v", err)
		}
		settingsPath = defaultPath
	}

	guard, err := platform.AcquireSingleInstance(appName, settingsPath)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := storage.Open(settingsPath)
	if err != nil {
		log.Printf("settings: %v", err)
		return
	}
	log.Printf("settings: using %s", store.Path())

	iconDir := *assetsDir
	if iconDir == "" {
		iconDir = filepath.Join(filepath.Dir(settingsPath), "assets")
	}
	iconPath, err := resources.MaterializeIcon(iconDir, resources.IconFile)
	if err != nil {
		log.Printf("assets: %v", err)
	}

	holder, err := plugin.New().Lookup(pomodoroAction)
	if err != nil {
		log.Printf("plugin: %v", err)
		return
	}

	loop := host.NewLoop(host.Options{TickInterval: time.Second})
	loop.Start()
	defer loop.Stop()

	rt := &session{
		loop:    loop,
		store:   store,
		holder:  holder,
		options: pomodoro.Options{IconPath: iconPath},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log.Printf("received signal: %v", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if *headless {
		err = runConsole(ctx, cancel, rt)
	} else {
		err = runDeck(ctx, rt)
	}
	if err != nil {
		log.Printf("%v", err)
	}
}

// place attaches the Pomodoro action to surface, reusing the persisted
// placement for that surface kind.
func (rt *session) place(surface host.Surface) (*host.Placement, error) {
	id, err := rt.store.Ensure(string(surface.Kind()), rt.holder.ID())
	if err != nil {
		return nil, fmt.Errorf("allocate %s placement: %w", surface.Kind(), err)
	}
	placement, err := rt.loop.Attach(rt.holder, id, surface, rt.store, rt.options)
	if err != nil {
		return nil, fmt.Errorf("attach %s placement: %w", surface.Kind(), err)
	}
	return placement, nil
}

func subscribe(placement *host.Placement) (<-chan pomodoro.Event, error) {
	var events <-chan pomodoro.Event
	err := placement.Call(context.Background(), func(action *pomodoro.Action) {
		events = action.Subscribe(eventBuffer)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", placement.ID(), err)
	}
	return events, nil
}

func dispatch(placement *host.Placement, event pomodoro.InputEvent) {
	if placement == nil {
		return
	}
	if err := placement.Dispatch(event); err != nil {
		log.Printf("input: %s: %v", event, err)
	}
}
