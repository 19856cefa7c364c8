package main

import (
	"context"
	"log"

	"pomodorodeck/internal/console"
	"pomodorodeck/internal/host"
	"pomodorodeck/internal/ui/chime"
)

func runConsole(ctx context.Context, cancel context.CancelFunc, rt *session) error {
	key := console.NewKeySurface()
	dial := console.NewDialSurface()

	keyPlacement, err := rt.place(key)
	if err != nil {
		return err
	}
	dialPlacement, err := rt.place(dial)
	if err != nil {
		return err
	}

	shell, err := console.New([]console.Target{
		{Name: "key", Placement: keyPlacement, Surface: key},
		{Name: "dial", Placement: dialPlacement, Surface: dial},
	})
	if err != nil {
		return err
	}
	log.SetOutput(shell.Stdout())

	bell := chime.New()
	for _, placement := range []*host.Placement{keyPlacement, dialPlacement} {
		events, err := subscribe(placement)
		if err != nil {
			return err
		}
		go func() {
			for event := range events {
				bell.HandleEvent(event)
			}
		}()
	}

	go shell.Run(ctx, cancel)
	<-ctx.Done()
	return nil
}
