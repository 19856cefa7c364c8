// Package plugin declares the Pomodoro plugin and the actions it registers
// with the deck host.
package plugin

import (
	"errors"
	"fmt"

	"pomodorodeck/internal/core/pomodoro"
)

// ID identifies the plugin to the host.
const ID = "dev.pomodorodeck"

// ErrUnknownAction indicates an action id that no holder provides.
var ErrUnknownAction = errors.New("unknown action")

// InputKind is a family of host input surfaces.
type InputKind string

const (
	InputKey         InputKind = "key"
	InputDial        InputKind = "dial"
	InputTouchscreen InputKind = "touchscreen"
)

// Support describes how well an action works on an input kind.
type Support string

const (
	Supported   Support = "supported"
	Untested    Support = "untested"
	Unsupported Support = "unsupported"
)

// ActionHolder describes one action the plugin offers.
type ActionHolder struct {
	Suffix  string
	Name    string
	Support map[InputKind]Support
	Factory func(host pomodoro.Host, options pomodoro.Options) *pomodoro.Action
}

// ID returns the host-wide action identifier.
func (holder ActionHolder) ID() string {
	return ID + "::" + holder.Suffix
}

// Supports reports the support level for an input kind.
func (holder ActionHolder) Supports(kind InputKind) Support {
	if support, ok := holder.Support[kind]; ok {
		return support
	}
	return Unsupported
}

// NewAction creates an action instance for one placement.
func (holder ActionHolder) NewAction(host pomodoro.Host, options pomodoro.Options) *pomodoro.Action {
	return holder.Factory(host, options)
}

// Plugin is the set of actions registered by this module.
type Plugin struct {
	holders []ActionHolder
}

// New registers the Pomodoro action.
func New() *Plugin {
	plugin := &Plugin{}
	plugin.add(ActionHolder{
		Suffix: "Pomodoro",
		Name:   "Pomodoro",
		Support: map[InputKind]Support{
			InputKey:         Supported,
			InputDial:        Supported,
			InputTouchscreen: Untested,
		},
		Factory: pomodoro.New,
	})
	return plugin
}

func (plugin *Plugin) add(holder ActionHolder) {
	plugin.holders = append(plugin.holders, holder)
}

// Holders returns the registered actions.
func (plugin *Plugin) Holders() []ActionHolder {
	return append([]ActionHolder(nil), plugin.holders...)
}

// Lookup finds an action by its host-wide identifier.
func (plugin *Plugin) Lookup(actionID string) (ActionHolder, error) {
	for _, holder := range plugin.holders {
		if holder.ID() == actionID {
			return holder, nil
		}
	}
	return ActionHolder{}, fmt.Errorf("%w: %s", ErrUnknownAction, actionID)
}
