// Package gui matches SDL keyboard events against a key and an optional
// modifier combination, for the cabinet's keyboard-to-controller-input
// translation in cmd/invaders/window.go.
package gui

import (
	"github.com/veandco/go-sdl2/sdl"
)

// mergingMods are the modifiers whose L/R variants both report through the
// merged constant (KMOD_LSHIFT or KMOD_RSHIFT alone already satisfies
// KMOD_SHIFT), checked individually so a combo like SHIFT|CTRL doesn't
// require both shifts and both ctrls held at once.
var mergingMods = []sdl.Keymod{sdl.KMOD_SHIFT, sdl.KMOD_CTRL, sdl.KMOD_ALT, sdl.KMOD_GUI}

// normalizeMods folds evt's L/R-specific modifier bits into their merged
// form for any merging modifier present in want, so the comparison against
// want in IsKeyboardEvent doesn't need to special-case left vs. right.
func normalizeMods(evtMods, want sdl.Keymod) sdl.Keymod {
	normalized := evtMods
	for _, m := range mergingMods {
		if want&m == m && evtMods&m > 0 {
			normalized |= m
		}
	}
	return normalized
}

func IsKeyboardEvent(e sdl.Event, typ uint32, repeat int, sym sdl.Keycode, mods ...sdl.Keymod) (*sdl.KeyboardEvent, bool) {
	evt, ok := e.(*sdl.KeyboardEvent)
	if !ok {
		return nil, false
	}

	if evt.Type != typ {
		return evt, false
	}

	if evt.Keysym.Sym != sym {
		return evt, false
	}

	if repeat != -1 && evt.Repeat != uint8(repeat) {
		return evt, false
	}

	var want sdl.Keymod
	for _, m := range mods {
		want |= m
	}

	// A plain & > 0 check would let partial matches through, since
	// KMOD_LSHIFT & (KMOD_SHIFT|KMOD_CTRL) is already nonzero.
	if normalizeMods(sdl.Keymod(evt.Keysym.Mod), want) != want {
		return evt, false
	}

	return evt, true
}

func IsKeyPress(evt sdl.Event, sym sdl.Keycode, mod ...sdl.Keymod) bool {
	_, v := IsKeyboardEvent(evt, sdl.KEYDOWN, 0, sym, mod...)
	return v
}

func IsKeyDown(evt sdl.Event, sym sdl.Keycode, mod ...sdl.Keymod) bool {
	_, v := IsKeyboardEvent(evt, sdl.KEYDOWN, -1, sym, mod...)
	return v
}

func IsKeyUp(evt sdl.Event, sym sdl.Keycode, mod ...sdl.Keymod) bool {
	_, v := IsKeyboardEvent(evt, sdl.KEYUP, 0, sym, mod...)
	return v
}
