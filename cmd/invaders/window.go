package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/example/invaders80/cmd/internal/gui"
	"github.com/example/invaders80/invaders"
)

const (
	baseWidth  = 224
	baseHeight = 256
)

// gameWindow owns the single SDL surface the emulator draws into, grounded
// on the teacher's cmd/nes/game.go gameWindow: a resizable window, a
// streaming texture the size of the emulated framebuffer, and keyboard
// handling translated into controller setter calls.
type gameWindow struct {
	scale    int32
	visible  bool
	window   *sdl.Window
	renderer *sdl.Renderer
	tex      *sdl.Texture
	rect     *sdl.Rect
	pixels   []byte
}

func newGameWindow(scale int32, title string) (*gameWindow, error) {
	window, renderer, err := sdl.CreateWindowAndRenderer(baseWidth*scale, baseHeight*scale, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, fmt.Errorf("unable to create game window: %s", err)
	}
	window.SetTitle(title)

	tex, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, baseWidth, baseHeight)
	if err != nil {
		return nil, fmt.Errorf("unable to create game texture: %s", err)
	}

	return &gameWindow{
		scale:    scale,
		visible:  true,
		window:   window,
		renderer: renderer,
		tex:      tex,
		rect:     &sdl.Rect{X: 0, Y: 0, W: baseWidth * scale, H: baseHeight * scale},
		pixels:   make([]byte, baseWidth*baseHeight*4),
	}, nil
}

// Render copies the machine's current framebuffer into the streaming
// texture and blits it, the same lock/copy/unlock/copy sequence as
// cmd/vnes/draw.go's drawRGBA.
func (w *gameWindow) Render(m *invaders.Machine) error {
	img := m.Buffer()

	for i := 0; i < baseWidth*baseHeight; i++ {
		v := img.Pix[i]
		w.pixels[i*4+0] = v
		w.pixels[i*4+1] = v
		w.pixels[i*4+2] = v
		w.pixels[i*4+3] = 0xFF
	}

	dst, _, err := w.tex.Lock(nil)
	if err != nil {
		return fmt.Errorf("unable to lock game texture: %s", err)
	}
	copy(dst, w.pixels)
	w.tex.Unlock()

	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("unable to clear game renderer: %s", err)
	}
	if err := w.renderer.Copy(w.tex, nil, w.rect); err != nil {
		return fmt.Errorf("unable to copy game texture: %s", err)
	}
	w.renderer.Present()

	return nil
}

// cabinetKeys maps the cabinet's inputs onto a keyboard, in the absence of
// the real coin mech, start lamps and two-player control panel.
var cabinetKeys = []struct {
	sym sdl.Keycode
	in  invaders.Input
}{
	{sdl.K_c, invaders.Coin},
	{sdl.K_RETURN, invaders.P1Start},
	{sdl.K_2, invaders.P2Start},
	{sdl.K_LEFT, invaders.P1Left},
	{sdl.K_RIGHT, invaders.P1Right},
	{sdl.K_SPACE, invaders.P1Fire},
	{sdl.K_a, invaders.P2Left},
	{sdl.K_d, invaders.P2Right},
	{sdl.K_w, invaders.P2Fire},
}

// Handle translates SDL keyboard and window events into Machine input
// calls and visibility changes, using the teacher's gui.IsKeyDown/IsKeyUp
// matchers instead of comparing Type and Keysym by hand.
func (w *gameWindow) Handle(event sdl.Event, m *invaders.Machine) {
	if evt, ok := event.(*sdl.WindowEvent); ok {
		if evt.Event == sdl.WINDOWEVENT_CLOSE {
			w.visible = false
			w.window.Hide()
		}
		return
	}

	for _, k := range cabinetKeys {
		if gui.IsKeyDown(event, k.sym) {
			m.Press(k.in)
			return
		}
		if gui.IsKeyUp(event, k.sym) {
			m.Release(k.in)
			return
		}
	}
}

func (w *gameWindow) Visible() bool { return w.visible }

func (w *gameWindow) Free() error {
	if w.tex != nil {
		if err := w.tex.Destroy(); err != nil {
			return err
		}
	}
	if w.renderer != nil {
		if err := w.renderer.Destroy(); err != nil {
			return err
		}
	}
	if w.window != nil {
		if err := w.window.Destroy(); err != nil {
			return err
		}
	}
	return nil
}
