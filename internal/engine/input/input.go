// Package input turns SDL2 events into the camera controls of the viewer.
package input

import "github.com/veandco/go-sdl2/sdl"

// State is the input gathered during one frame.
type State struct {
	Quit    bool
	Resized bool

	// DragX and DragY accumulate mouse motion while the left button is held.
	DragX, DragY float32
	// Wheel accumulates scroll steps, positive away from the user.
	Wheel float32
}

// Input polls SDL events.
type Input struct {
	dragging bool
}

// New creates an input handler.
func New() *Input {
	return &Input{}
}

// Poll drains the SDL event queue.
func (i *Input) Poll() State {
	var s State
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.Quit = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				s.Quit = true
			}
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				s.Resized = true
			}
		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}
		case *sdl.MouseMotionEvent:
			if i.dragging {
				s.DragX += float32(e.XRel)
				s.DragY += float32(e.YRel)
			}
		case *sdl.MouseWheelEvent:
			s.Wheel += float32(e.Y)
		}
	}
	return s
}
