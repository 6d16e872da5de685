// Package input turns SDL2 events into per-frame input state: the events
// of the frame, keys held down, and accumulated mouse motion.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType is the kind of an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event is one processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input collects the events of one frame.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool
	quit   bool

	// mouse motion and wheel since the last Update
	dx, dy int
	wheel  int
}

// New creates an input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events. It returns true once the window was asked to
// close.
func (i *Input) Update() bool {
	i.begin()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.handle(event)
	}
	return i.quit
}

func (i *Input) begin() {
	i.events = i.events[:0]
	i.dx, i.dy, i.wheel = 0, 0, 0
}

func (i *Input) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		i.quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		sc := e.Keysym.Scancode
		switch e.Type {
		case sdl.KEYDOWN:
			i.held[sc] = true
			i.events = append(i.events, Event{Type: EventKeyDown, Key: sc, Repeat: e.Repeat != 0})
		case sdl.KEYUP:
			delete(i.held, sc)
			i.events = append(i.events, Event{Type: EventKeyUp, Key: sc})
		}

	case *sdl.MouseMotionEvent:
		i.dx += int(e.XRel)
		i.dy += int(e.YRel)
		i.events = append(i.events, Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		})

	case *sdl.MouseButtonEvent:
		typ := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			typ = EventMouseDown
		}
		i.events = append(i.events, Event{
			Type:   typ,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		})

	case *sdl.MouseWheelEvent:
		i.wheel += int(e.Y)
		i.events = append(i.events, Event{Type: EventMouseWheel, MouseY: int(e.Y)})
	}
}

// Events returns the events of the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether scancode went down this frame, ignoring
// key repeat.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether scancode is held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// MouseDelta returns the relative mouse motion of the last Update.
func (i *Input) MouseDelta() (dx, dy int) {
	return i.dx, i.dy
}

// Wheel returns the wheel clicks of the last Update, positive away from
// the user.
func (i *Input) Wheel() int {
	return i.wheel
}
