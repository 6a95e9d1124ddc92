// Package input handles SDL2 input events and maps them to player intent.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/clamber/internal/locomotion"
	"github.com/Faultbox/clamber/pkg/math"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseDown
	EventMouseUp
)

// KeyRespawn puts the character back at the level spawn.
const KeyRespawn = sdl.SCANCODE_R

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	Button uint8
}

// Input tracks held keys and buttons across frames.
type Input struct {
	events []Event

	keys    map[sdl.Scancode]bool
	buttons map[uint8]bool

	jump           bool // latched until ConsumeJump
	mouseX, mouseY float32
	quit           bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		keys:    make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.Handle(event)
	}
	return i.quit
}

// Handle applies one SDL event.
func (i *Input) Handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		i.quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		key := e.Keysym.Scancode
		if e.Type == sdl.KEYDOWN {
			if e.Repeat != 0 {
				return
			}
			i.keys[key] = true
			if key == sdl.SCANCODE_SPACE {
				i.jump = true
			}
			if key == sdl.SCANCODE_ESCAPE {
				i.quit = true
			}
			i.events = append(i.events, Event{Type: EventKeyDown, Key: key})
		} else if e.Type == sdl.KEYUP {
			delete(i.keys, key)
			i.events = append(i.events, Event{Type: EventKeyUp, Key: key})
		}

	case *sdl.MouseMotionEvent:
		i.mouseX += float32(e.XRel)
		i.mouseY += float32(e.YRel)

	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONDOWN {
			i.buttons[e.Button] = true
			i.events = append(i.events, Event{Type: EventMouseDown, Button: e.Button})
		} else if e.Type == sdl.MOUSEBUTTONUP {
			delete(i.buttons, e.Button)
			i.events = append(i.events, Event{Type: EventMouseUp, Button: e.Button})
		}
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.keys[scancode]
}

// Sample returns the current player intent. Move is WASD clamped to unit
// length; grabs are the left and right mouse buttons (or Q and E). Jump stays
// set until ConsumeJump.
func (i *Input) Sample() locomotion.Input {
	var move math.Vec2
	if i.keys[sdl.SCANCODE_W] {
		move.Y++
	}
	if i.keys[sdl.SCANCODE_S] {
		move.Y--
	}
	if i.keys[sdl.SCANCODE_D] {
		move.X++
	}
	if i.keys[sdl.SCANCODE_A] {
		move.X--
	}
	return locomotion.Input{
		Move:      move.ClampLength(1),
		Jump:      i.jump,
		LeftGrab:  i.buttons[sdl.BUTTON_LEFT] || i.keys[sdl.SCANCODE_Q],
		RightGrab: i.buttons[sdl.BUTTON_RIGHT] || i.keys[sdl.SCANCODE_E],
	}
}

// ConsumeJump clears the latched jump press once a fixed tick has seen it.
func (i *Input) ConsumeJump() {
	i.jump = false
}

// MouseDelta returns the accumulated relative mouse motion and resets it.
func (i *Input) MouseDelta() (dx, dy float32) {
	dx, dy = i.mouseX, i.mouseY
	i.mouseX, i.mouseY = 0, 0
	return dx, dy
}
