// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/deskscene/internal/engine/pointer"
)

// Event types for scene use
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
	EventFingerDown
	EventFingerMove
	EventFingerUp
	EventFocusLost
)

// MousePointer is the pointer ID used for mouse events. Touch fingers get
// IDs above it.
const MousePointer = 0

// touchMouseID marks mouse events SDL synthesizes from touches; those
// arrive separately as finger events.
const touchMouseID = ^uint32(0)

// Event represents a processed input event.
type Event struct {
	Type      EventType
	Key       sdl.Scancode
	Width     int
	Height    int
	MouseX    int
	MouseY    int
	RelX      int
	RelY      int
	WheelY    int
	Button    uint8
	PointerID int
	X, Y      float32 // pointer position in window pixels
}

// Pointer converts a mouse or touch event into a scene pointer event.
// Only the left mouse button drives pointers; other buttons return false.
func (e Event) Pointer() (pointer.Event, bool) {
	var kind pointer.Kind
	switch e.Type {
	case EventMouseDown, EventFingerDown:
		kind = pointer.Down
	case EventMouseMove, EventFingerMove:
		kind = pointer.Move
	case EventMouseUp, EventFingerUp:
		kind = pointer.Up
	default:
		return pointer.Event{}, false
	}
	if (e.Type == EventMouseDown || e.Type == EventMouseUp) && e.Button != sdl.BUTTON_LEFT {
		return pointer.Event{}, false
	}
	return pointer.Event{Kind: kind, PointerID: e.PointerID, X: e.X, Y: e.Y}, true
}

// Input handles all input processing.
type Input struct {
	events  []Event
	width   int // window size used to scale normalized touch coordinates
	height  int
	fingers map[sdl.FingerID]int
	nextID  int
}

// New creates a new input handler.
func New(width, height int) *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		width:   width,
		height:  height,
		fingers: make(map[sdl.FingerID]int),
		nextID:  MousePointer + 1,
	}
}

// Update polls SDL events and converts them to scene events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED:
				i.width, i.height = int(e.Data1), int(e.Data2)
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  i.width,
					Height: i.height,
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				i.events = append(i.events, Event{Type: EventFocusLost})
			case sdl.WINDOWEVENT_LEAVE:
				// SDL keeps delivering motion and the release while a button is held
				if _, _, buttons := sdl.GetMouseState(); buttons == 0 {
					i.events = append(i.events, Event{Type: EventFocusLost})
				}
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			if e.Which == touchMouseID {
				continue
			}
			i.events = append(i.events, Event{
				Type:      EventMouseMove,
				MouseX:    int(e.X),
				MouseY:    int(e.Y),
				RelX:      int(e.XRel),
				RelY:      int(e.YRel),
				PointerID: MousePointer,
				X:         float32(e.X),
				Y:         float32(e.Y),
			})

		case *sdl.MouseButtonEvent:
			if e.Which == touchMouseID {
				continue
			}
			ev := Event{
				MouseX:    int(e.X),
				MouseY:    int(e.Y),
				Button:    e.Button,
				PointerID: MousePointer,
				X:         float32(e.X),
				Y:         float32(e.Y),
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = EventMouseDown
			} else {
				ev.Type = EventMouseUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseWheel,
				WheelY: int(e.Y),
			})

		case *sdl.TouchFingerEvent:
			i.events = append(i.events, i.finger(e))
		}
	}

	return false
}

// finger maps an SDL touch event to a pointer-carrying event. Each finger
// keeps one pointer ID from down to up.
func (i *Input) finger(e *sdl.TouchFingerEvent) Event {
	ev := Event{
		X: e.X * float32(i.width),
		Y: e.Y * float32(i.height),
	}
	switch e.Type {
	case sdl.FINGERDOWN:
		ev.Type = EventFingerDown
		i.fingers[e.FingerID] = i.nextID
		i.nextID++
	case sdl.FINGERMOTION:
		ev.Type = EventFingerMove
	default:
		ev.Type = EventFingerUp
	}

	id, ok := i.fingers[e.FingerID]
	if !ok {
		// motion for a finger that went down before we started listening
		id = i.nextID
		i.fingers[e.FingerID] = id
		i.nextID++
	}
	ev.PointerID = id
	if ev.Type == EventFingerUp {
		delete(i.fingers, e.FingerID)
	}
	return ev
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
