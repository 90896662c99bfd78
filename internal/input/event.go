// Package input turns raw pointer and touch events into strokes. It owns the
// per-session tool parameters and the viewport transform, and tells its
// Target when to paint, preview, commit or roll back.
package input

import "LocalSketch/internal/geom"

// Phase is the stage of a gesture an event belongs to.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	}
	return "unknown"
}

// Contact is one pointer or finger position in device space.
type Contact struct {
	X, Y    float64
	Primary bool
}

// Event is one input notification. Multi-touch events carry one contact per
// finger.
type Event struct {
	Phase    Phase
	Contacts []Contact
}

// Pointer builds a single-contact event, the shape mouse and pen input take.
func Pointer(phase Phase, x, y float64) Event {
	return Event{Phase: phase, Contacts: []Contact{{X: x, Y: y, Primary: true}}}
}

// Touch builds a multi-touch event; the first contact is the primary one.
func Touch(phase Phase, pts ...geom.Point) Event {
	ev := Event{Phase: phase, Contacts: make([]Contact, len(pts))}
	for i, p := range pts {
		ev.Contacts[i] = Contact{X: p.X, Y: p.Y, Primary: i == 0}
	}
	return ev
}

// primary returns the contact flagged primary, or the first one.
func (e Event) primary() (Contact, bool) {
	if len(e.Contacts) == 0 {
		return Contact{}, false
	}
	for _, c := range e.Contacts {
		if c.Primary {
			return c, true
		}
	}
	return e.Contacts[0], true
}
