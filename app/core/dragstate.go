package core

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Phase is a connection's drag state.
type Phase int

const (
	// PhaseIdle: not being dragged.
	PhaseIdle Phase = iota
	// PhasePendingCreation: the gesture that created the connection is
	// still going. Dragging() names the end following the pointer.
	PhasePendingCreation
	PhaseDraggingSource
	PhaseDraggingSink
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePendingCreation:
		return "pending-creation"
	case PhaseDraggingSource:
		return "dragging-source"
	case PhaseDraggingSink:
		return "dragging-sink"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

func phaseFor(end EndType) Phase {
	if end == EndSource {
		return PhaseDraggingSource
	}
	return PhaseDraggingSink
}

type PointerKind int

const (
	PointerPress PointerKind = iota + 1
	PointerMove
	PointerRelease
	// PointerCancel abandons the current gesture (Escape).
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	case PointerCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
}

// PointerEvent is a pointer event in scene coordinates. Prev is the pointer
// position of the previous event.
type PointerEvent struct {
	Kind PointerKind
	Pos  V2
	Prev V2
	// View is filled in by Scene.Dispatch.
	View Transform
}

func (ev PointerEvent) Delta() V2 {
	return rl.Vector2Subtract(ev.Pos, ev.Prev)
}

// HandlePointer is the connection's drag state machine.
//
//	idle      + press on an endpoint -> SetDragging(end)
//	idle      + anything else        -> not claimed
//	dragging  + move                 -> free end follows the pointer delta
//	dragging  + release              -> offer to the node under the pointer,
//	                                    else resolve the orphan
//	dragging  + cancel               -> resolve the orphan
func (c *Connection) HandlePointer(ev PointerEvent) bool {
	if c.destroyed {
		return false
	}

	if c.dragging == EndNone {
		if ev.Kind != PointerPress {
			return false
		}
		end := c.EndpointAt(ev.Pos)
		if end == EndNone {
			return false
		}
		c.SetDragging(end)
		return true
	}

	switch ev.Kind {
	case PointerMove:
		ep := c.end(c.dragging)
		ep.Pos = rl.Vector2Add(ep.Pos, ev.Delta())
		c.scene.Invalidate()
	case PointerRelease:
		if node, ok := c.scene.LocateNodeAt(ev.Pos, ev.View); ok {
			node.TryConnect(c)
		}
		if c.dragging != EndNone {
			c.resolveOrphan()
		}
	case PointerCancel:
		c.resolveOrphan()
	}
	return true
}

// resolveOrphan ends a drag that no node accepted, according to the
// scene's orphan policy. A connection never survives with both ends free.
func (c *Connection) resolveOrphan() {
	end := c.dragging
	switch c.scene.Settings.OrphanPolicy {
	case OrphanKeep:
		Logf("connection %s: %s end left free at %v", c.id, end, c.end(end).Pos)
	default:
		if c.restore.Bound() {
			n := c.scene.mustNode("restore binding", c.id, c.restore.Node)
			*c.end(end) = Endpoint{
				Pos:     n.PortAnchor(c.restore.Port, end),
				Binding: c.restore,
			}
			Logf("connection %s: %s end returned to %s", c.id, end, c.restore)
		}
		if !c.source.Bound() || !c.sink.Bound() {
			c.Destroy()
			return
		}
	}

	if !c.source.Bound() && !c.sink.Bound() {
		c.Destroy()
		return
	}
	c.endDrag()
}
