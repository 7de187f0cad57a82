package core

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Logf receives the core's progress lines. It is silent unless the
// application points it somewhere.
var Logf = func(format string, args ...any) {}

// Item is anything the scene draws and routes pointer events to.
type Item interface {
	// Contains reports whether the scene point p hits the item when the
	// scene is viewed through t.
	Contains(p V2, t Transform) bool
	// HandlePointer returns true if the item claims the event. A press
	// that no item claims goes nowhere.
	HandlePointer(ev PointerEvent) bool
}

// Node is the contract the core needs from a diagram node. Nodes are
// referenced from connections only by ID.
type Node interface {
	Item
	ID() uuid.UUID
	PortCount(role EndType) int
	// PortAnchor returns where port currently renders for the given role,
	// in scene space.
	PortAnchor(port int, role EndType) V2
	Moved() *Signal
	// TryConnect is called when a dragged endpoint of c is released over
	// the node. A node that accepts calls c.ConnectToNode.
	TryConnect(c *Connection) bool
}

// Scene owns the set of nodes and connections for one editor. Items are
// kept in paint order, back to front.
type Scene struct {
	Settings WiringSettings
	// View is the transform the scene is currently shown through.
	View Transform

	items    []Item
	nodes    map[uuid.UUID]Node
	conns    map[uuid.UUID]*Connection
	captured Item
	dirty    bool
}

func NewScene(settings WiringSettings) *Scene {
	return &Scene{
		Settings: settings,
		View:     Identity(),
		nodes:    make(map[uuid.UUID]Node),
		conns:    make(map[uuid.UUID]*Connection),
	}
}

func (s *Scene) AddNode(n Node) {
	if _, exists := s.nodes[n.ID()]; exists {
		panic(fmt.Errorf("node %s is already in the scene", n.ID()))
	}
	s.items = append(s.items, n)
	s.nodes[n.ID()] = n
	s.Invalidate()
}

// RemoveNode removes the node and, before it, every connection that
// references it.
func (s *Scene) RemoveNode(id uuid.UUID) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}

	for _, c := range s.ConnectionsOf(id) {
		c.Destroy()
	}
	if s.captured == Item(n) {
		s.captured = nil
	}
	s.items = slices.DeleteFunc(s.items, func(it Item) bool { return it == Item(n) })
	delete(s.nodes, id)
	Logf("scene: removed node %s", id)
	s.Invalidate()
	return true
}

func (s *Scene) GetNode(id uuid.UUID) (Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns the scene's nodes in paint order.
func (s *Scene) Nodes() []Node {
	var res []Node
	for _, it := range s.items {
		if n, ok := it.(Node); ok {
			res = append(res, n)
		}
	}
	return res
}

// RaiseNode moves the node to the front, followed by the connections
// attached to it.
func (s *Scene) RaiseNode(id uuid.UUID) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	s.items = slices.DeleteFunc(s.items, func(it Item) bool { return it == Item(n) })
	s.items = append(s.items, n)
	for _, c := range s.ConnectionsOf(id) {
		s.items = slices.DeleteFunc(s.items, func(it Item) bool { return it == Item(c) })
		s.items = append(s.items, c)
	}
	s.Invalidate()
}

// Items returns every item in paint order.
func (s *Scene) Items() []Item {
	return slices.Clone(s.items)
}

// addConnection inserts c directly above the item it belongs to.
func (s *Scene) addConnection(c *Connection, above Item) {
	idx := slices.IndexFunc(s.items, func(it Item) bool { return it == above })
	if idx < 0 {
		s.items = append(s.items, c)
	} else {
		s.items = slices.Insert(s.items, idx+1, Item(c))
	}
	s.conns[c.id] = c
	s.Invalidate()
}

// detach forgets c. Connection.Destroy is the only caller.
func (s *Scene) detach(c *Connection) {
	s.items = slices.DeleteFunc(s.items, func(it Item) bool { return it == Item(c) })
	delete(s.conns, c.id)
	s.Invalidate()
}

func (s *Scene) RemoveConnection(id uuid.UUID) bool {
	c, ok := s.conns[id]
	if !ok {
		return false
	}
	c.Destroy()
	return true
}

func (s *Scene) Connection(id uuid.UUID) (*Connection, bool) {
	c, ok := s.conns[id]
	return c, ok
}

// Connections returns the scene's connections in paint order.
func (s *Scene) Connections() []*Connection {
	var res []*Connection
	for _, it := range s.items {
		if c, ok := it.(*Connection); ok {
			res = append(res, c)
		}
	}
	return res
}

// ConnectionsOf returns the connections bound to the node, including one
// whose end was pulled off the node and may still be put back.
func (s *Scene) ConnectionsOf(id uuid.UUID) []*Connection {
	var res []*Connection
	for _, c := range s.Connections() {
		if c.references(id) {
			res = append(res, c)
		}
	}
	return res
}

// ItemsAt returns every item containing p, front to back.
func (s *Scene) ItemsAt(p V2, t Transform) []Item {
	var res []Item
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Contains(p, t) {
			res = append(res, s.items[i])
		}
	}
	return res
}

// LocateNodeAt returns the topmost node containing p. Overlapping
// non-node items, connections included, are skipped.
func (s *Scene) LocateNodeAt(p V2, t Transform) (Node, bool) {
	for _, it := range s.ItemsAt(p, t) {
		if n, ok := it.(Node); ok {
			return n, true
		}
	}
	return nil, false
}

// CapturePointer routes all pointer events to item until it releases them.
func (s *Scene) CapturePointer(item Item) {
	if s.captured != nil && s.captured != item {
		fail("capture pointer", uuid.Nil, ErrPointerCaptured)
	}
	s.captured = item
}

// ReleasePointer ends item's capture. It does nothing if item does not hold
// the pointer.
func (s *Scene) ReleasePointer(item Item) {
	if s.captured == item {
		s.captured = nil
	}
}

func (s *Scene) Captured() Item {
	return s.captured
}

// Dispatch delivers a pointer event. A captured item gets everything; an
// uncaptured press is offered to items front to back, and the first to
// claim it holds the pointer until the gesture ends.
func (s *Scene) Dispatch(ev PointerEvent) bool {
	ev.View = s.View

	if target := s.captured; target != nil {
		handled := target.HandlePointer(ev)
		if ev.Kind == PointerRelease || ev.Kind == PointerCancel {
			s.ReleasePointer(target)
		}
		return handled
	}

	if ev.Kind != PointerPress {
		return false
	}
	for _, it := range s.ItemsAt(ev.Pos, s.View) {
		if it.HandlePointer(ev) {
			if s.captured == nil {
				s.CapturePointer(it)
			}
			return true
		}
	}
	return false
}

// Invalidate requests a redraw. The raylib loop repaints every frame and
// ignores the flag; TakeDirty is for renderers that only paint on change.
func (s *Scene) Invalidate() {
	s.dirty = true
}

// TakeDirty reports whether a redraw was requested since the last call.
func (s *Scene) TakeDirty() bool {
	dirty := s.dirty
	s.dirty = false
	return dirty
}

func (s *Scene) mustNode(op string, conn uuid.UUID, id uuid.UUID) Node {
	n, ok := s.nodes[id]
	if !ok {
		fail(op, conn, fmt.Errorf("%w: %s", ErrUnknownNode, id))
	}
	return n
}
