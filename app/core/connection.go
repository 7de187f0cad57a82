package core

import (
	"fmt"

	"github.com/bvisness/flowwire/util"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Connection is a directed link from a source port to a sink port. It
// refers to nodes only by ID and resolves them through its scene whenever it
// needs a position.
type Connection struct {
	PointDiameter float32
	LineWidth     float32

	id    uuid.UUID
	scene *Scene

	source Endpoint
	sink   Endpoint

	phase    Phase
	dragging EndType
	// The binding the dragging end had before it was pulled off its port.
	restore Binding

	subs      map[uuid.UUID]Subscription
	destroyed bool
}

// NewConnection starts a connection from a port the user pressed on. The
// end that is not dragging is bound to (origin, port); both ends start on
// that port's anchor point, and the new connection holds the pointer.
func NewConnection(scene *Scene, origin uuid.UUID, port int, dragging EndType) *Connection {
	const op = "create connection"
	if !dragging.valid() {
		fail(op, uuid.Nil, fmt.Errorf("%w: cannot start dragging %v", ErrInvalidEnd, dragging))
	}
	node := scene.mustNode(op, uuid.Nil, origin)
	bound := dragging.Opposite()
	checkPort(op, uuid.Nil, node, port, bound)

	c := &Connection{
		PointDiameter: scene.Settings.PointDiameter,
		LineWidth:     scene.Settings.LineWidth,

		id:    uuid.New(),
		scene: scene,

		phase:    PhasePendingCreation,
		dragging: dragging,

		subs: make(map[uuid.UUID]Subscription),
	}
	scene.CapturePointer(c)
	scene.addConnection(c, node)

	anchor := node.PortAnchor(port, bound)
	*c.end(bound) = Endpoint{Pos: anchor, Binding: Binding{Node: origin, Port: port}}
	*c.end(dragging) = Endpoint{Pos: anchor}

	c.syncSubscriptions()

	Logf("connection %s: created from %s, dragging %s", c.id, c.Binding(bound), dragging)
	return c
}

func (c *Connection) ID() uuid.UUID {
	return c.id
}

func (c *Connection) String() string {
	return fmt.Sprintf("Connection(%s: %s -> %s)", c.id, c.source.Binding, c.sink.Binding)
}

// Dragging returns the end currently under pointer control, or EndNone.
func (c *Connection) Dragging() EndType {
	return c.dragging
}

func (c *Connection) Phase() Phase {
	return c.phase
}

func (c *Connection) Endpoint(end EndType) Endpoint {
	return *c.mustEnd("endpoint", end)
}

func (c *Connection) EndpointPos(end EndType) V2 {
	return c.mustEnd("endpoint position", end).Pos
}

func (c *Connection) Binding(end EndType) Binding {
	return c.mustEnd("binding", end).Binding
}

func (c *Connection) Destroyed() bool {
	return c.destroyed
}

// SetDragging makes end the mobile end. Its binding is cleared and kept
// aside so an abandoned drag can put it back.
func (c *Connection) SetDragging(end EndType) {
	const op = "set dragging"
	ep := c.mustEnd(op, end)
	c.scene.CapturePointer(c)

	c.dragging = end
	if c.phase != PhasePendingCreation {
		c.phase = phaseFor(end)
	}
	c.restore = ep.Binding
	ep.Binding = Binding{}

	c.syncSubscriptions()
	c.scene.Invalidate()
}

// ConnectToNode binds the dragging end to (node, port) and ends the drag.
// It is the only way an endpoint goes from free to bound.
func (c *Connection) ConnectToNode(node uuid.UUID, port int) {
	const op = "connect to node"
	if c.dragging == EndNone {
		fail(op, c.id, ErrNoActiveDrag)
	}
	n := c.scene.mustNode(op, c.id, node)
	checkPort(op, c.id, n, port, c.dragging)

	ep := c.end(c.dragging)
	ep.Binding = Binding{Node: node, Port: port}
	ep.Pos = n.PortAnchor(port, c.dragging)
	Logf("connection %s: %s bound to %s", c.id, c.dragging, ep.Binding)

	c.endDrag()
}

// OnNodeMoved recomputes every bound endpoint from its node's current
// anchor. It depends only on the current bindings, so repeated or
// reordered calls give the same result.
func (c *Connection) OnNodeMoved() {
	for _, end := range [...]EndType{EndSource, EndSink} {
		ep := c.end(end)
		if !ep.Bound() {
			continue
		}
		n := c.scene.mustNode("recompute endpoint", c.id, ep.Binding.Node)
		ep.Pos = n.PortAnchor(ep.Binding.Port, end)
	}
	c.scene.Invalidate()
}

// EndpointAt returns the end within grab tolerance of p. Source wins when
// both are in range.
func (c *Connection) EndpointAt(p V2) EndType {
	tolerance := c.scene.Settings.GrabTolerance * c.PointDiameter
	if Distance(p, c.source.Pos) < tolerance {
		return EndSource
	}
	if Distance(p, c.sink.Pos) < tolerance {
		return EndSink
	}
	return EndNone
}

// Bounds is the box around both endpoints, padded for the markers and for
// the curve's overshoot.
func (c *Connection) Bounds() rl.Rectangle {
	addon := c.PointDiameter + c.scene.Settings.Overshoot
	minX := util.Min(c.source.Pos.X, c.sink.Pos.X)
	minY := util.Min(c.source.Pos.Y, c.sink.Pos.Y)
	maxX := util.Max(c.source.Pos.X, c.sink.Pos.X)
	maxY := util.Max(c.source.Pos.Y, c.sink.Pos.Y)
	return rl.Rectangle{
		X:      minX - addon,
		Y:      minY - addon,
		Width:  maxX - minX + 2*addon,
		Height: maxY - minY + 2*addon,
	}
}

func (c *Connection) Contains(p V2, _ Transform) bool {
	return rl.CheckCollisionPointRec(p, c.Bounds())
}

// Curve is the drawn path from source to sink.
func (c *Connection) Curve() Bezier {
	return CurveBetween(c.source.Pos, c.sink.Pos)
}

// Destroy unsubscribes from every node, gives up the pointer and leaves the
// scene. Calling it again does nothing.
func (c *Connection) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	for id, sub := range c.subs {
		sub.Cancel()
		delete(c.subs, id)
	}
	c.dragging = EndNone
	c.phase = PhaseIdle
	c.restore = Binding{}
	c.scene.ReleasePointer(c)
	c.scene.detach(c)
	Logf("connection %s: destroyed", c.id)
}

// endDrag returns the connection to idle and gives up the pointer.
func (c *Connection) endDrag() {
	c.dragging = EndNone
	c.phase = PhaseIdle
	c.restore = Binding{}
	c.syncSubscriptions()
	c.scene.ReleasePointer(c)
	c.scene.Invalidate()
}

func (c *Connection) references(node uuid.UUID) bool {
	if node == uuid.Nil {
		return false
	}
	return c.source.Binding.Node == node || c.sink.Binding.Node == node || c.restore.Node == node
}

// syncSubscriptions keeps exactly one move subscription per bound node.
func (c *Connection) syncSubscriptions() {
	want := make(map[uuid.UUID]bool, 2)
	for _, b := range [...]Binding{c.source.Binding, c.sink.Binding} {
		if b.Bound() {
			want[b.Node] = true
		}
	}
	for id, sub := range c.subs {
		if !want[id] {
			sub.Cancel()
			delete(c.subs, id)
		}
	}
	for id := range want {
		if _, ok := c.subs[id]; ok {
			continue
		}
		n := c.scene.mustNode("subscribe", c.id, id)
		c.subs[id] = n.Moved().Subscribe(c.OnNodeMoved)
	}
}

func (c *Connection) end(end EndType) *Endpoint {
	switch end {
	case EndSource:
		return &c.source
	case EndSink:
		return &c.sink
	default:
		return nil
	}
}

func (c *Connection) mustEnd(op string, end EndType) *Endpoint {
	ep := c.end(end)
	if ep == nil {
		fail(op, c.id, fmt.Errorf("%w: %v", ErrInvalidEnd, end))
	}
	return ep
}

func checkPort(op string, conn uuid.UUID, n Node, port int, role EndType) {
	if count := n.PortCount(role); port < 0 || port >= count {
		fail(op, conn, fmt.Errorf("%w: %s port %d on node %s with %d", ErrBadPort, role, port, n.ID(), count))
	}
}
