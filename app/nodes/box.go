package nodes

import (
	"fmt"

	"github.com/bvisness/flowwire/app/core"
	"github.com/bvisness/flowwire/util"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

const (
	TitleHeight = 24
	RowHeight   = 22
	PortRadius  = 6
	// Ports stay pickable at least this many pixels away when zoomed out.
	MinPickPixels = 8
	DefaultWidth  = 160
)

type V2 = core.V2

type Port struct {
	Name string
	Type string
}

// BoxNode is a titled box with input ports down its left edge and output
// ports down its right edge. Inputs take connection sinks, outputs take
// connection sources.
type BoxNode struct {
	Pos     V2
	Width   float32
	Title   string
	Inputs  []Port
	Outputs []Port
	// Accept decides which dropped connections the node takes. Nil means
	// DefaultAcceptRule.
	Accept *AcceptRule

	id       uuid.UUID
	scene    *core.Scene
	moved    core.Signal
	dragging bool
}

var _ core.Node = &BoxNode{}

// NewBoxNode builds a node for scene. The caller adds it with AddNode.
func NewBoxNode(scene *core.Scene, title string, pos V2, inputs, outputs []Port) *BoxNode {
	return &BoxNode{
		Pos:     pos,
		Width:   DefaultWidth,
		Title:   title,
		Inputs:  inputs,
		Outputs: outputs,

		id:    uuid.New(),
		scene: scene,
	}
}

func (n *BoxNode) ID() uuid.UUID {
	return n.id
}

func (n *BoxNode) String() string {
	return fmt.Sprintf("BoxNode(%s %q)", n.id, n.Title)
}

func (n *BoxNode) Moved() *core.Signal {
	return &n.moved
}

// Dragging reports whether the node itself is being moved by the pointer.
func (n *BoxNode) Dragging() bool {
	return n.dragging
}

func (n *BoxNode) Ports(role core.EndType) []Port {
	switch role {
	case core.EndSource:
		return n.Outputs
	case core.EndSink:
		return n.Inputs
	default:
		return nil
	}
}

func (n *BoxNode) PortCount(role core.EndType) int {
	return len(n.Ports(role))
}

func (n *BoxNode) PortType(port int, role core.EndType) string {
	ports := n.Ports(role)
	if port < 0 || port >= len(ports) || ports[port].Type == "" {
		return AnyType
	}
	return ports[port].Type
}

func (n *BoxNode) Rect() rl.Rectangle {
	rows := util.Max(util.Max(len(n.Inputs), len(n.Outputs)), 1)
	return rl.Rectangle{
		X:      n.Pos.X,
		Y:      n.Pos.Y,
		Width:  n.Width,
		Height: TitleHeight + RowHeight*float32(rows),
	}
}

func (n *BoxNode) TitleRect() rl.Rectangle {
	return rl.Rectangle{X: n.Pos.X, Y: n.Pos.Y, Width: n.Width, Height: TitleHeight}
}

func (n *BoxNode) PortAnchor(port int, role core.EndType) V2 {
	x := n.Pos.X
	if role == core.EndSource {
		x += n.Width
	}
	return V2{
		X: x,
		Y: n.Pos.Y + TitleHeight + RowHeight*float32(port) + RowHeight/2,
	}
}

func pickRadius(t core.Transform) float32 {
	return util.Max(float32(PortRadius), t.ScreenToWorldDistance(MinPickPixels))
}

// PortAt returns the port whose anchor is within pick radius of p. Outputs
// are checked first.
func (n *BoxNode) PortAt(p V2, t core.Transform) (int, core.EndType, bool) {
	r := pickRadius(t)
	for _, role := range [...]core.EndType{core.EndSource, core.EndSink} {
		for i := range n.Ports(role) {
			if core.Distance(p, n.PortAnchor(i, role)) <= r {
				return i, role, true
			}
		}
	}
	return 0, core.EndNone, false
}

// Contains includes the port circles that stick out past the box edges.
func (n *BoxNode) Contains(p V2, t core.Transform) bool {
	r := pickRadius(t)
	rect := n.Rect()
	rect.X -= r
	rect.Width += 2 * r
	return rl.CheckCollisionPointRec(p, rect)
}

func (n *BoxNode) MoveTo(p V2) {
	n.Pos = p
	n.moved.Emit()
	n.scene.Invalidate()
}

func (n *BoxNode) MoveBy(d V2) {
	n.MoveTo(rl.Vector2Add(n.Pos, d))
}

// HandlePointer starts a new connection from a pressed port, or moves the
// node when its body is dragged. A second press during a body drag is
// swallowed.
func (n *BoxNode) HandlePointer(ev core.PointerEvent) bool {
	switch ev.Kind {
	case core.PointerPress:
		if n.dragging {
			return true
		}
		if port, role, ok := n.PortAt(ev.Pos, ev.View); ok {
			// A wired input gives up its wire instead of starting another.
			if role == core.EndSink {
				if c := n.wiredInput(port); c != nil {
					c.SetDragging(core.EndSink)
					return true
				}
			}
			core.NewConnection(n.scene, n.id, port, role.Opposite())
			return true
		}
		if rl.CheckCollisionPointRec(ev.Pos, n.Rect()) {
			n.dragging = true
			n.scene.RaiseNode(n.id)
			return true
		}
	case core.PointerMove:
		if n.dragging {
			n.MoveBy(ev.Delta())
			return true
		}
	case core.PointerRelease, core.PointerCancel:
		if n.dragging {
			n.dragging = false
			return true
		}
	}
	return false
}

// TryConnect binds the dragging end of c to the nearest port that can take
// it, if the accept rule allows. An input holds at most one wire.
func (n *BoxNode) TryConnect(c *core.Connection) bool {
	role := c.Dragging()
	if role == core.EndNone || n.PortCount(role) == 0 {
		return false
	}

	at := c.EndpointPos(role)
	best, bestDist := 0, float32(-1)
	for i := range n.Ports(role) {
		d := core.Distance(at, n.PortAnchor(i, role))
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	if role == core.EndSink {
		if other := n.wiredInput(best); other != nil && other != c {
			core.Logf("%s: port %d is already wired by %s", n, best, other)
			return false
		}
	}

	rule := n.Accept
	if rule == nil {
		rule = defaultRule
	}
	ok, err := rule.Allows(n.candidate(c, role, best))
	if err != nil {
		core.Logf("%s: %v", n, err)
		return false
	}
	if !ok {
		core.Logf("%s: refused %s on port %d", n, c, best)
		return false
	}

	c.ConnectToNode(n.id, best)
	return true
}

func (n *BoxNode) wiredInput(port int) *core.Connection {
	want := core.Binding{Node: n.id, Port: port}
	for _, c := range n.scene.ConnectionsOf(n.id) {
		if c.Binding(core.EndSink) == want {
			return c
		}
	}
	return nil
}

func (n *BoxNode) candidate(c *core.Connection, role core.EndType, port int) Candidate {
	here := PortRef{Node: n.id, Port: port, Type: n.PortType(port, role)}

	other := role.Opposite()
	b := c.Binding(other)
	there := PortRef{Node: b.Node, Port: b.Port}
	if node, ok := n.scene.GetNode(b.Node); ok {
		if box, ok := node.(*BoxNode); ok {
			there.Type = box.PortType(b.Port, other)
		}
	}

	if role == core.EndSource {
		return Candidate{Source: here, Sink: there}
	}
	return Candidate{Source: there, Sink: here}
}
