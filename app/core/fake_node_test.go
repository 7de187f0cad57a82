package core

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// fakeNode is a 100x100 box. Sink ports sit on its left edge and source
// ports on its right edge, 10 units apart starting at the top.
type fakeNode struct {
	id    uuid.UUID
	pos   V2
	ports int
	moved Signal

	accept   bool
	bindPort int
	offered  int
}

func newFakeNode(s *Scene, x, y float32) *fakeNode {
	n := &fakeNode{
		id:     uuid.New(),
		pos:    V2{X: x, Y: y},
		ports:  3,
		accept: true,
	}
	s.AddNode(n)
	return n
}

func (n *fakeNode) ID() uuid.UUID { return n.id }

func (n *fakeNode) PortCount(role EndType) int { return n.ports }

func (n *fakeNode) PortAnchor(port int, role EndType) V2 {
	x := n.pos.X
	if role == EndSource {
		x += 100
	}
	return V2{X: x, Y: n.pos.Y + 10*float32(port)}
}

func (n *fakeNode) Moved() *Signal { return &n.moved }

func (n *fakeNode) Contains(p V2, _ Transform) bool {
	return rl.CheckCollisionPointRec(p, rl.Rectangle{X: n.pos.X, Y: n.pos.Y, Width: 100, Height: 100})
}

func (n *fakeNode) HandlePointer(ev PointerEvent) bool { return false }

func (n *fakeNode) TryConnect(c *Connection) bool {
	n.offered++
	if !n.accept {
		return false
	}
	c.ConnectToNode(n.id, n.bindPort)
	return true
}

func (n *fakeNode) moveTo(x, y float32) {
	n.pos = V2{X: x, Y: y}
	n.moved.Emit()
}

// catchWiringError runs f and returns the *WiringError it panics with.
func catchWiringError(t *testing.T, f func()) (werr *WiringError) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		err, ok := r.(error)
		if !ok || !errors.As(err, &werr) {
			t.Fatalf("expected *WiringError, got %#v", r)
		}
	}()
	f()
	return nil
}

func press(x, y float32) PointerEvent {
	return PointerEvent{Kind: PointerPress, Pos: V2{X: x, Y: y}, Prev: V2{X: x, Y: y}}
}

func move(fromX, fromY, x, y float32) PointerEvent {
	return PointerEvent{Kind: PointerMove, Pos: V2{X: x, Y: y}, Prev: V2{X: fromX, Y: fromY}}
}

func release(x, y float32) PointerEvent {
	return PointerEvent{Kind: PointerRelease, Pos: V2{X: x, Y: y}, Prev: V2{X: x, Y: y}}
}
