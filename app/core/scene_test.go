package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateNodeAt(t *testing.T) {
	s := NewScene(DefaultWiringSettings())
	b := newFakeNode(s, 50, 50)
	a := newFakeNode(s, 0, 0)

	// Both contain (60,60); a was added last so it is on top.
	n, ok := s.LocateNodeAt(V2{X: 60, Y: 60}, Identity())
	require.True(t, ok)
	assert.Equal(t, a.id, n.ID())

	n, ok = s.LocateNodeAt(V2{X: 140, Y: 140}, Identity())
	require.True(t, ok)
	assert.Equal(t, b.id, n.ID())

	_, ok = s.LocateNodeAt(V2{X: -50, Y: -50}, Identity())
	assert.False(t, ok)

	t.Run("connections do not occlude", func(t *testing.T) {
		c := NewConnection(s, a.id, 0, EndSink)
		defer c.Destroy()
		s.RaiseNode(a.id)

		at := V2{X: 95, Y: 5}
		require.Equal(t, Item(c), s.ItemsAt(at, Identity())[0])
		n, ok := s.LocateNodeAt(at, Identity())
		require.True(t, ok)
		assert.Equal(t, a.id, n.ID())
	})
}

func TestAddNode_Duplicate(t *testing.T) {
	s := NewScene(DefaultWiringSettings())
	a := newFakeNode(s, 0, 0)
	assert.Panics(t, func() { s.AddNode(a) })
	assert.Len(t, s.Nodes(), 1)
}

func TestRemoveNode(t *testing.T) {
	s := NewScene(DefaultWiringSettings())
	a := newFakeNode(s, 0, 0)
	b := newFakeNode(s, 300, 0)
	c := newFakeNode(s, 300, 200)

	ab := NewConnection(s, a.id, 0, EndSink)
	ab.ConnectToNode(b.id, 0)
	cb := NewConnection(s, c.id, 0, EndSink)
	cb.ConnectToNode(b.id, 1)

	assert.True(t, s.RemoveNode(a.id))

	assert.True(t, ab.Destroyed())
	assert.False(t, cb.Destroyed())
	assert.Equal(t, []*Connection{cb}, s.Connections())
	assert.Equal(t, 1, b.moved.Len())
	_, ok := s.GetNode(a.id)
	assert.False(t, ok)
	assert.NotContains(t, s.Items(), Item(a))

	assert.False(t, s.RemoveNode(a.id))
}

func TestRemoveNode_DuringReroute(t *testing.T) {
	s := NewScene(DefaultWiringSettings())
	a := newFakeNode(s, 0, 0)
	b := newFakeNode(s, 300, 0)
	c := NewConnection(s, a.id, 0, EndSink)
	c.ConnectToNode(b.id, 0)

	c.SetDragging(EndSink)
	s.RemoveNode(b.id)

	assert.True(t, c.Destroyed())
	assert.Nil(t, s.Captured())
	assert.Equal(t, 0, a.moved.Len())
}

func TestRaiseNode(t *testing.T) {
	s := NewScene(DefaultWiringSettings())
	a := newFakeNode(s, 0, 0)
	b := newFakeNode(s, 300, 0)
	c := NewConnection(s, a.id, 0, EndSink)
	c.ConnectToNode(b.id, 0)

	assert.Equal(t, []Item{a, c, b}, s.Items())
	s.RaiseNode(a.id)
	assert.Equal(t, []Item{b, a, c}, s.Items())
}

func TestCapturePointer(t *testing.T) {
	s := NewScene(DefaultWiringSettings())
	a := newFakeNode(s, 0, 0)
	b := newFakeNode(s, 300, 0)

	s.CapturePointer(a)
	s.CapturePointer(a)
	assert.Equal(t, Item(a), s.Captured())

	err := catchWiringError(t, func() { s.CapturePointer(b) })
	assert.ErrorIs(t, err, ErrPointerCaptured)
	assert.Equal(t, Item(a), s.Captured())

	s.ReleasePointer(b)
	assert.Equal(t, Item(a), s.Captured())
	s.ReleasePointer(a)
	assert.Nil(t, s.Captured())
}

func TestDispatch(t *testing.T) {
	s := NewScene(DefaultWiringSettings())
	a := newFakeNode(s, 0, 0)
	b := newFakeNode(s, 300, 0)
	c := NewConnection(s, a.id, 0, EndSink)
	c.ConnectToNode(b.id, 0)

	t.Run("unclaimed press", func(t *testing.T) {
		assert.False(t, s.Dispatch(press(50, 50)))
		assert.False(t, s.Dispatch(press(-500, -500)))
		assert.Nil(t, s.Captured())
	})

	t.Run("moves without capture go nowhere", func(t *testing.T) {
		assert.False(t, s.Dispatch(move(300, 0, 310, 10)))
		assert.Equal(t, EndNone, c.Dragging())
	})

	t.Run("press on an endpoint grabs the connection", func(t *testing.T) {
		// b is on top at (300,0) but does not claim presses.
		require.True(t, s.Dispatch(press(300, 0)))
		assert.Equal(t, Item(c), s.Captured())
		assert.Equal(t, EndSink, c.Dragging())

		assert.True(t, s.Dispatch(move(300, 0, 340, 60)))
		assert.Equal(t, V2{X: 340, Y: 60}, c.EndpointPos(EndSink))

		assert.True(t, s.Dispatch(release(-500, -500)))
		assert.Nil(t, s.Captured())
		assert.Equal(t, Binding{Node: b.id, Port: 0}, c.Binding(EndSink))
	})

	t.Run("view is stamped on events", func(t *testing.T) {
		s.View = Transform{}
		s.View.Zoom = 2
		defer func() { s.View = Identity() }()

		rec := &recordingItem{}
		s.items = append(s.items, rec)
		defer func() { s.items = s.items[:len(s.items)-1] }()

		s.Dispatch(press(0, 0))
		assert.Equal(t, float32(2), rec.last.View.Zoom)
	})
}

func TestTakeDirty(t *testing.T) {
	s := NewScene(DefaultWiringSettings())
	assert.False(t, s.TakeDirty())
	a := newFakeNode(s, 0, 0)
	assert.True(t, s.TakeDirty())
	assert.False(t, s.TakeDirty())

	a.moveTo(10, 10)
	assert.False(t, s.TakeDirty(), "no connection is listening")

	NewConnection(s, a.id, 0, EndSink).Destroy()
	assert.True(t, s.TakeDirty())
}

type recordingItem struct {
	last PointerEvent
}

func (r *recordingItem) Contains(V2, Transform) bool { return true }

func (r *recordingItem) HandlePointer(ev PointerEvent) bool {
	r.last = ev
	return false
}
