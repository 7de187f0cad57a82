package app

import (
	"testing"

	"github.com/bvisness/flowwire/app/core"
	"github.com/bvisness/flowwire/app/nodes"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) (*Editor, *MockInputProvider) {
	t.Helper()
	mock := NewMockInput()
	e, err := NewEditor(DefaultSettings(), mock)
	require.NoError(t, err)
	return e, mock
}

func TestEditor_WireTwoNodes(t *testing.T) {
	e, mock := newTestEditor(t)
	value := e.AddNode(DefaultKinds[0], nodes.V2{X: 0, Y: 0})
	formula := e.AddNode(DefaultKinds[1], nodes.V2{X: 300, Y: 0})

	out := value.PortAnchor(0, core.EndSource)
	in := formula.PortAnchor(0, core.EndSink)

	mock.Press(out.X, out.Y)
	e.Update()
	require.Len(t, e.Scene.Connections(), 1)
	c := e.Scene.Connections()[0]
	assert.Equal(t, core.PhasePendingCreation, c.Phase())

	mock.MoveTo(in.X+2, in.Y+1)
	e.Update()
	mock.Release()
	e.Update()

	assert.Equal(t, core.Binding{Node: value.ID(), Port: 0}, c.Binding(core.EndSource))
	assert.Equal(t, core.Binding{Node: formula.ID(), Port: 0}, c.Binding(core.EndSink))
	assert.Equal(t, core.PhaseIdle, c.Phase())
	assert.Nil(t, e.Scene.Captured())
}

func TestEditor_DeleteUnderPointer(t *testing.T) {
	e, mock := newTestEditor(t)
	value := e.AddNode(DefaultKinds[0], nodes.V2{X: 0, Y: 0})
	formula := e.AddNode(DefaultKinds[1], nodes.V2{X: 300, Y: 0})
	c := core.NewConnection(e.Scene, value.ID(), 0, core.EndSink)
	c.ConnectToNode(formula.ID(), 0)

	mock.MoveTo(350, 40)
	e.Update()
	mock.Key(rl.KeyDelete)
	e.Update()

	_, ok := e.Scene.GetNode(formula.ID())
	assert.False(t, ok)
	assert.True(t, c.Destroyed())
	assert.Len(t, e.Scene.Nodes(), 1)
}

func TestEditor_Palette(t *testing.T) {
	e, mock := newTestEditor(t)

	mock.MoveTo(200, 120)
	e.Update()
	mock.Key(rl.KeyTab)
	e.Update()
	require.True(t, e.Palette.Open)
	assert.Equal(t, nodes.V2{X: 200, Y: 120}, e.Palette.At)

	mock.NextFrame()
	mock.Chars = []int32{'r', 'g', 'x'}
	e.Update()
	assert.Equal(t, "rgx", e.Palette.Query)

	mock.Key(rl.KeyEnter)
	e.Update()
	assert.False(t, e.Palette.Open)

	all := e.Scene.Nodes()
	require.Len(t, all, 1)
	box := all[0].(*nodes.BoxNode)
	assert.Equal(t, "Regex", box.Title)
	assert.Equal(t, nodes.V2{X: 200, Y: 120}, box.Pos)
}

func TestEditor_PaletteEscape(t *testing.T) {
	e, mock := newTestEditor(t)

	mock.Key(rl.KeyTab)
	e.Update()
	require.True(t, e.Palette.Open)

	mock.Key(rl.KeyEscape)
	e.Update()
	assert.False(t, e.Palette.Open)
	assert.Empty(t, e.Scene.Nodes())
}

func TestEditor_BadAcceptRule(t *testing.T) {
	settings := DefaultSettings()
	settings.AcceptRule = `sinkPort +`
	_, err := NewEditor(settings, NewMockInput())
	assert.Error(t, err)
}

func TestEditor_ZoomAndPan(t *testing.T) {
	e, mock := newTestEditor(t)

	mock.MoveTo(100, 100)
	mock.Wheel = 1
	e.Update()
	assert.InDelta(t, 1.1, e.Camera.Zoom, 0.0001)

	mock.NextFrame()
	mock.ButtonsDown[rl.MouseButtonMiddle] = true
	e.Update()
	before := e.Camera.Target
	mock.MoveTo(122, 100)
	e.Update()
	assert.InDelta(t, before.X-20, e.Camera.Target.X, 0.001)
	assert.Equal(t, e.Camera.View(), e.Scene.View)
}
