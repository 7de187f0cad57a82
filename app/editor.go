package app

import (
	"fmt"

	"github.com/bvisness/flowwire/app/core"
	"github.com/bvisness/flowwire/app/nodes"
	"github.com/bvisness/flowwire/util"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Editor is one canvas: the scene, the camera it is seen through, and the
// input feeding both.
type Editor struct {
	Settings *Settings
	Scene    *core.Scene
	Camera   *CameraState
	Palette  Palette
	Input    InputProvider

	pointer   PointerTracker
	accept    *nodes.AcceptRule
	lastMouse rl.Vector2
}

func NewEditor(settings *Settings, input InputProvider) (*Editor, error) {
	rule, err := nodes.NewAcceptRule(settings.AcceptRule)
	if err != nil {
		return nil, fmt.Errorf("new editor: %w", err)
	}
	return &Editor{
		Settings: settings,
		Scene:    core.NewScene(settings.Wiring),
		Camera:   NewCameraState(),
		Palette:  NewPalette(),
		Input:    input,

		pointer: PointerTracker{Input: input},
		accept:  rule,
	}, nil
}

func (e *Editor) AddNode(kind NodeKind, pos nodes.V2) *nodes.BoxNode {
	n := nodes.NewBoxNode(e.Scene, e.Palette.Title(kind), pos, kind.Inputs, kind.Outputs)
	n.Accept = e.accept
	e.Scene.AddNode(n)
	return n
}

// DeleteAt removes the topmost node or connection at p. A node takes its
// connections with it.
func (e *Editor) DeleteAt(p nodes.V2) bool {
	for _, it := range e.Scene.ItemsAt(p, e.Scene.View) {
		switch it := it.(type) {
		case core.Node:
			return e.Scene.RemoveNode(it.ID())
		case *core.Connection:
			return e.Scene.RemoveConnection(it.ID())
		}
	}
	return false
}

// Call once per frame.
func (e *Editor) Update() {
	in := e.Input
	mouse := in.GetMousePosition()
	defer func() { e.lastMouse = mouse }()

	if e.Palette.Open {
		e.updatePalette()
		return
	}

	if wheel := in.GetMouseWheelMove(); wheel != 0 {
		e.Camera.ZoomAt(mouse, util.Tern(wheel > 0, float32(1.1), float32(0.9)))
	}
	if in.IsMouseButtonDown(rl.MouseButtonMiddle) {
		e.Camera.Pan(rl.Vector2Subtract(mouse, e.lastMouse))
	}

	e.Scene.View = e.Camera.View()
	for _, ev := range e.pointer.Poll(e.Scene.View) {
		e.Scene.Dispatch(ev)
	}

	if e.Scene.Captured() != nil || e.pointer.Down() {
		return
	}
	world := e.Camera.ScreenToWorld(mouse)
	if in.IsKeyPressed(rl.KeyDelete) || in.IsKeyPressed(rl.KeyBackspace) {
		e.DeleteAt(world)
	}
	if in.IsKeyPressed(rl.KeySpace) || in.IsKeyPressed(rl.KeyTab) {
		e.Palette.Show(world)
	}
}

func (e *Editor) updatePalette() {
	in := e.Input
	p := &e.Palette

	for ch := in.GetCharPressed(); ch > 0; ch = in.GetCharPressed() {
		p.Query += string(rune(ch))
		p.Selected = 0
	}
	switch {
	case in.IsKeyPressed(rl.KeyEscape):
		p.Hide()
	case in.IsKeyPressed(rl.KeyBackspace):
		if len(p.Query) > 0 {
			r := []rune(p.Query)
			p.Query = string(r[:len(r)-1])
			p.Selected = 0
		}
	case in.IsKeyPressed(rl.KeyDown):
		p.MoveSelection(1)
	case in.IsKeyPressed(rl.KeyUp):
		p.MoveSelection(-1)
	case in.IsKeyPressed(rl.KeyEnter):
		if kind, ok := p.Choice(); ok {
			n := e.AddNode(kind, p.At)
			fmt.Printf("Added %s\n", n)
		}
		p.Hide()
	}
}
