package app

import (
	"github.com/bvisness/flowwire/app/core"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type InputProvider interface {
	IsKeyPressed(key int32) bool
	IsMouseButtonPressed(button rl.MouseButton) bool
	IsMouseButtonReleased(button rl.MouseButton) bool
	IsMouseButtonDown(button rl.MouseButton) bool
	GetMousePosition() rl.Vector2
	GetMouseWheelMove() float32
	GetCharPressed() int32
}

type RealInputProvider struct{}

func (p RealInputProvider) IsKeyPressed(key int32) bool {
	return rl.IsKeyPressed(key)
}
func (p RealInputProvider) IsMouseButtonPressed(button rl.MouseButton) bool {
	return rl.IsMouseButtonPressed(button)
}
func (p RealInputProvider) IsMouseButtonReleased(button rl.MouseButton) bool {
	return rl.IsMouseButtonReleased(button)
}
func (p RealInputProvider) IsMouseButtonDown(button rl.MouseButton) bool {
	return rl.IsMouseButtonDown(button)
}
func (p RealInputProvider) GetMousePosition() rl.Vector2 {
	return rl.GetMousePosition()
}
func (p RealInputProvider) GetMouseWheelMove() float32 {
	return rl.GetMouseWheelMove()
}
func (p RealInputProvider) GetCharPressed() int32 {
	return rl.GetCharPressed()
}

// PointerTracker turns the left mouse button into scene pointer events.
type PointerTracker struct {
	Input InputProvider

	down bool
	last rl.Vector2 // screen space
	seen bool
}

// Down reports whether a gesture is in progress.
func (p *PointerTracker) Down() bool {
	return p.down
}

// Poll is called once per frame. Events come out in the order cancel,
// press, move, release. Escape cancels the current gesture, and the button
// release that follows it is swallowed.
func (p *PointerTracker) Poll(view core.Transform) []core.PointerEvent {
	screen := p.Input.GetMousePosition()
	if !p.seen {
		p.last = screen
		p.seen = true
	}
	pos := view.ScreenToWorld(screen)
	prev := view.ScreenToWorld(p.last)
	p.last = screen

	var evs []core.PointerEvent
	if p.down && p.Input.IsKeyPressed(rl.KeyEscape) {
		p.down = false
		evs = append(evs, core.PointerEvent{Kind: core.PointerCancel, Pos: pos, Prev: pos})
	}
	if p.Input.IsMouseButtonPressed(rl.MouseButtonLeft) {
		p.down = true
		evs = append(evs, core.PointerEvent{Kind: core.PointerPress, Pos: pos, Prev: pos})
	} else if pos != prev {
		evs = append(evs, core.PointerEvent{Kind: core.PointerMove, Pos: pos, Prev: prev})
	}
	if p.down && p.Input.IsMouseButtonReleased(rl.MouseButtonLeft) {
		p.down = false
		evs = append(evs, core.PointerEvent{Kind: core.PointerRelease, Pos: pos, Prev: pos})
	}
	return evs
}
