package app

import (
	"github.com/bvisness/flowwire/app/core"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

type CameraState struct {
	rl.Camera2D
}

func NewCameraState() *CameraState {
	return &CameraState{
		Camera2D: rl.Camera2D{
			Zoom: 1.0,
		},
	}
}

// View is the transform the scene is seen through.
func (c *CameraState) View() core.Transform {
	return core.Transform{Camera2D: c.Camera2D}
}

func (c *CameraState) WorldToScreen(worldPos rl.Vector2) rl.Vector2 {
	return c.View().WorldToScreen(worldPos)
}

func (c *CameraState) ScreenToWorld(screenPos rl.Vector2) rl.Vector2 {
	return c.View().ScreenToWorld(screenPos)
}

// Pan moves the view by a screen-space delta. Dragging right moves the
// world right, so the target moves left.
func (c *CameraState) Pan(delta rl.Vector2) {
	c.Target = rl.Vector2Subtract(c.Target, rl.Vector2Scale(delta, 1.0/c.Zoom))
}

// ZoomAt scales the view by factor, keeping the world point under screenPos
// where it is.
func (c *CameraState) ZoomAt(screenPos rl.Vector2, factor float32) {
	worldPos := c.ScreenToWorld(screenPos)

	c.Zoom = rl.Clamp(c.Zoom*factor, MinZoom, MaxZoom)

	// Screen = (World - Target) * Zoom + Offset
	// => Target = World - (Screen - Offset) / Zoom
	term := rl.Vector2Scale(rl.Vector2Subtract(screenPos, c.Offset), 1.0/c.Zoom)
	c.Target = rl.Vector2Subtract(worldPos, term)
}
