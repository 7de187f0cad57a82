package core

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// V2 is a point in scene space.
type V2 = rl.Vector2

func Distance(a, b V2) float32 {
	return rl.Vector2Length(rl.Vector2Subtract(a, b))
}

// Transform maps scene coordinates to view coordinates. It follows the
// conventions of rl.Camera2D: Target is the scene point shown at Offset,
// Rotation is in degrees.
type Transform struct {
	rl.Camera2D
}

func Identity() Transform {
	return Transform{Camera2D: rl.Camera2D{Zoom: 1}}
}

// A zero Transform behaves like Identity.
func (t Transform) zoom() float32 {
	if t.Zoom == 0 {
		return 1
	}
	return t.Zoom
}

func (t Transform) WorldToScreen(p V2) V2 {
	v := rl.Vector2Scale(rl.Vector2Subtract(p, t.Target), t.zoom())
	v = rl.Vector2Rotate(v, t.Rotation*rl.Deg2rad)
	return rl.Vector2Add(v, t.Offset)
}

func (t Transform) ScreenToWorld(p V2) V2 {
	v := rl.Vector2Subtract(p, t.Offset)
	v = rl.Vector2Rotate(v, -t.Rotation*rl.Deg2rad)
	return rl.Vector2Add(rl.Vector2Scale(v, 1/t.zoom()), t.Target)
}

// ScreenToWorldDistance converts a length in view pixels to scene units.
func (t Transform) ScreenToWorldDistance(px float32) float32 {
	return px / t.zoom()
}

// Bezier is a cubic curve from P0 to P1 with control points C1 and C2.
type Bezier struct {
	P0, C1, C2, P1 V2
}

// CurveBetween builds the path drawn for a connection. Both control points
// sit on the horizontal midpoint, the first level with the source and the
// second level with the sink, so the curve leaves and enters horizontally.
func CurveBetween(source, sink V2) Bezier {
	const ratio1 = 0.5
	const ratio2 = 1 - ratio1
	return Bezier{
		P0: source,
		C1: V2{X: sink.X*ratio2 + source.X*ratio1, Y: source.Y},
		C2: V2{X: sink.X*ratio1 + source.X*ratio2, Y: sink.Y},
		P1: sink,
	}
}

func (b Bezier) At(t float32) V2 {
	u := 1 - t
	w0 := u * u * u
	w1 := 3 * u * u * t
	w2 := 3 * u * t * t
	w3 := t * t * t
	return V2{
		X: w0*b.P0.X + w1*b.C1.X + w2*b.C2.X + w3*b.P1.X,
		Y: w0*b.P0.Y + w1*b.C1.Y + w2*b.C2.Y + w3*b.P1.Y,
	}
}

// Sample returns n+1 evenly parameterized points, including both ends.
func (b Bezier) Sample(n int) []V2 {
	if n < 1 {
		n = 1
	}
	pts := make([]V2, n+1)
	for i := range pts {
		pts[i] = b.At(float32(i) / float32(n))
	}
	pts[n] = b.P1
	return pts
}
