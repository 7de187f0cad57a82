package app

import (
	"github.com/bvisness/flowwire/app/core"
	"github.com/bvisness/flowwire/app/nodes"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Draw paints the scene in its stacking order, then the screen overlays.
func (e *Editor) Draw() {
	rl.BeginMode2D(e.Camera.Camera2D)
	for _, it := range e.Scene.Items() {
		switch it := it.(type) {
		case *nodes.BoxNode:
			drawNode(it)
		case *core.Connection:
			drawConnection(e.Scene, it)
		}
	}
	rl.EndMode2D()

	if e.Palette.Open {
		drawPalette(&e.Palette)
	}
	if e.Settings.Debug {
		rl.DrawFPS(S2, S2)
	}
}

func drawNode(n *nodes.BoxNode) {
	rect := n.Rect()
	title := n.TitleRect()
	rl.DrawRectangleRec(rect, Charcoal)
	rl.DrawRectangleRec(title, DarkGray)
	border := Gray
	if n.Dragging() {
		border = White
	}
	rl.DrawRectangleLinesEx(rect, 1, border)
	rl.DrawText(n.Title, int32(title.X)+S2, int32(title.Y)+S1+2, F2, White)

	for i, p := range n.Inputs {
		at := n.PortAnchor(i, core.EndSink)
		rl.DrawCircleV(at, nodes.PortRadius, PortColor(p.Type))
		rl.DrawText(p.Name, int32(at.X)+nodes.PortRadius+S1, int32(at.Y)-F1/2, F1, White)
	}
	for i, p := range n.Outputs {
		at := n.PortAnchor(i, core.EndSource)
		rl.DrawCircleV(at, nodes.PortRadius, PortColor(p.Type))
		w := rl.MeasureText(p.Name, F1)
		rl.DrawText(p.Name, int32(at.X)-nodes.PortRadius-S1-w, int32(at.Y)-F1/2, F1, White)
	}
}

func drawConnection(s *core.Scene, c *core.Connection) {
	color := White
	if src := c.Binding(core.EndSource); src.Bound() {
		if n, ok := s.GetNode(src.Node); ok {
			if box, ok := n.(*nodes.BoxNode); ok {
				color = PortColor(box.PortType(src.Port, core.EndSource))
			}
		}
	}

	pts := c.Curve().Sample(CurveSegments)
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(pts[i-1], pts[i], c.LineWidth, color)
	}

	for _, end := range [...]core.EndType{core.EndSource, core.EndSink} {
		ep := c.Endpoint(end)
		marker := color
		if !ep.Bound() {
			marker = White
		}
		rl.DrawCircleV(ep.Pos, c.PointDiameter/2, marker)
	}
}

func drawPalette(p *Palette) {
	const width = 280
	x := int32(rl.GetScreenWidth()/2 - width/2)
	y := int32(rl.GetScreenHeight() / 4)

	results := p.Search(p.Query)
	height := int32(S3*2 + F3 + S2 + len(results)*(F2+S2))
	rl.DrawRectangle(x, y, width, height, Charcoal)
	rl.DrawRectangleLines(x, y, width, height, Gray)
	rl.DrawText("> "+p.Query, x+S3, y+S3, F3, White)

	rowY := y + S3 + F3 + S2
	for i, kind := range results {
		if i == p.Selected {
			rl.DrawRectangle(x+S1, rowY-S1/2, width-2*S1, F2+S1, DarkGray)
		}
		rl.DrawText(p.Title(kind), x+S3, rowY, F2, White)
		rowY += F2 + S2
	}
}
