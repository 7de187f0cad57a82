package app

import "image/color"

var Night = color.RGBA{R: 12, G: 14, B: 17, A: 255}
var Charcoal = color.RGBA{R: 20, G: 22, B: 25, A: 255}
var DarkGray = color.RGBA{R: 33, G: 36, B: 40, A: 255}
var Gray = color.RGBA{R: 67, G: 71, B: 79, A: 255}
var White = color.RGBA{R: 250, G: 250, B: 252, A: 255}

var Blue = color.RGBA{R: 86, G: 156, B: 214, A: 255}
var Green = color.RGBA{R: 106, G: 171, B: 115, A: 255}
var Orange = color.RGBA{R: 214, G: 157, B: 86, A: 255}
var Purple = color.RGBA{R: 174, G: 129, B: 255, A: 255}

const S1 = 4
const S2 = 8
const S3 = 16

const F1 = 12
const F2 = 16
const F3 = 18

// Curve segments per connection.
const CurveSegments = 24

// PortColor picks a color per port type so compatible ports match.
func PortColor(typ string) color.RGBA {
	switch typ {
	case "text":
		return Green
	case "number":
		return Blue
	case "list":
		return Orange
	case "any", "":
		return Gray
	default:
		return Purple
	}
}
