package charts

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

type colorStop struct {
	at    float64
	color drawing.Color
}

// Red-blue diverging scale, blue for -1 and red for +1.
var diverging = []colorStop{
	{-1, drawing.ColorFromHex("2166ac")},
	{-0.5, drawing.ColorFromHex("92c5de")},
	{0, drawing.ColorFromHex("f7f7f7")},
	{0.5, drawing.ColorFromHex("f4a582")},
	{1, drawing.ColorFromHex("b2182b")},
}

var missingColor = drawing.ColorFromHex("d9d9d9")

// DivergingColor maps a correlation in [-1, 1] to a CSS hex color. NaN maps
// to a neutral gray.
func DivergingColor(r float64) string {
	if math.IsNaN(r) {
		return hex(missingColor)
	}
	r = math.Max(-1, math.Min(1, r))
	for i := 1; i < len(diverging); i++ {
		lo, hi := diverging[i-1], diverging[i]
		if r <= hi.at {
			return hex(lerp(lo.color, hi.color, (r-lo.at)/(hi.at-lo.at)))
		}
	}
	return hex(diverging[len(diverging)-1].color)
}

// TextColor returns a label color readable on DivergingColor(r).
func TextColor(r float64) string {
	if !math.IsNaN(r) && math.Abs(r) > 0.6 {
		return "#ffffff"
	}
	return "#222222"
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
