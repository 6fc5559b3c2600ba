package render

import (
	"fmt"
	"strings"
)

// sparklinePadding keeps the polyline clear of the viewBox edges so the
// stroke is not clipped at local extremes.
const sparklinePadding = 4.0

// SparklineView is the SVG geometry for a mini price chart. Points is a
// space-separated "x,y" list suitable for a polyline attribute; EndX and
// EndY locate the terminal dot.
type SparklineView struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Points string  `json:"points"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`
}

// NewSparklineView maps a price series onto polyline coordinates scaled to
// the series' own min and max. Fewer than two points cannot form a line, so
// nil is returned and the chart slot stays empty.
func NewSparklineView(data []float64, width, height float64) *SparklineView {
	if len(data) < 2 {
		return nil
	}

	min, max := data[0], data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	// A flat series still draws: center the line vertically instead of
	// dividing by zero.
	span := max - min
	innerH := height - 2*sparklinePadding
	step := width / float64(len(data)-1)

	var b strings.Builder
	var lastX, lastY float64
	for i, v := range data {
		x := float64(i) * step
		y := height / 2
		if span > 0 {
			y = height - sparklinePadding - (v-min)/span*innerH
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
		lastX, lastY = x, y
	}

	return &SparklineView{
		Width:  width,
		Height: height,
		Points: b.String(),
		EndX:   lastX,
		EndY:   lastY,
	}
}
