package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSparklineView_ScalesToLocalRange(t *testing.T) {
	view := NewSparklineView([]float64{100, 110, 105, 120}, 100, 40)

	require.NotNil(t, view)
	points := strings.Split(view.Points, " ")
	require.Len(t, points, 4)

	// Local minimum sits at the bottom padding line, maximum at the top.
	assert.Equal(t, "0.0,36.0", points[0])
	assert.Equal(t, "100.0,4.0", points[3])
	assert.Equal(t, 100.0, view.EndX)
	assert.Equal(t, 4.0, view.EndY)
}

func TestNewSparklineView_EvenHorizontalSpacing(t *testing.T) {
	view := NewSparklineView([]float64{1, 2, 3, 4, 5}, 100, 40)

	require.NotNil(t, view)
	points := strings.Split(view.Points, " ")
	assert.Equal(t, "25.0", strings.Split(points[1], ",")[0])
	assert.Equal(t, "50.0", strings.Split(points[2], ",")[0])
}

func TestNewSparklineView_FlatSeriesCentersLine(t *testing.T) {
	view := NewSparklineView([]float64{50, 50, 50}, 100, 40)

	require.NotNil(t, view)
	for _, point := range strings.Split(view.Points, " ") {
		assert.Equal(t, "20.0", strings.Split(point, ",")[1])
	}
}

func TestNewSparklineView_TooFewPoints(t *testing.T) {
	assert.Nil(t, NewSparklineView(nil, 100, 40))
	assert.Nil(t, NewSparklineView([]float64{42}, 100, 40))
}
