package state

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalSketch/internal/geom"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func TestNewFreehandRejectsEmptyPath(t *testing.T) {
	_, err := NewFreehand(nil, red, 3)
	assert.ErrorIs(t, err, ErrEmptyPath)
	_, err = NewEraser([]geom.Point{}, 3)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestFreehandCopiesPath(t *testing.T) {
	path := []geom.Point{geom.Pt(0, 0), geom.Pt(5, 5)}
	f, err := NewFreehand(path, red, 3)
	require.NoError(t, err)

	path[0] = geom.Pt(99, 99)
	assert.Equal(t, geom.Pt(0, 0), f.Path()[0])

	got := f.Path()
	got[1] = geom.Pt(42, 42)
	assert.Equal(t, geom.Pt(5, 5), f.Path()[1])
}

func TestNegativeGeometryIsClamped(t *testing.T) {
	c := NewCircle(geom.Pt(10, 10), -4, red, -2)
	assert.Equal(t, 0.0, c.Radius())
	assert.Equal(t, 0.0, c.StrokeWidth())

	e, err := NewEraser([]geom.Point{geom.Pt(1, 1)}, -8)
	require.NoError(t, err)
	assert.Equal(t, 0.0, e.Width())
}

func TestRectangleKeepsDragDirection(t *testing.T) {
	r := NewRectangle(geom.Pt(60, 40), -50, -30, red, 2)
	assert.Equal(t, -50.0, r.Width())
	assert.Equal(t, -30.0, r.Height())
	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 50, Height: 30}, r.Rect())
	assert.Equal(t, geom.Rect{X: 9, Y: 9, Width: 52, Height: 32}, r.Bounds())
}

func TestTriangleVertices(t *testing.T) {
	tri := NewTriangle(geom.Pt(0, 0), geom.Pt(10, 20), red, 1)
	v := tri.Vertices()
	assert.Equal(t, geom.Pt(5, 0), v[0])
	assert.Equal(t, geom.Pt(0, 20), v[1])
	assert.Equal(t, geom.Pt(10, 20), v[2])
}

func TestShapeFromDrag(t *testing.T) {
	anchor, cur := geom.Pt(10, 10), geom.Pt(13, 14)

	s, err := ShapeFromDrag(KindCircle, anchor, cur, red, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, s.(*Circle).Radius())

	s, err = ShapeFromDrag(KindRectangle, anchor, cur, red, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.(*Rectangle).Width())
	assert.Equal(t, 4.0, s.(*Rectangle).Height())

	s, err = ShapeFromDrag(KindLine, anchor, cur, red, 2)
	require.NoError(t, err)
	assert.Equal(t, cur, s.(*Line).End())

	_, err = ShapeFromDrag(KindFreehand, anchor, cur, red, 2)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestStrokesGetDistinctIDs(t *testing.T) {
	a := NewLine(geom.Pt(0, 0), geom.Pt(1, 1), red, 1)
	b := NewLine(geom.Pt(0, 0), geom.Pt(1, 1), red, 1)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Circle ")
	require.NoError(t, err)
	assert.Equal(t, KindCircle, k)
	assert.True(t, KindEraser.IsPath())
	assert.False(t, KindLine.IsPath())

	_, err = ParseKind("spray")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, red, c)

	c, err = ParseColor("0f0")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, c)

	c, err = ParseColor("#0000ff80")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{B: 0xff, A: 0x80}, c)
	assert.Equal(t, "#0000ff80", HexColor(c))
	assert.Equal(t, "#ff0000", HexColor(red))

	_, err = ParseColor("#zzzzzz")
	assert.ErrorIs(t, err, ErrBadColor)
	_, err = ParseColor("#12345")
	assert.ErrorIs(t, err, ErrBadColor)
}
