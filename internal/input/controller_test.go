package input

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

type fakeTarget struct {
	segments  []state.Stroke
	renders   []state.Stroke // live stroke per Render call, nil entries kept
	committed []state.Stroke
}

func (f *fakeTarget) PaintSegment(s state.Stroke) { f.segments = append(f.segments, s) }
func (f *fakeTarget) Render(live state.Stroke) { f.renders = append(f.renders, live) }
func (f *fakeTarget) Commit(s state.Stroke) { f.committed = append(f.committed, s) }

var red = color.NRGBA{R: 0xff, A: 0xff}

func newController(t *testing.T) (*Controller, *fakeTarget) {
	t.Helper()
	ft := &fakeTarget{}
	c, err := NewController(ft, DefaultSettings(), nil)
	require.NoError(t, err)
	return c, ft
}

func TestFreehandGesture(t *testing.T) {
	c, ft := newController(t)
	c.SetColor(red)
	require.NoError(t, c.SetWidth(4))

	c.Handle(Pointer(PhaseStart, 0, 0))
	assert.True(t, c.Active())
	c.Handle(Pointer(PhaseMove, 5, 5))
	c.Handle(Pointer(PhaseMove, 10, 0))
	c.Handle(Pointer(PhaseEnd, 10, 0))

	assert.False(t, c.Active())
	require.Len(t, ft.segments, 2)
	assert.Equal(t, []geom.Point{geom.Pt(5, 5), geom.Pt(10, 0)}, ft.segments[1].(*state.Freehand).Path())

	require.Len(t, ft.committed, 1)
	f := ft.committed[0].(*state.Freehand)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(5, 5), geom.Pt(10, 0)}, f.Path())
	assert.Equal(t, red, f.Color())
	assert.Equal(t, 4.0, f.Width())
	assert.Nil(t, c.Live())
}

func TestEndPositionIsKept(t *testing.T) {
	c, ft := newController(t)
	c.Handle(Pointer(PhaseStart, 0, 0))
	c.Handle(Pointer(PhaseEnd, 3, 4))

	assert.Empty(t, ft.segments)
	require.Len(t, ft.committed, 1)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(3, 4)}, ft.committed[0].(*state.Freehand).Path())
}

func TestParametersFrozenAtGestureStart(t *testing.T) {
	c, ft := newController(t)
	c.SetColor(red)
	c.Handle(Pointer(PhaseStart, 0, 0))
	c.SetColor(color.NRGBA{B: 0xff, A: 0xff})
	require.NoError(t, c.SetWidth(20))
	require.NoError(t, c.SetTool(state.KindCircle))
	c.Handle(Pointer(PhaseMove, 5, 5))
	c.Handle(Pointer(PhaseEnd, 5, 5))

	f := ft.committed[0].(*state.Freehand)
	assert.Equal(t, red, f.Color())
	assert.Equal(t, 3.0, f.Width())
}

func TestShapeGesturePreviewsAndCommits(t *testing.T) {
	c, ft := newController(t)
	require.NoError(t, c.SetTool(state.KindRectangle))

	c.Handle(Pointer(PhaseStart, 10, 10))
	c.Handle(Pointer(PhaseMove, 30, 20))
	c.Handle(Pointer(PhaseMove, 60, 40))
	require.Len(t, ft.renders, 2)
	preview := ft.renders[1].(*state.Rectangle)
	assert.Equal(t, 50.0, preview.Width())
	assert.Equal(t, c.Live().(*state.Rectangle).Height(), preview.Height())

	c.Handle(Pointer(PhaseEnd, 60, 40))
	require.Len(t, ft.committed, 1)
	r := ft.committed[0].(*state.Rectangle)
	assert.Equal(t, geom.Pt(10, 10), r.Origin())
	assert.Equal(t, 50.0, r.Width())
	assert.Equal(t, 30.0, r.Height())
	assert.Empty(t, ft.segments)
}

func TestCircleFromDrag(t *testing.T) {
	c, ft := newController(t)
	require.NoError(t, c.SetTool(state.KindCircle))
	c.Handle(Pointer(PhaseStart, 0, 0))
	c.Handle(Pointer(PhaseMove, 3, 4))
	c.Handle(Pointer(PhaseEnd, 3, 4))
	assert.Equal(t, 5.0, ft.committed[0].(*state.Circle).Radius())
}

func TestCancelDiscardsGesture(t *testing.T) {
	c, ft := newController(t)
	require.NoError(t, c.SetTool(state.KindLine))
	c.Handle(Pointer(PhaseStart, 0, 0))
	c.Handle(Pointer(PhaseMove, 8, 8))
	c.Handle(Event{Phase: PhaseCancel})

	assert.False(t, c.Active())
	assert.Empty(t, ft.committed)
	require.NotEmpty(t, ft.renders)
	assert.Nil(t, ft.renders[len(ft.renders)-1])

	// Moves after the cancel belong to no gesture.
	c.Handle(Pointer(PhaseMove, 9, 9))
	c.Handle(Pointer(PhaseEnd, 9, 9))
	assert.Empty(t, ft.committed)
}

func TestMoveWithoutStartIsIgnored(t *testing.T) {
	c, ft := newController(t)
	c.Handle(Pointer(PhaseMove, 1, 1))
	c.Handle(Pointer(PhaseEnd, 1, 1))
	assert.Empty(t, ft.segments)
	assert.Empty(t, ft.renders)
	assert.Empty(t, ft.committed)
}

func TestEraserSegmentsAreErasers(t *testing.T) {
	c, ft := newController(t)
	require.NoError(t, c.SetTool(state.KindEraser))
	c.Handle(Pointer(PhaseStart, 0, 0))
	c.Handle(Pointer(PhaseMove, 2, 0))
	c.Handle(Pointer(PhaseEnd, 2, 0))

	require.Len(t, ft.segments, 1)
	assert.Equal(t, state.KindEraser, ft.segments[0].Kind())
	assert.Equal(t, state.KindEraser, ft.committed[0].Kind())
}

func TestPinchZoom(t *testing.T) {
	c, ft := newController(t)
	c.Handle(Touch(PhaseStart, geom.Pt(100, 100), geom.Pt(200, 100)))
	assert.False(t, c.Active())

	c.Handle(Touch(PhaseMove, geom.Pt(75, 100), geom.Pt(225, 100)))
	assert.InDelta(t, 1.5, c.View().Scale, 1e-9)
	assert.Empty(t, ft.committed)
	require.NotEmpty(t, ft.renders)

	// The midpoint stays over the same logical point.
	mid := c.View().ToLogical(150, 100)
	assert.InDelta(t, 150, mid.X, 1e-9)
	assert.InDelta(t, 100, mid.Y, 1e-9)

	c.Handle(Event{Phase: PhaseEnd})
	c.Handle(Pointer(PhaseStart, 150, 100))
	assert.True(t, c.Active())
}

func TestPinchZoomIsClamped(t *testing.T) {
	c, _ := newController(t)
	c.Handle(Touch(PhaseStart, geom.Pt(0, 0), geom.Pt(100, 0)))
	c.Handle(Touch(PhaseMove, geom.Pt(0, 0), geom.Pt(150, 0)))
	c.Handle(Touch(PhaseMove, geom.Pt(0, 0), geom.Pt(1500, 0)))
	assert.Equal(t, 5.0, c.View().Scale)

	c.Handle(Touch(PhaseMove, geom.Pt(0, 0), geom.Pt(1, 0)))
	assert.Equal(t, 0.5, c.View().Scale)
}

func TestSecondFingerDuringStrokeIsIgnored(t *testing.T) {
	c, ft := newController(t)
	c.Handle(Pointer(PhaseStart, 0, 0))
	c.Handle(Touch(PhaseStart, geom.Pt(0, 0), geom.Pt(50, 50)))
	c.Handle(Touch(PhaseMove, geom.Pt(4, 0), geom.Pt(80, 80)))
	c.Handle(Pointer(PhaseEnd, 4, 0))

	assert.Equal(t, 1.0, c.View().Scale)
	require.Len(t, ft.committed, 1)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(4, 0)}, ft.committed[0].(*state.Freehand).Path())
}

func TestZoomedInputMapsToLogical(t *testing.T) {
	c, ft := newController(t)
	c.ZoomBy(2, geom.Pt(0, 0))
	c.Pan(10, 0)
	c.Handle(Pointer(PhaseStart, 30, 40))
	c.Handle(Pointer(PhaseEnd, 30, 40))
	assert.Equal(t, []geom.Point{geom.Pt(10, 20)}, ft.committed[0].(*state.Freehand).Path())
}

func TestZoomStepsAndReset(t *testing.T) {
	c, _ := newController(t)
	c.SetPixelRatio(2)
	c.ZoomIn(geom.Pt(0, 0))
	assert.InDelta(t, 1.2, c.View().Scale, 1e-9)
	c.ZoomOut(geom.Pt(0, 0))
	assert.InDelta(t, 1.0, c.View().Scale, 1e-9)

	c.Pan(5, 5)
	c.ResetView()
	assert.Equal(t, geom.Transform{Scale: 1, PixelRatio: 2}, c.View())
}

func TestSettersValidate(t *testing.T) {
	c, _ := newController(t)
	assert.ErrorIs(t, c.SetWidth(0), ErrInvalidWidth)
	assert.ErrorIs(t, c.SetWidth(-1), ErrInvalidWidth)
	assert.Equal(t, 3.0, c.Width())
	assert.ErrorIs(t, c.SetTool("spray"), state.ErrUnknownKind)
	assert.Equal(t, state.KindFreehand, c.Tool())

	_, err := NewController(&fakeTarget{}, Settings{MinZoom: 2, MaxZoom: 1}, nil)
	assert.Error(t, err)
}
