package ui

import (
	"log/slog"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalSketch/internal/board"
	"LocalSketch/internal/state"
)

func newSketch(t *testing.T) (*SketchWidget, *board.Board) {
	t.Helper()
	test.NewTempApp(t)
	b, err := board.New(board.Config{Width: 100, Height: 60, PixelRatio: 1})
	require.NoError(t, err)
	return NewSketchWidget(b, slog.New(slog.DiscardHandler)), b
}

func mouse(x, y float32, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: button}
}

func dragTo(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestSketchDrawsStroke(t *testing.T) {
	s, b := newSketch(t)
	s.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	s.Dragged(dragTo(40, 10))
	s.MouseUp(mouse(40, 10, desktop.MouseButtonPrimary))
	s.DragEnd()

	snap := b.Snapshot()
	require.Len(t, snap, 1)
	assert.Len(t, snap[0].(*state.Freehand).Path(), 2)
}

func TestDragEndWithoutMouseUpFinishesStroke(t *testing.T) {
	s, b := newSketch(t)
	s.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	s.Dragged(dragTo(40, 10))
	s.DragEnd()
	require.Len(t, b.Snapshot(), 1)

	// a later drag must not extend the finished stroke
	s.Dragged(dragTo(80, 50))
	s.MouseUp(mouse(80, 50, desktop.MouseButtonPrimary))
	snap := b.Snapshot()
	require.Len(t, snap, 1)
	assert.Len(t, snap[0].(*state.Freehand).Path(), 2)
}

func TestSecondaryDragPans(t *testing.T) {
	s, b := newSketch(t)
	s.MouseDown(mouse(10, 10, desktop.MouseButtonSecondary))
	s.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 15)}, Dragged: fyne.NewDelta(10, 5)})
	s.MouseUp(mouse(20, 15, desktop.MouseButtonSecondary))

	v := b.View()
	assert.Equal(t, 10.0, v.OffsetX)
	assert.Equal(t, 5.0, v.OffsetY)
	assert.Empty(t, b.Snapshot())
}

func TestEscapeCancelsStroke(t *testing.T) {
	s, b := newSketch(t)
	s.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	s.Dragged(dragTo(40, 10))
	s.Cancel()
	s.MouseUp(mouse(40, 10, desktop.MouseButtonPrimary))
	assert.Empty(t, b.Snapshot())
}
