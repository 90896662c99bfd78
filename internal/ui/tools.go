package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalSketch/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// toolLabels orders the mode picker.
var toolLabels = []struct {
	kind  state.Kind
	label string
}{
	{state.KindFreehand, "Pen"},
	{state.KindEraser, "Eraser"},
	{state.KindLine, "Line"},
	{state.KindRectangle, "Rectangle"},
	{state.KindTriangle, "Triangle"},
	{state.KindCircle, "Circle"},
}

func (a *App) toolPicker() *widget.Select {
	labels := make([]string, len(toolLabels))
	for i, t := range toolLabels {
		labels[i] = t.label
	}
	sel := widget.NewSelect(labels, func(label string) {
		for _, t := range toolLabels {
			if t.label != label {
				continue
			}
			if err := a.board.SetTool(t.kind); err != nil {
				a.setStatus(fmt.Sprintf("Tool: %v", err))
				return
			}
			a.updateStatus()
		}
	})
	current := a.board.Stats().Tool
	for _, t := range toolLabels {
		if t.kind == current {
			sel.SetSelected(t.label)
		}
	}
	return sel
}

// --- The Main Toolbar ---
func (a *App) toolbar() fyne.CanvasObject {
	// Undo and redo are buttons so updateStatus can disable them.
	a.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() {
		if !a.board.Undo() {
			a.setStatus("Nothing to undo")
		}
	})
	a.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() {
		if !a.board.Redo() {
			a.setStatus("Nothing to redo")
		}
	})
	a.undo.Importance = widget.LowImportance
	a.redo.Importance = widget.LowImportance
	a.undo.Disable()
	a.redo.Disable()

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Clear drawing", "Remove every stroke? This can't be undone.", func(ok bool) {
				if ok {
					a.board.Clear()
				}
			}, a.window)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomInIcon(), a.sketch.ZoomIn),
		widget.NewToolbarAction(theme.ZoomOutIcon(), a.sketch.ZoomOut),
		widget.NewToolbarAction(theme.ZoomFitIcon(), a.sketch.ResetView),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.openDrawing),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.saveDrawing),
		widget.NewToolbarAction(theme.DownloadIcon(), a.exportDrawing),
	)

	// --- Color Palette ---
	onColorTapped := func(c color.Color) {
		a.board.SetColor(c)
	}
	colorBox := container.NewHBox()
	for _, c := range a.cfg.Palette() {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	// --- Stroke Width Slider ---
	strokeSlider := widget.NewSlider(1.0, 50.0)
	strokeSlider.SetValue(a.cfg.Pen.Width)
	strokeSlider.OnChanged = func(val float64) {
		if err := a.board.SetWidth(val); err != nil {
			a.setStatus(fmt.Sprintf("Size: %v", err))
		}
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		a.toolPicker(),
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewSeparator(),
		a.undo,
		a.redo,
		tb,
		layout.NewSpacer(),
	)
}
