package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LocalSketch/internal/board"
	"LocalSketch/internal/config"
)

// App is the desktop window around one board.
type App struct {
	cfg    config.Config
	log    *slog.Logger
	window fyne.Window
	board  *board.Board
	sketch *SketchWidget
	status *widget.Label

	undo, redo *widget.Button
}

// RunApp opens the main window and blocks until it is closed.
func RunApp(cfg config.Config, log *slog.Logger) error {
	b, err := board.New(board.Config{
		Width:       cfg.Canvas.Width,
		Height:      cfg.Canvas.Height,
		PixelRatio:  cfg.Canvas.PixelRatio,
		Input:       cfg.InputSettings(),
		Background:  cfg.CanvasBackground(),
		JPEGQuality: cfg.Export.JPEGQuality,
	}, board.WithLogger(log))
	if err != nil {
		return fmt.Errorf("create board: %w", err)
	}

	myApp := app.New()
	a := &App{
		cfg:    cfg,
		log:    log,
		window: myApp.NewWindow("LocalSketch"),
		board:  b,
		status: widget.NewLabel("Ready"),
	}
	a.window.Resize(fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)))

	a.sketch = NewSketchWidget(b, log)
	a.sketch.OnChange = a.updateStatus

	content := container.NewBorder(a.toolbar(), a.status, nil, nil, a.sketch)
	a.window.SetContent(content)
	a.bindKeys()

	log.Info("window opened", "width", cfg.Canvas.Width, "height", cfg.Canvas.Height)
	a.window.ShowAndRun()
	return nil
}

func (a *App) bindKeys() {
	c := a.window.Canvas()
	shortcut := func(key fyne.KeyName, mod fyne.KeyModifier, fn func()) {
		c.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: mod}, func(fyne.Shortcut) { fn() })
	}
	shortcut(fyne.KeyZ, fyne.KeyModifierShortcutDefault, func() { a.board.Undo() })
	shortcut(fyne.KeyZ, fyne.KeyModifierShortcutDefault|fyne.KeyModifierShift, func() { a.board.Redo() })
	shortcut(fyne.KeyY, fyne.KeyModifierShortcutDefault, func() { a.board.Redo() })
	shortcut(fyne.KeyS, fyne.KeyModifierShortcutDefault, a.saveDrawing)
	shortcut(fyne.KeyO, fyne.KeyModifierShortcutDefault, a.openDrawing)
	shortcut(fyne.KeyE, fyne.KeyModifierShortcutDefault, a.exportDrawing)
	shortcut(fyne.Key0, fyne.KeyModifierShortcutDefault, a.sketch.ResetView)
	c.SetOnTypedKey(func(e *fyne.KeyEvent) {
		if e.Name == fyne.KeyEscape {
			a.sketch.Cancel()
		}
	})
}

func (a *App) setStatus(text string) {
	a.status.SetText(text)
}

func (a *App) updateStatus() {
	s := a.board.Stats()
	setEnabled(a.undo, s.CanUndo)
	setEnabled(a.redo, s.CanRedo)
	a.setStatus(fmt.Sprintf("%d strokes, %d undone | %s | %.0f%%", s.Strokes, s.Undone, s.Tool, s.Zoom*100))
}

func setEnabled(b *widget.Button, on bool) {
	if b == nil {
		return
	}
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}
