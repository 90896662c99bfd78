package ui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"LocalSketch/internal/export"
)

const drawingExt = ".json"

func (a *App) saveDrawing() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				a.log.Warn("close drawing", "err", err)
			}
		}()
		if err := a.board.Save(writer); err != nil {
			a.log.Error("save drawing", "uri", writer.URI(), "err", err)
			a.setStatus("Error saving file")
			dialog.ShowError(err, a.window)
			return
		}
		n := a.board.Stats().Strokes
		a.log.Info("drawing saved", "uri", writer.URI(), "strokes", n)
		a.setStatus(fmt.Sprintf("Saved %d strokes", n))
	}, a.window)
	fd.SetFileName(a.cfg.Export.Filename + drawingExt)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{drawingExt}))
	fd.Show()
}

func (a *App) openDrawing() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		a.setStatus("Loading file...")
		if err := a.board.Load(reader); err != nil {
			a.log.Error("load drawing", "uri", reader.URI(), "err", err)
			a.setStatus("Error parsing file - invalid format")
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus(fmt.Sprintf("Loaded %d strokes", a.board.Stats().Strokes))
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{drawingExt}))
	fd.Show()
}

// exportDrawing asks for a format, then a destination.
func (a *App) exportDrawing() {
	formats := []string{string(export.PNG), string(export.JPEG), string(export.PDF)}
	picker := widget.NewRadioGroup(formats, nil)
	picker.Horizontal = true
	picker.SetSelected(string(a.cfg.ExportFormat()))
	transparent := widget.NewCheck("Transparent background (PNG, PDF)", nil)
	transparent.SetChecked(a.cfg.ExportBackground() == nil)

	content := container.NewVBox(picker, transparent)
	dialog.ShowCustomConfirm("Export drawing", "Next", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		f, err := export.ParseFormat(picker.Selected)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		bg := a.cfg.ExportBackground()
		if transparent.Checked {
			bg = nil
		} else if bg == nil {
			bg = color.White
		}
		a.exportAs(f, bg)
	}, a.window)
}

func (a *App) exportAs(f export.Format, bg color.Color) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		data, err := a.board.Export(f, bg)
		if err == nil {
			if _, werr := writer.Write(data); werr != nil {
				err = &export.Error{Format: f, Err: werr}
			}
		}
		if err != nil {
			a.setStatus("Export failed")
			dialog.ShowError(err, a.window)
			return
		}
		a.setStatus(fmt.Sprintf("Exported %s", filepath.Base(writer.URI().Path())))
	}, a.window)
	name := a.cfg.Export.Filename
	if !strings.HasSuffix(strings.ToLower(name), f.Ext()) {
		name += f.Ext()
	}
	fd.SetFileName(name)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{f.Ext()}))
	fd.Show()
}
