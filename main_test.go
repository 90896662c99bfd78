package main

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

func writeDrawing(t *testing.T, dir string) string {
	t.Helper()
	pen, err := state.NewFreehand([]geom.Point{{X: 10, Y: 10}, {X: 60, Y: 10}}, color.Black, 4)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, state.WriteDocument(&buf, state.Document{Width: 80, Height: 40, Strokes: []state.Stroke{pen}}))
	path := filepath.Join(dir, "drawing.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeDrawing(t, dir)
	out := filepath.Join(dir, "drawing.png")

	err := run([]string{"export", "-config", filepath.Join(dir, "none.toml"), "-in", in, "-out", out, "-bg", "#fff"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
	r, _, _, a := img.At(5, 30).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestExportCommandErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeDrawing(t, dir)
	cfg := filepath.Join(dir, "none.toml")

	assert.Error(t, run([]string{"export", "-config", cfg, "-in", in}))
	assert.Error(t, run([]string{"export", "-config", cfg, "-in", in, "-out", filepath.Join(dir, "x.gif")}))
	assert.Error(t, run([]string{"export", "-config", cfg, "-in", in, "-out", filepath.Join(dir, "x.png"), "-bg", "nope"}))
	assert.Error(t, run([]string{"export", "-config", cfg, "-in", filepath.Join(dir, "missing.json"), "-out", filepath.Join(dir, "x.png")}))
	assert.NoFileExists(t, filepath.Join(dir, "x.png"))
}
