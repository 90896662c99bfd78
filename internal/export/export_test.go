package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalSketch/internal/geom"
	"LocalSketch/internal/state"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for x := 0; x < 20; x++ {
		img.Set(x, 5, color.RGBA{R: 255, A: 255})
	}
	return img
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"png": PNG, ".PNG": PNG, "jpg": JPEG, "jpeg": JPEG, ".jpg": JPEG, " pdf ": PDF,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, ".png", PNG.Ext())
	assert.Equal(t, ".jpg", JPEG.Ext())
	assert.Equal(t, ".pdf", PDF.Ext())
	assert.True(t, JPEG.Opaque())
	assert.False(t, PNG.Opaque())
}

func TestEncodePNG(t *testing.T) {
	data, err := Bytes(testImage(), PNG, Options{})
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
	r, _, _, a := img.At(3, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestEncodeJPEG(t *testing.T) {
	data, err := Bytes(testImage(), JPEG, Options{JPEGQuality: 250})
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
}

func TestEncodeRasterPDF(t *testing.T) {
	data, err := Bytes(testImage(), PDF, Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := Bytes(testImage(), Format("tiff"), Options{})
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, Format("tiff"), e.Format)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestCanVectorize(t *testing.T) {
	pen, err := state.NewFreehand([]geom.Point{{X: 1, Y: 1}}, color.Black, 2)
	require.NoError(t, err)
	eraser, err := state.NewEraser([]geom.Point{{X: 1, Y: 1}}, 2)
	require.NoError(t, err)

	assert.True(t, CanVectorize(nil))
	assert.True(t, CanVectorize([]state.Stroke{pen}))
	assert.False(t, CanVectorize([]state.Stroke{pen, eraser}))
}

func TestVectorPDF(t *testing.T) {
	pen, err := state.NewFreehand([]geom.Point{{X: 1, Y: 1}, {X: 40, Y: 30}}, color.Black, 2)
	require.NoError(t, err)
	dot, err := state.NewFreehand([]geom.Point{{X: 5, Y: 5}}, color.NRGBA{B: 255, A: 128}, 4)
	require.NoError(t, err)
	strokes := []state.Stroke{
		pen,
		dot,
		state.NewRectangle(geom.Pt(50, 50), -20, -10, color.Black, 1),
		state.NewTriangle(geom.Pt(10, 60), geom.Pt(40, 90), color.Black, 1),
		state.NewCircle(geom.Pt(70, 20), 10, color.Black, 1),
		state.NewCircle(geom.Pt(70, 20), 0, color.Black, 1),
		state.NewLine(geom.Pt(0, 99), geom.Pt(99, 0), color.Black, 1),
		state.NewRectangle(geom.Pt(20, 20), 0, 0, color.Black, 3),
		state.NewTriangle(geom.Pt(30, 30), geom.Pt(30, 30), color.Black, 3),
		state.NewLine(geom.Pt(40, 40), geom.Pt(40, 40), color.Black, 3),
	}

	var buf bytes.Buffer
	require.NoError(t, VectorPDF(&buf, strokes, 100, 100, color.White))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
