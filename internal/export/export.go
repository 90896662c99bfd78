// Package export encodes a rendered drawing into an image or document file.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
)

// Format is an output file format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	PDF  Format = "pdf"
)

// ErrUnknownFormat is returned for formats other than png, jpeg and pdf.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts a format name or a file extension such as ".jpg".
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension for f, with the leading dot.
func (f Format) Ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Opaque reports whether f cannot store transparency, so callers must
// supply a background.
func (f Format) Opaque() bool {
	return f == JPEG
}

// Options tune the encoders.
type Options struct {
	// JPEGQuality is 1..100; zero means jpeg.DefaultQuality.
	JPEGQuality int
}

// Error reports a failed export. The drawing itself is never modified by an
// export, so the operation can simply be retried.
type Error struct {
	Format Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %v (drawing unchanged, safe to retry)", e.Format, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Encode writes img to w in raster format f. PDF output embeds the image
// on a page of the same size.
func Encode(w io.Writer, img image.Image, f Format, o Options) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		q := o.JPEGQuality
		if q <= 0 || q > 100 {
			q = jpeg.DefaultQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case PDF:
		err = rasterPDF(w, img)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return &Error{Format: f, Err: err}
	}
	return nil
}

// Bytes is Encode into a fresh buffer.
func Bytes(img image.Image, f Format, o Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
