package state

import (
	"encoding/json"
	"fmt"
	"io"

	"LocalSketch/internal/geom"
)

// DocumentVersion is written into every saved drawing.
const DocumentVersion = 1

// Document is a saved drawing: the committed strokes plus the canvas size
// they were drawn on. The redo buffer is not saved.
type Document struct {
	Width   int
	Height  int
	Strokes []Stroke
}

type documentJSON struct {
	Version int            `json:"version"`
	Width   int            `json:"width,omitempty"`
	Height  int            `json:"height,omitempty"`
	Strokes []strokeRecord `json:"strokes"`
}

// strokeRecord is the flat on-disk form of every variant.
type strokeRecord struct {
	Kind   Kind         `json:"kind"`
	ID     string       `json:"id,omitempty"`
	Path   []geom.Point `json:"path,omitempty"`
	Origin *geom.Point  `json:"origin,omitempty"`
	End    *geom.Point  `json:"end,omitempty"`
	Width  float64      `json:"width,omitempty"`
	Height float64      `json:"height,omitempty"`
	Radius float64      `json:"radius,omitempty"`
	Color  string       `json:"color,omitempty"`
	Size   float64      `json:"size"`
}

func recordOf(s Stroke) strokeRecord {
	r := strokeRecord{Kind: s.Kind(), ID: s.ID()}
	pt := func(p geom.Point) *geom.Point { return &p }
	switch v := s.(type) {
	case *Freehand:
		r.Path, r.Color, r.Size = v.path, HexColor(v.color), v.width
	case *Eraser:
		r.Path, r.Size = v.path, v.width
	case *Rectangle:
		r.Origin, r.Width, r.Height = pt(v.origin), v.width, v.height
		r.Color, r.Size = HexColor(v.color), v.strokeWidth
	case *Triangle:
		r.Origin, r.End = pt(v.origin), pt(v.end)
		r.Color, r.Size = HexColor(v.color), v.strokeWidth
	case *Circle:
		r.Origin, r.Radius = pt(v.center), v.radius
		r.Color, r.Size = HexColor(v.color), v.strokeWidth
	case *Line:
		r.Origin, r.End = pt(v.start), pt(v.end)
		r.Color, r.Size = HexColor(v.color), v.strokeWidth
	}
	return r
}

func (r strokeRecord) stroke() (Stroke, error) {
	var origin, end geom.Point
	if r.Origin != nil {
		origin = *r.Origin
	}
	if r.End != nil {
		end = *r.End
	}
	if r.Kind == KindEraser {
		e, err := NewEraser(r.Path, r.Size)
		if err != nil {
			return nil, err
		}
		e.id = orID(r.ID, e.id)
		return e, nil
	}
	if !r.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
	c, err := ParseColor(r.Color)
	if err != nil {
		return nil, err
	}
	switch r.Kind {
	case KindFreehand:
		f, err := NewFreehand(r.Path, c, r.Size)
		if err != nil {
			return nil, err
		}
		f.id = orID(r.ID, f.id)
		return f, nil
	case KindRectangle:
		v := NewRectangle(origin, r.Width, r.Height, c, r.Size)
		v.id = orID(r.ID, v.id)
		return v, nil
	case KindTriangle:
		v := NewTriangle(origin, end, c, r.Size)
		v.id = orID(r.ID, v.id)
		return v, nil
	case KindCircle:
		v := NewCircle(origin, r.Radius, c, r.Size)
		v.id = orID(r.ID, v.id)
		return v, nil
	default:
		v := NewLine(origin, end, c, r.Size)
		v.id = orID(r.ID, v.id)
		return v, nil
	}
}

func orID(saved, fresh string) string {
	if saved != "" {
		return saved
	}
	return fresh
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{
		Version: DocumentVersion,
		Width:   d.Width,
		Height:  d.Height,
		Strokes: make([]strokeRecord, 0, len(d.Strokes)),
	}
	for _, s := range d.Strokes {
		if s != nil {
			out.Strokes = append(out.Strokes, recordOf(s))
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. On error d is left untouched.
func (d *Document) UnmarshalJSON(data []byte) error {
	var in documentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Version > DocumentVersion {
		return fmt.Errorf("unsupported document version %d", in.Version)
	}
	strokes := make([]Stroke, 0, len(in.Strokes))
	for i, r := range in.Strokes {
		s, err := r.stroke()
		if err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
		strokes = append(strokes, s)
	}
	d.Width, d.Height, d.Strokes = in.Width, in.Height, strokes
	return nil
}

// WriteDocument encodes d as indented JSON.
func WriteDocument(w io.Writer, d Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode drawing: %w", err)
	}
	return nil
}

// ReadDocument decodes a drawing written by WriteDocument.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode drawing: %w", err)
	}
	return d, nil
}
