package event

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/matzehuels/blockboard/pkg/errors"
	"github.com/matzehuels/blockboard/pkg/geom"
	"github.com/matzehuels/blockboard/pkg/graph"
)

// Wire is the flat, tagged form of an event used by JSON requests and TOML
// scripts. Only the fields relevant to Type are read.
type Wire struct {
	Type   string  `json:"type" toml:"type" validate:"required,oneof=cursor_move mouse_down mouse_up mouse_wheel key_down block_mouse_down block_mouse_over block_mouse_leave"`
	X      float64 `json:"x,omitempty" toml:"x"`
	Y      float64 `json:"y,omitempty" toml:"y"`
	Button int     `json:"button,omitempty" toml:"button" validate:"min=0"`
	DeltaY float64 `json:"delta_y,omitempty" toml:"delta_y"`
	Key    string  `json:"key,omitempty" toml:"key" validate:"required_if=Type key_down"`
	Block  uint64  `json:"block,omitempty" toml:"block"`
	Ctrl   bool    `json:"ctrl,omitempty" toml:"ctrl"`
	Shift  bool    `json:"shift,omitempty" toml:"shift"`
	Alt    bool    `json:"alt,omitempty" toml:"alt"`
	Meta   bool    `json:"meta,omitempty" toml:"meta"`
}

// Decode parses a single JSON-encoded event.
func Decode(data []byte) (Event, error) {
	var w Wire
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "decode event")
	}
	return w.Event()
}

// DecodeBatch parses a JSON array of events. It fails on the first
// invalid element and names its position.
func DecodeBatch(data []byte) ([]Event, error) {
	var ws []Wire
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ws); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "decode events")
	}
	events := make([]Event, 0, len(ws))
	for i, w := range ws {
		ev, err := w.Event()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "event %d", i+1)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Event validates w and converts it to its typed variant.
func (w Wire) Event() (Event, error) {
	if err := errors.ValidateStruct(errors.ErrCodeInvalidEvent, w); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"X", w.X}, {"Y", w.Y}, {"DeltaY", w.DeltaY}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return nil, errors.New(errors.ErrCodeInvalidEvent, "%s: must be a finite number", f.name)
		}
	}
	pos := geom.V(w.X, w.Y)
	mods := w.mods()
	switch w.Type {
	case KindCursorMove:
		return CursorMove{Pos: pos}, nil
	case KindMouseDown:
		return MouseDown{Button: Button(w.Button), Pos: pos, Mods: mods}, nil
	case KindMouseUp:
		return MouseUp{Button: Button(w.Button)}, nil
	case KindMouseWheel:
		return MouseWheel{DeltaY: w.DeltaY}, nil
	case KindKeyDown:
		return KeyDown{Key: w.Key, Mods: mods}, nil
	case KindBlockMouseDown:
		if w.Block == 0 {
			return nil, errors.New(errors.ErrCodeInvalidEvent, "Block: field is required")
		}
		return BlockMouseDown{Button: Button(w.Button), Block: graph.VertexID(w.Block), Mods: mods}, nil
	case KindBlockMouseOver:
		if w.Block == 0 {
			return nil, errors.New(errors.ErrCodeInvalidEvent, "Block: field is required")
		}
		return BlockMouseOver{Block: graph.VertexID(w.Block)}, nil
	case KindBlockMouseLeave:
		return BlockMouseLeave{}, nil
	}
	// unreachable after validation
	return nil, errors.New(errors.ErrCodeInvalidEvent, "unknown event type %q", w.Type)
}

// ToWire converts ev to its wire form.
func ToWire(ev Event) Wire {
	w := Wire{Type: ev.Kind()}
	switch e := ev.(type) {
	case CursorMove:
		w.X, w.Y = e.Pos.X, e.Pos.Y
	case MouseDown:
		w.Button = int(e.Button)
		w.X, w.Y = e.Pos.X, e.Pos.Y
		w.setMods(e.Mods)
	case MouseUp:
		w.Button = int(e.Button)
	case MouseWheel:
		w.DeltaY = e.DeltaY
	case KeyDown:
		w.Key = e.Key
		w.setMods(e.Mods)
	case BlockMouseDown:
		w.Button = int(e.Button)
		w.Block = uint64(e.Block)
		w.setMods(e.Mods)
	case BlockMouseOver:
		w.Block = uint64(e.Block)
	}
	return w
}

func (w Wire) mods() Modifiers {
	var m Modifiers
	if w.Ctrl {
		m |= ModCtrl
	}
	if w.Shift {
		m |= ModShift
	}
	if w.Alt {
		m |= ModAlt
	}
	if w.Meta {
		m |= ModMeta
	}
	return m
}

func (w *Wire) setMods(m Modifiers) {
	w.Ctrl = m.Has(ModCtrl)
	w.Shift = m.Has(ModShift)
	w.Alt = m.Has(ModAlt)
	w.Meta = m.Has(ModMeta)
}
