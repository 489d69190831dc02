package event

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockboard/pkg/errors"
)

// Script is a recorded sequence of events, typically replayed to produce
// a rendering.
//
//	[viewport]
//	width = 1280
//	height = 800
//
//	[[event]]
//	type = "cursor_move"
//	x = 100
//	y = 100
//
//	[[event]]
//	type = "key_down"
//	key = "n"
type Script struct {
	Viewport *ScriptViewport `toml:"viewport"`
	Wire     []Wire          `toml:"event"`

	// Events holds the converted events in file order.
	Events []Event `toml:"-"`
}

// ScriptViewport optionally fixes the viewport size for a replay.
type ScriptViewport struct {
	Width  float64 `toml:"width" validate:"gt=0,max=1000000"`
	Height float64 `toml:"height" validate:"gt=0,max=1000000"`
}

// ReadScript decodes and validates a TOML event script.
func ReadScript(r io.Reader) (*Script, error) {
	var s Script
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "parse script")
	}
	if s.Viewport != nil {
		if err := errors.ValidateStruct(errors.ErrCodeInvalidScript, s.Viewport); err != nil {
			return nil, err
		}
	}
	s.Events = make([]Event, 0, len(s.Wire))
	for i, w := range s.Wire {
		ev, err := w.Event()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "event %d", i+1)
		}
		s.Events = append(s.Events, ev)
	}
	return &s, nil
}
