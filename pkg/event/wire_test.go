package event

import (
	"strings"
	"testing"

	"github.com/matzehuels/blockboard/pkg/errors"
	"github.com/matzehuels/blockboard/pkg/geom"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Event
	}{
		{"cursor move", `{"type":"cursor_move","x":10,"y":-4.5}`, CursorMove{Pos: geom.V(10, -4.5)}},
		{"mouse down", `{"type":"mouse_down","button":1,"x":3,"y":4,"shift":true}`, MouseDown{Button: Auxiliary, Pos: geom.V(3, 4), Mods: ModShift}},
		{"mouse up", `{"type":"mouse_up"}`, MouseUp{Button: Primary}},
		{"wheel", `{"type":"mouse_wheel","delta_y":-120}`, MouseWheel{DeltaY: -120}},
		{"key", `{"type":"key_down","key":"Delete"}`, KeyDown{Key: KeyDelete}},
		{"block down", `{"type":"block_mouse_down","block":7,"ctrl":true,"meta":true}`, BlockMouseDown{Block: 7, Mods: ModCtrl | ModMeta}},
		{"block over", `{"type":"block_mouse_over","block":2}`, BlockMouseOver{Block: 2}},
		{"block leave", `{"type":"block_mouse_leave"}`, BlockMouseLeave{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.in))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %#v, want %#v", got, tt.want)
			}
			if got.Kind() != tt.want.Kind() {
				t.Errorf("Kind = %s", got.Kind())
			}
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `{`},
		{"missing type", `{"x":1}`},
		{"unknown type", `{"type":"double_click"}`},
		{"unknown field", `{"type":"mouse_up","pressure":1}`},
		{"negative button", `{"type":"mouse_up","button":-1}`},
		{"key without key", `{"type":"key_down"}`},
		{"block down without block", `{"type":"block_mouse_down"}`},
		{"block over without block", `{"type":"block_mouse_over"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidEvent) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidEvent)
			}
		})
	}
}

func TestDecodeBatch(t *testing.T) {
	got, err := DecodeBatch([]byte(`[{"type":"cursor_move","x":1,"y":2},{"type":"key_down","key":"n"}]`))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	want := []Event{CursorMove{Pos: geom.V(1, 2)}, KeyDown{Key: KeyNew}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("DecodeBatch = %#v, want %#v", got, want)
	}

	_, err = DecodeBatch([]byte(`[{"type":"mouse_up"},{"type":"key_down"}]`))
	if !errors.Is(err, errors.ErrCodeInvalidEvent) || !strings.Contains(err.Error(), "event 2") {
		t.Errorf("DecodeBatch error = %v, want INVALID_EVENT naming event 2", err)
	}
}

func TestToWireRoundTrip(t *testing.T) {
	events := []Event{
		CursorMove{Pos: geom.V(1, 2)},
		MouseDown{Button: Primary, Pos: geom.V(5, 6), Mods: ModAlt},
		KeyDown{Key: KeyArrow, Mods: ModCtrl | ModShift},
		BlockMouseDown{Button: Auxiliary, Block: 9, Mods: ModMeta},
		BlockMouseLeave{},
	}
	for _, ev := range events {
		got, err := ToWire(ev).Event()
		if err != nil {
			t.Fatalf("%s: %v", ev.Kind(), err)
		}
		if got != ev {
			t.Errorf("round trip %#v -> %#v", ev, got)
		}
	}
}

func TestModifiers(t *testing.T) {
	if Modifiers(0).Add() {
		t.Error("no modifiers should not add")
	}
	if !ModCtrl.Add() || !ModMeta.Add() {
		t.Error("ctrl and meta should add")
	}
	if ModShift.Add() || ModAlt.Add() {
		t.Error("shift and alt should not add")
	}
	m := ModCtrl | ModShift
	if !m.Has(ModShift) || m.Has(ModAlt) || !m.Has(ModCtrl|ModShift) {
		t.Errorf("Has mismatch for %b", m)
	}
}

func TestButtonString(t *testing.T) {
	if Primary.String() != "primary" || Auxiliary.String() != "auxiliary" || Button(4).String() != "other" {
		t.Error("unexpected button names")
	}
}
