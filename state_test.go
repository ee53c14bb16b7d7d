package agenthooks

import "testing"

func TestState_Float(t *testing.T) {
	state := State{
		"f64": float64(1.5),
		"f32": float32(2),
		"i":   3,
		"i64": int64(4),
		"s":   "nope",
	}

	for key, want := range map[string]float64{"f64": 1.5, "f32": 2, "i": 3, "i64": 4} {
		got, ok := state.Float(key)
		if !ok || got != want {
			t.Errorf("Float(%q) = %v, %v; want %v, true", key, got, ok, want)
		}
	}
	if _, ok := state.Float("s"); ok {
		t.Error("expected Float to reject a string")
	}
	if _, ok := state.Float("missing"); ok {
		t.Error("expected Float to miss an absent key")
	}
}

func TestState_Int(t *testing.T) {
	state := State{"i": 7, "i64": int64(8), "f": float64(9), "b": true}

	for key, want := range map[string]int{"i": 7, "i64": 8, "f": 9} {
		got, ok := state.Int(key)
		if !ok || got != want {
			t.Errorf("Int(%q) = %v, %v; want %v, true", key, got, ok, want)
		}
	}
	if _, ok := state.Int("b"); ok {
		t.Error("expected Int to reject a bool")
	}
}

func TestState_String(t *testing.T) {
	state := State{"s": "value", "i": 1}

	if got, ok := state.String("s"); !ok || got != "value" {
		t.Errorf("String(s) = %v, %v", got, ok)
	}
	if _, ok := state.String("i"); ok {
		t.Error("expected String to reject an int")
	}
}
