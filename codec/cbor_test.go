package codec

import (
	"bytes"
	"testing"
)

func TestMarshal_MapOrderIsDeterministic(t *testing.T) {
	a := map[string]string{"b": "2", "a": "1", "c": "3"}
	b := map[string]string{"c": "3", "a": "1", "b": "2"}

	ea, err := Marshal(a)
	if err != nil {
		t.Fatalf("Marshal(a): %v", err)
	}
	for i := 0; i < 20; i++ {
		eb, err := Marshal(b)
		if err != nil {
			t.Fatalf("Marshal(b): %v", err)
		}
		if !bytes.Equal(ea, eb) {
			t.Fatalf("encoding differs between equal maps")
		}
	}
}

func TestRoundTrip_Struct(t *testing.T) {
	type envelope struct {
		Name    string `cbor:"name"`
		Content string `cbor:"content"`
		Type    string `cbor:"type"`
	}
	in := envelope{Name: "r1", Content: "48656c6c6f", Type: "register"}
	b, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out envelope
	if err := Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}

	var generic any
	if err := Unmarshal(b, &generic); err != nil {
		t.Fatalf("Unmarshal(any): %v", err)
	}
	if _, ok := generic.(map[string]any); !ok {
		t.Fatalf("untyped decode produced %T, want map[string]any", generic)
	}
}

func TestUnmarshal_RejectsGarbage(t *testing.T) {
	var out map[string]any
	if err := Unmarshal([]byte{0xff, 0x00, 0x13}, &out); err == nil {
		t.Fatalf("expected error decoding garbage")
	}
}
