package address

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/multiformats/go-multihash"
)

func TestFor_MatchesSHA256Hex(t *testing.T) {
	for _, in := range [][]byte{nil, []byte(""), []byte("Hello"), make([]byte, 4096)} {
		sum := sha256.Sum256(in)
		want := hex.EncodeToString(sum[:])
		if got := For(in).String(); got != want {
			t.Fatalf("For(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestFor_Deterministic(t *testing.T) {
	a := For([]byte("same bytes"))
	b := For([]byte("same bytes"))
	if a != b {
		t.Fatalf("addresses differ: %s vs %s", a, b)
	}
	if len(a) != Size {
		t.Fatalf("address length = %d, want %d", len(a), Size)
	}
	if !Valid(string(a)) {
		t.Fatalf("Valid(%s) = false", a)
	}
}

func TestCID_SharesDigestWithAddress(t *testing.T) {
	data := []byte("hello, storage")
	id, err := CID(data)
	if err != nil {
		t.Fatalf("CID: %v", err)
	}
	decoded, err := multihash.Decode(id.Hash())
	if err != nil {
		t.Fatalf("multihash.Decode: %v", err)
	}
	if hex.EncodeToString(decoded.Digest) != For(data).String() {
		t.Fatalf("CID digest does not match address")
	}
}

func TestForEnvelope_FieldOrderIndependent(t *testing.T) {
	a, _, err := ForEnvelope(map[string]string{"name": "n", "content": "c", "type": "pointer"})
	if err != nil {
		t.Fatalf("ForEnvelope: %v", err)
	}
	b, _, err := ForEnvelope(map[string]string{"type": "pointer", "content": "c", "name": "n"})
	if err != nil {
		t.Fatalf("ForEnvelope: %v", err)
	}
	if a != b {
		t.Fatalf("envelope address depends on map order")
	}

	c, _, err := ForEnvelope(map[string]string{"name": "n", "content": "c", "type": "graph_entry"})
	if err != nil {
		t.Fatalf("ForEnvelope: %v", err)
	}
	if a == c {
		t.Fatalf("type tag does not separate envelopes")
	}
}

func TestValid(t *testing.T) {
	cases := map[string]bool{
		"":                                  false,
		"abc":                               false,
		For([]byte("x")).String():           true,
		"Z" + For([]byte("x")).String()[1:]: false,
	}
	for in, want := range cases {
		if got := Valid(in); got != want {
			t.Fatalf("Valid(%q) = %v, want %v", in, got, want)
		}
	}
}
