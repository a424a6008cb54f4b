package primitive

import "github.com/willief/AntTP-tutorial/model"

// Type tags carried inside envelopes. Two primitives built from the same
// name and content never share an address because the tags differ.
const (
	typeRegister       = "register"
	typePointer        = "pointer"
	typePublicScratch  = "public"
	typePrivateScratch = "private"
	typeGraphEntry     = "graph_entry"
	typePNR            = "pnr"
	typeKeyValue       = "kv"
)

type registerRecord struct {
	Name      string `cbor:"name"`
	Content   string `cbor:"content"`
	Type      string `cbor:"type"`
	Timestamp int64  `cbor:"timestamp"`
}

// pointerEnvelope is what a pointer address is computed from.
type pointerEnvelope struct {
	Name   string `cbor:"name"`
	Target string `cbor:"target"`
	Type   string `cbor:"type"`
}

// pointerBody is the signed part of a stored pointer.
type pointerBody struct {
	Name    string `cbor:"name"`
	Target  string `cbor:"target"`
	Type    string `cbor:"type"`
	Owner   string `cbor:"owner"`
	Counter uint64 `cbor:"counter"`
}

type pointerRecord struct {
	Body      pointerBody `cbor:"body"`
	SignedBy  string      `cbor:"signed_by,omitempty"`
	HashAlg   string      `cbor:"hash_alg,omitempty"`
	Signature []byte      `cbor:"signature,omitempty"`
}

type scratchpadRecord struct {
	Name    string `cbor:"name"`
	Content []byte `cbor:"content"`
	Type    string `cbor:"type"`
}

type graphRecord struct {
	Name    string `cbor:"name"`
	Content string `cbor:"content"`
	Type    string `cbor:"type"`
}

type pnrRecord struct {
	Name    string           `cbor:"name"`
	Records model.PNRRecords `cbor:"records"`
	Type    string           `cbor:"type"`
}

type keyValueRecord struct {
	Bucket  string `cbor:"bucket"`
	Object  string `cbor:"object"`
	Content []byte `cbor:"content"`
	Type    string `cbor:"type"`
}
