package model

// Address identifies a stored primitive.
type Address string

func (a Address) String() string { return string(a) }

// Receipt reports where a write landed.
//
// Degraded is set when the requested intent was unavailable and the write was
// served by the memory backend instead.
type Receipt struct {
	Address   Address `json:"address"`
	Requested Intent  `json:"requested"`
	Served    Intent  `json:"served"`
	Degraded  bool    `json:"degraded,omitempty"`
}

type RegisterEntry struct {
	Content   string `json:"content" cbor:"content"`
	Timestamp int64  `json:"timestamp" cbor:"timestamp"`
}

type Pointer struct {
	Name    string `json:"name"`
	Target  string `json:"target"`
	Owner   string `json:"owner"`
	Counter uint64 `json:"counter"`
}

type ArchiveFile struct {
	Path    string `json:"path" cbor:"path"`
	Content []byte `json:"content" cbor:"content"`
}

type Archive struct {
	Files    []ArchiveFile     `json:"files" cbor:"files"`
	Metadata map[string]string `json:"metadata,omitempty" cbor:"metadata,omitempty"`
}

type GraphEntry struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// PNRRecord is one DNS-like record in a name registry entry.
type PNRRecord struct {
	Address    string `json:"address" cbor:"address"`
	RecordType string `json:"record_type" cbor:"record_type"`
	TTL        uint32 `json:"ttl" cbor:"ttl"`
}

type PNRRecords map[string]PNRRecord

// Command describes one primitive's operations for capability listings.
type Command struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Operations  []string `json:"operations"`
}

type Capabilities struct {
	Intents  []Intent  `json:"intents"`
	Commands []Command `json:"available_commands"`
}
