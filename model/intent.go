package model

import "strings"

// Intent is the storage backend a caller asks an operation to use.
type Intent uint8

const (
	IntentMemory Intent = iota
	IntentDisk
	IntentNetwork
)

// Intents lists every intent in a fixed order.
var Intents = []Intent{IntentMemory, IntentDisk, IntentNetwork}

func (i Intent) String() string {
	switch i {
	case IntentMemory:
		return "memory"
	case IntentDisk:
		return "disk"
	case IntentNetwork:
		return "network"
	default:
		return "unknown"
	}
}

func (i Intent) Valid() bool { return i <= IntentNetwork }

// ParseIntent parses an intent name. Matching is case-insensitive and the
// empty string selects memory.
func ParseIntent(s string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "memory":
		return IntentMemory, nil
	case "disk":
		return IntentDisk, nil
	case "network":
		return IntentNetwork, nil
	default:
		return IntentMemory, Errorf(ErrCodeUnsupportedBackend, "invalid store type %q", s)
	}
}

func (i Intent) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, Errorf(ErrCodeUnsupportedBackend, "invalid intent %d", uint8(i))
	}
	return []byte(i.String()), nil
}

func (i *Intent) UnmarshalText(b []byte) error {
	v, err := ParseIntent(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
