package registry

// Usage restricts which programs should accept a given backend.
type Usage uint8

const (
	// UsageEngine marks backends the storage engine may select for an intent.
	UsageEngine Usage = 1 << iota
	// UsageDaemon marks backends the network storage daemon may serve.
	UsageDaemon
)

func (u Usage) allows(want Usage) bool { return u&want != 0 }
