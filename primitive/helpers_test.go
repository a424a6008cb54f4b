package primitive

import (
	"errors"
	"testing"
	"time"

	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
	"github.com/willief/AntTP-tutorial/storage/memory"
)

func newKeyed(t *testing.T) *storage.Keyed {
	t.Helper()
	return storage.NewKeyed("memory", memory.New())
}

// fixedClock returns increasing timestamps one second apart.
func fixedClock() func() time.Time {
	ts := time.Unix(1700000000, 0)
	return func() time.Time {
		ts = ts.Add(time.Second)
		return ts
	}
}

func wantCode(t *testing.T, err error, target *model.CodedError) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("err = %v, want %s", err, target.Code)
	}
}
