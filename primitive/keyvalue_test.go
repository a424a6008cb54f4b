package primitive

import (
	"testing"

	"github.com/willief/AntTP-tutorial/model"
)

func TestKeyValues(t *testing.T) {
	k := KeyValues{Store: newKeyed(t)}

	a1, err := k.Put("photos", "cat.jpg", "bWVvdw==")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	a2, err := k.Put("photos", "cat.jpg", "cHVycg==")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if a1 == a2 {
		t.Fatalf("different content produced the same envelope address")
	}
	got, err := k.Get("photos", "cat.jpg")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "cHVycg==" {
		t.Fatalf("Get = %q, want overwrite", got)
	}

	_, err = k.Get("photos", "dog.jpg")
	wantCode(t, err, model.ErrNotFound)

	_, err = k.Put("photos", "x", "***")
	wantCode(t, err, model.ErrInvalidEncoding)

	_, err = k.Put("a:b", "x", "eA==")
	wantCode(t, err, model.ErrInvalidRequest)
}
