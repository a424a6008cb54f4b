package primitive

import (
	"testing"

	"github.com/willief/AntTP-tutorial/model"
)

func TestScratchpads_PrivateNamespacesAreIsolated(t *testing.T) {
	s := Scratchpads{Store: newKeyed(t)}

	addr, err := s.CreatePrivate("alice", "YWxpY2U=")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	if err := s.UpdatePrivate(addr, "bob", "Ym9i"); err != nil {
		t.Fatalf("UpdatePrivate(bob): %v", err)
	}

	alice, err := s.GetPrivate(addr, "alice")
	if err != nil {
		t.Fatalf("GetPrivate(alice): %v", err)
	}
	bob, err := s.GetPrivate(addr, "bob")
	if err != nil {
		t.Fatalf("GetPrivate(bob): %v", err)
	}
	if alice != "YWxpY2U=" || bob != "Ym9i" {
		t.Fatalf("alice=%q bob=%q", alice, bob)
	}

	if err := s.UpdatePrivate(addr, "alice", "YWxpY2Uy"); err != nil {
		t.Fatalf("UpdatePrivate(alice): %v", err)
	}
	bob, err = s.GetPrivate(addr, "bob")
	if err != nil || bob != "Ym9i" {
		t.Fatalf("bob changed after writing alice: %q, %v", bob, err)
	}

	_, err = s.GetPrivate(addr, "carol")
	wantCode(t, err, model.ErrNotFound)
}

func TestScratchpads_Public(t *testing.T) {
	s := Scratchpads{Store: newKeyed(t)}

	addr, err := s.CreatePublic("notes", "djE=")
	if err != nil {
		t.Fatalf("CreatePublic: %v", err)
	}
	if err := s.UpdatePublic(addr, "notes", "djI="); err != nil {
		t.Fatalf("UpdatePublic: %v", err)
	}
	got, err := s.GetPublic(addr)
	if err != nil {
		t.Fatalf("GetPublic: %v", err)
	}
	if got != "djI=" {
		t.Fatalf("GetPublic = %q, want djI=", got)
	}

	err = s.UpdatePublic(addr, "notes", "%%%")
	wantCode(t, err, model.ErrInvalidEncoding)
	if got, _ := s.GetPublic(addr); got != "djI=" {
		t.Fatalf("rejected update changed content: %q", got)
	}

	err = s.UpdatePublic(model.Address("unknown"), "notes", "djI=")
	wantCode(t, err, model.ErrNotFound)
}

func TestScratchpads_PublicAndPrivateDoNotCollide(t *testing.T) {
	s := Scratchpads{Store: newKeyed(t)}
	pub, err := s.CreatePublic("same", "eA==")
	if err != nil {
		t.Fatalf("CreatePublic: %v", err)
	}
	priv, err := s.CreatePrivate("same", "eA==")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	if pub == priv {
		t.Fatalf("public and private envelopes share an address")
	}
	_, err = s.GetPrivate(pub, "same")
	wantCode(t, err, model.ErrNotFound)
}

func TestScratchpads_UpdatePublicRejectsOtherRecords(t *testing.T) {
	store := newKeyed(t)
	s := Scratchpads{Store: store}
	chunks := Chunks{Store: store}
	registers := Registers{Store: store}

	chunk, err := chunks.PutBase64("SGVsbG8=")
	if err != nil {
		t.Fatalf("PutBase64: %v", err)
	}
	reg, err := registers.Create("r1", "01")
	if err != nil {
		t.Fatalf("register Create: %v", err)
	}
	priv, err := s.CreatePrivate("alice", "YQ==")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}

	wantCode(t, s.UpdatePublic(chunk, "notes", "djI="), model.ErrInvalidRequest)
	wantCode(t, s.UpdatePublic(reg, "notes", "djI="), model.ErrInvalidRequest)
	_, err = s.GetPublic(chunk)
	wantCode(t, err, model.ErrInvalidRequest)

	if got, err := chunks.GetBase64(chunk); err != nil || got != "SGVsbG8=" {
		t.Fatalf("chunk after rejected update = %q, %v", got, err)
	}
	if got, err := registers.Get(reg); err != nil || got != "01" {
		t.Fatalf("register after rejected update = %q, %v", got, err)
	}
	// The private envelope's address holds nothing of its own.
	wantCode(t, s.UpdatePublic(priv, "notes", "djI="), model.ErrNotFound)
}

func TestScratchpads_CreateDoesNotResetUpdates(t *testing.T) {
	s := Scratchpads{Store: newKeyed(t)}
	addr, err := s.CreatePublic("notes", "djE=")
	if err != nil {
		t.Fatalf("CreatePublic: %v", err)
	}
	if err := s.UpdatePublic(addr, "notes", "djI="); err != nil {
		t.Fatalf("UpdatePublic: %v", err)
	}
	again, err := s.CreatePublic("notes", "djE=")
	if err != nil || again != addr {
		t.Fatalf("CreatePublic again = %s, %v", again, err)
	}
	if got, _ := s.GetPublic(addr); got != "djI=" {
		t.Fatalf("GetPublic after re-create = %q, want djI=", got)
	}
}
