package primitive

import (
	"github.com/willief/AntTP-tutorial/address"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
)

// Scratchpads stores mutable base64 blobs.
//
// A public scratchpad lives at its address. A private scratchpad lives at
// <addr>:<name>, giving each name its own namespace under one address.
// "Private" is a naming convention only: nothing is encrypted and anyone who
// knows the address and name can read it.
type Scratchpads struct {
	Store *storage.Keyed
}

func privateKey(addr model.Address, name string) string {
	return addr.String() + ":" + name
}

func (s Scratchpads) CreatePublic(name, content string) (model.Address, error) {
	b, err := decodeBase64("scratchpad content", content)
	if err != nil {
		return "", err
	}
	rec := scratchpadRecord{Name: name, Content: b, Type: typePublicScratch}
	addr, envelope, err := address.ForEnvelope(rec)
	if err != nil {
		return "", err
	}
	if err := s.createOnce(addr.String(), envelope); err != nil {
		return "", err
	}
	return addr, nil
}

// createOnce stores envelope unless key already exists, so creating again
// never resets content written by an update.
func (s Scratchpads) createOnce(key string, envelope []byte) error {
	err := s.Store.Update(func(tx storage.Txn) error {
		if !tx.Has(key) {
			tx.Put(key, envelope)
		}
		return nil
	})
	return storeErr("scratchpad", err)
}

// UpdatePublic overwrites an existing public scratchpad. The address must
// already hold a public scratchpad.
func (s Scratchpads) UpdatePublic(addr model.Address, name, content string) error {
	b, err := decodeBase64("scratchpad content", content)
	if err != nil {
		return err
	}
	rec, err := encodeRecord("scratchpad", scratchpadRecord{Name: name, Content: b, Type: typePublicScratch})
	if err != nil {
		return err
	}
	err = s.Store.Update(func(tx storage.Txn) error {
		existing, err := tx.Get(addr.String())
		if err != nil {
			return loadErr("scratchpad", addr.String(), err)
		}
		if err := requireType(existing, typePublicScratch, "public scratchpad"); err != nil {
			return err
		}
		tx.Put(addr.String(), rec)
		return nil
	})
	return storeErr("scratchpad", err)
}

func (s Scratchpads) GetPublic(addr model.Address) (string, error) {
	return s.get(addr.String(), typePublicScratch)
}

// CreatePrivate derives the address from {name, content} and stores the
// content in the name's namespace under it.
func (s Scratchpads) CreatePrivate(name, content string) (model.Address, error) {
	if err := requireField("private scratchpad name", name); err != nil {
		return "", err
	}
	b, err := decodeBase64("scratchpad content", content)
	if err != nil {
		return "", err
	}
	rec := scratchpadRecord{Name: name, Content: b, Type: typePrivateScratch}
	addr, envelope, err := address.ForEnvelope(rec)
	if err != nil {
		return "", err
	}
	if err := s.createOnce(privateKey(addr, name), envelope); err != nil {
		return "", err
	}
	return addr, nil
}

// UpdatePrivate writes the name's namespace under addr, creating it when
// absent. Other names under the same address are untouched.
func (s Scratchpads) UpdatePrivate(addr model.Address, name, content string) error {
	if err := requireField("private scratchpad name", name); err != nil {
		return err
	}
	if !address.Valid(addr.String()) {
		return model.Errorf(model.ErrCodeInvalidRequest, "invalid scratchpad address %q", addr)
	}
	b, err := decodeBase64("scratchpad content", content)
	if err != nil {
		return err
	}
	rec, err := encodeRecord("scratchpad", scratchpadRecord{Name: name, Content: b, Type: typePrivateScratch})
	if err != nil {
		return err
	}
	return storeErr("scratchpad", s.Store.Put(privateKey(addr, name), rec))
}

func (s Scratchpads) GetPrivate(addr model.Address, name string) (string, error) {
	if err := requireField("private scratchpad name", name); err != nil {
		return "", err
	}
	return s.get(privateKey(addr, name), typePrivateScratch)
}

func (s Scratchpads) get(key, typ string) (string, error) {
	raw, err := s.Store.Get(key)
	if err != nil {
		return "", loadErr("scratchpad", key, err)
	}
	if err := requireType(raw, typ, typ+" scratchpad"); err != nil {
		return "", err
	}
	var rec scratchpadRecord
	if err := decodeRecord("scratchpad", raw, &rec); err != nil {
		return "", err
	}
	return encodeBase64(rec.Content), nil
}
