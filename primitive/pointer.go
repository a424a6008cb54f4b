package primitive

import (
	"github.com/willief/AntTP-tutorial/address"
	"github.com/willief/AntTP-tutorial/keys"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
)

// Pointers stores mutable references to other addresses. A pointer keeps no
// history; each update bumps its counter.
//
// When Signer is set, stored records are signed with the node key and
// verified on read. This detects records changed outside the engine. It is
// not access control.
type Pointers struct {
	Store  *storage.Keyed
	Signer *keys.Signer
}

// Create stores a pointer at the address of {name, target}. owner is a free
// annotation; when empty it defaults to the node key's owner string.
// Creating an existing pointer returns its address unchanged.
func (p Pointers) Create(name, target, owner string) (model.Address, error) {
	if err := requireField("pointer target", target); err != nil {
		return "", err
	}
	addr, _, err := address.ForEnvelope(pointerEnvelope{Name: name, Target: target, Type: typePointer})
	if err != nil {
		return "", err
	}
	if owner == "" && p.Signer != nil {
		owner = p.Signer.Owner()
	}
	rec, err := p.seal(pointerBody{Name: name, Target: target, Type: typePointer, Owner: owner})
	if err != nil {
		return "", err
	}

	err = p.Store.Update(func(tx storage.Txn) error {
		if !tx.Has(addr.String()) {
			tx.Put(addr.String(), rec)
		}
		return nil
	})
	if err != nil {
		return "", storeErr("pointer", err)
	}
	return addr, nil
}

// Update replaces name and target in place and increments the counter.
// The owner annotation is kept.
func (p Pointers) Update(addr model.Address, name, target string) error {
	if err := requireField("pointer target", target); err != nil {
		return err
	}
	err := p.Store.Update(func(tx storage.Txn) error {
		raw, err := tx.Get(addr.String())
		if err != nil {
			return loadErr("pointer", addr.String(), err)
		}
		prev, err := p.open(raw)
		if err != nil {
			return err
		}
		rec, err := p.seal(pointerBody{
			Name:    name,
			Target:  target,
			Type:    typePointer,
			Owner:   prev.Owner,
			Counter: prev.Counter + 1,
		})
		if err != nil {
			return err
		}
		tx.Put(addr.String(), rec)
		return nil
	})
	return storeErr("pointer", err)
}

func (p Pointers) Get(addr model.Address) (model.Pointer, error) {
	raw, err := p.Store.Get(addr.String())
	if err != nil {
		return model.Pointer{}, loadErr("pointer", addr.String(), err)
	}
	return p.open(raw)
}

func (p Pointers) seal(body pointerBody) ([]byte, error) {
	rec := pointerRecord{Body: body}
	if p.Signer != nil {
		msg, err := encodeRecord("pointer", body)
		if err != nil {
			return nil, err
		}
		sig, err := p.Signer.Sign(msg)
		if err != nil {
			return nil, model.WrapError(model.ErrCodeInternal, "sign pointer", err)
		}
		rec.SignedBy = p.Signer.Owner()
		rec.HashAlg = p.Signer.HashAlg()
		rec.Signature = sig
	}
	return encodeRecord("pointer", rec)
}

// open decodes a stored record and checks its signature when it has one.
func (p Pointers) open(raw []byte) (model.Pointer, error) {
	var rec pointerRecord
	if err := decodeRecord("pointer", raw, &rec); err != nil {
		return model.Pointer{}, err
	}
	if rec.Body.Type != typePointer {
		return model.Pointer{}, model.Errorf(model.ErrCodeInvalidRequest, "address does not hold a pointer")
	}
	if len(rec.Signature) > 0 {
		msg, err := encodeRecord("pointer", rec.Body)
		if err != nil {
			return model.Pointer{}, err
		}
		if err := keys.Verify(rec.SignedBy, rec.HashAlg, msg, rec.Signature); err != nil {
			return model.Pointer{}, model.WrapError(model.ErrCodeInternal, "pointer record failed verification", err)
		}
	}
	return model.Pointer{
		Name:    rec.Body.Name,
		Target:  rec.Body.Target,
		Owner:   rec.Body.Owner,
		Counter: rec.Body.Counter,
	}, nil
}
