package primitive

import (
	"time"

	"github.com/willief/AntTP-tutorial/address"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
)

// Registers stores named hex values with an append-only history.
//
// The current value lives at <addr> and the history at <addr>_history. Both
// are written in one Update, history first, so the current value always
// equals the last history entry. Only addresses holding a register record are
// read or updated.
type Registers struct {
	Store *storage.Keyed

	// Now stamps entries. Nil means time.Now.
	Now func() time.Time
}

func historyKey(addr model.Address) string { return addr.String() + "_history" }

func (r Registers) now() int64 {
	if r.Now != nil {
		return r.Now().Unix()
	}
	return time.Now().Unix()
}

// Create stores a new register. The address covers name, content and the
// creation timestamp.
func (r Registers) Create(name, content string) (model.Address, error) {
	if err := checkHex("register content", content); err != nil {
		return "", err
	}
	rec := registerRecord{Name: name, Content: content, Type: typeRegister, Timestamp: r.now()}
	addr, envelope, err := address.ForEnvelope(rec)
	if err != nil {
		return "", err
	}
	history, err := encodeRecord("register history", []model.RegisterEntry{{Content: content, Timestamp: rec.Timestamp}})
	if err != nil {
		return "", err
	}

	err = r.Store.Update(func(tx storage.Txn) error {
		if tx.Has(addr.String()) {
			return nil
		}
		tx.Put(historyKey(addr), history)
		tx.Put(addr.String(), envelope)
		return nil
	})
	if err != nil {
		return "", storeErr("register", err)
	}
	return addr, nil
}

// Update sets a new current value and appends it to the history.
func (r Registers) Update(addr model.Address, name, content string) error {
	if err := checkHex("register content", content); err != nil {
		return err
	}
	rec := registerRecord{Name: name, Content: content, Type: typeRegister, Timestamp: r.now()}
	current, err := encodeRecord("register", rec)
	if err != nil {
		return err
	}

	err = r.Store.Update(func(tx storage.Txn) error {
		existing, err := tx.Get(addr.String())
		if err != nil {
			return loadErr("register", addr.String(), err)
		}
		if err := requireType(existing, typeRegister, "register"); err != nil {
			return err
		}
		var history []model.RegisterEntry
		raw, err := tx.Get(historyKey(addr))
		switch {
		case err == nil:
			if err := decodeRecord("register history", raw, &history); err != nil {
				return err
			}
		case storage.IsNotFound(err):
		default:
			return loadErr("register history", addr.String(), err)
		}
		history = append(history, model.RegisterEntry{Content: content, Timestamp: rec.Timestamp})
		encoded, err := encodeRecord("register history", history)
		if err != nil {
			return err
		}
		tx.Put(historyKey(addr), encoded)
		tx.Put(addr.String(), current)
		return nil
	})
	return storeErr("register", err)
}

// Get returns the current hex content.
func (r Registers) Get(addr model.Address) (string, error) {
	raw, err := r.Store.Get(addr.String())
	if err != nil {
		return "", loadErr("register", addr.String(), err)
	}
	if err := requireType(raw, typeRegister, "register"); err != nil {
		return "", err
	}
	var rec registerRecord
	if err := decodeRecord("register", raw, &rec); err != nil {
		return "", err
	}
	return rec.Content, nil
}

// History returns every value the register has held, oldest first.
func (r Registers) History(addr model.Address) ([]model.RegisterEntry, error) {
	var raw []byte
	err := r.Store.View(func(rd storage.Reader) error {
		current, err := rd.Get(addr.String())
		if err != nil {
			return err
		}
		if err := requireType(current, typeRegister, "register"); err != nil {
			return err
		}
		raw, err = rd.Get(historyKey(addr))
		return err
	})
	if err != nil {
		return nil, loadErr("register", addr.String(), err)
	}
	var history []model.RegisterEntry
	if err := decodeRecord("register history", raw, &history); err != nil {
		return nil, err
	}
	return history, nil
}
