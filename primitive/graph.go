package primitive

import (
	"github.com/willief/AntTP-tutorial/address"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
)

// GraphEntries stores immutable (name, hex content) pairs.
type GraphEntries struct {
	Store *storage.Keyed
}

func (g GraphEntries) Create(name, content string) (model.Address, error) {
	if err := checkHex("graph entry content", content); err != nil {
		return "", err
	}
	addr, envelope, err := address.ForEnvelope(graphRecord{Name: name, Content: content, Type: typeGraphEntry})
	if err != nil {
		return "", err
	}
	err = g.Store.Update(func(tx storage.Txn) error {
		if !tx.Has(addr.String()) {
			tx.Put(addr.String(), envelope)
		}
		return nil
	})
	if err != nil {
		return "", storeErr("graph entry", err)
	}
	return addr, nil
}

func (g GraphEntries) Get(addr model.Address) (model.GraphEntry, error) {
	raw, err := g.Store.Get(addr.String())
	if err != nil {
		return model.GraphEntry{}, loadErr("graph entry", addr.String(), err)
	}
	if err := requireType(raw, typeGraphEntry, "graph entry"); err != nil {
		return model.GraphEntry{}, err
	}
	var rec graphRecord
	if err := decodeRecord("graph entry", raw, &rec); err != nil {
		return model.GraphEntry{}, err
	}
	return model.GraphEntry{Name: rec.Name, Content: rec.Content}, nil
}
