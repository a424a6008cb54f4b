package primitive

import (
	"github.com/willief/AntTP-tutorial/address"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
)

// NameRegistry maps human-chosen names to record sets. Entries are keyed by
// name, not content, since they change in place.
type NameRegistry struct {
	Store *storage.Keyed
}

func pnrKey(name string) string { return "pnr:" + name }

// Create replaces the record map for name and returns the address of the
// stored entry.
func (n NameRegistry) Create(name string, records model.PNRRecords) (model.Address, error) {
	if err := requireField("pnr name", name); err != nil {
		return "", err
	}
	addr, b, err := n.encode(name, records)
	if err != nil {
		return "", err
	}
	if err := n.Store.Put(pnrKey(name), b); err != nil {
		return "", storeErr("pnr", err)
	}
	return addr, nil
}

// Update replaces the record map of an existing name.
func (n NameRegistry) Update(name string, records model.PNRRecords) (model.Address, error) {
	if err := requireField("pnr name", name); err != nil {
		return "", err
	}
	addr, b, err := n.encode(name, records)
	if err != nil {
		return "", err
	}
	err = n.Store.Update(func(tx storage.Txn) error {
		if !tx.Has(pnrKey(name)) {
			return model.Errorf(model.ErrCodeNotFound, "pnr not found: %s", name)
		}
		tx.Put(pnrKey(name), b)
		return nil
	})
	if err != nil {
		return "", storeErr("pnr", err)
	}
	return addr, nil
}

// Append merges records into the existing map: new values win on key
// collision and other keys survive. An unknown name starts from an empty map.
func (n NameRegistry) Append(name string, records model.PNRRecords) (model.Address, error) {
	if err := requireField("pnr name", name); err != nil {
		return "", err
	}
	var addr model.Address
	err := n.Store.Update(func(tx storage.Txn) error {
		merged := model.PNRRecords{}
		raw, err := tx.Get(pnrKey(name))
		switch {
		case err == nil:
			var prev pnrRecord
			if err := decodeRecord("pnr", raw, &prev); err != nil {
				return err
			}
			for k, v := range prev.Records {
				merged[k] = v
			}
		case storage.IsNotFound(err):
		default:
			return loadErr("pnr", name, err)
		}
		for k, v := range records {
			merged[k] = v
		}
		var b []byte
		addr, b, err = n.encode(name, merged)
		if err != nil {
			return err
		}
		tx.Put(pnrKey(name), b)
		return nil
	})
	if err != nil {
		return "", storeErr("pnr", err)
	}
	return addr, nil
}

func (n NameRegistry) Get(name string) (model.PNRRecords, error) {
	if err := requireField("pnr name", name); err != nil {
		return nil, err
	}
	raw, err := n.Store.Get(pnrKey(name))
	if err != nil {
		return nil, loadErr("pnr", name, err)
	}
	var rec pnrRecord
	if err := decodeRecord("pnr", raw, &rec); err != nil {
		return nil, err
	}
	if rec.Records == nil {
		rec.Records = model.PNRRecords{}
	}
	return rec.Records, nil
}

func (n NameRegistry) encode(name string, records model.PNRRecords) (model.Address, []byte, error) {
	if records == nil {
		records = model.PNRRecords{}
	}
	return address.ForEnvelope(pnrRecord{Name: name, Records: records, Type: typePNR})
}
