package primitive

import (
	"github.com/willief/AntTP-tutorial/address"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
)

// Chunks stores immutable content-addressed blobs. Public data uses the same
// store; only the engine operations differ.
type Chunks struct {
	Store *storage.Keyed
}

// Put stores content under its address. Re-inserting the same bytes is a
// no-op that returns the same address.
func (c Chunks) Put(content []byte) (model.Address, error) {
	addr := address.For(content)
	err := c.Store.Update(func(tx storage.Txn) error {
		if !tx.Has(addr.String()) {
			tx.Put(addr.String(), content)
		}
		return nil
	})
	if err != nil {
		return "", storeErr("chunk", err)
	}
	return addr, nil
}

// PutBase64 decodes content and stores it.
func (c Chunks) PutBase64(content string) (model.Address, error) {
	b, err := decodeBase64("chunk content", content)
	if err != nil {
		return "", err
	}
	return c.Put(b)
}

func (c Chunks) Get(addr model.Address) ([]byte, error) {
	b, err := c.Store.Get(addr.String())
	if err != nil {
		return nil, loadErr("chunk", addr.String(), err)
	}
	return b, nil
}

// GetBase64 returns the chunk content base64 encoded.
func (c Chunks) GetBase64(addr model.Address) (string, error) {
	b, err := c.Get(addr)
	if err != nil {
		return "", err
	}
	return encodeBase64(b), nil
}
