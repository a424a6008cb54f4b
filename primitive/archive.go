package primitive

import (
	"bytes"

	"github.com/willief/AntTP-tutorial/address"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
	"github.com/willief/AntTP-tutorial/storage/bundle"
)

// Archives stores file lists as one addressed unit, either CBOR encoded
// (archive) or as a deterministic TAR stream (tarchive). Retrieval always
// returns the whole list.
type Archives struct {
	Store *storage.Keyed
}

func checkFiles(files []model.ArchiveFile) error {
	if len(files) == 0 {
		return model.Errorf(model.ErrCodeInvalidRequest, "archive has no files")
	}
	for i, f := range files {
		if f.Path == "" {
			return model.Errorf(model.ErrCodeInvalidRequest, "archive file %d has no path", i)
		}
	}
	return nil
}

func (a Archives) putImmutable(kind string, b []byte) (model.Address, error) {
	addr := address.For(b)
	err := a.Store.Update(func(tx storage.Txn) error {
		if !tx.Has(addr.String()) {
			tx.Put(addr.String(), b)
		}
		return nil
	})
	if err != nil {
		return "", storeErr(kind, err)
	}
	return addr, nil
}

// Create stores files and optional metadata. File order is kept and is part
// of the address.
func (a Archives) Create(files []model.ArchiveFile, metadata map[string]string) (model.Address, error) {
	if err := checkFiles(files); err != nil {
		return "", err
	}
	if len(metadata) == 0 {
		metadata = nil
	}
	b, err := encodeRecord("archive", model.Archive{Files: files, Metadata: metadata})
	if err != nil {
		return "", err
	}
	return a.putImmutable("archive", b)
}

func (a Archives) Get(addr model.Address) (model.Archive, error) {
	raw, err := a.Store.Get(addr.String())
	if err != nil {
		return model.Archive{}, loadErr("archive", addr.String(), err)
	}
	var out model.Archive
	if err := decodeRecord("archive", raw, &out); err != nil {
		return model.Archive{}, err
	}
	if len(out.Files) == 0 {
		return model.Archive{}, model.Errorf(model.ErrCodeInvalidRequest, "address does not hold an archive")
	}
	return out, nil
}

// GetFile returns one file of an archive by path.
func (a Archives) GetFile(addr model.Address, path string) (model.ArchiveFile, error) {
	arc, err := a.Get(addr)
	if err != nil {
		return model.ArchiveFile{}, err
	}
	for _, f := range arc.Files {
		if f.Path == path {
			return f, nil
		}
	}
	return model.ArchiveFile{}, model.Errorf(model.ErrCodeNotFound, "file %q not found in archive %s", path, addr)
}

// CreateTar stores files as a TAR stream.
func (a Archives) CreateTar(files []model.ArchiveFile) (model.Address, error) {
	if err := checkFiles(files); err != nil {
		return "", err
	}
	b, err := bundle.Marshal(files)
	if err != nil {
		return "", model.WrapError(model.ErrCodeInvalidRequest, "encode tarchive", err)
	}
	return a.putImmutable("tarchive", b)
}

// ImportTar stores an existing TAR stream as a tarchive. Directory and link
// entries are dropped and the regular files are re-encoded deterministically,
// so two tars with the same files in the same order share an address.
func (a Archives) ImportTar(raw []byte) (model.Address, error) {
	files, err := bundle.ImportWithOptions(bytes.NewReader(raw), bundle.ImportOptions{IgnoreUnknown: true})
	if err != nil {
		return "", model.WrapError(model.ErrCodeInvalidRequest, "read tar", err)
	}
	return a.CreateTar(files)
}

func (a Archives) GetTar(addr model.Address) ([]model.ArchiveFile, error) {
	raw, err := a.Store.Get(addr.String())
	if err != nil {
		return nil, loadErr("tarchive", addr.String(), err)
	}
	files, err := bundle.Import(bytes.NewReader(raw))
	if err != nil || len(files) == 0 {
		return nil, model.Errorf(model.ErrCodeInvalidRequest, "address does not hold a tarchive")
	}
	return files, nil
}
