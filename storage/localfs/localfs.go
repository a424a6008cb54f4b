package localfs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/willief/AntTP-tutorial/address"
	"github.com/willief/AntTP-tutorial/storage"
)

// Store is a local filesystem Backend, used to honor the disk intent.
//
// Each key maps to one file named by the CID of the key bytes, sharded by the
// first two hex characters of the key's address. Values are written as
// checksummed, optionally compressed frames via a temp file and rename, so a
// reader never sees a half-written value.
//
// Lock takes an advisory lock on a file at the root, so stores opened on the
// same directory by different processes serialize through storage.Keyed.
type Store struct {
	root        string
	compression Compression
}

var (
	_ storage.Backend = (*Store)(nil)
	_ storage.Deleter = (*Store)(nil)
	_ storage.Locker  = (*Store)(nil)
)

type Options struct {
	Compression Compression
}

// New constructs a filesystem store rooted at root. The directory will be created if needed.
func New(root string, opts Options) (*Store, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root, compression: opts.Compression}, nil
}

func (s *Store) Root() string { return s.root }

func (s *Store) Put(key string, value []byte) error {
	if key == "" {
		return storage.ErrInvalidKey
	}
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	frame, err := encodeFrame(value, s.compression)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(frame); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, storage.ErrInvalidKey
	}
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return decodeFrame(b)
}

func (s *Store) Has(key string) bool {
	if key == "" {
		return false
	}
	path, err := s.pathFor(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Delete removes key. Removing a missing key is not an error.
func (s *Store) Delete(key string) error {
	if key == "" {
		return storage.ErrInvalidKey
	}
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) pathFor(key string) (string, error) {
	id, err := address.CID([]byte(key))
	if err != nil {
		return "", err
	}
	shard := address.For([]byte(key)).String()[:2]
	return filepath.Join(s.root, shard, id.String()), nil
}
