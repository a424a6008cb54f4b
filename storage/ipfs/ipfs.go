// Package ipfs stores keyed values in the mutable file system (MFS) of a
// local Kubo node by shelling out to the "ipfs" CLI.
//
// Files are laid out like the localfs backend:
//
//	<root>/<hex[:2]>/<cid>
//
// where cid is the CIDv1 (raw + sha2-256) of the key bytes. No daemon is
// required when the repo is not locked by one; otherwise the CLI talks to it.
package ipfs

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/willief/AntTP-tutorial/address"
	"github.com/willief/AntTP-tutorial/storage"
)

// Store is a storage.Backend over Kubo MFS.
type Store struct {
	bin  string
	env  []string
	root string
}

var (
	_ storage.Backend = (*Store)(nil)
	_ storage.Deleter = (*Store)(nil)
)

type Options struct {
	// Bin is the path to the ipfs binary. If empty, "ipfs" is used.
	Bin string
	// Env optionally overrides the command environment (e.g. to set IPFS_PATH).
	// If nil, the process environment is used.
	Env []string
	// Root is the MFS directory holding values. If empty, "/anttp" is used.
	Root string
}

func New(opts Options) *Store {
	bin := opts.Bin
	if bin == "" {
		bin = "ipfs"
	}
	root := opts.Root
	if root == "" {
		root = "/anttp"
	}
	return &Store{bin: bin, env: opts.Env, root: path.Clean("/" + root)}
}

func (s *Store) Put(key string, value []byte) error {
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err = s.run(value, "files", "write", "--create", "--parents", "--truncate", p)
	return err
}

func (s *Store) Get(key string) ([]byte, error) {
	p, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	out, err := s.run(nil, "files", "read", p)
	if err != nil {
		if isLikelyNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

func (s *Store) Has(key string) bool {
	p, err := s.pathFor(key)
	if err != nil {
		return false
	}
	_, err = s.run(nil, "files", "stat", "--hash", p)
	return err == nil
}

// Delete removes the MFS file for key. Removing a missing key is not an error.
func (s *Store) Delete(key string) error {
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if _, err := s.run(nil, "files", "rm", p); err != nil && !isLikelyNotFound(err) {
		return err
	}
	return nil
}

func (s *Store) pathFor(key string) (string, error) {
	if key == "" {
		return "", storage.ErrInvalidKey
	}
	id, err := address.CID([]byte(key))
	if err != nil {
		return "", err
	}
	shard := address.For([]byte(key)).String()[:2]
	return path.Join(s.root, shard, id.String()), nil
}

func (s *Store) run(stdin []byte, args ...string) ([]byte, error) {
	cmd := exec.Command(s.bin, args...)
	if s.env != nil {
		cmd.Env = s.env
	}
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		msg := strings.TrimSpace(string(ee.Stderr))
		if msg == "" {
			return nil, fmt.Errorf("ipfs: %v", err)
		}
		return nil, fmt.Errorf("ipfs: %s", msg)
	}
	return nil, err
}

func isLikelyNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "not found")
}
