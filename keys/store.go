package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	rootKeyFile = "node.key"

	// PurposePointer is the derivation purpose of the pointer-record key.
	PurposePointer = "pointer"
)

func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != ed25519.SeedSize {
		return nil, fmt.Errorf("expected seed length of %d bytes, got %d", ed25519.SeedSize, len(data))
	}
	return data, nil
}

func saveSeedToFile(filePath string, seed []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o700); err != nil {
		return err
	}
	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(hex.EncodeToString(seed) + "\n"); err != nil {
		return err
	}
	return file.Close()
}

func loadSeedFromFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseSeedHex(string(data))
}

// LoadOrCreate returns the node's pointer signer, reading the root seed from
// dir/node.key and generating it on first use.
func LoadOrCreate(dir, alg string) (*Signer, error) {
	if dir == "" {
		return nil, errors.New("keys: identity directory is required")
	}
	path := filepath.Join(dir, rootKeyFile)
	root, err := loadSeedFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		root = make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(root); err != nil {
			return nil, err
		}
		if err := saveSeedToFile(path, root); err != nil {
			if !errors.Is(err, os.ErrExist) {
				return nil, err
			}
			// Lost a creation race; use the winner's seed.
			if root, err = loadSeedFromFile(path); err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, fmt.Errorf("keys: load %s: %w", path, err)
	}
	return signerFromRoot(root, alg)
}

// Ephemeral returns a signer with a random root seed that is never persisted.
func Ephemeral(alg string) (*Signer, error) {
	root := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(root); err != nil {
		return nil, err
	}
	return signerFromRoot(root, alg)
}

func signerFromRoot(root []byte, alg string) (*Signer, error) {
	seed, err := DeriveSeed(root, PurposePointer)
	if err != nil {
		return nil, err
	}
	return NewSigner(alg, seed)
}
