// Package address derives the identifiers primitives are stored under.
//
// An address is the lowercase hex SHA2-256 digest of canonical bytes. The
// digest is computed through a multihash so the same bytes can also be named
// as a CIDv1 (raw codec), which is how the disk backend lays out files.
package address

import (
	"encoding/hex"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/willief/AntTP-tutorial/codec"
	"github.com/willief/AntTP-tutorial/model"
)

// Size is the length in hex characters of every address.
const Size = 64

// For returns the address of data.
func For(data []byte) model.Address {
	return model.Address(hex.EncodeToString(digest(data)))
}

// CID returns the CIDv1 (raw + sha2-256) naming data.
func CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// ForEnvelope canonically encodes v and returns its address together with
// the encoded bytes.
func ForEnvelope(v any) (model.Address, []byte, error) {
	b, err := codec.Marshal(v)
	if err != nil {
		return "", nil, model.WrapError(model.ErrCodeInternal, "encode envelope", err)
	}
	return For(b), b, nil
}

// Valid reports whether s has the shape of an address.
func Valid(s string) bool {
	if len(s) != Size {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func digest(data []byte) []byte {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for unknown codes or bad lengths; with
		// SHA2_256 and -1 this is unreachable.
		panic("address: sha2-256 multihash failed: " + err.Error())
	}
	decoded, err := multihash.Decode(sum)
	if err != nil {
		panic("address: decoding own multihash failed: " + err.Error())
	}
	return decoded.Digest
}
