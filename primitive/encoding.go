package primitive

import (
	"encoding/base64"
	"encoding/hex"
	"errors"

	"github.com/willief/AntTP-tutorial/codec"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
)

func checkHex(field, s string) error {
	if _, err := hex.DecodeString(s); err != nil {
		return model.WrapError(model.ErrCodeInvalidEncoding, field+" must be hex", err)
	}
	return nil
}

func decodeBase64(field, s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, model.WrapError(model.ErrCodeInvalidEncoding, field+" must be base64", err)
	}
	return b, nil
}

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func requireField(field, v string) error {
	if v == "" {
		return model.Errorf(model.ErrCodeInvalidRequest, "%s is required", field)
	}
	return nil
}

// loadErr converts a storage read failure into a coded error. Coded errors
// pass through unchanged.
func loadErr(kind string, key string, err error) error {
	var ce *model.CodedError
	switch {
	case errors.As(err, &ce):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return model.Errorf(model.ErrCodeNotFound, "%s not found: %s", kind, key)
	case errors.Is(err, storage.ErrInvalidKey):
		return model.Errorf(model.ErrCodeInvalidRequest, "%s key is empty", kind)
	default:
		return model.WrapError(model.ErrCodeInternal, "read "+kind, err)
	}
}

func storeErr(kind string, err error) error {
	if err == nil {
		return nil
	}
	var ce *model.CodedError
	if errors.As(err, &ce) {
		return err
	}
	return model.WrapError(model.ErrCodeInternal, "write "+kind, err)
}

// requireType rejects raw unless it is a record carrying the type tag want.
// Chunks and archives carry no tag and are rejected too.
func requireType(raw []byte, want, what string) error {
	var tag struct {
		Type string `cbor:"type"`
	}
	if err := codec.Unmarshal(raw, &tag); err != nil || tag.Type != want {
		return model.Errorf(model.ErrCodeInvalidRequest, "address does not hold a %s", what)
	}
	return nil
}

func decodeRecord(kind string, b []byte, v any) error {
	if err := codec.Unmarshal(b, v); err != nil {
		return model.WrapError(model.ErrCodeInternal, "decode "+kind, err)
	}
	return nil
}

func encodeRecord(kind string, v any) ([]byte, error) {
	b, err := codec.Marshal(v)
	if err != nil {
		return nil, model.WrapError(model.ErrCodeInternal, "encode "+kind, err)
	}
	return b, nil
}
