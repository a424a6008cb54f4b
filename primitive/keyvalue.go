package primitive

import (
	"strings"

	"github.com/willief/AntTP-tutorial/address"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
)

// KeyValues stores base64 objects under a (bucket, object) key. Puts
// overwrite; there is no history.
type KeyValues struct {
	Store *storage.Keyed
}

func kvKey(bucket, object string) string { return "kv:" + bucket + ":" + object }

func checkBucket(bucket, object string) error {
	if err := requireField("bucket", bucket); err != nil {
		return err
	}
	if err := requireField("object", object); err != nil {
		return err
	}
	// The compound key would be ambiguous otherwise.
	if strings.Contains(bucket, ":") {
		return model.Errorf(model.ErrCodeInvalidRequest, "bucket %q must not contain ':'", bucket)
	}
	return nil
}

// Put stores content and returns the address of the stored envelope.
func (k KeyValues) Put(bucket, object, content string) (model.Address, error) {
	if err := checkBucket(bucket, object); err != nil {
		return "", err
	}
	b, err := decodeBase64("key-value content", content)
	if err != nil {
		return "", err
	}
	addr, envelope, err := address.ForEnvelope(keyValueRecord{Bucket: bucket, Object: object, Content: b, Type: typeKeyValue})
	if err != nil {
		return "", err
	}
	if err := k.Store.Put(kvKey(bucket, object), envelope); err != nil {
		return "", storeErr("key-value", err)
	}
	return addr, nil
}

// Get returns the object content base64 encoded.
func (k KeyValues) Get(bucket, object string) (string, error) {
	if err := checkBucket(bucket, object); err != nil {
		return "", err
	}
	key := kvKey(bucket, object)
	raw, err := k.Store.Get(key)
	if err != nil {
		return "", loadErr("key-value", bucket+"/"+object, err)
	}
	var rec keyValueRecord
	if err := decodeRecord("key-value", raw, &rec); err != nil {
		return "", err
	}
	return encodeBase64(rec.Content), nil
}
