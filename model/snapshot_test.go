package model

import (
	"encoding/json"
	"testing"
)

func TestSnapshot_Receipt_JSONShape(t *testing.T) {
	r := Receipt{
		Address:   "185f8db3",
		Requested: IntentDisk,
		Served:    IntentMemory,
		Degraded:  true,
	}

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}

	const want = "{\n" +
		"  \"address\": \"185f8db3\",\n" +
		"  \"requested\": \"disk\",\n" +
		"  \"served\": \"memory\",\n" +
		"  \"degraded\": true\n" +
		"}"

	if string(b) != want {
		t.Fatalf("snapshot mismatch:\n%s", string(b))
	}
}

func TestSnapshot_Capabilities_JSONShape(t *testing.T) {
	caps := Capabilities{
		Intents: []Intent{IntentMemory, IntentNetwork},
		Commands: []Command{
			{Name: "chunk", Description: "Immutable chunks", Operations: []string{"put", "get"}},
		},
	}

	b, err := json.MarshalIndent(caps, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}

	const want = "{\n" +
		"  \"intents\": [\n" +
		"    \"memory\",\n" +
		"    \"network\"\n" +
		"  ],\n" +
		"  \"available_commands\": [\n" +
		"    {\n" +
		"      \"name\": \"chunk\",\n" +
		"      \"description\": \"Immutable chunks\",\n" +
		"      \"operations\": [\n" +
		"        \"put\",\n" +
		"        \"get\"\n" +
		"      ]\n" +
		"    }\n" +
		"  ]\n" +
		"}"

	if string(b) != want {
		t.Fatalf("snapshot mismatch:\n%s", string(b))
	}
}

func TestSnapshot_CodedError_JSONShape(t *testing.T) {
	err := NewError(ErrCodeNotFound, "register not found")

	b, mErr := json.Marshal(err)
	if mErr != nil {
		t.Fatalf("Marshal failed: %v", mErr)
	}
	const want = `{"code":"NOT_FOUND","message":"register not found"}`
	if string(b) != want {
		t.Fatalf("snapshot mismatch:\n%s", string(b))
	}
}

func TestSnapshot_PNRRecords_JSONShape(t *testing.T) {
	records := PNRRecords{
		"www": {Address: "aa", RecordType: "A", TTL: 60},
		"api": {Address: "bb", RecordType: "CNAME", TTL: 10},
	}

	b, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	const want = `{"api":{"address":"bb","record_type":"CNAME","ttl":10},` +
		`"www":{"address":"aa","record_type":"A","ttl":60}}`
	if string(b) != want {
		t.Fatalf("snapshot mismatch:\n%s", string(b))
	}
}
