package audit

import (
	"testing"
)

func TestParseEntries_Empty(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil, got: %v", entries)
	}
}

func TestParseEntries_ValidLines(t *testing.T) {
	data := []byte(`{"ts":"2026-01-02T03:04:05.000000Z","device":"laptop","uuid":"u-1","op":"seal","fingerprint":"SHA256:abc","envelope_bytes":120,"outcome":"ok"}
{"ts":"2026-01-02T03:05:00.000000Z","device":"laptop","uuid":"u-1","op":"unseal","fingerprint":"SHA256:abc","outcome":"ok"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}

	if entries[0].Operation != "seal" {
		t.Errorf("Expected op seal, got %q", entries[0].Operation)
	}
	if entries[0].EnvelopeBytes != 120 {
		t.Errorf("Expected 120 envelope bytes, got %d", entries[0].EnvelopeBytes)
	}
	if entries[1].Operation != "unseal" {
		t.Errorf("Expected op unseal, got %q", entries[1].Operation)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"op":"seal"}
this is not json
{"op":"unseal"}

`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries (malformed and blank lines skipped), got: %d", len(entries))
	}
}
