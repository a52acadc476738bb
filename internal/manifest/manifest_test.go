// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package manifest

import (
	"encoding/json"
	"testing"
)

func TestNewAssignsDistinctIDs(t *testing.T) {
	names := []string{"a", "b", "c"}
	m1 := New("12345", "67890", names)
	m2 := New("12345", "67890", names)

	if m1.ID == m2.ID {
		t.Fatal("two manifest replicas were assigned the same GUID")
	}
	if m1.BlockHash != m2.BlockHash || m1.PastelID != m2.PastelID {
		t.Fatal("replicas sharing a create_metadata call must share non-ID fields")
	}
}

func TestMarshalContainsAllFields(t *testing.T) {
	m := New("12345", "67890", []string{"sym1", "sym2", "sym3"})

	body, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Marshal did not produce valid JSON: %v", err)
	}

	for _, field := range []string{"id", "block_hash", "pastel_id", "symbol_identifiers"} {
		if _, ok := decoded[field]; !ok {
			t.Fatalf("manifest JSON missing field %q", field)
		}
	}

	syms, ok := decoded["symbol_identifiers"].([]interface{})
	if !ok || len(syms) != 3 {
		t.Fatalf("symbol_identifiers did not round-trip as a 3-element array: %v", decoded["symbol_identifiers"])
	}
}
