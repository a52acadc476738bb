// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package manifest serializes the symbol-identifier manifests a
// create_metadata call writes to disk: a set of symbol identifiers bound to
// an externally supplied block hash and user identity, each replica
// uniquely named by a fresh version-4 GUID.
package manifest

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Manifest is the JSON record written once per replica. All replicas from
// one create_metadata call share every field except ID.
type Manifest struct {
	ID                string   `json:"id"`
	BlockHash         string   `json:"block_hash"`
	PastelID          string   `json:"pastel_id"`
	SymbolIdentifiers []string `json:"symbol_identifiers"`
}

// New builds a manifest replica with a fresh v4 GUID for its ID.
func New(blockHash, pastelID string, symbolIdentifiers []string) Manifest {
	return Manifest{
		ID:                uuid.New().String(),
		BlockHash:         blockHash,
		PastelID:          pastelID,
		SymbolIdentifiers: symbolIdentifiers,
	}
}

// Marshal encodes the manifest as its JSON wire form.
func (m Manifest) Marshal() ([]byte, error) {
	return json.Marshal(m)
}
