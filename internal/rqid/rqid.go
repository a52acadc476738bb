// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package rqid derives the stable, content-addressed symbol identifier
// used to name symbol files on disk: base58(SHA3-256(packet bytes)).
package rqid

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"
)

// For computes the symbol identifier for a serialized packet. Two
// byte-identical packets always produce the same identifier; a single-bit
// change in the packet produces an effectively unrelated identifier.
func For(packet []byte) string {
	sum := sha3.Sum256(packet)
	return base58.Encode(sum[:])
}
