// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package policy computes how many repair symbols an encode operation
// should request, given a symbol size, a redundancy factor and a source
// length.
package policy

import "math"

// RepairSymbols computes the number of repair symbols to generate for a
// source of dataLen bytes, encoded with the given symbolSize and
// redundancyFactor.
//
// For inputs no larger than a single symbol, the result is simply
// redundancyFactor: the encoder already emits very few source symbols, so a
// fixed repair pad dominates. For larger inputs, the result targets a total
// packet count of roughly (dataLen/symbolSize)*redundancyFactor, i.e. a
// redundancyFactor-times multiplier over the natural source-symbol count.
func RepairSymbols(symbolSize uint16, redundancyFactor uint8, dataLen uint64) uint32 {
	if dataLen <= uint64(symbolSize) {
		return uint32(redundancyFactor)
	}
	ratio := float64(dataLen) * (float64(redundancyFactor) - 1.0) / float64(symbolSize)
	return uint32(math.Ceil(ratio))
}
