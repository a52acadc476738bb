// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package policy

import "testing"

func TestRepairSymbols(t *testing.T) {
	cases := []struct {
		name       string
		symbolSize uint16
		redundancy uint8
		dataLen    uint64
		want       uint32
	}{
		{"tiny input falls back to redundancy factor", 50000, 12, 10000, 12},
		{"exact symbol size falls back to redundancy factor", 50000, 12, 50000, 12},
		{"10MB input (S2)", 50000, 12, 10_000_000, 2200},
		{"10MB+1 input (S3)", 50000, 12, 10_000_001, 2201},
		{"one byte over symbol size", 50000, 12, 50001, 12},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := RepairSymbols(c.symbolSize, c.redundancy, c.dataLen)
			if got != c.want {
				t.Errorf("RepairSymbols(%d, %d, %d) = %d, want %d", c.symbolSize, c.redundancy, c.dataLen, got, c.want)
			}
		})
	}
}
