// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fec is a small, self-contained systematic fountain code: a source
// buffer is split into equal-size symbols, the first K packets the encoder
// emits are exactly those symbols (the systematic part), and every further
// packet is an XOR combination of a pseudo-randomly chosen subset of them
// (the repair part). A decoder accumulates packets into a sparse system of
// XOR equations over GF(2) and solves it by Gaussian elimination once the
// system is fully determined.
//
// The block/matrix machinery below is adapted from Google's gofountain
// (the fountain package), trimmed to the fixed-size-symbol case this
// service needs: every source block is exactly symbolSize bytes, the last
// one zero-padded, so there is no need for gofountain's long/short block
// partitioning.
package fec

// block is one symbol's worth of data: either a source symbol sliced
// straight out of the source buffer, or an XOR accumulator used while
// decoding.
type block struct {
	data []byte
}

// xor combines a onto b in place, growing b if necessary. Missing bytes on
// either side are treated as zero, so XOR commutes regardless of which
// operand is currently shorter.
func (b *block) xor(a block) {
	if len(b.data) < len(a.data) {
		grown := make([]byte, len(a.data))
		copy(grown, b.data)
		b.data = grown
	}
	for i := range a.data {
		b.data[i] ^= a.data[i]
	}
}

// sparseMatrix is the decode-time system of XOR equations. coeff[i] holds
// the (sorted) source-symbol indices contributing to row i; v[i] holds the
// accumulated value for that row. The matrix stays triangular as rows are
// added: invariant is that either coeff[i][0] == i or coeff[i] is empty.
type sparseMatrix struct {
	coeff [][]int
	v     []block
}

func newSparseMatrix(size int) sparseMatrix {
	return sparseMatrix{
		coeff: make([][]int, size),
		v:     make([]block, size),
	}
}

// xorRow reduces the candidate equation (indices, b) against matrix row s,
// returning the symmetric difference of the coefficient sets and the XORed
// value. Both coefficient slices must be sorted.
func (m *sparseMatrix) xorRow(s int, indices []int, b block) ([]int, block) {
	b.xor(m.v[s])

	var merged []int
	row := m.coeff[s]
	var i, j int
	for i < len(row) && j < len(indices) {
		switch {
		case row[i] == indices[j]:
			i++
			j++
		case row[i] < indices[j]:
			merged = append(merged, row[i])
			i++
		default:
			merged = append(merged, indices[j])
			j++
		}
	}
	merged = append(merged, row[i:]...)
	merged = append(merged, indices[j:]...)
	return merged, b
}

// addEquation inserts an XOR equation into the matrix, reducing it against
// existing rows (and displacing them, recursively reducing the displaced
// row) until it either slots into an empty row or is found redundant.
func (m *sparseMatrix) addEquation(components []int, b block) {
	for len(components) > 0 && len(m.coeff[components[0]]) > 0 {
		s := components[0]
		if len(components) >= len(m.coeff[s]) {
			components, b = m.xorRow(s, components, b)
		} else {
			components, m.coeff[s] = m.coeff[s], components
			b, m.v[s] = m.v[s], b
		}
	}

	if len(components) > 0 {
		m.coeff[components[0]] = components
		m.v[components[0]] = b
	}
}

// determined reports whether every row of the matrix has been populated.
func (m *sparseMatrix) determined() bool {
	for _, row := range m.coeff {
		if len(row) == 0 {
			return false
		}
	}
	return true
}

// reduce performs back-substitution over the (already triangular) matrix so
// that each row's value equals its corresponding source symbol exactly.
func (m *sparseMatrix) reduce() {
	for i := len(m.coeff) - 1; i >= 0; i-- {
		for j := 0; j < i; j++ {
			ci, cj := m.coeff[i], m.coeff[j]
			for k := 1; k < len(cj); k++ {
				if cj[k] == ci[0] {
					m.v[j].xor(m.v[i])
					break
				}
			}
		}
		m.coeff[i] = m.coeff[i][0:1]
	}
}
