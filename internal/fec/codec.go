// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package fec

import (
	"encoding/binary"
	"math"
	"math/rand"
)

// ObjectTransmissionInformation (OTI) is the fixed-size parameter block a
// decoder needs to reconstruct a source object: its length, the size of
// each symbol, and the number of source symbols it was split into.
// Serializes to exactly 12 bytes, mirroring the RaptorQ OTI layout this
// service's identifiers and manifests are built around.
type ObjectTransmissionInformation struct {
	TransferLength uint64
	SymbolSize     uint16
	SourceSymbols  uint32
}

// NewOTI derives the OTI for a source object of transferLength bytes
// encoded with the given symbolSize. The result is deterministic for a
// given (transferLength, symbolSize) pair.
func NewOTI(transferLength uint64, symbolSize uint16) ObjectTransmissionInformation {
	k := uint32(math.Ceil(float64(transferLength) / float64(symbolSize)))
	if k == 0 {
		k = 1
	}
	return ObjectTransmissionInformation{
		TransferLength: transferLength,
		SymbolSize:     symbolSize,
		SourceSymbols:  k,
	}
}

// Serialize encodes the OTI into its 12-byte wire form: a 40-bit transfer
// length, a reserved byte, a 16-bit symbol size, and a 32-bit source-symbol
// count.
func (oti ObjectTransmissionInformation) Serialize() [12]byte {
	var out [12]byte
	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], oti.TransferLength)
	copy(out[0:5], lenBytes[3:8]) // low 40 bits
	out[5] = 0
	binary.BigEndian.PutUint16(out[6:8], oti.SymbolSize)
	binary.BigEndian.PutUint32(out[8:12], oti.SourceSymbols)
	return out
}

// DeserializeOTI reconstructs an OTI from its serialized form. Only the
// first 12 bytes of b are consulted; anything beyond that is ignored.
func DeserializeOTI(b []byte) ObjectTransmissionInformation {
	var buf [12]byte
	copy(buf[:], b)

	var lenBytes [8]byte
	copy(lenBytes[3:8], buf[0:5])
	transferLength := binary.BigEndian.Uint64(lenBytes[:])
	symbolSize := binary.BigEndian.Uint16(buf[6:8])
	sourceSymbols := binary.BigEndian.Uint32(buf[8:12])

	return ObjectTransmissionInformation{
		TransferLength: transferLength,
		SymbolSize:     symbolSize,
		SourceSymbols:  sourceSymbols,
	}
}

// EncodingPacket is one self-describing encoded symbol: its symbol index
// (identifying which source block it is, for index < SourceSymbols, or
// which repair combination it is otherwise) and its payload.
type EncodingPacket struct {
	Index uint32
	Data  []byte
}

// Serialize produces the standalone byte string for this packet: its
// 4-byte big-endian index followed by its payload.
func (p EncodingPacket) Serialize() []byte {
	out := make([]byte, 4+len(p.Data))
	binary.BigEndian.PutUint32(out[0:4], p.Index)
	copy(out[4:], p.Data)
	return out
}

// DeserializeEncodingPacket parses a packet previously produced by
// Serialize.
func DeserializeEncodingPacket(b []byte) (EncodingPacket, bool) {
	if len(b) < 4 {
		return EncodingPacket{}, false
	}
	return EncodingPacket{
		Index: binary.BigEndian.Uint32(b[0:4]),
		Data:  append([]byte(nil), b[4:]...),
	}, true
}

// degreeCDF returns the robust-soliton degree distribution for a codec with
// k source symbols, used to decide how many of them a repair symbol
// combines. m and delta follow the standard Luby/Shokrollahi parameterization
// (m proportional to sqrt(k), delta a small constant failure tolerance).
func degreeCDF(k int) []float64 {
	if k < 1 {
		k = 1
	}
	m := int(math.Ceil(math.Sqrt(float64(k))))
	if m < 1 {
		m = 1
	}
	return robustSolitonDistribution(k, m, 0.05)
}

// pickIndices returns the sorted set of source-symbol indices a packet at
// the given symbol index is composed of. Indices below sourceSymbols are
// systematic: the packet is exactly that source symbol. Indices at or above
// sourceSymbols are repair symbols: a pseudo-random XOR combination seeded
// deterministically by the index itself, so encoder and decoder always
// agree on the composition without needing extra state on the wire.
func pickIndices(index uint32, sourceSymbols uint32, cdf []float64) []int {
	if index < sourceSymbols {
		return []int{int(index)}
	}
	random := rand.New(newMersenneTwister(int64(index)))
	d := pickDegree(random, cdf)
	return sampleUniform(random, d, int(sourceSymbols))
}

// Encoder produces the systematic and repair packets for one source
// buffer. It is single-use: construct a fresh Encoder per operation.
type Encoder struct {
	oti    ObjectTransmissionInformation
	blocks []block
	cdf    []float64
}

// NewEncoder partitions data into OTI.SourceSymbols symbols of
// OTI.SymbolSize bytes (the final one zero-padded) and returns an Encoder
// ready to emit packets for them.
func NewEncoder(data []byte, oti ObjectTransmissionInformation) *Encoder {
	k := int(oti.SourceSymbols)
	blocks := make([]block, k)
	symbolSize := int(oti.SymbolSize)
	for i := 0; i < k; i++ {
		start := i * symbolSize
		end := start + symbolSize
		if start > len(data) {
			start = len(data)
		}
		if end > len(data) {
			end = len(data)
		}
		buf := make([]byte, symbolSize)
		copy(buf, data[start:end])
		blocks[i] = block{data: buf}
	}
	return &Encoder{oti: oti, blocks: blocks, cdf: degreeCDF(k)}
}

// SourceSymbols returns the number of systematic symbols this encoder will
// emit before any repair symbols.
func (e *Encoder) SourceSymbols() uint32 {
	return e.oti.SourceSymbols
}

// GetEncodedPackets returns SourceSymbols()+repair packets: the source
// symbols in order, followed by repair symbols, in emission order.
func (e *Encoder) GetEncodedPackets(repair uint32) []EncodingPacket {
	k := e.oti.SourceSymbols
	total := k + repair
	packets := make([]EncodingPacket, 0, total)

	for i := uint32(0); i < k; i++ {
		data := make([]byte, len(e.blocks[i].data))
		copy(data, e.blocks[i].data)
		packets = append(packets, EncodingPacket{Index: i, Data: data})
	}

	for i := k; i < total; i++ {
		indices := pickIndices(i, k, e.cdf)
		var acc block
		for _, idx := range indices {
			acc.xor(e.blocks[idx])
		}
		packets = append(packets, EncodingPacket{Index: i, Data: acc.data})
	}

	return packets
}

// Decoder accumulates packets produced by an Encoder constructed with the
// same OTI and reconstructs the original buffer once enough of them have
// been added.
type Decoder struct {
	oti    ObjectTransmissionInformation
	matrix sparseMatrix
	cdf    []float64
}

// NewDecoder creates a decoder for the object described by oti. oti must
// have been derived (directly or via DeserializeOTI) from the same source
// length and symbol size the corresponding Encoder used.
func NewDecoder(oti ObjectTransmissionInformation) *Decoder {
	k := int(oti.SourceSymbols)
	return &Decoder{
		oti:    oti,
		matrix: newSparseMatrix(k),
		cdf:    degreeCDF(k),
	}
}

// Decode feeds one packet into the decoder. It returns the reconstructed
// source buffer and true the first time enough packets have been seen to
// fully determine it; otherwise it returns (nil, false).
func (d *Decoder) Decode(packet EncodingPacket) ([]byte, bool) {
	k := d.oti.SourceSymbols
	indices := pickIndices(packet.Index, k, d.cdf)
	d.matrix.addEquation(indices, block{data: append([]byte(nil), packet.Data...)})

	if !d.matrix.determined() {
		return nil, false
	}

	d.matrix.reduce()

	out := make([]byte, 0, int(k)*int(d.oti.SymbolSize))
	for i := 0; i < int(k); i++ {
		out = append(out, d.matrix.v[i].data...)
	}
	if uint64(len(out)) > d.oti.TransferLength {
		out = out[:d.oti.TransferLength]
	}
	return out, true
}
