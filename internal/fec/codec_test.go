// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package fec

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestOTISerializeRoundTrip(t *testing.T) {
	oti := NewOTI(10_000_000, 50000)
	wire := oti.Serialize()
	if len(wire) != 12 {
		t.Fatalf("expected a 12-byte OTI, got %d", len(wire))
	}

	got := DeserializeOTI(wire[:])
	if got != oti {
		t.Fatalf("OTI did not round-trip: got %+v, want %+v", got, oti)
	}
}

func TestOTISourceSymbolCount(t *testing.T) {
	cases := []struct {
		length uint64
		want   uint32
	}{
		{10000, 1},
		{10_000_000, 200},
		{10_000_001, 201},
	}
	for _, c := range cases {
		oti := NewOTI(c.length, 50000)
		if oti.SourceSymbols != c.want {
			t.Fatalf("length %d: got %d source symbols, want %d", c.length, oti.SourceSymbols, c.want)
		}
	}
}

func TestEncodingPacketSerializeRoundTrip(t *testing.T) {
	p := EncodingPacket{Index: 42, Data: []byte("some symbol bytes")}
	got, ok := DeserializeEncodingPacket(p.Serialize())
	if !ok {
		t.Fatal("DeserializeEncodingPacket reported failure for a well-formed packet")
	}
	if got.Index != p.Index || !bytes.Equal(got.Data, p.Data) {
		t.Fatalf("packet did not round-trip: got %+v, want %+v", got, p)
	}
}

func TestEncodeDecodeRoundTripWithOnlySourceSymbols(t *testing.T) {
	data := bytes.Repeat([]byte("raptorq"), 200)
	oti := NewOTI(uint64(len(data)), 32)
	enc := NewEncoder(data, oti)

	packets := enc.GetEncodedPackets(0)
	if uint32(len(packets)) != enc.SourceSymbols() {
		t.Fatalf("expected exactly %d systematic packets, got %d", enc.SourceSymbols(), len(packets))
	}

	dec := NewDecoder(oti)
	var restored []byte
	var complete bool
	for _, p := range packets {
		restored, complete = dec.Decode(p)
		if complete {
			break
		}
	}
	if !complete {
		t.Fatal("decoder never reached completion with every systematic symbol present")
	}
	if !bytes.Equal(restored, data) {
		t.Fatal("restored bytes do not match the original source buffer")
	}
}

func TestEncodeDecodeRoundTripWithRepairSymbolsAfterLoss(t *testing.T) {
	data := make([]byte, 20000)
	rand.New(rand.NewSource(1)).Read(data)

	oti := NewOTI(uint64(len(data)), 50)
	enc := NewEncoder(data, oti)
	packets := enc.GetEncodedPackets(enc.SourceSymbols())

	// Drop every third systematic packet and feed the decoder only the
	// survivors plus the repair packets, mirroring a lossy transport.
	dec := NewDecoder(oti)
	var restored []byte
	var complete bool
	for i, p := range packets {
		if i < int(enc.SourceSymbols()) && i%3 == 0 {
			continue
		}
		restored, complete = dec.Decode(p)
		if complete {
			break
		}
	}
	if !complete {
		t.Fatal("decoder failed to reconstruct despite sufficient repair symbols")
	}
	if !bytes.Equal(restored, data) {
		t.Fatal("restored bytes do not match the original source buffer")
	}
}
