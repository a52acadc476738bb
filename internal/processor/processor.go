// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package processor is the orchestration core of the service: it composes
// the FEC codec adapter, the identifier function, the repair count policy
// and a manifest serializer against the filesystem. A Processor is a value
// constructed fresh for every call; it holds no state beyond its codec
// configuration and shares nothing between operations.
package processor

import (
	"os"
	"path/filepath"

	"github.com/pastelnetwork/rqservice/internal/fec"
	"github.com/pastelnetwork/rqservice/internal/manifest"
	"github.com/pastelnetwork/rqservice/internal/policy"
	"github.com/pastelnetwork/rqservice/internal/rqerr"
	"github.com/pastelnetwork/rqservice/internal/rqid"
)

const (
	metaSubdir    = "meta"
	symbolsSubdir = "symbols"
	restoredName  = "restored_file"

	dirPerm  = 0o755
	filePerm = 0o644
)

// CodecConfig is the immutable pair of parameters a Processor is built
// with: the per-symbol size and the target redundancy multiplier.
type CodecConfig struct {
	SymbolSize       uint16
	RedundancyFactor uint8
}

// Processor runs the three RaptorQ operations against a codec
// configuration. It carries no other state.
type Processor struct {
	cfg CodecConfig
}

// New constructs a Processor for one operation.
func New(symbolSize uint16, redundancyFactor uint8) *Processor {
	return &Processor{cfg: CodecConfig{SymbolSize: symbolSize, RedundancyFactor: redundancyFactor}}
}

// EncoderMetaData is returned by CreateMetadata and Encode: the serialized
// OTI plus the source/repair symbol counts the encoder produced.
type EncoderMetaData struct {
	EncoderParameters []byte
	SourceSymbols     uint32
	RepairSymbols     uint32
}

// encodeResult bundles the pieces shared by CreateMetadata and Encode: both
// read the source file, build an encoder, and enumerate every packet with
// its identifier before diverging on what they write to disk.
type encodeResult struct {
	oti     fec.ObjectTransmissionInformation
	packets []fec.EncodingPacket
	names   []string
	repair  uint32
}

func (p *Processor) prepare(op, path string) (encodeResult, error) {
	if path == "" {
		return encodeResult{}, rqerr.New(op, rqerr.InvalidArgument, "path must not be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return encodeResult{}, rqerr.WrapPath(op, rqerr.FilesystemRead, "could not read source file", path, err)
	}

	oti := fec.NewOTI(uint64(len(data)), p.cfg.SymbolSize)
	enc := fec.NewEncoder(data, oti)

	repair := policy.RepairSymbols(p.cfg.SymbolSize, p.cfg.RedundancyFactor, uint64(len(data)))
	packets := enc.GetEncodedPackets(repair)

	names := make([]string, len(packets))
	for i, pkt := range packets {
		names[i] = rqid.For(pkt.Serialize())
	}

	return encodeResult{oti: oti, packets: packets, names: names, repair: repair}, nil
}

// resolveSibling returns the directory adjacent to path named subdir,
// failing if path has no parent component to be a sibling of.
func resolveSibling(op, path, subdir string) (string, error) {
	parent := filepath.Dir(path)
	if parent == path {
		return "", rqerr.New(op, rqerr.PathResolution, "path has no parent: "+path)
	}
	return filepath.Join(parent, subdir), nil
}

// CreateMetadata implements §4.4: it runs the encoder over path and writes
// filesNumber manifest replicas, all sharing the same symbol_identifiers,
// each named by its own fresh GUID under the sibling "meta" directory.
func (p *Processor) CreateMetadata(path string, filesNumber int, blockHash, pastelID string) (EncoderMetaData, string, error) {
	const op = "create_metadata"

	res, err := p.prepare(op, path)
	if err != nil {
		return EncoderMetaData{}, "", err
	}

	outDir, err := resolveSibling(op, path, metaSubdir)
	if err != nil {
		return EncoderMetaData{}, "", err
	}
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return EncoderMetaData{}, "", rqerr.WrapPath(op, rqerr.FilesystemWrite, "could not create meta directory", outDir, err)
	}

	for i := 0; i < filesNumber; i++ {
		m := manifest.New(blockHash, pastelID, res.names)
		body, err := m.Marshal()
		if err != nil {
			return EncoderMetaData{}, "", rqerr.Wrap(op, rqerr.SerializationFailure, "could not serialize manifest", err)
		}
		manifestPath := filepath.Join(outDir, m.ID)
		if err := os.WriteFile(manifestPath, body, filePerm); err != nil {
			return EncoderMetaData{}, "", rqerr.WrapPath(op, rqerr.FilesystemWrite, "could not write manifest", manifestPath, err)
		}
	}

	oti := res.oti.Serialize()
	meta := EncoderMetaData{
		EncoderParameters: oti[:],
		SourceSymbols:     res.oti.SourceSymbols,
		RepairSymbols:     res.repair,
	}
	return meta, outDir, nil
}

// Encode implements §4.5: it runs the encoder over path and writes every
// packet's raw serialized bytes to a file named by its symbol identifier,
// under the sibling "symbols" directory.
func (p *Processor) Encode(path string) (EncoderMetaData, string, error) {
	const op = "encode"

	res, err := p.prepare(op, path)
	if err != nil {
		return EncoderMetaData{}, "", err
	}

	outDir, err := resolveSibling(op, path, symbolsSubdir)
	if err != nil {
		return EncoderMetaData{}, "", err
	}
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return EncoderMetaData{}, "", rqerr.WrapPath(op, rqerr.FilesystemWrite, "could not create symbols directory", outDir, err)
	}

	for i, pkt := range res.packets {
		symbolPath := filepath.Join(outDir, res.names[i])
		if err := os.WriteFile(symbolPath, pkt.Serialize(), filePerm); err != nil {
			return EncoderMetaData{}, "", rqerr.WrapPath(op, rqerr.FilesystemWrite, "could not write symbol", symbolPath, err)
		}
	}

	oti := res.oti.Serialize()
	meta := EncoderMetaData{
		EncoderParameters: oti[:],
		SourceSymbols:     res.oti.SourceSymbols,
		RepairSymbols:     res.repair,
	}
	return meta, outDir, nil
}

// Decode implements §4.6: it feeds every file under path's directory, in
// whatever order the filesystem yields them, into a fresh Decoder built
// from encoderParameters, stopping at the first packet that completes
// reconstruction and writing the restored bytes to a sibling "restored_file".
func (p *Processor) Decode(encoderParameters []byte, path string) (string, error) {
	const op = "decode"

	if path == "" {
		return "", rqerr.New(op, rqerr.InvalidArgument, "path must not be empty")
	}
	if len(encoderParameters) == 0 {
		return "", rqerr.New(op, rqerr.InvalidArgument, "encoder parameters must not be empty")
	}

	oti := fec.DeserializeOTI(encoderParameters)
	dec := fec.NewDecoder(oti)

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", rqerr.WrapPath(op, rqerr.FilesystemRead, "could not read symbols directory", path, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		entryPath := filepath.Join(path, entry.Name())
		body, err := os.ReadFile(entryPath)
		if err != nil {
			return "", rqerr.WrapPath(op, rqerr.FilesystemRead, "could not read symbol", entryPath, err)
		}
		pkt, ok := fec.DeserializeEncodingPacket(body)
		if !ok {
			return "", rqerr.WrapPath(op, rqerr.FilesystemRead, "malformed symbol packet", entryPath, nil)
		}

		restored, complete := dec.Decode(pkt)
		if complete {
			outPath, err := resolveSibling(op, path, restoredName)
			if err != nil {
				return "", err
			}
			if err := os.WriteFile(outPath, restored, filePerm); err != nil {
				return "", rqerr.WrapPath(op, rqerr.FilesystemWrite, "could not write restored file", outPath, err)
			}
			return outPath, nil
		}
	}

	return "", rqerr.New(op, rqerr.DecodeExhausted, "cannot restore the original file from symbols at "+path)
}
