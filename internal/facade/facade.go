// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package facade exposes the processor's three unary operations
// (EncodeMetaData, Encode, Decode) over net/http with JSON request and
// reply bodies. It converts every domain error into a single opaque
// "internal" status, logging the full error and never transmitting it.
package facade

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pastelnetwork/rqservice/internal/config"
	"github.com/pastelnetwork/rqservice/internal/processor"
)

// Facade serves the three operations over HTTP. Each request constructs
// its own Processor; the Facade itself holds only the codec configuration
// and a logger, and is safe for concurrent use.
type Facade struct {
	cfg    config.Settings
	logger *log.Logger
}

// New builds a Facade bound to cfg, logging rejected requests and internal
// errors through logger.
func New(cfg config.Settings, logger *log.Logger) *Facade {
	return &Facade{cfg: cfg, logger: logger}
}

// EncodeMetaDataRequest is the wire request for the EncodeMetaData
// operation.
type EncodeMetaDataRequest struct {
	Path        string `json:"path"`
	FilesNumber int    `json:"files_number"`
	BlockHash   string `json:"block_hash"`
	PastelID    string `json:"pastel_id"`
}

// EncodeMetaDataReply mirrors rqserver.rs's EncodeMetaDataReply.
type EncodeMetaDataReply struct {
	EncoderParameters []byte `json:"encoder_parameters"`
	SymbolsCount      uint32 `json:"symbols_count"`
	Path              string `json:"path"`
}

// EncodeRequest is the wire request for the Encode operation.
type EncodeRequest struct {
	Path string `json:"path"`
}

// EncodeReply mirrors rqserver.rs's EncodeReply.
type EncodeReply struct {
	EncoderParameters []byte `json:"encoder_parameters"`
	SymbolsCount      uint32 `json:"symbols_count"`
	Path              string `json:"path"`
}

// DecodeRequest is the wire request for the Decode operation.
type DecodeRequest struct {
	EncoderParameters []byte `json:"encoder_parameters"`
	Path              string `json:"path"`
}

// DecodeReply mirrors rqserver.rs's DecodeReply.
type DecodeReply struct {
	Path string `json:"path"`
}

// errorReply is the single opaque status returned for every domain or
// decoding failure; no error detail crosses the wire.
type errorReply struct {
	Status string `json:"status"`
}

func writeInternal(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errorReply{Status: "internal"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Handler returns the http.Handler serving all three operations.
func (f *Facade) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/encode-metadata", f.handleEncodeMetaData)
	mux.HandleFunc("/v1/encode", f.handleEncode)
	mux.HandleFunc("/v1/decode", f.handleDecode)
	return mux
}

func (f *Facade) handleEncodeMetaData(w http.ResponseWriter, r *http.Request) {
	var req EncodeMetaDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		f.logger.Printf("encode-metadata: malformed request: %v", err)
		writeInternal(w)
		return
	}

	p := processor.New(f.cfg.SymbolSize, f.cfg.RedundancyFactor)
	meta, path, err := p.CreateMetadata(req.Path, req.FilesNumber, req.BlockHash, req.PastelID)
	if err != nil {
		f.logger.Printf("encode-metadata: %v", err)
		writeInternal(w)
		return
	}

	writeJSON(w, EncodeMetaDataReply{
		EncoderParameters: meta.EncoderParameters,
		SymbolsCount:      meta.SourceSymbols + meta.RepairSymbols,
		Path:              path,
	})
}

func (f *Facade) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		f.logger.Printf("encode: malformed request: %v", err)
		writeInternal(w)
		return
	}

	p := processor.New(f.cfg.SymbolSize, f.cfg.RedundancyFactor)
	meta, path, err := p.Encode(req.Path)
	if err != nil {
		f.logger.Printf("encode: %v", err)
		writeInternal(w)
		return
	}

	writeJSON(w, EncodeReply{
		EncoderParameters: meta.EncoderParameters,
		SymbolsCount:      meta.SourceSymbols + meta.RepairSymbols,
		Path:              path,
	})
}

func (f *Facade) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		f.logger.Printf("decode: malformed request: %v", err)
		writeInternal(w)
		return
	}

	p := processor.New(f.cfg.SymbolSize, f.cfg.RedundancyFactor)
	path, err := p.Decode(req.EncoderParameters, req.Path)
	if err != nil {
		f.logger.Printf("decode: %v", err)
		writeInternal(w)
		return
	}

	writeJSON(w, DecodeReply{Path: path})
}
