// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package facade

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pastelnetwork/rqservice/internal/config"
)

func newTestFacade() *Facade {
	cfg := config.Settings{GRPCService: "127.0.0.1:0", SymbolSize: 64, RedundancyFactor: 4}
	return New(cfg, log.New(os.Stderr, "", 0))
}

func TestFacadeEncodeThenDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "input.bin")
	payload := bytes.Repeat([]byte("pastel-raptorq-"), 50)
	if err := os.WriteFile(source, payload, 0o644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	f := newTestFacade()
	srv := httptest.NewServer(f.Handler())
	defer srv.Close()

	encodeBody, _ := json.Marshal(EncodeRequest{Path: source})
	resp, err := srv.Client().Post(srv.URL+"/v1/encode", "application/json", bytes.NewReader(encodeBody))
	if err != nil {
		t.Fatalf("encode request failed: %v", err)
	}
	defer resp.Body.Close()

	var encodeReply EncodeReply
	if err := json.NewDecoder(resp.Body).Decode(&encodeReply); err != nil {
		t.Fatalf("decoding encode reply: %v", err)
	}
	if encodeReply.Path == "" || len(encodeReply.EncoderParameters) != 12 {
		t.Fatalf("unexpected encode reply: %+v", encodeReply)
	}

	decodeBody, _ := json.Marshal(DecodeRequest{
		EncoderParameters: encodeReply.EncoderParameters,
		Path:              encodeReply.Path,
	})
	resp2, err := srv.Client().Post(srv.URL+"/v1/decode", "application/json", bytes.NewReader(decodeBody))
	if err != nil {
		t.Fatalf("decode request failed: %v", err)
	}
	defer resp2.Body.Close()

	var decodeReply DecodeReply
	if err := json.NewDecoder(resp2.Body).Decode(&decodeReply); err != nil {
		t.Fatalf("decoding decode reply: %v", err)
	}

	restored, err := os.ReadFile(decodeReply.Path)
	if err != nil {
		t.Fatalf("reading restored file: %v", err)
	}
	if !bytes.Equal(restored, payload) {
		t.Fatalf("restored bytes do not match original payload")
	}
}

func TestFacadeDecodeEmptyPathReturnsOpaqueInternal(t *testing.T) {
	f := newTestFacade()
	srv := httptest.NewServer(f.Handler())
	defer srv.Close()

	body, _ := json.Marshal(DecodeRequest{EncoderParameters: []byte{0}, Path: ""})
	resp, err := srv.Client().Post(srv.URL+"/v1/decode", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decode request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 500 {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var reply errorReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decoding error reply: %v", err)
	}
	if reply.Status != "internal" {
		t.Fatalf("expected opaque internal status, got %q", reply.Status)
	}
}
