// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func u16(v uint16) *uint16  { return &v }
func str(v string) *string { return &v }

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestResolveNoFileNoCommandLine(t *testing.T) {
	_, err := Resolve("", Overrides{})
	if err == nil {
		t.Fatal("expected an error when grpc-service is never set")
	}
}

func TestResolveFileButNoCommandLine(t *testing.T) {
	path := writeTempConfig(t, `{"grpc-service":"127.0.0.1:4444","symbol-size":1000,"redundancy-factor":5}`)

	got, err := Resolve(path, Overrides{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.GRPCService != "127.0.0.1:4444" || got.SymbolSize != 1000 || got.RedundancyFactor != 5 {
		t.Fatalf("unexpected settings from file: %+v", got)
	}
}

func TestResolveCommandLineButNoFile(t *testing.T) {
	got, err := Resolve("", Overrides{GRPCService: str("0.0.0.0:9999")})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.GRPCService != "0.0.0.0:9999" {
		t.Fatalf("expected command-line bind address to be used, got %+v", got)
	}
	if got.SymbolSize != DefaultSymbolSize || got.RedundancyFactor != DefaultRedundancyFactor {
		t.Fatalf("expected defaults for unset options, got %+v", got)
	}
}

func TestResolveCommandLineOverridesFile(t *testing.T) {
	path := writeTempConfig(t, `{"grpc-service":"127.0.0.1:1111","symbol-size":2000,"redundancy-factor":3}`)

	got, err := Resolve(path, Overrides{
		GRPCService: str("127.0.0.1:2222"),
		SymbolSize:  u16(7000),
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.GRPCService != "127.0.0.1:2222" {
		t.Fatalf("expected command-line value to win over file, got %q", got.GRPCService)
	}
	if got.SymbolSize != 7000 {
		t.Fatalf("expected command-line symbol-size to win over file, got %d", got.SymbolSize)
	}
	if got.RedundancyFactor != 3 {
		t.Fatalf("expected file value to survive when command line leaves it unset, got %d", got.RedundancyFactor)
	}
}

func TestResolveMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := Resolve(missing, Overrides{GRPCService: str("x:1")}); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
