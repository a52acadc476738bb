// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package config resolves the service's three recognized options
// (grpc-service, symbol-size, redundancy-factor) with command-line > config
// file > built-in default precedence, and locates the per-OS directory the
// service logs to.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	// DefaultSymbolSize is the per-symbol byte count used when neither the
	// command line nor a config file sets symbol-size.
	DefaultSymbolSize uint16 = 50000
	// DefaultRedundancyFactor is the target redundancy multiplier used when
	// neither the command line nor a config file sets redundancy-factor.
	DefaultRedundancyFactor uint8 = 12
)

// Settings is the fully resolved set of service options.
type Settings struct {
	GRPCService      string
	SymbolSize       uint16
	RedundancyFactor uint8
}

// Defaults returns the built-in settings with no bind address configured;
// GRPCService is required and has no usable default.
func Defaults() Settings {
	return Settings{
		SymbolSize:       DefaultSymbolSize,
		RedundancyFactor: DefaultRedundancyFactor,
	}
}

// fileSettings mirrors Settings but with pointer fields, so that decoding a
// partial JSON document can distinguish "absent" from "explicitly zero".
type fileSettings struct {
	GRPCService      *string `json:"grpc-service"`
	SymbolSize       *uint16 `json:"symbol-size"`
	RedundancyFactor *uint8  `json:"redundancy-factor"`
}

// loadFile reads and decodes the JSON config file at path.
func loadFile(path string) (fileSettings, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileSettings{}, err
	}
	defer f.Close()

	var fs fileSettings
	if err := json.NewDecoder(f).Decode(&fs); err != nil {
		return fileSettings{}, err
	}
	return fs, nil
}

// Overrides holds the command-line values that were explicitly set; nil
// fields mean "not set on the command line" and fall through to the config
// file or default.
type Overrides struct {
	GRPCService      *string
	SymbolSize       *uint16
	RedundancyFactor *uint8
}

// Resolve builds the final Settings with command-line > config file >
// default precedence. configPath is ignored if empty. A field set in the
// config file overrides the built-in default, and a value explicitly
// passed on the command line overrides whatever the config file contains.
func Resolve(configPath string, overrides Overrides) (Settings, error) {
	settings := Defaults()

	if configPath != "" {
		fs, err := loadFile(configPath)
		if err != nil {
			return Settings{}, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
		if fs.GRPCService != nil {
			settings.GRPCService = *fs.GRPCService
		}
		if fs.SymbolSize != nil {
			settings.SymbolSize = *fs.SymbolSize
		}
		if fs.RedundancyFactor != nil {
			settings.RedundancyFactor = *fs.RedundancyFactor
		}
	}

	if overrides.GRPCService != nil {
		settings.GRPCService = *overrides.GRPCService
	}
	if overrides.SymbolSize != nil {
		settings.SymbolSize = *overrides.SymbolSize
	}
	if overrides.RedundancyFactor != nil {
		settings.RedundancyFactor = *overrides.RedundancyFactor
	}

	if settings.GRPCService == "" {
		return Settings{}, fmt.Errorf("grpc-service is required")
	}
	return settings, nil
}
