// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

//go:build windows

package config

import (
	"errors"
	"os"
	"path/filepath"
)

// PlatformDirectory returns the Pastel directory under the user's roaming
// AppData, creating it if it does not yet exist.
func PlatformDirectory() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return "", errors.New("%APPDATA% is not set")
	}
	dir := filepath.Join(appData, "Pastel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
