// Copyright (c) 2021-2021 The Pastel Core developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

//go:build !linux && !darwin && !windows

package config

import (
	"fmt"
	"runtime"
)

// PlatformDirectory reports an error on every platform this service does
// not recognize; callers are expected to treat this as a fatal startup
// condition.
func PlatformDirectory() (string, error) {
	return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
}
