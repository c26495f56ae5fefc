//go:build !linux && !windows
// +build !linux,!windows

// File: affinity/affinity_stub.go
// License: Apache-2.0
//
// Stub implementation for unsupported platforms.

package affinity

import "errors"

// pinPlatform is a stub for platforms where CPU affinity is not supported.
func pinPlatform(cpuID int) error {
	return errors.New("affinity: not supported on this platform")
}
