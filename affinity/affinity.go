// File: affinity/affinity.go
// License: Apache-2.0
//
// Platform-neutral API for CPU affinity. Platform-specific implementations
// live in affinity_linux.go, affinity_windows.go and affinity_stub.go,
// guarded by build tags. Callers must hold runtime.LockOSThread for the
// pin to mean anything.

package affinity

// Pin binds the current OS thread to a given logical CPU on supported
// platforms. On unsupported platforms it returns an error.
func Pin(cpuID int) error {
	return pinPlatform(cpuID)
}
