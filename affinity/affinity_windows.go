//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// License: Apache-2.0
//
// Windows implementation via SetThreadAffinityMask on the current thread.

package affinity

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinity = kernel32.NewProc("SetThreadAffinityMask")
)

// pinPlatform sets thread affinity to a given CPU for Windows.
func pinPlatform(cpuID int) error {
	if cpuID < 0 || cpuID > 63 {
		return fmt.Errorf("affinity: cpu %d outside mask range", cpuID)
	}
	mask := uintptr(1) << uint(cpuID)
	thread := windows.CurrentThread()
	ret, _, err := procSetThreadAffinity.Call(uintptr(thread), mask)
	if ret == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask(cpu %d): %w", cpuID, err)
	}
	return nil
}
