//go:build darwin

package helpers

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// GetTotalSystemMemoryMB returns the physical memory reported by hw.memsize.
func GetTotalSystemMemoryMB() (int, error) {
	size, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, fmt.Errorf("sysctl hw.memsize: %w", err)
	}
	return bytesToMB(size), nil
}
