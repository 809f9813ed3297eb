//go:build windows

package helpers

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var procGlobalMemoryStatusEx = windows.NewLazySystemDLL("kernel32.dll").NewProc("GlobalMemoryStatusEx")

// memoryStatusEx mirrors MEMORYSTATUSEX.
type memoryStatusEx struct {
	length               uint32
	memoryLoad           uint32
	totalPhys            uint64
	availPhys            uint64
	totalPageFile        uint64
	availPageFile        uint64
	totalVirtual         uint64
	availVirtual         uint64
	availExtendedVirtual uint64
}

// GetTotalSystemMemoryMB returns the physical memory from GlobalMemoryStatusEx.
func GetTotalSystemMemoryMB() (int, error) {
	if err := procGlobalMemoryStatusEx.Find(); err != nil {
		return 0, fmt.Errorf("GlobalMemoryStatusEx: %w", err)
	}

	status := memoryStatusEx{}
	status.length = uint32(unsafe.Sizeof(status))
	ok, _, callErr := procGlobalMemoryStatusEx.Call(uintptr(unsafe.Pointer(&status)))
	if ok == 0 {
		return 0, fmt.Errorf("GlobalMemoryStatusEx: %w", callErr)
	}
	return bytesToMB(status.totalPhys), nil
}
