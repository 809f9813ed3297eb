//go:build linux

package helpers

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// cgroup files holding the container memory cap, v2 first.
var cgroupLimitFiles = []string{
	"/sys/fs/cgroup/memory.max",
	"/sys/fs/cgroup/memory/memory.limit_in_bytes",
}

// GetTotalSystemMemoryMB returns the memory the process may use: physical
// RAM, lowered to the cgroup cap when running in a constrained container.
func GetTotalSystemMemoryMB() (int, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, fmt.Errorf("sysinfo: %w", err)
	}
	total := uint64(info.Totalram) * uint64(info.Unit)

	for _, path := range cgroupLimitFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if limit, ok := parseCgroupLimit(string(data)); ok && limit < total {
			total = limit
		}
		break
	}
	return bytesToMB(total), nil
}

// parseCgroupLimit reads a memory.max style value. "max" and empty mean no
// cap.
func parseCgroupLimit(raw string) (uint64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "max" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}
