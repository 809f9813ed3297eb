package helpers

import "fmt"

// Memory limit policy for the report process.
const (
	MemoryLimitFloorMB  = 512
	MemoryLimitFraction = 0.75
)

// GetRecommendedMemoryLimit returns a soft memory limit in MB: 75% of the
// memory available to the process, never below 512MB unless the machine
// itself is smaller. When the probe fails the floor is returned with the
// probe's error.
func GetRecommendedMemoryLimit() (int, error) {
	totalMB, err := GetTotalSystemMemoryMB()
	if err != nil {
		return MemoryLimitFloorMB, err
	}
	if totalMB <= 0 {
		return MemoryLimitFloorMB, fmt.Errorf("memory probe reported %dMB", totalMB)
	}
	return RecommendedLimitFor(totalMB), nil
}

// RecommendedLimitFor applies the limit policy to a known total.
func RecommendedLimitFor(totalMB int) int {
	limit := int(float64(totalMB) * MemoryLimitFraction)
	if limit < MemoryLimitFloorMB {
		if totalMB < MemoryLimitFloorMB {
			return totalMB
		}
		return MemoryLimitFloorMB
	}
	return limit
}

func bytesToMB(b uint64) int {
	return int(b >> 20)
}
