package models

import "time"

// MServiceStatus is the health summary served by the HTTP and gRPC surfaces.
type MServiceStatus struct {
	Status              string    `json:"status"` // "ok", "degraded" or "starting"
	SnapshotID          string    `json:"snapshot_id,omitempty"`
	Generation          uint64    `json:"generation"`
	LastSuccess         time.Time `json:"last_success,omitempty"`
	LastError           string    `json:"last_error,omitempty"`
	LastErrorKind       string    `json:"last_error_kind,omitempty"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	HeapMB              float64   `json:"heap_mb"`
}
