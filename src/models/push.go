package models

// MPushMessage is one websocket frame sent to a client.
type MPushMessage struct {
	Type       string `json:"type"` // INITIAL, UPDATE, VIEW or ERROR
	SnapshotID string `json:"snapshot_id,omitempty"`
	View       string `json:"view,omitempty"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

// MClientCommand is a request sent by a websocket client, e.g.
// {"command": "get", "view": "products", "order": "sales_asc"}.
type MClientCommand struct {
	Command string `json:"command"`
	View    string `json:"view"`
	Order   string `json:"order,omitempty"`
}
