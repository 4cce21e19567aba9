package models

import (
	"encoding/json"
	"time"
)

// RecordResponse is the server's reply to a record fetch or upsert.
// Record holds the per-namespace raw envelopes; UpdatedAt is the
// server-maintained modification time of the whole record.
type RecordResponse struct {
	Record    map[string]json.RawMessage `json:"record"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// PutRecordRequest carries a full merged record to the server.
//
// The client performs the read-merge-write itself: it fetches the current
// record, replaces only its own namespace key, and sends the whole map back.
// DeviceID identifies the writing client instance and is echoed in change
// notifications so other sessions can attribute the write.
type PutRecordRequest struct {
	Record   map[string]json.RawMessage `json:"record"`
	DeviceID string                     `json:"device_id"`
}

// Notification types pushed over the live channel.
const (
	NotificationRecordUpdated = "record_updated"
	NotificationHello         = "hello"
)

// SyncNotification is the message broadcast to a user's connected sessions
// after that user's record changes.
type SyncNotification struct {
	Type      string                     `json:"type"`
	DeviceID  string                     `json:"device_id,omitempty"`
	Record    map[string]json.RawMessage `json:"record,omitempty"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// RemoteRecordOf assembles a RemoteRecord view from notification content so
// subscribers reuse the same envelope extraction as the reconciler.
func (n SyncNotification) RemoteRecordOf() RemoteRecord {
	return RemoteRecord{Namespaces: n.Record, UpdatedAt: n.UpdatedAt}
}
