package amqp

import (
	"encoding/json"
	"time"
)

// SnapshotSyncMessage tells the export worker that a fresh snapshot for a
// login is in the store. It carries only the login and fetch time; the
// worker reloads the snapshot from storage.
type SnapshotSyncMessage struct {
	Login     string    `json:"login"`
	FetchedAt time.Time `json:"fetchedAt"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSnapshotSyncMessage(login string, fetchedAt time.Time) *SnapshotSyncMessage {
	return &SnapshotSyncMessage{
		Login:     login,
		FetchedAt: fetchedAt,
		Timestamp: time.Now(),
	}
}

func (m *SnapshotSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SnapshotSyncMessageFromJSON(data []byte) (*SnapshotSyncMessage, error) {
	var msg SnapshotSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
