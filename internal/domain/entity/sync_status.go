package entity

import "time"

// SyncState estado del envío best-effort de una cotización al backend.
type SyncState string

const (
	SyncPending SyncState = "pending"
	SyncSynced  SyncState = "synced"
	SyncFailed  SyncState = "failed"
)

// SyncStatus resultado observable del envío. Error guarda el detalle técnico (solo logs/diagnóstico).
type SyncStatus struct {
	Code      string
	State     SyncState
	RemoteID  string
	Error     string
	UpdatedAt time.Time
}
