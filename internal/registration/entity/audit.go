package entity

import "time"

// AuditLog is an append-only trail entry recorded from domain events.
type AuditLog struct {
	ID        int64
	AccountID int64
	Event     string
	Detail    string
	CreatedAt time.Time
}
