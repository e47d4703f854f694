package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditApprove   AuditAction = "APPROVE"
	AuditDelete    AuditAction = "DELETE"
	AuditBroadcast AuditAction = "BROADCAST"
)

type AuditTargetType string

const (
	TargetUser         AuditTargetType = "USER"
	TargetFlat         AuditTargetType = "FLAT"
	TargetNotification AuditTargetType = "NOTIFICATION"
)

// AdminAuditLog records one moderation action.
type AdminAuditLog struct {
	ID         uuid.UUID       `json:"id"`
	AdminID    uuid.UUID       `json:"admin_id"`
	Action     AuditAction     `json:"action"`
	TargetID   uuid.UUID       `json:"target_id"`
	TargetType AuditTargetType `json:"target_type"`
	Details    json.RawMessage `json:"details,omitempty"` // JSONB
	CreatedAt  time.Time       `json:"created_at"`
}
