package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notice is a persisted, user-facing notification. It is never updated after creation.
type Notice struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	VolunteerID uuid.UUID  `json:"volunteerId" db:"volunteer_id"`
	Title       string     `json:"title" db:"title"`
	Body        string     `json:"body" db:"body"`
	Type        NoticeType `json:"type" db:"type"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

type NoticeType string

const (
	NoticeSuccess NoticeType = "success"
	NoticeInfo    NoticeType = "info"
	NoticeWarning NoticeType = "warning"
	NoticeError   NoticeType = "error"
)
