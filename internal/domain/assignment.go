package domain

import (
	"time"

	"github.com/google/uuid"
)

// Assignment links a volunteer (by user id) to an event. Created once per
// assign call; there is no update or delete path.
type Assignment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	VolunteerID uuid.UUID `json:"volunteerId" db:"volunteer_id"`
	EventID     uuid.UUID `json:"eventId" db:"event_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type AssignInput struct {
	VolunteerID string `json:"volunteerId" validate:"required,uuid"`
	EventID     string `json:"eventId" validate:"required,uuid"`
}
