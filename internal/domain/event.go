package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// Ordinal ranks urgency levels from 1 (Low) to 4 (Critical); unknown levels are 0.
func (u Urgency) Ordinal() int {
	switch u {
	case UrgencyLow:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyHigh:
		return 3
	case UrgencyCritical:
		return 4
	}
	return 0
}

type Event struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Description    string         `json:"description" db:"description"`
	Location       string         `json:"location" db:"location"`
	RequiredSkills pq.StringArray `json:"requiredSkills" db:"required_skills"`
	Urgency        Urgency        `json:"urgency" db:"urgency"`
	Date           Date           `json:"date" db:"event_date"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

type EventInput struct {
	Name           string   `json:"name" validate:"required,max=100"`
	Description    string   `json:"description" validate:"required,max=1000"`
	Location       string   `json:"location" validate:"required,max=200"`
	RequiredSkills []string `json:"requiredSkills" validate:"required,min=1,dive,required,max=50"`
	Urgency        Urgency  `json:"urgency" validate:"required,oneof=Low Medium High Critical"`
	Date           string   `json:"date" validate:"required,datetime=2006-01-02"`
}

// Apply copies the input onto e. The date must already have passed validation.
func (in EventInput) Apply(e *Event) error {
	date, err := ParseDate(in.Date)
	if err != nil {
		return err
	}
	e.Name = in.Name
	e.Description = in.Description
	e.Location = in.Location
	e.RequiredSkills = pq.StringArray(in.RequiredSkills)
	e.Urgency = in.Urgency
	e.Date = date
	return nil
}
