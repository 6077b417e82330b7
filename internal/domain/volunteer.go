package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type VolunteerProfile struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	UserID       uuid.UUID      `json:"userId" db:"user_id"`
	FullName     string         `json:"fullName" db:"full_name"`
	Address1     string         `json:"address1" db:"address1"`
	Address2     *string        `json:"address2,omitempty" db:"address2"`
	City         string         `json:"city" db:"city"`
	StateCode    string         `json:"stateCode" db:"state_code"`
	ZipCode      string         `json:"zipCode" db:"zip_code"`
	Skills       pq.StringArray `json:"skills" db:"skills"`
	Availability pq.StringArray `json:"availability" db:"availability"`
	Preferences  *string        `json:"preferences,omitempty" db:"preferences"`
	AvatarURL    *string        `json:"avatarUrl,omitempty" db:"avatar_url"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`
}

// Location renders "City, ST", dropping whichever part is blank.
func (v *VolunteerProfile) Location() string {
	city := strings.TrimSpace(v.City)
	state := strings.TrimSpace(v.StateCode)
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	}
	return state
}

type UpdateProfileInput struct {
	FullName     string   `json:"fullName" validate:"required,min=2,max=50"`
	Address1     string   `json:"address1" validate:"required,max=100"`
	Address2     *string  `json:"address2" validate:"omitempty,max=100"`
	City         string   `json:"city" validate:"required,max=100"`
	StateCode    string   `json:"stateCode" validate:"required,len=2,alpha"`
	ZipCode      string   `json:"zipCode" validate:"required,min=5,max=9,numeric"`
	Skills       []string `json:"skills" validate:"required,min=1,dive,required,max=50"`
	Availability []string `json:"availability" validate:"required,min=1,dive,datetime=2006-01-02"`
	Preferences  *string  `json:"preferences" validate:"omitempty,max=1000"`
}

func (in UpdateProfileInput) Apply(v *VolunteerProfile) {
	v.FullName = in.FullName
	v.Address1 = in.Address1
	v.Address2 = in.Address2
	v.City = in.City
	v.StateCode = strings.ToUpper(in.StateCode)
	v.ZipCode = in.ZipCode
	v.Skills = pq.StringArray(in.Skills)
	v.Availability = pq.StringArray(in.Availability)
	v.Preferences = in.Preferences
}

// State is a reference row for the address form.
type State struct {
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}
