package domain

import "errors"

var (
	ErrVolunteerNotFound  = errors.New("volunteer not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrCredentialNotFound = errors.New("credential not found")

	ErrUnknownState        = errors.New("unknown state code")
	ErrEventHasAssignments = errors.New("event has assignments")
)
