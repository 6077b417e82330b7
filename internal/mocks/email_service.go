package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"volunteer-match/internal/service/email"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendAssignmentEmail(ctx context.Context, toEmail string, data email.AssignmentData) error {
	args := m.Called(ctx, toEmail, data)
	return args.Error(0)
}
