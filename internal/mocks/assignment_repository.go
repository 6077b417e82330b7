package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"volunteer-match/internal/domain"
)

type AssignmentRepository struct {
	mock.Mock
}

func (m *AssignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *AssignmentRepository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]domain.Assignment, error) {
	args := m.Called(ctx, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assignment), args.Error(1)
}
