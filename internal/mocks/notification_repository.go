package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"volunteer-match/internal/domain"
)

type NoticeRepository struct {
	mock.Mock
}

func (m *NoticeRepository) Create(ctx context.Context, notice *domain.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *NoticeRepository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, limit int) ([]domain.Notice, error) {
	args := m.Called(ctx, volunteerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notice), args.Error(1)
}
