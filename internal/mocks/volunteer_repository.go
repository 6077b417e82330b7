package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/repository"
)

type VolunteerRepository struct {
	mock.Mock
}

func (m *VolunteerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.VolunteerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerProfile), args.Error(1)
}

func (m *VolunteerRepository) List(ctx context.Context) ([]domain.VolunteerProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VolunteerProfile), args.Error(1)
}

func (m *VolunteerRepository) Upsert(ctx context.Context, profile *domain.VolunteerProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *VolunteerRepository) Update(ctx context.Context, profile *domain.VolunteerProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *VolunteerRepository) SetAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

// WithTx returns the same mock so expectations set on it cover the tx-bound calls.
func (m *VolunteerRepository) WithTx(tx *sqlx.Tx) repository.VolunteerRepository {
	return m
}
