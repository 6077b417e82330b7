package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"volunteer-match/internal/domain"
)

type StateRepository struct {
	mock.Mock
}

func (m *StateRepository) Upsert(ctx context.Context, state domain.State) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *StateRepository) List(ctx context.Context) ([]domain.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.State), args.Error(1)
}
