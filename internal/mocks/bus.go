package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"volunteer-match/internal/bus"
	"volunteer-match/internal/domain"
)

type Bus struct {
	mock.Mock
}

func (m *Bus) Publish(ctx context.Context, channel string, payload domain.NoticePayload) (int, error) {
	args := m.Called(ctx, channel, payload)
	return args.Int(0), args.Error(1)
}

func (m *Bus) Subscribe(ctx context.Context, channel string, handler bus.Handler) (func(), error) {
	args := m.Called(ctx, channel, handler)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

func (m *Bus) Close() error {
	return m.Called().Error(0)
}
