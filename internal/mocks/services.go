package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"volunteer-match/internal/bus"
	"volunteer-match/internal/domain"
	"volunteer-match/internal/service/auth"
)

type MatchingService struct {
	mock.Mock
}

func (m *MatchingService) ListVolunteers(ctx context.Context) ([]domain.VolunteerDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VolunteerDTO), args.Error(1)
}

func (m *MatchingService) ListEvents(ctx context.Context) ([]domain.EventDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventDTO), args.Error(1)
}

func (m *MatchingService) RankForVolunteer(ctx context.Context, volunteerID uuid.UUID, topN int) ([]domain.RankedEvent, error) {
	args := m.Called(ctx, volunteerID, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RankedEvent), args.Error(1)
}

func (m *MatchingService) Assign(ctx context.Context, volunteerID, eventID uuid.UUID) (*domain.AssignmentDTO, error) {
	args := m.Called(ctx, volunteerID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssignmentDTO), args.Error(1)
}

func (m *MatchingService) ListAssignments(ctx context.Context, volunteerID uuid.UUID) ([]domain.AssignmentDTO, error) {
	args := m.Called(ctx, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssignmentDTO), args.Error(1)
}

type EventService struct {
	mock.Mock
}

func (m *EventService) List(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *EventService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *EventService) Create(ctx context.Context, input domain.EventInput) (*domain.Event, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *EventService) Update(ctx context.Context, id uuid.UUID, input domain.EventInput) (*domain.Event, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) NotifyAssignment(ctx context.Context, volunteer *domain.VolunteerProfile, event *domain.Event) (*domain.Notice, error) {
	args := m.Called(ctx, volunteer, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notice), args.Error(1)
}

func (m *NotificationService) ListForVolunteer(ctx context.Context, volunteerID uuid.UUID, limit int) ([]domain.NoticePayload, error) {
	args := m.Called(ctx, volunteerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NoticePayload), args.Error(1)
}

func (m *NotificationService) Subscribe(ctx context.Context, volunteerID uuid.UUID, fn bus.Handler) (func(), error) {
	args := m.Called(ctx, volunteerID, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.Credential, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Credential), args.Get(1).(*domain.TokenPair), args.Error(2)
}

func (m *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.Credential, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Credential), args.Get(1).(*domain.TokenPair), args.Error(2)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *AuthService) ValidateAccessToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

type ProfileService struct {
	mock.Mock
}

func (m *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.VolunteerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerProfile), args.Error(1)
}

func (m *ProfileService) Update(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.VolunteerProfile, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerProfile), args.Error(1)
}

func (m *ProfileService) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, size int64, reader io.Reader) (*domain.VolunteerProfile, error) {
	args := m.Called(ctx, userID, contentType, size, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VolunteerProfile), args.Error(1)
}

type ReferenceService struct {
	mock.Mock
}

func (m *ReferenceService) ListStates(ctx context.Context) ([]domain.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.State), args.Error(1)
}
