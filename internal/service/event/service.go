package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/repository"
)

const (
	listCacheKey = "events:all"
	listCacheTTL = 5 * time.Minute
)

type Service interface {
	List(ctx context.Context) ([]domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Create(ctx context.Context, input domain.EventInput) (*domain.Event, error)
	Update(ctx context.Context, id uuid.UUID, input domain.EventInput) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	eventRepo repository.EventRepository
	redis     *redis.Client
}

// NewService builds the event service. A nil redis client disables caching.
func NewService(eventRepo repository.EventRepository, redis *redis.Client) Service {
	return &service{
		eventRepo: eventRepo,
		redis:     redis,
	}
}

func (s *service) List(ctx context.Context) ([]domain.Event, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, listCacheKey).Result(); err == nil {
			var events []domain.Event
			if json.Unmarshal([]byte(cached), &events) == nil {
				return events, nil
			}
		}
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	if s.redis != nil {
		if data, err := json.Marshal(events); err == nil {
			_ = s.redis.Set(ctx, listCacheKey, data, listCacheTTL).Err()
		}
	}

	return events, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *service) Create(ctx context.Context, input domain.EventInput) (*domain.Event, error) {
	event := &domain.Event{ID: uuid.New()}
	if err := input.Apply(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidate(ctx)
	return event, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.EventInput) (*domain.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := input.Apply(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return event, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		return domain.ErrEventNotFound
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, listCacheKey).Err()
	}
}
