package reference

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/repository"
)

const statesCacheKey = "reference:states"

type Service interface {
	ListStates(ctx context.Context) ([]domain.State, error)
}

type service struct {
	stateRepo repository.StateRepository
	redis     *redis.Client
}

func NewService(stateRepo repository.StateRepository, redis *redis.Client) Service {
	return &service{stateRepo: stateRepo, redis: redis}
}

// ListStates is cached for an hour; the list only changes when the seed runs.
func (s *service) ListStates(ctx context.Context) ([]domain.State, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statesCacheKey).Result(); err == nil {
			var states []domain.State
			if json.Unmarshal([]byte(cached), &states) == nil {
				return states, nil
			}
		}
	}

	states, err := s.stateRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil && len(states) > 0 {
		if data, err := json.Marshal(states); err == nil {
			_ = s.redis.Set(ctx, statesCacheKey, data, time.Hour).Err()
		}
	}
	return states, nil
}
