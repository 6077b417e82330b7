package service

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"volunteer-match/internal/bus"
	"volunteer-match/internal/config"
	"volunteer-match/internal/pkg/logger"
	"volunteer-match/internal/repository"
	"volunteer-match/internal/service/auth"
	"volunteer-match/internal/service/email"
	"volunteer-match/internal/service/event"
	"volunteer-match/internal/service/matching"
	"volunteer-match/internal/service/notification"
	"volunteer-match/internal/service/profile"
	"volunteer-match/internal/service/reference"
	"volunteer-match/internal/service/scoring"
)

type Services struct {
	Auth         auth.Service
	Profile      profile.Service
	Event        event.Service
	Matching     matching.Service
	Notification notification.Service
	Reference    reference.Service
}

// NewServices wires every service. redis, storage and log may be nil; the bus is required.
func NewServices(
	repos *repository.Repositories,
	redis *redis.Client,
	storage profile.ObjectStorage,
	b bus.Bus,
	cfg *config.Config,
	log *zap.Logger,
) (*Services, error) {
	log = logger.OrNop(log)

	var emailService email.Service
	if cfg.ResendAPIKey != "" {
		svc, err := email.NewService(cfg)
		if err != nil {
			return nil, err
		}
		emailService = svc
	}

	scorer := scoring.New(scoring.Weights{
		Skill:        cfg.Scoring.Skill,
		OpenEvent:    cfg.Scoring.OpenEvent,
		Urgency:      cfg.Scoring.Urgency,
		Location:     cfg.Scoring.Location,
		Availability: cfg.Scoring.Availability,
	})

	notificationService := notification.NewService(repos.Notice, repos.Volunteer, repos.Credential, b, emailService, log.Named("notification"))
	matchingService := matching.NewService(repos.Volunteer, repos.Event, repos.Assignment, scorer, notificationService, log.Named("matching"))

	return &Services{
		Auth:         auth.NewService(repos.DB, repos.Credential, repos.Volunteer, repos.Session, cfg),
		Profile:      profile.NewService(repos.Volunteer, storage, cfg),
		Event:        event.NewService(repos.Event, redis),
		Matching:     matchingService,
		Notification: notificationService,
		Reference:    reference.NewService(repos.State, redis),
	}, nil
}
