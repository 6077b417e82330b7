package matching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/pkg/metrics"
	"volunteer-match/internal/repository"
)

// Scorer maps a volunteer and an event to a compatibility score. Scores of
// zero or below are treated as "no match".
type Scorer interface {
	Score(v domain.VolunteerDTO, e domain.EventDTO) float64
}

// Notifier records and pushes the notice that follows an assignment.
type Notifier interface {
	NotifyAssignment(ctx context.Context, volunteer *domain.VolunteerProfile, event *domain.Event) (*domain.Notice, error)
}

type Service interface {
	ListVolunteers(ctx context.Context) ([]domain.VolunteerDTO, error)
	ListEvents(ctx context.Context) ([]domain.EventDTO, error)
	RankForVolunteer(ctx context.Context, volunteerID uuid.UUID, topN int) ([]domain.RankedEvent, error)
	Assign(ctx context.Context, volunteerID, eventID uuid.UUID) (*domain.AssignmentDTO, error)
	ListAssignments(ctx context.Context, volunteerID uuid.UUID) ([]domain.AssignmentDTO, error)
}

type service struct {
	volunteerRepo  repository.VolunteerRepository
	eventRepo      repository.EventRepository
	assignmentRepo repository.AssignmentRepository
	scorer         Scorer
	notifier       Notifier
	log            *zap.Logger
}

func NewService(
	volunteerRepo repository.VolunteerRepository,
	eventRepo repository.EventRepository,
	assignmentRepo repository.AssignmentRepository,
	scorer Scorer,
	notifier Notifier,
	log *zap.Logger,
) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		volunteerRepo:  volunteerRepo,
		eventRepo:      eventRepo,
		assignmentRepo: assignmentRepo,
		scorer:         scorer,
		notifier:       notifier,
		log:            log,
	}
}

func (s *service) ListVolunteers(ctx context.Context) ([]domain.VolunteerDTO, error) {
	profiles, err := s.volunteerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	return domain.ToVolunteerDTOs(profiles), nil
}

func (s *service) ListEvents(ctx context.Context) ([]domain.EventDTO, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return domain.ToEventDTOs(events), nil
}

func (s *service) RankForVolunteer(ctx context.Context, volunteerID uuid.UUID, topN int) ([]domain.RankedEvent, error) {
	profile, err := s.volunteerRepo.GetByUserID(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrVolunteerNotFound
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	start := time.Now()
	ranked := Rank(s.scorer, domain.ToVolunteerDTO(profile), domain.ToEventDTOs(events), topN)
	metrics.RankingDuration.Observe(time.Since(start).Seconds())

	return ranked, nil
}

// Rank scores every event for v, drops non-positive scores and returns the
// rest best first. Ties go to the earlier date, then name, then id. topN <= 0
// keeps every match.
func Rank(scorer Scorer, v domain.VolunteerDTO, events []domain.EventDTO, topN int) []domain.RankedEvent {
	ranked := make([]domain.RankedEvent, 0, len(events))
	for _, e := range events {
		score := scorer.Score(v, e)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, domain.RankedEvent{Event: e, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Event.Date != b.Event.Date {
			return a.Event.Date < b.Event.Date
		}
		if a.Event.Name != b.Event.Name {
			return a.Event.Name < b.Event.Name
		}
		return a.Event.ID < b.Event.ID
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Assign links the volunteer to the event and notifies them. The assignment
// and the notice are separate writes; a failed notice leaves the assignment in place.
func (s *service) Assign(ctx context.Context, volunteerID, eventID uuid.UUID) (*domain.AssignmentDTO, error) {
	var (
		profile *domain.VolunteerProfile
		event   *domain.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.volunteerRepo.GetByUserID(gctx, volunteerID)
		if err != nil {
			return fmt.Errorf("failed to get volunteer: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		event, err = s.eventRepo.GetByID(gctx, eventID)
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if profile == nil {
		return nil, domain.ErrVolunteerNotFound
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	assignment := &domain.Assignment{
		ID:          uuid.New(),
		VolunteerID: profile.UserID,
		EventID:     event.ID,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	metrics.AssignmentsCreated.Inc()

	if _, err := s.notifier.NotifyAssignment(ctx, profile, event); err != nil {
		s.log.Error("assignment created without notice",
			zap.String("assignment_id", assignment.ID.String()),
			zap.Error(err))
		return nil, err
	}

	dto := domain.ToAssignmentDTO(assignment)
	return &dto, nil
}

func (s *service) ListAssignments(ctx context.Context, volunteerID uuid.UUID) ([]domain.AssignmentDTO, error) {
	profile, err := s.volunteerRepo.GetByUserID(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrVolunteerNotFound
	}

	assignments, err := s.assignmentRepo.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	out := make([]domain.AssignmentDTO, 0, len(assignments))
	for i := range assignments {
		out = append(out, domain.ToAssignmentDTO(&assignments[i]))
	}
	return out, nil
}
