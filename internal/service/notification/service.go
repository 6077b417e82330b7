package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"volunteer-match/internal/bus"
	"volunteer-match/internal/domain"
	"volunteer-match/internal/pkg/metrics"
	"volunteer-match/internal/repository"
	"volunteer-match/internal/service/email"
)

const AssignmentTitle = "Assignment confirmed"

type Service interface {
	NotifyAssignment(ctx context.Context, volunteer *domain.VolunteerProfile, event *domain.Event) (*domain.Notice, error)
	ListForVolunteer(ctx context.Context, volunteerID uuid.UUID, limit int) ([]domain.NoticePayload, error)
	Subscribe(ctx context.Context, volunteerID uuid.UUID, fn bus.Handler) (func(), error)
}

type service struct {
	noticeRepo    repository.NoticeRepository
	volunteerRepo repository.VolunteerRepository
	credRepo      repository.CredentialRepository
	bus           bus.Bus
	emailSvc      email.Service
	log           *zap.Logger
}

// NewService wires the notifier. emailSvc may be nil, in which case no mail is sent.
func NewService(
	noticeRepo repository.NoticeRepository,
	volunteerRepo repository.VolunteerRepository,
	credRepo repository.CredentialRepository,
	b bus.Bus,
	emailSvc email.Service,
	log *zap.Logger,
) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		noticeRepo:    noticeRepo,
		volunteerRepo: volunteerRepo,
		credRepo:      credRepo,
		bus:           b,
		emailSvc:      emailSvc,
		log:           log,
	}
}

// NotifyAssignment persists the notice, then publishes it on the volunteer's
// channel. Only the persist step can fail the call; delivery is best effort.
func (s *service) NotifyAssignment(ctx context.Context, volunteer *domain.VolunteerProfile, event *domain.Event) (*domain.Notice, error) {
	notice := &domain.Notice{
		ID:          uuid.New(),
		VolunteerID: volunteer.UserID,
		Title:       AssignmentTitle,
		Body:        fmt.Sprintf("You have been assigned to %s on %s.", event.Name, event.Date.String()),
		Type:        domain.NoticeSuccess,
	}

	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, fmt.Errorf("failed to create notice: %w", err)
	}

	s.publish(ctx, notice)

	if s.emailSvc != nil {
		go s.sendEmail(context.Background(), volunteer, event)
	}

	return notice, nil
}

func (s *service) publish(ctx context.Context, notice *domain.Notice) {
	channel := bus.VolunteerChannel(notice.VolunteerID.String())
	delivered, err := s.bus.Publish(ctx, channel, domain.ToNoticePayload(notice))
	switch {
	case err != nil:
		metrics.NoticesPublished.WithLabelValues("error").Inc()
		s.log.Warn("failed to publish notice",
			zap.String("channel", channel),
			zap.String("notice_id", notice.ID.String()),
			zap.Error(err))
	case delivered == 0:
		metrics.NoticesPublished.WithLabelValues("dropped").Inc()
		s.log.Debug("notice published with no subscribers", zap.String("channel", channel))
	default:
		metrics.NoticesPublished.WithLabelValues("delivered").Inc()
	}
}

func (s *service) sendEmail(ctx context.Context, volunteer *domain.VolunteerProfile, event *domain.Event) {
	cred, err := s.credRepo.GetByID(ctx, volunteer.UserID)
	if err != nil || cred == nil {
		s.log.Warn("no credential for assignment email", zap.String("volunteer_id", volunteer.UserID.String()), zap.Error(err))
		return
	}

	err = s.emailSvc.SendAssignmentEmail(ctx, cred.Email, email.AssignmentData{
		Name:      volunteer.FullName,
		EventName: event.Name,
		EventDate: event.Date.String(),
		Location:  event.Location,
	})
	if err != nil {
		s.log.Warn("failed to send assignment email", zap.String("volunteer_id", volunteer.UserID.String()), zap.Error(err))
	}
}

func (s *service) ListForVolunteer(ctx context.Context, volunteerID uuid.UUID, limit int) ([]domain.NoticePayload, error) {
	volunteer, err := s.volunteerRepo.GetByUserID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, domain.ErrVolunteerNotFound
	}

	notices, err := s.noticeRepo.ListByVolunteer(ctx, volunteerID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.NoticePayload, 0, len(notices))
	for i := range notices {
		out = append(out, domain.ToNoticePayload(&notices[i]))
	}
	return out, nil
}

func (s *service) Subscribe(ctx context.Context, volunteerID uuid.UUID, fn bus.Handler) (func(), error) {
	volunteer, err := s.volunteerRepo.GetByUserID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, domain.ErrVolunteerNotFound
	}
	return s.bus.Subscribe(ctx, bus.VolunteerChannel(volunteerID.String()), fn)
}
