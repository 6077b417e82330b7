package matching_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"volunteer-match/internal/bus"
	"volunteer-match/internal/domain"
	"volunteer-match/internal/mocks"
	"volunteer-match/internal/service/matching"
	"volunteer-match/internal/service/notification"
	"volunteer-match/internal/service/scoring"
)

// scoreByName returns a fixed score per event name.
type scoreByName map[string]float64

func (s scoreByName) Score(_ domain.VolunteerDTO, e domain.EventDTO) float64 {
	return s[e.Name]
}

func names(ranked []domain.RankedEvent) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Event.Name)
	}
	return out
}

func TestRank(t *testing.T) {
	events := []domain.EventDTO{
		{ID: "a", Name: "five", Date: "2026-11-01"},
		{ID: "b", Name: "nine", Date: "2026-11-02"},
		{ID: "c", Name: "one", Date: "2026-11-03"},
	}
	scorer := scoreByName{"five": 5, "nine": 9, "one": 1}

	t.Run("sorted descending and truncated", func(t *testing.T) {
		ranked := matching.Rank(scorer, domain.VolunteerDTO{}, events, 2)
		assert.Equal(t, []string{"nine", "five"}, names(ranked))
		assert.Equal(t, 9.0, ranked[0].Score)
	})

	t.Run("non-positive topN keeps everything", func(t *testing.T) {
		assert.Len(t, matching.Rank(scorer, domain.VolunteerDTO{}, events, 0), 3)
		assert.Len(t, matching.Rank(scorer, domain.VolunteerDTO{}, events, -1), 3)
	})

	t.Run("drops zero and negative scores", func(t *testing.T) {
		ranked := matching.Rank(scoreByName{"five": 0, "nine": -3, "one": 0.01}, domain.VolunteerDTO{}, events, 0)
		assert.Equal(t, []string{"one"}, names(ranked))
	})

	t.Run("ties break on date then name then id", func(t *testing.T) {
		tied := []domain.EventDTO{
			{ID: "3", Name: "b", Date: "2026-12-01"},
			{ID: "2", Name: "a", Date: "2026-12-01"},
			{ID: "1", Name: "a", Date: "2026-12-01"},
			{ID: "4", Name: "z", Date: "2026-11-01"},
		}
		ranked := matching.Rank(scoreByName{"a": 7, "b": 7, "z": 7}, domain.VolunteerDTO{}, tied, 0)
		ids := []string{}
		for _, r := range ranked {
			ids = append(ids, r.Event.ID)
		}
		assert.Equal(t, []string{"4", "1", "2", "3"}, ids)
	})
}

type fixture struct {
	volunteers  *mocks.VolunteerRepository
	events      *mocks.EventRepository
	assignments *mocks.AssignmentRepository
	notices     *mocks.NoticeRepository
	bus         *bus.Local
	svc         matching.Service
}

func newFixture(t *testing.T, scorer matching.Scorer) *fixture {
	f := &fixture{
		volunteers:  new(mocks.VolunteerRepository),
		events:      new(mocks.EventRepository),
		assignments: new(mocks.AssignmentRepository),
		notices:     new(mocks.NoticeRepository),
		bus:         bus.NewLocal(),
	}
	log := zaptest.NewLogger(t)
	notifier := notification.NewService(f.notices, f.volunteers, new(mocks.CredentialRepository), f.bus, nil, log)
	f.svc = matching.NewService(f.volunteers, f.events, f.assignments, scorer, notifier, log)
	return f
}

func sampleVolunteer(id uuid.UUID) *domain.VolunteerProfile {
	return &domain.VolunteerProfile{
		ID:           uuid.New(),
		UserID:       id,
		FullName:     "Ana Lopez",
		City:         "Houston",
		StateCode:    "TX",
		Skills:       pq.StringArray{"Driving", "First Aid"},
		Availability: pq.StringArray{"2026-11-20"},
	}
}

func sampleEvent(id uuid.UUID, name string, skills ...string) domain.Event {
	return domain.Event{
		ID:             id,
		Name:           name,
		Location:       "Houston, TX",
		RequiredSkills: pq.StringArray(skills),
		Urgency:        domain.UrgencyHigh,
		Date:           domain.NewDate(2026, time.November, 20),
	}
}

func TestRankForVolunteer(t *testing.T) {
	ctx := context.Background()
	volunteerID := uuid.New()

	t.Run("scores every event with the real scorer", func(t *testing.T) {
		f := newFixture(t, scoring.New(scoring.DefaultWeights()))
		f.volunteers.On("GetByUserID", ctx, volunteerID).Return(sampleVolunteer(volunteerID), nil).Once()
		f.events.On("List", ctx).Return([]domain.Event{
			sampleEvent(uuid.New(), "Welding Class", "Welding"),
			sampleEvent(uuid.New(), "Meal Run", "Driving"),
			sampleEvent(uuid.New(), "Clinic", "First Aid", "Nursing"),
		}, nil).Once()

		ranked, err := f.svc.RankForVolunteer(ctx, volunteerID, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Meal Run", "Clinic"}, names(ranked))
		assert.Equal(t, 105.0, ranked[0].Score)
		assert.Equal(t, 75.0, ranked[1].Score)
		f.volunteers.AssertExpectations(t)
		f.events.AssertExpectations(t)
	})

	t.Run("unknown volunteer", func(t *testing.T) {
		f := newFixture(t, scoreByName{})
		f.volunteers.On("GetByUserID", ctx, volunteerID).Return(nil, nil).Once()

		ranked, err := f.svc.RankForVolunteer(ctx, volunteerID, 3)
		assert.ErrorIs(t, err, domain.ErrVolunteerNotFound)
		assert.Nil(t, ranked)
		f.events.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t, scoreByName{})
		f.volunteers.On("GetByUserID", ctx, volunteerID).Return(sampleVolunteer(volunteerID), nil).Once()
		f.events.On("List", ctx).Return(nil, errors.New("connection reset")).Once()

		_, err := f.svc.RankForVolunteer(ctx, volunteerID, 3)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrVolunteerNotFound)
	})
}

func TestAssign(t *testing.T) {
	ctx := context.Background()
	volunteerID := uuid.New()
	eventID := uuid.New()

	t.Run("creates one assignment, one notice and one publish", func(t *testing.T) {
		f := newFixture(t, scoreByName{})
		event := sampleEvent(eventID, "Meal Run", "Driving")
		created := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

		f.volunteers.On("GetByUserID", mock.Anything, volunteerID).Return(sampleVolunteer(volunteerID), nil).Once()
		f.events.On("GetByID", mock.Anything, eventID).Return(&event, nil).Once()
		f.assignments.On("Create", ctx, mock.MatchedBy(func(a *domain.Assignment) bool {
			return a.VolunteerID == volunteerID && a.EventID == eventID && a.ID != uuid.Nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Assignment).CreatedAt = created
		}).Return(nil).Once()
		f.notices.On("Create", ctx, mock.MatchedBy(func(n *domain.Notice) bool {
			return n.VolunteerID == volunteerID && n.Type == domain.NoticeSuccess && n.Title == notification.AssignmentTitle
		})).Return(nil).Once()

		var published []domain.NoticePayload
		_, err := f.bus.Subscribe(ctx, bus.VolunteerChannel(volunteerID.String()), func(p domain.NoticePayload) {
			published = append(published, p)
		})
		require.NoError(t, err)
		other := 0
		_, err = f.bus.Subscribe(ctx, bus.VolunteerChannel(uuid.NewString()), func(domain.NoticePayload) { other++ })
		require.NoError(t, err)

		dto, err := f.svc.Assign(ctx, volunteerID, eventID)
		require.NoError(t, err)
		assert.Equal(t, volunteerID.String(), dto.VolunteerID)
		assert.Equal(t, eventID.String(), dto.EventID)
		assert.Equal(t, created.UnixMilli(), dto.CreatedAtMs)

		require.Len(t, published, 1)
		assert.Equal(t, volunteerID.String(), published[0].VolunteerID)
		assert.Contains(t, published[0].Body, "Meal Run")
		assert.Contains(t, published[0].Body, "2026-11-20")
		assert.Zero(t, other)

		f.assignments.AssertExpectations(t)
		f.notices.AssertExpectations(t)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture(t, scoreByName{})
		f.volunteers.On("GetByUserID", mock.Anything, volunteerID).Return(sampleVolunteer(volunteerID), nil).Once()
		f.events.On("GetByID", mock.Anything, eventID).Return(nil, nil).Once()

		dto, err := f.svc.Assign(ctx, volunteerID, eventID)
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
		assert.Nil(t, dto)
		f.assignments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.notices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown volunteer", func(t *testing.T) {
		f := newFixture(t, scoreByName{})
		event := sampleEvent(eventID, "Meal Run")
		f.volunteers.On("GetByUserID", mock.Anything, volunteerID).Return(nil, nil).Once()
		f.events.On("GetByID", mock.Anything, eventID).Return(&event, nil).Once()

		_, err := f.svc.Assign(ctx, volunteerID, eventID)
		assert.ErrorIs(t, err, domain.ErrVolunteerNotFound)
	})

	t.Run("assignment write fails", func(t *testing.T) {
		f := newFixture(t, scoreByName{})
		event := sampleEvent(eventID, "Meal Run")
		f.volunteers.On("GetByUserID", mock.Anything, volunteerID).Return(sampleVolunteer(volunteerID), nil).Once()
		f.events.On("GetByID", mock.Anything, eventID).Return(&event, nil).Once()
		f.assignments.On("Create", ctx, mock.Anything).Return(errors.New("disk full")).Once()

		_, err := f.svc.Assign(ctx, volunteerID, eventID)
		assert.Error(t, err)
		f.notices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("notice write fails after assignment", func(t *testing.T) {
		f := newFixture(t, scoreByName{})
		event := sampleEvent(eventID, "Meal Run")
		f.volunteers.On("GetByUserID", mock.Anything, volunteerID).Return(sampleVolunteer(volunteerID), nil).Once()
		f.events.On("GetByID", mock.Anything, eventID).Return(&event, nil).Once()
		f.assignments.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.notices.On("Create", ctx, mock.Anything).Return(errors.New("timeout")).Once()

		_, err := f.svc.Assign(ctx, volunteerID, eventID)
		assert.Error(t, err)
		f.assignments.AssertExpectations(t)
	})

	t.Run("lookup failure", func(t *testing.T) {
		f := newFixture(t, scoreByName{})
		f.volunteers.On("GetByUserID", mock.Anything, volunteerID).Return(nil, errors.New("db down")).Once()
		f.events.On("GetByID", mock.Anything, eventID).Return(nil, nil).Maybe()

		_, err := f.svc.Assign(ctx, volunteerID, eventID)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrEventNotFound)
	})
}

func TestListVolunteers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, scoreByName{})
	first, second := uuid.New(), uuid.New()
	f.volunteers.On("List", ctx).Return([]domain.VolunteerProfile{*sampleVolunteer(first), *sampleVolunteer(second)}, nil).Once()

	out, err := f.svc.ListVolunteers(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, first.String(), out[0].ID)
	assert.Equal(t, "Houston, TX", out[0].Location)
	assert.Equal(t, []string{"Driving", "First Aid"}, out[0].Skills)
}

func TestListAssignments(t *testing.T) {
	ctx := context.Background()
	volunteerID := uuid.New()

	t.Run("unknown volunteer", func(t *testing.T) {
		f := newFixture(t, scoreByName{})
		f.volunteers.On("GetByUserID", ctx, volunteerID).Return(nil, nil).Once()

		_, err := f.svc.ListAssignments(ctx, volunteerID)
		assert.ErrorIs(t, err, domain.ErrVolunteerNotFound)
	})

	t.Run("maps rows", func(t *testing.T) {
		f := newFixture(t, scoreByName{})
		f.volunteers.On("GetByUserID", ctx, volunteerID).Return(sampleVolunteer(volunteerID), nil).Once()
		f.assignments.On("ListByVolunteer", ctx, volunteerID).Return([]domain.Assignment{
			{ID: uuid.New(), VolunteerID: volunteerID, EventID: uuid.New()},
		}, nil).Once()

		out, err := f.svc.ListAssignments(ctx, volunteerID)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, volunteerID.String(), out[0].VolunteerID)
	})
}
