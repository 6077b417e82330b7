package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-match/internal/domain"
)

func TestToVolunteerDTO(t *testing.T) {
	userID := uuid.New()
	profile := &domain.VolunteerProfile{
		ID:           uuid.New(),
		UserID:       userID,
		FullName:     "Ada Lovelace",
		City:         "Houston",
		StateCode:    "TX",
		Skills:       pq.StringArray{"cooking", "first aid"},
		Availability: pq.StringArray{"2026-11-01"},
	}

	dto := domain.ToVolunteerDTO(profile)

	assert.Equal(t, userID.String(), dto.ID)
	assert.Equal(t, "Ada Lovelace", dto.Name)
	assert.Equal(t, "Houston, TX", dto.Location)
	assert.Equal(t, []string{"cooking", "first aid"}, dto.Skills)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+userID.String()+`","name":"Ada Lovelace","location":"Houston, TX","skills":["cooking","first aid"]}`, string(raw))
}

func TestToVolunteerDTO_EmptySkillsSerializeAsArray(t *testing.T) {
	dto := domain.ToVolunteerDTO(&domain.VolunteerProfile{UserID: uuid.New(), City: "Austin"})

	assert.Equal(t, "Austin", dto.Location)
	assert.NotNil(t, dto.Skills)
	assert.Empty(t, dto.Skills)
}

func TestToEventDTO(t *testing.T) {
	id := uuid.New()
	event := &domain.Event{
		ID:             id,
		Name:           "Food Drive",
		Location:       "Houston, TX",
		RequiredSkills: pq.StringArray{"logistics"},
		Urgency:        domain.UrgencyHigh,
		Date:           domain.NewDate(2026, time.November, 3),
	}

	dto := domain.ToEventDTO(event)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+id.String()+`","name":"Food Drive","location":"Houston, TX","requiredSkills":["logistics"],"date":"2026-11-03","urgency":"High"}`, string(raw))
}

func TestToAssignmentDTO(t *testing.T) {
	created := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	a := &domain.Assignment{ID: uuid.New(), VolunteerID: uuid.New(), EventID: uuid.New(), CreatedAt: created}

	dto := domain.ToAssignmentDTO(a)

	assert.Equal(t, a.ID.String(), dto.ID)
	assert.Equal(t, a.VolunteerID.String(), dto.VolunteerID)
	assert.Equal(t, a.EventID.String(), dto.EventID)
	assert.Equal(t, created.UnixMilli(), dto.CreatedAtMs)
}

func TestToNoticePayload(t *testing.T) {
	created := time.Now()
	n := &domain.Notice{
		ID:          uuid.New(),
		VolunteerID: uuid.New(),
		Title:       "Assignment confirmed",
		Body:        "You are assigned",
		Type:        domain.NoticeSuccess,
		CreatedAt:   created,
	}

	p := domain.ToNoticePayload(n)

	assert.Equal(t, n.ID.String(), p.ID)
	assert.Equal(t, n.VolunteerID.String(), p.VolunteerID)
	assert.Equal(t, domain.NoticeSuccess, p.Type)
	assert.Equal(t, created.UnixMilli(), p.CreatedAtMs)
}

func TestDate_JSONAndScan(t *testing.T) {
	var d domain.Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-12-24"`), &d))
	assert.Equal(t, "2026-12-24", d.String())

	var scanned domain.Date
	require.NoError(t, scanned.Scan(time.Date(2026, time.December, 24, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "2026-12-24", scanned.String())

	require.NoError(t, scanned.Scan([]byte("2027-01-02T00:00:00Z")))
	assert.Equal(t, "2027-01-02", scanned.String())

	assert.Error(t, json.Unmarshal([]byte(`"12/24/2026"`), &d))
}

func TestUrgency_Ordinal(t *testing.T) {
	assert.Equal(t, 1, domain.UrgencyLow.Ordinal())
	assert.Equal(t, 4, domain.UrgencyCritical.Ordinal())
	assert.Equal(t, 0, domain.Urgency("Someday").Ordinal())
	assert.False(t, domain.Urgency("Someday").IsValid())
}
