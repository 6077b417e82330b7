package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/service/scoring"
)

func volunteer() domain.VolunteerDTO {
	return domain.VolunteerDTO{
		ID:           "v-1",
		Name:         "Ana Lopez",
		Location:     "Houston, TX",
		Skills:       []string{"First Aid", "Driving", "cooking"},
		Availability: []string{"2026-11-20", "2026-12-01"},
	}
}

func TestScore(t *testing.T) {
	s := scoring.New(scoring.DefaultWeights())

	tests := []struct {
		name  string
		event domain.EventDTO
		want  float64
	}{
		{
			name:  "no overlapping skill is not a match",
			event: domain.EventDTO{RequiredSkills: []string{"Welding"}, Urgency: domain.UrgencyCritical, Location: "Houston, TX", Date: "2026-11-20"},
			want:  0,
		},
		{
			name:  "partial overlap, low urgency, elsewhere",
			event: domain.EventDTO{RequiredSkills: []string{"first aid", "Welding"}, Urgency: domain.UrgencyLow, Location: "Austin, TX", Date: "2027-01-05"},
			want:  30 + 5,
		},
		{
			name:  "full overlap is case and space insensitive",
			event: domain.EventDTO{RequiredSkills: []string{" COOKING ", "driving", "Driving"}, Urgency: domain.UrgencyHigh, Location: "Dallas, TX"},
			want:  60 + 15,
		},
		{
			name:  "same city and available on the date",
			event: domain.EventDTO{RequiredSkills: []string{"Driving"}, Urgency: domain.UrgencyMedium, Location: "Downtown Houston, TX", Date: "2026-12-01"},
			want:  60 + 10 + 20 + 10,
		},
		{
			name:  "event without required skills is open to everyone",
			event: domain.EventDTO{Urgency: domain.UrgencyCritical, Location: "Austin, TX"},
			want:  30 + 20,
		},
		{
			name:  "unknown urgency adds nothing",
			event: domain.EventDTO{RequiredSkills: []string{"Driving"}, Urgency: "Someday"},
			want:  60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Score(volunteer(), tt.event), 0.001)
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := scoring.New(scoring.DefaultWeights())
	e := domain.EventDTO{RequiredSkills: []string{"Driving", "Lifting", "Sorting"}, Urgency: domain.UrgencyHigh, Location: "Houston, TX", Date: "2026-11-20"}

	first := s.Score(volunteer(), e)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, s.Score(volunteer(), e))
	}
	assert.Equal(t, 65.0, first)
}

func TestScore_RoundsToCents(t *testing.T) {
	s := scoring.New(scoring.Weights{Skill: 10})
	e := domain.EventDTO{RequiredSkills: []string{"Driving", "Lifting", "Sorting"}}
	assert.Equal(t, 3.33, s.Score(volunteer(), e))
}

func TestScore_CityMatchesWholeWords(t *testing.T) {
	s := scoring.New(scoring.Weights{Location: 20})

	tests := []struct {
		volunteer string
		event     string
		want      float64
	}{
		{"Rye, NY", "12 Maryland Ave, Baltimore, MD", 0},
		{"Austin, TX", "Austintown, OH", 0},
		{"New York, NY", "Downtown New York", 20},
		{"new york, ny", "York, PA", 0},
		{"Winston-Salem, NC", "Winston Salem Fairgrounds", 20},
		{"Houston, TX", "HOUSTON", 20},
	}

	for _, tt := range tests {
		t.Run(tt.volunteer+" at "+tt.event, func(t *testing.T) {
			v := volunteer()
			v.Location = tt.volunteer
			assert.Equal(t, tt.want, s.Score(v, domain.EventDTO{Location: tt.event}))
		})
	}
}

func TestScore_VolunteerWithoutLocation(t *testing.T) {
	s := scoring.New(scoring.DefaultWeights())
	v := volunteer()
	v.Location = ""
	assert.Equal(t, 60.0, s.Score(v, domain.EventDTO{RequiredSkills: []string{"Driving"}, Location: "Houston, TX"}))
}
