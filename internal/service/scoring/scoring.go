// Package scoring computes how well a volunteer fits an event.
package scoring

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"volunteer-match/internal/domain"
)

// Weights sets the contribution of each match factor.
type Weights struct {
	Skill        float64
	OpenEvent    float64
	Urgency      float64
	Location     float64
	Availability float64
}

func DefaultWeights() Weights {
	return Weights{
		Skill:        60,
		OpenEvent:    30,
		Urgency:      5,
		Location:     20,
		Availability: 10,
	}
}

// Scorer is pure: the same volunteer and event always produce the same score.
// A score of zero or less means the pair is not a match.
type Scorer struct {
	w Weights
}

func New(w Weights) *Scorer {
	return &Scorer{w: w}
}

func (s *Scorer) Weights() Weights {
	return s.w
}

func (s *Scorer) Score(v domain.VolunteerDTO, e domain.EventDTO) float64 {
	required := normalize(e.RequiredSkills)

	var total float64
	if len(required) == 0 {
		total = s.w.OpenEvent
	} else {
		have := make(map[string]struct{}, len(v.Skills))
		for _, skill := range normalize(v.Skills) {
			have[skill] = struct{}{}
		}
		overlap := 0
		for _, skill := range required {
			if _, ok := have[skill]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			return 0
		}
		total = s.w.Skill * float64(overlap) / float64(len(required))
	}

	total += s.w.Urgency * float64(e.Urgency.Ordinal())

	if sameCity(v.Location, e.Location) {
		total += s.w.Location
	}

	if e.Date != "" {
		for _, day := range v.Availability {
			if strings.TrimSpace(day) == e.Date {
				total += s.w.Availability
				break
			}
		}
	}

	return math.Round(total*100) / 100
}

// normalize lower-cases and trims tags, dropping blanks and duplicates.
func normalize(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// sameCity reports whether the volunteer's city (the part before the first
// comma of "City, ST") appears as whole words in the event location, so
// "Rye" does not match "Maryland Ave".
func sameCity(volunteerLoc, eventLoc string) bool {
	city, _, _ := strings.Cut(volunteerLoc, ",")
	want := words(city)
	if len(want) == 0 {
		return false
	}
	have := words(eventLoc)
	for i := 0; i+len(want) <= len(have); i++ {
		if slices.Equal(have[i:i+len(want)], want) {
			return true
		}
	}
	return false
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
