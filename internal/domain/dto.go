package domain

// VolunteerDTO is the matching API's view of a volunteer. Availability is
// carried for scoring only and never serialized.
type VolunteerDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Skills       []string `json:"skills"`
	Availability []string `json:"-"`
}

type EventDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	RequiredSkills []string `json:"requiredSkills"`
	Date           string   `json:"date"`
	Urgency        Urgency  `json:"urgency"`
}

type RankedEvent struct {
	Event EventDTO `json:"event"`
	Score float64  `json:"score"`
}

type AssignmentDTO struct {
	ID          string `json:"id"`
	VolunteerID string `json:"volunteerId"`
	EventID     string `json:"eventId"`
	CreatedAtMs int64  `json:"createdAtMs"`
}

// NoticePayload is what the bus delivers to subscribed clients.
type NoticePayload struct {
	ID          string     `json:"id"`
	VolunteerID string     `json:"volunteerId"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Type        NoticeType `json:"type"`
	CreatedAtMs int64      `json:"createdAtMs"`
}

func ToVolunteerDTO(v *VolunteerProfile) VolunteerDTO {
	return VolunteerDTO{
		ID:           v.UserID.String(),
		Name:         v.FullName,
		Location:     v.Location(),
		Skills:       nonNil(v.Skills),
		Availability: nonNil(v.Availability),
	}
}

func ToVolunteerDTOs(vs []VolunteerProfile) []VolunteerDTO {
	out := make([]VolunteerDTO, 0, len(vs))
	for i := range vs {
		out = append(out, ToVolunteerDTO(&vs[i]))
	}
	return out
}

func ToEventDTO(e *Event) EventDTO {
	return EventDTO{
		ID:             e.ID.String(),
		Name:           e.Name,
		Location:       e.Location,
		RequiredSkills: nonNil(e.RequiredSkills),
		Date:           e.Date.String(),
		Urgency:        e.Urgency,
	}
}

func ToEventDTOs(es []Event) []EventDTO {
	out := make([]EventDTO, 0, len(es))
	for i := range es {
		out = append(out, ToEventDTO(&es[i]))
	}
	return out
}

func ToAssignmentDTO(a *Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:          a.ID.String(),
		VolunteerID: a.VolunteerID.String(),
		EventID:     a.EventID.String(),
		CreatedAtMs: a.CreatedAt.UnixMilli(),
	}
}

func ToNoticePayload(n *Notice) NoticePayload {
	return NoticePayload{
		ID:          n.ID.String(),
		VolunteerID: n.VolunteerID.String(),
		Title:       n.Title,
		Body:        n.Body,
		Type:        n.Type,
		CreatedAtMs: n.CreatedAt.UnixMilli(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
