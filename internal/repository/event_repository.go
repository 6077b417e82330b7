package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"volunteer-match/internal/domain"
)

const eventColumns = `id, name, description, location, required_skills, urgency, event_date, created_at, updated_at`

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]domain.Event, error)
	Upsert(ctx context.Context, event *domain.Event) error
}

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, name, description, location, required_skills, urgency, event_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		event.ID, event.Name, event.Description, event.Location, event.RequiredSkills, event.Urgency, event.Date,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var event domain.Event
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	err := r.db.GetContext(ctx, &event, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET name = $2, description = $3, location = $4, required_skills = $5, urgency = $6,
			event_date = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		event.ID, event.Name, event.Description, event.Location, event.RequiredSkills, event.Urgency, event.Date,
	).Scan(&event.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	return err
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return false, domain.ErrEventHasAssignments
	}
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY event_date ASC, name ASC`

	events := []domain.Event{}
	err := r.db.SelectContext(ctx, &events, query)
	return events, err
}

func (r *eventRepository) Upsert(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, name, description, location, required_skills, urgency, event_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, location = EXCLUDED.location,
			required_skills = EXCLUDED.required_skills, urgency = EXCLUDED.urgency,
			event_date = EXCLUDED.event_date, updated_at = NOW()
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		event.ID, event.Name, event.Description, event.Location, event.RequiredSkills, event.Urgency, event.Date,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
}
