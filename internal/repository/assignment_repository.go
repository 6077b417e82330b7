package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"volunteer-match/internal/domain"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]domain.Assignment, error)
}

type assignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	query := `
		INSERT INTO assignments (id, volunteer_id, event_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		assignment.ID, assignment.VolunteerID, assignment.EventID,
	).Scan(&assignment.CreatedAt)
}

func (r *assignmentRepository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]domain.Assignment, error) {
	query := `
		SELECT id, volunteer_id, event_id, created_at
		FROM assignments
		WHERE volunteer_id = $1
		ORDER BY created_at DESC`

	assignments := []domain.Assignment{}
	err := r.db.SelectContext(ctx, &assignments, query, volunteerID)
	return assignments, err
}
