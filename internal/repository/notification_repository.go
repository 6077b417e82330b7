package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"volunteer-match/internal/domain"
)

const (
	defaultNoticeLimit = 50
	maxNoticeLimit     = 100
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *domain.Notice) error
	ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, limit int) ([]domain.Notice, error)
}

type noticeRepository struct {
	db *sqlx.DB
}

func NewNoticeRepository(db *sqlx.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) Create(ctx context.Context, notice *domain.Notice) error {
	query := `
		INSERT INTO notices (id, volunteer_id, title, body, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notice.ID, notice.VolunteerID, notice.Title, notice.Body, notice.Type,
	).Scan(&notice.CreatedAt)
}

func (r *noticeRepository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, limit int) ([]domain.Notice, error) {
	switch {
	case limit <= 0:
		limit = defaultNoticeLimit
	case limit > maxNoticeLimit:
		limit = maxNoticeLimit
	}

	query := `
		SELECT id, volunteer_id, title, body, type, created_at
		FROM notices
		WHERE volunteer_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	notices := []domain.Notice{}
	err := r.db.SelectContext(ctx, &notices, query, volunteerID, limit)
	return notices, err
}
