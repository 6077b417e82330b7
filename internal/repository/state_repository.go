package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"volunteer-match/internal/domain"
)

type StateRepository interface {
	Upsert(ctx context.Context, state domain.State) error
	List(ctx context.Context) ([]domain.State, error)
}

type stateRepository struct {
	db *sqlx.DB
}

func NewStateRepository(db *sqlx.DB) StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) Upsert(ctx context.Context, state domain.State) error {
	query := `
		INSERT INTO states (code, name) VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name`
	_, err := r.db.ExecContext(ctx, query, state.Code, state.Name)
	return err
}

func (r *stateRepository) List(ctx context.Context) ([]domain.State, error) {
	states := []domain.State{}
	err := r.db.SelectContext(ctx, &states, `SELECT code, name FROM states ORDER BY code`)
	return states, err
}
