package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// isForeignKeyViolation reports a Postgres foreign_key_violation (23503).
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

type Repositories struct {
	DB         *sqlx.DB
	Credential CredentialRepository
	Session    SessionRepository
	Volunteer  VolunteerRepository
	Event      EventRepository
	Assignment AssignmentRepository
	Notice     NoticeRepository
	State      StateRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		DB:         db,
		Credential: NewCredentialRepository(db),
		Session:    NewSessionRepository(db),
		Volunteer:  NewVolunteerRepository(db),
		Event:      NewEventRepository(db),
		Assignment: NewAssignmentRepository(db),
		Notice:     NewNoticeRepository(db),
		State:      NewStateRepository(db),
	}
}

// RunInTx executes fn inside a single transaction, rolling back when fn fails.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
