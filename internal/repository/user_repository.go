package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"volunteer-match/internal/domain"
)

const credentialColumns = `id, email, password_hash, role, created_at, updated_at`

type CredentialRepository interface {
	Create(ctx context.Context, cred *domain.Credential) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Credential, error)
	GetByEmail(ctx context.Context, email string) (*domain.Credential, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Upsert(ctx context.Context, cred *domain.Credential) error
	WithTx(tx *sqlx.Tx) CredentialRepository
}

type credentialRepository struct {
	db sqlx.ExtContext
}

func NewCredentialRepository(db *sqlx.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) WithTx(tx *sqlx.Tx) CredentialRepository {
	return &credentialRepository{db: tx}
}

func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	query := `
		INSERT INTO user_credentials (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		cred.ID, cred.Email, cred.PasswordHash, cred.Role,
	).Scan(&cred.CreatedAt, &cred.UpdatedAt)
}

func (r *credentialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Credential, error) {
	var cred domain.Credential
	query := `SELECT ` + credentialColumns + ` FROM user_credentials WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, &cred, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	var cred domain.Credential
	query := `SELECT ` + credentialColumns + ` FROM user_credentials WHERE email = $1`

	err := sqlx.GetContext(ctx, r.db, &cred, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_credentials WHERE email = $1)`
	err := sqlx.GetContext(ctx, r.db, &exists, query, email)
	return exists, err
}

// Upsert keys on email. On conflict the existing row keeps its id, which is
// scanned back into cred.
func (r *credentialRepository) Upsert(ctx context.Context, cred *domain.Credential) error {
	query := `
		INSERT INTO user_credentials (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		cred.ID, cred.Email, cred.PasswordHash, cred.Role,
	).Scan(&cred.ID, &cred.CreatedAt, &cred.UpdatedAt)
}
