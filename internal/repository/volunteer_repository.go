package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"volunteer-match/internal/domain"
)

// An unset state is stored as NULL so the states foreign key only checks real codes.
const volunteerColumns = `id, user_id, full_name, address1, address2, city,
	COALESCE(state_code, '') AS state_code, zip_code,
	skills, availability, preferences, avatar_url, created_at, updated_at`

type VolunteerRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.VolunteerProfile, error)
	List(ctx context.Context) ([]domain.VolunteerProfile, error)
	Upsert(ctx context.Context, profile *domain.VolunteerProfile) error
	Update(ctx context.Context, profile *domain.VolunteerProfile) error
	SetAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error
	WithTx(tx *sqlx.Tx) VolunteerRepository
}

type volunteerRepository struct {
	db sqlx.ExtContext
}

func NewVolunteerRepository(db *sqlx.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) WithTx(tx *sqlx.Tx) VolunteerRepository {
	return &volunteerRepository{db: tx}
}

func (r *volunteerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.VolunteerProfile, error) {
	var profile domain.VolunteerProfile
	query := `SELECT ` + volunteerColumns + ` FROM volunteer_profiles WHERE user_id = $1`

	err := sqlx.GetContext(ctx, r.db, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *volunteerRepository) List(ctx context.Context) ([]domain.VolunteerProfile, error) {
	query := `SELECT ` + volunteerColumns + ` FROM volunteer_profiles ORDER BY created_at DESC`

	profiles := []domain.VolunteerProfile{}
	err := sqlx.SelectContext(ctx, r.db, &profiles, query)
	return profiles, err
}

// Upsert inserts the profile or, when one already exists for the same user,
// overwrites its editable fields. The stored id and timestamps are scanned back.
func (r *volunteerRepository) Upsert(ctx context.Context, profile *domain.VolunteerProfile) error {
	query := `
		INSERT INTO volunteer_profiles (id, user_id, full_name, address1, address2, city,
			state_code, zip_code, skills, availability, preferences)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name, address1 = EXCLUDED.address1,
			address2 = EXCLUDED.address2, city = EXCLUDED.city,
			state_code = EXCLUDED.state_code, zip_code = EXCLUDED.zip_code,
			skills = EXCLUDED.skills, availability = EXCLUDED.availability,
			preferences = EXCLUDED.preferences, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		profile.ID, profile.UserID, profile.FullName, profile.Address1, profile.Address2,
		profile.City, profile.StateCode, profile.ZipCode, profile.Skills,
		profile.Availability, profile.Preferences,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if isForeignKeyViolation(err) {
		return domain.ErrUnknownState
	}
	return err
}

func (r *volunteerRepository) Update(ctx context.Context, profile *domain.VolunteerProfile) error {
	query := `
		UPDATE volunteer_profiles
		SET full_name = $2, address1 = $3, address2 = $4, city = $5, state_code = NULLIF($6, ''),
			zip_code = $7, skills = $8, availability = $9, preferences = $10, updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		profile.UserID, profile.FullName, profile.Address1, profile.Address2, profile.City,
		profile.StateCode, profile.ZipCode, profile.Skills, profile.Availability, profile.Preferences,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrVolunteerNotFound
	}
	if isForeignKeyViolation(err) {
		return domain.ErrUnknownState
	}
	return err
}

func (r *volunteerRepository) SetAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	query := `UPDATE volunteer_profiles SET avatar_url = $2, updated_at = NOW() WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, avatarURL)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrVolunteerNotFound
	}
	return nil
}
