package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/repository"
)

type CredentialRepository struct {
	mock.Mock
}

func (m *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *CredentialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *CredentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *CredentialRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *CredentialRepository) Upsert(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *CredentialRepository) WithTx(tx *sqlx.Tx) repository.CredentialRepository {
	return m
}

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, session *repository.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepository) GetActiveByTokenHash(ctx context.Context, tokenHash string) (*repository.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Session), args.Error(1)
}

func (m *SessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
