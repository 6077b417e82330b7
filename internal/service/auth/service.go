package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"volunteer-match/internal/config"
	"volunteer-match/internal/domain"
	"volunteer-match/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Service interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.Credential, *domain.TokenPair, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.Credential, *domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	ValidateAccessToken(token string) (*Claims, error)
}

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	db            *sqlx.DB
	credRepo      repository.CredentialRepository
	volunteerRepo repository.VolunteerRepository
	sessionRepo   repository.SessionRepository
	cfg           *config.Config
	now           func() time.Time
}

func NewService(
	db *sqlx.DB,
	credRepo repository.CredentialRepository,
	volunteerRepo repository.VolunteerRepository,
	sessionRepo repository.SessionRepository,
	cfg *config.Config,
) Service {
	return &service{
		db:            db,
		credRepo:      credRepo,
		volunteerRepo: volunteerRepo,
		sessionRepo:   sessionRepo,
		cfg:           cfg,
		now:           time.Now,
	}
}

// Register creates the credential and an empty volunteer profile in one
// transaction, then signs the new user in.
func (s *service) Register(ctx context.Context, input domain.RegisterInput) (*domain.Credential, *domain.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.credRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	cred := &domain.Credential{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         string(domain.RoleVolunteer),
	}
	profile := &domain.VolunteerProfile{
		ID:           uuid.New(),
		UserID:       cred.ID,
		FullName:     input.FullName,
		Skills:       pq.StringArray{},
		Availability: pq.StringArray{},
	}

	err = repository.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.credRepo.WithTx(tx).Create(ctx, cred); err != nil {
			return err
		}
		return s.volunteerRepo.WithTx(tx).Upsert(ctx, profile)
	})
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.generateTokenPair(ctx, cred)
	if err != nil {
		return nil, nil, err
	}
	return cred, tokens, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.Credential, *domain.TokenPair, error) {
	cred, err := s.credRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, nil, err
	}
	if cred == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokenPair(ctx, cred)
	if err != nil {
		return nil, nil, err
	}
	return cred, tokens, nil
}

// Refresh rotates a refresh token: the presented session is revoked and a new pair issued.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	session, err := s.sessionRepo.GetActiveByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	cred, err := s.credRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrInvalidToken
	}

	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, cred)
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) generateTokenPair(ctx context.Context, cred *domain.Credential) (*domain.TokenPair, error) {
	now := s.now()
	accessClaims := &Claims{
		UserID: cred.ID,
		Email:  cred.Email,
		Role:   cred.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   cred.ID.String(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	refreshToken := hex.EncodeToString(raw)

	session := &repository.Session{
		ID:        uuid.New(),
		UserID:    cred.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: now.Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
