package profile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"volunteer-match/internal/config"
	"volunteer-match/internal/domain"
	"volunteer-match/internal/repository"
)

const MaxAvatarSize = 2 << 20

var (
	ErrAvatarTooLarge     = errors.New("avatar exceeds 2MB")
	ErrUnsupportedAvatar  = errors.New("avatar must be a JPEG, PNG or WebP image")
	ErrStorageUnavailable = errors.New("object storage is not configured")
)

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ObjectStorage is the subset of *minio.Client the profile service needs.
type ObjectStorage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.VolunteerProfile, error)
	Update(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.VolunteerProfile, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, size int64, reader io.Reader) (*domain.VolunteerProfile, error)
}

type service struct {
	volunteerRepo repository.VolunteerRepository
	storage       ObjectStorage
	cfg           *config.Config
}

func NewService(volunteerRepo repository.VolunteerRepository, storage ObjectStorage, cfg *config.Config) Service {
	return &service{
		volunteerRepo: volunteerRepo,
		storage:       storage,
		cfg:           cfg,
	}
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*domain.VolunteerProfile, error) {
	profile, err := s.volunteerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrVolunteerNotFound
	}
	return profile, nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.VolunteerProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	input.Apply(profile)
	if err := s.volunteerRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, size int64, reader io.Reader) (*domain.VolunteerProfile, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedAvatar
	}
	if size > MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), ext)
	_, err = s.storage.PutObject(ctx, s.cfg.MinIOBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	avatarURL := s.publicURL(objectName)
	if err := s.volunteerRepo.SetAvatar(ctx, userID, avatarURL); err != nil {
		_ = s.storage.RemoveObject(ctx, s.cfg.MinIOBucket, objectName, minio.RemoveObjectOptions{})
		return nil, err
	}

	profile.AvatarURL = &avatarURL
	return profile, nil
}

func (s *service) publicURL(objectName string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectName)
}
