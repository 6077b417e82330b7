package profile_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"volunteer-match/internal/config"
	"volunteer-match/internal/domain"
	"volunteer-match/internal/mocks"
	"volunteer-match/internal/service/profile"
)

type fakeStorage struct {
	puts    []string
	removed []string
	putErr  error
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, object string, r io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	_, _ = io.Copy(io.Discard, r)
	f.puts = append(f.puts, bucket+"/"+object+"|"+opts.ContentType)
	return minio.UploadInfo{Bucket: bucket, Key: object}, nil
}

func (f *fakeStorage) RemoveObject(_ context.Context, bucket, object string, _ minio.RemoveObjectOptions) error {
	f.removed = append(f.removed, bucket+"/"+object)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{MinIOBucket: "avatars-bucket", MinIOPublicEndpoint: "cdn.example.org", MinIOPublicUseSSL: true}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := new(mocks.VolunteerRepository)
	svc := profile.NewService(repo, nil, testConfig())

	repo.On("GetByUserID", ctx, userID).Return(&domain.VolunteerProfile{UserID: userID, FullName: "Old"}, nil).Once()
	repo.On("Update", ctx, mock.MatchedBy(func(p *domain.VolunteerProfile) bool {
		return p.FullName == "Ana Lopez" && p.StateCode == "TX"
	})).Return(nil).Once()

	updated, err := svc.Update(ctx, userID, domain.UpdateProfileInput{
		FullName:     "Ana Lopez",
		Address1:     "1 Main St",
		City:         "Houston",
		StateCode:    "tx",
		ZipCode:      "77002",
		Skills:       []string{"Driving"},
		Availability: []string{"2026-11-20"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Houston, TX", updated.Location())
	repo.AssertExpectations(t)
}

func TestGet_Missing(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.VolunteerRepository)
	svc := profile.NewService(repo, nil, testConfig())
	id := uuid.New()
	repo.On("GetByUserID", ctx, id).Return(nil, nil).Once()

	_, err := svc.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrVolunteerNotFound)
}

func TestUploadAvatar(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("stores object and public url", func(t *testing.T) {
		repo := new(mocks.VolunteerRepository)
		storage := &fakeStorage{}
		svc := profile.NewService(repo, storage, testConfig())

		repo.On("GetByUserID", ctx, userID).Return(&domain.VolunteerProfile{UserID: userID}, nil).Once()
		repo.On("SetAvatar", ctx, userID, mock.MatchedBy(func(u string) bool {
			return strings.HasPrefix(u, "https://cdn.example.org/avatars-bucket/avatars/"+userID.String()+"/") &&
				strings.HasSuffix(u, ".png")
		})).Return(nil).Once()

		p, err := svc.UploadAvatar(ctx, userID, "image/png", 4, strings.NewReader("\x89PNG"))
		require.NoError(t, err)
		require.NotNil(t, p.AvatarURL)
		require.Len(t, storage.puts, 1)
		assert.Contains(t, storage.puts[0], "|image/png")
		repo.AssertExpectations(t)
	})

	t.Run("removes object when the row update fails", func(t *testing.T) {
		repo := new(mocks.VolunteerRepository)
		storage := &fakeStorage{}
		svc := profile.NewService(repo, storage, testConfig())

		repo.On("GetByUserID", ctx, userID).Return(&domain.VolunteerProfile{UserID: userID}, nil).Once()
		repo.On("SetAvatar", ctx, userID, mock.Anything).Return(errors.New("db down")).Once()

		_, err := svc.UploadAvatar(ctx, userID, "image/jpeg", 4, strings.NewReader("jpeg"))
		assert.Error(t, err)
		assert.Len(t, storage.removed, 1)
	})

	t.Run("rejects bad input before touching storage", func(t *testing.T) {
		storage := &fakeStorage{}
		svc := profile.NewService(new(mocks.VolunteerRepository), storage, testConfig())

		_, err := svc.UploadAvatar(ctx, userID, "application/pdf", 10, strings.NewReader("pdf"))
		assert.ErrorIs(t, err, profile.ErrUnsupportedAvatar)

		_, err = svc.UploadAvatar(ctx, userID, "image/png", profile.MaxAvatarSize+1, strings.NewReader(""))
		assert.ErrorIs(t, err, profile.ErrAvatarTooLarge)
		assert.Empty(t, storage.puts)
	})

	t.Run("no storage configured", func(t *testing.T) {
		svc := profile.NewService(new(mocks.VolunteerRepository), nil, testConfig())
		_, err := svc.UploadAvatar(ctx, userID, "image/png", 1, strings.NewReader("x"))
		assert.ErrorIs(t, err, profile.ErrStorageUnavailable)
	})
}
