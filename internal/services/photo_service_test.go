package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"ume_backend/internal/models"
	"ume_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMaxPhotos   = 6
	testMaxFileSize = 1 << 10
)

type photoFixture struct {
	svc       PhotoService
	userRepo  *fakeUserRepo
	photoRepo *fakePhotoRepo
	storage   *fakeStorage
}

func newPhotoFixture() *photoFixture {
	userRepo := newFakeUserRepo()
	photoRepo := newFakePhotoRepo()
	st := newFakeStorage()
	return &photoFixture{
		svc:       NewPhotoService(userRepo, photoRepo, st, testMaxPhotos, testMaxFileSize),
		userRepo:  userRepo,
		photoRepo: photoRepo,
		storage:   st,
	}
}

func (f *photoFixture) seedActiveUser(t *testing.T) *models.User {
	t.Helper()
	user := &models.User{
		Email:     "anna@example.com",
		Name:      "Анна",
		BirthDate: time.Date(1995, 5, 15, 0, 0, 0, 0, time.UTC),
		Status:    models.StatusActive,
		CityID:    1,
	}
	require.NoError(t, f.userRepo.Create(nil, user))
	return user
}

func galleryFiles(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	files := make([]*multipart.FileHeader, 0, len(names))
	for _, name := range names {
		files = append(files, makeFileHeader(t, name, []byte("photo-bytes")))
	}
	return files
}

func TestPhotoService_Upload(t *testing.T) {
	f := newPhotoFixture()
	user := f.seedActiveUser(t)

	resp, err := f.svc.UploadProfilePhotos(context.Background(), nil, user.ID,
		galleryFiles(t, "one.jpg", "two.webp"))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	require.Len(t, resp.Paths, 2)
	assert.Contains(t, resp.Paths[0], "users/1/gallery_")
	assert.Equal(t, 2, f.storage.fileCount())

	photos, err := f.photoRepo.FindByUser(nil, user.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	for _, photo := range photos {
		assert.Equal(t, models.PhotoTypeGallery, photo.PhotoType)
	}
}

func TestPhotoService_UploadNoFiles(t *testing.T) {
	f := newPhotoFixture()
	user := f.seedActiveUser(t)

	_, err := f.svc.UploadProfilePhotos(context.Background(), nil, user.ID, nil)
	requireAppError(t, err, apperrors.CodeValidationError, http.StatusBadRequest)
}

func TestPhotoService_UploadBadExtensionRejectsBatch(t *testing.T) {
	f := newPhotoFixture()
	user := f.seedActiveUser(t)

	_, err := f.svc.UploadProfilePhotos(context.Background(), nil, user.ID,
		galleryFiles(t, "ok.jpg", "bad.gif"))
	requireAppError(t, err, apperrors.CodeUnsupportedMediaType, http.StatusUnsupportedMediaType)

	// Пакет отклонен целиком, валидный файл тоже не записан
	assert.Equal(t, 0, f.storage.fileCount())
	photos, err := f.photoRepo.FindByUser(nil, user.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestPhotoService_UploadOversizedFileRejectsBatch(t *testing.T) {
	f := newPhotoFixture()
	user := f.seedActiveUser(t)

	files := []*multipart.FileHeader{
		makeFileHeader(t, "ok.jpg", []byte("photo-bytes")),
		makeFileHeader(t, "big.jpg", bytes.Repeat([]byte("a"), testMaxFileSize+1)),
	}
	_, err := f.svc.UploadProfilePhotos(context.Background(), nil, user.ID, files)
	requireAppError(t, err, apperrors.CodeValidationError, http.StatusBadRequest)

	// Пакет отклонен до первой записи
	assert.Equal(t, 0, f.storage.fileCount())
	photos, err := f.photoRepo.FindByUser(nil, user.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestPhotoService_UploadUnknownUser(t *testing.T) {
	f := newPhotoFixture()

	_, err := f.svc.UploadProfilePhotos(context.Background(), nil, 99,
		galleryFiles(t, "one.jpg"))
	requireAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)
	assert.Equal(t, 0, f.storage.fileCount())
}

func TestPhotoService_UploadQuotaExceeded(t *testing.T) {
	f := newPhotoFixture()
	user := f.seedActiveUser(t)

	existing := make([]*models.Photo, 0, testMaxPhotos-1)
	for i := 0; i < testMaxPhotos-1; i++ {
		existing = append(existing, &models.Photo{
			UserID:    user.ID,
			FilePath:  "users/1/seeded.jpg",
			PhotoType: models.PhotoTypeGallery,
		})
	}
	require.NoError(t, f.photoRepo.CreateBatch(nil, existing))

	_, err := f.svc.UploadProfilePhotos(context.Background(), nil, user.ID,
		galleryFiles(t, "one.jpg", "two.jpg"))
	requireAppError(t, err, apperrors.CodeQuotaExceeded, http.StatusBadRequest)

	// Состояние не изменилось
	assert.Equal(t, 0, f.storage.fileCount())
	count, err := f.photoRepo.CountByUser(nil, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(testMaxPhotos-1), count)

	// Одно фото в остаток квоты помещается
	_, err = f.svc.UploadProfilePhotos(context.Background(), nil, user.ID,
		galleryFiles(t, "one.jpg"))
	assert.NoError(t, err)
}

// Верификационное фото не занимает квоту галереи
func TestPhotoService_VerificationPhotoNotCounted(t *testing.T) {
	f := newPhotoFixture()
	user := f.seedActiveUser(t)

	seed := []*models.Photo{
		{UserID: user.ID, FilePath: "users/1/verification.jpg", PhotoType: models.PhotoTypeVerification},
	}
	for i := 0; i < testMaxPhotos-1; i++ {
		seed = append(seed, &models.Photo{
			UserID:    user.ID,
			FilePath:  "users/1/seeded.jpg",
			PhotoType: models.PhotoTypeGallery,
		})
	}
	require.NoError(t, f.photoRepo.CreateBatch(nil, seed))

	_, err := f.svc.UploadProfilePhotos(context.Background(), nil, user.ID,
		galleryFiles(t, "one.jpg"))
	assert.NoError(t, err)
}

func TestPhotoService_UploadWriteFails(t *testing.T) {
	f := newPhotoFixture()
	user := f.seedActiveUser(t)
	f.storage.failOnSave = 2

	_, err := f.svc.UploadProfilePhotos(context.Background(), nil, user.ID,
		galleryFiles(t, "one.jpg", "two.jpg"))
	requireAppError(t, err, apperrors.CodeInternalError, http.StatusInternalServerError)

	assert.Equal(t, 0, f.storage.fileCount())
	photos, err := f.photoRepo.FindByUser(nil, user.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestPhotoService_UploadPersistFailsCleansFiles(t *testing.T) {
	f := newPhotoFixture()
	user := f.seedActiveUser(t)
	f.photoRepo.createErr = errors.New("insert failed")

	_, err := f.svc.UploadProfilePhotos(context.Background(), nil, user.ID,
		galleryFiles(t, "one.jpg", "two.jpg"))
	requireAppError(t, err, apperrors.CodeInternalError, http.StatusInternalServerError)
	assert.Equal(t, 0, f.storage.fileCount())
}
