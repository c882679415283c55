package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sync"
	"testing"

	"ume_backend/internal/email"
	"ume_backend/internal/models"
	"ume_backend/internal/repositories"
	"ume_backend/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- in-memory репозитории: аргумент db игнорируется ---

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateStatus(_ *gorm.DB, userID uint, status models.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Status = status
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ *gorm.DB, userID uint, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	hash := passwordHash
	user.PasswordHash = &hash
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ *gorm.DB, userID uint, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			user.Name = value.(string)
		case "height":
			user.Height = value.(int)
		case "body_type":
			user.BodyType = models.BodyType(value.(string))
		case "city_id":
			user.CityID = value.(uint)
		case "bio":
			bio := value.(string)
			user.Bio = &bio
		case "desires":
			desires := value.(string)
			user.Desires = &desires
		}
	}
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ *gorm.DB, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.AuthToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.AuthToken)}
}

func (r *fakeTokenRepo) Create(_ *gorm.DB, token *models.AuthToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *fakeTokenRepo) FindByToken(_ *gorm.DB, token string) (*models.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	authToken, ok := r.tokens[token]
	if !ok {
		return nil, repositories.ErrTokenNotFound
	}
	copied := *authToken
	return &copied, nil
}

func (r *fakeTokenRepo) Deactivate(_ *gorm.DB, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if authToken, ok := r.tokens[token]; ok {
		authToken.IsActive = false
	}
	return nil
}

func (r *fakeTokenRepo) DeactivateByUserID(_ *gorm.DB, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, authToken := range r.tokens {
		if authToken.UserID == userID {
			authToken.IsActive = false
		}
	}
	return nil
}

func (r *fakeTokenRepo) activeCount(userID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, authToken := range r.tokens {
		if authToken.UserID == userID && authToken.IsActive {
			count++
		}
	}
	return count
}

type fakePhotoRepo struct {
	mu     sync.Mutex
	nextID uint
	photos []models.Photo
	// createErr позволяет сымитировать отказ фиксации
	createErr error
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{nextID: 1}
}

func (r *fakePhotoRepo) CreateBatch(_ *gorm.DB, photos []*models.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, photo := range photos {
		photo.ID = r.nextID
		r.nextID++
		r.photos = append(r.photos, *photo)
	}
	return nil
}

func (r *fakePhotoRepo) CountByUser(_ *gorm.DB, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, photo := range r.photos {
		if photo.UserID == userID && photo.PhotoType != models.PhotoTypeVerification {
			count++
		}
	}
	return count, nil
}

func (r *fakePhotoRepo) FindByUser(_ *gorm.DB, userID uint) ([]models.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var photos []models.Photo
	for _, photo := range r.photos {
		if photo.UserID == userID {
			photos = append(photos, photo)
		}
	}
	return photos, nil
}

func (r *fakePhotoRepo) HasAvatar(_ *gorm.DB, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, photo := range r.photos {
		if photo.UserID == userID && photo.PhotoType == models.PhotoTypeAvatar {
			return true, nil
		}
	}
	return false, nil
}

type fakeCityRepo struct {
	cities map[uint]models.City
}

func newFakeCityRepo(cities ...models.City) *fakeCityRepo {
	repo := &fakeCityRepo{cities: make(map[uint]models.City)}
	for _, city := range cities {
		repo.cities[city.ID] = city
	}
	return repo
}

func (r *fakeCityRepo) FindAll(_ *gorm.DB) ([]models.City, error) {
	var cities []models.City
	for _, city := range r.cities {
		cities = append(cities, city)
	}
	return cities, nil
}

func (r *fakeCityRepo) SearchByPrefix(_ *gorm.DB, prefix string, limit int) ([]models.City, error) {
	var cities []models.City
	for _, city := range r.cities {
		if len(cities) >= limit {
			break
		}
		if len(city.Name) >= len(prefix) && city.Name[:len(prefix)] == prefix {
			cities = append(cities, city)
		}
	}
	return cities, nil
}

func (r *fakeCityRepo) FindByID(_ *gorm.DB, id uint) (*models.City, error) {
	city, ok := r.cities[id]
	if !ok {
		return nil, repositories.ErrCityNotFound
	}
	return &city, nil
}

// --- хранилище файлов в памяти ---

type fakeStorage struct {
	mu         sync.Mutex
	files      map[string][]byte
	failOnSave int // номер вызова Save, начиная с 1, который падает; 0 - не падает
	saveCalls  int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.failOnSave != 0 && s.saveCalls >= s.failOnSave {
		return errors.New("storage write failed")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *fakeStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *fakeStorage) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok, nil
}

func (s *fakeStorage) GetURL(_ context.Context, path string) (string, error) {
	return "http://files.test/" + path, nil
}

func (s *fakeStorage) fileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// --- почтовый провайдер с сигналом об отправке ---

type fakeEmailProvider struct {
	mu   sync.Mutex
	sent []string // адресаты
	done chan struct{}
}

func newFakeEmailProvider() *fakeEmailProvider {
	return &fakeEmailProvider{done: make(chan struct{}, 16)}
}

func (p *fakeEmailProvider) Send(msg *email.Email) error {
	p.mu.Lock()
	p.sent = append(p.sent, msg.To...)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *fakeEmailProvider) SendPassword(to string, _ string) error {
	p.mu.Lock()
	p.sent = append(p.sent, to)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func (p *fakeEmailProvider) Validate() error { return nil }

func (p *fakeEmailProvider) sentTo() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.sent...)
}

func requireAppError(t *testing.T, err error, code apperrors.ErrorCode, httpCode int) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
	require.Equal(t, httpCode, appErr.HTTPCode)
	return appErr
}

// makeFileHeader собирает multipart.FileHeader с рабочим Open()
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	headers := form.File["file"]
	require.Len(t, headers, 1)
	return headers[0]
}
