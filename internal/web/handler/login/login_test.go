package login

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/auth"
	"github.com/trofos-project/trofos/internal/config"
	"github.com/trofos-project/trofos/internal/db/models"
	websess "github.com/trofos-project/trofos/internal/web/session"
)

// testStorage is a minimal in-memory implementation of storage.Storage.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ storage.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.data[key]
	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")

	require.NoError(t, db.AutoMigrate(&models.Role{}, &models.User{}))

	roles := []models.Role{
		{ID: models.RoleAdminID, Name: models.RoleAdminName},
		{ID: models.RoleFacultyID, Name: models.RoleFacultyName},
		{ID: models.RoleStudentID, Name: models.RoleStudentName},
	}
	require.NoError(t, db.Create(&roles).Error)

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}
}

func newLoginApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	websess.Init(&testStorage{data: make(map[string][]byte)})

	app := fiber.New()

	var s Service
	require.NoError(t, s.Init(app, newTestConfig(), db))

	return app
}

func postLogin(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestPostLoginSuccess(t *testing.T) {
	db := newTestDB(t)
	app := newLoginApp(t, db)

	_, err := auth.NewLocalProvider(db).CreateUser("s1@test.com", "secret", "Student One", models.RoleStudentID)
	require.NoError(t, err)

	resp := postLogin(t, app, `{"email":"s1@test.com","password":"secret"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session" {
			sessionCookie = cookie
		}
	}

	require.NotNil(t, sessionCookie, "login must set a session cookie")
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)

	// The session must be readable through the store.
	sessData := new(websess.Data)
	require.NoError(t, sessData.Read(sessionCookie.Value))
	assert.Equal(t, "s1@test.com", sessData.User.Email)
}

func TestPostLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	app := newLoginApp(t, db)

	_, err := auth.NewLocalProvider(db).CreateUser("s1@test.com", "secret", "Student One", models.RoleStudentID)
	require.NoError(t, err)

	resp := postLogin(t, app, `{"email":"s1@test.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Cookies())
}

func TestPostLoginUnknownUser(t *testing.T) {
	db := newTestDB(t)
	app := newLoginApp(t, db)

	resp := postLogin(t, app, `{"email":"nobody@test.com","password":"secret"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPostLoginInvalidBody(t *testing.T) {
	db := newTestDB(t)
	app := newLoginApp(t, db)

	resp := postLogin(t, app, "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInitNilArgs(t *testing.T) {
	var s Service

	assert.Error(t, s.Init(nil, nil, nil))
}
