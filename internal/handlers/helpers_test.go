package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"studyhub/internal/config"
	"studyhub/internal/database"
	"studyhub/internal/models"
	"studyhub/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sentMail struct {
	To, Subject, HTML string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

type fakeStorage struct {
	mu        sync.Mutex
	uploads   map[string][]byte
	deleted   []string
	deleteErr error
	seq       int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string][]byte{}}
}

func (s *fakeStorage) UploadPDF(_ context.Context, r io.Reader) (*services.StoredFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("pdf-uploads/file-%d", s.seq)
	s.uploads[id] = data
	return &services.StoredFile{URL: "https://cdn.example.com/" + id + ".pdf", PublicID: id}, nil
}

func (s *fakeStorage) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, publicID)
	delete(s.uploads, publicID)
	return nil
}

var errSMTPDown = errors.New("smtp unavailable")

type testServer struct {
	e       *echo.Echo
	db      *gorm.DB
	tokens  *services.TokenService
	mailer  *fakeMailer
	storage *fakeStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	ts := &testServer{
		e:       echo.New(),
		db:      db,
		tokens:  services.NewTokenService("test-secret"),
		mailer:  &fakeMailer{},
		storage: newFakeStorage(),
	}
	cfg := &config.Config{MaxUploadSize: 1 << 20}
	h := NewHandler(db, cfg, ts.tokens, ts.mailer, ts.storage, zap.NewNop())
	RegisterRoutes(ts.e.Group("/api"), h)
	return ts
}

// createUser stores a verified user. The password hash is only valid when
// password is non-empty.
func (ts *testServer) createUser(t *testing.T, email, role, password string) *models.User {
	t.Helper()
	hash := "unused"
	if password != "" {
		var err error
		hash, err = services.HashPassword(password)
		require.NoError(t, err)
	}
	user := &models.User{
		FullName:          "Test " + role,
		Email:             email,
		Password:          hash,
		Role:              role,
		IsAccountVerified: true,
	}
	require.NoError(t, ts.db.Create(user).Error)
	return user
}

func (ts *testServer) cookieFor(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, err := ts.tokens.Issue(user.Email, user.Role)
	require.NoError(t, err)
	return &http.Cookie{Name: services.TokenCookie, Value: token}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
