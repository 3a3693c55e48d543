// Package testutils provides the shared end-to-end test suite: an in-memory
// SQLite database, the full Fiber app and request helpers.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/balabank/infra/database"
	"github.com/amirasaad/balabank/infra/initializer"
	infrarepo "github.com/amirasaad/balabank/infra/repository"
	"github.com/amirasaad/balabank/pkg/config"
	"github.com/amirasaad/balabank/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory SQLite database and migrates the schema.
// Each call gets its own named memory database so suites stay isolated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// NewTestConfig returns a config suitable for tests: fixed JWT secret and a
// rate limit high enough to never trip.
func NewTestConfig() *config.App {
	return &config.App{
		Env:    "test",
		Server: &config.Server{Host: "localhost", Port: 3000},
		Log:    &config.Log{},
		DB:     &config.DB{},
		Jwt:    &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: &config.RateLimit{
			MaxRequests: 100000,
			Window:      time.Minute,
		},
		Bank: &config.Bank{SignupBonus: decimal.RequireFromString("10000.00")},
	}
}

// E2ETestSuite runs the full HTTP surface against an in-memory database.
type E2ETestSuite struct {
	suite.Suite
	DB  *gorm.DB
	App *fiber.App
	Cfg *config.App
}

// SetupTest gives every test a fresh database and app.
func (s *E2ETestSuite) SetupTest() {
	s.Cfg = NewTestConfig()
	s.DB = NewTestDB(s.T())
	deps := &initializer.Deps{
		Config: s.Cfg,
		Logger: slog.New(slog.DiscardHandler),
		DB:     s.DB,
		Uow:    infrarepo.NewUoW(s.DB),
	}
	s.App = webapi.SetupApp(deps)
}

// MakeRequest is a helper for making HTTP requests in tests.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.App.Test(req, 10000)
	s.Require().NoError(err)
	return resp
}

// DecodeData unmarshals the "data" field of the success envelope into out.
func (s *E2ETestSuite) DecodeData(resp *http.Response, out any) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	s.Require().NoError(json.Unmarshal(envelope.Data, out))
}

// RegisterFamily registers a parent with a family and returns their token.
func (s *E2ETestSuite) RegisterFamily(phone, familyName string) string {
	body := fmt.Sprintf(`{
		"phone_number": %q, "password": "secret123",
		"surname": "Stark", "name": "Ned", "patronymic": "Rickardovich",
		"age": 45, "family_name": %q
	}`, phone, familyName)
	resp := s.MakeRequest("POST", "/auth/register-family", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	return s.Login(phone)
}

// Register registers a standalone user (no family, no role).
func (s *E2ETestSuite) Register(phone string) {
	body := fmt.Sprintf(`{
		"phone_number": %q, "password": "secret123",
		"surname": "Stark", "name": "Arya", "patronymic": "Nedovna",
		"age": 14
	}`, phone)
	resp := s.MakeRequest("POST", "/auth/register", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
}

// Login authenticates with the default test password and returns the token.
func (s *E2ETestSuite) Login(phone string) string {
	body := fmt.Sprintf(`{"phone_number": %q, "password": "secret123"}`, phone)
	resp := s.MakeRequest("POST", "/auth/login", body, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var data struct {
		Token string `json:"token"`
	}
	s.DecodeData(resp, &data)
	s.Require().NotEmpty(data.Token)
	return data.Token
}
