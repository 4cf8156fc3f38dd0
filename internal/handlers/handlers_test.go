package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/grampanchayat/tax_collection/internal/config"
	"github.com/grampanchayat/tax_collection/internal/hash"
	authmw "github.com/grampanchayat/tax_collection/internal/middleware/auth"
	"github.com/grampanchayat/tax_collection/internal/models"
	"github.com/grampanchayat/tax_collection/internal/repo"
	"github.com/grampanchayat/tax_collection/internal/service"
	"github.com/grampanchayat/tax_collection/internal/tokens"
)

type testEnv struct {
	e           *echo.Echo
	db          *gorm.DB
	repo        *repo.GormRepo
	svc         *service.AuthService
	mw          *authmw.Middleware
	auth        *AuthHandler
	users       *UserHandler
	houses      *HouseHandler
	assignments *AssignmentHandler
	taxRecords  *TaxRecordHandler
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	gormRepo := repo.New(db)
	codec := tokens.NewCodec([]byte("access_secret"), []byte("refresh_secret"), 30*time.Minute, 7*24*time.Hour)
	svc := &service.AuthService{Users: gormRepo, Revoked: gormRepo, Codec: codec}

	env := &testEnv{
		e:           echo.New(),
		db:          db,
		repo:        gormRepo,
		svc:         svc,
		mw:          &authmw.Middleware{Auth: svc},
		auth:        &AuthHandler{Auth: svc},
		users:       &UserHandler{Repo: gormRepo},
		houses:      &HouseHandler{Repo: gormRepo},
		assignments: &AssignmentHandler{Repo: gormRepo},
		taxRecords:  &TaxRecordHandler{Repo: gormRepo},
	}
	env.seedData(t)
	return env
}

// seedData mirrors the fixtures the API is exercised against in the field:
// an admin (who also collects), a plain collector, two houses and one
// assignment of house "1" to the collector.
func (env *testEnv) seedData(t *testing.T) {
	env.seedUser(t, "admin", "admin", "Admin", "ADMIN,COLLECTOR")
	env.seedUser(t, "collector", "collector", "Collector", "COLLECTOR")

	value := 1000000.0
	houseTax := 10000.0
	require.NoError(t, env.db.Create(&[]models.House{
		{AssessmentNumber: 1, HouseNumber: "1", HouseValue: &value, HouseTax: &houseTax, OwnerName: "Jane Doe", GuardianName: "John Doe"},
		{AssessmentNumber: 2, HouseNumber: "2", OwnerName: "Jane Doe II", GuardianName: "John Doe II"},
	}).Error)

	require.NoError(t, env.db.Create(&models.Assignment{HouseID: "1", Username: "collector"}).Error)
}

func (env *testEnv) seedUser(t *testing.T, username, password, name, roles string) {
	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&models.User{
		Username:     username,
		Name:         name,
		Phone:        1234567890,
		Roles:        models.ParseRoleSet(roles),
		PasswordHash: pwHash,
	}).Error)
}

func (env *testEnv) login(t *testing.T, username, password string) *service.LoginResult {
	result, err := env.svc.Login(context.Background(), username, password)
	require.NoError(t, err)
	return result
}

func (env *testEnv) jsonRequest(method, target string, payload interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.e.NewContext(req, rec)
}

func (env *testEnv) formRequest(target string, form url.Values) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return rec, env.e.NewContext(req, rec)
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	return he
}
