package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempohq/tempo-backend-go/internal/config"
	"github.com/tempohq/tempo-backend-go/internal/domain/summary"
	"github.com/tempohq/tempo-backend-go/internal/domain/target"
	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
	"github.com/tempohq/tempo-backend-go/internal/pkg/jwt"
	userService "github.com/tempohq/tempo-backend-go/internal/service/user"
)

const routerTestSecret = "test-secret-key-for-jwt"

// fakeEntryService returns canned data for routing tests.
type fakeEntryService struct {
	timeentry.TimeEntryService
}

func (f *fakeEntryService) ListAllEntries(ctx context.Context, usr user.User, filter timeentry.AdminEntryFilter) ([]timeentry.EntryResponse, error) {
	return []timeentry.EntryResponse{}, nil
}

type fakeSummaryService struct {
	summary.SummaryService
}

func (f *fakeSummaryService) Daily(ctx context.Context, usr user.User, date string) (summary.DailySummary, error) {
	return summary.DailySummary{Date: date}, nil
}

func (f *fakeSummaryService) AllUsersOverview(ctx context.Context, usr user.User, year, month int) (summary.AllUsersOverview, error) {
	return summary.AllUsersOverview{Year: year, Month: month}, nil
}

type fakeTargetService struct {
	target.TargetService
}

func (f *fakeTargetService) Progress(ctx context.Context, usr user.User, year, month int) (target.ProgressResponse, error) {
	return target.ProgressResponse{}, target.ErrNoTargetSet
}

type fakeUserRepo struct{}

func (fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{ID: id, Email: "dev@example.com", Username: "dev", Role: user.RoleNormal}, nil
}

func (fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	return []user.User{}, nil
}

func (fakeUserRepo) UpdateRole(ctx context.Context, id string, role user.Role) (user.User, error) {
	return user.User{ID: id, Role: role}, nil
}

func (fakeUserRepo) UpdateProfile(ctx context.Context, id string, email, username string, fullName *string) (user.User, error) {
	return user.User{ID: id, Email: email, Username: username, FullName: fullName, Role: user.RoleNormal}, nil
}

func newTestRouter() (http.Handler, jwt.Service) {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.FrontendURL = "http://localhost:3000"
	cfg.Storage.Type = "none"

	jwtService := jwt.NewJWTService(routerTestSecret)

	return NewRouter(
		cfg,
		jwtService,
		NewTimeEntryHandler(&fakeEntryService{}),
		NewSummaryHandler(&fakeSummaryService{}),
		NewTargetHandler(&fakeTargetService{}),
		NewCaptureHandler(nil),
		NewUserHandler(userService.NewUserService(fakeUserRepo{})),
	), jwtService
}

func authHeader(t *testing.T, jwtService jwt.Service, usr user.User) string {
	token, _, err := jwtService.GenerateAccessToken(usr, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouterRejectsMissingToken(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterRejectsBadToken(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterAcceptsValidToken(t *testing.T) {
	router, jwtService := newTestRouter()
	usr := user.User{ID: "user-1", Email: "dev@example.com", Username: "dev", Role: user.RoleNormal}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", authHeader(t, jwtService, usr))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "dev@example.com", body.Data.Email)
}

func TestRouterGatesAdminRoutesByPermission(t *testing.T) {
	router, jwtService := newTestRouter()

	normal := user.User{ID: "user-1", Role: user.RoleNormal}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/time-entries", nil)
	req.Header.Set("Authorization", authHeader(t, jwtService, normal))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	boss := user.User{ID: "boss-1", Role: user.RoleBoss}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/time-entries", nil)
	req.Header.Set("Authorization", authHeader(t, jwtService, boss))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterGatesAdminSummary(t *testing.T) {
	router, jwtService := newTestRouter()

	normal := user.User{ID: "user-1", Role: user.RoleNormal}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/summary?year=2024&month=1", nil)
	req.Header.Set("Authorization", authHeader(t, jwtService, normal))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	boss := user.User{ID: "boss-1", Role: user.RoleBoss}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/summary?year=2024&month=1", nil)
	req.Header.Set("Authorization", authHeader(t, jwtService, boss))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterGatesUserPermissionsLookup(t *testing.T) {
	router, jwtService := newTestRouter()
	path := "/api/v1/permissions/users/11111111-1111-4111-8111-111111111111"

	normal := user.User{ID: "user-1", Role: user.RoleNormal}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", authHeader(t, jwtService, normal))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	boss := user.User{ID: "boss-1", Role: user.RoleBoss}
	req = httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", authHeader(t, jwtService, boss))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterGatesRoleManagement(t *testing.T) {
	router, jwtService := newTestRouter()

	boss := user.User{ID: "boss-1", Role: user.RoleBoss}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/permissions/roles", nil)
	req.Header.Set("Authorization", authHeader(t, jwtService, boss))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := user.User{ID: "admin-1", Role: user.RoleAdmin}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/permissions/roles", nil)
	req.Header.Set("Authorization", authHeader(t, jwtService, admin))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterNoTargetSetReadsAsSuccess(t *testing.T) {
	router, jwtService := newTestRouter()
	usr := user.User{ID: "user-1", Role: user.RoleNormal}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/targets/progress?year=2024&month=1", nil)
	req.Header.Set("Authorization", authHeader(t, jwtService, usr))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "No target set for this month", body.Message)
}
