package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	mw "app/internal/middleware"
	"app/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type GuardUserRepoMock struct{ mock.Mock }

func (m *GuardUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in guard tests")
}

func (m *GuardUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *GuardUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used in guard tests")
}

func (m *GuardUserRepoMock) Update(ctx context.Context, user *model.User) error {
	panic("not used in guard tests")
}

func (m *GuardUserRepoMock) AppendHistory(ctx context.Context, userID int64, entries []model.PurchaseHistory) error {
	panic("not used in guard tests")
}

var _ repository.UserRepository = (*GuardUserRepoMock)(nil)

const testSecret = "test_secret"

func signToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

// :userIdつきのリクエストをミドルウェアチェーンに通す
func runChain(t *testing.T, token string, pathUserID string, userRepo repository.UserRepository, withAdmin bool) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues(pathUserID)

	cfg := config.Config{JWTSecret: testSecret}

	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
	}
	chain := mw.OwnerGuard(userRepo)(handler)
	if withAdmin {
		chain = mw.OwnerGuard(userRepo)(mw.AdminRoleGuard()(handler))
	}
	chain = mw.AuthJWT(cfg)(chain)

	err := chain(c)
	assert.NoError(t, err)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT_MissingToken(t *testing.T) {
	rec := runChain(t, "", "1", new(GuardUserRepoMock), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BadSignature(t *testing.T) {
	bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 1, "role": "USER", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other_secret"))
	assert.NoError(t, err)

	rec := runChain(t, bad, "1", new(GuardUserRepoMock), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 1, "role": "USER",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	rec := runChain(t, expired, "1", new(GuardUserRepoMock), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// OwnerGuard
// =====================

func TestOwnerGuard_UnknownPathUser_Is400(t *testing.T) {
	userRepo := new(GuardUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(9)).Return(nil, repository.ErrUserNotFound)

	rec := runChain(t, signToken(t, 1, "USER"), "9", userRepo, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User not found", errorBody(t, rec))
}

func TestOwnerGuard_NonOwner_Is403(t *testing.T) {
	userRepo := new(GuardUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(2)).
		Return(&model.User{ID: 2, Role: model.RoleUser}, nil)

	//tokenの本人はid=1、パスはid=2
	rec := runChain(t, signToken(t, 1, "USER"), "2", userRepo, false)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied!", errorBody(t, rec))
}

func TestOwnerGuard_Owner_Passes(t *testing.T) {
	userRepo := new(GuardUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Role: model.RoleUser}, nil)

	rec := runChain(t, signToken(t, 1, "USER"), "1", userRepo, false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =====================
// AdminRoleGuard
// =====================

func TestAdminRoleGuard_UserRole_Is403(t *testing.T) {
	userRepo := new(GuardUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Role: model.RoleUser}, nil)

	rec := runChain(t, signToken(t, 1, "USER"), "1", userRepo, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin resource! Access denied!", errorBody(t, rec))
}

func TestAdminRoleGuard_AdminRole_Passes(t *testing.T) {
	userRepo := new(GuardUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Role: model.RoleAdmin}, nil)

	rec := runChain(t, signToken(t, 1, "ADMIN"), "1", userRepo, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}
