package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/refine-admin-api/internal/models"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
)

type authServiceMock struct {
	loginReq      models.LoginRequest
	revokedToken  string
	revokedUserID string
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	m.loginReq = req
	if req.Password != "admin" {
		return nil, appErrors.ErrInvalidCredentials
	}
	return &models.LoginResponse{AccessToken: "access", RefreshToken: "refresh", User: models.UserInfo{ID: "u-admin", Username: req.Username, Role: models.RoleAdmin}}, nil
}

func (m *authServiceMock) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.RefreshTokenResponse, error) {
	return &models.RefreshTokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
}

func (m *authServiceMock) Logout(ctx context.Context, refreshToken string, userID string, meta models.LoginRequest) error {
	m.revokedToken, m.revokedUserID = refreshToken, userID
	return nil
}

func (m *authServiceMock) Identity(ctx context.Context, userID string) (*models.UserInfo, error) {
	return &models.UserInfo{ID: userID, Username: "admin", Role: models.RoleAdmin}, nil
}

func authRouter(svc authService, claims *models.JWTClaims) http.Handler {
	h := NewAuthHandler(svc)
	r := newTestRouter(claims)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", h.Me)
	r.GET("/auth/permissions", h.Permissions)
	return r
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &authServiceMock{}
	r := authRouter(svc, nil)

	w := doRequest(t, r, http.MethodPost, "/auth/login", map[string]string{"username": "admin", "password": "admin"})
	require.Equal(t, http.StatusOK, w.Code)
	var res models.LoginResponse
	decodeData(t, w, &res)
	assert.Equal(t, "access", res.AccessToken)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
	assert.NotEmpty(t, svc.loginReq.IP)

	w = doRequest(t, r, http.MethodPost, "/auth/login", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/auth/login", "not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerRequiresClaims(t *testing.T) {
	r := authRouter(&authServiceMock{}, nil)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, r, http.MethodGet, "/auth/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, r, http.MethodGet, "/auth/permissions", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, r, http.MethodPost, "/auth/logout", map[string]string{"refresh_token": "x"}).Code)
}

func TestAuthHandlerIdentityAndPermissions(t *testing.T) {
	svc := &authServiceMock{}
	r := authRouter(svc, editorClaims)

	w := doRequest(t, r, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var info models.UserInfo
	decodeData(t, w, &info)
	assert.Equal(t, "u-editor", info.ID)

	w = doRequest(t, r, http.MethodGet, "/auth/permissions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var perms map[string]string
	decodeData(t, w, &perms)
	assert.Equal(t, "EDITOR", perms["role"])

	w = doRequest(t, r, http.MethodPost, "/auth/logout", map[string]string{"refresh_token": "r-1"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "r-1", svc.revokedToken)
	assert.Equal(t, "u-editor", svc.revokedUserID)
}
