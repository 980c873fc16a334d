package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/refine-admin-api/internal/dto"
	"github.com/noah-isme/refine-admin-api/internal/models"
)

type roleServiceMock struct {
	last dto.CreateRoleRequest
}

func (m *roleServiceMock) List(ctx context.Context, q models.ListQuery) ([]models.Role, int, error) {
	return []models.Role{{ID: 1, Name: "Admin"}, {ID: 2, Name: "Editor"}}, 2, nil
}

func (m *roleServiceMock) Get(ctx context.Context, id int64) (*models.Role, error) {
	return &models.Role{ID: id, Name: "Admin"}, nil
}

func (m *roleServiceMock) Create(ctx context.Context, req dto.CreateRoleRequest) (*models.Role, error) {
	m.last = req
	in := req.Input()
	return &models.Role{ID: 3, Name: in.Name, Description: in.Description}, nil
}

func TestRoleHandlerCreateNestedPayload(t *testing.T) {
	svc := &roleServiceMock{}
	h := NewRoleHandler(svc)
	r := newTestRouter(adminClaims)
	r.GET("/roles", h.List)
	r.POST("/roles", h.Create)

	w := doRequest(t, r, http.MethodPost, "/roles", `{"role":{"name":"Mocked","description":"for demos"}}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.last.Role)
	assert.Equal(t, "Mocked", svc.last.Input().Name)
	assert.JSONEq(t, `{"id":3,"name":"Mocked","description":"for demos","createdAt":"0001-01-01T00:00:00Z"}`, w.Body.String())

	w = doRequest(t, r, http.MethodPost, "/roles", `{"name":"Flat"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, svc.last.Role)
	assert.Equal(t, "Flat", svc.last.Input().Name)

	w = doRequest(t, r, http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-Total-Count"))
}
