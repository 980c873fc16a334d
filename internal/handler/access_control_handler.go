package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/refine-admin-api/internal/middleware"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
	"github.com/noah-isme/refine-admin-api/pkg/response"
)

// AccessControlHandler answers the dashboard's can(resource, action) checks.
type AccessControlHandler struct {
	access middleware.AccessChecker
}

// NewAccessControlHandler constructs an AccessControlHandler.
func NewAccessControlHandler(access middleware.AccessChecker) *AccessControlHandler {
	return &AccessControlHandler{access: access}
}

// Can godoc
// @Summary Check access
// @Description Returns {can, reason} for the current user's role.
// @Tags Access Control
// @Produce json
// @Param resource query string true "Resource name"
// @Param action query string true "Action (list, show, create, edit, delete, export)"
// @Success 200 {object} models.AccessDecision
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /access-control/can [get]
func (h *AccessControlHandler) Can(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	resource, action := c.Query("resource"), c.Query("action")
	if resource == "" || action == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "resource and action are required"))
		return
	}
	response.Raw(c, http.StatusOK, h.access.Can(claims.Role, resource, action))
}
