package service

import (
	"github.com/noah-isme/refine-admin-api/internal/models"
)

// ReasonUnauthorized is returned with every denied decision.
const ReasonUnauthorized = "Unauthorized"

// AccessControlService answers the dashboard's can(resource, action) checks.
type AccessControlService struct{}

// NewAccessControlService constructs the access control service.
func NewAccessControlService() *AccessControlService {
	return &AccessControlService{}
}

// Can decides whether role may perform action on resource. Only category
// mutations are restricted, and only admins may perform them.
func (s *AccessControlService) Can(role models.UserRole, resource, action string) models.AccessDecision {
	if resource == models.ResourceCategories && isMutation(action) && role != models.RoleAdmin {
		return models.AccessDecision{Can: false, Reason: ReasonUnauthorized}
	}
	return models.AccessDecision{Can: true}
}

func isMutation(action string) bool {
	switch action {
	case models.ActionEdit, models.ActionCreate, models.ActionDelete:
		return true
	default:
		return false
	}
}
