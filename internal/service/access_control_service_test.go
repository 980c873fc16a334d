package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/refine-admin-api/internal/models"
)

func TestAccessControlServiceCan(t *testing.T) {
	svc := NewAccessControlService()
	denied := models.AccessDecision{Can: false, Reason: "Unauthorized"}
	allowed := models.AccessDecision{Can: true}

	cases := []struct {
		name     string
		role     models.UserRole
		resource string
		action   string
		want     models.AccessDecision
	}{
		{"editor edits category", models.RoleEditor, models.ResourceCategories, models.ActionEdit, denied},
		{"editor creates category", models.RoleEditor, models.ResourceCategories, models.ActionCreate, denied},
		{"editor deletes category", models.RoleEditor, models.ResourceCategories, models.ActionDelete, denied},
		{"anonymous deletes category", "", models.ResourceCategories, models.ActionDelete, denied},
		{"editor lists categories", models.RoleEditor, models.ResourceCategories, models.ActionList, allowed},
		{"editor shows category", models.RoleEditor, models.ResourceCategories, models.ActionShow, allowed},
		{"admin edits category", models.RoleAdmin, models.ResourceCategories, models.ActionEdit, allowed},
		{"admin deletes category", models.RoleAdmin, models.ResourceCategories, models.ActionDelete, allowed},
		{"editor deletes post", models.RoleEditor, models.ResourcePosts, models.ActionDelete, allowed},
		{"editor creates role", models.RoleEditor, models.ResourceRoles, models.ActionCreate, allowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, svc.Can(tc.role, tc.resource, tc.action))
		})
	}
}
