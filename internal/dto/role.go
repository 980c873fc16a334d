package dto

// RoleInput names a role and describes it.
type RoleInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// CreateRoleRequest accepts either {"role": {...}} as the roles form submits
// it, or the flat {name, description} object.
type CreateRoleRequest struct {
	Role *RoleInput `json:"role"`
	RoleInput
}

// Input returns the role being created, preferring the nested object.
func (r CreateRoleRequest) Input() RoleInput {
	if r.Role != nil {
		return *r.Role
	}
	return r.RoleInput
}
