package auth

// Package auth contains domain-level types for identity and authorization.
// It is pure and free of transport/adapter concerns.

// Role represents an application's authorization role.
// Keep string form for easy persistence and JSON transport.
// Valid values are defined as constants below.
type Role string

const (
	RoleGroupAdmin          Role = "group_admin"
	RoleACCAdmin            Role = "acc_admin"
	RoleTrainingCenterAdmin Role = "training_center_admin"
	RoleInstructor          Role = "instructor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGroupAdmin, RoleACCAdmin, RoleTrainingCenterAdmin, RoleInstructor:
		return true
	}
	return false
}

// Status represents an account's approval state.
type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusInactive Status = "inactive"
)

// User is the authenticated principal returned by the accreditation API.
// It is owned exclusively by the session manager: replaced wholesale on
// login/refresh, cleared on logout.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

// IsActive reports whether the account is fully approved.
func (u User) IsActive() bool { return u.Status == StatusActive }

// RequiresApproval reports whether the role goes through the
// pending-account approval workflow before full access.
func (u User) RequiresApproval() bool {
	return u.Role == RoleACCAdmin || u.Role == RoleTrainingCenterAdmin
}
