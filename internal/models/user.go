package models

type Role string

const (
	RoleStudent Role = "student"
	RoleAgent   Role = "agent"
	RoleTutor   Role = "tutor"
	RoleVendor  Role = "vendor"
	RoleSupport Role = "support"
	RoleAdmin   Role = "admin"
)

// User identity comes from the marketplace's auth JWT; this service never
// persists users.
type User struct {
	ID    string `json:"id"` // uuid
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStudent, RoleAgent, RoleTutor, RoleVendor, RoleSupport, RoleAdmin:
		return Role(s)
	default:
		return RoleStudent
	}
}
