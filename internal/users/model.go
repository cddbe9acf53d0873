package users

import "time"

// Roles recognized by the service.
const (
	RoleCitizen  = "citizen"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

// User is an account with a role and, for citizens and reviewers, a region.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	Name         string
	Region       string
	Email        string
	Phone        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole reports whether role is one of the recognized roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCitizen, RoleReviewer, RoleAdmin:
		return true
	default:
		return false
	}
}
