package users

import "context"

// Repo defines persistence operations for users.
type Repo interface {
	// Create inserts a new user. Returns ErrDuplicateUser when the username is taken.
	Create(ctx context.Context, user User) error
	// GetByUsernameAndRole looks a user up by its login key.
	GetByUsernameAndRole(ctx context.Context, username, role string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]User, error)
	// ListByRole returns users with the given role, ordered by display name.
	ListByRole(ctx context.Context, role string) ([]User, error)
	// CountByRole returns the number of users per role.
	CountByRole(ctx context.Context) (map[string]int, error)
}
