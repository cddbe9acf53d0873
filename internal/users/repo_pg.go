package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, username, password_hash, role, name, region, email, phone, address, created_at, updated_at`

// Create inserts a new user.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, password_hash, role, name, region, email, phone, address, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`

	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Name,
		nullableString(user.Region),
		nullableString(user.Email),
		nullableString(user.Phone),
		nullableString(user.Address),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

// GetByUsernameAndRole looks a user up by its login key.
func (r *PGRepo) GetByUsernameAndRole(ctx context.Context, username, role string) (User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE username = $1 AND role = $2
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username, role))
}

// GetByID fetches a user by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// List returns every user, newest first.
func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at DESC`
	return r.queryUsers(ctx, query)
}

// ListByRole returns users with the given role, ordered by display name.
func (r *PGRepo) ListByRole(ctx context.Context, role string) ([]User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE role = $1
ORDER BY name`
	return r.queryUsers(ctx, query, role)
}

// CountByRole returns the number of users per role.
func (r *PGRepo) CountByRole(ctx context.Context) (map[string]int, error) {
	const query = `
SELECT role, COUNT(*)
FROM users
GROUP BY role`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	return counts, rows.Err()
}

func (r *PGRepo) queryUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	user, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func scanUser(scan func(dest ...any) error) (User, error) {
	var user User
	var region, email, phone, address sql.NullString
	err := scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Name,
		&region,
		&email,
		&phone,
		&address,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	user.Region = region.String
	user.Email = email.String
	user.Phone = phone.String
	user.Address = address.String
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
