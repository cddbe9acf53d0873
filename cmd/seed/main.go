package main

// Seed default accounts:
//   go run ./cmd/seed
//
// Inserts the system admin and one reviewer per launch region. Safe to run
// repeatedly; existing usernames are skipped.

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/Harshmohod/land-verification/internal/bootstrap"
	"github.com/Harshmohod/land-verification/internal/shared/config"
	"github.com/Harshmohod/land-verification/internal/users"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Printf("bootstrap error: %v", err)
		os.Exit(1)
	}
	if app.DB == nil {
		log.Printf("seed: DATABASE_URL is required; in-memory repositories do not persist")
		os.Exit(1)
	}
	defer app.DB.Close()

	ctx := context.Background()
	accounts := defaultAccounts()

	var created, skipped int
	for _, in := range accounts {
		_, err := app.UsersService.Register(ctx, in)
		switch {
		case err == nil:
			created++
			log.Printf("seed: created %s (%s)", in.Username, in.Role)
		case errors.Is(err, users.ErrDuplicateUser):
			skipped++
		default:
			log.Printf("seed: %s: %v", in.Username, err)
			os.Exit(1)
		}
	}

	log.Printf("seed: done, %d created, %d existing", created, skipped)
}

func defaultAccounts() []users.RegisterInput {
	admin := users.RegisterInput{
		Username: "admin",
		Password: "admin123",
		Role:     users.RoleAdmin,
		Name:     "System Admin",
		Email:    "admin@system.com",
	}

	reviewers := []struct {
		n      string
		name   string
		email  string
		region string
	}{
		{"reviewer1", "Reviewer Mumbai", "mumbai@reviewer.com", "400001"},
		{"reviewer2", "Reviewer Delhi", "delhi@reviewer.com", "110001"},
		{"reviewer3", "Reviewer Kolkata", "kolkata@reviewer.com", "700001"},
		{"reviewer4", "Reviewer Chennai", "chennai@reviewer.com", "600001"},
		{"reviewer5", "Reviewer Hyderabad", "hyderabad@reviewer.com", "500001"},
	}

	out := []users.RegisterInput{admin}
	for _, r := range reviewers {
		out = append(out, users.RegisterInput{
			Username: r.n,
			Password: "reviewer123",
			Role:     users.RoleReviewer,
			Name:     r.name,
			Email:    r.email,
			Region:   r.region,
		})
	}
	return out
}
