package seeder

import (
	"context"

	"mentorlink/internal/database"
)

// ResetSeeder clears every table so the demo dataset starts from a
// known state. Order follows the foreign keys.
type ResetSeeder struct{}

func (ResetSeeder) Name() string { return "reset" }

func (ResetSeeder) Run(ctx context.Context, db database.DB) error {
	stmts := []string{
		`DELETE FROM mentorship_requests`,
		`DELETE FROM profile_skills`,
		`DELETE FROM profile_interests`,
		`DELETE FROM profiles`,
		`DELETE FROM users`,
		`DELETE FROM skills`,
		`DELETE FROM interests`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
