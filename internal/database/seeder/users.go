package seeder

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"mentorlink/internal/database"
	"mentorlink/internal/domain/user"
)

type demoUser struct {
	name      string
	email     string
	role      user.Role
	bio       string
	skills    []string
	interests []string
}

var demoUsers = []demoUser{
	{
		name:      "John Doe",
		email:     "john@example.com",
		role:      user.RoleMentor,
		bio:       "Senior Software Engineer with 10 years of experience in web development",
		skills:    []string{"JavaScript", "TypeScript", "React"},
		interests: []string{"Web Development", "UI/UX Design"},
	},
	{
		name:      "Jane Smith",
		email:     "jane@example.com",
		role:      user.RoleMentor,
		bio:       "Data Scientist specializing in machine learning and AI",
		skills:    []string{"Machine Learning", "Data Science"},
		interests: []string{"Artificial Intelligence", "Data Analytics"},
	},
	{
		name:      "Alice Johnson",
		email:     "alice@example.com",
		role:      user.RoleMentee,
		bio:       "Junior developer looking to improve web development skills",
		skills:    []string{"JavaScript"},
		interests: []string{"Web Development", "Mobile Development"},
	},
	{
		name:      "Bob Wilson",
		email:     "bob@example.com",
		role:      user.RoleMentee,
		bio:       "Aspiring data scientist interested in AI and machine learning",
		skills:    []string{"Data Science"},
		interests: []string{"Artificial Intelligence", "Data Analytics"},
	},
}

// UsersSeeder creates a handful of demo mentors and mentees, each with
// a filled-in profile. Every account uses the password "password123".
type UsersSeeder struct{}

func (UsersSeeder) Name() string { return "users" }

func (UsersSeeder) Run(ctx context.Context, db database.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, du := range demoUsers {
		if err := seedUser(ctx, db, du, string(hash)); err != nil {
			return err
		}
	}
	return nil
}

func seedUser(ctx context.Context, db database.DB, du demoUser, passwordHash string) error {
	const insertUser = `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var userID string
	if err := db.QueryRow(ctx, insertUser, du.name, du.email, passwordHash, string(du.role)).Scan(&userID); err != nil {
		return err
	}

	const insertProfile = `
		INSERT INTO profiles (user_id, bio)
		VALUES ($1, $2)
		RETURNING id`

	var profileID string
	if err := db.QueryRow(ctx, insertProfile, userID, du.bio).Scan(&profileID); err != nil {
		return err
	}

	const linkSkills = `
		INSERT INTO profile_skills (profile_id, skill_id)
		SELECT $1, id FROM skills WHERE name = ANY($2::text[])`
	if _, err := db.Exec(ctx, linkSkills, profileID, du.skills); err != nil {
		return err
	}

	const linkInterests = `
		INSERT INTO profile_interests (profile_id, interest_id)
		SELECT $1, id FROM interests WHERE name = ANY($2::text[])`
	_, err := db.Exec(ctx, linkInterests, profileID, du.interests)
	return err
}
