package seeder

import (
	"context"

	"mentorlink/internal/database"
)

var seedSkills = []string{
	"JavaScript",
	"TypeScript",
	"React",
	"Node.js",
	"Python",
	"Java",
	"Machine Learning",
	"Data Science",
	"DevOps",
	"Cloud Computing",
}

var seedInterests = []string{
	"Web Development",
	"Mobile Development",
	"Artificial Intelligence",
	"Blockchain",
	"Cybersecurity",
	"UI/UX Design",
	"Game Development",
	"Cloud Architecture",
	"Data Analytics",
	"Open Source",
}

// TagsSeeder installs the starter skill and interest vocabularies.
type TagsSeeder struct{}

func (TagsSeeder) Name() string { return "tags" }

func (TagsSeeder) Run(ctx context.Context, db database.DB) error {
	const insertSkills = `
		INSERT INTO skills (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO NOTHING`
	if _, err := db.Exec(ctx, insertSkills, seedSkills); err != nil {
		return err
	}

	const insertInterests = `
		INSERT INTO interests (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO NOTHING`
	_, err := db.Exec(ctx, insertInterests, seedInterests)
	return err
}
