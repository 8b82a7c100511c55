package repository

import (
	"context"

	"mentorlink/internal/database"
	"mentorlink/internal/domain/user"
)

// TagRepository maintains the global skill and interest vocabularies.
// Upserts are connect-or-create: existing names are returned as-is, new
// names are inserted. The unique constraint on name keeps the vocabulary
// deduplicated under concurrent writers.
type TagRepository interface {
	UpsertSkills(ctx context.Context, names []string) ([]user.Tag, error)
	UpsertInterests(ctx context.Context, names []string) ([]user.Tag, error)
}

type PostgresTagRepository struct {
	db database.DB
}

func NewPostgresTagRepository(db database.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

func (r *PostgresTagRepository) UpsertSkills(ctx context.Context, names []string) ([]user.Tag, error) {
	return r.upsert(ctx, "skills", names)
}

func (r *PostgresTagRepository) UpsertInterests(ctx context.Context, names []string) ([]user.Tag, error) {
	return r.upsert(ctx, "interests", names)
}

func (r *PostgresTagRepository) upsert(ctx context.Context, table string, names []string) ([]user.Tag, error) {
	if len(names) == 0 {
		return []user.Tag{}, nil
	}

	// ON CONFLICT DO NOTHING first, then select: the RETURNING clause of an
	// upsert only yields inserted rows, and we need ids for existing ones too.
	_, err := r.db.Exec(ctx,
		`INSERT INTO `+table+` (id, name)
		 SELECT gen_random_uuid(), unnest($1::text[])
		 ON CONFLICT (name) DO NOTHING`,
		names,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM `+table+` WHERE name = ANY($1::text[]) ORDER BY name ASC`,
		names,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Tag, 0, len(names))
	for rows.Next() {
		var t user.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
