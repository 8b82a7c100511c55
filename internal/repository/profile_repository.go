package repository

import (
	"context"
	"database/sql"
	"errors"

	"mentorlink/internal/database"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	CreateEmpty(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	Replace(ctx context.Context, userID uuid.UUID, bio string, skillIDs, interestIDs []uuid.UUID) (user.Profile, error)
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]user.Profile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, bio, created_at, updated_at FROM profiles WHERE user_id = $1`,
		userID,
	)

	var p user.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Bio, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, err
	}

	tags, err := r.loadTags(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return user.Profile{}, err
	}
	p.Skills = tags[p.ID].skills
	p.Interests = tags[p.ID].interests
	return p, nil
}

// CreateEmpty inserts an empty profile for the user if none exists yet and
// returns the current row either way.
func (r *PostgresProfileRepository) CreateEmpty(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, bio) VALUES (gen_random_uuid(), $1, '')
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return user.Profile{}, err
	}
	return r.GetByUserID(ctx, userID)
}

// Replace overwrites the bio and both tag sets in a single transaction, so a
// concurrent reader never observes a half-replaced profile.
func (r *PostgresProfileRepository) Replace(ctx context.Context, userID uuid.UUID, bio string, skillIDs, interestIDs []uuid.UUID) (user.Profile, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return user.Profile{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (id, user_id, bio) VALUES (gen_random_uuid(), $1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET bio = EXCLUDED.bio, updated_at = now()`,
		userID, bio,
	)
	if err != nil {
		return user.Profile{}, err
	}

	var profileID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM profiles WHERE user_id = $1`, userID).Scan(&profileID); err != nil {
		return user.Profile{}, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM profile_skills WHERE profile_id = $1`, profileID); err != nil {
		return user.Profile{}, err
	}
	if len(skillIDs) > 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO profile_skills (profile_id, skill_id)
			 SELECT $1, unnest($2::uuid[])
			 ON CONFLICT DO NOTHING`,
			profileID, skillIDs,
		)
		if err != nil {
			return user.Profile{}, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM profile_interests WHERE profile_id = $1`, profileID); err != nil {
		return user.Profile{}, err
	}
	if len(interestIDs) > 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO profile_interests (profile_id, interest_id)
			 SELECT $1, unnest($2::uuid[])
			 ON CONFLICT DO NOTHING`,
			profileID, interestIDs,
		)
		if err != nil {
			return user.Profile{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return user.Profile{}, err
	}

	return r.GetByUserID(ctx, userID)
}

func (r *PostgresProfileRepository) ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]user.Profile, error) {
	out := make(map[uuid.UUID]user.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, bio, created_at, updated_at FROM profiles WHERE user_id = ANY($1::uuid[])`,
		userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profileIDs := make([]uuid.UUID, 0, len(userIDs))
	for rows.Next() {
		var p user.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Bio, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out[p.UserID] = p
		profileIDs = append(profileIDs, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags, err := r.loadTags(ctx, profileIDs)
	if err != nil {
		return nil, err
	}
	for userID, p := range out {
		p.Skills = tags[p.ID].skills
		p.Interests = tags[p.ID].interests
		out[userID] = p
	}
	return out, nil
}

type profileTags struct {
	skills    []user.Tag
	interests []user.Tag
}

func (r *PostgresProfileRepository) loadTags(ctx context.Context, profileIDs []uuid.UUID) (map[uuid.UUID]profileTags, error) {
	out := make(map[uuid.UUID]profileTags, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT ps.profile_id, s.id, s.name
		 FROM profile_skills ps
		 JOIN skills s ON s.id = ps.skill_id
		 WHERE ps.profile_id = ANY($1::uuid[])
		 ORDER BY s.name ASC`,
		profileIDs,
	)
	if err != nil {
		return nil, err
	}
	if err := collectTags(rows, out, func(pt *profileTags, t user.Tag) {
		pt.skills = append(pt.skills, t)
	}); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx,
		`SELECT pi.profile_id, i.id, i.name
		 FROM profile_interests pi
		 JOIN interests i ON i.id = pi.interest_id
		 WHERE pi.profile_id = ANY($1::uuid[])
		 ORDER BY i.name ASC`,
		profileIDs,
	)
	if err != nil {
		return nil, err
	}
	if err := collectTags(rows, out, func(pt *profileTags, t user.Tag) {
		pt.interests = append(pt.interests, t)
	}); err != nil {
		return nil, err
	}

	return out, nil
}

func collectTags(rows database.Rows, out map[uuid.UUID]profileTags, add func(*profileTags, user.Tag)) error {
	defer rows.Close()
	for rows.Next() {
		var profileID uuid.UUID
		var t user.Tag
		if err := rows.Scan(&profileID, &t.ID, &t.Name); err != nil {
			return err
		}
		pt := out[profileID]
		add(&pt, t)
		out[profileID] = pt
	}
	return rows.Err()
}
