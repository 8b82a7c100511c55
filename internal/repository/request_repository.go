package repository

import (
	"context"
	"database/sql"
	"errors"

	"mentorlink/internal/database"
	"mentorlink/internal/domain/request"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateOpenRequest is returned when an insert collides with the
// partial unique index on open (PENDING/ACTIVE) pairs.
var ErrDuplicateOpenRequest = errors.New("active or pending request already exists")

const uniqueViolation = "23505"

type RequestRepository interface {
	Create(ctx context.Context, senderID, receiverID uuid.UUID) (request.Request, error)
	ExistsOpenPair(ctx context.Context, senderID, receiverID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (request.Request, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status request.Status) (request.WithParticipants, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]request.WithParticipants, error)
	LatestStatusesBySender(ctx context.Context, senderID uuid.UUID) (map[uuid.UUID]request.Status, error)
}

type PostgresRequestRepository struct {
	db database.DB
}

func NewPostgresRequestRepository(db database.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{db: db}
}

func (r *PostgresRequestRepository) Create(ctx context.Context, senderID, receiverID uuid.UUID) (request.Request, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO mentorship_requests (id, sender_id, receiver_id, status)
		 VALUES (gen_random_uuid(), $1, $2, $3)
		 RETURNING id, sender_id, receiver_id, status, created_at, updated_at`,
		senderID, receiverID, string(request.StatusPending),
	)

	req, err := scanRequest(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return request.Request{}, ErrDuplicateOpenRequest
		}
		return request.Request{}, err
	}
	return req, nil
}

func (r *PostgresRequestRepository) ExistsOpenPair(ctx context.Context, senderID, receiverID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM mentorship_requests
			WHERE sender_id = $1 AND receiver_id = $2 AND status IN ($3, $4)
		)`,
		senderID, receiverID, string(request.StatusPending), string(request.StatusActive),
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (request.Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, sender_id, receiver_id, status, created_at, updated_at
		 FROM mentorship_requests WHERE id = $1`,
		id,
	)
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrNotFound
		}
		return request.Request{}, err
	}
	return req, nil
}

func (r *PostgresRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status request.Status) (request.WithParticipants, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE mentorship_requests SET status = $1, updated_at = now() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return request.WithParticipants{}, err
	}
	if affected == 0 {
		return request.WithParticipants{}, request.ErrNotFound
	}

	row := r.db.QueryRow(ctx, selectWithParticipants+` WHERE r.id = $1`, id)
	out, err := scanWithParticipants(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return request.WithParticipants{}, request.ErrNotFound
		}
		return request.WithParticipants{}, err
	}
	return out, nil
}

func (r *PostgresRequestRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]request.WithParticipants, error) {
	rows, err := r.db.Query(ctx,
		selectWithParticipants+`
		 WHERE r.sender_id = $1 OR r.receiver_id = $1
		 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]request.WithParticipants, 0)
	for rows.Next() {
		item, err := scanWithParticipants(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LatestStatusesBySender returns, per receiver, the status of the sender's
// most recent request toward that receiver.
func (r *PostgresRequestRepository) LatestStatusesBySender(ctx context.Context, senderID uuid.UUID) (map[uuid.UUID]request.Status, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT ON (receiver_id) receiver_id, status
		 FROM mentorship_requests
		 WHERE sender_id = $1
		 ORDER BY receiver_id, created_at DESC`,
		senderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]request.Status)
	for rows.Next() {
		var receiverID uuid.UUID
		var status string
		if err := rows.Scan(&receiverID, &status); err != nil {
			return nil, err
		}
		out[receiverID] = request.Status(status)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const selectWithParticipants = `
	SELECT r.id, r.sender_id, r.receiver_id, r.status, r.created_at, r.updated_at,
	       s.id, s.name, s.email, s.role,
	       v.id, v.name, v.email, v.role
	FROM mentorship_requests r
	JOIN users s ON s.id = r.sender_id
	JOIN users v ON v.id = r.receiver_id`

func scanRequest(row database.Row) (request.Request, error) {
	var req request.Request
	var status string
	err := row.Scan(&req.ID, &req.SenderID, &req.ReceiverID, &status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return request.Request{}, err
	}
	req.Status = request.Status(status)
	return req, nil
}

func scanWithParticipants(row database.Row) (request.WithParticipants, error) {
	var out request.WithParticipants
	var status, senderRole, receiverRole string
	err := row.Scan(
		&out.ID, &out.SenderID, &out.ReceiverID, &status, &out.CreatedAt, &out.UpdatedAt,
		&out.Sender.ID, &out.Sender.Name, &out.Sender.Email, &senderRole,
		&out.Receiver.ID, &out.Receiver.Name, &out.Receiver.Email, &receiverRole,
	)
	if err != nil {
		return request.WithParticipants{}, err
	}
	out.Status = request.Status(status)
	out.Sender.Role = user.Role(senderRole)
	out.Receiver.Role = user.Role(receiverRole)
	return out, nil
}
