package leave

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	"staffdesk/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const requestColumns = `
    id, employee_id, kind, start_date, end_date, COALESCE(reason, ''),
    status, decided_by, decided_at, created_at`

func scanRequest(row interface{ Scan(...any) error }) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.EmployeeID, &req.Kind, &req.StartDate, &req.EndDate, &req.Reason,
		&req.Status, &req.DecidedBy, &req.DecidedAt, &req.CreatedAt)
	return req, err
}

func (s *Store) Create(ctx context.Context, in CreateInput) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, kind, start_date, end_date, reason)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING`+requestColumns+`
  `, in.EmployeeID, in.Kind, in.StartDate, in.EndDate, in.Reason)
	return scanRequest(row)
}

func (s *Store) Get(ctx context.Context, id string) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, id)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Request, error) {
	query := `
    SELECT` + requestColumns + `
    FROM leave_requests
    WHERE 1=1`
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += ` AND employee_id = $1`
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Decide records the approval or rejection. The status predicate in the
// WHERE clause makes the decision race-safe: a request decided by a
// concurrent staff member leaves zero rows affected.
func (s *Store) Decide(ctx context.Context, id, status, deciderID string) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE leave_requests
    SET status = $1, decided_by = $2, decided_at = now()
    WHERE id = $3 AND status = $4
    RETURNING`+requestColumns+`
  `, status, deciderID, id, StatusRequested)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return Request{}, getErr
		}
		return Request{}, ErrAlreadyDecided
	}
	return req, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM leave_requests WHERE id = $1 AND status = $2", id, StatusRequested)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return getErr
		}
		return ErrAlreadyDecided
	}
	return nil
}
