package attendance

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"staffdesk/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const recordColumns = `id, employee_id, work_day, arrival, departure, created_at`

func scanRecord(row interface{ Scan(...any) error }) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.WorkDay, &rec.Arrival, &rec.Departure, &rec.CreatedAt)
	return rec, err
}

func (s *Store) Create(ctx context.Context, in CreateInput) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, work_day, arrival, departure)
    VALUES ($1,$2,$3,$4)
    RETURNING `+recordColumns+`
  `, in.EmployeeID, in.WorkDay, in.Arrival, in.Departure)
	rec, err := scanRecord(row)
	if querier.IsUniqueViolation(err, "attendance_employee_id_work_day_key") {
		return Record{}, ErrDuplicateAttendance
	}
	return rec, err
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM attendance
    WHERE id = $1
  `, id)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	query := `
    SELECT ` + recordColumns + `
    FROM attendance
    WHERE 1=1`
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += ` AND employee_id = $1`
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND work_day >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND work_day <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY work_day DESC`
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

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SetDeparture clocks out an existing record.
func (s *Store) SetDeparture(ctx context.Context, id string, departure *time.Time) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE attendance
    SET departure = $1
    WHERE id = $2
    RETURNING `+recordColumns+`
  `, departure, id)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM attendance WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
