package training

import (
	"context"
	"errors"
	"slices"

	"github.com/jackc/pgx/v5"

	"staffdesk/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const trainingColumns = `
    id, title, COALESCE(description, ''), COALESCE(trainer, ''),
    start_date, end_date, duration_hours, capacity, created_at`

func scanTraining(row interface{ Scan(...any) error }) (Training, error) {
	var tr Training
	err := row.Scan(&tr.ID, &tr.Title, &tr.Description, &tr.Trainer,
		&tr.StartDate, &tr.EndDate, &tr.DurationHours, &tr.Capacity, &tr.CreatedAt)
	return tr, err
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Training, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+trainingColumns+`
    FROM trainings
    ORDER BY start_date NULLS LAST, title
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []Training
	for rows.Next() {
		tr, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, tr)
	}
	return trainings, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Training, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+trainingColumns+`
    FROM trainings
    WHERE id = $1
  `, id)
	tr, err := scanTraining(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Training{}, ErrNotFound
	}
	return tr, err
}

func (s *Store) Create(ctx context.Context, tr Training) (Training, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO trainings (title, description, trainer, start_date, end_date, duration_hours, capacity)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING`+trainingColumns+`
  `, tr.Title, tr.Description, tr.Trainer, tr.StartDate, tr.EndDate, tr.DurationHours, tr.Capacity)
	return scanTraining(row)
}

func (s *Store) Update(ctx context.Context, tr Training) (Training, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE trainings
    SET title = $1, description = $2, trainer = $3, start_date = $4, end_date = $5, duration_hours = $6, capacity = $7
    WHERE id = $8
    RETURNING`+trainingColumns+`
  `, tr.Title, tr.Description, tr.Trainer, tr.StartDate, tr.EndDate, tr.DurationHours, tr.Capacity, tr.ID)
	out, err := scanTraining(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Training{}, ErrNotFound
	}
	return out, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM trainings WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const enrollmentColumns = `id, training_id, employee_id, enrolled_on, status, COALESCE(result, ''), created_at`

func scanEnrollment(row interface{ Scan(...any) error }) (Enrollment, error) {
	var e Enrollment
	err := row.Scan(&e.ID, &e.TrainingID, &e.EmployeeID, &e.EnrolledOn, &e.Status, &e.Result, &e.CreatedAt)
	return e, err
}

func (s *Store) Enroll(ctx context.Context, trainingID, employeeID string) (Enrollment, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO training_enrollments (training_id, employee_id)
    VALUES ($1,$2)
    RETURNING `+enrollmentColumns+`
  `, trainingID, employeeID)
	e, err := scanEnrollment(row)
	if querier.IsUniqueViolation(err, "training_enrollments_training_id_employee_id_key") {
		return Enrollment{}, ErrAlreadyEnrolled
	}
	if querier.IsForeignKeyViolation(err) {
		return Enrollment{}, ErrNotFound
	}
	return e, err
}

func (s *Store) ListEnrollments(ctx context.Context, trainingID string) ([]Enrollment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+enrollmentColumns+`
    FROM training_enrollments
    WHERE training_id = $1
    ORDER BY created_at
  `, trainingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (s *Store) ListEmployeeEnrollments(ctx context.Context, employeeID string) ([]Enrollment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+enrollmentColumns+`
    FROM training_enrollments
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// SetEnrollmentStatus records the outcome of an enrollment. Result is
// free text filled in on completion or cancellation.
func (s *Store) SetEnrollmentStatus(ctx context.Context, enrollmentID, status, result string) (Enrollment, error) {
	if !slices.Contains(Statuses, status) {
		return Enrollment{}, ErrInvalidStatus
	}
	row := s.DB.QueryRow(ctx, `
    UPDATE training_enrollments
    SET status = $1, result = $2
    WHERE id = $3
    RETURNING `+enrollmentColumns+`
  `, status, result, enrollmentID)
	e, err := scanEnrollment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Enrollment{}, ErrNotFound
	}
	return e, err
}

func (s *Store) Withdraw(ctx context.Context, trainingID, employeeID string) error {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM training_enrollments WHERE training_id = $1 AND employee_id = $2
  `, trainingID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
