package directory

import (
	"context"

	"staffdesk/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListEmployees(ctx context.Context, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT user_id, employee_number, first_name, last_name, birth_date,
           COALESCE(phone, ''), COALESCE(department, ''), COALESCE(position, ''),
           base_salary, hire_date
    FROM employees
    ORDER BY last_name, first_name
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.UserID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.BirthDate,
			&emp.Phone, &emp.Department, &emp.Position, &emp.BaseSalary, &emp.HireDate); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, userID string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT user_id, employee_number, first_name, last_name, birth_date,
           COALESCE(phone, ''), COALESCE(department, ''), COALESCE(position, ''),
           base_salary, hire_date
    FROM employees
    WHERE user_id = $1
  `, userID).Scan(&emp.UserID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.BirthDate,
		&emp.Phone, &emp.Department, &emp.Position, &emp.BaseSalary, &emp.HireDate)
	return emp, err
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (user_id, employee_number, first_name, last_name, birth_date, phone, department, position, base_salary, hire_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, emp.UserID, emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.BirthDate,
		emp.Phone, emp.Department, emp.Position, emp.BaseSalary, emp.HireDate)
	if querier.IsUniqueViolation(err, "employees_employee_number_key") {
		return ErrDuplicateEmployeeNumber
	}
	return err
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET employee_number = $1, first_name = $2, last_name = $3, birth_date = $4,
        phone = $5, department = $6, position = $7, base_salary = $8, hire_date = $9
    WHERE user_id = $10
  `, emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.BirthDate,
		emp.Phone, emp.Department, emp.Position, emp.BaseSalary, emp.HireDate, emp.UserID)
	if querier.IsUniqueViolation(err, "employees_employee_number_key") {
		return ErrDuplicateEmployeeNumber
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, userID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE user_id = $1", userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
