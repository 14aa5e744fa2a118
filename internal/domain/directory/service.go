package directory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffdesk/internal/domain/auth"
)

type Service struct {
	pool *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// ProvisionUser creates a user account and, when the role is employee,
// its linked employee record in the same transaction. A failure on
// either side (duplicate username, duplicate employee number) leaves
// no record behind.
func (s *Service) ProvisionUser(ctx context.Context, input NewUserInput) (string, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	store := NewStore(tx)

	var roleName string
	if err := tx.QueryRow(ctx, "SELECT name FROM roles WHERE id = $1", input.RoleID).Scan(&roleName); err != nil {
		return "", err
	}

	userID, err := store.CreateUser(ctx, input.Username, input.Email, hash, input.RoleID)
	if err != nil {
		return "", err
	}

	if roleName == auth.RoleEmployee {
		emp := Employee{}
		if input.Employee != nil {
			emp = *input.Employee
		}
		emp.UserID = userID
		if err := store.CreateEmployee(ctx, emp); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return userID, nil
}
