package directory_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/directory"
	"staffdesk/internal/platform/config"
	"staffdesk/internal/platform/db"
)

func newServiceFixture(t *testing.T) (*directory.Service, *pgxpool.Pool, string) {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	cfg := config.Load()
	cfg.DatabaseURL = dbURL
	cfg.MigrationsDir = "../../../migrations"

	pool, err := db.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool, cfg.MigrationsDir))
	require.NoError(t, db.Seed(ctx, pool, cfg))

	roleID, err := auth.NewStore(pool).RoleIDByName(ctx, auth.RoleEmployee)
	require.NoError(t, err)

	return directory.NewService(pool), pool, roleID
}

func TestProvisionUserRollsBackOnDuplicateEmployeeNumber(t *testing.T) {
	svc, pool, roleID := newServiceFixture(t)
	ctx := context.Background()

	suffix := time.Now().UnixNano()
	number := fmt.Sprintf("EMP-%d", suffix)

	input := directory.NewUserInput{
		Username: fmt.Sprintf("provision-a-%d", suffix),
		Email:    fmt.Sprintf("provision-a-%d@example.com", suffix),
		Password: "ChangeMe123!",
		RoleID:   roleID,
		Employee: &directory.Employee{
			EmployeeNumber: number,
			FirstName:      "Nora",
			LastName:       "Vidal",
			BaseSalary:     decimal.RequireFromString("3000"),
		},
	}
	_, err := svc.ProvisionUser(ctx, input)
	require.NoError(t, err)

	// Same employee number under a fresh username must fail whole.
	input.Username = fmt.Sprintf("provision-b-%d", suffix)
	input.Email = fmt.Sprintf("provision-b-%d@example.com", suffix)
	_, err = svc.ProvisionUser(ctx, input)
	require.ErrorIs(t, err, directory.ErrDuplicateEmployeeNumber)

	var count int
	err = pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE username = $1", input.Username).Scan(&count)
	require.NoError(t, err)
	require.Zero(t, count, "failed provisioning must not leave a user row")
}

func TestProvisionUserDuplicateUsername(t *testing.T) {
	svc, _, roleID := newServiceFixture(t)
	ctx := context.Background()

	suffix := time.Now().UnixNano()
	input := directory.NewUserInput{
		Username: fmt.Sprintf("provision-c-%d", suffix),
		Email:    fmt.Sprintf("provision-c-%d@example.com", suffix),
		Password: "ChangeMe123!",
		RoleID:   roleID,
		Employee: &directory.Employee{
			EmployeeNumber: fmt.Sprintf("EMP-C-%d", suffix),
			FirstName:      "Nora",
			LastName:       "Vidal",
			BaseSalary:     decimal.RequireFromString("3000"),
		},
	}
	_, err := svc.ProvisionUser(ctx, input)
	require.NoError(t, err)

	input.Employee.EmployeeNumber = fmt.Sprintf("EMP-D-%d", suffix)
	_, err = svc.ProvisionUser(ctx, input)
	require.ErrorIs(t, err, directory.ErrDuplicateUsername)
}
