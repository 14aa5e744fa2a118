package auth

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

type AuthUser struct {
	ID           string
	Username     string
	RoleID       string
	RoleName     string
	PasswordHash string
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (AuthUser, error) {
	var out AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.username, u.role_id, r.name, u.password_hash
    FROM users u
    JOIN roles r ON u.role_id = r.id
    WHERE u.username = $1
  `, username).Scan(&out.ID, &out.Username, &out.RoleID, &out.RoleName, &out.PasswordHash)
	return out, err
}

func (s *Store) RoleIDByName(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", name).Scan(&id)
	return id, err
}
