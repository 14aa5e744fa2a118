package directory

import (
	"context"

	"staffdesk/internal/platform/querier"
)

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id, u.username, u.email, u.role_id, r.name, u.created_at
    FROM users u
    JOIN roles r ON u.role_id = r.id
    ORDER BY u.username
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.RoleID, &user.RoleName, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Store) GetUser(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.username, u.email, u.role_id, r.name, u.created_at
    FROM users u
    JOIN roles r ON u.role_id = r.id
    WHERE u.id = $1
  `, userID).Scan(&user.ID, &user.Username, &user.Email, &user.RoleID, &user.RoleName, &user.CreatedAt)
	return user, err
}

func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash, roleID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, email, password_hash, role_id)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, username, email, passwordHash, roleID).Scan(&id)
	if querier.IsUniqueViolation(err, "users_username_key") {
		return "", ErrDuplicateUsername
	}
	return id, err
}

func (s *Store) UpdateUser(ctx context.Context, userID, email, roleID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET email = $1, role_id = $2 WHERE id = $3", email, roleID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name FROM roles ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (s *Store) CreateRole(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "INSERT INTO roles (name) VALUES ($1) RETURNING id", name).Scan(&id)
	return id, err
}

func (s *Store) UpdateRole(ctx context.Context, roleID, name string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE roles SET name = $1 WHERE id = $2", name, roleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteRole(ctx context.Context, roleID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM roles WHERE id = $1", roleID)
	if querier.IsForeignKeyViolation(err) {
		return ErrRoleInUse
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
