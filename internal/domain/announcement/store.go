package announcement

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"staffdesk/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const columns = `id, title, body, author_id, created_at, updated_at`

func scan(row interface{ Scan(...any) error }) (Announcement, error) {
	var a Announcement
	err := row.Scan(&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Announcement, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+columns+`
    FROM announcements
    ORDER BY created_at DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Announcement
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Announcement, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+columns+`
    FROM announcements
    WHERE id = $1
  `, id)
	a, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Announcement{}, ErrNotFound
	}
	return a, err
}

func (s *Store) Create(ctx context.Context, title, body, authorID string) (Announcement, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO announcements (title, body, author_id)
    VALUES ($1,$2,$3)
    RETURNING `+columns+`
  `, title, body, authorID)
	return scan(row)
}

func (s *Store) Update(ctx context.Context, id, title, body string) (Announcement, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE announcements
    SET title = $1, body = $2, updated_at = now()
    WHERE id = $3
    RETURNING `+columns+`
  `, title, body, id)
	a, err := scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Announcement{}, ErrNotFound
	}
	return a, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM announcements WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
