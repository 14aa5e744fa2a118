package catalog

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

func (s *Store) ListBenefitTypes(ctx context.Context) ([]BenefitType, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(description, ''), amount
    FROM benefit_types
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []BenefitType
	for rows.Next() {
		var bt BenefitType
		if err := rows.Scan(&bt.ID, &bt.Name, &bt.Description, &bt.Amount); err != nil {
			return nil, err
		}
		types = append(types, bt)
	}
	return types, rows.Err()
}

func (s *Store) GetBenefitType(ctx context.Context, id string) (BenefitType, error) {
	var bt BenefitType
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, COALESCE(description, ''), amount
    FROM benefit_types
    WHERE id = $1
  `, id).Scan(&bt.ID, &bt.Name, &bt.Description, &bt.Amount)
	return bt, err
}

func (s *Store) CreateBenefitType(ctx context.Context, bt BenefitType) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO benefit_types (name, description, amount)
    VALUES ($1,$2,$3)
    RETURNING id
  `, bt.Name, bt.Description, bt.Amount).Scan(&id)
	return id, err
}

func (s *Store) UpdateBenefitType(ctx context.Context, bt BenefitType) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE benefit_types SET name = $1, description = $2, amount = $3 WHERE id = $4
  `, bt.Name, bt.Description, bt.Amount, bt.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteBenefitType(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM benefit_types WHERE id = $1", id)
	if querier.IsForeignKeyViolation(err) {
		return ErrInUse
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListBonusTypes(ctx context.Context) ([]BonusType, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(description, '')
    FROM bonus_types
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []BonusType
	for rows.Next() {
		var bt BonusType
		if err := rows.Scan(&bt.ID, &bt.Name, &bt.Description); err != nil {
			return nil, err
		}
		types = append(types, bt)
	}
	return types, rows.Err()
}

func (s *Store) GetBonusType(ctx context.Context, id string) (BonusType, error) {
	var bt BonusType
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, COALESCE(description, '')
    FROM bonus_types
    WHERE id = $1
  `, id).Scan(&bt.ID, &bt.Name, &bt.Description)
	return bt, err
}

func (s *Store) CreateBonusType(ctx context.Context, bt BonusType) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO bonus_types (name, description)
    VALUES ($1,$2)
    RETURNING id
  `, bt.Name, bt.Description).Scan(&id)
	return id, err
}

func (s *Store) UpdateBonusType(ctx context.Context, bt BonusType) error {
	tag, err := s.DB.Exec(ctx, "UPDATE bonus_types SET name = $1, description = $2 WHERE id = $3", bt.Name, bt.Description, bt.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteBonusType(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM bonus_types WHERE id = $1", id)
	if querier.IsForeignKeyViolation(err) {
		return ErrInUse
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
