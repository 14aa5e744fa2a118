package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Engine owns the payroll sheet lifecycle. Every mutation runs in a
// single transaction: the sheet row is locked, the guard is checked,
// the link is written and the cached totals are recomputed before the
// transaction commits.
type Engine struct {
	pool  *pgxpool.Pool
	store *Store
}

func NewEngine(pool *pgxpool.Pool) *Engine {
	return &Engine{pool: pool, store: NewStore(pool)}
}

func (e *Engine) CreateSheet(ctx context.Context, in CreateInput) (Sheet, error) {
	if !ValidPeriod(in.Month) {
		return Sheet{}, ErrInvalidPeriod
	}
	net := NetSalary(in.GrossSalary, decimal.Zero, decimal.Zero, in.SocialContributions, in.IncomeTax)
	sheet, err := e.store.InsertSheet(ctx, in, net)
	if err != nil {
		return Sheet{}, err
	}
	return sheet, nil
}

func (e *Engine) GetSheet(ctx context.Context, sheetID string) (Sheet, error) {
	sheet, err := e.store.GetSheet(ctx, sheetID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sheet{}, ErrNotFound
	}
	if err != nil {
		return Sheet{}, err
	}
	if sheet.Bonuses, err = e.store.ListBonusLines(ctx, sheetID); err != nil {
		return Sheet{}, err
	}
	if sheet.Benefits, err = e.store.ListBenefitLines(ctx, sheetID); err != nil {
		return Sheet{}, err
	}
	return sheet, nil
}

func (e *Engine) ListSheets(ctx context.Context, filter ListFilter) ([]Sheet, error) {
	return e.store.ListSheets(ctx, filter)
}

// AttachBonus creates or updates the (sheet, bonus type) link with the
// month-specific amount, then refreshes the cached totals.
func (e *Engine) AttachBonus(ctx context.Context, sheetID, bonusTypeID string, amount decimal.Decimal) (Sheet, error) {
	return e.mutateLinks(ctx, sheetID, func(ctx context.Context, store *Store) error {
		return store.UpsertBonusLink(ctx, sheetID, bonusTypeID, amount)
	})
}

// AttachBenefit behaves like AttachBonus for benefit links. The caller
// resolves the default amount from the catalog when none was supplied.
func (e *Engine) AttachBenefit(ctx context.Context, sheetID, benefitTypeID string, amount decimal.Decimal) (Sheet, error) {
	return e.mutateLinks(ctx, sheetID, func(ctx context.Context, store *Store) error {
		return store.UpsertBenefitLink(ctx, sheetID, benefitTypeID, amount)
	})
}

func (e *Engine) DetachBonus(ctx context.Context, sheetID, bonusTypeID string) (Sheet, error) {
	return e.mutateLinks(ctx, sheetID, func(ctx context.Context, store *Store) error {
		removed, err := store.DeleteBonusLink(ctx, sheetID, bonusTypeID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNotFound
		}
		return nil
	})
}

func (e *Engine) DetachBenefit(ctx context.Context, sheetID, benefitTypeID string) (Sheet, error) {
	return e.mutateLinks(ctx, sheetID, func(ctx context.Context, store *Store) error {
		removed, err := store.DeleteBenefitLink(ctx, sheetID, benefitTypeID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNotFound
		}
		return nil
	})
}

func (e *Engine) mutateLinks(ctx context.Context, sheetID string, mutate func(context.Context, *Store) error) (Sheet, error) {
	var out Sheet
	err := e.inTx(ctx, func(store *Store) error {
		sheet, err := store.GetSheetForUpdate(ctx, sheetID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if !Editable(sheet.Status) {
			return ErrSheetNotEditable
		}

		if err := mutate(ctx, store); err != nil {
			return err
		}

		bonuses, err := store.SumBonuses(ctx, sheetID)
		if err != nil {
			return err
		}
		benefits, err := store.SumBenefits(ctx, sheetID)
		if err != nil {
			return err
		}
		net := NetSalary(sheet.GrossSalary, bonuses, benefits, sheet.SocialContributions, sheet.IncomeTax)
		if err := store.UpdateTotals(ctx, sheetID, bonuses, benefits, net); err != nil {
			return err
		}

		out = sheet
		out.TotalBonuses = bonuses
		out.TotalBenefits = benefits
		out.NetSalary = net
		return nil
	})
	if err != nil {
		return Sheet{}, err
	}
	return out, nil
}

// Transition moves a sheet along draft -> validated -> issued. Leaving
// draft re-validates the cached totals against the links and locks the
// net salary.
func (e *Engine) Transition(ctx context.Context, sheetID, target string) (Sheet, error) {
	var out Sheet
	err := e.inTx(ctx, func(store *Store) error {
		sheet, err := store.GetSheetForUpdate(ctx, sheetID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := ValidateTransition(sheet.Status, target); err != nil {
			return err
		}

		net := sheet.NetSalary
		if sheet.Status == StatusDraft {
			bonuses, err := store.SumBonuses(ctx, sheetID)
			if err != nil {
				return err
			}
			benefits, err := store.SumBenefits(ctx, sheetID)
			if err != nil {
				return err
			}
			if !bonuses.Equal(sheet.TotalBonuses) || !benefits.Equal(sheet.TotalBenefits) {
				return ErrAmountMismatch
			}
			net = NetSalary(sheet.GrossSalary, bonuses, benefits, sheet.SocialContributions, sheet.IncomeTax)
		}

		if err := store.UpdateStatus(ctx, sheetID, target, net); err != nil {
			return err
		}
		out = sheet
		out.Status = target
		out.NetSalary = net
		return nil
	})
	if err != nil {
		return Sheet{}, err
	}
	return out, nil
}

// DeleteSheet removes a draft sheet and, via cascade, its links.
func (e *Engine) DeleteSheet(ctx context.Context, sheetID string) error {
	return e.inTx(ctx, func(store *Store) error {
		sheet, err := store.GetSheetForUpdate(ctx, sheetID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if !Editable(sheet.Status) {
			return ErrSheetNotEditable
		}
		return store.DeleteSheet(ctx, sheetID)
	})
}

func (e *Engine) inTx(ctx context.Context, fn func(*Store) error) error {
	tx, err := e.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStore(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
