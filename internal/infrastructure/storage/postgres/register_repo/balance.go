// Package register_repo provides PostgreSQL implementations for register
// repositories.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/core/types"
	"sklad/internal/domain/registers/balance"
	"sklad/internal/infrastructure/storage/postgres"
)

const balanceTable = "warehouse_balances"

// Compile-time check.
var _ balance.Repository = (*BalanceRepo)(nil)

// BalanceRepo implements balance.Repository.
type BalanceRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewBalanceRepo creates a new balance register repository.
func NewBalanceRepo(txm *postgres.TxManager) *BalanceRepo {
	return &BalanceRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *BalanceRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.
		Select("id", "resource_id", "unit_id", "quantity", "updated_at").
		From(balanceTable)
}

func (r *BalanceRepo) get(ctx context.Context, resourceID, unitID id.ID, forUpdate bool) (entity.Balance, bool, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"unit_id": unitID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return entity.Balance{}, false, fmt.Errorf("build query: %w", err)
	}

	var bal entity.Balance
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &bal, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity.Balance{}, false, nil
		}
		return entity.Balance{}, false, fmt.Errorf("get balance: %w", err)
	}
	return bal, true, nil
}

// Get returns the balance row for a pair without locking.
func (r *BalanceRepo) Get(ctx context.Context, resourceID, unitID id.ID) (entity.Balance, bool, error) {
	return r.get(ctx, resourceID, unitID, false)
}

// GetForUpdate locks the row so concurrent decreases serialize on it.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, resourceID, unitID id.ID) (entity.Balance, bool, error) {
	return r.get(ctx, resourceID, unitID, true)
}

// Insert creates a new balance row.
func (r *BalanceRepo) Insert(ctx context.Context, bal entity.Balance) error {
	q := r.builder.
		Insert(balanceTable).
		Columns("id", "resource_id", "unit_id", "quantity", "updated_at").
		Values(bal.ID, bal.ResourceID, bal.UnitID, bal.Quantity, bal.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert balance: %w", err)
	}
	return nil
}

// SetQuantity overwrites the quantity of an existing row.
func (r *BalanceRepo) SetQuantity(ctx context.Context, balanceID id.ID, qty types.Quantity) error {
	q := r.builder.
		Update(balanceTable).
		Set("quantity", qty).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": balanceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

// Delete removes a row. The service calls this when a decrease lands on
// exactly zero.
func (r *BalanceRepo) Delete(ctx context.Context, balanceID id.ID) error {
	q := r.builder.
		Delete(balanceTable).
		Where(squirrel.Eq{"id": balanceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete balance: %w", err)
	}
	return nil
}

// List returns all balance rows ordered by resource then unit.
func (r *BalanceRepo) List(ctx context.Context) ([]entity.Balance, error) {
	q := r.baseSelect().OrderBy("resource_id ASC", "unit_id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []entity.Balance
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	return items, nil
}
