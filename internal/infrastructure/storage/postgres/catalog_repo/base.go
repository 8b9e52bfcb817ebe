// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories. Resources and units share one table shape, so the common
// CRUD lives in baseCatalogRepo and the typed repos stay thin.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"sklad/internal/core/apperror"
	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/infrastructure/storage/postgres"
)

// lineTable is referenced by usage checks before catalog deletion.
const lineTable = "receipt_lines"

type baseCatalogRepo struct {
	txm        *postgres.TxManager
	table      string
	entityName string
	// refColumn is the receipt_lines column that references this catalog.
	refColumn string
}

func newBaseCatalogRepo(txm *postgres.TxManager, table, entityName, refColumn string) *baseCatalogRepo {
	return &baseCatalogRepo{
		txm:        txm,
		table:      table,
		entityName: entityName,
		refColumn:  refColumn,
	}
}

func (r *baseCatalogRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *baseCatalogRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select("id", "name", "status").
		From(r.table)
}

func (r *baseCatalogRepo) insert(ctx context.Context, c *entity.Catalog) error {
	q := r.builder().
		Insert(r.table).
		Columns("id", "name", "status").
		Values(c.ID, c.Name, c.Status)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.table, err)
	}
	return nil
}

func (r *baseCatalogRepo) getByID(ctx context.Context, entityID id.ID) (*entity.Catalog, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c entity.Catalog
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(r.entityName, entityID)
		}
		return nil, fmt.Errorf("get %s: %w", r.entityName, err)
	}
	return &c, nil
}

func (r *baseCatalogRepo) update(ctx context.Context, c *entity.Catalog) error {
	q := r.builder().
		Update(r.table).
		Set("name", c.Name).
		Set("status", c.Status).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, c.ID)
	}
	return nil
}

func (r *baseCatalogRepo) delete(ctx context.Context, entityID id.ID) error {
	q := r.builder().
		Delete(r.table).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID)
	}
	return nil
}

func (r *baseCatalogRepo) list(ctx context.Context) ([]*entity.Catalog, error) {
	q := r.baseSelect().OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*entity.Catalog
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	return items, nil
}

// existsByName checks uniqueness against the normalized (trimmed,
// upper-cased) form of stored names.
func (r *baseCatalogRepo) existsByName(ctx context.Context, normalizedName string, excludeID id.ID) (bool, error) {
	inner := r.builder().
		Select("1").
		From(r.table).
		Where(squirrel.Expr("upper(trim(name)) = ?", normalizedName))
	if !id.IsNil(excludeID) {
		inner = inner.Where(squirrel.NotEq{"id": excludeID})
	}

	innerSQL, args, err := inner.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists bool
	row := r.txm.GetQuerier(ctx).QueryRow(ctx, "SELECT EXISTS ("+innerSQL+")", args...)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by name: %w", err)
	}
	return exists, nil
}

// inUse reports whether any receipt line references the catalog entry.
func (r *baseCatalogRepo) inUse(ctx context.Context, entityID id.ID) (bool, error) {
	inner := r.builder().
		Select("1").
		From(lineTable).
		Where(squirrel.Eq{r.refColumn: entityID})

	innerSQL, args, err := inner.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists bool
	row := r.txm.GetQuerier(ctx).QueryRow(ctx, "SELECT EXISTS ("+innerSQL+")", args...)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("in use: %w", err)
	}
	return exists, nil
}
