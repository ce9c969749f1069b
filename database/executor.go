package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

func (q *QueryBuilder[T]) applyWhereToSelect(query *bun.SelectQuery) *bun.SelectQuery {
	for _, w := range q.wheres {
		switch {
		case w.IsRaw:
			query = query.Where(w.RawSQL, w.RawArgs...)
		case w.NoValue:
			query = query.Where(fmt.Sprintf("? %s", w.Operator), bun.Ident(w.Column))
		case w.Operator == "IN":
			query = query.Where("? IN (?)", bun.Ident(w.Column), bun.In(w.Value))
		default:
			query = query.Where(fmt.Sprintf("? %s ?", w.Operator), bun.Ident(w.Column), w.Value)
		}
	}
	return query
}

func (q *QueryBuilder[T]) buildSelect(model any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(model)

	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}

	query = q.applyWhereToSelect(query)

	for _, rel := range q.relations {
		query = query.Relation(rel)
	}

	for _, o := range q.orders {
		query = query.OrderExpr(fmt.Sprintf("? %s", o.Direction), bun.Ident(o.Column))
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}

	return query
}

func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		data = nil // Reset on retry
		return q.buildSelect(&data).Scan(ctx)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record with
// automatic retry. Returns nil, nil when no row matches.
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var data T

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		return q.buildSelect(&data).Limit(1).Scan(ctx)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var count int

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		var err error
		count, err = q.applyWhereToSelect(q.db.NewSelect().Model(&model)).Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record and returns it with generated columns filled in.
// Unique violations are never retried; they surface so callers can resolve
// lost find-or-create races by re-fetching.
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		_, err := q.db.NewInsert().Model(data).Returning("*").Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update updates records matching the query and returns the number of rows
// affected
func (q *QueryBuilder[T]) Update(ctx context.Context, data map[string]any) (int, error) {
	start := time.Now()
	var rowsAffected int64

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query := q.db.NewUpdate().Model((*T)(nil))

		for col, val := range data {
			query = query.Set("? = ?", bun.Ident(col), val)
		}

		for _, w := range q.wheres {
			switch {
			case w.IsRaw:
				query = query.Where(w.RawSQL, w.RawArgs...)
			case w.NoValue:
				query = query.Where(fmt.Sprintf("? %s", w.Operator), bun.Ident(w.Column))
			case w.Operator == "IN":
				query = query.Where("? IN (?)", bun.Ident(w.Column), bun.In(w.Value))
			default:
				query = query.Where(fmt.Sprintf("? %s ?", w.Operator), bun.Ident(w.Column), w.Value)
			}
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete removes records matching the query and returns the number of rows
// affected
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	var rowsAffected int64

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query := q.db.NewDelete().Model((*T)(nil))

		for _, w := range q.wheres {
			switch {
			case w.IsRaw:
				query = query.Where(w.RawSQL, w.RawArgs...)
			case w.NoValue:
				query = query.Where(fmt.Sprintf("? %s", w.Operator), bun.Ident(w.Column))
			case w.Operator == "IN":
				query = query.Where("? IN (?)", bun.Ident(w.Column), bun.In(w.Value))
			default:
				query = query.Where(fmt.Sprintf("? %s ?", w.Operator), bun.Ident(w.Column), w.Value)
			}
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}
