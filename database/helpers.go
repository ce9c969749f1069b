package database

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Transaction executes a function within a database transaction
func Transaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	db := GetInstance()
	return db.RunInTx(ctx, nil, fn)
}

// FindByID is a helper to find a record by ID
func FindByID[T any](db *DB, ctx context.Context, id any) (*T, error) {
	return Query[T](db).Where("id", id).First(ctx)
}

// Upsert performs INSERT ... ON CONFLICT (conflictColumns) DO UPDATE,
// overwriting updateColumns from the excluded row. This is the single point
// that gives the cart-line and rating ledgers their exactly-one-row-per-key
// guarantee under concurrent submissions.
func Upsert[T any](db *DB, ctx context.Context, data *T, conflictColumns string, updateColumns ...string) (*T, error) {
	start := time.Now()

	query := db.NewInsert().Model(data)

	if len(updateColumns) > 0 {
		query = query.On(fmt.Sprintf("CONFLICT (%s) DO UPDATE", conflictColumns))
		for _, col := range updateColumns {
			query = query.Set(fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	} else {
		query = query.On(fmt.Sprintf("CONFLICT (%s) DO NOTHING", conflictColumns))
	}

	err := WithRetry(ctx, func() error {
		_, err := query.Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute upsert: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Pagination represents pagination parameters
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// PaginationResult wraps paginated data with metadata
type PaginationResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Paginate applies pagination to a query builder and returns results with metadata
func Paginate[T any](q *QueryBuilder[T], ctx context.Context, page, pageSize int) (*PaginationResult[T], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100 // Max page size
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	offset := (page - 1) * pageSize

	data, err := q.Limit(pageSize).Offset(offset).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get paginated data: %w", err)
	}

	return &PaginationResult[T]{
		Data: data,
		Pagination: Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}
