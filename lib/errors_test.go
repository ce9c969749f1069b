package lib

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapPgError(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505"}
	noDataErr := &pgconn.PgError{Code: "P0002"}
	otherPgErr := &pgconn.PgError{Code: "42601"}
	plainErr := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows maps to not found", sql.ErrNoRows, ErrNotFound},
		{"unique violation maps to conflict", uniqueErr, ErrConflict},
		{"wrapped unique violation maps to conflict", fmt.Errorf("insert: %w", uniqueErr), ErrConflict},
		{"no data found maps to not found", noDataErr, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapPgError(tt.in)
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("MapPgError() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := MapPgError(otherPgErr); !errors.As(got, new(*pgconn.PgError)) {
		t.Errorf("unrelated SQLSTATE should pass through, got %v", got)
	}
	if got := MapPgError(plainErr); got != plainErr {
		t.Errorf("plain error should pass through, got %v", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("raw SQLSTATE 23505 should be a unique violation")
	}
	if !IsUniqueViolation(ErrConflict) {
		t.Error("mapped conflict should be a unique violation")
	}
	if IsUniqueViolation(sql.ErrNoRows) {
		t.Error("no rows is not a unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil is not a unique violation")
	}
}
