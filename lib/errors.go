package lib

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// ErrInvalidArgument marks caller input that passed surface validation but
// cannot be used, e.g. a title no slug can be derived from.
var ErrInvalidArgument = errors.New("invalid argument")

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MapPgError maps a Postgres SQLSTATE onto the package sentinels so callers
// can branch without importing driver types.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUniqueViolation reports whether err is a duplicate-key conflict, either
// already mapped or still carrying the raw SQLSTATE.
func IsUniqueViolation(err error) bool {
	return errors.Is(MapPgError(err), ErrConflict)
}
