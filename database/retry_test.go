package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"context canceled", context.Canceled, false},
		{"no rows", sql.ErrNoRows, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock detected", &pgconn.PgError{Code: "40P01"}, true},
		{"cannot connect now", &pgconn.PgError{Code: "57P03"}, true},
		{"connection exception class", &pgconn.PgError{Code: "08006"}, true},
		{"insufficient resources class", &pgconn.PgError{Code: "53300"}, true},
		{"unique violation is permanent", &pgconn.PgError{Code: "23505"}, false},
		{"syntax error is permanent", &pgconn.PgError{Code: "42601"}, false},
		{"network refused", errors.New("dial tcp: connection refused"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"unrelated plain error", errors.New("something else"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryWithBackoffStopsOnPermanentError(t *testing.T) {
	cfg := DefaultRetryConfig()
	calls := 0

	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return &pgconn.PgError{Code: "23505"}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("permanent error should not be retried, got %d calls", calls)
	}
}

func TestRetryWithBackoffRetriesTransientError(t *testing.T) {
	cfg := DefaultRetryConfig()
	cfg.InitialDelay = 0
	calls := 0

	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryWithBackoffDisabled(t *testing.T) {
	cfg := DefaultRetryConfig()
	cfg.EnableRetry = false
	calls := 0

	_ = RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return &pgconn.PgError{Code: "40001"}
	})
	if calls != 1 {
		t.Errorf("retry disabled should call once, got %d", calls)
	}
}
