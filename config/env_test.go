package config

import (
	"testing"
	"time"
)

func TestGetEnvAsString(t *testing.T) {
	t.Setenv("TEST_STR", "hello")

	if got := getEnvAsString("TEST_STR", "fallback"); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
	if got := getEnvAsString("TEST_STR_MISSING", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")

	if got := getEnvAsInt("TEST_INT", 7); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	if got := getEnvAsInt("TEST_INT_BAD", 7); got != 7 {
		t.Errorf("invalid value should fall back, got %d", got)
	}
	if got := getEnvAsInt("TEST_INT_MISSING", 7); got != 7 {
		t.Errorf("missing value should fall back, got %d", got)
	}
}

func TestGetEnvAsTimeDuration(t *testing.T) {
	t.Setenv("TEST_DUR_SECS", "30")
	t.Setenv("TEST_DUR_GO", "1500ms")
	t.Setenv("TEST_DUR_BAD", "soon")

	if got := getEnvAsTimeDuration("TEST_DUR_SECS", time.Minute); got != 30*time.Second {
		t.Errorf("plain number should be seconds, got %v", got)
	}
	if got := getEnvAsTimeDuration("TEST_DUR_GO", time.Minute); got != 1500*time.Millisecond {
		t.Errorf("duration string should parse, got %v", got)
	}
	if got := getEnvAsTimeDuration("TEST_DUR_BAD", time.Minute); got != time.Minute {
		t.Errorf("invalid value should fall back, got %v", got)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BOOL_BAD", "yep")

	if !getEnvAsBool("TEST_BOOL", false) {
		t.Error("expected true")
	}
	if !getEnvAsBool("TEST_BOOL_BAD", true) {
		t.Error("invalid value should fall back")
	}
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", "a, b ,, c")

	got := getEnvAsSlice("TEST_SLICE", nil)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}

	fallback := []string{"x"}
	if got := getEnvAsSlice("TEST_SLICE_MISSING", fallback); len(got) != 1 || got[0] != "x" {
		t.Errorf("missing value should fall back, got %v", got)
	}
}
