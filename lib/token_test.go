package lib

import "testing"

func TestGenerateRandomToken(t *testing.T) {
	first, err := GenerateRandomToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == "" {
		t.Fatal("token should not be empty")
	}

	second, err := GenerateRandomToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("two tokens should not collide")
	}
}
