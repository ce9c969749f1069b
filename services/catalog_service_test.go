package services

import (
	"abbooks_server/lib"
	"abbooks_server/structs"
	"context"
	"errors"
	"testing"
)

func TestCreateProductRejectsUnderivableSlug(t *testing.T) {
	// The slug check runs before any lookup, so no database is needed.
	cs := &CatalogService{}

	req := &structs.ProductCreateRequest{
		Title:       "???",
		Description: "a title of nothing but punctuation",
		PriceCents:  1000,
		AuthorID:    1,
		CategoryIDs: []int64{1},
	}

	_, err := cs.CreateProduct(context.Background(), req)
	if !errors.Is(err, lib.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCreateProductAcceptsTransliteratedTitle(t *testing.T) {
	if got := lib.Slugify("Война и мир"); got != "voina-i-mir" {
		t.Errorf("Slugify = %q, want voina-i-mir", got)
	}
	if lib.Slugify("Анна Каренина") == "" {
		t.Error("a Cyrillic title must not collapse to an empty slug")
	}
}
