//go:build integration

// These tests run against a real Postgres instance (configured through the
// usual DB_* environment variables) because the behavior under test lives in
// the database: ON CONFLICT upserts, unique-constraint races and transaction
// scope. Run with `go test -tags integration ./services`.

package services

import (
	"abbooks_server/database"
	"abbooks_server/lib"
	"abbooks_server/structs"
	"abbooks_server/structs/tables"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

func integrationDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Connect()
	if err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	models := []any{
		(*tables.Author)(nil),
		(*tables.Category)(nil),
		(*tables.Product)(nil),
		(*tables.ProductCategory)(nil),
		(*tables.Cart)(nil),
		(*tables.CartItem)(nil),
		(*tables.RatingStar)(nil),
		(*tables.Rating)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("failed to create table for %T: %v", model, err)
		}
	}

	return db
}

// seedProduct inserts an author and a product with unique slugs so repeated
// test runs never collide on the slug constraints.
func seedProduct(t *testing.T, db *database.DB, onSale bool) *tables.Product {
	t.Helper()
	ctx := context.Background()
	suffix := uuid.NewString()

	author, err := database.Query[tables.Author](db).Insert(ctx, &tables.Author{
		Name: "Test Author",
		Slug: "test-author-" + suffix,
	})
	if err != nil {
		t.Fatalf("failed to seed author: %v", err)
	}

	product, err := database.Query[tables.Product](db).Insert(ctx, &tables.Product{
		Title:       "Test Book",
		Slug:        "test-book-" + suffix,
		Description: "integration fixture",
		PriceCents:  1000,
		AuthorID:    author.ID,
		IsSale:      onSale,
	})
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

// seedStars makes sure the fixed 1..5 star lookup exists and returns the ids
// keyed by value.
func seedStars(t *testing.T, db *database.DB) map[int16]int64 {
	t.Helper()
	ctx := context.Background()

	count, err := database.Query[tables.RatingStar](db).Count(ctx)
	if err != nil {
		t.Fatalf("failed to count rating stars: %v", err)
	}
	if count == 0 {
		for v := int16(1); v <= 5; v++ {
			if _, err := database.Query[tables.RatingStar](db).Insert(ctx, &tables.RatingStar{Value: v}); err != nil {
				t.Fatalf("failed to seed rating star %d: %v", v, err)
			}
		}
	}

	stars, err := database.Query[tables.RatingStar](db).All(ctx)
	if err != nil {
		t.Fatalf("failed to list rating stars: %v", err)
	}
	byValue := map[int16]int64{}
	for _, s := range stars {
		byValue[s.Value] = s.ID
	}
	return byValue
}

func TestCartResolutionIdempotent(t *testing.T) {
	db := integrationDB(t)
	cs := NewCartService(gecho.NewDefaultLogger(), db)
	ctx := context.Background()

	sessionKey := uuid.NewString()
	first, err := cs.CartForSession(ctx, sessionKey)
	if err != nil {
		t.Fatalf("first session cart resolution: %v", err)
	}
	second, err := cs.CartForSession(ctx, sessionKey)
	if err != nil {
		t.Fatalf("second session cart resolution: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("session cart ids differ: %d vs %d", first.ID, second.ID)
	}

	userID := uuid.New()
	firstUser, err := cs.CartForUser(ctx, userID)
	if err != nil {
		t.Fatalf("first user cart resolution: %v", err)
	}
	secondUser, err := cs.CartForUser(ctx, userID)
	if err != nil {
		t.Fatalf("second user cart resolution: %v", err)
	}
	if firstUser.ID != secondUser.ID {
		t.Errorf("user cart ids differ: %d vs %d", firstUser.ID, secondUser.ID)
	}
}

func TestUpsertLineOverwritesQuantity(t *testing.T) {
	db := integrationDB(t)
	cs := NewCartService(gecho.NewDefaultLogger(), db)
	ctx := context.Background()

	product := seedProduct(t, db, true)
	cart, err := cs.CartForSession(ctx, uuid.NewString())
	if err != nil {
		t.Fatalf("failed to resolve cart: %v", err)
	}

	if _, err := cs.UpsertLine(ctx, cart.ID, product.ID, 2); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := cs.UpsertLine(ctx, cart.ID, product.ID, 5); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	lines, err := cs.Lines(ctx, cart.ID)
	if err != nil {
		t.Fatalf("failed to list lines: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want exactly one", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5 (second value wins)", lines[0].Quantity)
	}
}

func TestUpsertLineRejectsOffSaleProduct(t *testing.T) {
	db := integrationDB(t)
	cs := NewCartService(gecho.NewDefaultLogger(), db)
	ctx := context.Background()

	product := seedProduct(t, db, false)
	cart, err := cs.CartForSession(ctx, uuid.NewString())
	if err != nil {
		t.Fatalf("failed to resolve cart: %v", err)
	}

	if _, err := cs.UpsertLine(ctx, cart.ID, product.ID, 1); !errors.Is(err, lib.ErrNotFound) {
		t.Errorf("off-sale product: got %v, want ErrNotFound", err)
	}
}

func TestClearTouchesOnlyOneCart(t *testing.T) {
	db := integrationDB(t)
	cs := NewCartService(gecho.NewDefaultLogger(), db)
	ctx := context.Background()

	product := seedProduct(t, db, true)
	cleared, err := cs.CartForSession(ctx, uuid.NewString())
	if err != nil {
		t.Fatalf("failed to resolve first cart: %v", err)
	}
	bystander, err := cs.CartForSession(ctx, uuid.NewString())
	if err != nil {
		t.Fatalf("failed to resolve second cart: %v", err)
	}

	if _, err := cs.UpsertLine(ctx, cleared.ID, product.ID, 1); err != nil {
		t.Fatalf("failed to fill first cart: %v", err)
	}
	if _, err := cs.UpsertLine(ctx, bystander.ID, product.ID, 3); err != nil {
		t.Fatalf("failed to fill second cart: %v", err)
	}

	if err := cs.Clear(ctx, cleared.ID); err != nil {
		t.Fatalf("failed to clear cart: %v", err)
	}

	count, err := cs.CountLines(ctx, cleared.ID)
	if err != nil {
		t.Fatalf("failed to count cleared cart: %v", err)
	}
	if count != 0 {
		t.Errorf("cleared cart has %d lines, want 0", count)
	}

	remaining, err := cs.Lines(ctx, bystander.ID)
	if err != nil {
		t.Fatalf("failed to list bystander cart: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Quantity != 3 {
		t.Errorf("bystander cart changed: %+v", remaining)
	}
}

func TestMergeSessionCartIntoUser(t *testing.T) {
	db := integrationDB(t)
	cs := NewCartService(gecho.NewDefaultLogger(), db)
	ctx := context.Background()

	shared := seedProduct(t, db, true)
	sessionOnly := seedProduct(t, db, true)

	sessionKey := uuid.NewString()
	sessionCart, err := cs.CartForSession(ctx, sessionKey)
	if err != nil {
		t.Fatalf("failed to resolve session cart: %v", err)
	}
	userID := uuid.New()
	userCart, err := cs.CartForUser(ctx, userID)
	if err != nil {
		t.Fatalf("failed to resolve user cart: %v", err)
	}

	// User had 7 of the shared product; the session cart's 3 must win.
	if _, err := cs.UpsertLine(ctx, userCart.ID, shared.ID, 7); err != nil {
		t.Fatalf("failed to fill user cart: %v", err)
	}
	if _, err := cs.UpsertLine(ctx, sessionCart.ID, shared.ID, 3); err != nil {
		t.Fatalf("failed to fill session cart: %v", err)
	}
	if _, err := cs.UpsertLine(ctx, sessionCart.ID, sessionOnly.ID, 1); err != nil {
		t.Fatalf("failed to fill session cart: %v", err)
	}

	if err := cs.MergeSessionCartIntoUser(ctx, sessionKey, userID); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	lines, err := cs.Lines(ctx, userCart.ID)
	if err != nil {
		t.Fatalf("failed to list merged cart: %v", err)
	}
	quantities := map[int64]int64{}
	for _, line := range lines {
		quantities[line.ProductID] = line.Quantity
	}
	if quantities[shared.ID] != 3 {
		t.Errorf("shared product quantity = %d, want 3 (session wins)", quantities[shared.ID])
	}
	if quantities[sessionOnly.ID] != 1 {
		t.Errorf("session-only product quantity = %d, want 1", quantities[sessionOnly.ID])
	}
	if len(lines) != 2 {
		t.Errorf("merged cart has %d lines, want 2", len(lines))
	}

	gone, err := database.Query[tables.Cart](db).Where("session_key", sessionKey).First(ctx)
	if err != nil {
		t.Fatalf("failed to look up session cart after merge: %v", err)
	}
	if gone != nil {
		t.Error("session cart should be deleted after merge")
	}
}

func TestRatingResubmitOverwritesStar(t *testing.T) {
	db := integrationDB(t)
	rs := NewRatingService(gecho.NewDefaultLogger(), db)
	ctx := context.Background()

	product := seedProduct(t, db, true)
	stars := seedStars(t, db)
	ip := fmt.Sprintf("10.0.%d.%d", product.ID%250, product.ID%100)

	if _, err := rs.Submit(ctx, ip, &structs.RatingRequest{ProductID: product.ID, StarID: stars[3]}); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if _, err := rs.Submit(ctx, ip, &structs.RatingRequest{ProductID: product.ID, StarID: stars[5]}); err != nil {
		t.Fatalf("second submission: %v", err)
	}

	ratings, err := database.Query[tables.Rating](db).
		Where("ip", ip).
		Where("product_id", product.ID).
		All(ctx)
	if err != nil {
		t.Fatalf("failed to list ratings: %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("got %d rating rows, want exactly one", len(ratings))
	}
	if ratings[0].StarID != stars[5] {
		t.Errorf("star id = %d, want %d (latest submission wins)", ratings[0].StarID, stars[5])
	}
}

func TestListStarsDescending(t *testing.T) {
	db := integrationDB(t)
	rs := NewRatingService(gecho.NewDefaultLogger(), db)

	seedStars(t, db)
	stars, err := rs.ListStars(context.Background())
	if err != nil {
		t.Fatalf("failed to list stars: %v", err)
	}
	if len(stars) < 5 {
		t.Fatalf("got %d stars, want at least 5", len(stars))
	}
	for i := 1; i < len(stars); i++ {
		if stars[i].Value > stars[i-1].Value {
			t.Fatalf("stars not descending at index %d: %d after %d", i, stars[i].Value, stars[i-1].Value)
		}
	}
}
