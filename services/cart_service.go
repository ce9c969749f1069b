package services

import (
	"abbooks_server/database"
	"abbooks_server/lib"
	"abbooks_server/structs"
	"abbooks_server/structs/tables"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type CartService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewCartService(logger *gecho.Logger, db *database.DB) *CartService {
	return &CartService{
		logger: logger,
		db:     db,
	}
}

// ParseQuantity parses the quantity field from its wire form. The value
// arrives as opaque text and must be a positive integer; everything else is
// rejected before it reaches the database.
func ParseQuantity(raw string) (int64, error) {
	qty, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity must be a whole number")
	}
	if qty <= 0 {
		return 0, fmt.Errorf("quantity must be greater than zero")
	}
	return qty, nil
}

// CartTotal computes the cart total in cents from its lines. The stored
// total_cost column is never trusted.
func CartTotal(items []tables.CartItem) int64 {
	var total int64
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total += item.Product.PriceCents * item.Quantity
	}
	return total
}

// ResolveCart finds or creates the cart owned by the given identity.
func (cs *CartService) ResolveCart(ctx context.Context, identity structs.CartIdentity) (*tables.Cart, error) {
	if identity.Authenticated() {
		return cs.CartForUser(ctx, *identity.UserID)
	}
	return cs.CartForSession(ctx, identity.SessionKey)
}

// CartForUser finds or creates the single cart owned by a user. Losing the
// insert race to a concurrent request is resolved by re-fetching; the unique
// constraint on user_id guarantees at most one winner.
func (cs *CartService) CartForUser(ctx context.Context, userID uuid.UUID) (*tables.Cart, error) {
	cart, err := database.Query[tables.Cart](cs.db).Where("user_id", userID).First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user cart: %w", err)
	}
	if cart != nil {
		return cart, nil
	}

	cart, err = database.Query[tables.Cart](cs.db).Insert(ctx, &tables.Cart{UserID: &userID})
	if err != nil {
		if lib.IsUniqueViolation(lib.MapPgError(err)) {
			// Lost the race; the winner's cart is the cart.
			return database.Query[tables.Cart](cs.db).Where("user_id", userID).First(ctx)
		}
		return nil, fmt.Errorf("failed to create user cart: %w", err)
	}

	cs.logger.Debug("Created cart for user", gecho.Field("cart_id", cart.ID), gecho.Field("user_id", userID))
	return cart, nil
}

// CartForSession finds or creates the cart tied to an anonymous session key.
func (cs *CartService) CartForSession(ctx context.Context, sessionKey string) (*tables.Cart, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is required for anonymous carts")
	}

	cart, err := database.Query[tables.Cart](cs.db).Where("session_key", sessionKey).First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session cart: %w", err)
	}
	if cart != nil {
		return cart, nil
	}

	cart, err = database.Query[tables.Cart](cs.db).Insert(ctx, &tables.Cart{SessionKey: &sessionKey})
	if err != nil {
		if lib.IsUniqueViolation(lib.MapPgError(err)) {
			return database.Query[tables.Cart](cs.db).Where("session_key", sessionKey).First(ctx)
		}
		return nil, fmt.Errorf("failed to create session cart: %w", err)
	}

	cs.logger.Debug("Created cart for session", gecho.Field("cart_id", cart.ID))
	return cart, nil
}

// UpsertLine sets the quantity of a product line in a cart. A repeat add of
// the same product overwrites the quantity rather than accumulating, matching
// the storefront's "set quantity" form semantics. The product must exist and
// be on sale.
func (cs *CartService) UpsertLine(ctx context.Context, cartID, productID, quantity int64) (*tables.CartItem, error) {
	product, err := database.FindByID[tables.Product](cs.db, ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil || !product.IsSale {
		return nil, fmt.Errorf("%w: product %d", lib.ErrNotFound, productID)
	}

	line := &tables.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}

	line, err = database.Upsert(cs.db, ctx, line, "cart_id, product_id", "quantity")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart line: %w", err)
	}

	cs.logger.Debug("Cart line upserted",
		gecho.Field("cart_id", cartID),
		gecho.Field("product_id", productID),
		gecho.Field("quantity", quantity),
	)

	return line, nil
}

// Lines returns the cart's lines with their products, oldest first.
func (cs *CartService) Lines(ctx context.Context, cartID int64) ([]tables.CartItem, error) {
	items, err := database.Query[tables.CartItem](cs.db).
		Where("cart_id", cartID).
		Relation("Product").
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart lines: %w", err)
	}
	return items, nil
}

// CountLines returns the number of distinct product lines in a cart, the
// value surfaced to clients through the cart_count cookie.
func (cs *CartService) CountLines(ctx context.Context, cartID int64) (int, error) {
	return database.Query[tables.CartItem](cs.db).Where("cart_id", cartID).Count(ctx)
}

// Clear removes every line from one cart. The scope is the single cart id;
// no other cart is ever touched.
func (cs *CartService) Clear(ctx context.Context, cartID int64) error {
	_, err := database.Query[tables.CartItem](cs.db).Where("cart_id", cartID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// MergeSessionCartIntoUser moves an anonymous cart's lines into the user's
// cart at login. Session quantities win on collision, then the session cart
// is deleted. Runs in one transaction so a crash cannot leave a half-merged
// pair.
func (cs *CartService) MergeSessionCartIntoUser(ctx context.Context, sessionKey string, userID uuid.UUID) error {
	if sessionKey == "" {
		return nil
	}

	sessionCart, err := database.Query[tables.Cart](cs.db).Where("session_key", sessionKey).First(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up session cart for merge: %w", err)
	}
	if sessionCart == nil {
		return nil // nothing to merge
	}

	userCart, err := cs.CartForUser(ctx, userID)
	if err != nil {
		return err
	}

	err = database.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		var sessionLines []tables.CartItem
		if err := tx.NewSelect().Model(&sessionLines).Where("cart_id = ?", sessionCart.ID).Scan(ctx); err != nil {
			return err
		}

		for _, line := range sessionLines {
			merged := &tables.CartItem{
				CartID:    userCart.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			}
			_, err := tx.NewInsert().Model(merged).
				On("CONFLICT (cart_id, product_id) DO UPDATE").
				Set("quantity = EXCLUDED.quantity").
				Exec(ctx)
			if err != nil {
				return err
			}
		}

		if _, err := tx.NewDelete().Model((*tables.CartItem)(nil)).Where("cart_id = ?", sessionCart.ID).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*tables.Cart)(nil)).Where("id = ?", sessionCart.ID).Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to merge session cart: %w", err)
	}

	cs.logger.Debug("Merged session cart into user cart",
		gecho.Field("user_id", userID),
		gecho.Field("user_cart_id", userCart.ID),
	)
	return nil
}
