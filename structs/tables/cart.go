package tables

import (
	"time"

	"github.com/google/uuid"
)

// Cart is owned by either a user or an anonymous session key, never both.
// Both columns are nullable uniques; Postgres permits any number of NULLs,
// so the constraints bite only on real duplicates. TotalCost is retained
// from the legacy schema but is not authoritative; totals are computed from
// the lines on demand.
type Cart struct {
	tableName  struct{}   `bun:"table:carts,alias:ct"`
	ID         int64      `bun:"id,pk,autoincrement" json:"id"`
	UserID     *uuid.UUID `bun:"user_id,type:uuid,unique" json:"user_id,omitempty"`
	SessionKey *string    `bun:"session_key,unique" json:"session_key,omitempty"`
	TotalCost  int64      `bun:"total_cost,notnull,default:0" json:"total_cost"`
	CreatedAt  time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`
}

// CartItem is one product line within a cart, unique per (cart, product).
type CartItem struct {
	tableName struct{} `bun:"table:cart_items,alias:ci"`
	ID        int64    `bun:"id,pk,autoincrement" json:"id"`
	CartID    int64    `bun:"cart_id,notnull,unique:cart_items_cart_product" json:"cart_id"`
	ProductID int64    `bun:"product_id,notnull,unique:cart_items_cart_product" json:"product_id"`
	Quantity  int64    `bun:"quantity,notnull" json:"quantity"`
	Product   *Product `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}
