package tables

import "time"

// Review is a product comment, optionally threaded via ParentID.
type Review struct {
	tableName struct{}  `bun:"table:reviews,alias:rv"`
	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	ProductID int64     `bun:"product_id,notnull" json:"product_id"`
	ParentID  *int64    `bun:"parent_id" json:"parent,omitempty"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull" json:"email"`
	Text      string    `bun:"text,notnull" json:"text"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}
