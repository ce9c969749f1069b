package tables

import "time"

type Category struct {
	tableName   struct{} `bun:"table:categories,alias:c"`
	ID          int64    `bun:"id,pk,autoincrement" json:"id"`
	Title       string   `bun:"title,notnull" json:"title"`
	Description string   `bun:"description,notnull" json:"description"`
	Slug        string   `bun:"slug,unique,notnull" json:"slug"`
}

type Author struct {
	tableName struct{}   `bun:"table:authors,alias:a"`
	ID        int64      `bun:"id,pk,autoincrement" json:"id"`
	Name      string     `bun:"name,notnull" json:"name"`
	BirthDay  *time.Time `bun:"birth_day" json:"birth_day,omitempty"`
	About     string     `bun:"about,notnull" json:"about"`
	Slug      string     `bun:"slug,unique,notnull" json:"slug"`
}

type Product struct {
	tableName   struct{}   `bun:"table:products,alias:p"`
	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	Title       string     `bun:"title,notnull" json:"title"`
	Slug        string     `bun:"slug,unique,notnull" json:"slug"`
	Description string     `bun:"description,notnull" json:"description"`
	ImageURL    string     `bun:"image_url" json:"image_url,omitempty"`
	PriceCents  int64      `bun:"price_cents,notnull" json:"price_cents"` // fixed-point decimal stored in cents
	AuthorID    int64      `bun:"author_id,notnull" json:"author_id"`
	Author      *Author    `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	IsSale      bool       `bun:"is_sale,notnull,default:true" json:"is_sale"`
	Categories  []Category `bun:"m2m:product_categories,join:Product=Category" json:"categories,omitempty"`
}

// ProductCategory is the m2m join table between products and categories.
// It must be registered with bun before relation queries work.
type ProductCategory struct {
	tableName  struct{}  `bun:"table:product_categories,alias:pc"`
	ProductID  int64     `bun:"product_id,pk" json:"product_id"`
	Product    *Product  `bun:"rel:belongs-to,join:product_id=id" json:"-"`
	CategoryID int64     `bun:"category_id,pk" json:"category_id"`
	Category   *Category `bun:"rel:belongs-to,join:category_id=id" json:"-"`
}
