package tables

// RatingStar is the fixed 1..5 lookup set, listed descending by value.
type RatingStar struct {
	tableName struct{} `bun:"table:rating_stars,alias:rs"`
	ID        int64    `bun:"id,pk,autoincrement" json:"id"`
	Value     int16    `bun:"value,notnull" json:"value"`
}

// Rating holds one star value per (ip, product); submissions upsert.
type Rating struct {
	tableName struct{}    `bun:"table:ratings,alias:r"`
	ID        int64       `bun:"id,pk,autoincrement" json:"id"`
	IP        string      `bun:"ip,notnull,unique:ratings_ip_product" json:"ip"`
	ProductID int64       `bun:"product_id,notnull,unique:ratings_ip_product" json:"product_id"`
	StarID    int64       `bun:"star_id,notnull" json:"star_id"`
	Star      *RatingStar `bun:"rel:belongs-to,join:star_id=id" json:"star,omitempty"`
}
