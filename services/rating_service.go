package services

import (
	"abbooks_server/database"
	"abbooks_server/lib"
	"abbooks_server/structs"
	"abbooks_server/structs/tables"
	"context"
	"fmt"

	"github.com/MonkyMars/gecho"
)

type RatingService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewRatingService(logger *gecho.Logger, db *database.DB) *RatingService {
	return &RatingService{
		logger: logger,
		db:     db,
	}
}

// Submit records a star rating keyed by (client ip, product). A repeat
// submission from the same ip for the same product overwrites the previous
// star; the unique constraint makes concurrent submissions collapse to one
// row. Unknown product or star references are the caller's error.
func (rs *RatingService) Submit(ctx context.Context, ip string, req *structs.RatingRequest) (*tables.Rating, error) {
	exists, err := database.Query[tables.Product](rs.db).Where("id", req.ProductID).Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: product %d", lib.ErrNotFound, req.ProductID)
	}

	exists, err = database.Query[tables.RatingStar](rs.db).Where("id", req.StarID).Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up rating star: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: rating star %d", lib.ErrNotFound, req.StarID)
	}

	rating := &tables.Rating{
		IP:        ip,
		ProductID: req.ProductID,
		StarID:    req.StarID,
	}

	rating, err = database.Upsert(rs.db, ctx, rating, "ip, product_id", "star_id")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}

	rs.logger.Debug("Rating submitted",
		gecho.Field("product_id", req.ProductID),
		gecho.Field("star_id", req.StarID),
	)

	return rating, nil
}

// ListStars returns the rating star lookup set, highest value first.
func (rs *RatingService) ListStars(ctx context.Context) ([]tables.RatingStar, error) {
	stars, err := database.Query[tables.RatingStar](rs.db).
		OrderBy("value", database.DESC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rating stars: %w", err)
	}
	return stars, nil
}

// Summary aggregates the ratings for one product.
func (rs *RatingService) Summary(ctx context.Context, productID int64) (*structs.RatingSummary, error) {
	ratings, err := database.Query[tables.Rating](rs.db).
		Where("product_id", productID).
		Relation("Star").
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}

	summary := &structs.RatingSummary{Count: len(ratings)}
	if summary.Count == 0 {
		return summary, nil
	}

	var sum int64
	for _, r := range ratings {
		if r.Star != nil {
			sum += int64(r.Star.Value)
		}
	}
	summary.Average = float64(sum) / float64(summary.Count)
	return summary, nil
}
