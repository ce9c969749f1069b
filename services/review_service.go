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

type ReviewService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewReviewService(logger *gecho.Logger, db *database.DB) *ReviewService {
	return &ReviewService{
		logger: logger,
		db:     db,
	}
}

// Create stores a review for a product. A reply's parent must be an existing
// review on the same product.
func (rs *ReviewService) Create(ctx context.Context, productID int64, req *structs.ReviewCreateRequest) (*tables.Review, error) {
	exists, err := database.Query[tables.Product](rs.db).Where("id", productID).Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: product %d", lib.ErrNotFound, productID)
	}

	if req.ParentID != nil {
		parent, err := database.FindByID[tables.Review](rs.db, ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up parent review: %w", err)
		}
		if parent == nil || parent.ProductID != productID {
			return nil, fmt.Errorf("%w: parent review %d", lib.ErrNotFound, *req.ParentID)
		}
	}

	review := &tables.Review{
		ProductID: productID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		Email:     req.Email,
		Text:      req.Text,
	}

	review, err = database.Query[tables.Review](rs.db).Insert(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	rs.logger.Debug("Review created",
		gecho.Field("review_id", review.ID),
		gecho.Field("product_id", productID),
	)

	return review, nil
}

// ListByProduct returns a product's reviews, oldest first so threads read
// top-down.
func (rs *ReviewService) ListByProduct(ctx context.Context, productID int64) ([]tables.Review, error) {
	reviews, err := database.Query[tables.Review](rs.db).
		Where("product_id", productID).
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
