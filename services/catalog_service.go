package services

import (
	"abbooks_server/database"
	"abbooks_server/lib"
	"abbooks_server/structs"
	"abbooks_server/structs/tables"
	"context"
	"fmt"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type CatalogService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewCatalogService(logger *gecho.Logger, db *database.DB) *CatalogService {
	return &CatalogService{
		logger: logger,
		db:     db,
	}
}

// ListOnSale returns the storefront listing: products currently on sale,
// newest first, with their authors, paginated.
func (cs *CatalogService) ListOnSale(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.Product], error) {
	q := database.Query[tables.Product](cs.db).
		Where("is_sale", true).
		Relation("Author").
		OrderBy("id", database.DESC)

	result, err := database.Paginate(q, ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list products on sale: %w", err)
	}
	return result, nil
}

// ListByCategorySlug returns the on-sale products attached to a category.
// An unknown category and a category with no sellable products are
// indistinguishable to callers: both surface lib.ErrNotFound.
func (cs *CatalogService) ListByCategorySlug(ctx context.Context, slug string) ([]tables.Product, error) {
	products, err := database.Query[tables.Product](cs.db).
		Where("is_sale", true).
		WhereRaw("p.id IN (SELECT pc.product_id FROM product_categories pc JOIN categories c ON c.id = pc.category_id WHERE c.slug = ?)", slug).
		Relation("Author").
		OrderBy("id", database.DESC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}

	if len(products) == 0 {
		return nil, lib.ErrNotFound
	}

	return products, nil
}

// GetBySlug loads one product with its author and categories.
func (cs *CatalogService) GetBySlug(ctx context.Context, slug string) (*tables.Product, error) {
	product, err := database.Query[tables.Product](cs.db).
		Where("slug", slug).
		Relation("Author").
		Relation("Categories").
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	return product, nil
}

// CreateProduct inserts a product together with its category links in one
// transaction. A missing slug is derived from the title; a duplicate slug
// surfaces as lib.ErrConflict.
func (cs *CatalogService) CreateProduct(ctx context.Context, req *structs.ProductCreateRequest) (*tables.Product, error) {
	slug := req.Slug
	if slug == "" {
		slug = lib.Slugify(req.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: no slug can be derived from this title", lib.ErrInvalidArgument)
	}

	isSale := true
	if req.IsSale != nil {
		isSale = *req.IsSale
	}

	author, err := database.FindByID[tables.Author](cs.db, ctx, req.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up author: %w", err)
	}
	if author == nil {
		return nil, fmt.Errorf("%w: author %d", lib.ErrNotFound, req.AuthorID)
	}

	count, err := database.Query[tables.Category](cs.db).
		WhereIn("id", req.CategoryIDs).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up categories: %w", err)
	}
	if count != len(req.CategoryIDs) {
		return nil, fmt.Errorf("%w: one or more categories do not exist", lib.ErrNotFound)
	}

	product := &tables.Product{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PriceCents:  req.PriceCents,
		AuthorID:    req.AuthorID,
		IsSale:      isSale,
	}

	err = database.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(product).Returning("*").Exec(ctx); err != nil {
			return err
		}

		links := make([]tables.ProductCategory, 0, len(req.CategoryIDs))
		for _, categoryID := range req.CategoryIDs {
			links = append(links, tables.ProductCategory{
				ProductID:  product.ID,
				CategoryID: categoryID,
			})
		}
		_, err := tx.NewInsert().Model(&links).Exec(ctx)
		return err
	})
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if lib.IsUniqueViolation(mappedErr) {
			cs.logger.Warn("Product creation failed - duplicate slug", gecho.Field("slug", slug))
		} else {
			cs.logger.Error("Failed to create product", gecho.Field("error", mappedErr), gecho.Field("slug", slug))
		}
		return nil, mappedErr
	}

	cs.logger.Info("Product created",
		gecho.Field("product_id", product.ID),
		gecho.Field("slug", product.Slug),
	)

	product.Author = author
	return product, nil
}

// ListCategories returns all categories ordered by title, for the add-book
// form and the storefront navigation.
func (cs *CatalogService) ListCategories(ctx context.Context) ([]tables.Category, error) {
	categories, err := database.Query[tables.Category](cs.db).
		OrderBy("title", database.ASC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListAuthors returns all authors ordered by name.
func (cs *CatalogService) ListAuthors(ctx context.Context) ([]tables.Author, error) {
	authors, err := database.Query[tables.Author](cs.db).
		OrderBy("name", database.ASC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}
