package catalog

import (
	"abbooks_server/handling"
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
)

// HandleList serves the storefront listing: on-sale products, newest first.
func (crm *CatalogRoutesManager) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := 1
	pageSize := 20

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if val, err := strconv.Atoi(pageStr); err == nil && val > 0 {
			page = val
		}
	}

	if pageSizeStr := r.URL.Query().Get("page_size"); pageSizeStr != "" {
		if val, err := strconv.Atoi(pageSizeStr); err == nil && val > 0 {
			pageSize = val
		}
	}

	result, err := crm.catalogService.ListOnSale(ctx, page, pageSize)
	if err != nil {
		handling.HandleError(err, "Failed to fetch products", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Data,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}
