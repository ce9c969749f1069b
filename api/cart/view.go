package cart

import (
	"abbooks_server/api/middleware"
	"abbooks_server/handling"
	"abbooks_server/lib"
	"abbooks_server/services"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleView returns the caller's cart lines and computed total, and
// refreshes the cart_count cookie.
func (crm *CartRoutesManager) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.GetIdentityFromContext(ctx)
	if !ok {
		crm.logger.Error("Cart identity missing from context")
		gecho.InternalServerError(w, gecho.Send())
		return
	}

	cart, err := crm.cartService.ResolveCart(ctx, identity)
	if err != nil {
		crm.logger.Error("Failed to resolve cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load cart"), gecho.Send())
		return
	}

	lines, err := crm.cartService.Lines(ctx, cart.ID)
	if err != nil {
		handling.HandleError(err, "Failed to load cart lines", crm.logger, w)
		return
	}

	lib.SetCartCountCookie(len(lines), w)

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"cart":        cart,
			"items":       lines,
			"total_cents": services.CartTotal(lines),
		}),
		gecho.Send(),
	)
}
