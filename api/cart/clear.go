package cart

import (
	"abbooks_server/api/middleware"
	"abbooks_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleClear removes every line from the caller's own cart. No other cart
// is in scope.
func (crm *CartRoutesManager) HandleClear(w http.ResponseWriter, r *http.Request) {
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

	if err := crm.cartService.Clear(ctx, cart.ID); err != nil {
		crm.logger.Error("Failed to clear cart", gecho.Field("error", err), gecho.Field("cart_id", cart.ID))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to clear cart"), gecho.Send())
		return
	}

	lib.SetCartCountCookie(0, w)

	gecho.Success(w,
		gecho.WithMessage("Cart cleared"),
		gecho.Send(),
	)
}
