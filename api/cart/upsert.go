package cart

import (
	"abbooks_server/api/middleware"
	"abbooks_server/lib"
	"abbooks_server/services"
	"abbooks_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleUpsert sets a product line in the caller's cart. Adding a product
// already in the cart overwrites its quantity.
func (crm *CartRoutesManager) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.GetIdentityFromContext(ctx)
	if !ok {
		crm.logger.Error("Cart identity missing from context")
		gecho.InternalServerError(w, gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CartUpsertRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	quantity, err := services.ParseQuantity(body.Quantity)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	cart, err := crm.cartService.ResolveCart(ctx, identity)
	if err != nil {
		crm.logger.Error("Failed to resolve cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load cart"), gecho.Send())
		return
	}

	line, err := crm.cartService.UpsertLine(ctx, cart.ID, body.ProductID, quantity)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.BadRequest(w, gecho.WithMessage("Product is not available"), gecho.Send())
			return
		}

		crm.logger.Error("Failed to upsert cart line", gecho.Field("error", err), gecho.Field("cart_id", cart.ID))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update cart"), gecho.Send())
		return
	}

	count, err := crm.cartService.CountLines(ctx, cart.ID)
	if err != nil {
		crm.logger.Warn("Failed to count cart lines", gecho.Field("error", err), gecho.Field("cart_id", cart.ID))
	} else {
		lib.SetCartCountCookie(count, w)
	}

	gecho.Success(w,
		gecho.WithMessage("Cart updated"),
		gecho.WithData(line),
		gecho.Send(),
	)
}
