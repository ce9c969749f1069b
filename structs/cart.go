package structs

import "github.com/google/uuid"

// CartIdentity is the resolved owner of a cart: an authenticated user or an
// anonymous session key, never both.
type CartIdentity struct {
	UserID     *uuid.UUID
	SessionKey string
}

func (ci CartIdentity) Authenticated() bool {
	return ci.UserID != nil
}

// CartUpsertRequest mirrors the legacy form fields: the quantity arrives as
// opaque text and is parsed and validated at the boundary.
type CartUpsertRequest struct {
	ProductID int64  `json:"p_id" validate:"required,gt=0"`
	Quantity  string `json:"qty" validate:"required"`
}
