package cart

import (
	"net/http"

	"github.com/angelmondragon/scancart-backend/api/middleware"
	"github.com/angelmondragon/scancart-backend/api/responses"
	"github.com/angelmondragon/scancart-backend/api/validators"
	cartsvc "github.com/angelmondragon/scancart-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/types"
)

const (
	itemAddedMessage   = "Cart item added successfully"
	cartUpdatedMessage = "Cart updated successfully."
	itemDeletedMessage = "Cart item deleted successfully."
)

// CartFetch returns the user's cart lines. Failures are plain text.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteTextError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID := validators.PathOrQueryParam(r, "Userid")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithUserID(ctx, userID)
		}

		lines, err := svc.GetCart(ctx, userID)
		if err != nil {
			responses.WriteTextError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, lines)
	}
}

// CartItemAdd inserts a new cart line.
func CartItemAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartsvc.AddItemInput
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := middleware.AuthorizeUser(r.Context(), payload.UserID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := svc.AddItem(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusCreated, types.MessageBody{
			Message:    itemAddedMessage,
			CartItemID: &itemID,
		})
	}
}

// CartUpdate sets the quantity of a cart line, creating the cart and the
// line when missing.
func CartUpdate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartsvc.UpdateQuantityInput
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := middleware.AuthorizeUser(r.Context(), payload.UserID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateQuantity(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, types.MessageBody{Message: cartUpdatedMessage})
	}
}

// CartItemDelete removes one line from the user's cart.
func CartItemDelete(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID := validators.PathParam(r, "Userid")
		productID := validators.PathParam(r, "Product_id")
		if err := svc.RemoveItem(r.Context(), userID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, types.MessageBody{Message: itemDeletedMessage})
	}
}
