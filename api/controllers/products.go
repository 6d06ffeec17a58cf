package controllers

import (
	"net/http"

	"github.com/angelmondragon/scancart-backend/api/responses"
	"github.com/angelmondragon/scancart-backend/api/validators"
	productsvc "github.com/angelmondragon/scancart-backend/internal/products"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/types"
)

const productCreatedMessage = "Product added successfully"

// ProductGet returns a single catalog row. The not-found body is plain text.
func ProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteTextError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID := validators.PathParam(r, "Product_id")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID)
		}

		product, err := svc.Get(ctx, productID)
		if err != nil {
			responses.WriteTextError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, product)
	}
}

// ProductCreate adds a catalog row. The route sits behind the API key gate.
func ProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productsvc.CreateProductInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusCreated, types.MessageBody{
			Message:   productCreatedMessage,
			ProductID: product.ProductID,
		})
	}
}
