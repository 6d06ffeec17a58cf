package controllers

import (
	"net/http"

	"github.com/angelmondragon/scancart-backend/api/responses"
	"github.com/angelmondragon/scancart-backend/api/validators"
	"github.com/angelmondragon/scancart-backend/internal/auth"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/types"
)

const registerSuccessMessage = "Registration successful!"

// AuthRegister creates a shopper account.
func AuthRegister(reg auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := reg.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil && user != nil {
			logg.Info(logg.WithUserID(r.Context(), user.UserID), "user.registered")
		}
		responses.WriteMessage(w, http.StatusCreated, types.MessageBody{Message: registerSuccessMessage})
	}
}
