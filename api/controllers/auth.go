package controllers

import (
	"net/http"

	"github.com/angelmondragon/scancart-backend/api/responses"
	"github.com/angelmondragon/scancart-backend/api/validators"
	"github.com/angelmondragon/scancart-backend/internal/auth"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
)

const (
	// TokenHeader carries the access token minted on login.
	TokenHeader = "X-Scancart-Token"

	loginSuccessMessage = "Login successful!"
)

// AuthLogin wires the login endpoint into the HTTP layer. Both success and
// failure bodies are plain text.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteTextError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSON(r, &body); err != nil {
			responses.WriteTextError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, auth.MissingCredentialsMessage))
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteTextError(r.Context(), logg, w, err)
			return
		}

		if result.AccessToken != "" {
			w.Header().Set(TokenHeader, result.AccessToken)
		}
		responses.WriteText(w, http.StatusOK, loginSuccessMessage)
	}
}
