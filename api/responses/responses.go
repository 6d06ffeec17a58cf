package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/types"
)

// WriteJSON encodes payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}

// WriteMessage writes a {message} body.
func WriteMessage(w http.ResponseWriter, status int, body types.MessageBody) {
	WriteJSON(w, status, body)
}

// WriteText writes a bare string body, the format the login and cart read
// routes have always used.
func WriteText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// WriteError maps err onto a {message, code} JSON body.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed, status, msg := resolve(ctx, logg, err)
	payload := types.ErrorBody{
		Message: msg,
		Code:    string(typed.Code()),
	}
	if pkgerrors.MetadataFor(typed.Code()).DetailsAllowed {
		payload.Details = typed.Details()
	}
	WriteJSON(w, status, payload)
}

// WriteTextError maps err onto a plain-text body.
func WriteTextError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	_, status, msg := resolve(ctx, logg, err)
	WriteText(w, status, msg)
}

func resolve(ctx context.Context, logg *logger.Logger, err error) (*pkgerrors.Error, int, string) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	if pkgerrors.PublicMessageAllowed(typed.Code()) {
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)
		ctx = logg.WithFields(ctx, map[string]any{
			"error":       dump.TopMessage,
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
			"status":      meta.HTTPStatus,
			"sql_state":   dump.SQLState,
			"sql_number":  dump.SQLNumber,
			"sql_message": dump.SQLMessage,
			"sql_table":   dump.SQLTable,
			"sql_detail":  dump.SQLDetail,
		})
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.rejected")
		}
	}

	return typed, meta.HTTPStatus, msg
}
