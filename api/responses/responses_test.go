package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/types"
)

func TestWriteMessage(t *testing.T) {
	w := httptest.NewRecorder()
	id := int64(7)
	WriteMessage(w, http.StatusCreated, types.MessageBody{Message: "Cart item added successfully", CartItemID: &id})

	if got := w.Code; got != http.StatusCreated {
		t.Fatalf("expected status 201 but got %d", got)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["message"] != "Cart item added successfully" || body["cartItemId"] != float64(7) {
		t.Fatalf("unexpected payload %v", body)
	}
	if _, ok := body["productId"]; ok {
		t.Fatalf("productId should be omitted, got %v", body)
	}
}

func TestWriteText(t *testing.T) {
	w := httptest.NewRecorder()
	WriteText(w, http.StatusOK, "Login successful!")

	if w.Body.String() != "Login successful!" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), logger.Nop(), w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Message != "bad input" || body.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Code != string(pkgerrors.CodeInternal) || body.Message == "boom" {
		t.Fatalf("internal error leaked or miscoded: %+v", body)
	}
	if body.Details != nil {
		t.Fatalf("details should be omitted for internal errors")
	}
}

func TestWriteTextErrorUsesPublicMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteTextError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "Cart is empty for this user."))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	if w.Body.String() != "Cart is empty for this user." {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}
