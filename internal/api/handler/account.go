package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/zonehunt/internal/api/request"
	"github.com/mcoot/zonehunt/internal/api/response"
	"github.com/mcoot/zonehunt/internal/services/auth"
)

// AccountHandler handles credential registration and checks
type AccountHandler struct {
	authService *auth.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(authService *auth.Service) *AccountHandler {
	return &AccountHandler{authService: authService}
}

// Register handles POST /api/v1/accounts
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}

	rp, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AccountFromModel(rp))
}

// Verify handles POST /api/v1/accounts/verify
func (h *AccountHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}

	if err := h.authService.Verify(r.Context(), req.Username, req.Password); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Verify{Valid: true})
}
