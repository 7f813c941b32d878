package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/stallmarket/pkg/errhttp"
	"github.com/ghuser/stallmarket/pkg/httpx"
	appsvcs "github.com/ghuser/stallmarket/services/item/application/services"
)

// MarkItemSoldHandler handles PATCH /items/{itemID}/status requests.
type MarkItemSoldHandler struct {
	svc *appsvcs.Services
}

// NewMarkItemSoldHandler returns a MarkItemSoldHandler backed by the given services.
func NewMarkItemSoldHandler(svc *appsvcs.Services) *MarkItemSoldHandler {
	return &MarkItemSoldHandler{svc: svc}
}

// Execute marks a listing sold out. Re-marking a sold-out listing succeeds.
//
//	@Summary		Mark listing sold
//	@Description	Transitions a listing from ON_SALE to SOLD_OUT
//	@Tags			items
//	@Produce		json
//	@Param			itemID	path		string	true	"Item ID"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/items/{itemID}/status [patch]
func (h *MarkItemSoldHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
		return
	}

	item, err := h.svc.Item.MarkSold(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
