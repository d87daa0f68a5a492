package http

import (
	"log/slog"
	"net/http"

	"github.com/katakonsumen/review-service/internal/domain"
	"github.com/katakonsumen/review-service/internal/service"
	"github.com/katakonsumen/review-service/pkg/httputil"
)

// WishlistHandler serves the /api/wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler returns a WishlistHandler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{service: svc, logger: logger}
}

type createWishlistResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	WishlistID string `json:"wishlist_id"`
}

// Create handles POST /api/wishlist.
func (h *WishlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload domain.WishlistPayload
	if !decodeJSON(w, r, h.logger, &payload) {
		return
	}

	id, err := h.service.Create(r.Context(), &payload)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, createWishlistResponse{
		Status:     statusSuccess,
		Message:    "wishlist entry created",
		WishlistID: id,
	})
}

type searchWishlistResponse struct {
	Status       string                 `json:"status"`
	TotalData    int64                  `json:"total_data"`
	ReturnedData int                    `json:"returned_data"`
	Wishlist     []domain.WishlistEntry `json:"wishlist"`
}

// Search handles POST /api/wishlist/search.
func (h *WishlistHandler) Search(w http.ResponseWriter, r *http.Request) {
	var payload domain.WishlistSearchPayload
	if !decodeJSON(w, r, h.logger, &payload) {
		return
	}

	filter, err := payload.ToFilter()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	entries, total, err := h.service.Search(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, searchWishlistResponse{
		Status:       statusSuccess,
		TotalData:    total,
		ReturnedData: len(entries),
		Wishlist:     entries,
	})
}

type deleteWishlistRequest struct {
	Username      string `json:"username"`
	WishlistTitle string `json:"wishlist_title"`
}

type deletedEntriesResponse struct {
	Status         string `json:"status"`
	DeletedEntries int64  `json:"deleted_entries"`
}

// DeleteByUsernameAndTitle handles POST /api/wishlist/delete-by-username-and-title.
func (h *WishlistHandler) DeleteByUsernameAndTitle(w http.ResponseWriter, r *http.Request) {
	var req deleteWishlistRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	deleted, err := h.service.DeleteByUsernameAndTitle(r.Context(), req.Username, req.WishlistTitle)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, deletedEntriesResponse{
		Status:         statusSuccess,
		DeletedEntries: deleted,
	})
}

// DeleteAllByUsername handles POST /api/wishlist/delete-all-by-username.
func (h *WishlistHandler) DeleteAllByUsername(w http.ResponseWriter, r *http.Request) {
	var req usernameRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	deleted, err := h.service.DeleteAllByUsername(r.Context(), req.Username)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, deletedEntriesResponse{
		Status:         statusSuccess,
		DeletedEntries: deleted,
	})
}
