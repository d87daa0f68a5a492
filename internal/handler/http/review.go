// Package http exposes the review and wishlist operations over HTTP/JSON.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/katakonsumen/review-service/internal/domain"
	"github.com/katakonsumen/review-service/internal/image"
	"github.com/katakonsumen/review-service/internal/service"
	apperrors "github.com/katakonsumen/review-service/pkg/errors"
	"github.com/katakonsumen/review-service/pkg/httputil"
	"github.com/katakonsumen/review-service/pkg/validator"
)

const maxBodyBytes = 1 << 20

const statusSuccess = "success"

// decodeJSON decodes the request body into v with a size cap. Returns false
// after writing a 400 response when the body cannot be decoded.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), logger)
		return false
	}
	return true
}

// writeServiceError maps a service error onto the wire: field-level
// validation errors get the validation envelope, everything else goes
// through the standard taxonomy mapping.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		httputil.WriteValidationError(w, err)
		return
	}
	httputil.WriteError(w, r, err, logger)
}

// ReviewHandler serves the /api/reviews endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler returns a ReviewHandler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: svc, logger: logger}
}

type createReviewResponse struct {
	Status        string          `json:"status"`
	Message       string          `json:"message"`
	ReviewID      string          `json:"review_id"`
	SkippedImages []image.Skipped `json:"skipped_images,omitempty"`
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload domain.ReviewPayload
	if !decodeJSON(w, r, h.logger, &payload) {
		return
	}

	result, err := h.service.Create(r.Context(), &payload)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, createReviewResponse{
		Status:        statusSuccess,
		Message:       "review created",
		ReviewID:      result.ReviewID,
		SkippedImages: result.SkippedImages,
	})
}

type searchReviewsResponse struct {
	Status       string          `json:"status"`
	TotalData    int64           `json:"total_data"`
	ReturnedData int             `json:"returned_data"`
	Reviews      []domain.Review `json:"reviews"`
}

// Search handles POST /api/reviews/search.
func (h *ReviewHandler) Search(w http.ResponseWriter, r *http.Request) {
	var payload domain.ReviewSearchPayload
	if !decodeJSON(w, r, h.logger, &payload) {
		return
	}

	filter, err := payload.ToFilter()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	reviews, total, err := h.service.Search(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, searchReviewsResponse{
		Status:       statusSuccess,
		TotalData:    total,
		ReturnedData: len(reviews),
		Reviews:      reviews,
	})
}

type reviewIDRequest struct {
	ReviewID string `json:"review_id"`
}

type reviewDetailResponse struct {
	Status string         `json:"status"`
	Review *domain.Review `json:"review"`
}

// Detail handles POST /api/reviews/detail.
func (h *ReviewHandler) Detail(w http.ResponseWriter, r *http.Request) {
	var req reviewIDRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	review, err := h.service.GetByID(r.Context(), req.ReviewID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviewDetailResponse{
		Status: statusSuccess,
		Review: review,
	})
}

type usernameRequest struct {
	Username string `json:"username"`
}

type reviewsByUsernameResponse struct {
	Status       string          `json:"status"`
	TotalReviews int             `json:"total_reviews"`
	Reviews      []domain.Review `json:"reviews"`
}

// GetByUsername handles POST /api/reviews/get-by-username.
func (h *ReviewHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	var req usernameRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	reviews, err := h.service.GetByUsername(r.Context(), req.Username)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviewsByUsernameResponse{
		Status:       statusSuccess,
		TotalReviews: len(reviews),
		Reviews:      reviews,
	})
}

type statusMessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DeleteByID handles POST /api/reviews/delete-by-id.
func (h *ReviewHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	var req reviewIDRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	if err := h.service.DeleteByID(r.Context(), req.ReviewID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, statusMessageResponse{
		Status:  statusSuccess,
		Message: "review deleted",
	})
}

type deletedReviewsResponse struct {
	Status         string `json:"status"`
	DeletedReviews int64  `json:"deleted_reviews"`
}

// DeleteAllByUsername handles POST /api/reviews/delete-all-by-username.
func (h *ReviewHandler) DeleteAllByUsername(w http.ResponseWriter, r *http.Request) {
	var req usernameRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	deleted, err := h.service.DeleteAllByUsername(r.Context(), req.Username)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, deletedReviewsResponse{
		Status:         statusSuccess,
		DeletedReviews: deleted,
	})
}

type sourceRequest struct {
	Source string `json:"source"`
}

// DeleteAllBySource handles POST /api/reviews/delete-all-by-source.
func (h *ReviewHandler) DeleteAllBySource(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	deleted, err := h.service.DeleteAllBySource(r.Context(), req.Source)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, deletedReviewsResponse{
		Status:         statusSuccess,
		DeletedReviews: deleted,
	})
}
