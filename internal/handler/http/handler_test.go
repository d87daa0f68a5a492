package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katakonsumen/review-service/internal/event"
	"github.com/katakonsumen/review-service/internal/image"
	repomemory "github.com/katakonsumen/review-service/internal/repository/memory"
	"github.com/katakonsumen/review-service/internal/service"
	storagememory "github.com/katakonsumen/review-service/internal/storage/memory"
	"github.com/katakonsumen/review-service/pkg/health"
)

type testEnv struct {
	router  http.Handler
	reviews *repomemory.ReviewRepository
	store   *storagememory.Storage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	reviews := repomemory.NewReviewRepository()
	wishlist := repomemory.NewWishlistRepository()
	store := storagememory.New()
	relocator := image.NewRelocator(store, logger)
	events := event.NewPublisher(nil, logger)

	reviewSvc := service.NewReviewService(reviews, relocator, events, logger)
	wishlistSvc := service.NewWishlistService(wishlist, events, logger)

	router := NewRouter(
		RouterConfig{ServiceName: "review-service-test"},
		NewReviewHandler(reviewSvc, logger),
		NewWishlistHandler(wishlistSvc, logger),
		health.NewHandler(),
		logger,
	)
	return &testEnv{router: router, reviews: reviews, store: store}
}

func (e *testEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func reviewBody(overrides map[string]any) map[string]any {
	body := map[string]any{
		"username":       "budi",
		"created_by":     "budi",
		"source":         "pusaka_chat",
		"review_title":   "Great phone",
		"category":       "product",
		"price":          2500000,
		"purchase_type":  "online",
		"review_content": "Battery lasts two days.",
		"rating":         4,
	}
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

func imageServer(t *testing.T, contentType string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		if r.Method == http.MethodHead {
			return
		}
		fmt.Fprint(w, "bytes")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCreateReview(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/reviews", reviewBody(map[string]any{"tags": "a, b ,c"}))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["review_id"])

	rec = env.post(t, "/api/reviews/detail", map[string]any{"review_id": body["review_id"]})
	require.Equal(t, http.StatusOK, rec.Code)

	review := decodeBody(t, rec)["review"].(map[string]any)
	assert.Equal(t, []any{"a", "b", "c"}, review["tags"])
}

func TestCreateReview_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/reviews", reviewBody(map[string]any{"rating": 6}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	assert.Contains(t, errBody["fields"], "rating")
}

func TestCreateReview_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReview_MixedImageURLs(t *testing.T) {
	env := newTestEnv(t)
	good := imageServer(t, "image/jpeg")
	bad := imageServer(t, "text/html")

	rec := env.post(t, "/api/reviews", reviewBody(map[string]any{
		"image_urls": []string{good.URL + "/a.jpg", bad.URL + "/page"},
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	skipped := body["skipped_images"].([]any)
	assert.Len(t, skipped, 1)

	rec = env.post(t, "/api/reviews/detail", map[string]any{"review_id": body["review_id"]})
	review := decodeBody(t, rec)["review"].(map[string]any)
	assert.Len(t, review["image_urls"], 1)
	assert.Equal(t, 1, env.store.Len())
}

func TestSearchReviews_LimitAndTotal(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 5; i++ {
		rec := env.post(t, "/api/reviews", reviewBody(nil))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.post(t, "/api/reviews/search", map[string]any{"username": "budi", "limit": 2})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(5), body["total_data"])
	assert.Equal(t, float64(2), body["returned_data"])
	assert.Len(t, body["reviews"], 2)
}

func TestSearchReviews_BySpecifications(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/api/reviews", reviewBody(map[string]any{"specifications": "RAM: 8GB"}))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.post(t, "/api/reviews", reviewBody(map[string]any{"specifications": "cotton"}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.post(t, "/api/reviews/search", map[string]any{"specifications": "ram"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total_data"])
}

func TestSearchReviews_SingleSidedDateBound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/reviews/search", map[string]any{"purchase_date_start": "2024-01-01"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewDetail_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/reviews/detail", map[string]any{"review_id": "652d81aaf2a9c3b1d4e5f607"})

	require.Equal(t, http.StatusNotFound, rec.Code)
	errBody := decodeBody(t, rec)["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
}

func TestGetReviewsByUsername(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/api/reviews", reviewBody(nil))
	env.post(t, "/api/reviews", reviewBody(map[string]any{"username": "anita"}))

	rec := env.post(t, "/api/reviews/get-by-username", map[string]any{"username": "budi"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total_reviews"])
}

func TestDeleteReviewByID_RemovesStoredImages(t *testing.T) {
	env := newTestEnv(t)
	srv := imageServer(t, "image/jpeg")

	rec := env.post(t, "/api/reviews", reviewBody(map[string]any{
		"image_urls": []string{srv.URL + "/a.jpg"},
	}))
	require.Equal(t, http.StatusCreated, rec.Code)
	reviewID := decodeBody(t, rec)["review_id"].(string)
	require.Equal(t, 1, env.store.Len())

	rec = env.post(t, "/api/reviews/delete-by-id", map[string]any{"review_id": reviewID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, env.store.Len())

	rec = env.post(t, "/api/reviews/detail", map[string]any{"review_id": reviewID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAllReviewsByUsername(t *testing.T) {
	env := newTestEnv(t)
	env.post(t, "/api/reviews", reviewBody(nil))
	env.post(t, "/api/reviews", reviewBody(nil))

	rec := env.post(t, "/api/reviews/delete-all-by-username", map[string]any{"username": "budi"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeBody(t, rec)["deleted_reviews"])
}

func TestDeleteAllReviewsBySource_InvalidEnum(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/reviews/delete-all-by-source", map[string]any{"source": "fax"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWishlistLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/wishlist", map[string]any{
		"username":       "anita",
		"wishlist_title": "Mechanical Keyboard",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["wishlist_id"])

	rec = env.post(t, "/api/wishlist/search", map[string]any{
		"username":       "anita",
		"wishlist_title": "keyboard",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total_data"])

	rec = env.post(t, "/api/wishlist/delete-by-username-and-title", map[string]any{
		"username":       "anita",
		"wishlist_title": "mechanical keyboard",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["deleted_entries"])
}

func TestWishlistSearch_RequiresUsername(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/wishlist/search", map[string]any{"wishlist_title": "keyboard"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthLive(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsExposed(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
