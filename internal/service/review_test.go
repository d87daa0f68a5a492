package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/katakonsumen/review-service/internal/domain"
	"github.com/katakonsumen/review-service/internal/event"
	"github.com/katakonsumen/review-service/internal/image"
	apperrors "github.com/katakonsumen/review-service/pkg/errors"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) (string, error) {
	args := m.Called(ctx, review)
	return args.String(0), args.Error(1)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepo) FindByUsername(ctx context.Context, username string) ([]domain.Review, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) FindBySource(ctx context.Context, source string) ([]domain.Review, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepo) Search(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *mockReviewRepo) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReviewRepo) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewRepo) DeleteBySource(ctx context.Context, source string) (int64, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(int64), args.Error(1)
}

type mockPipeline struct {
	mock.Mock
}

func (m *mockPipeline) Relocate(ctx context.Context, username string, urls []string) ([]string, []image.Skipped) {
	args := m.Called(ctx, username, urls)
	var skipped []image.Skipped
	if args.Get(1) != nil {
		skipped = args.Get(1).([]image.Skipped)
	}
	return args.Get(0).([]string), skipped
}

func (m *mockPipeline) Remove(ctx context.Context, urls []string) {
	m.Called(ctx, urls)
}

func newReviewService(repo *mockReviewRepo, pipeline *mockPipeline) *ReviewService {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewReviewService(repo, pipeline, event.NewPublisher(nil, logger), logger)
}

func validPayload() *domain.ReviewPayload {
	price := domain.FlexInt(2500000)
	rating := domain.FlexInt(4)
	return &domain.ReviewPayload{
		Username:      "budi",
		CreatedBy:     "budi",
		Source:        domain.SourcePusakaChat,
		ReviewTitle:   "Great phone",
		Category:      domain.CategoryProduct,
		Price:         &price,
		PurchaseType:  domain.PurchaseOnline,
		ReviewContent: "Battery lasts two days.",
		Rating:        &rating,
		ImageURLs:     domain.StringList{"https://img.example/a.jpg"},
	}
}

func TestReviewService_Create(t *testing.T) {
	repo := new(mockReviewRepo)
	pipeline := new(mockPipeline)
	svc := newReviewService(repo, pipeline)

	pipeline.On("Relocate", mock.Anything, "budi", []string{"https://img.example/a.jpg"}).
		Return([]string{"memory://images/budi/x.jpg"}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return len(r.ImageURLs) == 1 &&
			r.ImageURLs[0] == "memory://images/budi/x.jpg" &&
			!r.CreatedAt.IsZero()
	})).Return("652d81aaf2a9c3b1d4e5f607", nil)

	result, err := svc.Create(context.Background(), validPayload())
	require.NoError(t, err)
	assert.Equal(t, "652d81aaf2a9c3b1d4e5f607", result.ReviewID)
	assert.Empty(t, result.SkippedImages)

	repo.AssertExpectations(t)
	pipeline.AssertExpectations(t)
}

func TestReviewService_Create_ValidationAbortsBeforeSideEffects(t *testing.T) {
	repo := new(mockReviewRepo)
	pipeline := new(mockPipeline)
	svc := newReviewService(repo, pipeline)

	payload := validPayload()
	rating := domain.FlexInt(6)
	payload.Rating = &rating

	_, err := svc.Create(context.Background(), payload)
	require.Error(t, err)

	pipeline.AssertNotCalled(t, "Relocate", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Create_ReportsSkippedImages(t *testing.T) {
	repo := new(mockReviewRepo)
	pipeline := new(mockPipeline)
	svc := newReviewService(repo, pipeline)

	skipped := []image.Skipped{{URL: "https://img.example/a.jpg", Reason: "not an image"}}
	pipeline.On("Relocate", mock.Anything, "budi", mock.Anything).Return([]string{}, skipped)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return len(r.ImageURLs) == 0
	})).Return("652d81aaf2a9c3b1d4e5f607", nil)

	result, err := svc.Create(context.Background(), validPayload())
	require.NoError(t, err)
	assert.Equal(t, skipped, result.SkippedImages)
}

func TestReviewService_Search_LimitDefaultsAndCap(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "zero gets default", limit: 0, wantLimit: domain.DefaultReviewLimit},
		{name: "negative gets default", limit: -3, wantLimit: domain.DefaultReviewLimit},
		{name: "explicit kept", limit: 7, wantLimit: 7},
		{name: "capped", limit: 5000, wantLimit: domain.MaxSearchLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockReviewRepo)
			svc := newReviewService(repo, new(mockPipeline))

			repo.On("Search", mock.Anything, mock.MatchedBy(func(f domain.ReviewFilter) bool {
				return f.Limit == tt.wantLimit
			})).Return([]domain.Review{}, int64(0), nil)

			_, _, err := svc.Search(context.Background(), domain.ReviewFilter{Limit: tt.limit})
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestReviewService_GetByID_RequiresID(t *testing.T) {
	svc := newReviewService(new(mockReviewRepo), new(mockPipeline))

	_, err := svc.GetByID(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestReviewService_DeleteByID_RemovesImagesFirst(t *testing.T) {
	repo := new(mockReviewRepo)
	pipeline := new(mockPipeline)
	svc := newReviewService(repo, pipeline)

	urls := []string{"memory://images/budi/x.jpg", "memory://images/budi/y.jpg"}
	review := &domain.Review{Username: "budi", ImageURLs: urls}

	repo.On("GetByID", mock.Anything, "652d81aaf2a9c3b1d4e5f607").Return(review, nil)
	pipeline.On("Remove", mock.Anything, urls).Return()
	repo.On("DeleteByID", mock.Anything, "652d81aaf2a9c3b1d4e5f607").Return(nil)

	require.NoError(t, svc.DeleteByID(context.Background(), "652d81aaf2a9c3b1d4e5f607"))
	repo.AssertExpectations(t)
	pipeline.AssertExpectations(t)
}

func TestReviewService_DeleteByID_NotFound(t *testing.T) {
	repo := new(mockReviewRepo)
	pipeline := new(mockPipeline)
	svc := newReviewService(repo, pipeline)

	repo.On("GetByID", mock.Anything, "652d81aaf2a9c3b1d4e5f607").
		Return(nil, apperrors.NotFound("review", "652d81aaf2a9c3b1d4e5f607"))

	err := svc.DeleteByID(context.Background(), "652d81aaf2a9c3b1d4e5f607")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	pipeline.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestReviewService_DeleteAllByUsername(t *testing.T) {
	repo := new(mockReviewRepo)
	pipeline := new(mockPipeline)
	svc := newReviewService(repo, pipeline)

	reviews := []domain.Review{
		{Username: "budi", ImageURLs: []string{"memory://images/budi/x.jpg"}},
		{Username: "budi", ImageURLs: []string{"memory://images/budi/y.jpg"}},
	}
	repo.On("FindByUsername", mock.Anything, "budi").Return(reviews, nil)
	pipeline.On("Remove", mock.Anything, mock.Anything).Return().Times(2)
	repo.On("DeleteByUsername", mock.Anything, "budi").Return(int64(2), nil)

	deleted, err := svc.DeleteAllByUsername(context.Background(), "budi")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	pipeline.AssertExpectations(t)
}

func TestReviewService_DeleteAllBySource_RejectsUnknownSource(t *testing.T) {
	repo := new(mockReviewRepo)
	svc := newReviewService(repo, new(mockPipeline))

	_, err := svc.DeleteAllBySource(context.Background(), "carrier_pigeon")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "DeleteBySource", mock.Anything, mock.Anything)
}

func TestReviewService_DeleteAllBySource(t *testing.T) {
	repo := new(mockReviewRepo)
	pipeline := new(mockPipeline)
	svc := newReviewService(repo, pipeline)

	repo.On("FindBySource", mock.Anything, domain.SourcePusakaChat).Return([]domain.Review{}, nil)
	repo.On("DeleteBySource", mock.Anything, domain.SourcePusakaChat).Return(int64(3), nil)

	deleted, err := svc.DeleteAllBySource(context.Background(), domain.SourcePusakaChat)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
