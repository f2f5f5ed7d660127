package category

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/audit"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListCategories(ctx context.Context, query url.Values) ([]*Category, error) {
	args := m.Called(query)
	categories, _ := args.Get(0).([]*Category)
	return categories, args.Error(1)
}

func (m *mockRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	args := m.Called(id)
	category, _ := args.Get(0).(*Category)
	return category, args.Error(1)
}

func (m *mockRepository) CreateCategory(ctx context.Context, category *Category) (*Category, error) {
	args := m.Called(category)
	created, _ := args.Get(0).(*Category)
	return created, args.Error(1)
}

func (m *mockRepository) UpdateCategory(ctx context.Context, id string, category *Category) (*Category, error) {
	args := m.Called(id, category)
	updated, _ := args.Get(0).(*Category)
	return updated, args.Error(1)
}

func (m *mockRepository) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, audit.Nop{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateCategory_DerivesSlugAndDefaults(t *testing.T) {
	repo := new(mockRepository)
	repo.On("CreateCategory", mock.MatchedBy(func(c *Category) bool {
		return c.Slug == "bedtime-stories" && c.Color == DefaultColor && c.ContentType == ContentBook
	})).Return(&Category{ID: "c1", Name: "Bedtime Stories", Slug: "bedtime-stories"}, nil).Once()

	created, err := newTestService(repo).CreateCategory(context.Background(), &Category{Name: "  Bedtime Stories "})

	require.NoError(t, err)
	assert.Equal(t, "c1", created.ID)
	repo.AssertExpectations(t)
}

func TestCreateCategory_RejectsBadColorAndType(t *testing.T) {
	repo := new(mockRepository)

	_, err := newTestService(repo).CreateCategory(context.Background(), &Category{
		Name:        "Music",
		Color:       "blue",
		ContentType: "video",
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	fields := make([]string, 0, len(appErr.Details))
	for _, detail := range appErr.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{FieldColor, FieldContentType}, fields)
	repo.AssertNotCalled(t, "CreateCategory", mock.Anything)
}

func TestListCategories_DefaultsToOrder(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListCategories", mock.Anything).Return([]*Category{
		{ID: "b", Name: "B", Order: 2, ContentType: ContentBook},
		{ID: "a", Name: "A", Order: 1, ContentType: ContentBook},
		{ID: "m", Name: "Music", Order: 0, ContentType: ContentAudio},
	}, nil)

	view, meta, err := newTestService(repo).ListCategories(context.Background(), url.Values{"type": {"book"}})
	require.NoError(t, err)

	ids := make([]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		ids = append(ids, row.ID)
	}
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, 2, meta.Total)
}
