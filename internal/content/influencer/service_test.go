package influencer

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

func (m *mockRepository) ListInfluencers(ctx context.Context, query url.Values) ([]*Influencer, error) {
	args := m.Called(query)
	influencers, _ := args.Get(0).([]*Influencer)
	return influencers, args.Error(1)
}

func (m *mockRepository) GetInfluencer(ctx context.Context, id string) (*Influencer, error) {
	args := m.Called(id)
	influencer, _ := args.Get(0).(*Influencer)
	return influencer, args.Error(1)
}

func (m *mockRepository) CreateInfluencer(ctx context.Context, influencer *Influencer) (*Influencer, error) {
	args := m.Called(influencer)
	created, _ := args.Get(0).(*Influencer)
	return created, args.Error(1)
}

func (m *mockRepository) UpdateInfluencer(ctx context.Context, id string, influencer *Influencer) (*Influencer, error) {
	args := m.Called(id, influencer)
	updated, _ := args.Get(0).(*Influencer)
	return updated, args.Error(1)
}

func (m *mockRepository) SetActive(ctx context.Context, id string, active bool) (*Influencer, error) {
	args := m.Called(id, active)
	updated, _ := args.Get(0).(*Influencer)
	return updated, args.Error(1)
}

func (m *mockRepository) DeleteInfluencer(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, audit.Nop{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestListInfluencers_TotalsAndRates(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListInfluencers", mock.Anything).Return([]*Influencer{
		{ID: "a", Code: "ALPHA", IsActive: true, Stats: Stats{Clicks: 100, Signups: 10, Conversions: 3, Revenue: 29.97}},
		{ID: "b", Code: "BETA", IsActive: true, Stats: Stats{Clicks: 50, Signups: 0, Conversions: 0}},
		{ID: "c", Code: "GAMMA", IsActive: false, Stats: Stats{Clicks: 999, Signups: 999, Conversions: 999}},
	}, nil)

	query := url.Values{"status": {"active"}, "sort": {"conversionRate"}, "dir": {"desc"}, "limit": {"1"}}
	listing, meta, err := newTestService(repo).ListInfluencers(context.Background(), query)
	require.NoError(t, err)

	require.Len(t, listing.Rows, 1)
	assert.Equal(t, "a", listing.Rows[0].ID)
	assert.Equal(t, 30, listing.Rows[0].ConversionRate)
	assert.Equal(t, 2, meta.Total)

	// Totals cover both active rows even though only one is on the page.
	assert.Equal(t, 150, listing.Totals.Clicks)
	assert.Equal(t, 10, listing.Totals.Signups)
	assert.Equal(t, 30, listing.Totals.ConversionRate)
	assert.InDelta(t, 29.97, listing.Totals.Revenue, 0.001)
}

func TestCreateInfluencer_NormalizesCode(t *testing.T) {
	repo := new(mockRepository)
	repo.On("CreateInfluencer", mock.MatchedBy(func(i *Influencer) bool {
		return i.Code == "SUMMERSALE25" && i.Stats == Stats{}
	})).Return(&Influencer{ID: "i1", Code: "SUMMERSALE25"}, nil).Once()

	_, err := newTestService(repo).CreateInfluencer(context.Background(), &Influencer{
		Code:            "summer-salé 25",
		Name:            "Sunny",
		DiscountPercent: 25,
		TrialDays:       14,
		Stats:           Stats{Clicks: 5},
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateInfluencer_Bounds(t *testing.T) {
	_, err := newTestService(new(mockRepository)).CreateInfluencer(context.Background(), &Influencer{
		Code:              "OK1",
		Name:              "Sunny",
		CommissionPercent: 120,
		TrialDays:         400,
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)

	fields := make([]string, 0, len(appErr.Details))
	for _, detail := range appErr.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{FieldCommission, FieldTrialDays}, fields)
}
