package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rizkypratama/survey-api/internal/domain/entity"
)

func newTestAnalytics(responses *mockResponseRepo, users *mockUserRepo) *AnalyticsService {
	return NewAnalyticsService(responses, users, nil, nil, "", nil, "", quietLogger())
}

func TestSummaryAggregates(t *testing.T) {
	responses := new(mockResponseRepo)
	users := new(mockUserRepo)
	svc := newTestAnalytics(responses, users)

	responses.On("CountAll", mock.Anything).Return(12, nil).Once()
	responses.On("CountByCategory", mock.Anything).Return(map[string]int{"product": 7, "support": 5}, nil).Once()
	users.On("Counts", mock.Anything).Return(4, 3, nil).Once()

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, summary.TotalResponses)
	assert.Equal(t, 7, summary.ByCategory["product"])
	assert.Equal(t, 4, summary.TotalUsers)
	assert.Equal(t, 3, summary.ActiveUsers)
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestSummaryPropagatesStoreError(t *testing.T) {
	responses := new(mockResponseRepo)
	users := new(mockUserRepo)
	svc := newTestAnalytics(responses, users)

	responses.On("CountAll", mock.Anything).Return(0, assert.AnError).Once()

	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
}

func TestHistoryLimit(t *testing.T) {
	responses := new(mockResponseRepo)
	svc := newTestAnalytics(responses, new(mockUserRepo))

	rows := []entity.ResponseWithUser{{UserEmail: "a@b.com"}}
	responses.On("ListRecent", mock.Anything, historyLimit).Return(rows, nil).Once()

	got, err := svc.History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestSearchWithoutESReturnsEmpty(t *testing.T) {
	svc := newTestAnalytics(new(mockResponseRepo), new(mockUserRepo))

	hits, err := svc.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestExportWithoutGCS(t *testing.T) {
	svc := newTestAnalytics(new(mockResponseRepo), new(mockUserRepo))

	_, err := svc.ExportCSV(context.Background())
	assert.ErrorIs(t, err, ErrExportUnavailable)
}
