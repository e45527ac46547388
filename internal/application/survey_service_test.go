package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rizkypratama/survey-api/internal/domain/entity"
	"github.com/rizkypratama/survey-api/pkg/mailer"
)

type mockResponseRepo struct {
	mock.Mock
}

func (m *mockResponseRepo) Create(ctx context.Context, r *entity.SurveyResponse) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockResponseRepo) ListByUser(ctx context.Context, userID string, limit int) ([]entity.SurveyResponse, error) {
	args := m.Called(ctx, userID, limit)
	if v := args.Get(0); v != nil {
		return v.([]entity.SurveyResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResponseRepo) ListRecent(ctx context.Context, limit int) ([]entity.ResponseWithUser, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]entity.ResponseWithUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResponseRepo) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockResponseRepo) CountByCategory(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[string]int), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResponseRepo) All(ctx context.Context) ([]entity.ResponseWithUser, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]entity.ResponseWithUser), args.Error(1)
	}
	return nil, args.Error(1)
}

type capturePublisher struct {
	jobs []any
	err  error
}

func (p *capturePublisher) PublishJSON(ctx context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

func TestSubmitStoresAndQueuesReceipt(t *testing.T) {
	repo := new(mockResponseRepo)
	pub := &capturePublisher{}
	svc := NewSurveyService(repo, nil, "", pub, quietLogger())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.SurveyResponse) bool {
		return r.UserID == "u-1" && r.Category == "product" && r.Feedback == "trimmed"
	})).Return(nil).Once()

	user := &AuthUser{ID: "u-1", Email: "alice@example.com", Name: "Alice"}
	sr, err := svc.Submit(context.Background(), user, SubmitInput{
		Category: "product",
		Answers:  map[string]any{"q1": "yes"},
		Feedback: "  trimmed  ",
		Score:    8,
	})
	require.NoError(t, err)
	assert.Equal(t, "product", sr.Category)

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", job.To)
	assert.Equal(t, mailer.TemplateReceipt, job.Template)
	repo.AssertExpectations(t)
}

func TestSubmitSucceedsWhenPublishFails(t *testing.T) {
	repo := new(mockResponseRepo)
	pub := &capturePublisher{err: assert.AnError}
	svc := NewSurveyService(repo, nil, "", pub, quietLogger())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	user := &AuthUser{ID: "u-1", Email: "alice@example.com"}
	_, err := svc.Submit(context.Background(), user, SubmitInput{Category: "support", Answers: map[string]any{}})
	assert.NoError(t, err)
}

func TestSubmitPropagatesStoreError(t *testing.T) {
	repo := new(mockResponseRepo)
	svc := NewSurveyService(repo, nil, "", nil, quietLogger())

	repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	user := &AuthUser{ID: "u-1", Email: "alice@example.com"}
	_, err := svc.Submit(context.Background(), user, SubmitInput{Category: "support", Answers: map[string]any{}})
	assert.Error(t, err)
}

func TestListMineBuildsSummary(t *testing.T) {
	repo := new(mockResponseRepo)
	svc := NewSurveyService(repo, nil, "", nil, quietLogger())

	rows := []entity.SurveyResponse{
		{ID: "r1", Category: "product"},
		{ID: "r2", Category: "product"},
		{ID: "r3", Category: "support"},
	}
	repo.On("ListByUser", mock.Anything, "u-1", 100).Return(rows, nil).Once()

	responses, summary, err := svc.ListMine(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, responses, 3)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.ByCategory["product"])
	assert.Equal(t, 1, summary.ByCategory["support"])
}
