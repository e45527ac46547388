package repository

import (
	"context"

	"github.com/rizkypratama/survey-api/internal/domain/entity"
)

// ResponseRepository defines survey response persistence.
type ResponseRepository interface {
	Create(ctx context.Context, r *entity.SurveyResponse) error
	ListByUser(ctx context.Context, userID string, limit int) ([]entity.SurveyResponse, error)
	ListRecent(ctx context.Context, limit int) ([]entity.ResponseWithUser, error)
	CountAll(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	// All streams every response with submitter identity, newest first.
	// Used by the admin CSV export.
	All(ctx context.Context) ([]entity.ResponseWithUser, error)
}
