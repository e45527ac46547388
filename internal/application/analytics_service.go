package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rizkypratama/survey-api/internal/domain/entity"
	"github.com/rizkypratama/survey-api/internal/domain/repository"
	"github.com/rizkypratama/survey-api/pkg/helpers"
)

const (
	summaryCacheKey = "analytics:summary"
	summaryCacheTTL = time.Minute
	historyLimit    = 50
)

var ErrExportUnavailable = fmt.Errorf("export storage not configured")

// AnalyticsSummary is the admin dashboard headline view.
type AnalyticsSummary struct {
	TotalResponses int            `json:"totalResponses"`
	ByCategory     map[string]int `json:"byCategory"`
	TotalUsers     int            `json:"totalUsers"`
	ActiveUsers    int            `json:"activeUsers"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

// AnalyticsService aggregates responses for the PIN-gated admin dashboard.
type AnalyticsService struct {
	Responses repository.ResponseRepository
	Users     repository.UserRepository
	Redis     *redis.Client
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewAnalyticsService(responses repository.ResponseRepository, users repository.UserRepository, rdb *redis.Client, es *elasticsearch.Client, esIndex string, gcs *storage.Client, bucket string, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{
		Responses: responses,
		Users:     users,
		Redis:     rdb,
		ES:        es,
		ESIndex:   esIndex,
		GCS:       gcs,
		GCSBucket: bucket,
		Logger:    logger,
	}
}

// Summary computes dashboard totals, cached in Redis for a minute. Cache
// failures fall through to the database.
func (s *AnalyticsService) Summary(ctx context.Context) (*AnalyticsSummary, error) {
	if s.Redis != nil {
		var cached AnalyticsSummary
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, summaryCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	total, err := s.Responses.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.Responses.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, activeUsers, err := s.Users.Counts(ctx)
	if err != nil {
		return nil, err
	}

	summary := &AnalyticsSummary{
		TotalResponses: total,
		ByCategory:     byCategory,
		TotalUsers:     totalUsers,
		ActiveUsers:    activeUsers,
		GeneratedAt:    time.Now().UTC(),
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, summaryCacheKey, summary, summaryCacheTTL); err != nil {
			s.Logger.WithError(err).Warn("cache analytics summary failed")
		}
	}
	return summary, nil
}

// History lists the most recent responses with submitter identity.
func (s *AnalyticsService) History(ctx context.Context) ([]entity.ResponseWithUser, error) {
	return s.Responses.ListRecent(ctx, historyLimit)
}

// Search runs a full-text query over the response index.
func (s *AnalyticsService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"feedback^2", "category", "user_email", "user_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// ExportCSV streams every response into a CSV object in the configured
// bucket and returns the object URL.
func (s *AnalyticsService) ExportCSV(ctx context.Context) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrExportUnavailable
	}

	responses, err := s.Responses.All(ctx)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "user_email", "user_name", "category", "feedback", "score", "created_at"})
	for _, r := range responses {
		_ = w.Write([]string{
			r.ID,
			r.UserEmail,
			r.UserName,
			r.Category,
			r.Feedback,
			strconv.Itoa(r.Score),
			r.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	objectPath := fmt.Sprintf("exports/responses-%s.csv", time.Now().UTC().Format("20060102-150405"))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, "text/csv", &buf)
	if err != nil {
		return "", err
	}
	s.Logger.WithField("object", objectPath).Info("responses exported")
	return url, nil
}
