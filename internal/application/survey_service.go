package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/rizkypratama/survey-api/internal/domain/entity"
	"github.com/rizkypratama/survey-api/internal/domain/repository"
	"github.com/rizkypratama/survey-api/pkg/mailer"
)

const listLimit = 100

// SubmitInput is a validated survey submission.
type SubmitInput struct {
	Category string
	Answers  map[string]any
	Feedback string
	Score    int
}

// ResponseSummary accompanies a user's response listing.
type ResponseSummary struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"byCategory"`
}

// SurveyService persists survey responses and fans them out to the search
// index and the notification queue. Indexing and mail are best effort; the
// submission succeeds once the row is stored.
type SurveyService struct {
	Responses repository.ResponseRepository
	ES        *elasticsearch.Client
	ESIndex   string
	Pub       Publisher
	Logger    *logrus.Logger
}

func NewSurveyService(responses repository.ResponseRepository, es *elasticsearch.Client, esIndex string, pub Publisher, logger *logrus.Logger) *SurveyService {
	return &SurveyService{Responses: responses, ES: es, ESIndex: esIndex, Pub: pub, Logger: logger}
}

func (s *SurveyService) Submit(ctx context.Context, user *AuthUser, in SubmitInput) (*entity.SurveyResponse, error) {
	sr := &entity.SurveyResponse{
		UserID:   user.ID,
		Category: in.Category,
		Answers:  in.Answers,
		Feedback: strings.TrimSpace(in.Feedback),
		Score:    in.Score,
	}
	if err := s.Responses.Create(ctx, sr); err != nil {
		return nil, err
	}

	s.indexResponse(ctx, user, sr)
	s.queueReceiptEmail(ctx, user, sr)

	return sr, nil
}

func (s *SurveyService) ListMine(ctx context.Context, userID string) ([]entity.SurveyResponse, *ResponseSummary, error) {
	responses, err := s.Responses.ListByUser(ctx, userID, listLimit)
	if err != nil {
		return nil, nil, err
	}

	summary := &ResponseSummary{Total: len(responses), ByCategory: map[string]int{}}
	for _, r := range responses {
		summary.ByCategory[r.Category]++
	}
	return responses, summary, nil
}

func (s *SurveyService) indexResponse(ctx context.Context, user *AuthUser, sr *entity.SurveyResponse) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         sr.ID,
		"user_id":    sr.UserID,
		"user_email": user.Email,
		"user_name":  user.Name,
		"category":   sr.Category,
		"feedback":   sr.Feedback,
		"score":      sr.Score,
		"created_at": sr.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: sr.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("response_id", sr.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("response_id", sr.ID).Warn("es index response error")
	}
}

func (s *SurveyService) queueReceiptEmail(ctx context.Context, user *AuthUser, sr *entity.SurveyResponse) {
	if s.Pub == nil {
		return
	}
	name := user.Name
	if name == "" {
		name = user.Email
	}
	job := mailer.EmailJob{
		To:       user.Email,
		Template: mailer.TemplateReceipt,
		Data: map[string]any{
			"Name":        name,
			"Category":    sr.Category,
			"SubmittedAt": sr.CreatedAt.Format("02 January 2006, 15:04 MST"),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("response_id", sr.ID).Warn("queue receipt email failed")
	}
}
