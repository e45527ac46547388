package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rizkypratama/survey-api/internal/domain/entity"
	"github.com/rizkypratama/survey-api/internal/domain/repository"
)

type ResponseRepository struct {
	pool *pgxpool.Pool
}

func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

func (r *ResponseRepository) Create(ctx context.Context, sr *entity.SurveyResponse) error {
	answers, err := json.Marshal(sr.Answers)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO survey_responses (user_id, category, answers, feedback, score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, sr.UserID, sr.Category, answers, sr.Feedback, sr.Score)

	return row.Scan(&sr.ID, &sr.CreatedAt)
}

func (r *ResponseRepository) ListByUser(ctx context.Context, userID string, limit int) ([]entity.SurveyResponse, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, category, answers, feedback, score, created_at
		FROM survey_responses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResponses(rows)
}

func (r *ResponseRepository) ListRecent(ctx context.Context, limit int) ([]entity.ResponseWithUser, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT sr.id, sr.user_id, sr.category, sr.answers, sr.feedback, sr.score, sr.created_at,
		       u.email, u.name
		FROM survey_responses sr
		JOIN users u ON u.id = sr.user_id
		ORDER BY sr.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResponsesWithUser(rows)
}

func (r *ResponseRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM survey_responses`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ResponseRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, count(*)
		FROM survey_responses
		GROUP BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		out[category] = n
	}
	return out, rows.Err()
}

func (r *ResponseRepository) All(ctx context.Context) ([]entity.ResponseWithUser, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT sr.id, sr.user_id, sr.category, sr.answers, sr.feedback, sr.score, sr.created_at,
		       u.email, u.name
		FROM survey_responses sr
		JOIN users u ON u.id = sr.user_id
		ORDER BY sr.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResponsesWithUser(rows)
}

func scanResponses(rows pgx.Rows) ([]entity.SurveyResponse, error) {
	var out []entity.SurveyResponse
	for rows.Next() {
		var sr entity.SurveyResponse
		var answers []byte
		if err := rows.Scan(&sr.ID, &sr.UserID, &sr.Category, &answers,
			&sr.Feedback, &sr.Score, &sr.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answers, &sr.Answers); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func scanResponsesWithUser(rows pgx.Rows) ([]entity.ResponseWithUser, error) {
	var out []entity.ResponseWithUser
	for rows.Next() {
		var rw entity.ResponseWithUser
		var answers []byte
		if err := rows.Scan(&rw.ID, &rw.UserID, &rw.Category, &answers,
			&rw.Feedback, &rw.Score, &rw.CreatedAt, &rw.UserEmail, &rw.UserName); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answers, &rw.Answers); err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	return out, rows.Err()
}

var _ repository.ResponseRepository = (*ResponseRepository)(nil)
