package entity

import "time"

// SurveyResponse is a single submitted survey form.
// Answers is a free-form question->answer document persisted as jsonb.
type SurveyResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Category  string         `json:"category"`
	Answers   map[string]any `json:"answers"`
	Feedback  string         `json:"feedback,omitempty"`
	Score     int            `json:"score"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ResponseWithUser joins a response with the submitter's public identity,
// used by the admin history and export views.
type ResponseWithUser struct {
	SurveyResponse
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName,omitempty"`
}
