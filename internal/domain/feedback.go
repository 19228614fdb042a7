package domain

import "time"

// Feedback is a user's reaction to a set of recommendations.
type Feedback struct {
	ID           string    `json:"id"`
	Satisfaction int       `json:"satisfaction"` // 1-5
	Relevant     bool      `json:"relevant"`
	Criteria     Criteria  `json:"criteria"`
	CreatedAt    time.Time `json:"createdAt"`
}
