// Package domain holds the core types shared between the service and
// storage layers.
package domain

import "time"

// Analysis methods recorded with each identification.
const (
	MethodAI       = "AI"
	MethodFallback = "Fallback"
)

// Identification is one recorded identify request: where the caption came
// from and what the ranker made of it.
type Identification struct {
	ID            string    `json:"id"`
	Caption       string    `json:"caption"`
	Method        string    `json:"method"` // MethodAI or MethodFallback
	Model         string    `json:"model,omitempty"`
	TopSuggestion string    `json:"top_suggestion,omitempty"`
	Confidence    float64   `json:"confidence"`
	Suggestions   int       `json:"suggestions"`
	ClientIP      string    `json:"client_ip,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}
