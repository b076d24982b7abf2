package notify

import (
	"context"
	"time"
)

// Alert is the guardian-facing summary of a verdict. It names the risk,
// never the message content.
type Alert struct {
	RequestID       string    `json:"request_id"`
	RequesterName   string    `json:"requester_name,omitempty"`
	GuardianContact string    `json:"-"`
	Score           int       `json:"score"`
	Severity        string    `json:"severity"`
	Labels          []string  `json:"labels"`
	CreatedAt       time.Time `json:"created_at"`
}

// Notifier delivers one alert. Implementations own their retry policy.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}
