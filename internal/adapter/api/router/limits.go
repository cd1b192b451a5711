package router

import (
	"stacksphere/internal/infrastructure/ratelimit"
)

// Rate-limited actions.
const (
	ActionCheckout    = "checkout"
	ActionSubmit      = "submit_product"
	ActionUpvote      = "upvote"
	ActionReport      = "report"
	ActionReview      = "review"
	ActionUpload      = "upload"
	ActionRefreshRole = "refresh_role"
)

// ActionLimits returns the per-action buckets. Actions not listed here use
// the limiter's fallback.
func ActionLimits() map[string]ratelimit.Limit {
	return map[string]ratelimit.Limit{
		ActionCheckout:    {PerMinute: 5, Burst: 2},
		ActionSubmit:      {PerMinute: 5, Burst: 3},
		ActionReport:      {PerMinute: 5, Burst: 3},
		ActionUpload:      {PerMinute: 10, Burst: 5},
		ActionRefreshRole: {PerMinute: 6, Burst: 2},
	}
}
