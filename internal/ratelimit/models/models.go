// Package models holds rate limit results and key construction.
package models

import (
	"math"
	"time"
)

// Result is the outcome of one counted request.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the whole number of seconds until the window resets, at least 1.
func (r Result) RetryAfter(now time.Time) int {
	secs := int(math.Ceil(r.ResetAt.Sub(now).Seconds()))
	return max(secs, 1)
}

// UserKey scopes a counter to an authenticated caller.
func UserKey(userID string) string {
	return "user:" + userID
}

// ClientKey scopes a counter to a client address when no caller is known.
func ClientKey(ip string) string {
	return "ip:" + ip
}
