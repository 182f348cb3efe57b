package redis

import "fmt"

// Key key.
type Key string

// Format format.
func (k Key) Format(params ...interface{}) string {
	return fmt.Sprintf(string(k), params...)
}

// Dispatch history.

const (
	// DispatchHistory0 is the key for recently dispatched queries.
	// params: none
	DispatchHistory0 Key = "turbobunny/history/dispatches" // List
)

// Rate limits.

const (
	// CommandRateLimitCounter2 is the key for counting dispatched commands.
	// params: platform, client identity
	CommandRateLimitCounter2 Key = "turbobunny/rate_limit/dispatch/%s/%s"
)
