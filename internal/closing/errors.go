package closing

import (
	"fmt"
	"time"
)

// ThrottleError signals that the web app asked us to back off (HTTP 429).
// The retry delay function honors RetryAfter instead of the default backoff.
type ThrottleError struct {
	RetryAfter time.Duration
	Cause      error
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("throttled: retry after %v (cause: %v)", e.RetryAfter, e.Cause)
}

// StatusError carries a non-2xx response from the web app.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("closing webapp returned status %d", e.Code)
}
