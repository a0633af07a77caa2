// Package closing talks to the remote closing-window bot (an Apps Script web
// app). The panel never owns the window; it fetches status and forwards
// gc-issued commands.
package closing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xela07ax/gcfin-panel/internal/domain"
)

// Bot actions accepted by the web app.
const (
	ActionStartClosing      = "start_closing"
	ActionRunNow            = "run_now"
	ActionStopClosing       = "stop_closing"
	ActionStatus            = "status"
	ActionWriteParseResults = "write_parse_results"
)

// ValidAction reports whether the action is one the web app understands.
func ValidAction(a string) bool {
	switch a {
	case ActionStartClosing, ActionRunNow, ActionStopClosing, ActionStatus, ActionWriteParseResults:
		return true
	}
	return false
}

// Command is one bot invocation forwarded on behalf of a panel user.
type Command struct {
	Action      string           `json:"action"`
	Competencia string           `json:"competencia,omitempty"`
	Days        int              `json:"days,omitempty"`
	Rows        []map[string]any `json:"rows,omitempty"`
	Initiator   string           `json:"initiator"`
}

// Config holds the web app endpoint and the reliability knobs.
type Config struct {
	WebAppURL  string
	APIKey     string
	Timeout    time.Duration
	RatePerSec float64
	RateBurst  int

	// OnStateChange receives circuit breaker transitions (for metrics).
	OnStateChange func(state gobreaker.State)
}

// Client wraps every call with a rate limiter in front, a circuit breaker
// around the retry loop, and exponential backoff that honors Retry-After.
type Client struct {
	cfg     Config
	httpc   *http.Client
	cb      *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 5
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 5
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "closing-webapp",
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(to)
			}
		},
	})

	return &Client{
		cfg:     cfg,
		httpc:   &http.Client{},
		cb:      cb,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RateBurst),
		logger:  logger.Named("closing-client"),
	}
}

// statusEnvelope mirrors the web app's status reply: {"status": {...}}.
type statusEnvelope struct {
	Status *domain.ClosingStatus `json:"status"`
}

// Status fetches the current closing-window state. A reply without a status
// object (or with an undecodable body) yields (nil, nil): the panel treats an
// unknown window as closed rather than failing the whole request.
func (c *Client) Status(ctx context.Context) (*domain.ClosingStatus, error) {
	body, err := c.do(ctx, map[string]any{
		"key":    c.cfg.APIKey,
		"action": ActionStatus,
	})
	if err != nil {
		return nil, fmt.Errorf("closing: status fetch failed: %w", err)
	}

	var env statusEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Warn("undecodable status reply", zap.Error(err))
		return nil, nil
	}
	return env.Status, nil
}

// Trigger forwards a bot command and passes the web app's reply through
// verbatim. A request id is attached so bot-side logs can be correlated.
func (c *Client) Trigger(ctx context.Context, cmd Command) (json.RawMessage, error) {
	if !ValidAction(cmd.Action) {
		return nil, fmt.Errorf("closing: unknown action %q", cmd.Action)
	}

	payload := map[string]any{
		"key":        c.cfg.APIKey,
		"action":     cmd.Action,
		"initiator":  cmd.Initiator,
		"ts":         time.Now().UTC().Format(time.RFC3339),
		"request_id": uuid.NewString(),
	}
	if cmd.Competencia != "" {
		payload["competencia"] = cmd.Competencia
	}
	if cmd.Days > 0 {
		payload["days"] = cmd.Days
	}
	if len(cmd.Rows) > 0 {
		payload["rows"] = cmd.Rows
	}

	body, err := c.do(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("closing: trigger %s failed: %w", cmd.Action, err)
	}
	return json.RawMessage(body), nil
}

func (c *Client) do(ctx context.Context, payload map[string]any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var finalBody []byte
	cbResult, err := c.cb.Execute(func() (interface{}, error) {
		r := retry.New(
			retry.Context(ctx),
			retry.Attempts(3),
			retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
				// The web app may send Retry-After on 429; honor it.
				var tErr *ThrottleError
				if errors.As(err, &tErr) && tErr.RetryAfter > 0 {
					return tErr.RetryAfter
				}
				return retry.BackOffDelay(n, err, config)
			}),
		)

		retryErr := r.Do(func() error {
			tCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
			defer cancel()

			var callErr error
			finalBody, callErr = c.post(tCtx, raw)
			return callErr
		})

		return finalBody, retryErr
	})
	if err != nil {
		return nil, err
	}
	return cbResult.([]byte), nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WebAppURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &ThrottleError{
			RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
			Cause:      &StatusError{Code: resp.StatusCode},
		}
	case resp.StatusCode >= 500:
		return nil, &StatusError{Code: resp.StatusCode}
	case resp.StatusCode >= 400:
		// Client errors will not heal on retry.
		return nil, retry.Unrecoverable(&StatusError{Code: resp.StatusCode})
	}
	return data, nil
}

func retryAfter(header string) time.Duration {
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
