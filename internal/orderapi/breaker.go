package orderapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// Breaker defaults used until WithBreaker is called.
const (
	DefaultBreakerFailures = 5
	DefaultBreakerCooldown = 30 * time.Second
)

// errServerStatus marks a 5xx response as a breaker failure. The response
// itself is still returned to the caller.
var errServerStatus = errors.New("order api server error")

func newBreaker(failures uint32, cooldown time.Duration, logger zerolog.Logger) *gobreaker.CircuitBreaker[*http.Response] {
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "order-api",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			event := logger.Info()
			if to == gobreaker.StateOpen {
				event = logger.Warn()
			}
			event.Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

// WithBreaker replaces the circuit breaker settings. After failures
// consecutive transport errors or 5xx responses, calls fail fast for cooldown.
func (c *Client) WithBreaker(failures uint32, cooldown time.Duration) *Client {
	if failures == 0 {
		failures = DefaultBreakerFailures
	}
	if cooldown <= 0 {
		cooldown = DefaultBreakerCooldown
	}
	c.breaker = newBreaker(failures, cooldown, c.logger)
	return c
}

// execute runs req through the breaker.
func (c *Client) execute(req *http.Request) (*http.Response, error) {
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	})

	switch {
	case errors.Is(err, errServerStatus):
		return resp, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.logger.Warn().Str("path", req.URL.Path).Msg("order api circuit open, failing fast")
		return nil, &APIError{StatusCode: http.StatusServiceUnavailable, Message: "order service is temporarily unavailable"}
	default:
		return resp, err
	}
}
