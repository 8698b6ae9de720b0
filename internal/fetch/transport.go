package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// transport is the shared HTTP layer for all fetchers: one rate limiter and
// one circuit breaker per upstream, plus a bounded single retry with no
// backoff for transient failures.
type transport struct {
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func newTransport(name string, timeout time.Duration, rps rate.Limit, burst int) *transport {
	st := gobreaker.Settings{Name: name}
	st.Interval = 60 * time.Second
	st.Timeout = 60 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	return &transport{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rps, burst),
		breaker: gobreaker.NewCircuitBreaker(st),
	}
}

// getJSON fetches url and decodes the body into out. Network and timeout
// failures are retried exactly once; format failures are not, since the
// upstream will return the same body again.
func (t *transport) getJSON(ctx context.Context, url string, out any) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrNetwork, err)
	}

	err := t.execute(ctx, url, out)
	if err == nil || errors.Is(err, ErrFormat) {
		return err
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if ctx.Err() != nil {
		return err
	}
	return t.execute(ctx, url, out)
}

func (t *transport) execute(ctx context.Context, url string, out any) error {
	_, err := t.breaker.Execute(func() (any, error) {
		return nil, t.attempt(ctx, url, out)
	})
	return err
}

func (t *transport) attempt(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d from %s", ErrNetwork, resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrFormat, url, err)
	}
	return nil
}
