package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Error kinds surfaced by all fetchers. Callers branch with errors.Is; the
// wrapped message carries the underlying cause.
var (
	// ErrNetwork covers connectivity failures and upstream error statuses.
	ErrNetwork = errors.New("network error")
	// ErrFormat covers responses that arrive but cannot be parsed.
	ErrFormat = errors.New("format error")
	// ErrTimeout covers requests that exceed the client deadline.
	ErrTimeout = errors.New("timeout")
)

// classify maps a transport-level error onto one of the sentinel kinds.
func classify(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
