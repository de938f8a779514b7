package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// ShouldRetry reports whether err is a transient transport failure: a
// timeout, a refused or failed dial, or a temporary DNS error. Errors with a
// response attached never qualify here; callers judge status codes.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTimeout || dnsErr.IsTemporary
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	// *url.Error and *net.OpError both implement net.Error and forward Timeout.
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// retryTransport repeats a round trip after transient failures, waiting
// backoff*attempt between tries. Requests whose body cannot be rebuilt are
// sent once.
type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	for attempt := 1; attempt <= t.maxRetries && err != nil && ShouldRetry(err); attempt++ {
		if werr := wait(req.Context(), t.backoff*time.Duration(attempt)); werr != nil {
			return nil, werr
		}
		next, rerr := rewind(req)
		if rerr != nil {
			return nil, rerr
		}
		if next == nil {
			break
		}
		resp, err = base.RoundTrip(next)
	}
	return resp, err
}

// rewind clones req with a fresh body. It returns nil when the body was
// already consumed and cannot be replayed.
func rewind(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body
	return clone, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
