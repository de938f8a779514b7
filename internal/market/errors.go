package market

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUpstreamUnavailable reports a transport failure or an unusable upstream status.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrNotFound reports a well-formed response without the expected data.
	ErrNotFound = errors.New("not found")
	// ErrNoData reports an empty input where data is required.
	ErrNoData = errors.New("no data")
	// ErrInvalidInput reports user input that cannot be used.
	ErrInvalidInput = errors.New("invalid input")
)

// Error carries the failure kind together with the context needed in logs.
type Error struct {
	Kind   error
	Op     string
	Symbol string
	Err    error
}

// Errorf builds an Error of the given kind.
func Errorf(kind error, op, symbol string, err error) *Error {
	return &Error{Kind: kind, Op: op, Symbol: symbol, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("failure")
	}
	if e.Symbol != "" {
		fmt.Fprintf(&b, " (symbol %s)", e.Symbol)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the error kind so callers can use errors.Is with the sentinels.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// Code returns a stable identifier for logs.
func (e *Error) Code() string {
	switch e.Kind {
	case ErrUpstreamUnavailable:
		return "UPSTREAM_UNAVAILABLE"
	case ErrNotFound:
		return "NOT_FOUND"
	case ErrNoData:
		return "NO_DATA"
	case ErrInvalidInput:
		return "INVALID_INPUT"
	}
	return "MARKET_ERROR"
}

// KindForStatus maps a non-2xx HTTP status to an error kind.
// It returns nil for 2xx statuses.
func KindForStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == 400 || status == 404:
		return ErrNotFound
	default:
		return ErrUpstreamUnavailable
	}
}

// KindOf returns the sentinel kind of err, or nil when err is not a market error.
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrUpstreamUnavailable, ErrNoData, ErrInvalidInput} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
