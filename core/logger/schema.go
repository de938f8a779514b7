package logger

import "strings"

// enum maps accepted spellings of a closed field to its canonical value.
type enum map[string]string

func newEnum(values ...string) enum {
	e := make(enum, len(values))
	for _, v := range values {
		e[v] = v
	}
	return e
}

// lookup reports the canonical form of raw; empty input is never valid.
func (e enum) lookup(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", false
	}
	v, ok := e[raw]
	if !ok {
		return raw, false
	}
	return v, true
}

var (
	levelNames = enum{
		"debug":   "DEBUG",
		"info":    "INFO",
		"warn":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
	}
	statusValues  = newEnum("ok", "fail", "skip", "retry", "cancelled", "dropped")
	cacheValues   = newEnum("hit", "miss", "refresh")
	outcomeValues = newEnum("ok", "fail", "cancelled")
)

func normalizeLevel(level string) string {
	if v, ok := levelNames.lookup(level); ok {
		return v
	}
	if level = strings.TrimSpace(level); level == "" {
		return "INFO"
	}
	return strings.ToUpper(level)
}

// defaultKeyOrder puts the envelope first, then correlation ids, then the
// market and storage fields this bot logs most.
var defaultKeyOrder = strings.Fields(`
	ts level component event status
	rid rid_full ts_unix_nano update_id user_id chat_id chat_type handler
	op state next outcome duration_ms
	symbol coin_id endpoint http_code cache age_ms entries count backend schedule
	payload username mode
	db driver host port
	err err_code cause retryable attempts backoff_ms backlog messages
`)
