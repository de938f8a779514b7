package middleware

import (
	"sync/atomic"

	tele "gopkg.in/telebot.v4"
)

const countersKey = "send_counters"

// sendCounters tracks what a handler sent back. Turns run after the update
// handler returns, so the fields are updated atomically.
type sendCounters struct {
	messages atomic.Int32
	keyboard atomic.Bool
}

// countingContext counts successful sends made through the wrapped context.
type countingContext struct {
	tele.Context
	counters *sendCounters
}

func (m countingContext) record(err error, opts []interface{}) error {
	if err != nil {
		return err
	}
	m.counters.messages.Add(1)
	if carriesKeyboard(opts) {
		m.counters.keyboard.Store(true)
	}
	return nil
}

// carriesKeyboard ignores markups that only remove the current keyboard.
func carriesKeyboard(opts []interface{}) bool {
	for _, o := range opts {
		var markup *tele.ReplyMarkup
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil {
				markup = v.ReplyMarkup
			}
		case *tele.ReplyMarkup:
			markup = v
		}
		if markup != nil && !markup.RemoveKeyboard {
			return true
		}
	}
	return false
}

func (m countingContext) Send(what interface{}, opts ...interface{}) error {
	return m.record(m.Context.Send(what, opts...), opts)
}

func (m countingContext) Reply(what interface{}, opts ...interface{}) error {
	return m.record(m.Context.Reply(what, opts...), opts)
}

// MessageMetricsMiddleware counts the messages a handler sends and whether
// any of them carried a reply keyboard.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		counters := &sendCounters{}
		c.Set(countersKey, counters)
		return next(countingContext{Context: c, counters: counters})
	}
}

// GetCounters returns the number of messages sent for the update and
// whether a keyboard was attached to one of them.
func GetCounters(c tele.Context) (int, bool) {
	counters, ok := c.Get(countersKey).(*sendCounters)
	if !ok {
		return 0, false
	}
	return int(counters.messages.Load()), counters.keyboard.Load()
}
