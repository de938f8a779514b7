package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

// fakeContext stores values and records sends; unused methods panic through the nil embed.
type fakeContext struct {
	tele.Context
	store map[string]interface{}
	sent  []interface{}
	fail  error
}

func newFakeContext() *fakeContext {
	return &fakeContext{store: map[string]interface{}{}}
}

func (f *fakeContext) Get(key string) interface{} { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{}) { f.store[key] = v }
func (f *fakeContext) Update() tele.Update { return tele.Update{ID: 11} }
func (f *fakeContext) Chat() *tele.Chat { return &tele.Chat{ID: 5, Type: tele.ChatPrivate} }
func (f *fakeContext) Sender() *tele.User { return &tele.User{ID: 9} }
func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, what)
	return nil
}

func TestMetricsCountMessagesAndKeyboards(t *testing.T) {
	t.Parallel()

	c := newFakeContext()
	h := MessageMetricsMiddleware(func(c tele.Context) error {
		require.NoError(t, c.Send("plain"))
		require.NoError(t, c.Send("hidden", &tele.ReplyMarkup{RemoveKeyboard: true}))
		msgs, kb := GetCounters(c)
		assert.Equal(t, 2, msgs)
		assert.False(t, kb)
		return c.Send("menu", &tele.SendOptions{ReplyMarkup: &tele.ReplyMarkup{ResizeKeyboard: true}})
	})
	require.NoError(t, h(c))

	msgs, kb := GetCounters(c)
	assert.Equal(t, 3, msgs)
	assert.True(t, kb)
}

func TestRecoverSwallowsPanics(t *testing.T) {
	t.Parallel()

	c := newFakeContext()
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	assert.NotPanics(t, func() { assert.NoError(t, h(c)) })
}

func TestLoggerMiddlewareStoresRID(t *testing.T) {
	t.Parallel()

	c := newFakeContext()
	var seen bool
	h := LoggerMiddleware(func(c tele.Context) error {
		rid, _ := c.Get("rid").(string)
		assert.Equal(t, "11:5:9", rid)
		seen = true
		return nil
	})
	require.NoError(t, h(c))
	assert.True(t, seen)
}
