package conversation

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/m3rciful/cryptobot/core/logger"
	"github.com/m3rciful/cryptobot/internal/analysis"
	"github.com/m3rciful/cryptobot/internal/market"
)

const (
	component = "conversation"
	topCount  = 5
	chartDays = 7
)

// InputKind tells commands apart from free text.
type InputKind int

const (
	InputText InputKind = iota
	InputStart
	InputCancel
)

// Input is one user turn.
type Input struct {
	Kind InputKind
	Text string
}

// Market answers the price questions of the dialogue.
//
//go:generate mockgen -package=conversation_test -destination=mock_deps_test.go -source=engine.go Market Charter Responder
type Market interface {
	LatestQuote(ctx context.Context, symbol string) (market.Quote, error)
	Top(ctx context.Context, n int) ([]market.TopEntry, error)
	PriceSeries(ctx context.Context, symbol string, days int) (market.PriceSeries, error)
	Convert(ctx context.Context, from, to string, amount float64) (float64, error)
}

// Charter renders a price series as an image.
type Charter interface {
	Render(symbol string, series market.PriceSeries) ([]byte, error)
}

// Responder delivers replies to the chat the turn came from.
type Responder interface {
	// Reply sends HTML text and leaves the keyboard as it is.
	Reply(ctx context.Context, html string) error
	// Prompt asks for input and removes the reply keyboard.
	Prompt(ctx context.Context, text string) error
	// Photo sends a PNG image.
	Photo(ctx context.Context, png []byte, filename string) error
	// Menu sends MenuText with the reply keyboard.
	Menu(ctx context.Context) error
}

// Engine owns the dialogue state of every chat.
type Engine struct {
	market   Market
	charts   Charter
	sessions SessionStore
}

// NewEngine builds an Engine.
func NewEngine(m Market, charts Charter, sessions SessionStore) *Engine {
	return &Engine{market: m, charts: charts, sessions: sessions}
}

// State returns the current state of chatID.
func (e *Engine) State(chatID int64) State {
	if st, ok := e.sessions.Load(chatID); ok && st != nil {
		return st
	}
	return Idle{}
}

// Handle runs one turn for chatID. Turns of the same chat must not run
// concurrently. When a reply cannot be delivered the chat is reset to Idle
// and the send error is returned.
func (e *Engine) Handle(ctx context.Context, chatID int64, in Input, r Responder) error {
	start := time.Now()
	current := e.State(chatID)

	next, err := e.step(ctx, current, in, r)
	if err != nil {
		e.sessions.Delete(chatID)
		logger.Warn(ctx, component, "turn",
			slog.String("status", "fail"),
			slog.String("state", Describe(current)),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return err
	}

	if _, idle := next.(Idle); idle {
		e.sessions.Delete(chatID)
	} else {
		e.sessions.Store(chatID, next)
	}
	logger.Debug(ctx, component, "turn",
		slog.String("status", "ok"),
		slog.String("state", Describe(current)),
		slog.String("next", Describe(next)),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

func (e *Engine) step(ctx context.Context, current State, in Input, r Responder) (State, error) {
	switch in.Kind {
	case InputStart:
		return e.finish(ctx, r, HelpText)
	case InputCancel:
		return e.finish(ctx, r, msgCancelled)
	}

	switch st := current.(type) {
	case AwaitingCoin:
		return e.lookup(ctx, in.Text, r)
	case AwaitingFromSymbol:
		sym := normalizeSymbol(in.Text)
		if sym == "" {
			return st, r.Prompt(ctx, promptFromSymbol)
		}
		return AwaitingAmount{From: sym}, r.Prompt(ctx, promptAmount)
	case AwaitingAmount:
		amount, err := ParseAmount(in.Text)
		if err != nil {
			return st, r.Reply(ctx, msgNumericValue)
		}
		return AwaitingToSymbol{From: st.From, Amount: amount}, r.Prompt(ctx, promptToSymbol)
	case AwaitingToSymbol:
		return e.convert(ctx, st, in.Text, r)
	default:
		return e.menuChoice(ctx, in.Text, r)
	}
}

func (e *Engine) menuChoice(ctx context.Context, text string, r Responder) (State, error) {
	switch strings.TrimSpace(text) {
	case MenuTop:
		entries, err := e.market.Top(ctx, topCount)
		if err != nil {
			return e.finish(ctx, r, msgTopFailed)
		}
		return e.finish(ctx, r, analysis.TopReport(entries))
	case MenuLookup:
		return AwaitingCoin{}, r.Prompt(ctx, promptCoin)
	case MenuConvert:
		return AwaitingFromSymbol{}, r.Prompt(ctx, promptFromSymbol)
	default:
		return Idle{}, r.Menu(ctx)
	}
}

func (e *Engine) lookup(ctx context.Context, text string, r Responder) (State, error) {
	sym := normalizeSymbol(text)
	if sym == "" {
		return AwaitingCoin{}, r.Prompt(ctx, promptCoin)
	}

	quote, err := e.market.LatestQuote(ctx, sym)
	if err != nil {
		return e.finish(ctx, r, msgCoinNotFound)
	}
	if err := r.Reply(ctx, analysis.Report(sym, quote)); err != nil {
		return Idle{}, err
	}

	img, err := e.chart(ctx, sym)
	if err != nil {
		logger.Info(ctx, component, "chart",
			slog.String("status", "fail"),
			slog.String("symbol", sym),
			slog.String("err", err.Error()),
		)
		return e.finish(ctx, r, msgChartUnavailable)
	}
	if err := r.Photo(ctx, img, sym+"_7d.png"); err != nil {
		return Idle{}, err
	}
	return Idle{}, r.Menu(ctx)
}

func (e *Engine) chart(ctx context.Context, sym string) ([]byte, error) {
	series, err := e.market.PriceSeries(ctx, sym, chartDays)
	if err != nil {
		return nil, err
	}
	return e.charts.Render(sym, series)
}

func (e *Engine) convert(ctx context.Context, st AwaitingToSymbol, text string, r Responder) (State, error) {
	to := normalizeSymbol(text)
	if to == "" {
		return st, r.Prompt(ctx, promptToSymbol)
	}
	result, err := e.market.Convert(ctx, st.From, to, st.Amount)
	if err != nil {
		return e.finish(ctx, r, msgConvertFailed)
	}
	return e.finish(ctx, r, analysis.ConversionReport(st.From, to, st.Amount, result))
}

// finish sends text followed by the menu and ends the branch.
func (e *Engine) finish(ctx context.Context, r Responder, text string) (State, error) {
	if err := r.Reply(ctx, text); err != nil {
		return Idle{}, err
	}
	return Idle{}, r.Menu(ctx)
}

func normalizeSymbol(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

// ParseAmount reads a positive finite amount. A decimal comma is accepted.
func ParseAmount(text string) (float64, error) {
	const op = "conversation.parse_amount"
	raw := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, market.Errorf(market.ErrInvalidInput, op, "", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, market.Errorf(market.ErrInvalidInput, op, "", nil)
	}
	return v, nil
}
