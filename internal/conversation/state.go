// Package conversation drives the per-chat dialogue: menu choices, coin
// lookups and the three-step amount conversion.
package conversation

import "strconv"

// State is the position of one chat in the dialogue. The set of states is
// closed; only this package can add one.
type State interface {
	Name() string
	sealed()
}

// Idle waits for a menu choice.
type Idle struct{}

// AwaitingCoin waits for the symbol to look up.
type AwaitingCoin struct{}

// AwaitingFromSymbol waits for the symbol to convert from.
type AwaitingFromSymbol struct{}

// AwaitingAmount waits for the amount of From to convert.
type AwaitingAmount struct {
	From string
}

// AwaitingToSymbol waits for the target symbol.
type AwaitingToSymbol struct {
	From   string
	Amount float64
}

func (Idle) Name() string               { return "idle" }
func (AwaitingCoin) Name() string       { return "awaiting_coin" }
func (AwaitingFromSymbol) Name() string { return "awaiting_from_symbol" }
func (AwaitingAmount) Name() string     { return "awaiting_amount" }
func (AwaitingToSymbol) Name() string   { return "awaiting_to_symbol" }

func (Idle) sealed()               {}
func (AwaitingCoin) sealed()       {}
func (AwaitingFromSymbol) sealed() {}
func (AwaitingAmount) sealed()     {}
func (AwaitingToSymbol) sealed()   {}

// Describe renders the state with its collected fields, for logs.
func Describe(s State) string {
	switch st := s.(type) {
	case AwaitingAmount:
		return st.Name() + "(" + st.From + ")"
	case AwaitingToSymbol:
		return st.Name() + "(" + st.From + " " + strconv.FormatFloat(st.Amount, 'f', -1, 64) + ")"
	case nil:
		return Idle{}.Name()
	default:
		return st.Name()
	}
}

// SessionStore keeps the state of chats that are mid-dialogue. Idle chats
// are deleted rather than stored.
type SessionStore interface {
	Load(chatID int64) (State, bool)
	Store(chatID int64, st State)
	Delete(chatID int64)
}
