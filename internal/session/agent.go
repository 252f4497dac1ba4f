package session

import (
	"context"

	"belote/internal/engine"
)

// CutChoice is a cut position and direction.
type CutChoice struct {
	Position int
	FromTop  bool
}

// Agent is a decision source for one seat. Choose methods receive the
// valid choices and a snapshot of the match; they must not retain the
// snapshot past the call. Blocking calls honour the context deadline.
type Agent interface {
	ChooseCut(ctx context.Context, deckSize int, match *engine.Match) (CutChoice, error)
	ChooseNegotiationAction(ctx context.Context, valid []engine.NegotiationAction, match *engine.Match) (engine.NegotiationAction, error)
	ChooseCard(ctx context.Context, valid []engine.Card, match *engine.Match) (engine.Card, error)
	ConfirmContinue(ctx context.Context, match *engine.Match) error
}

// Observer receives one-way observation hooks. Implementations must not
// block the caller; the session delivers through a serialized per-seat
// notifier and drops nothing on a healthy consumer.
type Observer interface {
	DealStarted(match *engine.Match)
	CardPlayed(seat engine.Seat, card engine.Card, match *engine.Match)
	TrickCompleted(winner engine.Seat, match *engine.Match)
	DealEnded(result engine.DealResult, match *engine.Match)
	MatchEnded(winner engine.Team, match *engine.Match)
}
