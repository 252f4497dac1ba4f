package remote

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"belote/internal/engine"
	"belote/internal/session"
)

// Agent bridges one seat to a remote bot server. It implements the
// session decision interface and forwards the observation hooks; wrap
// it in session.NewResilient so a misbehaving server degrades to
// fallbacks instead of stalling the match.
type Agent struct {
	client    *Client
	seat      engine.Seat
	sessionID string
	log       *zap.Logger
}

// Dial creates the remote session for a seat.
func Dial(ctx context.Context, client *Client, seat engine.Seat, matchID string, log *zap.Logger) (*Agent, error) {
	if log == nil {
		log = zap.NewNop()
	}
	id, err := client.CreateSession(ctx, wireSeats[seat], matchID)
	if err != nil {
		return nil, errors.Wrap(err, "create remote session")
	}
	log.Info("remote bot session created",
		zap.Stringer("seat", seat), zap.String("remoteSession", id))
	return &Agent{client: client, seat: seat, sessionID: id, log: log}, nil
}

// Close tears down the remote session, best-effort.
func (a *Agent) Close(ctx context.Context) {
	a.client.DestroySession(ctx, a.sessionID)
}

func (a *Agent) ChooseCut(ctx context.Context, deckSize int, match *engine.Match) (session.CutChoice, error) {
	res, err := a.client.ChooseCut(ctx, a.sessionID, ChooseCutContext{
		DeckSize:   deckSize,
		MatchState: mapMatchState(match),
	})
	if err != nil {
		return session.CutChoice{}, err
	}
	return session.CutChoice{Position: res.Position, FromTop: res.FromTop}, nil
}

func (a *Agent) ChooseNegotiationAction(ctx context.Context, valid []engine.NegotiationAction, match *engine.Match) (engine.NegotiationAction, error) {
	deal := match.CurrentDeal
	if deal == nil || deal.Negotiation == nil {
		return engine.NegotiationAction{}, errors.New("no negotiation in progress")
	}

	choices := make([]NegotiationActionChoice, len(valid))
	for i, action := range valid {
		choices[i] = mapActionChoice(action)
	}

	res, err := a.client.ChooseNegotiationAction(ctx, a.sessionID, ChooseNegotiationActionContext{
		Hand:             mapCards(deal.Hands[a.seat]),
		NegotiationState: mapNegotiationState(deal.Negotiation),
		MatchState:       mapMatchState(match),
		ValidActions:     choices,
	})
	if err != nil {
		return engine.NegotiationAction{}, err
	}
	return parseActionChoice(res, a.seat)
}

func (a *Agent) ChooseCard(ctx context.Context, valid []engine.Card, match *engine.Match) (engine.Card, error) {
	deal := match.CurrentDeal
	if deal == nil {
		return engine.Card{}, errors.New("no deal in progress")
	}

	res, err := a.client.ChooseCard(ctx, a.sessionID, ChooseCardContext{
		Hand:       mapCards(deal.Hands[a.seat]),
		HandState:  mapHandState(deal),
		MatchState: mapMatchState(match),
		ValidPlays: mapCards(valid),
	})
	if err != nil {
		return engine.Card{}, err
	}
	return parseCard(res)
}

// ConfirmContinue has no remote counterpart; bots always continue.
func (a *Agent) ConfirmContinue(ctx context.Context, match *engine.Match) error {
	return nil
}

func (a *Agent) notifyErr(hook string, err error) {
	if err != nil {
		a.log.Warn("remote notification failed",
			zap.Stringer("seat", a.seat), zap.String("hook", hook), zap.Error(err))
	}
}

func (a *Agent) DealStarted(match *engine.Match) {
	a.notifyErr("deal-started", a.client.NotifyDealStarted(context.Background(), a.sessionID, DealStartedContext{
		MatchState: mapMatchState(match),
	}))
}

func (a *Agent) CardPlayed(seat engine.Seat, card engine.Card, match *engine.Match) {
	if match.CurrentDeal == nil {
		return
	}
	a.notifyErr("card-played", a.client.NotifyCardPlayed(context.Background(), a.sessionID, CardPlayedContext{
		Player:     wireSeats[seat],
		Card:       mapCard(card),
		HandState:  mapHandState(match.CurrentDeal),
		MatchState: mapMatchState(match),
	}))
}

func (a *Agent) TrickCompleted(winner engine.Seat, match *engine.Match) {
	deal := match.CurrentDeal
	if deal == nil || len(deal.CompletedTricks) == 0 {
		return
	}
	last := &deal.CompletedTricks[len(deal.CompletedTricks)-1]
	a.notifyErr("trick-completed", a.client.NotifyTrickCompleted(context.Background(), a.sessionID, TrickCompletedContext{
		CompletedTrick: mapTrick(last, trickLeader(last), len(deal.CompletedTricks)),
		Winner:         wireSeats[winner],
		HandState:      mapHandState(deal),
		MatchState:     mapMatchState(match),
	}))
}

func (a *Agent) DealEnded(result engine.DealResult, match *engine.Match) {
	// The deal is already settled here, so the hand state is a summary
	// rebuilt from the result.
	hs := HandState{
		GameMode:        wireModes[result.Mode],
		Team1CardPoints: result.CardPoints[engine.Team1],
		Team2CardPoints: result.CardPoints[engine.Team2],
		CompletedTricks: []TrickState{},
	}
	a.notifyErr("deal-ended", a.client.NotifyDealEnded(context.Background(), a.sessionID, DealEndedContext{
		Result:     mapDealResult(result),
		HandState:  hs,
		MatchState: mapMatchState(match),
	}))
}

func (a *Agent) MatchEnded(winner engine.Team, match *engine.Match) {
	a.notifyErr("match-ended", a.client.NotifyMatchEnded(context.Background(), a.sessionID, MatchEndedContext{
		MatchState: mapMatchState(match),
	}))
}
