package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"belote/internal/engine"
)

// DefaultFailureLimit is the number of consecutive faults after which a
// wrapped agent is never consulted again for the match.
const DefaultFailureLimit = 3

// Resilient wraps an automated agent so its failures never take down a
// session. Errors, panics, and out-of-set choices each count as a
// fault and are replaced by the deterministic fallback; at the failure
// limit the inner agent is permanently bypassed.
type Resilient struct {
	inner Agent
	seat  engine.Seat
	limit int
	log   *zap.Logger

	consecutive int
	disabled    bool
}

func NewResilient(inner Agent, seat engine.Seat, limit int, log *zap.Logger) *Resilient {
	if limit <= 0 {
		limit = DefaultFailureLimit
	}
	return &Resilient{inner: inner, seat: seat, limit: limit, log: log}
}

// Disabled reports whether the inner agent has been permanently
// bypassed.
func (r *Resilient) Disabled() bool {
	return r.disabled
}

func (r *Resilient) fault(op string, cause error) {
	r.consecutive++
	r.log.Warn("agent fault, using fallback",
		zap.Stringer("seat", r.seat),
		zap.String("op", op),
		zap.Int("consecutive", r.consecutive),
		zap.Error(cause))
	if r.consecutive >= r.limit && !r.disabled {
		r.disabled = true
		r.log.Warn("agent failure limit reached, bypassing permanently",
			zap.Stringer("seat", r.seat))
	}
}

func catch(f func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("agent panicked: %v", rec)
		}
	}()
	return f()
}

func (r *Resilient) ChooseCut(ctx context.Context, deckSize int, match *engine.Match) (CutChoice, error) {
	if r.disabled {
		return FallbackCut(), nil
	}
	var choice CutChoice
	err := catch(func() error {
		var err error
		choice, err = r.inner.ChooseCut(ctx, deckSize, match)
		return err
	})
	if err == nil && (choice.Position < engine.MinCutPosition || choice.Position > engine.MaxCutPosition) {
		err = fmt.Errorf("cut position %d out of range", choice.Position)
	}
	if err != nil {
		r.fault("ChooseCut", err)
		return FallbackCut(), nil
	}
	r.consecutive = 0
	return choice, nil
}

func (r *Resilient) ChooseNegotiationAction(ctx context.Context, valid []engine.NegotiationAction, match *engine.Match) (engine.NegotiationAction, error) {
	if r.disabled {
		return FallbackNegotiation(valid), nil
	}
	var action engine.NegotiationAction
	err := catch(func() error {
		var err error
		action, err = r.inner.ChooseNegotiationAction(ctx, valid, match)
		return err
	})
	if err == nil && !containsAction(valid, action) {
		err = fmt.Errorf("%s %s is not a valid action", action.Type, action.Mode)
	}
	if err != nil {
		r.fault("ChooseNegotiationAction", err)
		return FallbackNegotiation(valid), nil
	}
	r.consecutive = 0
	return action, nil
}

func (r *Resilient) ChooseCard(ctx context.Context, valid []engine.Card, match *engine.Match) (engine.Card, error) {
	if r.disabled {
		return FallbackCard(valid), nil
	}
	var card engine.Card
	err := catch(func() error {
		var err error
		card, err = r.inner.ChooseCard(ctx, valid, match)
		return err
	})
	if err == nil && !containsCard(valid, card) {
		err = fmt.Errorf("%s is not a legal play", card)
	}
	if err != nil {
		r.fault("ChooseCard", err)
		return FallbackCard(valid), nil
	}
	r.consecutive = 0
	return card, nil
}

func (r *Resilient) ConfirmContinue(ctx context.Context, match *engine.Match) error {
	if r.disabled {
		return nil
	}
	err := catch(func() error {
		return r.inner.ConfirmContinue(ctx, match)
	})
	if err != nil {
		r.fault("ConfirmContinue", err)
		return nil
	}
	r.consecutive = 0
	return nil
}

// Observer delegation: hooks are best-effort and their failures are
// swallowed without counting toward the breaker.

func (r *Resilient) observer() (Observer, bool) {
	if r.disabled {
		return nil, false
	}
	obs, ok := r.inner.(Observer)
	return obs, ok
}

func (r *Resilient) DealStarted(match *engine.Match) {
	if obs, ok := r.observer(); ok {
		_ = catch(func() error { obs.DealStarted(match); return nil })
	}
}

func (r *Resilient) CardPlayed(seat engine.Seat, card engine.Card, match *engine.Match) {
	if obs, ok := r.observer(); ok {
		_ = catch(func() error { obs.CardPlayed(seat, card, match); return nil })
	}
}

func (r *Resilient) TrickCompleted(winner engine.Seat, match *engine.Match) {
	if obs, ok := r.observer(); ok {
		_ = catch(func() error { obs.TrickCompleted(winner, match); return nil })
	}
}

func (r *Resilient) DealEnded(result engine.DealResult, match *engine.Match) {
	if obs, ok := r.observer(); ok {
		_ = catch(func() error { obs.DealEnded(result, match); return nil })
	}
}

func (r *Resilient) MatchEnded(winner engine.Team, match *engine.Match) {
	if obs, ok := r.observer(); ok {
		_ = catch(func() error { obs.MatchEnded(winner, match); return nil })
	}
}

func containsAction(valid []engine.NegotiationAction, a engine.NegotiationAction) bool {
	for _, v := range valid {
		if v.Equal(a) {
			return true
		}
	}
	return false
}

func containsCard(valid []engine.Card, c engine.Card) bool {
	for _, v := range valid {
		if v == c {
			return true
		}
	}
	return false
}
