package session

import (
	"context"
	"errors"

	"belote/internal/engine"
)

// Human is a decision source answered over a transport. Each choose
// call posts a pending decision to the session's inbox and waits for a
// submission. A timed-out request falls back deterministically instead
// of failing, so an unresponsive player never stalls the table.
type Human struct {
	seat  engine.Seat
	inbox *Inbox
}

func NewHuman(seat engine.Seat, inbox *Inbox) *Human {
	return &Human{seat: seat, inbox: inbox}
}

func (h *Human) ask(ctx context.Context, p *Pending) (result, error) {
	h.inbox.post(p)
	defer h.inbox.clear(p)
	return p.wait(ctx)
}

func (h *Human) ChooseCut(ctx context.Context, deckSize int, match *engine.Match) (CutChoice, error) {
	r, err := h.ask(ctx, newPending(PendingCut, h.seat))
	if errors.Is(err, context.DeadlineExceeded) {
		return FallbackCut(), nil
	}
	if err != nil {
		return CutChoice{}, err
	}
	return r.cut, nil
}

func (h *Human) ChooseNegotiationAction(ctx context.Context, valid []engine.NegotiationAction, match *engine.Match) (engine.NegotiationAction, error) {
	p := newPending(PendingNegotiation, h.seat)
	p.ValidActions = valid
	r, err := h.ask(ctx, p)
	if errors.Is(err, context.DeadlineExceeded) {
		return FallbackNegotiation(valid), nil
	}
	if err != nil {
		return engine.NegotiationAction{}, err
	}
	return r.action, nil
}

func (h *Human) ChooseCard(ctx context.Context, valid []engine.Card, match *engine.Match) (engine.Card, error) {
	p := newPending(PendingCard, h.seat)
	p.ValidCards = valid
	r, err := h.ask(ctx, p)
	if errors.Is(err, context.DeadlineExceeded) {
		return FallbackCard(valid), nil
	}
	if err != nil {
		return engine.Card{}, err
	}
	return r.card, nil
}

func (h *Human) ConfirmContinue(ctx context.Context, match *engine.Match) error {
	_, err := h.ask(ctx, newPending(PendingContinue, h.seat))
	if errors.Is(err, context.DeadlineExceeded) {
		// Auto-continue on timeout.
		return nil
	}
	return err
}
