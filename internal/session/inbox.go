package session

import (
	"fmt"
	"sync"

	"belote/internal/engine"
)

// Inbox holds the single outstanding pending decision of a session and
// validates submissions against it. Human-facing agents post their
// requests here; transport layers answer through the Submit methods.
type Inbox struct {
	mu      sync.Mutex
	pending *Pending
}

func NewInbox() *Inbox {
	return &Inbox{}
}

func (in *Inbox) post(p *Pending) {
	in.mu.Lock()
	in.pending = p
	in.mu.Unlock()
}

func (in *Inbox) clear(p *Pending) {
	in.mu.Lock()
	if in.pending == p {
		in.pending = nil
	}
	in.mu.Unlock()
}

// Current returns the outstanding pending decision, if any.
func (in *Inbox) Current() *Pending {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.pending
}

func (in *Inbox) take(kind PendingKind, seat engine.Seat) (*Pending, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.pending == nil {
		return nil, fmt.Errorf("no pending decision for %s", seat)
	}
	if in.pending.Seat != seat {
		return nil, fmt.Errorf("pending decision belongs to %s", in.pending.Seat)
	}
	if in.pending.Kind != kind {
		return nil, fmt.Errorf("pending decision is %s, not %s", in.pending.Kind, kind)
	}
	return in.pending, nil
}

// SubmitCut answers an outstanding cut request. An out-of-range cut is
// rejected and the request stays open.
func (in *Inbox) SubmitCut(seat engine.Seat, position int, fromTop bool) error {
	p, err := in.take(PendingCut, seat)
	if err != nil {
		return err
	}
	if position < engine.MinCutPosition || position > engine.MaxCutPosition {
		return fmt.Errorf("cut position %d out of range", position)
	}
	if !p.ResolveCut(CutChoice{Position: position, FromTop: fromTop}) {
		return fmt.Errorf("decision already resolved")
	}
	return nil
}

// SubmitNegotiation answers an outstanding negotiation request. Actions
// outside the valid set are rejected and the request stays open.
func (in *Inbox) SubmitNegotiation(seat engine.Seat, action engine.NegotiationAction) error {
	p, err := in.take(PendingNegotiation, seat)
	if err != nil {
		return err
	}
	valid := false
	for _, a := range p.ValidActions {
		if a.Equal(action) {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%s %s is not a valid action", action.Type, action.Mode)
	}
	if !p.ResolveAction(action) {
		return fmt.Errorf("decision already resolved")
	}
	return nil
}

// SubmitCard answers an outstanding card request. Illegal cards are
// rejected and the request stays open.
func (in *Inbox) SubmitCard(seat engine.Seat, card engine.Card) error {
	p, err := in.take(PendingCard, seat)
	if err != nil {
		return err
	}
	valid := false
	for _, c := range p.ValidCards {
		if c == card {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%s is not a legal play", card)
	}
	if !p.ResolveCard(card) {
		return fmt.Errorf("decision already resolved")
	}
	return nil
}

// SubmitContinue answers an outstanding continue confirmation.
func (in *Inbox) SubmitContinue(seat engine.Seat) error {
	p, err := in.take(PendingContinue, seat)
	if err != nil {
		return err
	}
	if !p.ResolveContinue() {
		return fmt.Errorf("decision already resolved")
	}
	return nil
}
