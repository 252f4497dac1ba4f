package session

import (
	"context"
	"errors"
	"sync"

	"belote/internal/engine"
)

// ErrAborted resolves an outstanding pending decision when its session
// is cancelled.
var ErrAborted = errors.New("pending decision aborted")

type PendingKind int

const (
	PendingCut PendingKind = iota
	PendingNegotiation
	PendingCard
	PendingContinue
)

func (k PendingKind) String() string {
	switch k {
	case PendingCut:
		return "Cut"
	case PendingNegotiation:
		return "Negotiation"
	case PendingCard:
		return "Card"
	case PendingContinue:
		return "Continue"
	default:
		return "?"
	}
}

// Pending is a single outstanding decision request for one seat. It
// resolves exactly once: the first of a submission, an abort, or the
// waiter's context expiring wins.
type Pending struct {
	Kind PendingKind
	Seat engine.Seat

	// Valid choices for submission-side validation. Only the field
	// matching Kind is populated.
	ValidActions []engine.NegotiationAction
	ValidCards   []engine.Card

	once sync.Once
	ch   chan result
}

type result struct {
	cut    CutChoice
	action engine.NegotiationAction
	card   engine.Card
	err    error
}

func newPending(kind PendingKind, seat engine.Seat) *Pending {
	return &Pending{Kind: kind, Seat: seat, ch: make(chan result, 1)}
}

func (p *Pending) resolve(r result) bool {
	ok := false
	p.once.Do(func() {
		p.ch <- r
		ok = true
	})
	return ok
}

// ResolveCut answers a pending cut request.
func (p *Pending) ResolveCut(c CutChoice) bool {
	return p.resolve(result{cut: c})
}

// ResolveAction answers a pending negotiation request.
func (p *Pending) ResolveAction(a engine.NegotiationAction) bool {
	return p.resolve(result{action: a})
}

// ResolveCard answers a pending card request.
func (p *Pending) ResolveCard(c engine.Card) bool {
	return p.resolve(result{card: c})
}

// ResolveContinue answers a pending continue confirmation.
func (p *Pending) ResolveContinue() bool {
	return p.resolve(result{})
}

// Abort resolves the pending decision with an error.
func (p *Pending) Abort(err error) bool {
	return p.resolve(result{err: err})
}

// wait blocks until the pending decision resolves or the context ends.
// A context expiry marks the pending resolved so a late submission is
// rejected rather than consumed.
func (p *Pending) wait(ctx context.Context) (result, error) {
	select {
	case r := <-p.ch:
		return r, r.err
	case <-ctx.Done():
		p.Abort(ctx.Err())
		// Drain in case a submission won the race with the abort.
		r := <-p.ch
		return r, r.err
	}
}
