package engine

import "errors"

// PlayedCard is one card laid into the current trick.
type PlayedCard struct {
	Seat Seat
	Card Card
}

// Trick is the sequence of up to four cards played in turn order.
type Trick struct {
	Cards []PlayedCard
}

func (t *Trick) IsEmpty() bool {
	return len(t.Cards) == 0
}

func (t *Trick) IsComplete() bool {
	return len(t.Cards) == len(Seats())
}

// LeadSuit returns the suit of the first card. Only valid on a
// non-empty trick.
func (t *Trick) LeadSuit() Suit {
	return t.Cards[0].Card.Suit
}

// Winning returns the play currently holding the trick.
func (t *Trick) Winning(mode Mode) (PlayedCard, error) {
	if t.IsEmpty() {
		return PlayedCard{}, errors.New("trick has no cards")
	}
	best := t.Cards[0]
	for _, pc := range t.Cards[1:] {
		if Beats(pc.Card, best.Card, t.LeadSuit(), mode) {
			best = pc
		}
	}
	return best, nil
}

// HighestTrump returns the strongest trump played so far in a Colour
// mode, if any.
func (t *Trick) HighestTrump(mode Mode) (Card, bool) {
	trump, ok := mode.TrumpSuit()
	if !ok {
		return Card{}, false
	}
	var best Card
	found := false
	for _, pc := range t.Cards {
		if pc.Card.Suit != trump {
			continue
		}
		if !found || Strength(pc.Card, mode) > Strength(best, mode) {
			best = pc.Card
			found = true
		}
	}
	return best, found
}

// ContainsTrump reports whether any trump has been played into the
// trick in a Colour mode.
func (t *Trick) ContainsTrump(mode Mode) bool {
	_, ok := t.HighestTrump(mode)
	return ok
}

// Points sums the card points in the trick for the given mode.
func (t *Trick) Points(mode Mode) int {
	total := 0
	for _, pc := range t.Cards {
		total += PointValue(pc.Card, mode)
	}
	return total
}

func (t *Trick) Play(seat Seat, card Card) {
	t.Cards = append(t.Cards, PlayedCard{Seat: seat, Card: card})
}
