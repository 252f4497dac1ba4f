package engine

import (
	"errors"
	"fmt"
)

type DealPhase int

const (
	PhaseAwaitingCut DealPhase = iota
	PhaseNegotiating
	PhasePlaying
	PhaseCompleted
)

func (p DealPhase) String() string {
	switch p {
	case PhaseAwaitingCut:
		return "AwaitingCut"
	case PhaseNegotiating:
		return "Negotiating"
	case PhasePlaying:
		return "Playing"
	case PhaseCompleted:
		return "Completed"
	default:
		return "?"
	}
}

// TricksPerDeal is the number of tricks in one deal.
const TricksPerDeal = 8

// LastTrickBonus is granted to the team winning the final trick.
const LastTrickBonus = 10

// Deal runs one deal from cut through negotiation and play to its
// scored result.
type Deal struct {
	Phase  DealPhase
	Dealer Seat

	deck  []Card
	Hands map[Seat][]Card

	Negotiation *Negotiation

	// Contract fields are set once the negotiation resolves.
	Mode       Mode
	Announcer  Team
	Multiplier Multiplier

	CompletedTricks []Trick
	Current         *Trick
	Turn            Seat

	CardPoints map[Team]int
	TricksWon  map[Team]int

	scorer *Scorer
	Result *DealResult
}

// NewDeal starts a deal with the given shuffled deck, awaiting the cut.
func NewDeal(dealer Seat, deck []Card, scorer *Scorer) (*Deal, error) {
	if len(deck) != DeckSize {
		return nil, fmt.Errorf("deck has %d cards, want %d", len(deck), DeckSize)
	}
	if scorer == nil {
		scorer = NewScorer()
	}
	return &Deal{
		Phase:      PhaseAwaitingCut,
		Dealer:     dealer,
		deck:       append([]Card(nil), deck...),
		Hands:      map[Seat][]Card{},
		CardPoints: map[Team]int{Team1: 0, Team2: 0},
		TricksWon:  map[Team]int{Team1: 0, Team2: 0},
		scorer:     scorer,
	}, nil
}

// CutSeat is the seat asked to cut the deck, to the dealer's right.
func (d *Deal) CutSeat() Seat {
	return d.Dealer.Previous()
}

// CutDeck applies the cut, performs the five-card distribution in two
// rounds of 3 and 2, and opens the negotiation.
func (d *Deal) CutDeck(position int, fromTop bool) error {
	if d.Phase != PhaseAwaitingCut {
		return fmt.Errorf("cannot cut in phase %s", d.Phase)
	}

	cut, err := Cut(d.deck, position, fromTop)
	if err != nil {
		return err
	}
	d.deck = cut

	d.dealRound(3)
	d.dealRound(2)

	d.Negotiation = NewNegotiation(d.Dealer)
	d.Phase = PhaseNegotiating
	return nil
}

func (d *Deal) dealRound(count int) {
	for _, seat := range PlayOrder(d.Dealer) {
		d.Hands[seat] = append(d.Hands[seat], d.deck[:count]...)
		d.deck = d.deck[count:]
	}
}

// ApplyNegotiation applies one bidding action. When the negotiation
// completes it resolves the contract, deals the remaining three cards
// to each seat and moves to the playing phase.
func (d *Deal) ApplyNegotiation(a NegotiationAction) error {
	if d.Phase != PhaseNegotiating {
		return fmt.Errorf("cannot negotiate in phase %s", d.Phase)
	}
	if err := d.Negotiation.Apply(a); err != nil {
		return err
	}
	if !d.Negotiation.Complete {
		return nil
	}

	mode, team, mult, err := d.Negotiation.Resolve()
	if err != nil {
		return err
	}
	d.Mode = mode
	d.Announcer = team
	d.Multiplier = mult

	d.dealRound(3)

	d.Current = &Trick{}
	d.Turn = d.Dealer.Next()
	d.Phase = PhasePlaying
	return nil
}

// ValidPlays returns the legal cards for the seat currently on turn.
func (d *Deal) ValidPlays() []Card {
	if d.Phase != PhasePlaying {
		return nil
	}
	return ValidPlays(d.Turn, d.Hands[d.Turn], d.Current, d.Mode)
}

// PlayCard plays a card for the seat on turn, completing the trick and
// the deal as they fill up.
func (d *Deal) PlayCard(seat Seat, card Card) error {
	if d.Phase != PhasePlaying {
		return fmt.Errorf("cannot play cards in phase %s", d.Phase)
	}
	if seat != d.Turn {
		return errors.New("not this seat's turn")
	}
	if !d.hasCard(seat, card) {
		return fmt.Errorf("%s does not hold %s", seat, card)
	}
	if !IsValidPlay(seat, d.Hands[seat], card, d.Current, d.Mode) {
		return fmt.Errorf("%s is not a legal play", card)
	}

	d.removeCard(seat, card)
	d.Current.Play(seat, card)

	if !d.Current.IsComplete() {
		d.Turn = d.Turn.Next()
		return nil
	}
	return d.completeTrick()
}

func (d *Deal) completeTrick() error {
	winning, err := d.Current.Winning(d.Mode)
	if err != nil {
		return err
	}
	points := d.Current.Points(d.Mode)
	if len(d.CompletedTricks) == TricksPerDeal-1 {
		points += LastTrickBonus
	}

	team := winning.Seat.Team()
	d.CardPoints[team] += points
	d.TricksWon[team]++
	d.CompletedTricks = append(d.CompletedTricks, *d.Current)

	if len(d.CompletedTricks) < TricksPerDeal {
		d.Current = &Trick{}
		d.Turn = winning.Seat
		return nil
	}

	d.Current = nil
	d.Phase = PhaseCompleted

	sweeper, sweep := d.sweepingTeam()
	res := d.scorer.Score(d.Mode, d.Multiplier, d.Announcer, d.CardPoints, sweep, sweeper)
	d.Result = &res
	return nil
}

func (d *Deal) sweepingTeam() (Team, bool) {
	for _, team := range []Team{Team1, Team2} {
		if d.TricksWon[team] == TricksPerDeal {
			return team, true
		}
	}
	return 0, false
}

func (d *Deal) hasCard(seat Seat, card Card) bool {
	for _, c := range d.Hands[seat] {
		if c == card {
			return true
		}
	}
	return false
}

func (d *Deal) removeCard(seat Seat, card Card) {
	hand := d.Hands[seat]
	for i, c := range hand {
		if c == card {
			d.Hands[seat] = append(hand[:i], hand[i+1:]...)
			return
		}
	}
}
