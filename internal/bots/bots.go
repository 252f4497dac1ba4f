package bots

import (
	"context"
	"math/rand"

	"belote/internal/engine"
	"belote/internal/session"
)

// EasyBot answers every request with a random valid choice.
type EasyBot struct {
	Seat engine.Seat
	RNG  *rand.Rand
}

func NewEasy(seat engine.Seat, seed int64) *EasyBot {
	return &EasyBot{Seat: seat, RNG: rand.New(rand.NewSource(seed))}
}

func (b *EasyBot) ChooseCut(ctx context.Context, deckSize int, match *engine.Match) (session.CutChoice, error) {
	span := engine.MaxCutPosition - engine.MinCutPosition + 1
	return session.CutChoice{
		Position: engine.MinCutPosition + b.RNG.Intn(span),
		FromTop:  b.RNG.Intn(2) == 0,
	}, nil
}

func (b *EasyBot) ChooseNegotiationAction(ctx context.Context, valid []engine.NegotiationAction, match *engine.Match) (engine.NegotiationAction, error) {
	return valid[b.RNG.Intn(len(valid))], nil
}

func (b *EasyBot) ChooseCard(ctx context.Context, valid []engine.Card, match *engine.Match) (engine.Card, error) {
	return valid[b.RNG.Intn(len(valid))], nil
}

func (b *EasyBot) ConfirmContinue(ctx context.Context, match *engine.Match) error {
	return nil
}

// NormalBot bids from a hand estimate and plays to win tricks cheaply.
type NormalBot struct {
	Seat engine.Seat
	RNG  *rand.Rand
}

func NewNormal(seat engine.Seat, seed int64) *NormalBot {
	return &NormalBot{Seat: seat, RNG: rand.New(rand.NewSource(seed))}
}

func (b *NormalBot) ChooseCut(ctx context.Context, deckSize int, match *engine.Match) (session.CutChoice, error) {
	span := engine.MaxCutPosition - engine.MinCutPosition + 1
	return session.CutChoice{Position: engine.MinCutPosition + b.RNG.Intn(span), FromTop: true}, nil
}

func (b *NormalBot) ChooseNegotiationAction(ctx context.Context, valid []engine.NegotiationAction, match *engine.Match) (engine.NegotiationAction, error) {
	hand := currentHand(match, b.Seat)

	// Announce the strongest mode the hand supports, if it is on offer.
	var best engine.NegotiationAction
	bestScore := 0
	hasBest := false
	for _, a := range valid {
		if a.Type != engine.ActAnnounce {
			continue
		}
		score := handEstimate(hand, a.Mode)
		if score >= announceThreshold(a.Mode) && score > bestScore {
			best = a
			bestScore = score
			hasBest = true
		}
	}
	if hasBest {
		return best, nil
	}

	for _, a := range valid {
		if a.Type == engine.ActAccept {
			return a, nil
		}
	}
	return valid[0], nil
}

func (b *NormalBot) ChooseCard(ctx context.Context, valid []engine.Card, match *engine.Match) (engine.Card, error) {
	deal := match.CurrentDeal
	if deal == nil || deal.Current == nil || deal.Current.IsEmpty() {
		return highestPointCard(valid, modeOf(deal)), nil
	}
	mode := deal.Mode

	// Win the trick with the weakest card that can, otherwise shed the
	// cheapest card.
	var cheapest engine.Card
	cheapestStrength := 0
	winnerFound := false
	for _, c := range valid {
		if !winsTrick(deal.Current, b.Seat, c, mode) {
			continue
		}
		if !winnerFound || engine.Strength(c, mode) < cheapestStrength {
			cheapest = c
			cheapestStrength = engine.Strength(c, mode)
			winnerFound = true
		}
	}
	if winnerFound {
		return cheapest, nil
	}
	return lowestPointCard(valid, mode), nil
}

func (b *NormalBot) ConfirmContinue(ctx context.Context, match *engine.Match) error {
	return nil
}

func currentHand(match *engine.Match, seat engine.Seat) []engine.Card {
	if match == nil || match.CurrentDeal == nil {
		return nil
	}
	return match.CurrentDeal.Hands[seat]
}

func modeOf(deal *engine.Deal) engine.Mode {
	if deal == nil {
		return engine.ModeNoTrumps
	}
	return deal.Mode
}

// handEstimate sums what the hand would be worth under the mode, with a
// length bonus for held trumps.
func handEstimate(hand []engine.Card, mode engine.Mode) int {
	score := 0
	trump, hasTrump := mode.TrumpSuit()
	for _, c := range hand {
		score += engine.PointValue(c, mode)
		if hasTrump && c.Suit == trump {
			score += 4
		}
	}
	return score
}

func announceThreshold(mode engine.Mode) int {
	// A five card hand sees roughly a fifth of the deck; require a
	// clearly above-average share before committing the team.
	switch mode {
	case engine.ModeAllTrumps:
		return 60
	case engine.ModeNoTrumps:
		return 35
	default:
		return 45
	}
}

func winsTrick(trick *engine.Trick, seat engine.Seat, card engine.Card, mode engine.Mode) bool {
	probe := trick.Clone()
	probe.Play(seat, card)
	winning, err := probe.Winning(mode)
	if err != nil {
		return false
	}
	return winning.Seat == seat && winning.Card == card
}

func highestPointCard(valid []engine.Card, mode engine.Mode) engine.Card {
	best := valid[0]
	for _, c := range valid[1:] {
		if cardWeight(c, mode) > cardWeight(best, mode) {
			best = c
		}
	}
	return best
}

func lowestPointCard(valid []engine.Card, mode engine.Mode) engine.Card {
	best := valid[0]
	for _, c := range valid[1:] {
		if cardWeight(c, mode) < cardWeight(best, mode) {
			best = c
		}
	}
	return best
}

func cardWeight(c engine.Card, mode engine.Mode) int {
	return engine.PointValue(c, mode)*10 + engine.Strength(c, mode)
}
