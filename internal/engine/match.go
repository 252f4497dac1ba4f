package engine

import "errors"

// DefaultTargetScore is the match points needed to win a match.
const DefaultTargetScore = 150

// TargetExtension is added to the target when both teams reach it in
// the same deal.
const TargetExtension = 100

// Match accumulates deal results until one team wins.
type Match struct {
	TargetScore int
	MatchPoints map[Team]int

	Dealer      Seat
	CurrentDeal *Deal

	CompletedDeals []DealResult

	Complete bool
	Winner   Team

	// ColourSweepPoints, when non-zero, converts a Colour sweep from an
	// instant match win into that many base match points.
	ColourSweepPoints int

	scorer *Scorer
}

// NewMatch creates a match with the given first dealer. A targetScore
// of 0 uses the default.
func NewMatch(firstDealer Seat, targetScore int) *Match {
	if targetScore <= 0 {
		targetScore = DefaultTargetScore
	}
	return &Match{
		TargetScore: targetScore,
		MatchPoints: map[Team]int{Team1: 0, Team2: 0},
		Dealer:      firstDealer,
		scorer:      NewScorer(),
	}
}

// StartDeal opens a new deal with the given shuffled deck.
func (m *Match) StartDeal(deck []Card) (*Deal, error) {
	if m.Complete {
		return nil, errors.New("match is already complete")
	}
	if m.CurrentDeal != nil {
		return nil, errors.New("a deal is already in progress")
	}

	deal, err := NewDeal(m.Dealer, deck, m.scorer)
	if err != nil {
		return nil, err
	}
	m.CurrentDeal = deal
	return deal, nil
}

// FinishDeal folds a completed deal into the match totals, rotating
// the dealer for the next deal.
func (m *Match) FinishDeal() error {
	deal := m.CurrentDeal
	if deal == nil {
		return errors.New("no deal in progress")
	}
	if deal.Phase != PhaseCompleted || deal.Result == nil {
		return errors.New("deal is not complete")
	}

	result := *deal.Result
	m.CompletedDeals = append(m.CompletedDeals, result)
	m.CurrentDeal = nil
	m.Dealer = m.Dealer.Next()

	if result.InstantWin {
		if m.ColourSweepPoints > 0 {
			m.MatchPoints[result.SweepingTeam] += m.ColourSweepPoints * result.Multiplier.Factor()
			m.settle()
			return nil
		}
		m.Complete = true
		m.Winner = result.SweepingTeam
		return nil
	}

	m.MatchPoints[Team1] += result.MatchPoints[Team1]
	m.MatchPoints[Team2] += result.MatchPoints[Team2]
	m.settle()
	return nil
}

// settle checks the totals against the target. A winner must both
// reach the target and strictly exceed the opponent; when the teams
// deny each other the target moves up.
func (m *Match) settle() {
	t1, t2 := m.MatchPoints[Team1], m.MatchPoints[Team2]
	reached1 := t1 >= m.TargetScore
	reached2 := t2 >= m.TargetScore

	switch {
	case reached1 && reached2:
		m.TargetScore += TargetExtension
	case reached1 && t1 > t2:
		m.Complete = true
		m.Winner = Team1
	case reached2 && t2 > t1:
		m.Complete = true
		m.Winner = Team2
	}
}
