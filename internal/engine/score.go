package engine

import "math"

// DealResult captures the outcome of one completed deal.
type DealResult struct {
	Mode       Mode
	Multiplier Multiplier
	Announcer  Team

	CardPoints  map[Team]int
	MatchPoints map[Team]int

	WasSweep     bool
	SweepingTeam Team
	InstantWin   bool
}

// AllTrumpsSplit divides the 26 AllTrumps match points between the
// announcing and defending teams from their raw card points. It returns
// the announcer's and defender's shares before the multiplier.
type AllTrumpsSplit func(announcerPoints, defenderPoints int) (int, int)

// DefaultAllTrumpsSplit rounds each side's card points to the nearest
// ten away from zero, caps the announcer at 20 and floors the defender
// at 6, and awards nothing when the roundings tie.
func DefaultAllTrumpsSplit(announcerPoints, defenderPoints int) (int, int) {
	if announcerPoints < ModeAllTrumps.WinThreshold() {
		return 0, ModeAllTrumps.BaseMatchPoints()
	}

	roundTen := func(p int) int {
		return int(math.Round(float64(p) / 10.0))
	}
	announcer := roundTen(announcerPoints)
	defender := roundTen(defenderPoints)

	if announcer == defender {
		return 0, 0
	}

	if announcer > 20 {
		announcer = 20
	}
	if defender < 6 {
		defender = 6
	}
	if total := ModeAllTrumps.BaseMatchPoints(); announcer+defender > total {
		defender = total - announcer
	}
	return announcer, defender
}

// Scorer converts the card points of a finished deal into match points.
type Scorer struct {
	Split AllTrumpsSplit
}

func NewScorer() *Scorer {
	return &Scorer{Split: DefaultAllTrumpsSplit}
}

// Score computes the deal result. cardPoints must include the last
// trick bonus; sweep is true when one team took every trick, with
// sweeper naming it.
func (s *Scorer) Score(mode Mode, mult Multiplier, announcer Team, cardPoints map[Team]int, sweep bool, sweeper Team) DealResult {
	res := DealResult{
		Mode:       mode,
		Multiplier: mult,
		Announcer:  announcer,
		CardPoints: map[Team]int{
			Team1: cardPoints[Team1],
			Team2: cardPoints[Team2],
		},
		MatchPoints: map[Team]int{Team1: 0, Team2: 0},
	}

	if sweep {
		res.WasSweep = true
		res.SweepingTeam = sweeper
		if mode.IsColour() {
			res.InstantWin = true
			return res
		}
		res.MatchPoints[sweeper] = mode.SweepBonus() * mult.Factor()
		return res
	}

	announcerPts := cardPoints[announcer]
	defenderPts := cardPoints[announcer.Opponent()]

	var announcerMatch, defenderMatch int
	if mode == ModeAllTrumps {
		announcerMatch, defenderMatch = s.Split(announcerPts, defenderPts)
	} else {
		switch {
		case announcerPts == defenderPts:
		case announcerPts >= mode.WinThreshold():
			announcerMatch = mode.BaseMatchPoints()
		default:
			defenderMatch = mode.BaseMatchPoints()
		}
	}

	res.MatchPoints[announcer] = announcerMatch * mult.Factor()
	res.MatchPoints[announcer.Opponent()] = defenderMatch * mult.Factor()
	return res
}
