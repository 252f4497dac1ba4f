package engine

// IsColour reports whether this mode has a single trump suit.
func (m Mode) IsColour() bool {
	return m >= ModeColourClubs && m <= ModeColourSpades
}

// TrumpSuit returns the trump suit for Colour modes. The second return
// is false for NoTrumps and AllTrumps.
func (m Mode) TrumpSuit() (Suit, bool) {
	switch m {
	case ModeColourClubs:
		return SuitClubs, true
	case ModeColourDiamonds:
		return SuitDiamonds, true
	case ModeColourHearts:
		return SuitHearts, true
	case ModeColourSpades:
		return SuitSpades, true
	default:
		return 0, false
	}
}

// HigherThan reports whether m ranks strictly above other in the bidding
// hierarchy.
func (m Mode) HigherThan(other Mode) bool {
	return m > other
}

// WinThreshold is the minimum card points the announcing team needs to
// win the deal (inclusive).
func (m Mode) WinThreshold() int {
	switch m {
	case ModeAllTrumps:
		return 129
	case ModeNoTrumps:
		return 65
	default:
		return 82
	}
}

// TotalPoints is the total card points available in this mode,
// including the last trick bonus.
func (m Mode) TotalPoints() int {
	switch m {
	case ModeAllTrumps:
		return 258 // 62*4 + 10
	case ModeNoTrumps:
		return 130 // 30*4 + 10
	default:
		return 162 // 62 + 30*3 + 10
	}
}

// BaseMatchPoints is the match-point award for the mode before
// multipliers. Clubs count double among the Colour modes.
func (m Mode) BaseMatchPoints() int {
	switch m {
	case ModeAllTrumps:
		return 26
	case ModeNoTrumps:
		return 52
	case ModeColourClubs:
		return 32
	default:
		return 16
	}
}

// SweepBonus is the match-point award when one team takes all 8 tricks.
// A Colour sweep is an instant match win instead of a point bonus.
func (m Mode) SweepBonus() int {
	switch m {
	case ModeAllTrumps:
		return 35
	case ModeNoTrumps:
		return 90
	default:
		return 0
	}
}

// AcceptAutoDoubles reports whether an opponent accepting this mode
// implicitly doubles it. Applies to NoTrumps and ColourClubs.
func (m Mode) AcceptAutoDoubles() bool {
	return m == ModeNoTrumps || m == ModeColourClubs
}

// CanRedouble reports whether this mode may be redoubled. NoTrumps and
// ColourClubs cannot: they are already implicitly doubled on accept.
func (m Mode) CanRedouble() bool {
	return !m.AcceptAutoDoubles()
}

// isTrumpRanked reports whether the card's suit uses trump ranking and
// point values under the given mode.
func isTrumpRanked(c Card, m Mode) bool {
	if m == ModeAllTrumps {
		return true
	}
	trump, ok := m.TrumpSuit()
	return ok && c.Suit == trump
}

// Strength returns the comparative strength of a card under a mode.
// Trump ranking: J > 9 > A > 10 > K > Q > 8 > 7.
// Plain ranking:  A > 10 > K > Q > J > 9 > 8 > 7.
func Strength(c Card, m Mode) int {
	if isTrumpRanked(c, m) {
		switch c.Rank {
		case RankJ:
			return 8
		case Rank9:
			return 7
		case RankA:
			return 6
		case Rank10:
			return 5
		case RankK:
			return 4
		case RankQ:
			return 3
		case Rank8:
			return 2
		default:
			return 1
		}
	}
	switch c.Rank {
	case RankA:
		return 8
	case Rank10:
		return 7
	case RankK:
		return 6
	case RankQ:
		return 5
	case RankJ:
		return 4
	case Rank9:
		return 3
	case Rank8:
		return 2
	default:
		return 1
	}
}

// PointValue returns the card points a card is worth under a mode.
// Trump values: J=20, 9=14, A=11, 10=10, K=4, Q=3.
// Plain values:  A=11, 10=10, K=4, Q=3, J=2.
func PointValue(c Card, m Mode) int {
	if isTrumpRanked(c, m) {
		switch c.Rank {
		case RankJ:
			return 20
		case Rank9:
			return 14
		case RankA:
			return 11
		case Rank10:
			return 10
		case RankK:
			return 4
		case RankQ:
			return 3
		default:
			return 0
		}
	}
	switch c.Rank {
	case RankA:
		return 11
	case Rank10:
		return 10
	case RankK:
		return 4
	case RankQ:
		return 3
	case RankJ:
		return 2
	default:
		return 0
	}
}

// Beats reports whether challenger overtakes incumbent given the trick's
// lead suit and the active mode. A trump always beats a non-trump; within
// the same suit strength decides; a card that is neither trump nor lead
// suit never takes the trick.
func Beats(challenger, incumbent Card, lead Suit, m Mode) bool {
	if trump, ok := m.TrumpSuit(); ok {
		if challenger.Suit == trump && incumbent.Suit != trump {
			return true
		}
		if incumbent.Suit == trump && challenger.Suit != trump {
			return false
		}
	}

	if challenger.Suit != incumbent.Suit {
		if incumbent.Suit == lead {
			return false
		}
		if challenger.Suit == lead {
			return true
		}
		return false
	}

	return Strength(challenger, m) > Strength(incumbent, m)
}
