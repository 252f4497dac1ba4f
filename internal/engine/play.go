package engine

// ValidPlays computes the cards the seat may legally play from its hand
// into the trick under the given mode.
func ValidPlays(seat Seat, hand []Card, trick *Trick, mode Mode) []Card {
	if trick.IsEmpty() {
		return append([]Card(nil), hand...)
	}

	leadSuit := trick.LeadSuit()
	var leadCards []Card
	for _, c := range hand {
		if c.Suit == leadSuit {
			leadCards = append(leadCards, c)
		}
	}

	if len(leadCards) > 0 {
		return followSuitPlays(leadCards, trick, mode)
	}

	trump, hasTrump := mode.TrumpSuit()
	if !hasTrump {
		// NoTrumps and AllTrumps: free discard when void.
		return append([]Card(nil), hand...)
	}
	return colourVoidPlays(seat, hand, trick, mode, trump)
}

// followSuitPlays narrows the lead-suit cards to those that beat the
// current winner when the mode obliges raising: always in AllTrumps and
// on a trump lead in Colour modes.
func followSuitPlays(leadCards []Card, trick *Trick, mode Mode) []Card {
	leadSuit := trick.LeadSuit()
	trump, hasTrump := mode.TrumpSuit()
	mustRaise := mode == ModeAllTrumps || (hasTrump && leadSuit == trump)
	if !mustRaise {
		return leadCards
	}

	winning, err := trick.Winning(mode)
	if err != nil || winning.Card.Suit != leadSuit {
		return leadCards
	}

	var higher []Card
	for _, c := range leadCards {
		if Beats(c, winning.Card, leadSuit, mode) {
			higher = append(higher, c)
		}
	}
	if len(higher) > 0 {
		return higher
	}
	return leadCards
}

// colourVoidPlays handles a void in the lead suit under a Colour mode:
// the seat must trump, and overtrump when it can, unless its teammate
// holds the trick with a non-trump and nobody has trumped yet.
func colourVoidPlays(seat Seat, hand []Card, trick *Trick, mode Mode, trump Suit) []Card {
	var trumps []Card
	for _, c := range hand {
		if c.Suit == trump {
			trumps = append(trumps, c)
		}
	}
	if len(trumps) == 0 {
		return append([]Card(nil), hand...)
	}

	winning, err := trick.Winning(mode)
	if err != nil {
		return append([]Card(nil), hand...)
	}
	teammateWinning := winning.Seat.Team() == seat.Team() && winning.Card.Suit != trump

	highestTrump, trumpPlayed := trick.HighestTrump(mode)
	if teammateWinning && !trumpPlayed {
		return append([]Card(nil), hand...)
	}

	if trumpPlayed {
		var higher []Card
		for _, c := range trumps {
			if Beats(c, highestTrump, trump, mode) {
				higher = append(higher, c)
			}
		}
		if len(higher) > 0 {
			return higher
		}
	}
	return trumps
}

// IsValidPlay reports whether the card is among the seat's legal plays.
func IsValidPlay(seat Seat, hand []Card, card Card, trick *Trick, mode Mode) bool {
	for _, c := range ValidPlays(seat, hand, trick, mode) {
		if c == card {
			return true
		}
	}
	return false
}
