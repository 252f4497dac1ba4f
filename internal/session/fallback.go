package session

import "belote/internal/engine"

// Deterministic substitutes used when a decision times out, errors, or
// comes back outside the valid set.

// FallbackCut splits the deck in the middle from the top.
func FallbackCut() CutChoice {
	return CutChoice{Position: 16, FromTop: true}
}

// FallbackNegotiation accepts when accepting is legal, otherwise takes
// the first valid action.
func FallbackNegotiation(valid []engine.NegotiationAction) engine.NegotiationAction {
	for _, a := range valid {
		if a.Type == engine.ActAccept {
			return a
		}
	}
	return valid[0]
}

// FallbackCard plays the first valid card.
func FallbackCard(valid []engine.Card) engine.Card {
	return valid[0]
}
