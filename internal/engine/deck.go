package engine

import (
	"errors"
	"math/rand"
)

// DeckSize is the number of cards in play: 8 ranks across 4 suits.
const DeckSize = 32

// Cut position bounds, inclusive.
const (
	MinCutPosition = 6
	MaxCutPosition = 26
)

// NewDeck builds the 32-card deck in standard order: suits Clubs through
// Spades, ranks Seven through Ace within each suit.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := SuitClubs; s <= SuitSpades; s++ {
		for r := Rank7; r <= RankA; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle returns a shuffled copy of the deck, deterministic for a given
// seed.
func Shuffle(deck []Card, seed int64) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Cut splits the deck at the given position and places the bottom
// portion on top. Position counts cards taken from the top when fromTop
// is true, from the bottom otherwise, and must be between 6 and 26.
func Cut(deck []Card, position int, fromTop bool) ([]Card, error) {
	if position < MinCutPosition || position > MaxCutPosition {
		return nil, errors.New("cut position out of range")
	}
	if len(deck) != DeckSize {
		return nil, errors.New("can only cut a full deck")
	}

	split := position
	if !fromTop {
		split = len(deck) - position
	}

	out := make([]Card, 0, len(deck))
	out = append(out, deck[split:]...)
	out = append(out, deck[:split]...)
	return out, nil
}
