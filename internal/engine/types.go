package engine

import "fmt"

type Suit int

type Rank int

const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitHearts
	SuitSpades
)

const (
	Rank7 Rank = iota
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
)

func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "C"
	case SuitDiamonds:
		return "D"
	case SuitHearts:
		return "H"
	case SuitSpades:
		return "S"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch r {
	case Rank7:
		return "7"
	case Rank8:
		return "8"
	case Rank9:
		return "9"
	case Rank10:
		return "10"
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	case RankA:
		return "A"
	default:
		return "?"
	}
}

type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank.String(), c.Suit.String())
}

// Seat is one of the four fixed positions at the table.
// Play proceeds clockwise: Bottom -> Left -> Top -> Right -> Bottom.
// Bottom and Top form Team1, Left and Right form Team2.
type Seat int

const (
	SeatBottom Seat = iota
	SeatLeft
	SeatTop
	SeatRight
)

func (s Seat) String() string {
	switch s {
	case SeatBottom:
		return "Bottom"
	case SeatLeft:
		return "Left"
	case SeatTop:
		return "Top"
	case SeatRight:
		return "Right"
	default:
		return "?"
	}
}

// Next returns the seat to the left (clockwise).
func (s Seat) Next() Seat {
	return (s + 1) % 4
}

// Previous returns the seat to the right (counter-clockwise).
func (s Seat) Previous() Seat {
	return (s + 3) % 4
}

// Teammate returns the seat across the table.
func (s Seat) Teammate() Seat {
	return (s + 2) % 4
}

func (s Seat) Team() Team {
	if s == SeatBottom || s == SeatTop {
		return Team1
	}
	return Team2
}

// Seats lists all seats in clockwise order starting from Bottom.
func Seats() []Seat {
	return []Seat{SeatBottom, SeatLeft, SeatTop, SeatRight}
}

// PlayOrder lists all seats clockwise starting from the dealer's left.
func PlayOrder(dealer Seat) []Seat {
	order := make([]Seat, 0, 4)
	s := dealer.Next()
	for i := 0; i < 4; i++ {
		order = append(order, s)
		s = s.Next()
	}
	return order
}

type Team int

const (
	Team1 Team = iota
	Team2
)

func (t Team) String() string {
	if t == Team1 {
		return "Team1"
	}
	return "Team2"
}

func (t Team) Opponent() Team {
	if t == Team1 {
		return Team2
	}
	return Team1
}

// Mode is one of the six game modes, ordered from lowest to highest in
// the bidding hierarchy:
// ColourClubs < ColourDiamonds < ColourHearts < ColourSpades < NoTrumps < AllTrumps.
type Mode int

const (
	ModeColourClubs Mode = iota
	ModeColourDiamonds
	ModeColourHearts
	ModeColourSpades
	ModeNoTrumps
	ModeAllTrumps
)

func (m Mode) String() string {
	switch m {
	case ModeColourClubs:
		return "ColourClubs"
	case ModeColourDiamonds:
		return "ColourDiamonds"
	case ModeColourHearts:
		return "ColourHearts"
	case ModeColourSpades:
		return "ColourSpades"
	case ModeNoTrumps:
		return "NoTrumps"
	case ModeAllTrumps:
		return "AllTrumps"
	default:
		return "?"
	}
}

// Modes lists all game modes in hierarchy order.
func Modes() []Mode {
	return []Mode{
		ModeColourClubs,
		ModeColourDiamonds,
		ModeColourHearts,
		ModeColourSpades,
		ModeNoTrumps,
		ModeAllTrumps,
	}
}

// ColourMode returns the Colour mode whose trump is the given suit.
func ColourMode(s Suit) Mode {
	switch s {
	case SuitClubs:
		return ModeColourClubs
	case SuitDiamonds:
		return ModeColourDiamonds
	case SuitHearts:
		return ModeColourHearts
	default:
		return ModeColourSpades
	}
}

// Multiplier scales a deal's match points. The numeric value of the
// constant is the scaling factor.
type Multiplier int

const (
	MultiplierNormal    Multiplier = 1
	MultiplierDoubled   Multiplier = 2
	MultiplierRedoubled Multiplier = 4
)

func (m Multiplier) String() string {
	switch m {
	case MultiplierNormal:
		return "Normal"
	case MultiplierDoubled:
		return "Doubled"
	case MultiplierRedoubled:
		return "Redoubled"
	default:
		return "?"
	}
}

// Factor returns the numeric scaling factor (1, 2, or 4).
func (m Multiplier) Factor() int {
	return int(m)
}
