package server

import (
	"errors"

	"belote/internal/engine"
)

type CardDTO struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

type PlayedCardDTO struct {
	Seat string  `json:"seat"`
	Card CardDTO `json:"card"`
}

// ActionDTO carries one negotiation action. Seat is filled on the way
// out; submissions act for the seat that owns the connection.
type ActionDTO struct {
	Type string `json:"type"`
	Seat string `json:"seat,omitempty"`
	Mode string `json:"mode,omitempty"`
}

// SubmitDTO is the payload of a submit message. Type selects which of
// the remaining fields apply.
type SubmitDTO struct {
	Type     string     `json:"type"`
	Position int        `json:"position,omitempty"`
	FromTop  bool       `json:"fromTop,omitempty"`
	Action   *ActionDTO `json:"action,omitempty"`
	Card     *CardDTO   `json:"card,omitempty"`
}

func (a *ActionDTO) toEngine(seat engine.Seat) (engine.NegotiationAction, error) {
	if a == nil {
		return engine.NegotiationAction{}, errors.New("action missing")
	}
	out := engine.NegotiationAction{Seat: seat}
	switch a.Type {
	case "announce":
		out.Type = engine.ActAnnounce
	case "accept":
		out.Type = engine.ActAccept
		return out, nil
	case "double":
		out.Type = engine.ActDouble
	case "redouble":
		out.Type = engine.ActRedouble
	default:
		return engine.NegotiationAction{}, errors.New("unknown action type")
	}
	mode, err := parseMode(a.Mode)
	if err != nil {
		return engine.NegotiationAction{}, err
	}
	out.Mode = mode
	return out, nil
}

func actionFromEngine(a engine.NegotiationAction) ActionDTO {
	out := ActionDTO{Seat: seatToString(a.Seat)}
	switch a.Type {
	case engine.ActAnnounce:
		out.Type = "announce"
		out.Mode = modeToString(a.Mode)
	case engine.ActAccept:
		out.Type = "accept"
	case engine.ActDouble:
		out.Type = "double"
		out.Mode = modeToString(a.Mode)
	case engine.ActRedouble:
		out.Type = "redouble"
		out.Mode = modeToString(a.Mode)
	}
	return out
}

func (c *CardDTO) toEngine() (engine.Card, error) {
	if c == nil {
		return engine.Card{}, errors.New("card missing")
	}
	s, err := parseSuit(c.Suit)
	if err != nil {
		return engine.Card{}, err
	}
	r, err := parseRank(c.Rank)
	if err != nil {
		return engine.Card{}, err
	}
	return engine.Card{Suit: s, Rank: r}, nil
}

func cardToDTO(c engine.Card) CardDTO {
	return CardDTO{Suit: suitToString(c.Suit), Rank: rankToString(c.Rank)}
}

func parseSuit(s string) (engine.Suit, error) {
	switch s {
	case "C":
		return engine.SuitClubs, nil
	case "D":
		return engine.SuitDiamonds, nil
	case "H":
		return engine.SuitHearts, nil
	case "S":
		return engine.SuitSpades, nil
	default:
		return engine.SuitClubs, errors.New("invalid suit")
	}
}

func parseRank(r string) (engine.Rank, error) {
	switch r {
	case "7":
		return engine.Rank7, nil
	case "8":
		return engine.Rank8, nil
	case "9":
		return engine.Rank9, nil
	case "10":
		return engine.Rank10, nil
	case "J":
		return engine.RankJ, nil
	case "Q":
		return engine.RankQ, nil
	case "K":
		return engine.RankK, nil
	case "A":
		return engine.RankA, nil
	default:
		return engine.Rank7, errors.New("invalid rank")
	}
}

func suitToString(s engine.Suit) string {
	switch s {
	case engine.SuitClubs:
		return "C"
	case engine.SuitDiamonds:
		return "D"
	case engine.SuitHearts:
		return "H"
	case engine.SuitSpades:
		return "S"
	default:
		return "?"
	}
}

func rankToString(r engine.Rank) string {
	switch r {
	case engine.Rank7:
		return "7"
	case engine.Rank8:
		return "8"
	case engine.Rank9:
		return "9"
	case engine.Rank10:
		return "10"
	case engine.RankJ:
		return "J"
	case engine.RankQ:
		return "Q"
	case engine.RankK:
		return "K"
	case engine.RankA:
		return "A"
	default:
		return "?"
	}
}

func seatToString(s engine.Seat) string {
	switch s {
	case engine.SeatBottom:
		return "bottom"
	case engine.SeatLeft:
		return "left"
	case engine.SeatTop:
		return "top"
	case engine.SeatRight:
		return "right"
	default:
		return "?"
	}
}

func parseSeat(s string) (engine.Seat, error) {
	switch s {
	case "bottom":
		return engine.SeatBottom, nil
	case "left":
		return engine.SeatLeft, nil
	case "top":
		return engine.SeatTop, nil
	case "right":
		return engine.SeatRight, nil
	default:
		return engine.SeatBottom, errors.New("invalid seat")
	}
}

func modeToString(m engine.Mode) string {
	switch m {
	case engine.ModeColourClubs:
		return "colourClubs"
	case engine.ModeColourDiamonds:
		return "colourDiamonds"
	case engine.ModeColourHearts:
		return "colourHearts"
	case engine.ModeColourSpades:
		return "colourSpades"
	case engine.ModeNoTrumps:
		return "noTrumps"
	case engine.ModeAllTrumps:
		return "allTrumps"
	default:
		return "?"
	}
}

func parseMode(s string) (engine.Mode, error) {
	switch s {
	case "colourClubs":
		return engine.ModeColourClubs, nil
	case "colourDiamonds":
		return engine.ModeColourDiamonds, nil
	case "colourHearts":
		return engine.ModeColourHearts, nil
	case "colourSpades":
		return engine.ModeColourSpades, nil
	case "noTrumps":
		return engine.ModeNoTrumps, nil
	case "allTrumps":
		return engine.ModeAllTrumps, nil
	default:
		return engine.ModeColourClubs, errors.New("invalid mode")
	}
}

func teamToString(t engine.Team) string {
	if t == engine.Team1 {
		return "team1"
	}
	return "team2"
}

func multiplierToString(m engine.Multiplier) string {
	switch m {
	case engine.MultiplierDoubled:
		return "doubled"
	case engine.MultiplierRedoubled:
		return "redoubled"
	default:
		return "normal"
	}
}

func phaseToString(p engine.DealPhase) string {
	switch p {
	case engine.PhaseAwaitingCut:
		return "awaitingCut"
	case engine.PhaseNegotiating:
		return "negotiating"
	case engine.PhasePlaying:
		return "playing"
	case engine.PhaseCompleted:
		return "completed"
	default:
		return "?"
	}
}
