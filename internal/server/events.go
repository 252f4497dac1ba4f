package server

import "belote/internal/engine"

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type DealStartedEvent struct {
	Dealer string `json:"dealer"`
	Number int    `json:"number"`
}

type CardPlayedEvent struct {
	Seat string  `json:"seat"`
	Card CardDTO `json:"card"`
}

type TrickWonEvent struct {
	Winner string `json:"winner"`
}

type DealEndedEvent struct {
	Result ResultView `json:"result"`
}

type MatchEndedEvent struct {
	Winner string `json:"winner"`
}

func dealStartedEvent(m *engine.Match) Event {
	return Event{Type: "deal_started", Data: DealStartedEvent{
		Dealer: seatToString(m.CurrentDeal.Dealer),
		Number: len(m.CompletedDeals) + 1,
	}}
}

func cardPlayedEvent(seat engine.Seat, card engine.Card) Event {
	return Event{Type: "card_played", Data: CardPlayedEvent{
		Seat: seatToString(seat),
		Card: cardToDTO(card),
	}}
}

func trickWonEvent(winner engine.Seat) Event {
	return Event{Type: "trick_won", Data: TrickWonEvent{Winner: seatToString(winner)}}
}

func dealEndedEvent(result engine.DealResult) Event {
	return Event{Type: "deal_ended", Data: DealEndedEvent{Result: buildResultView(result)}}
}

func matchEndedEvent(winner engine.Team) Event {
	return Event{Type: "match_ended", Data: MatchEndedEvent{Winner: teamToString(winner)}}
}
