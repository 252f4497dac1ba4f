package remote

import (
	"fmt"

	"belote/internal/engine"
)

// Wire shapes for the remote bot API. JSON is camelCase with string
// enums; optional fields are pointers with omitempty.

type Rank string

const (
	RankSeven Rank = "seven"
	RankEight Rank = "eight"
	RankNine  Rank = "nine"
	RankTen   Rank = "ten"
	RankJack  Rank = "jack"
	RankQueen Rank = "queen"
	RankKing  Rank = "king"
	RankAce   Rank = "ace"
)

type Suit string

const (
	SuitClubs    Suit = "clubs"
	SuitDiamonds Suit = "diamonds"
	SuitHearts   Suit = "hearts"
	SuitSpades   Suit = "spades"
)

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

type PlayerPosition string

const (
	PlayerBottom PlayerPosition = "bottom"
	PlayerLeft   PlayerPosition = "left"
	PlayerTop    PlayerPosition = "top"
	PlayerRight  PlayerPosition = "right"
)

type Team string

const (
	Team1 Team = "team1"
	Team2 Team = "team2"
)

type PlayedCard struct {
	Player PlayerPosition `json:"player"`
	Card   Card           `json:"card"`
}

type GameMode string

const (
	ColourClubs    GameMode = "colourClubs"
	ColourDiamonds GameMode = "colourDiamonds"
	ColourHearts   GameMode = "colourHearts"
	ColourSpades   GameMode = "colourSpades"
	NoTrumps       GameMode = "noTrumps"
	AllTrumps      GameMode = "allTrumps"
)

type Multiplier string

const (
	MultiplierNormal    Multiplier = "normal"
	MultiplierDoubled   Multiplier = "doubled"
	MultiplierRedoubled Multiplier = "redoubled"
)

type TrickState struct {
	Leader      PlayerPosition `json:"leader"`
	TrickNumber int            `json:"trickNumber"`
	PlayedCards []PlayedCard   `json:"playedCards"`
	IsComplete  bool           `json:"isComplete"`
}

type HandState struct {
	GameMode        GameMode     `json:"gameMode"`
	Team1CardPoints int          `json:"team1CardPoints"`
	Team2CardPoints int          `json:"team2CardPoints"`
	Team1TricksWon  int          `json:"team1TricksWon"`
	Team2TricksWon  int          `json:"team2TricksWon"`
	CurrentTrick    *TrickState  `json:"currentTrick,omitempty"`
	CompletedTricks []TrickState `json:"completedTricks"`
}

type NegotiationActionType string

const (
	ActionAnnouncement NegotiationActionType = "announcement"
	ActionAccept       NegotiationActionType = "accept"
	ActionDouble       NegotiationActionType = "double"
	ActionRedouble     NegotiationActionType = "redouble"
)

type NegotiationAction struct {
	Type       NegotiationActionType `json:"type"`
	Player     *PlayerPosition       `json:"player,omitempty"`
	Mode       *GameMode             `json:"mode,omitempty"`
	TargetMode *GameMode             `json:"targetMode,omitempty"`
}

// NegotiationActionChoice is an action without the player field; the
// server knows whose turn it is.
type NegotiationActionChoice struct {
	Type       NegotiationActionType `json:"type"`
	Mode       *GameMode             `json:"mode,omitempty"`
	TargetMode *GameMode             `json:"targetMode,omitempty"`
}

type NegotiationState struct {
	Dealer                  PlayerPosition      `json:"dealer"`
	CurrentPlayer           PlayerPosition      `json:"currentPlayer"`
	CurrentBid              *GameMode           `json:"currentBid,omitempty"`
	CurrentBidder           *PlayerPosition     `json:"currentBidder,omitempty"`
	ConsecutiveAccepts      int                 `json:"consecutiveAccepts"`
	HasDoubleOccurred       bool                `json:"hasDoubleOccurred"`
	Actions                 []NegotiationAction `json:"actions"`
	DoubledModes            map[GameMode]int    `json:"doubledModes"`
	RedoubledModes          []GameMode          `json:"redoubledModes"`
	TeamColourAnnouncements map[Team]GameMode   `json:"teamColourAnnouncements"`
}

type DealResult struct {
	GameMode         GameMode   `json:"gameMode"`
	Multiplier       Multiplier `json:"multiplier"`
	AnnouncerTeam    Team       `json:"announcerTeam"`
	Team1CardPoints  int        `json:"team1CardPoints"`
	Team2CardPoints  int        `json:"team2CardPoints"`
	Team1MatchPoints int        `json:"team1MatchPoints"`
	Team2MatchPoints int        `json:"team2MatchPoints"`
	WasSweep         bool       `json:"wasSweep"`
	SweepingTeam     *Team      `json:"sweepingTeam,omitempty"`
	IsInstantWin     bool       `json:"isInstantWin"`
}

type MatchState struct {
	TargetScore      int            `json:"targetScore"`
	Team1MatchPoints int            `json:"team1MatchPoints"`
	Team2MatchPoints int            `json:"team2MatchPoints"`
	CurrentDealer    PlayerPosition `json:"currentDealer"`
	IsComplete       bool           `json:"isComplete"`
	Winner           *Team          `json:"winner,omitempty"`
	CompletedDeals   []DealResult   `json:"completedDeals"`
}

type SessionRequest struct {
	Position PlayerPosition `json:"position"`
	MatchID  string         `json:"matchId"`
}

type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

type CutResult struct {
	Position int  `json:"position"`
	FromTop  bool `json:"fromTop"`
}

type ChooseCutContext struct {
	DeckSize   int        `json:"deckSize"`
	MatchState MatchState `json:"matchState"`
}

type ChooseNegotiationActionContext struct {
	Hand             []Card                    `json:"hand"`
	NegotiationState NegotiationState          `json:"negotiationState"`
	MatchState       MatchState                `json:"matchState"`
	ValidActions     []NegotiationActionChoice `json:"validActions"`
}

type ChooseCardContext struct {
	Hand       []Card     `json:"hand"`
	HandState  HandState  `json:"handState"`
	MatchState MatchState `json:"matchState"`
	ValidPlays []Card     `json:"validPlays"`
}

type DealStartedContext struct {
	MatchState MatchState `json:"matchState"`
}

type CardPlayedContext struct {
	Player     PlayerPosition `json:"player"`
	Card       Card           `json:"card"`
	HandState  HandState      `json:"handState"`
	MatchState MatchState     `json:"matchState"`
}

type TrickCompletedContext struct {
	CompletedTrick TrickState     `json:"completedTrick"`
	Winner         PlayerPosition `json:"winner"`
	HandState      HandState      `json:"handState"`
	MatchState     MatchState     `json:"matchState"`
}

type DealEndedContext struct {
	Result     DealResult `json:"result"`
	HandState  HandState  `json:"handState"`
	MatchState MatchState `json:"matchState"`
}

type MatchEndedContext struct {
	MatchState MatchState `json:"matchState"`
}

var wireRanks = map[engine.Rank]Rank{
	engine.Rank7:  RankSeven,
	engine.Rank8:  RankEight,
	engine.Rank9:  RankNine,
	engine.Rank10: RankTen,
	engine.RankJ:  RankJack,
	engine.RankQ:  RankQueen,
	engine.RankK:  RankKing,
	engine.RankA:  RankAce,
}

var wireSuits = map[engine.Suit]Suit{
	engine.SuitClubs:    SuitClubs,
	engine.SuitDiamonds: SuitDiamonds,
	engine.SuitHearts:   SuitHearts,
	engine.SuitSpades:   SuitSpades,
}

var wireSeats = map[engine.Seat]PlayerPosition{
	engine.SeatBottom: PlayerBottom,
	engine.SeatLeft:   PlayerLeft,
	engine.SeatTop:    PlayerTop,
	engine.SeatRight:  PlayerRight,
}

var wireModes = map[engine.Mode]GameMode{
	engine.ModeColourClubs:    ColourClubs,
	engine.ModeColourDiamonds: ColourDiamonds,
	engine.ModeColourHearts:   ColourHearts,
	engine.ModeColourSpades:   ColourSpades,
	engine.ModeNoTrumps:       NoTrumps,
	engine.ModeAllTrumps:      AllTrumps,
}

var wireTeams = map[engine.Team]Team{
	engine.Team1: Team1,
	engine.Team2: Team2,
}

var wireMultipliers = map[engine.Multiplier]Multiplier{
	engine.MultiplierNormal:    MultiplierNormal,
	engine.MultiplierDoubled:   MultiplierDoubled,
	engine.MultiplierRedoubled: MultiplierRedoubled,
}

var wireActionTypes = map[engine.NegotiationActionType]NegotiationActionType{
	engine.ActAnnounce: ActionAnnouncement,
	engine.ActAccept:   ActionAccept,
	engine.ActDouble:   ActionDouble,
	engine.ActRedouble: ActionRedouble,
}

func invert[K, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

var (
	engineRanks       = invert(wireRanks)
	engineSuits       = invert(wireSuits)
	engineModes       = invert(wireModes)
	engineActionTypes = invert(wireActionTypes)
)

func mapCard(c engine.Card) Card {
	return Card{Rank: wireRanks[c.Rank], Suit: wireSuits[c.Suit]}
}

func mapCards(cards []engine.Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = mapCard(c)
	}
	return out
}

func parseCard(c Card) (engine.Card, error) {
	rank, ok := engineRanks[c.Rank]
	if !ok {
		return engine.Card{}, fmt.Errorf("unknown rank %q", c.Rank)
	}
	suit, ok := engineSuits[c.Suit]
	if !ok {
		return engine.Card{}, fmt.Errorf("unknown suit %q", c.Suit)
	}
	return engine.Card{Suit: suit, Rank: rank}, nil
}

func mapTrick(t *engine.Trick, leader engine.Seat, number int) TrickState {
	out := TrickState{
		Leader:      wireSeats[leader],
		TrickNumber: number,
		PlayedCards: make([]PlayedCard, 0, len(t.Cards)),
		IsComplete:  t.IsComplete(),
	}
	for _, pc := range t.Cards {
		out.PlayedCards = append(out.PlayedCards, PlayedCard{
			Player: wireSeats[pc.Seat],
			Card:   mapCard(pc.Card),
		})
	}
	return out
}

func mapHandState(deal *engine.Deal) HandState {
	hs := HandState{
		GameMode:        wireModes[deal.Mode],
		Team1CardPoints: deal.CardPoints[engine.Team1],
		Team2CardPoints: deal.CardPoints[engine.Team2],
		Team1TricksWon:  deal.TricksWon[engine.Team1],
		Team2TricksWon:  deal.TricksWon[engine.Team2],
		CompletedTricks: make([]TrickState, 0, len(deal.CompletedTricks)),
	}
	for i := range deal.CompletedTricks {
		t := &deal.CompletedTricks[i]
		hs.CompletedTricks = append(hs.CompletedTricks, mapTrick(t, trickLeader(t), i+1))
	}
	if deal.Current != nil {
		leader := deal.Turn
		if !deal.Current.IsEmpty() {
			leader = deal.Current.Cards[0].Seat
		}
		ct := mapTrick(deal.Current, leader, len(deal.CompletedTricks)+1)
		hs.CurrentTrick = &ct
	}
	return hs
}

func trickLeader(t *engine.Trick) engine.Seat {
	if t.IsEmpty() {
		return engine.SeatBottom
	}
	return t.Cards[0].Seat
}

func mapNegotiationState(n *engine.Negotiation) NegotiationState {
	ns := NegotiationState{
		Dealer:                  wireSeats[n.Dealer],
		CurrentPlayer:           wireSeats[n.Turn],
		ConsecutiveAccepts:      n.ConsecutiveAccepts,
		HasDoubleOccurred:       n.DoubleOccurred,
		Actions:                 make([]NegotiationAction, 0, len(n.Actions)),
		DoubledModes:            map[GameMode]int{},
		RedoubledModes:          []GameMode{},
		TeamColourAnnouncements: map[Team]GameMode{},
	}
	if n.HasBid {
		bid := wireModes[n.Bid]
		bidder := wireSeats[n.Bidder]
		ns.CurrentBid = &bid
		ns.CurrentBidder = &bidder
	}
	for _, a := range n.Actions {
		ns.Actions = append(ns.Actions, mapNegotiationAction(a))
	}
	for mode, idx := range n.Doubled {
		ns.DoubledModes[wireModes[mode]] = idx
	}
	for mode, ok := range n.Redoubled {
		if ok {
			ns.RedoubledModes = append(ns.RedoubledModes, wireModes[mode])
		}
	}
	for team, mode := range n.TeamColour {
		ns.TeamColourAnnouncements[wireTeams[team]] = wireModes[mode]
	}
	return ns
}

func mapNegotiationAction(a engine.NegotiationAction) NegotiationAction {
	out := NegotiationAction{Type: wireActionTypes[a.Type]}
	seat := wireSeats[a.Seat]
	out.Player = &seat
	switch a.Type {
	case engine.ActAnnounce:
		mode := wireModes[a.Mode]
		out.Mode = &mode
	case engine.ActDouble, engine.ActRedouble:
		mode := wireModes[a.Mode]
		out.TargetMode = &mode
	}
	return out
}

func mapActionChoice(a engine.NegotiationAction) NegotiationActionChoice {
	out := NegotiationActionChoice{Type: wireActionTypes[a.Type]}
	switch a.Type {
	case engine.ActAnnounce:
		mode := wireModes[a.Mode]
		out.Mode = &mode
	case engine.ActDouble, engine.ActRedouble:
		mode := wireModes[a.Mode]
		out.TargetMode = &mode
	}
	return out
}

// parseActionChoice resolves a wire choice back onto the acting seat.
func parseActionChoice(c NegotiationActionChoice, seat engine.Seat) (engine.NegotiationAction, error) {
	typ, ok := engineActionTypes[c.Type]
	if !ok {
		return engine.NegotiationAction{}, fmt.Errorf("unknown action type %q", c.Type)
	}
	out := engine.NegotiationAction{Type: typ, Seat: seat}
	switch typ {
	case engine.ActAnnounce:
		if c.Mode == nil {
			return engine.NegotiationAction{}, fmt.Errorf("announcement without mode")
		}
		mode, ok := engineModes[*c.Mode]
		if !ok {
			return engine.NegotiationAction{}, fmt.Errorf("unknown mode %q", *c.Mode)
		}
		out.Mode = mode
	case engine.ActDouble, engine.ActRedouble:
		if c.TargetMode == nil {
			return engine.NegotiationAction{}, fmt.Errorf("%s without targetMode", c.Type)
		}
		mode, ok := engineModes[*c.TargetMode]
		if !ok {
			return engine.NegotiationAction{}, fmt.Errorf("unknown mode %q", *c.TargetMode)
		}
		out.Mode = mode
	}
	return out, nil
}

func mapDealResult(r engine.DealResult) DealResult {
	out := DealResult{
		GameMode:         wireModes[r.Mode],
		Multiplier:       wireMultipliers[r.Multiplier],
		AnnouncerTeam:    wireTeams[r.Announcer],
		Team1CardPoints:  r.CardPoints[engine.Team1],
		Team2CardPoints:  r.CardPoints[engine.Team2],
		Team1MatchPoints: r.MatchPoints[engine.Team1],
		Team2MatchPoints: r.MatchPoints[engine.Team2],
		WasSweep:         r.WasSweep,
		IsInstantWin:     r.InstantWin,
	}
	if r.WasSweep {
		team := wireTeams[r.SweepingTeam]
		out.SweepingTeam = &team
	}
	return out
}

func mapMatchState(m *engine.Match) MatchState {
	out := MatchState{
		TargetScore:      m.TargetScore,
		Team1MatchPoints: m.MatchPoints[engine.Team1],
		Team2MatchPoints: m.MatchPoints[engine.Team2],
		CurrentDealer:    wireSeats[m.Dealer],
		IsComplete:       m.Complete,
		CompletedDeals:   make([]DealResult, 0, len(m.CompletedDeals)),
	}
	if m.Complete {
		winner := wireTeams[m.Winner]
		out.Winner = &winner
	}
	for _, r := range m.CompletedDeals {
		out.CompletedDeals = append(out.CompletedDeals, mapDealResult(r))
	}
	return out
}
