package server

import (
	"belote/internal/engine"
	"belote/internal/session"
)

type SeatView struct {
	Seat      string    `json:"seat"`
	Team      string    `json:"team"`
	Hand      []CardDTO `json:"hand,omitempty"`
	HandCount int       `json:"handCount"`
}

type NegotiationView struct {
	Turn               string      `json:"turn"`
	Bid                string      `json:"bid,omitempty"`
	Bidder             string      `json:"bidder,omitempty"`
	ConsecutiveAccepts int         `json:"consecutiveAccepts"`
	DoubleOccurred     bool        `json:"doubleOccurred"`
	Actions            []ActionDTO `json:"actions"`
}

type TrickView struct {
	Cards []PlayedCardDTO `json:"cards"`
}

type DealView struct {
	Phase           string           `json:"phase"`
	Dealer          string           `json:"dealer"`
	Turn            string           `json:"turn"`
	Mode            string           `json:"mode,omitempty"`
	Multiplier      string           `json:"multiplier,omitempty"`
	Announcer       string           `json:"announcer,omitempty"`
	Negotiation     *NegotiationView `json:"negotiation,omitempty"`
	CurrentTrick    *TrickView       `json:"currentTrick,omitempty"`
	CompletedTricks int              `json:"completedTricks"`
	CardPoints      map[string]int   `json:"cardPoints"`
	TricksWon       map[string]int   `json:"tricksWon"`
}

type ResultView struct {
	Mode        string         `json:"mode"`
	Multiplier  string         `json:"multiplier"`
	Announcer   string         `json:"announcer"`
	CardPoints  map[string]int `json:"cardPoints"`
	MatchPoints map[string]int `json:"matchPoints"`
	WasSweep    bool           `json:"wasSweep"`
	InstantWin  bool           `json:"instantWin"`
}

// PendingView tells the viewer what decision is being awaited and, when
// it is theirs, what the legal choices are.
type PendingView struct {
	Kind    string      `json:"kind"`
	Seat    string      `json:"seat"`
	Actions []ActionDTO `json:"actions,omitempty"`
	Cards   []CardDTO   `json:"cards,omitempty"`
}

type MatchView struct {
	MatchID        string         `json:"matchId"`
	Seat           string         `json:"seat"`
	TargetScore    int            `json:"targetScore"`
	MatchPoints    map[string]int `json:"matchPoints"`
	Dealer         string         `json:"dealer"`
	Complete       bool           `json:"complete"`
	Winner         string         `json:"winner,omitempty"`
	Seats          []SeatView     `json:"seats"`
	Deal           *DealView      `json:"deal,omitempty"`
	CompletedDeals []ResultView   `json:"completedDeals"`
	Pending        *PendingView   `json:"pending,omitempty"`
}

// buildMatchView renders the match for one viewer. Only the viewer's
// own hand is included; other seats expose card counts.
func buildMatchView(id string, m *engine.Match, viewer engine.Seat, pending *session.Pending) *MatchView {
	view := &MatchView{
		MatchID:     id,
		Seat:        seatToString(viewer),
		TargetScore: m.TargetScore,
		MatchPoints: teamInts(m.MatchPoints),
		Dealer:      seatToString(m.Dealer),
		Complete:    m.Complete,
	}
	if m.Complete {
		view.Winner = teamToString(m.Winner)
	}
	for _, seat := range engine.Seats() {
		sv := SeatView{Seat: seatToString(seat), Team: teamToString(seat.Team())}
		if m.CurrentDeal != nil {
			hand := m.CurrentDeal.Hands[seat]
			sv.HandCount = len(hand)
			if seat == viewer {
				for _, c := range hand {
					sv.Hand = append(sv.Hand, cardToDTO(c))
				}
			}
		}
		view.Seats = append(view.Seats, sv)
	}
	if m.CurrentDeal != nil {
		view.Deal = buildDealView(m.CurrentDeal)
	}
	for _, r := range m.CompletedDeals {
		view.CompletedDeals = append(view.CompletedDeals, buildResultView(r))
	}
	if pending != nil {
		view.Pending = buildPendingView(pending, viewer)
	}
	return view
}

func buildDealView(d *engine.Deal) *DealView {
	view := &DealView{
		Phase:           phaseToString(d.Phase),
		Dealer:          seatToString(d.Dealer),
		Turn:            seatToString(d.Turn),
		CompletedTricks: len(d.CompletedTricks),
		CardPoints:      teamInts(d.CardPoints),
		TricksWon:       teamInts(d.TricksWon),
	}
	if d.Phase == engine.PhaseNegotiating && d.Negotiation != nil {
		view.Negotiation = buildNegotiationView(d.Negotiation)
	}
	if d.Phase == engine.PhasePlaying || d.Phase == engine.PhaseCompleted {
		view.Mode = modeToString(d.Mode)
		view.Multiplier = multiplierToString(d.Multiplier)
		view.Announcer = teamToString(d.Announcer)
	}
	if d.Current != nil && !d.Current.IsEmpty() {
		tv := &TrickView{}
		for _, pc := range d.Current.Cards {
			tv.Cards = append(tv.Cards, PlayedCardDTO{
				Seat: seatToString(pc.Seat),
				Card: cardToDTO(pc.Card),
			})
		}
		view.CurrentTrick = tv
	}
	return view
}

func buildNegotiationView(n *engine.Negotiation) *NegotiationView {
	view := &NegotiationView{
		Turn:               seatToString(n.Turn),
		ConsecutiveAccepts: n.ConsecutiveAccepts,
		DoubleOccurred:     n.DoubleOccurred,
		Actions:            []ActionDTO{},
	}
	if n.HasBid {
		view.Bid = modeToString(n.Bid)
		view.Bidder = seatToString(n.Bidder)
	}
	for _, a := range n.Actions {
		view.Actions = append(view.Actions, actionFromEngine(a))
	}
	return view
}

func buildResultView(r engine.DealResult) ResultView {
	return ResultView{
		Mode:        modeToString(r.Mode),
		Multiplier:  multiplierToString(r.Multiplier),
		Announcer:   teamToString(r.Announcer),
		CardPoints:  teamInts(r.CardPoints),
		MatchPoints: teamInts(r.MatchPoints),
		WasSweep:    r.WasSweep,
		InstantWin:  r.InstantWin,
	}
}

// buildPendingView includes the legal choices only for the seat that
// owns the decision.
func buildPendingView(p *session.Pending, viewer engine.Seat) *PendingView {
	view := &PendingView{
		Kind: pendingKindString(p.Kind),
		Seat: seatToString(p.Seat),
	}
	if p.Seat != viewer {
		return view
	}
	for _, a := range p.ValidActions {
		view.Actions = append(view.Actions, actionFromEngine(a))
	}
	for _, c := range p.ValidCards {
		view.Cards = append(view.Cards, cardToDTO(c))
	}
	return view
}

func pendingKindString(k session.PendingKind) string {
	switch k {
	case session.PendingCut:
		return "cut"
	case session.PendingNegotiation:
		return "negotiation"
	case session.PendingCard:
		return "card"
	case session.PendingContinue:
		return "continue"
	default:
		return "?"
	}
}

func teamInts(m map[engine.Team]int) map[string]int {
	return map[string]int{
		teamToString(engine.Team1): m[engine.Team1],
		teamToString(engine.Team2): m[engine.Team2],
	}
}
