package engine

// Clone returns a deep copy of the trick.
func (t *Trick) Clone() *Trick {
	if t == nil {
		return nil
	}
	return &Trick{Cards: append([]PlayedCard(nil), t.Cards...)}
}

// Clone returns a deep copy of the negotiation state.
func (n *Negotiation) Clone() *Negotiation {
	if n == nil {
		return nil
	}
	out := *n
	out.Actions = append([]NegotiationAction(nil), n.Actions...)
	out.Doubled = make(map[Mode]int, len(n.Doubled))
	for k, v := range n.Doubled {
		out.Doubled[k] = v
	}
	out.Redoubled = make(map[Mode]bool, len(n.Redoubled))
	for k, v := range n.Redoubled {
		out.Redoubled[k] = v
	}
	out.TeamColour = make(map[Team]Mode, len(n.TeamColour))
	for k, v := range n.TeamColour {
		out.TeamColour[k] = v
	}
	out.Accepted = make(map[Seat]bool, len(n.Accepted))
	for k, v := range n.Accepted {
		out.Accepted[k] = v
	}
	return &out
}

// Clone returns a deep copy of the deal, detached from the live state
// so observers can read it without locking.
func (d *Deal) Clone() *Deal {
	if d == nil {
		return nil
	}
	out := *d
	out.deck = append([]Card(nil), d.deck...)
	out.Hands = make(map[Seat][]Card, len(d.Hands))
	for seat, hand := range d.Hands {
		out.Hands[seat] = append([]Card(nil), hand...)
	}
	out.Negotiation = d.Negotiation.Clone()
	out.CompletedTricks = make([]Trick, len(d.CompletedTricks))
	for i := range d.CompletedTricks {
		out.CompletedTricks[i] = *d.CompletedTricks[i].Clone()
	}
	out.Current = d.Current.Clone()
	out.CardPoints = map[Team]int{Team1: d.CardPoints[Team1], Team2: d.CardPoints[Team2]}
	out.TricksWon = map[Team]int{Team1: d.TricksWon[Team1], Team2: d.TricksWon[Team2]}
	if d.Result != nil {
		res := d.Result.Clone()
		out.Result = &res
	}
	return &out
}

// Clone returns a deep copy of the deal result.
func (r DealResult) Clone() DealResult {
	out := r
	out.CardPoints = map[Team]int{Team1: r.CardPoints[Team1], Team2: r.CardPoints[Team2]}
	out.MatchPoints = map[Team]int{Team1: r.MatchPoints[Team1], Team2: r.MatchPoints[Team2]}
	return out
}

// Clone returns a deep copy of the match.
func (m *Match) Clone() *Match {
	if m == nil {
		return nil
	}
	out := *m
	out.MatchPoints = map[Team]int{Team1: m.MatchPoints[Team1], Team2: m.MatchPoints[Team2]}
	out.CurrentDeal = m.CurrentDeal.Clone()
	out.CompletedDeals = make([]DealResult, len(m.CompletedDeals))
	for i, r := range m.CompletedDeals {
		out.CompletedDeals[i] = r.Clone()
	}
	return &out
}
