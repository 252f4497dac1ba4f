package engine

import "errors"

type NegotiationActionType int

const (
	ActAnnounce NegotiationActionType = iota
	ActAccept
	ActDouble
	ActRedouble
)

func (t NegotiationActionType) String() string {
	switch t {
	case ActAnnounce:
		return "Announce"
	case ActAccept:
		return "Accept"
	case ActDouble:
		return "Double"
	case ActRedouble:
		return "Redouble"
	default:
		return "?"
	}
}

// NegotiationAction is one turn of the bidding phase. Mode is the
// announced mode for Announce, the target mode for Double/Redouble, and
// ignored for Accept.
type NegotiationAction struct {
	Type NegotiationActionType
	Seat Seat
	Mode Mode
}

func (a NegotiationAction) Equal(b NegotiationAction) bool {
	if a.Type != b.Type || a.Seat != b.Seat {
		return false
	}
	if a.Type == ActAccept {
		return true
	}
	return a.Mode == b.Mode
}

// Negotiation tracks the bidding phase of one deal. Turn order cycles
// clockwise starting from the dealer's left; 3 consecutive accepts on an
// existing bid close the negotiation.
type Negotiation struct {
	Dealer Seat
	Turn   Seat

	HasBid bool
	Bid    Mode
	Bidder Seat

	ConsecutiveAccepts int
	Complete           bool

	Actions []NegotiationAction

	// Doubled maps a mode to the action index at which it was doubled
	// (explicitly or through an auto-doubling accept).
	Doubled   map[Mode]int
	Redoubled map[Mode]bool

	// TeamColour records the single Colour mode each team has announced
	// this deal, if any.
	TeamColour map[Team]Mode

	// Accepted records seats that have accepted; they may not announce
	// afterwards.
	Accepted map[Seat]bool

	// DoubleOccurred blocks all further announcements.
	DoubleOccurred bool
}

func NewNegotiation(dealer Seat) *Negotiation {
	return &Negotiation{
		Dealer:     dealer,
		Turn:       dealer.Next(),
		Doubled:    map[Mode]int{},
		Redoubled:  map[Mode]bool{},
		TeamColour: map[Team]Mode{},
		Accepted:   map[Seat]bool{},
	}
}

func (n *Negotiation) canAnnounce(m Mode) bool {
	if n.Complete || n.DoubleOccurred || n.Accepted[n.Turn] {
		return false
	}
	if n.HasBid && !m.HigherThan(n.Bid) {
		return false
	}
	if m.IsColour() {
		if _, ok := n.TeamColour[n.Turn.Team()]; ok {
			return false
		}
	}
	return true
}

// firstAnnouncementIndex returns the index of the seat's first
// announcement in the action history, or -1. A seat that announced
// implicitly passed on all earlier opponent bids.
func (n *Negotiation) firstAnnouncementIndex(seat Seat) int {
	for i, a := range n.Actions {
		if a.Type == ActAnnounce && a.Seat == seat {
			return i
		}
	}
	return -1
}

// announcementOf returns the index and announcer seat of the
// announcement of the given mode, or -1 if it was never announced.
func (n *Negotiation) announcementOf(m Mode) (int, Seat) {
	for i, a := range n.Actions {
		if a.Type == ActAnnounce && a.Mode == m {
			return i, a.Seat
		}
	}
	return -1, 0
}

func (n *Negotiation) doubleableModes() []Mode {
	if n.Complete || !n.HasBid {
		return nil
	}
	team := n.Turn.Team()
	ownFirst := n.firstAnnouncementIndex(n.Turn)

	var modes []Mode
	for i, a := range n.Actions {
		if a.Type != ActAnnounce || a.Seat.Team() == team {
			continue
		}
		if _, doubled := n.Doubled[a.Mode]; doubled {
			continue
		}
		// A seat may only double opponent bids made after its own
		// announcement; it passed on the earlier ones by announcing.
		if ownFirst != -1 && i < ownFirst {
			continue
		}
		modes = append(modes, a.Mode)
	}
	return modes
}

func (n *Negotiation) redoubleableModes() []Mode {
	if n.Complete {
		return nil
	}
	team := n.Turn.Team()

	var modes []Mode
	for m := range n.Doubled {
		if n.Redoubled[m] || !m.CanRedouble() {
			continue
		}
		if idx, seat := n.announcementOf(m); idx != -1 && seat.Team() == team {
			modes = append(modes, m)
		}
	}
	return modes
}

// ValidActions computes every action the seat on turn may take. The
// slice is in deterministic order: announcements by rising mode, then
// accept, then doubles, then redoubles.
func (n *Negotiation) ValidActions() []NegotiationAction {
	if n.Complete {
		return nil
	}

	var actions []NegotiationAction
	for _, m := range Modes() {
		if n.canAnnounce(m) {
			actions = append(actions, NegotiationAction{Type: ActAnnounce, Seat: n.Turn, Mode: m})
		}
	}
	if n.HasBid {
		actions = append(actions, NegotiationAction{Type: ActAccept, Seat: n.Turn})
	}
	for _, m := range n.doubleableModes() {
		actions = append(actions, NegotiationAction{Type: ActDouble, Seat: n.Turn, Mode: m})
	}
	for _, m := range n.redoubleableModes() {
		actions = append(actions, NegotiationAction{Type: ActRedouble, Seat: n.Turn, Mode: m})
	}
	return actions
}

// Apply validates and applies one negotiation action.
func (n *Negotiation) Apply(a NegotiationAction) error {
	if n.Complete {
		return errors.New("negotiation is already complete")
	}
	if a.Seat != n.Turn {
		return errors.New("not this seat's turn")
	}

	switch a.Type {
	case ActAnnounce:
		return n.applyAnnounce(a)
	case ActAccept:
		return n.applyAccept(a)
	case ActDouble:
		return n.applyDouble(a)
	case ActRedouble:
		return n.applyRedouble(a)
	default:
		return errors.New("unknown negotiation action")
	}
}

func (n *Negotiation) applyAnnounce(a NegotiationAction) error {
	if n.DoubleOccurred {
		return errors.New("cannot announce after a double")
	}
	if n.Accepted[a.Seat] {
		return errors.New("cannot announce after accepting")
	}
	if n.HasBid && !a.Mode.HigherThan(n.Bid) {
		return errors.New("announcement must outrank the current bid")
	}
	if a.Mode.IsColour() {
		if _, ok := n.TeamColour[a.Seat.Team()]; ok {
			return errors.New("team has already announced a colour this deal")
		}
	}

	n.Actions = append(n.Actions, a)
	n.HasBid = true
	n.Bid = a.Mode
	n.Bidder = a.Seat
	n.ConsecutiveAccepts = 0
	if a.Mode.IsColour() {
		n.TeamColour[a.Seat.Team()] = a.Mode
	}
	n.Turn = n.Turn.Next()
	return nil
}

func (n *Negotiation) applyAccept(a NegotiationAction) error {
	if !n.HasBid {
		return errors.New("cannot accept with no bid on the table")
	}

	// Opponent accepting NoTrumps or ColourClubs imposes an implicit
	// double even though the acting side only chose Accept.
	_, alreadyDoubled := n.Doubled[n.Bid]
	if n.Bid.AcceptAutoDoubles() && a.Seat.Team() != n.Bidder.Team() && !alreadyDoubled {
		n.Doubled[n.Bid] = len(n.Actions)
		n.DoubleOccurred = true
	}

	n.Actions = append(n.Actions, a)
	n.Accepted[a.Seat] = true
	n.ConsecutiveAccepts++

	if n.ConsecutiveAccepts >= 3 {
		n.Complete = true
		return nil
	}
	n.Turn = n.Turn.Next()
	return nil
}

func (n *Negotiation) applyDouble(a NegotiationAction) error {
	if !n.HasBid {
		return errors.New("cannot double with no bid on the table")
	}
	idx, seat := n.announcementOf(a.Mode)
	if idx == -1 {
		return errors.New("mode has not been announced")
	}
	if seat.Team() == a.Seat.Team() {
		return errors.New("cannot double own team's bid")
	}
	if _, ok := n.Doubled[a.Mode]; ok {
		return errors.New("mode has already been doubled")
	}
	if ownFirst := n.firstAnnouncementIndex(a.Seat); ownFirst != -1 && idx < ownFirst {
		return errors.New("passed on this bid by announcing over it")
	}

	n.Doubled[a.Mode] = len(n.Actions)
	n.Actions = append(n.Actions, a)
	n.ConsecutiveAccepts = 0
	n.DoubleOccurred = true
	n.Turn = n.Turn.Next()
	return nil
}

func (n *Negotiation) applyRedouble(a NegotiationAction) error {
	if _, ok := n.Doubled[a.Mode]; !ok {
		return errors.New("mode has not been doubled")
	}
	if n.Redoubled[a.Mode] {
		return errors.New("mode has already been redoubled")
	}
	if !a.Mode.CanRedouble() {
		return errors.New("mode cannot be redoubled")
	}
	idx, seat := n.announcementOf(a.Mode)
	if idx == -1 || seat.Team() != a.Seat.Team() {
		return errors.New("only the announcing team can redouble")
	}

	n.Redoubled[a.Mode] = true
	n.Actions = append(n.Actions, a)
	n.ConsecutiveAccepts = 0
	n.DoubleOccurred = true
	n.Turn = n.Turn.Next()
	return nil
}

// Resolve fixes the contract after the negotiation completes. When any
// mode was doubled, the contract is the first announced mode that was
// doubled; otherwise the highest bid at the normal multiplier.
func (n *Negotiation) Resolve() (Mode, Team, Multiplier, error) {
	if !n.Complete {
		return 0, 0, 0, errors.New("negotiation is not complete")
	}
	if !n.HasBid {
		return 0, 0, 0, errors.New("no bid was made")
	}

	if len(n.Doubled) > 0 {
		for _, a := range n.Actions {
			if a.Type != ActAnnounce {
				continue
			}
			if _, ok := n.Doubled[a.Mode]; !ok {
				continue
			}
			mult := MultiplierDoubled
			if n.Redoubled[a.Mode] {
				mult = MultiplierRedoubled
			}
			return a.Mode, a.Seat.Team(), mult, nil
		}
	}

	return n.Bid, n.Bidder.Team(), MultiplierNormal, nil
}
