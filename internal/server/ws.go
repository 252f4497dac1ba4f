package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"belote/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type ClientMessage struct {
	Type       string     `json:"type"`
	MatchID    string     `json:"matchId,omitempty"`
	Seat       string     `json:"seat,omitempty"`
	HumanSeats []string   `json:"humanSeats,omitempty"`
	BotLevel   string     `json:"botLevel,omitempty"`
	Submit     *SubmitDTO `json:"submit,omitempty"`
}

type ServerMessage struct {
	Type   string     `json:"type"`
	State  *MatchView `json:"state,omitempty"`
	Events []Event    `json:"events,omitempty"`
	Error  *ErrorView `json:"error,omitempty"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WSHandler upgrades the connection and serves one human seat.
func (g *Gateway) WSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	c := &client{gw: g, conn: conn}
	c.readLoop()
}

// client is one WebSocket connection bound to a seat of a match. It
// implements session.Observer; the session's per-seat notifier calls
// the hooks serially.
type client struct {
	gw   *Gateway
	conn *websocket.Conn

	writeMu sync.Mutex

	match *liveMatch
	seat  engine.Seat
}

func (c *client) readLoop() {
	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handle(msg)
	}
}

func (c *client) handle(msg ClientMessage) {
	switch msg.Type {
	case "create_match":
		c.createMatch(msg)
	case "join_match":
		c.joinMatch(msg)
	case "request_state":
		c.requireMatch(func() { c.sendState(nil) })
	case "submit":
		c.requireMatch(func() { c.submit(msg.Submit) })
	default:
		c.sendError("unknown_type", "unknown message type")
	}
}

func (c *client) requireMatch(f func()) {
	if c.match == nil {
		c.sendError("not_joined", "join or create a match first")
		return
	}
	f()
}

func (c *client) createMatch(msg ClientMessage) {
	seat, err := parseSeat(msg.Seat)
	if err != nil {
		c.sendError("bad_seat", err.Error())
		return
	}
	humanSeats := []engine.Seat{seat}
	for _, s := range msg.HumanSeats {
		other, err := parseSeat(s)
		if err != nil {
			c.sendError("bad_seat", err.Error())
			return
		}
		if other != seat {
			humanSeats = append(humanSeats, other)
		}
	}
	sess, err := c.gw.CreateMatch(humanSeats, msg.BotLevel, 0)
	if err != nil {
		c.sendError("create_failed", err.Error())
		return
	}
	c.bind(sess.ID, seat)
}

func (c *client) joinMatch(msg ClientMessage) {
	seat, err := parseSeat(msg.Seat)
	if err != nil {
		c.sendError("bad_seat", err.Error())
		return
	}
	m, ok := c.gw.lookup(msg.MatchID)
	if !ok {
		c.sendError("not_found", "no such match")
		return
	}
	if !m.humans[seat] {
		c.sendError("bot_seat", "seat is not playable by a client")
		return
	}
	c.bind(msg.MatchID, seat)
}

// bind attaches the connection as the seat's observer and reports the
// current state, including any decision already awaiting this seat.
func (c *client) bind(matchID string, seat engine.Seat) {
	m, ok := c.gw.lookup(matchID)
	if !ok {
		c.sendError("not_found", "no such match")
		return
	}
	c.match = m
	c.seat = seat
	m.sess.Rejoin(seat, c)
	c.sendState(nil)
}

func (c *client) submit(dto *SubmitDTO) {
	if dto == nil {
		c.sendError("bad_submit", "submit payload missing")
		return
	}
	inbox := c.match.sess.Inbox
	var err error
	switch dto.Type {
	case "cut":
		err = inbox.SubmitCut(c.seat, dto.Position, dto.FromTop)
	case "negotiation":
		var action engine.NegotiationAction
		action, err = dto.Action.toEngine(c.seat)
		if err == nil {
			err = inbox.SubmitNegotiation(c.seat, action)
		}
	case "card":
		var card engine.Card
		card, err = dto.Card.toEngine()
		if err == nil {
			err = inbox.SubmitCard(c.seat, card)
		}
	case "continue":
		err = inbox.SubmitContinue(c.seat)
	default:
		c.sendError("bad_submit", "unknown submit type")
		return
	}
	if err != nil {
		// The pending decision stays open; the client may retry.
		c.sendError("rejected", err.Error())
		return
	}
	c.sendState(nil)
}

func (c *client) sendState(events []Event) {
	if c.match == nil {
		return
	}
	c.sendStateOf(c.match.sess.Match(), events)
}

func (c *client) sendStateOf(m *engine.Match, events []Event) {
	view := buildMatchView(c.match.sess.ID, m, c.seat, c.match.sess.Inbox.Current())
	c.write(ServerMessage{Type: "state", State: view, Events: events})
}

func (c *client) sendError(code, message string) {
	c.write(ServerMessage{Type: "error", Error: &ErrorView{Code: code, Message: message}})
}

func (c *client) write(msg ServerMessage) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		c.gw.log.Debug("ws write failed", zap.Error(err))
	}
}

// Observer hooks. Snapshots arrive from the session already detached,
// so they can be rendered without touching the live match.

func (c *client) DealStarted(m *engine.Match) {
	c.sendStateOf(m, []Event{dealStartedEvent(m)})
}

func (c *client) CardPlayed(seat engine.Seat, card engine.Card, m *engine.Match) {
	c.sendStateOf(m, []Event{cardPlayedEvent(seat, card)})
}

func (c *client) TrickCompleted(winner engine.Seat, m *engine.Match) {
	c.sendStateOf(m, []Event{trickWonEvent(winner)})
}

func (c *client) DealEnded(result engine.DealResult, m *engine.Match) {
	c.sendStateOf(m, []Event{dealEndedEvent(result)})
}

func (c *client) MatchEnded(winner engine.Team, m *engine.Match) {
	c.sendStateOf(m, []Event{matchEndedEvent(winner)})
}
