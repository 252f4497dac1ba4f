package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"belote/internal/engine"
)

// botServer fakes the remote bot API for one session.
type botServer struct {
	t *testing.T

	sessionID string
	cut       CutResult
	action    NegotiationActionChoice
	card      Card

	createReqs  []SessionRequest
	deleted     []string
	notified    []string
	failNotify  bool
	lastCardCtx *ChooseCardContext
}

func (b *botServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", func(w http.ResponseWriter, r *http.Request) {
		var req SessionRequest
		require.NoError(b.t, json.NewDecoder(r.Body).Decode(&req))
		b.createReqs = append(b.createReqs, req)
		json.NewEncoder(w).Encode(SessionResponse{SessionID: b.sessionID})
	})
	mux.HandleFunc("DELETE /api/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.deleted = append(b.deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/sessions/{id}/choose-cut", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(b.cut)
	})
	mux.HandleFunc("POST /api/sessions/{id}/choose-negotiation-action", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(b.action)
	})
	mux.HandleFunc("POST /api/sessions/{id}/choose-card", func(w http.ResponseWriter, r *http.Request) {
		var ctx ChooseCardContext
		require.NoError(b.t, json.NewDecoder(r.Body).Decode(&ctx))
		b.lastCardCtx = &ctx
		json.NewEncoder(w).Encode(b.card)
	})
	mux.HandleFunc("POST /api/sessions/{id}/notify/{hook}", func(w http.ResponseWriter, r *http.Request) {
		b.notified = append(b.notified, r.PathValue("hook"))
		if b.failNotify {
			http.Error(w, "down", http.StatusInternalServerError)
		}
	})
	return mux
}

func newBotServer(t *testing.T) (*botServer, *httptest.Server) {
	bs := &botServer{t: t, sessionID: "remote-1"}
	srv := httptest.NewServer(bs.handler())
	t.Cleanup(srv.Close)
	return bs, srv
}

// playingMatch builds a match with a deal in the playing phase, hearts
// as trumps, dealer at bottom so the left seat leads.
func playingMatch(t *testing.T) *engine.Match {
	t.Helper()
	m := engine.NewMatch(engine.SeatBottom, 150)
	deal, err := m.StartDeal(engine.Shuffle(engine.NewDeck(), 3))
	require.NoError(t, err)
	require.NoError(t, deal.CutDeck(12, true))
	actions := []engine.NegotiationAction{
		{Type: engine.ActAnnounce, Seat: engine.SeatLeft, Mode: engine.ModeColourHearts},
		{Type: engine.ActAccept, Seat: engine.SeatTop},
		{Type: engine.ActAccept, Seat: engine.SeatRight},
		{Type: engine.ActAccept, Seat: engine.SeatBottom},
	}
	for _, a := range actions {
		require.NoError(t, deal.ApplyNegotiation(a))
	}
	require.Equal(t, engine.PhasePlaying, deal.Phase)
	return m
}

func TestDialCreatesSession(t *testing.T) {
	bs, srv := newBotServer(t)
	client := NewClient(srv.URL)

	agent, err := Dial(context.Background(), client, engine.SeatLeft, "match-7", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, bs.createReqs, 1)
	assert.Equal(t, PlayerLeft, bs.createReqs[0].Position)
	assert.Equal(t, "match-7", bs.createReqs[0].MatchID)

	agent.Close(context.Background())
	assert.Equal(t, []string{"remote-1"}, bs.deleted)
}

func TestDialFailsWhenServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL)

	_, err := Dial(context.Background(), client, engine.SeatLeft, "m", nil)
	require.Error(t, err)
}

func TestChooseCutRoundTrip(t *testing.T) {
	bs, srv := newBotServer(t)
	bs.cut = CutResult{Position: 19, FromTop: false}
	client := NewClient(srv.URL)
	agent, err := Dial(context.Background(), client, engine.SeatRight, "m", nil)
	require.NoError(t, err)

	m := engine.NewMatch(engine.SeatBottom, 150)
	_, err = m.StartDeal(engine.NewDeck())
	require.NoError(t, err)

	choice, err := agent.ChooseCut(context.Background(), engine.DeckSize, m)
	require.NoError(t, err)
	assert.Equal(t, 19, choice.Position)
	assert.False(t, choice.FromTop)
}

func TestChooseNegotiationActionRoundTrip(t *testing.T) {
	bs, srv := newBotServer(t)
	mode := NoTrumps
	bs.action = NegotiationActionChoice{Type: ActionAnnouncement, Mode: &mode}
	client := NewClient(srv.URL)
	agent, err := Dial(context.Background(), client, engine.SeatLeft, "m", nil)
	require.NoError(t, err)

	m := engine.NewMatch(engine.SeatBottom, 150)
	_, err = m.StartDeal(engine.Shuffle(engine.NewDeck(), 1))
	require.NoError(t, err)
	require.NoError(t, m.CurrentDeal.CutDeck(10, true))
	valid := m.CurrentDeal.Negotiation.ValidActions()

	action, err := agent.ChooseNegotiationAction(context.Background(), valid, m)
	require.NoError(t, err)
	assert.Equal(t, engine.ActAnnounce, action.Type)
	assert.Equal(t, engine.SeatLeft, action.Seat)
	assert.Equal(t, engine.ModeNoTrumps, action.Mode)
}

func TestChooseCardRoundTrip(t *testing.T) {
	bs, srv := newBotServer(t)
	client := NewClient(srv.URL)
	agent, err := Dial(context.Background(), client, engine.SeatLeft, "m", nil)
	require.NoError(t, err)

	m := playingMatch(t)
	valid := m.CurrentDeal.ValidPlays()
	require.NotEmpty(t, valid)
	bs.card = mapCard(valid[0])

	card, err := agent.ChooseCard(context.Background(), valid, m)
	require.NoError(t, err)
	assert.Equal(t, valid[0], card)

	require.NotNil(t, bs.lastCardCtx)
	assert.Equal(t, ColourHearts, bs.lastCardCtx.HandState.GameMode)
	assert.Len(t, bs.lastCardCtx.Hand, 8)
	assert.Len(t, bs.lastCardCtx.ValidPlays, len(valid))
}

func TestChooseCardRejectsMalformedResponse(t *testing.T) {
	bs, srv := newBotServer(t)
	bs.card = Card{Rank: "joker", Suit: "stars"}
	client := NewClient(srv.URL)
	agent, err := Dial(context.Background(), client, engine.SeatLeft, "m", nil)
	require.NoError(t, err)

	m := playingMatch(t)
	_, err = agent.ChooseCard(context.Background(), m.CurrentDeal.ValidPlays(), m)
	require.Error(t, err)
}

func TestChooseCardErrorOnHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/sessions" {
			json.NewEncoder(w).Encode(SessionResponse{SessionID: "s"})
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	agent, err := Dial(context.Background(), NewClient(srv.URL), engine.SeatLeft, "m", nil)
	require.NoError(t, err)

	m := playingMatch(t)
	_, err = agent.ChooseCard(context.Background(), m.CurrentDeal.ValidPlays(), m)
	require.Error(t, err)
}

func TestNotificationsAreBestEffort(t *testing.T) {
	bs, srv := newBotServer(t)
	bs.failNotify = true
	client := NewClient(srv.URL)
	agent, err := Dial(context.Background(), client, engine.SeatTop, "m", nil)
	require.NoError(t, err)

	m := playingMatch(t)
	agent.DealStarted(m)
	agent.CardPlayed(engine.SeatLeft, engine.Card{Suit: engine.SuitHearts, Rank: engine.RankA}, m)
	agent.MatchEnded(engine.Team1, m)

	assert.Equal(t, []string{"deal-started", "card-played", "match-ended"}, bs.notified)
}

func TestParseActionChoiceTargetMode(t *testing.T) {
	mode := ColourHearts
	action, err := parseActionChoice(NegotiationActionChoice{Type: ActionDouble, TargetMode: &mode}, engine.SeatTop)
	require.NoError(t, err)
	assert.Equal(t, engine.ActDouble, action.Type)
	assert.Equal(t, engine.ModeColourHearts, action.Mode)
	assert.Equal(t, engine.SeatTop, action.Seat)

	_, err = parseActionChoice(NegotiationActionChoice{Type: ActionDouble}, engine.SeatTop)
	require.Error(t, err)
}

func TestMapHandStateMidTrick(t *testing.T) {
	m := playingMatch(t)
	deal := m.CurrentDeal
	valid := deal.ValidPlays()
	require.NoError(t, deal.PlayCard(deal.Turn, valid[0]))

	hs := mapHandState(deal)
	require.NotNil(t, hs.CurrentTrick)
	assert.Equal(t, PlayerLeft, hs.CurrentTrick.Leader)
	assert.Len(t, hs.CurrentTrick.PlayedCards, 1)
	assert.Equal(t, 1, hs.CurrentTrick.TrickNumber)
	assert.False(t, hs.CurrentTrick.IsComplete)
}
