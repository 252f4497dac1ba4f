package bots

import (
	"context"
	"testing"
	"time"

	"belote/internal/engine"
	"belote/internal/session"
)

func TestEasyChoosesFromValidSet(t *testing.T) {
	b := NewEasy(engine.SeatLeft, 1)
	valid := []engine.Card{
		{Suit: engine.SuitClubs, Rank: engine.Rank7},
		{Suit: engine.SuitHearts, Rank: engine.RankA},
	}
	for i := 0; i < 20; i++ {
		c, err := b.ChooseCard(context.Background(), valid, nil)
		if err != nil {
			t.Fatalf("choose card: %v", err)
		}
		if c != valid[0] && c != valid[1] {
			t.Fatalf("card %s outside valid set", c)
		}
	}
}

func TestEasyCutInRange(t *testing.T) {
	b := NewEasy(engine.SeatLeft, 2)
	for i := 0; i < 50; i++ {
		choice, err := b.ChooseCut(context.Background(), engine.DeckSize, nil)
		if err != nil {
			t.Fatalf("choose cut: %v", err)
		}
		if choice.Position < engine.MinCutPosition || choice.Position > engine.MaxCutPosition {
			t.Fatalf("cut position %d out of range", choice.Position)
		}
	}
}

func TestNormalAnnouncesStrongTrumpHand(t *testing.T) {
	b := NewNormal(engine.SeatLeft, 3)
	match := engine.NewMatch(engine.SeatBottom, 0)
	deal := &engine.Deal{
		Hands: map[engine.Seat][]engine.Card{
			engine.SeatLeft: {
				{Suit: engine.SuitHearts, Rank: engine.RankJ},
				{Suit: engine.SuitHearts, Rank: engine.Rank9},
				{Suit: engine.SuitHearts, Rank: engine.RankA},
				{Suit: engine.SuitClubs, Rank: engine.RankA},
				{Suit: engine.SuitSpades, Rank: engine.Rank10},
			},
		},
	}
	match.CurrentDeal = deal

	valid := []engine.NegotiationAction{
		{Type: engine.ActAnnounce, Seat: engine.SeatLeft, Mode: engine.ModeColourHearts},
		{Type: engine.ActAccept, Seat: engine.SeatLeft},
	}
	a, err := b.ChooseNegotiationAction(context.Background(), valid, match)
	if err != nil {
		t.Fatalf("choose action: %v", err)
	}
	if a.Type != engine.ActAnnounce || a.Mode != engine.ModeColourHearts {
		t.Fatalf("expected hearts announcement, got %s %s", a.Type, a.Mode)
	}
}

func TestNormalAcceptsWithWeakHand(t *testing.T) {
	b := NewNormal(engine.SeatLeft, 3)
	match := engine.NewMatch(engine.SeatBottom, 0)
	match.CurrentDeal = &engine.Deal{
		Hands: map[engine.Seat][]engine.Card{
			engine.SeatLeft: {
				{Suit: engine.SuitHearts, Rank: engine.Rank7},
				{Suit: engine.SuitDiamonds, Rank: engine.Rank8},
				{Suit: engine.SuitClubs, Rank: engine.Rank7},
				{Suit: engine.SuitSpades, Rank: engine.Rank8},
				{Suit: engine.SuitClubs, Rank: engine.RankQ},
			},
		},
	}

	valid := []engine.NegotiationAction{
		{Type: engine.ActAnnounce, Seat: engine.SeatLeft, Mode: engine.ModeAllTrumps},
		{Type: engine.ActAccept, Seat: engine.SeatLeft},
	}
	a, err := b.ChooseNegotiationAction(context.Background(), valid, match)
	if err != nil {
		t.Fatalf("choose action: %v", err)
	}
	if a.Type != engine.ActAccept {
		t.Fatalf("expected accept, got %s %s", a.Type, a.Mode)
	}
}

func TestNormalWinsTrickCheaply(t *testing.T) {
	b := NewNormal(engine.SeatTop, 3)
	trick := &engine.Trick{}
	trick.Play(engine.SeatLeft, engine.Card{Suit: engine.SuitClubs, Rank: engine.RankQ})

	match := engine.NewMatch(engine.SeatBottom, 0)
	match.CurrentDeal = &engine.Deal{
		Mode:    engine.ModeNoTrumps,
		Current: trick,
		Hands:   map[engine.Seat][]engine.Card{},
	}

	valid := []engine.Card{
		{Suit: engine.SuitClubs, Rank: engine.RankK},
		{Suit: engine.SuitClubs, Rank: engine.RankA},
		{Suit: engine.SuitClubs, Rank: engine.Rank7},
	}
	c, err := b.ChooseCard(context.Background(), valid, match)
	if err != nil {
		t.Fatalf("choose card: %v", err)
	}
	want := engine.Card{Suit: engine.SuitClubs, Rank: engine.RankK}
	if c != want {
		t.Fatalf("expected cheapest winner %s, got %s", want, c)
	}
}

func TestNormalShedsWhenItCannotWin(t *testing.T) {
	b := NewNormal(engine.SeatTop, 3)
	trick := &engine.Trick{}
	trick.Play(engine.SeatLeft, engine.Card{Suit: engine.SuitClubs, Rank: engine.RankA})

	match := engine.NewMatch(engine.SeatBottom, 0)
	match.CurrentDeal = &engine.Deal{
		Mode:    engine.ModeNoTrumps,
		Current: trick,
		Hands:   map[engine.Seat][]engine.Card{},
	}

	valid := []engine.Card{
		{Suit: engine.SuitClubs, Rank: engine.RankK},
		{Suit: engine.SuitClubs, Rank: engine.Rank8},
	}
	c, err := b.ChooseCard(context.Background(), valid, match)
	if err != nil {
		t.Fatalf("choose card: %v", err)
	}
	want := engine.Card{Suit: engine.SuitClubs, Rank: engine.Rank8}
	if c != want {
		t.Fatalf("expected cheapest shed %s, got %s", want, c)
	}
}

func TestBotsPlayFullMatch(t *testing.T) {
	agents := map[engine.Seat]session.Agent{}
	for i, seat := range engine.Seats() {
		if i%2 == 0 {
			agents[seat] = NewNormal(seat, int64(i+1))
		} else {
			agents[seat] = NewEasy(seat, int64(i+1))
		}
	}

	s, err := session.New(session.Config{Agents: agents, TargetScore: 30, Seed: 11})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.Start(context.Background())
	select {
	case <-s.Done():
	case <-time.After(60 * time.Second):
		t.Fatal("bot match did not finish")
	}
	if err := s.Err(); err != nil {
		t.Fatalf("session error: %v", err)
	}
	if !s.Match().Complete {
		t.Fatal("match did not complete")
	}
}
