package engine

import "testing"

func startedDeal(t *testing.T, dealer Seat, seed int64) *Deal {
	t.Helper()
	deck := Shuffle(NewDeck(), seed)
	deal, err := NewDeal(dealer, deck, nil)
	if err != nil {
		t.Fatalf("new deal: %v", err)
	}
	if err := deal.CutDeck(16, true); err != nil {
		t.Fatalf("cut: %v", err)
	}
	return deal
}

func negotiateHearts(t *testing.T, deal *Deal) {
	t.Helper()
	bidder := deal.Dealer.Next()
	actions := []NegotiationAction{
		{Type: ActAnnounce, Seat: bidder, Mode: ModeColourHearts},
		{Type: ActAccept, Seat: bidder.Next()},
		{Type: ActAccept, Seat: bidder.Next().Next()},
		{Type: ActAccept, Seat: bidder.Next().Next().Next()},
	}
	for _, a := range actions {
		if err := deal.ApplyNegotiation(a); err != nil {
			t.Fatalf("negotiation %s by %s: %v", a.Type, a.Seat, err)
		}
	}
}

func TestCutPhaseGate(t *testing.T) {
	deck := NewDeck()
	deal, err := NewDeal(SeatBottom, deck, nil)
	if err != nil {
		t.Fatalf("new deal: %v", err)
	}
	if err := deal.CutDeck(5, true); err == nil {
		t.Fatalf("expected cut below 6 to fail")
	}
	if err := deal.CutDeck(16, true); err != nil {
		t.Fatalf("cut: %v", err)
	}
	if err := deal.CutDeck(16, true); err == nil {
		t.Fatalf("expected second cut to fail")
	}
}

func TestInitialDistributionFiveEach(t *testing.T) {
	deal := startedDeal(t, SeatBottom, 7)
	if deal.Phase != PhaseNegotiating {
		t.Fatalf("phase %s, want Negotiating", deal.Phase)
	}
	for _, seat := range Seats() {
		if len(deal.Hands[seat]) != 5 {
			t.Fatalf("%s holds %d cards, want 5", seat, len(deal.Hands[seat]))
		}
	}
	if deal.Negotiation.Turn != SeatLeft {
		t.Fatalf("negotiation opens with %s, want Left", deal.Negotiation.Turn)
	}
}

func TestRemainderDealtAfterNegotiation(t *testing.T) {
	deal := startedDeal(t, SeatBottom, 7)
	negotiateHearts(t, deal)
	if deal.Phase != PhasePlaying {
		t.Fatalf("phase %s, want Playing", deal.Phase)
	}
	seen := map[Card]bool{}
	for _, seat := range Seats() {
		if len(deal.Hands[seat]) != 8 {
			t.Fatalf("%s holds %d cards, want 8", seat, len(deal.Hands[seat]))
		}
		for _, c := range deal.Hands[seat] {
			if seen[c] {
				t.Fatalf("card %s dealt twice", c)
			}
			seen[c] = true
		}
	}
	if deal.Mode != ModeColourHearts || deal.Multiplier != MultiplierNormal {
		t.Fatalf("contract %s x%d", deal.Mode, deal.Multiplier.Factor())
	}
	if deal.Turn != SeatLeft {
		t.Fatalf("first lead is %s, want Left", deal.Turn)
	}
}

func TestPlayRejectsOutOfTurnAndForeignCards(t *testing.T) {
	deal := startedDeal(t, SeatBottom, 7)
	negotiateHearts(t, deal)

	wrongSeat := deal.Turn.Next()
	if err := deal.PlayCard(wrongSeat, deal.Hands[wrongSeat][0]); err == nil {
		t.Fatalf("expected out-of-turn play to fail")
	}

	notHeld := deal.Hands[deal.Turn.Next()][0]
	if err := deal.PlayCard(deal.Turn, notHeld); err == nil {
		t.Fatalf("expected play of unheld card to fail")
	}
}

func playOut(t *testing.T, deal *Deal) {
	t.Helper()
	for deal.Phase == PhasePlaying {
		plays := deal.ValidPlays()
		if len(plays) == 0 {
			t.Fatalf("no legal plays for %s", deal.Turn)
		}
		if err := deal.PlayCard(deal.Turn, plays[0]); err != nil {
			t.Fatalf("play %s: %v", plays[0], err)
		}
	}
}

func TestFullDealAccountsForAllPoints(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		deal := startedDeal(t, SeatBottom, seed)
		negotiateHearts(t, deal)
		playOut(t, deal)

		if deal.Phase != PhaseCompleted {
			t.Fatalf("seed %d: phase %s, want Completed", seed, deal.Phase)
		}
		if deal.Result == nil {
			t.Fatalf("seed %d: no result", seed)
		}
		total := deal.CardPoints[Team1] + deal.CardPoints[Team2]
		if total != deal.Mode.TotalPoints() {
			t.Fatalf("seed %d: card points total %d, want %d", seed, total, deal.Mode.TotalPoints())
		}
		tricks := deal.TricksWon[Team1] + deal.TricksWon[Team2]
		if tricks != TricksPerDeal {
			t.Fatalf("seed %d: %d tricks, want %d", seed, tricks, TricksPerDeal)
		}
	}
}

func TestDeterministicShuffle(t *testing.T) {
	a := Shuffle(NewDeck(), 42)
	b := Shuffle(NewDeck(), 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different decks")
		}
	}
}
