package engine

import "testing"

func TestTrumpStrengthOrder(t *testing.T) {
	mode := ModeColourHearts
	order := []Rank{RankJ, Rank9, RankA, Rank10, RankK, RankQ, Rank8, Rank7}
	for i := 0; i < len(order)-1; i++ {
		hi := Card{Suit: SuitHearts, Rank: order[i]}
		lo := Card{Suit: SuitHearts, Rank: order[i+1]}
		if Strength(hi, mode) <= Strength(lo, mode) {
			t.Fatalf("expected %s stronger than %s in trump", hi, lo)
		}
	}
}

func TestPlainStrengthOrder(t *testing.T) {
	mode := ModeNoTrumps
	order := []Rank{RankA, Rank10, RankK, RankQ, RankJ, Rank9, Rank8, Rank7}
	for i := 0; i < len(order)-1; i++ {
		hi := Card{Suit: SuitClubs, Rank: order[i]}
		lo := Card{Suit: SuitClubs, Rank: order[i+1]}
		if Strength(hi, mode) <= Strength(lo, mode) {
			t.Fatalf("expected %s stronger than %s in plain suit", hi, lo)
		}
	}
}

func TestDeckPointTotals(t *testing.T) {
	for _, mode := range Modes() {
		sum := 0
		for _, c := range NewDeck() {
			sum += PointValue(c, mode)
		}
		if sum+LastTrickBonus != mode.TotalPoints() {
			t.Fatalf("%s: deck points %d + last trick != %d", mode, sum, mode.TotalPoints())
		}
	}
}

func TestTrumpJackPoints(t *testing.T) {
	j := Card{Suit: SuitSpades, Rank: RankJ}
	if got := PointValue(j, ModeColourSpades); got != 20 {
		t.Fatalf("trump jack worth %d, want 20", got)
	}
	if got := PointValue(j, ModeColourHearts); got != 2 {
		t.Fatalf("plain jack worth %d, want 2", got)
	}
	if got := PointValue(j, ModeAllTrumps); got != 20 {
		t.Fatalf("all trumps jack worth %d, want 20", got)
	}
}

func TestBeatsTrumpOverLead(t *testing.T) {
	lead := SuitHearts
	mode := ModeColourSpades
	trump := Card{Suit: SuitSpades, Rank: Rank7}
	leadAce := Card{Suit: SuitHearts, Rank: RankA}
	if !Beats(trump, leadAce, lead, mode) {
		t.Fatalf("expected trump 7 to beat lead ace")
	}
	if Beats(leadAce, trump, lead, mode) {
		t.Fatalf("expected lead ace not to beat trump")
	}
}

func TestBeatsOffSuitNeverWins(t *testing.T) {
	lead := SuitClubs
	mode := ModeNoTrumps
	off := Card{Suit: SuitHearts, Rank: RankA}
	leadSeven := Card{Suit: SuitClubs, Rank: Rank7}
	if Beats(off, leadSeven, lead, mode) {
		t.Fatalf("expected off-suit ace not to beat lead seven")
	}
}

func TestModeRanking(t *testing.T) {
	modes := Modes()
	for i := 0; i < len(modes)-1; i++ {
		if !modes[i+1].HigherThan(modes[i]) {
			t.Fatalf("expected %s to outrank %s", modes[i+1], modes[i])
		}
	}
}

func TestModeMetadata(t *testing.T) {
	cases := []struct {
		mode      Mode
		threshold int
		total     int
		base      int
	}{
		{ModeColourClubs, 82, 162, 32},
		{ModeColourDiamonds, 82, 162, 16},
		{ModeColourHearts, 82, 162, 16},
		{ModeColourSpades, 82, 162, 16},
		{ModeNoTrumps, 65, 130, 52},
		{ModeAllTrumps, 129, 258, 26},
	}
	for _, c := range cases {
		if got := c.mode.WinThreshold(); got != c.threshold {
			t.Errorf("%s threshold %d, want %d", c.mode, got, c.threshold)
		}
		if got := c.mode.TotalPoints(); got != c.total {
			t.Errorf("%s total %d, want %d", c.mode, got, c.total)
		}
		if got := c.mode.BaseMatchPoints(); got != c.base {
			t.Errorf("%s base %d, want %d", c.mode, got, c.base)
		}
	}
}

func TestAcceptAutoDoubleModes(t *testing.T) {
	for _, mode := range Modes() {
		want := mode == ModeNoTrumps || mode == ModeColourClubs
		if mode.AcceptAutoDoubles() != want {
			t.Errorf("%s auto double = %v, want %v", mode, mode.AcceptAutoDoubles(), want)
		}
		if mode.CanRedouble() == want {
			t.Errorf("%s redouble = %v, want %v", mode, mode.CanRedouble(), !want)
		}
	}
}

func TestSeatGeometry(t *testing.T) {
	if SeatBottom.Teammate() != SeatTop {
		t.Fatalf("bottom teammate is %s", SeatBottom.Teammate())
	}
	if SeatLeft.Team() != SeatRight.Team() {
		t.Fatalf("left and right should share a team")
	}
	if SeatBottom.Team() == SeatLeft.Team() {
		t.Fatalf("bottom and left should oppose")
	}
	order := PlayOrder(SeatBottom)
	if order[0] != SeatLeft || order[3] != SeatBottom {
		t.Fatalf("play order from bottom dealer wrong: %v", order)
	}
}
