package engine

import "testing"

func TestColourWinnerTakesAll(t *testing.T) {
	s := NewScorer()
	res := s.Score(ModeColourHearts, MultiplierNormal, Team1, map[Team]int{Team1: 100, Team2: 62}, false, 0)
	if res.MatchPoints[Team1] != 16 || res.MatchPoints[Team2] != 0 {
		t.Fatalf("got %d/%d, want 16/0", res.MatchPoints[Team1], res.MatchPoints[Team2])
	}
}

func TestColourThresholdInclusive(t *testing.T) {
	s := NewScorer()
	res := s.Score(ModeColourHearts, MultiplierNormal, Team1, map[Team]int{Team1: 82, Team2: 80}, false, 0)
	if res.MatchPoints[Team1] != 16 {
		t.Fatalf("announcer at exactly 82 should win, got %d", res.MatchPoints[Team1])
	}
}

func TestColourClubsDoubleStake(t *testing.T) {
	s := NewScorer()
	res := s.Score(ModeColourClubs, MultiplierNormal, Team2, map[Team]int{Team1: 60, Team2: 102}, false, 0)
	if res.MatchPoints[Team2] != 32 {
		t.Fatalf("clubs base is 32, got %d", res.MatchPoints[Team2])
	}
}

func TestAnnouncerFailsDefenderTakesAll(t *testing.T) {
	s := NewScorer()
	res := s.Score(ModeNoTrumps, MultiplierNormal, Team1, map[Team]int{Team1: 50, Team2: 80}, false, 0)
	if res.MatchPoints[Team1] != 0 || res.MatchPoints[Team2] != 52 {
		t.Fatalf("got %d/%d, want 0/52", res.MatchPoints[Team1], res.MatchPoints[Team2])
	}
}

func TestCardPointTieScoresNothing(t *testing.T) {
	s := NewScorer()
	res := s.Score(ModeNoTrumps, MultiplierNormal, Team1, map[Team]int{Team1: 65, Team2: 65}, false, 0)
	if res.MatchPoints[Team1] != 0 || res.MatchPoints[Team2] != 0 {
		t.Fatalf("tie should score 0/0, got %d/%d", res.MatchPoints[Team1], res.MatchPoints[Team2])
	}
}

func TestMultiplierDoublesMatchPoints(t *testing.T) {
	s := NewScorer()
	res := s.Score(ModeNoTrumps, MultiplierDoubled, Team1, map[Team]int{Team1: 90, Team2: 40}, false, 0)
	if res.MatchPoints[Team1] != 104 {
		t.Fatalf("doubled NoTrumps win should pay 104, got %d", res.MatchPoints[Team1])
	}
}

func TestAllTrumpsSplitCases(t *testing.T) {
	cases := []struct {
		announcer, defender int
		wantA, wantD        int
	}{
		{128, 130, 0, 26},
		{129, 129, 0, 0},
		{131, 127, 0, 0},
		{150, 108, 15, 11},
		{160, 98, 16, 10},
		{230, 28, 20, 6},
		{200, 58, 20, 6},
		{140, 118, 14, 12},
	}
	for _, c := range cases {
		a, d := DefaultAllTrumpsSplit(c.announcer, c.defender)
		if a != c.wantA || d != c.wantD {
			t.Errorf("split(%d,%d) = %d/%d, want %d/%d", c.announcer, c.defender, a, d, c.wantA, c.wantD)
		}
	}
}

func TestAllTrumpsSplitMultiplied(t *testing.T) {
	s := NewScorer()
	res := s.Score(ModeAllTrumps, MultiplierDoubled, Team1, map[Team]int{Team1: 160, Team2: 98}, false, 0)
	if res.MatchPoints[Team1] != 32 || res.MatchPoints[Team2] != 20 {
		t.Fatalf("got %d/%d, want 32/20", res.MatchPoints[Team1], res.MatchPoints[Team2])
	}
}

func TestAllTrumpsSweepBonus(t *testing.T) {
	s := NewScorer()
	res := s.Score(ModeAllTrumps, MultiplierNormal, Team1, map[Team]int{Team1: 258, Team2: 0}, true, Team1)
	if res.MatchPoints[Team1] != 35 {
		t.Fatalf("all trumps sweep pays 35, got %d", res.MatchPoints[Team1])
	}
	if res.InstantWin {
		t.Fatalf("all trumps sweep is not an instant win")
	}
}

func TestNoTrumpsSweepBonus(t *testing.T) {
	s := NewScorer()
	res := s.Score(ModeNoTrumps, MultiplierDoubled, Team2, map[Team]int{Team1: 0, Team2: 130}, true, Team2)
	if res.MatchPoints[Team2] != 180 {
		t.Fatalf("doubled sweep pays 180, got %d", res.MatchPoints[Team2])
	}
}

func TestColourSweepInstantWin(t *testing.T) {
	s := NewScorer()
	res := s.Score(ModeColourHearts, MultiplierNormal, Team1, map[Team]int{Team1: 162, Team2: 0}, true, Team1)
	if !res.InstantWin {
		t.Fatalf("colour sweep should be an instant win")
	}
	if res.MatchPoints[Team1] != 0 || res.MatchPoints[Team2] != 0 {
		t.Fatalf("instant win carries no match points")
	}
}

func TestCustomSplitStrategy(t *testing.T) {
	s := NewScorer()
	s.Split = func(a, d int) (int, int) { return 13, 13 }
	res := s.Score(ModeAllTrumps, MultiplierNormal, Team1, map[Team]int{Team1: 150, Team2: 108}, false, 0)
	if res.MatchPoints[Team1] != 13 || res.MatchPoints[Team2] != 13 {
		t.Fatalf("custom split ignored: %d/%d", res.MatchPoints[Team1], res.MatchPoints[Team2])
	}
}
