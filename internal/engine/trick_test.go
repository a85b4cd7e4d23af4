package engine

import "testing"

// TestWinningPlayTrumpDominance: hokm spades, hearts led; the lone trump
// wins regardless of rank.
func TestWinningPlayTrumpDominance(t *testing.T) {
	plays := []TrickPlay{
		{South, Card{Hearts, Two}},
		{West, Card{Clubs, Five}},
		{North, Card{Hearts, King}},
		{East, Card{Spades, Three}},
	}
	if got := WinningPlay(plays, Spades); plays[got].Seat != East {
		t.Errorf("winner = %v, want east", plays[got].Seat)
	}
}

// TestWinningPlayLeadSuitHighest: no trump played; the highest card of
// the lead suit wins, off-suit cards never do.
func TestWinningPlayLeadSuitHighest(t *testing.T) {
	plays := []TrickPlay{
		{South, Card{Clubs, Four}},
		{West, Card{Clubs, Nine}},
		{North, Card{Clubs, Queen}},
		{East, Card{Hearts, Two}},
	}
	if got := WinningPlay(plays, Spades); plays[got].Seat != North {
		t.Errorf("winner = %v, want north", plays[got].Seat)
	}
}

// TestWinningPlayHigherTrump: between two trumps the higher rank wins.
func TestWinningPlayHigherTrump(t *testing.T) {
	plays := []TrickPlay{
		{South, Card{Diamonds, Ace}},
		{West, Card{Spades, Four}},
		{North, Card{Spades, Jack}},
		{East, Card{Diamonds, King}},
	}
	if got := WinningPlay(plays, Spades); plays[got].Seat != North {
		t.Errorf("winner = %v, want north", plays[got].Seat)
	}
}

// TestWinningPlayLeadIsTrump: the trick can be led in trump itself.
func TestWinningPlayLeadIsTrump(t *testing.T) {
	plays := []TrickPlay{
		{South, Card{Spades, Ten}},
		{West, Card{Spades, Ace}},
		{North, Card{Hearts, Ace}},
		{East, Card{Spades, Two}},
	}
	if got := WinningPlay(plays, Spades); plays[got].Seat != West {
		t.Errorf("winner = %v, want west", plays[got].Seat)
	}
}

// TestWinningPlayPartialTrick: the running best is well-defined after any
// prefix of the trick; the bot policies rely on this.
func TestWinningPlayPartialTrick(t *testing.T) {
	plays := []TrickPlay{
		{South, Card{Hearts, Ten}},
		{West, Card{Hearts, Four}},
	}
	if got := WinningPlay(plays, Clubs); plays[got].Seat != South {
		t.Errorf("winner = %v, want south", plays[got].Seat)
	}
	plays = append(plays, TrickPlay{North, Card{Clubs, Two}})
	if got := WinningPlay(plays, Clubs); plays[got].Seat != North {
		t.Errorf("winner = %v, want north after trump", plays[got].Seat)
	}
}

func TestBeats(t *testing.T) {
	cases := []struct {
		name            string
		candidate, best Card
		lead, hokm      Suit
		want            bool
	}{
		{"trump over lead", Card{Spades, Two}, Card{Hearts, Ace}, Hearts, Spades, true},
		{"lower trump loses", Card{Spades, Three}, Card{Spades, Jack}, Hearts, Spades, false},
		{"higher trump wins", Card{Spades, Queen}, Card{Spades, Jack}, Hearts, Spades, true},
		{"lead beats offsuit", Card{Hearts, Two}, Card{Clubs, Ace}, Hearts, Spades, true},
		{"higher lead wins", Card{Hearts, King}, Card{Hearts, Ten}, Hearts, Spades, true},
		{"lower lead loses", Card{Hearts, Three}, Card{Hearts, Ten}, Hearts, Spades, false},
		{"offsuit never wins", Card{Diamonds, Ace}, Card{Hearts, Two}, Hearts, Spades, false},
		{"lead cannot displace trump", Card{Hearts, Ace}, Card{Spades, Two}, Hearts, Spades, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Beats(tc.candidate, tc.best, tc.lead, tc.hokm); got != tc.want {
				t.Errorf("Beats(%v, %v) = %v, want %v", tc.candidate, tc.best, got, tc.want)
			}
		})
	}
}
