package engine

import (
	"math/rand"
	"testing"
)

// TestNewDeck verifies the deck holds exactly the 52 distinct cards.
func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("len(deck) = %d, want %d", len(deck), DeckSize)
	}
	seen := make(map[Card]bool)
	for _, c := range deck {
		if seen[c] {
			t.Errorf("duplicate card %v", c)
		}
		seen[c] = true
	}
	perSuit := make(map[Suit]int)
	for c := range seen {
		perSuit[c.Suit]++
	}
	for _, s := range Suits() {
		if perSuit[s] != 13 {
			t.Errorf("suit %v has %d cards, want 13", s, perSuit[s])
		}
	}
}

// TestShuffleCoverage verifies shuffling preserves the card multiset.
func TestShuffleCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	deck := NewDeck()
	Shuffle(rng, deck)
	if len(deck) != DeckSize {
		t.Fatalf("len after shuffle = %d, want %d", len(deck), DeckSize)
	}
	seen := make(map[Card]bool)
	for _, c := range deck {
		if seen[c] {
			t.Errorf("duplicate card after shuffle: %v", c)
		}
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Errorf("got %d unique cards, want %d", len(seen), DeckSize)
	}
}

// TestSortHand verifies the display ordering: spades, hearts, diamonds,
// clubs, descending rank within each suit.
func TestSortHand(t *testing.T) {
	hand := []Card{
		{Clubs, Nine},
		{Hearts, Ace},
		{Spades, Two},
		{Spades, King},
		{Diamonds, Jack},
		{Hearts, Three},
	}
	SortHand(hand)
	want := []Card{
		{Spades, King},
		{Spades, Two},
		{Hearts, Ace},
		{Hearts, Three},
		{Diamonds, Jack},
		{Clubs, Nine},
	}
	for i := range want {
		if hand[i] != want[i] {
			t.Errorf("hand[%d] = %v, want %v", i, hand[i], want[i])
		}
	}
}

func TestSeatRotation(t *testing.T) {
	order := []Seat{South, West, North, East, South}
	for i := 0; i < 4; i++ {
		if order[i].Next() != order[i+1] {
			t.Errorf("%v.Next() = %v, want %v", order[i], order[i].Next(), order[i+1])
		}
	}
}

func TestSeatTeams(t *testing.T) {
	cases := map[Seat]Team{
		North: TeamRed,
		West:  TeamRed,
		East:  TeamBlack,
		South: TeamBlack,
	}
	for seat, team := range cases {
		if seat.Team() != team {
			t.Errorf("%v.Team() = %v, want %v", seat, seat.Team(), team)
		}
	}
}

func TestParseSuitRoundTrip(t *testing.T) {
	for _, s := range Suits() {
		got, err := ParseSuit(s.String())
		if err != nil {
			t.Fatalf("ParseSuit(%q): %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseSuit(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if _, err := ParseSuit("stars"); err == nil {
		t.Error("ParseSuit(stars) succeeded, want error")
	}
}
