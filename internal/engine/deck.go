package engine

import (
	"math/rand"
	"sort"
)

// NewDeck returns the 52 distinct cards in canonical order: hearts,
// diamonds, clubs, spades, each from ace down to two.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits() {
		for r := Ace; r >= Two; r-- {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle permutes deck in place using a Fisher-Yates pass over rng.
func Shuffle(rng *rand.Rand, deck []Card) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// displaySuitOrder groups suits for presentation: spades, hearts,
// diamonds, clubs.
func displaySuitOrder(s Suit) int {
	switch s {
	case Spades:
		return 0
	case Hearts:
		return 1
	case Diamonds:
		return 2
	}
	return 3
}

// SortHand orders a hand by suit group, then descending rank within each
// suit. Sort order is presentation only: legality and trick outcomes are
// index-based and never depend on it.
func SortHand(hand []Card) {
	sort.SliceStable(hand, func(i, j int) bool {
		a, b := hand[i], hand[j]
		if displaySuitOrder(a.Suit) != displaySuitOrder(b.Suit) {
			return displaySuitOrder(a.Suit) < displaySuitOrder(b.Suit)
		}
		return a.Rank > b.Rank
	})
}
