// Package bot implements the automated-opponent decision policies.
//
// A Strategy is a pure function over an engine snapshot: it never mutates
// game state and only ever returns hand indices that the engine's own
// follow-suit check accepts, because candidates come from the snapshot's
// LegalPlays query.
package bot

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hokmlab/hokm/internal/engine"
)

// Difficulty selects one of the three policy tiers.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty converts a config/wire string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Delay returns the pacing delay applied before a scheduled bot move.
// Purely cosmetic: it shapes perceived thinking time, never legality.
func (d Difficulty) Delay() time.Duration {
	switch d {
	case Easy:
		return 500 * time.Millisecond
	case Hard:
		return 1500 * time.Millisecond
	}
	return 1000 * time.Millisecond
}

// Strategy produces moves for a non-human seat.
type Strategy interface {
	// SelectCard returns the hand index to play for the seat on move.
	SelectCard(st *engine.State, seat engine.Seat) int
	// ChooseHokm picks the trump suit when the seat leads the bidding.
	ChooseHokm(st *engine.State, seat engine.Seat) engine.Suit
}

// New returns the Strategy for a difficulty tier. The policy is selected
// once at bot creation; no runtime tier switching.
func New(d Difficulty, rng *rand.Rand) Strategy {
	switch d {
	case Easy:
		return &easyStrategy{rng: rng}
	case Hard:
		return &hardStrategy{}
	default:
		return &mediumStrategy{}
	}
}

// ChooseHokm is shared by all tiers: bid the hand's longest suit, ties
// broken by canonical suit order.
func chooseHokm(st *engine.State, seat engine.Seat) engine.Suit {
	counts := suitCounts(st.Players[seat].Hand)
	best := engine.Hearts
	for _, s := range engine.Suits() {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}

func suitCounts(hand []engine.Card) map[engine.Suit]int {
	counts := make(map[engine.Suit]int)
	for _, c := range hand {
		counts[c.Suit]++
	}
	return counts
}

// sortByRankDesc returns a copy of idxs ordered by descending card rank.
func sortByRankDesc(hand []engine.Card, idxs []int) []int {
	out := append([]int(nil), idxs...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && hand[out[j]].Rank > hand[out[j-1]].Rank; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// lowest returns the index (into the hand) of the lowest-ranked candidate.
func lowest(hand []engine.Card, idxs []int) int {
	sorted := sortByRankDesc(hand, idxs)
	return sorted[len(sorted)-1]
}

// highest returns the index of the highest-ranked candidate.
func highest(hand []engine.Card, idxs []int) int {
	return sortByRankDesc(hand, idxs)[0]
}

// lowestWinning returns the lowest-ranked candidate that would displace
// the current winning entry of the trick, or -1 if none can.
func lowestWinning(hand []engine.Card, idxs []int, trick engine.Trick, hokm engine.Suit) int {
	if len(trick.Plays) == 0 {
		return -1
	}
	best := trick.Plays[engine.WinningPlay(trick.Plays, hokm)].Card
	lead := trick.Plays[0].Card.Suit
	sorted := sortByRankDesc(hand, idxs)
	for i := len(sorted) - 1; i >= 0; i-- {
		if engine.Beats(hand[sorted[i]], best, lead, hokm) {
			return sorted[i]
		}
	}
	return -1
}

// nonTrump filters candidates to suits other than hokm. Falls back to all
// candidates when the hand is trump-only.
func nonTrump(hand []engine.Card, idxs []int, hokm engine.Suit) []int {
	var out []int
	for _, i := range idxs {
		if hand[i].Suit != hokm {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return idxs
	}
	return out
}
