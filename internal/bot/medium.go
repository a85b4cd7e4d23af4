package bot

import "github.com/hokmlab/hokm/internal/engine"

// mediumStrategy leads a deliberately middling card and, when following,
// spends the cheapest card that still takes the trick.
type mediumStrategy struct{}

func (s *mediumStrategy) SelectCard(st *engine.State, seat engine.Seat) int {
	idxs := st.LegalPlays(seat)
	if len(idxs) == 0 {
		return 0
	}
	hand := st.Players[seat].Hand
	hokm, _ := st.HokmSuit()
	if len(st.Trick.Plays) == 0 {
		return mediumLead(hand, idxs, hokm)
	}
	return mediumFollow(hand, idxs, st.Trick, hokm, seat)
}

func (s *mediumStrategy) ChooseHokm(st *engine.State, seat engine.Seat) engine.Suit {
	return chooseHokm(st, seat)
}

// mediumLead prefers non-trump candidates and picks the card just below
// the median of the descending rank order: strong enough to pressure,
// never the top of the hand.
func mediumLead(hand []engine.Card, idxs []int, hokm engine.Suit) int {
	sorted := sortByRankDesc(hand, nonTrump(hand, idxs, hokm))
	mid := len(sorted) / 2
	if mid > 0 {
		mid--
	}
	return sorted[mid]
}

// mediumFollow ducks when the seat's own entry is already winning,
// otherwise overtakes with the lowest winning card, otherwise ducks.
func mediumFollow(hand []engine.Card, idxs []int, trick engine.Trick, hokm engine.Suit, seat engine.Seat) int {
	leading := trick.Plays[engine.WinningPlay(trick.Plays, hokm)]
	if leading.Seat == seat {
		return lowest(hand, idxs)
	}
	if w := lowestWinning(hand, idxs, trick, hokm); w >= 0 {
		return w
	}
	return lowest(hand, idxs)
}
