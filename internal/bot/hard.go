package bot

import "github.com/hokmlab/hokm/internal/engine"

// hardStrategy layers score awareness over the medium heuristics: it
// presses when the game is tense, conserves strength with a big lead and
// never displaces a winning partner.
type hardStrategy struct{}

func (s *hardStrategy) SelectCard(st *engine.State, seat engine.Seat) int {
	idxs := st.LegalPlays(seat)
	if len(idxs) == 0 {
		return 0
	}
	hand := st.Players[seat].Hand
	hokm, _ := st.HokmSuit()

	aheadBig := st.Scores.ForTeam(seat.Team()) >= engine.WinningScore-1
	behindBad := st.Scores.Red <= 1 || st.Scores.Black <= 1

	if len(st.Trick.Plays) == 0 {
		return s.lead(hand, idxs, hokm, aheadBig, behindBad)
	}
	return s.follow(hand, idxs, st.Trick, hokm, seat, aheadBig, behindBad)
}

func (s *hardStrategy) ChooseHokm(st *engine.State, seat engine.Seat) engine.Suit {
	return chooseHokm(st, seat)
}

func (s *hardStrategy) lead(hand []engine.Card, idxs []int, hokm engine.Suit, aheadBig, behindBad bool) int {
	if aheadBig {
		// Protect the lead: a mid-rank card from the longest non-trump suit.
		long := longestNonTrumpSuit(hand, hokm)
		var inSuit []int
		for _, i := range idxs {
			if hand[i].Suit == long {
				inSuit = append(inSuit, i)
			}
		}
		if len(inSuit) == 0 {
			inSuit = idxs
		}
		sorted := sortByRankDesc(hand, inSuit)
		return sorted[len(sorted)/2]
	}
	if behindBad {
		// Press for tricks with the strongest honor, if any.
		var honors []int
		for _, i := range idxs {
			if hand[i].Rank >= engine.Jack {
				honors = append(honors, i)
			}
		}
		if len(honors) > 0 {
			return highest(hand, honors)
		}
	}
	return mediumLead(hand, idxs, hokm)
}

func (s *hardStrategy) follow(hand []engine.Card, idxs []int, trick engine.Trick, hokm engine.Suit, seat engine.Seat, aheadBig, behindBad bool) int {
	leading := trick.Plays[engine.WinningPlay(trick.Plays, hokm)]
	if leading.Seat.Team() == seat.Team() {
		// Partner (or this seat) already holds the trick.
		return lowest(hand, idxs)
	}
	if s.shouldContest(hand, aheadBig, behindBad) {
		return mediumFollow(hand, idxs, trick, hokm, seat)
	}
	return lowest(hand, idxs)
}

// shouldContest decides whether the trick is worth fighting for: always
// when the game is tense, never when comfortably ahead, otherwise only
// with enough honors in reserve.
func (s *hardStrategy) shouldContest(hand []engine.Card, aheadBig, behindBad bool) bool {
	if behindBad {
		return true
	}
	if aheadBig {
		return false
	}
	honors := 0
	for _, c := range hand {
		if c.Rank >= engine.Jack {
			honors++
		}
	}
	return honors >= 3
}

func longestNonTrumpSuit(hand []engine.Card, hokm engine.Suit) engine.Suit {
	counts := suitCounts(hand)
	best := engine.Hearts
	bestCount := -1
	for _, s := range engine.Suits() {
		if s == hokm {
			continue
		}
		if counts[s] > bestCount {
			best = s
			bestCount = counts[s]
		}
	}
	return best
}
