package engine

// WinningPlay returns the index into plays of the entry currently winning
// the trick. plays must be non-empty and in play order; the first entry
// sets the lead suit. The scan keeps a running best and is shared by
// trick closure and the bot policies so both always agree on the winner.
func WinningPlay(plays []TrickPlay, hokm Suit) int {
	lead := plays[0].Card.Suit
	best := 0
	for i := 1; i < len(plays); i++ {
		if Beats(plays[i].Card, plays[best].Card, lead, hokm) {
			best = i
		}
	}
	return best
}

// Beats reports whether candidate displaces best as the winning card of a
// trick led in lead with hokm as the trump suit.
func Beats(candidate, best Card, lead, hokm Suit) bool {
	switch {
	case candidate.Suit == hokm && best.Suit != hokm:
		// Trump beats everything non-trump.
		return true
	case candidate.Suit == hokm && best.Suit == hokm:
		return candidate.Rank > best.Rank
	case candidate.Suit == lead && best.Suit != hokm:
		if best.Suit != lead {
			return true
		}
		return candidate.Rank > best.Rank
	}
	// Neither trump nor following suit against an unbeaten best.
	return false
}

// followAllowed is the follow-suit predicate: with a non-empty trick, a
// player holding any card of the lead suit must play that suit. A hand
// void in the lead suit may play anything, trump included.
func followAllowed(hand []Card, trick Trick, card Card) bool {
	lead, ok := trick.LeadSuit()
	if !ok {
		return true
	}
	if card.Suit == lead {
		return true
	}
	for _, c := range hand {
		if c.Suit == lead {
			return false
		}
	}
	return true
}

// legalIndices returns the hand indices playable under the follow-suit
// rule. The engine enforces plays and the bot policies pick moves with
// this same function, so a bot can never produce an illegal index.
func legalIndices(hand []Card, trick Trick) []int {
	lead, ok := trick.LeadSuit()
	if ok {
		var idxs []int
		for i, c := range hand {
			if c.Suit == lead {
				idxs = append(idxs, i)
			}
		}
		if len(idxs) > 0 {
			return idxs
		}
	}
	idxs := make([]int, len(hand))
	for i := range hand {
		idxs[i] = i
	}
	return idxs
}
