package bot

import (
	"math/rand"

	"github.com/hokmlab/hokm/internal/engine"
)

// easyStrategy picks uniformly at random among the legal cards.
type easyStrategy struct {
	rng *rand.Rand
}

func (s *easyStrategy) SelectCard(st *engine.State, seat engine.Seat) int {
	idxs := st.LegalPlays(seat)
	if len(idxs) == 0 {
		return 0
	}
	return idxs[s.rng.Intn(len(idxs))]
}

func (s *easyStrategy) ChooseHokm(st *engine.State, seat engine.Seat) engine.Suit {
	return chooseHokm(st, seat)
}
