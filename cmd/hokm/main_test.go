package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hokmlab/hokm/internal/engine"
)

// The banner names the human's partner; south pairs with east, not with
// the seat across the table.
func TestPartnerSeat(t *testing.T) {
	assert.Equal(t, engine.East, partnerSeat(engine.South))
	assert.Equal(t, engine.South, partnerSeat(engine.East))
	assert.Equal(t, engine.North, partnerSeat(engine.West))
	assert.Equal(t, engine.West, partnerSeat(engine.North))
}

func TestOtherTeam(t *testing.T) {
	assert.Equal(t, engine.TeamBlack, other(engine.TeamRed))
	assert.Equal(t, engine.TeamRed, other(engine.TeamBlack))
}
