package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalScoreSum(t *testing.T) {
	r, _ := newTestRoom(t, 3)
	r.players[0].Coins = 9000
	r.players[0].Estates = []int{5, 12} // 5000 + 12000
	r.players[1].Coins = 20000
	r.players[1].Estates = nil
	r.players[2].Coins = 3000
	r.players[2].Estates = []int{15, 15} // 30000

	r.finishGame()
	rankings := r.rankings
	require.Len(t, rankings, 3)

	assert.Equal(t, "p3", rankings[0].PlayerID)
	assert.Equal(t, 33000, rankings[0].FinalScore)
	assert.Equal(t, 30000, rankings[0].EstateValue)
	assert.Equal(t, "p1", rankings[1].PlayerID)
	assert.Equal(t, 26000, rankings[1].FinalScore)
	assert.Equal(t, "p2", rankings[2].PlayerID)
	assert.Equal(t, 20000, rankings[2].FinalScore)

	for i, rk := range rankings {
		assert.Equal(t, i+1, rk.Rank)
	}
}

// 同分按加入顺序排定名次
func TestTiebreakByJoinOrder(t *testing.T) {
	r, _ := newTestRoom(t, 3)
	r.players[0].Coins = 10000
	r.players[0].Estates = []int{5} // 15000
	r.players[1].Coins = 15000
	r.players[1].Estates = nil // 15000
	r.players[2].Coins = 16000
	r.players[2].Estates = nil // 16000

	r.finishGame()
	rankings := r.rankings

	assert.Equal(t, "p3", rankings[0].PlayerID)
	assert.Equal(t, "p1", rankings[1].PlayerID, "同分时先加入者在前")
	assert.Equal(t, "p2", rankings[2].PlayerID)
}
