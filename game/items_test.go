package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-auction/dto"
)

func TestRerollPhase1OnlyUncontested(t *testing.T) {
	r, _ := newTestRoom(t, 3)
	beginAuctionRound(r, []int{3, 1, 2, 10, 11, 12})
	r.players[1].Item = dto.ItemReroll

	deckBefore := len(r.jobDeck)

	require.NoError(t, r.UseReroll("p2"))
	assert.True(t, r.players[1].ItemUsed)
	assert.Len(t, r.revealed, 3)
	assert.Equal(t, deckBefore, len(r.jobDeck), "折回重抽后牌堆总量不变")
	assert.True(t, r.revealed[0] < r.revealed[1] && r.revealed[1] < r.revealed[2])

	// 不应出现重复卡
	seen := make(map[int]bool)
	for _, c := range append(append([]int{}, r.revealed...), r.jobDeck...) {
		assert.False(t, seen[c])
		seen[c] = true
	}
}

func TestRerollRejectedAfterBid(t *testing.T) {
	r, _ := newTestRoom(t, 3)
	beginAuctionRound(r, []int{3, 1, 2, 10, 11, 12})
	r.players[1].Item = dto.ItemReroll

	require.NoError(t, r.PlaceBid("p1", 1000))
	assert.ErrorIs(t, r.UseReroll("p2"), ErrItemNotUsableNow)
}

func TestRerollRejectedAfterPass(t *testing.T) {
	r, _ := newTestRoom(t, 3)
	beginAuctionRound(r, []int{3, 1, 2, 10, 11, 12})
	r.players[1].Item = dto.ItemReroll

	require.NoError(t, r.PassTurn("p1"))
	assert.ErrorIs(t, r.UseReroll("p2"), ErrItemNotUsableNow)
}

func TestRerollPhase2BeforeSubmit(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	r.players[0].Properties = []int{25}
	r.players[1].Properties = []int{10}
	r.players[0].Item = dto.ItemReroll
	beginDraftRound(r, []int{3, 7, 9, 14})

	require.NoError(t, r.UseReroll("p1"))
	assert.Len(t, r.revealed, 2)
	assert.True(t, r.revealed[0] >= r.revealed[1], "房产保持降序")

	// 自己提交后就不能再洗
	r2, _ := newTestRoom(t, 2)
	r2.players[0].Properties = []int{25}
	r2.players[1].Properties = []int{10}
	r2.players[0].Item = dto.ItemReroll
	beginDraftRound(r2, []int{3, 7, 9, 14})
	require.NoError(t, r2.PlayCard("p1", 25))
	assert.ErrorIs(t, r2.UseReroll("p1"), ErrItemNotUsableNow)
}

func TestItemSingleUse(t *testing.T) {
	r, _ := newTestRoom(t, 3)
	beginAuctionRound(r, []int{3, 1, 2, 10, 11, 12})
	r.players[1].Item = dto.ItemReroll

	require.NoError(t, r.UseReroll("p2"))
	assert.ErrorIs(t, r.UseReroll("p2"), ErrItemAlreadyUsed)
}

func TestItemNotOwned(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	beginAuctionRound(r, []int{3, 1, 2, 10})

	err := r.UseReroll("p1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*Error).Code)
}

func TestPeekPhase1(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	beginAuctionRound(r, []int{3, 1, 2, 10})
	r.players[0].Item = dto.ItemPeek
	r.players[1].Coins = 8000

	result, err := r.UsePeek("p1", "p2")
	require.NoError(t, err)
	require.NotNil(t, result.Coins)
	assert.Equal(t, 8000, *result.Coins)
	assert.Nil(t, result.RealEstateCards)
	assert.Equal(t, PeekWindowPhase1.Milliseconds(), result.DurationMs)
	assert.True(t, r.players[0].ItemUsed)
}

// 第一阶段偷看必须在自己的回合
func TestPeekPhase1RequiresOwnTurn(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	beginAuctionRound(r, []int{3, 1, 2, 10})
	r.players[1].Item = dto.ItemPeek

	_, err := r.UsePeek("p2", "p1")
	assert.ErrorIs(t, err, ErrItemNotUsableNow)
}

func TestPeekPhase2(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	r.players[0].Properties = []int{25}
	r.players[1].Properties = []int{10}
	r.players[1].Estates = []int{5, 9}
	r.players[0].Item = dto.ItemPeek
	beginDraftRound(r, []int{3, 7})

	result, err := r.UsePeek("p1", "p2")
	require.NoError(t, err)
	assert.Nil(t, result.Coins)
	assert.Equal(t, []int{5, 9}, result.RealEstateCards)
	assert.Equal(t, PeekWindowPhase2.Milliseconds(), result.DurationMs)
}

func TestPeekValidation(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	beginAuctionRound(r, []int{3, 1, 2, 10})
	r.players[0].Item = dto.ItemPeek

	_, err := r.UsePeek("p1", "p1")
	require.Error(t, err, "不能偷看自己")

	_, err = r.UsePeek("p1", "外人")
	require.Error(t, err, "目标必须在房间内")
}

func TestReverseOncePerRound(t *testing.T) {
	r, clk := newTestRoom(t, 3)
	beginAuctionRound(r, []int{3, 1, 2, 10, 11, 12})
	r.players[0].Item = dto.ItemReverse
	r.players[1].Item = dto.ItemReverse

	require.NoError(t, r.UseReverse("p1"))
	assert.Equal(t, -1, r.turnDirection)
	assert.True(t, r.roundReverseUsed)

	// 同一轮内第二次反转被拒绝，方向只翻转一次
	assert.ErrorIs(t, r.UseReverse("p2"), ErrReverseUsedThisRound)
	assert.Equal(t, -1, r.turnDirection)
	assert.False(t, r.players[1].ItemUsed, "被拒绝不算消耗道具")

	// 下一轮 roundReverseUsed 重置，p2 可以再用
	require.NoError(t, r.PlaceBid("p1", 1000))
	require.NoError(t, r.PassTurn("p3"))
	require.NoError(t, r.PassTurn("p2"))
	clk.advance(RoundEndDelay)
	require.True(t, r.Tick())
	require.NoError(t, r.UseReverse("p2"))
	assert.Equal(t, -1, r.turnDirection)
}

func TestReverseNotApplicableInPhase2(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	r.players[0].Properties = []int{25}
	r.players[1].Properties = []int{10}
	r.players[0].Item = dto.ItemReverse
	beginDraftRound(r, []int{3, 7})

	assert.ErrorIs(t, r.UseReverse("p1"), ErrItemNotApplicable)
}
