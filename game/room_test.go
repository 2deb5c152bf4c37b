package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"go-auction/dto"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// newTestRoom 建一个 n 人房间，玩家 ID 为 p1..pn，p1 是房主
func newTestRoom(t *testing.T, n int) (*Room, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Unix(1700000000, 0)}
	r := NewRoom("test01", MaxPlayers, rand.New(rand.NewSource(7)), clk.now)
	for i := 1; i <= n; i++ {
		_, err := r.Join(fmt.Sprintf("p%d", i), fmt.Sprintf("玩家%d", i))
		require.NoError(t, err)
	}
	return r, clk
}

// beginAuctionRound 直接把房间推进到第一阶段，用指定牌堆开第一轮
func beginAuctionRound(r *Room, jobDeck []int) {
	r.phase = dto.PhasePhase1
	r.jobDeck = jobDeck
	r.estateDeck = NewEstateDeck(r.rng)
	r.round = 0
	r.startAuctionRound()
}

// beginDraftRound 直接把房间推进到第二阶段
func beginDraftRound(r *Room, estateDeck []int) {
	r.phase = dto.PhasePhase2
	r.jobDeck = nil
	r.estateDeck = estateDeck
	r.round2 = 0
	r.startDraftRound()
}

func TestJoinAssignsHostAndCoins(t *testing.T) {
	r, _ := newTestRoom(t, 3)

	assert.True(t, r.players[0].IsHost)
	assert.False(t, r.players[1].IsHost)
	for _, p := range r.players {
		assert.Equal(t, StartingCoins, p.Coins)
		assert.True(t, p.Online)
	}
	// 头像按加入顺序分配且互不相同
	assert.NotEqual(t, r.players[0].Avatar, r.players[1].Avatar)
}

func TestJoinRoomFull(t *testing.T) {
	r, _ := newTestRoom(t, MaxPlayers)

	_, err := r.Join("p6", "晚来的")
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestJoinDuplicateRejected(t *testing.T) {
	r, _ := newTestRoom(t, 2)

	_, err := r.Join("p1", "重复")
	require.Error(t, err)
	ge, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", ge.Code)
}

func TestStartGameGates(t *testing.T) {
	r, _ := newTestRoom(t, 3)

	// 非房主不能开局
	assert.ErrorIs(t, r.StartGame("p2"), ErrNotHost)

	// 有人未准备不能开局
	require.NoError(t, r.SetReady("p2", true))
	err := r.StartGame("p1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*Error).Code)

	require.NoError(t, r.SetReady("p3", true))
	require.NoError(t, r.StartGame("p1"))
	assert.Equal(t, dto.PhaseItemSelection, r.Phase())

	// 开局后不能再加人
	_, err = r.Join("p4", "晚来的")
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestStartGameNeedsMinPlayers(t *testing.T) {
	r, _ := newTestRoom(t, 1)

	err := r.StartGame("p1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*Error).Code)
}

func TestSelectItemAllChosenStartsPhase1(t *testing.T) {
	r, _ := newTestRoom(t, 3)
	require.NoError(t, r.SetReady("p2", true))
	require.NoError(t, r.SetReady("p3", true))
	require.NoError(t, r.StartGame("p1"))

	require.NoError(t, r.SelectItem("p1", "reroll"))
	require.NoError(t, r.SelectItem("p2", "peek"))
	assert.Equal(t, dto.PhaseItemSelection, r.Phase())

	require.NoError(t, r.SelectItem("p3", ""))
	assert.Equal(t, dto.PhasePhase1, r.Phase())

	// 翻开 playerCount 张，升序
	require.Len(t, r.revealed, 3)
	assert.True(t, r.revealed[0] < r.revealed[1] && r.revealed[1] < r.revealed[2])
}

func TestSelectItemTimeout(t *testing.T) {
	r, clk := newTestRoom(t, 2)
	require.NoError(t, r.SetReady("p2", true))
	require.NoError(t, r.StartGame("p1"))

	require.NoError(t, r.SelectItem("p1", "reverse"))

	clk.advance(SelectTimeout - time.Millisecond)
	assert.False(t, r.Tick())

	clk.advance(time.Millisecond)
	assert.True(t, r.Tick())
	assert.Equal(t, dto.PhasePhase1, r.Phase())
	assert.Equal(t, dto.ItemNone, r.players[1].Item)
	assert.True(t, r.players[1].ItemChosen)
}

func TestSelectItemValidation(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	require.NoError(t, r.SetReady("p2", true))
	require.NoError(t, r.StartGame("p1"))

	err := r.SelectItem("p1", "炸弹")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*Error).Code)

	require.NoError(t, r.SelectItem("p1", "peek"))
	err = r.SelectItem("p1", "reroll")
	require.Error(t, err, "不能重复选择")
}

func TestAddBot(t *testing.T) {
	r, _ := newTestRoom(t, 2)

	_, err := r.AddBot("bot1", "p2", "阿强")
	assert.ErrorIs(t, err, ErrNotHost)

	bot, err := r.AddBot("bot1", "p1", "阿强")
	require.NoError(t, err)
	assert.True(t, bot.IsBot)
	assert.True(t, bot.IsReady)
	assert.Equal(t, StartingCoins, bot.Coins)
}

func TestLobbyDisconnect(t *testing.T) {
	r, _ := newTestRoom(t, 3)

	// 普通玩家离开：移除，房间保留，房主不变
	destroyed := r.HandleDisconnect("p2")
	assert.False(t, destroyed)
	require.Len(t, r.players, 2)
	assert.Equal(t, "p1", r.players[0].ID)
	assert.True(t, r.players[0].IsHost)
	assert.False(t, r.players[1].IsHost)

	// 房主离开大厅：房间销毁
	destroyed = r.HandleDisconnect("p1")
	assert.True(t, destroyed)
}

func TestMidGameDisconnectForcesPass(t *testing.T) {
	r, _ := newTestRoom(t, 3)
	beginAuctionRound(r, []int{4, 2, 9, 11, 12, 13})

	destroyed := r.HandleDisconnect("p1")
	assert.False(t, destroyed)
	assert.False(t, r.players[0].Online)

	// 下个 tick 立即替离线玩家强制放弃，不等超时
	assert.True(t, r.Tick())
	assert.True(t, r.players[0].HasPassed)
	assert.Equal(t, []int{2}, r.players[0].Properties)
}

func TestAllHumansOfflineDestroysRoom(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	_, err := r.AddBot("bot1", "p1", "阿强")
	require.NoError(t, err)
	beginAuctionRound(r, NewJobDeck(r.rng))

	assert.False(t, r.HandleDisconnect("p1"))
	assert.True(t, r.HandleDisconnect("p2"))
}

func TestRejoin(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	beginAuctionRound(r, NewJobDeck(r.rng))

	r.HandleDisconnect("p2")
	assert.False(t, r.players[1].Online)

	p, err := r.Rejoin("p2")
	require.NoError(t, err)
	assert.True(t, p.Online)

	_, err = r.Rejoin("外人")
	assert.Error(t, err)
}

func TestSnapshotRedaction(t *testing.T) {
	r, _ := newTestRoom(t, 3)
	beginAuctionRound(r, []int{4, 2, 9, 11, 12, 13})
	r.players[0].Properties = []int{7, 8}
	r.players[0].Estates = []int{5}
	r.players[0].Item = dto.ItemPeek

	own := r.Snapshot("p1")
	require.Len(t, own.Players, 3)
	assert.Equal(t, StartingCoins, own.Players[0].Coins)
	assert.Equal(t, []int{7, 8}, own.Players[0].Properties)
	assert.Equal(t, "peek", own.Players[0].Item)

	other := r.Snapshot("p2")
	assert.Equal(t, -1, other.Players[0].Coins, "他人金币脱敏")
	assert.Empty(t, other.Players[0].Properties, "他人手牌脱敏")
	assert.Equal(t, 2, other.Players[0].PropertyCount, "数量保留")
	assert.Equal(t, 1, other.Players[0].RealEstateCount)
	assert.Equal(t, "", other.Players[0].Item, "未使用的道具保密")

	// 快照是只读视图，不应影响状态
	again := r.Snapshot("p2")
	assert.Equal(t, other, again)
}

func TestSnapshotTurnInfo(t *testing.T) {
	r, _ := newTestRoom(t, 2)
	beginAuctionRound(r, []int{4, 2, 9, 11})

	snap := r.Snapshot("p1")
	assert.Equal(t, dto.PhasePhase1, snap.Phase)
	assert.Equal(t, "p1", snap.CurrentTurn)
	assert.True(t, snap.Players[0].IsCurrentTurn)
	assert.False(t, snap.Players[1].IsCurrentTurn)
	assert.Equal(t, []int{2, 4}, snap.CurrentProperties)
	assert.Equal(t, TurnTimeout.Milliseconds(), snap.TurnTimeoutMs)
}
