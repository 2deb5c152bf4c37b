package game

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"go-auction/dto"
)

// 经济与时间常量，全部以服务端为准
const (
	StartingCoins = 15000
	BidUnit       = 1000

	MinPlayers = 2
	MaxPlayers = 5

	TurnTimeout     = 10 * time.Second // 第一阶段单人回合 / 第二阶段全员提交
	SelectTimeout   = 10 * time.Second // 道具选择阶段
	RoundEndDelay   = 3 * time.Second  // 一轮结束后的展示停顿
	RevealDelay     = 2 * time.Second  // 第二阶段亮牌停顿
	DistributeDelay = 3 * time.Second  // 第二阶段发牌停顿

	PeekWindowPhase1 = 3 * time.Second
	PeekWindowPhase2 = 4 * time.Second
)

// 阶段内子状态
const (
	subIdle         = ""
	subBidding      = "bidding"
	subRoundEnd     = "round_end"
	subSelecting    = "selecting"
	subRevealing    = "revealing"
	subDistributing = "distributing"
)

// Room 单个房间的权威游戏状态。所有玩家动作都经过 mu 串行化，
// 不同房间之间互不影响
type Room struct {
	mu sync.Mutex

	ID         string
	MaxPlayers int

	players []*Player // 按加入顺序
	phase   dto.Phase
	sub     string

	jobDeck    []int
	estateDeck []int
	revealed   []int // 第一阶段为职业卡（升序），第二阶段为房产卡（降序）

	round            int // 第一阶段轮次
	round2           int // 第二阶段轮次
	turnIndex        int
	turnDirection    int
	highestBid       int
	highBidder       string
	mustBid          string
	roundReverseUsed bool

	turnStarted time.Time // 当前计时起点
	deadline    time.Time // 超时强制行动的截止点
	resumeAt    time.Time // 展示停顿结束点

	rankings []dto.PlayerRanking

	now func() time.Time
	rng *rand.Rand
}

// NewRoom 创建房间。rng 与 now 由调用方注入，便于固定种子复现对局
func NewRoom(id string, maxPlayers int, rng *rand.Rand, now func() time.Time) *Room {
	if maxPlayers < MinPlayers || maxPlayers > MaxPlayers {
		maxPlayers = MaxPlayers
	}
	return &Room{
		ID:            id,
		MaxPlayers:    maxPlayers,
		phase:         dto.PhaseLobby,
		turnDirection: 1,
		now:           now,
		rng:           rng,
	}
}

// Join 新玩家加入，只能在大厅阶段。第一个加入者成为房主
func (r *Room) Join(playerID, nickname string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != dto.PhaseLobby {
		return nil, ErrWrongPhase
	}
	if len(r.players) >= r.MaxPlayers {
		return nil, ErrRoomFull
	}
	for _, p := range r.players {
		if p.ID == playerID {
			return nil, newValidationError("玩家已在房间内")
		}
	}

	p := &Player{
		ID:       playerID,
		Nickname: nickname,
		Avatar:   avatarPalette[len(r.players)%len(avatarPalette)],
		IsHost:   len(r.players) == 0,
		Online:   true,
		Coins:    StartingCoins,
	}
	r.players = append(r.players, p)
	return p, nil
}

// Rejoin 断线玩家重连，任何阶段都允许
func (r *Room) Rejoin(playerID string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.players {
		if p.ID == playerID {
			p.Online = true
			return p, nil
		}
	}
	return nil, newValidationError("玩家不在该房间中")
}

// AddBot 房主在大厅添加一个 AI 玩家
func (r *Room) AddBot(playerID, requesterID, nickname string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != dto.PhaseLobby {
		return nil, ErrWrongPhase
	}
	req := r.findPlayer(requesterID)
	if req == nil || !req.IsHost {
		return nil, ErrNotHost
	}
	if len(r.players) >= r.MaxPlayers {
		return nil, ErrRoomFull
	}

	p := &Player{
		ID:       playerID,
		Nickname: nickname,
		Avatar:   avatarPalette[len(r.players)%len(avatarPalette)],
		IsBot:    true,
		IsReady:  true,
		Online:   true,
		Coins:    StartingCoins,
	}
	r.players = append(r.players, p)
	return p, nil
}

// SetReady 大厅内切换准备状态
func (r *Room) SetReady(playerID string, ready bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != dto.PhaseLobby {
		return ErrWrongPhase
	}
	p := r.findPlayer(playerID)
	if p == nil {
		return newValidationError("玩家不在该房间中")
	}
	p.IsReady = ready
	return nil
}

// StartGame 房主开局。除房主外所有玩家必须已准备
func (r *Room) StartGame(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != dto.PhaseLobby {
		return ErrWrongPhase
	}
	p := r.findPlayer(playerID)
	if p == nil {
		return newValidationError("玩家不在该房间中")
	}
	if !p.IsHost {
		return ErrNotHost
	}
	if len(r.players) < MinPlayers {
		return newValidationError(fmt.Sprintf("至少需要 %d 名玩家", MinPlayers))
	}
	for _, other := range r.players {
		if !other.IsHost && !other.IsReady {
			return newValidationError("还有玩家未准备")
		}
	}

	r.phase = dto.PhaseItemSelection
	r.turnStarted = r.now()
	r.deadline = r.turnStarted.Add(SelectTimeout)
	return nil
}

// SelectItem 道具选择阶段挑选道具。全员选完立即进入第一阶段
func (r *Room) SelectItem(playerID, item string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != dto.PhaseItemSelection {
		return ErrWrongPhase
	}
	p := r.findPlayer(playerID)
	if p == nil {
		return newValidationError("玩家不在该房间中")
	}
	if p.ItemChosen {
		return newValidationError("已经选过道具了")
	}

	switch dto.ItemType(item) {
	case dto.ItemNone, dto.ItemReroll, dto.ItemPeek, dto.ItemReverse:
		p.Item = dto.ItemType(item)
	default:
		return newValidationError("未知的道具类型")
	}
	p.ItemChosen = true

	if r.allItemsChosen() {
		r.startPhase1()
	}
	return nil
}

// HandleDisconnect 处理断线。大厅阶段直接移除，开局后标记离线并由
// 定时器在下个 tick 强制行动。返回 true 表示房间应当销毁
func (r *Room) HandleDisconnect(playerID string) (destroyed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findPlayer(playerID)
	if p == nil {
		return false
	}

	if r.phase == dto.PhaseLobby {
		wasHost := p.IsHost
		r.removePlayer(playerID)
		return wasHost || len(r.players) == 0
	}

	p.Online = false

	// 所有真人都离线时房间不再有存在意义
	for _, other := range r.players {
		if !other.IsBot && other.Online {
			return false
		}
	}
	return true
}

// Tick 推进时间驱动的状态：超时强制行动、展示停顿结束后的轮次推进。
// 返回 true 表示状态有变化，需要广播
func (r *Room) Tick() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	switch r.phase {
	case dto.PhaseItemSelection:
		if now.Before(r.deadline) {
			return false
		}
		for _, p := range r.players {
			if !p.ItemChosen {
				p.Item = dto.ItemNone
				p.ItemChosen = true
			}
		}
		r.startPhase1()
		return true

	case dto.PhasePhase1:
		return r.tickPhase1(now)

	case dto.PhasePhase2:
		return r.tickPhase2(now)
	}
	return false
}

// Phase 当前阶段
func (r *Room) Phase() dto.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Rankings 终局排名，未结束时为空
func (r *Room) Rankings() []dto.PlayerRanking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dto.PlayerRanking, len(r.rankings))
	copy(out, r.rankings)
	return out
}

// PlayerIDs 当前所有玩家 ID，按加入顺序
func (r *Room) PlayerIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.players))
	for _, p := range r.players {
		ids = append(ids, p.ID)
	}
	return ids
}

// ---------- 以下方法由持锁的调用方使用 ----------

func (r *Room) findPlayer(playerID string) *Player {
	for _, p := range r.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// removePlayer 只在大厅阶段调用。房主离开直接销毁房间，
// 不存在房主顺延
func (r *Room) removePlayer(playerID string) {
	for i, p := range r.players {
		if p.ID == playerID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return
		}
	}
}

func (r *Room) allItemsChosen() bool {
	for _, p := range r.players {
		if !p.ItemChosen {
			return false
		}
	}
	return true
}

func (r *Room) startPhase1() {
	r.phase = dto.PhasePhase1
	r.jobDeck = NewJobDeck(r.rng)
	r.estateDeck = NewEstateDeck(r.rng)
	r.round = 0
	r.startAuctionRound()
}

// startAuctionRound 开启第一阶段新一轮：重置竞价状态并翻开
// playerCount 张职业卡（升序，最小一张是安慰奖）。牌堆余量不足时
// 直接进入第二阶段
func (r *Room) startAuctionRound() {
	n := len(r.players)
	if len(r.jobDeck) < n {
		r.startPhase2()
		return
	}

	r.round++
	for _, p := range r.players {
		p.CurrentBid = 0
		p.HasPassed = false
	}
	r.turnDirection = 1
	r.roundReverseUsed = false
	r.mustBid = ""
	r.highestBid = 0
	r.highBidder = ""
	r.turnIndex = 0

	r.revealed, r.jobDeck = draw(r.jobDeck, n)
	sort.Ints(r.revealed)

	r.sub = subBidding
	r.resetTurnTimer()
}

func (r *Room) startPhase2() {
	r.phase = dto.PhasePhase2
	r.sub = subIdle
	r.revealed = nil
	r.round2 = 0
	r.startDraftRound()
}

func (r *Room) resetTurnTimer() {
	r.turnStarted = r.now()
	r.deadline = r.turnStarted.Add(TurnTimeout)
}

func (r *Room) finishGame() {
	r.phase = dto.PhaseGameOver
	r.sub = subIdle
	r.revealed = nil

	// 并列分数按加入顺序排定（稳定排序）
	ranked := make([]*Player, len(r.players))
	copy(ranked, r.players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Coins+ranked[i].estateValue() > ranked[j].Coins+ranked[j].estateValue()
	})

	r.rankings = make([]dto.PlayerRanking, 0, len(ranked))
	for i, p := range ranked {
		estates := make([]int, len(p.Estates))
		copy(estates, p.Estates)
		r.rankings = append(r.rankings, dto.PlayerRanking{
			PlayerID:        p.ID,
			Nickname:        p.Nickname,
			Rank:            i + 1,
			RemainingCoins:  p.Coins,
			EstateValue:     p.estateValue(),
			RealEstateCards: estates,
			FinalScore:      p.Coins + p.estateValue(),
		})
	}
}
