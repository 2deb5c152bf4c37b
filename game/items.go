package game

import (
	"sort"

	"go-auction/dto"
)

// itemHolder 校验玩家持有指定道具且尚未使用
func (r *Room) itemHolder(playerID string, item dto.ItemType) (*Player, error) {
	if r.phase == dto.PhaseGameOver {
		return nil, ErrGameAlreadyOver
	}
	p := r.findPlayer(playerID)
	if p == nil {
		return nil, newValidationError("玩家不在该房间中")
	}
	if p.Item != item {
		return nil, newValidationError("你没有这个道具")
	}
	if p.ItemUsed {
		return nil, ErrItemAlreadyUsed
	}
	return p, nil
}

// UseReroll 洗牌道具：把本轮翻开的卡折回牌堆重洗重翻。只允许在
// 本轮还没有任何对抗发生时使用：第一阶段要求无人出价且无人放弃，
// 第二阶段要求使用者自己还没提交
func (r *Room) UseReroll(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.itemHolder(playerID, dto.ItemReroll)
	if err != nil {
		return err
	}

	switch r.phase {
	case dto.PhasePhase1:
		if r.sub != subBidding || r.highestBid > 0 || r.anyonePassed() {
			return ErrItemNotUsableNow
		}
		n := len(r.revealed)
		r.jobDeck = append(r.jobDeck, r.revealed...)
		shuffle(r.rng, r.jobDeck)
		r.revealed, r.jobDeck = draw(r.jobDeck, n)
		sort.Ints(r.revealed)

	case dto.PhasePhase2:
		if r.sub != subSelecting || p.HasSubmitted {
			return ErrItemNotUsableNow
		}
		n := len(r.revealed)
		r.estateDeck = append(r.estateDeck, r.revealed...)
		shuffle(r.rng, r.estateDeck)
		r.revealed, r.estateDeck = draw(r.estateDeck, n)
		sort.Sort(sort.Reverse(sort.IntSlice(r.revealed)))

	default:
		return ErrItemNotUsableNow
	}

	p.ItemUsed = true
	r.resetTurnTimer()
	return nil
}

// UsePeek 偷看道具：第一阶段看对方余额（须在自己回合），第二阶段
// 看对方房产（须在自己提交前）。结果只私发给使用者
func (r *Room) UsePeek(playerID, targetID string) (*dto.PeekResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.itemHolder(playerID, dto.ItemPeek)
	if err != nil {
		return nil, err
	}
	if targetID == playerID {
		return nil, newValidationError("不能偷看自己")
	}
	target := r.findPlayer(targetID)
	if target == nil {
		return nil, newValidationError("目标玩家不在该房间中")
	}

	result := &dto.PeekResult{
		RequesterID:    p.ID,
		TargetID:       target.ID,
		TargetNickname: target.Nickname,
	}

	switch r.phase {
	case dto.PhasePhase1:
		if r.sub != subBidding || r.players[r.turnIndex] != p {
			return nil, ErrItemNotUsableNow
		}
		coins := target.Coins
		result.Coins = &coins
		result.DurationMs = PeekWindowPhase1.Milliseconds()

	case dto.PhasePhase2:
		if r.sub != subSelecting || p.HasSubmitted {
			return nil, ErrItemNotUsableNow
		}
		estates := make([]int, len(target.Estates))
		copy(estates, target.Estates)
		result.RealEstateCards = estates
		result.DurationMs = PeekWindowPhase2.Milliseconds()

	default:
		return nil, ErrItemNotUsableNow
	}

	p.ItemUsed = true
	return result, nil
}

// UseReverse 反转道具：只在第一阶段可用。翻转出价方向，使用者本轮
// 被标记为必须出价（除非付不起最低加价）。每轮最多生效一次
func (r *Room) UseReverse(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.itemHolder(playerID, dto.ItemReverse)
	if err != nil {
		return err
	}

	if r.phase == dto.PhasePhase2 {
		return ErrItemNotApplicable
	}
	if r.phase != dto.PhasePhase1 || r.sub != subBidding {
		return ErrItemNotUsableNow
	}
	if r.roundReverseUsed {
		return ErrReverseUsedThisRound
	}
	if p.HasPassed {
		return ErrItemNotUsableNow
	}

	r.turnDirection = -r.turnDirection
	r.mustBid = p.ID
	r.roundReverseUsed = true
	p.ItemUsed = true
	return nil
}

func (r *Room) anyonePassed() bool {
	for _, p := range r.players {
		if p.HasPassed {
			return true
		}
	}
	return false
}
