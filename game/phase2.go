package game

import (
	"sort"
	"time"

	"go-auction/dto"
	"go-auction/utils"
)

// PlayCard 第二阶段提交一张自己的职业卡。提交内容在全员提交前
// 对其他玩家保密
func (r *Room) PlayCard(playerID string, cardID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == dto.PhaseGameOver {
		return ErrGameAlreadyOver
	}
	if r.phase != dto.PhasePhase2 || r.sub != subSelecting {
		return ErrWrongPhase
	}
	p := r.findPlayer(playerID)
	if p == nil {
		return newValidationError("玩家不在该房间中")
	}
	if p.HasSubmitted {
		return newValidationError("本轮已经提交过了")
	}
	if !p.hasProperty(cardID) {
		return newValidationError("没有这张职业卡")
	}

	r.submitCard(p, cardID)
	return nil
}

// submitCard 主动提交与超时自动提交共用
func (r *Room) submitCard(p *Player, cardID int) {
	p.Submitted = cardID
	p.HasSubmitted = true

	if r.allSubmitted() {
		r.sub = subRevealing
		r.resumeAt = r.now().Add(RevealDelay)
	}
}

func (r *Room) allSubmitted() bool {
	for _, p := range r.players {
		if len(p.Properties) > 0 && !p.HasSubmitted {
			return false
		}
	}
	return true
}

// startDraftRound 开启第二阶段新一轮：翻开 playerCount 张房产卡
// （降序）。房产牌堆余量不足或玩家手牌打完时进入终局
func (r *Room) startDraftRound() {
	n := len(r.players)
	if len(r.estateDeck) < n || !r.anyoneHoldsProperties() {
		r.finishGame()
		return
	}

	r.round2++
	for _, p := range r.players {
		p.Submitted = 0
		p.HasSubmitted = false
	}

	r.revealed, r.estateDeck = draw(r.estateDeck, n)
	sort.Sort(sort.Reverse(sort.IntSlice(r.revealed)))

	r.sub = subSelecting
	r.resetTurnTimer()
}

func (r *Room) anyoneHoldsProperties() bool {
	for _, p := range r.players {
		if len(p.Properties) > 0 {
			return true
		}
	}
	return false
}

// resolveDraftRound 全员亮牌：提交的职业卡按面值降序排名，第 N 名
// 获得第 N 大的房产卡。消耗提交卡，发放房产卡
func (r *Room) resolveDraftRound() {
	submitted := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.HasSubmitted {
			submitted = append(submitted, p)
		}
	}
	// 职业卡编号全局唯一，不会有并列
	sort.Slice(submitted, func(i, j int) bool {
		return submitted[i].Submitted > submitted[j].Submitted
	})

	for i, p := range submitted {
		if i >= len(r.revealed) {
			break
		}
		p.Estates = append(p.Estates, r.revealed[i])
		p.Properties = utils.RemoveInt(p.Properties, p.Submitted)
	}

	r.sub = subDistributing
	r.resumeAt = r.now().Add(DistributeDelay)
}

// tickPhase2 第二阶段的时间推进：提交超时自动打出最小手牌，
// 亮牌与发牌停顿结束后进入下一步
func (r *Room) tickPhase2(now time.Time) bool {
	switch r.sub {
	case subSelecting:
		changed := false
		// 断线玩家立即代提交，不等超时
		for _, p := range r.players {
			if !p.Online && !p.HasSubmitted && len(p.Properties) > 0 {
				r.submitCard(p, p.lowestProperty())
				changed = true
			}
		}
		if now.Before(r.deadline) {
			return changed
		}
		for _, p := range r.players {
			if !p.HasSubmitted && len(p.Properties) > 0 {
				r.submitCard(p, p.lowestProperty())
				changed = true
			}
		}
		return changed

	case subRevealing:
		if now.Before(r.resumeAt) {
			return false
		}
		r.resolveDraftRound()
		return true

	case subDistributing:
		if now.Before(r.resumeAt) {
			return false
		}
		r.startDraftRound()
		return true
	}
	return false
}
