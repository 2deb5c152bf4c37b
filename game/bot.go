package game

import (
	"time"

	"go-auction/dto"
)

// AI 玩家决策参数
const (
	botThinkDelay     = time.Second // 行动前的停顿，避免瞬间响应
	botBidProbability = 0.7
)

// AdvanceBots 让轮到行动的 AI 玩家做出决策。由房间定时器驱动，
// 返回 true 表示状态有变化
func (r *Room) AdvanceBots() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	changed := false

	switch r.phase {
	case dto.PhaseItemSelection:
		for _, p := range r.players {
			if p.IsBot && !p.ItemChosen {
				items := []dto.ItemType{dto.ItemNone, dto.ItemReroll, dto.ItemPeek, dto.ItemReverse}
				p.Item = items[r.rng.Intn(len(items))]
				p.ItemChosen = true
				changed = true
			}
		}
		if changed && r.allItemsChosen() {
			r.startPhase1()
		}

	case dto.PhasePhase1:
		if r.sub != subBidding {
			return false
		}
		cur := r.players[r.turnIndex]
		if !cur.IsBot || now.Sub(r.turnStarted) < botThinkDelay {
			return false
		}
		minRaise := r.highestBid + BidUnit
		canAfford := cur.Coins+cur.CurrentBid >= minRaise
		if r.mustBid == cur.ID && canAfford {
			r.placeBid(cur, minRaise)
			return true
		}
		if canAfford && r.rng.Float64() < botBidProbability {
			r.placeBid(cur, minRaise)
		} else {
			r.passTurn(cur, r.mustBid == cur.ID)
		}
		return true

	case dto.PhasePhase2:
		if r.sub != subSelecting || now.Sub(r.turnStarted) < botThinkDelay {
			return false
		}
		for _, p := range r.players {
			if p.IsBot && !p.HasSubmitted && len(p.Properties) > 0 {
				r.submitCard(p, p.Properties[r.rng.Intn(len(p.Properties))])
				changed = true
			}
		}
	}
	return changed
}
