package game

import (
	"time"

	"go-auction/dto"
)

// PlaceBid 第一阶段出价。金额必须是 1000 的整数倍且高于当前最高价
func (r *Room) PlaceBid(playerID string, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.biddingTurnPlayer(playerID)
	if err != nil {
		return err
	}
	return r.placeBid(p, amount)
}

// PassTurn 第一阶段放弃竞拍。退还一半押注（向下取整到 1000），
// 拿走当前最小的一张翻开职业卡
func (r *Room) PassTurn(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.biddingTurnPlayer(playerID)
	if err != nil {
		return err
	}
	return r.passTurn(p, false)
}

// biddingTurnPlayer 校验此刻轮到 playerID 出价
func (r *Room) biddingTurnPlayer(playerID string) (*Player, error) {
	if r.phase == dto.PhaseGameOver {
		return nil, ErrGameAlreadyOver
	}
	if r.phase != dto.PhasePhase1 || r.sub != subBidding {
		return nil, ErrWrongPhase
	}
	p := r.findPlayer(playerID)
	if p == nil {
		return nil, newValidationError("玩家不在该房间中")
	}
	if r.players[r.turnIndex] != p {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// placeBid 超时强制出价与主动出价共用同一条路径
func (r *Room) placeBid(p *Player, amount int) error {
	if amount <= r.highestBid {
		return newValidationError("出价必须高于当前最高价")
	}
	if amount%BidUnit != 0 {
		return newValidationError("出价必须是 1000 的整数倍")
	}
	delta := amount - p.CurrentBid
	if delta > p.Coins {
		return ErrInsufficientFunds
	}

	p.Coins -= delta
	p.CurrentBid = amount
	r.highestBid = amount
	r.highBidder = p.ID
	if r.mustBid == p.ID {
		r.mustBid = ""
	}

	r.advanceTurn()
	r.resetTurnTimer()
	return nil
}

// passTurn 放弃竞拍。forced 为 true 时跳过 mustBid 校验（超时或断线
// 强制路径，资金不足的例外已由调用方判定）
func (r *Room) passTurn(p *Player, forced bool) error {
	if !forced && r.mustBid == p.ID {
		// 付得起最低加价就不许放弃
		minRaise := r.highestBid + BidUnit
		if p.Coins+p.CurrentBid >= minRaise {
			return ErrPassForbidden
		}
	}

	refund := (p.CurrentBid / 2) / BidUnit * BidUnit
	p.Coins += refund
	p.CurrentBid = 0
	p.HasPassed = true
	if r.mustBid == p.ID {
		r.mustBid = ""
	}

	// 放弃者拿走最小的一张翻开卡
	if len(r.revealed) > 0 {
		p.Properties = append(p.Properties, r.revealed[0])
		r.revealed = r.revealed[1:]
	}

	// 只剩一名活跃玩家时本轮立即结束：该玩家拿走下一张最小卡，
	// 已押注的钱不退
	if last := r.lastActivePlayer(); last != nil {
		if len(r.revealed) > 0 {
			last.Properties = append(last.Properties, r.revealed[0])
			r.revealed = r.revealed[1:]
		}
		last.CurrentBid = 0
		r.endAuctionRound()
		return nil
	}

	r.advanceTurn()
	r.resetTurnTimer()
	return nil
}

// lastActivePlayer 活跃玩家只剩一人时返回该玩家，否则返回 nil
func (r *Room) lastActivePlayer() *Player {
	var last *Player
	for _, p := range r.players {
		if !p.HasPassed {
			if last != nil {
				return nil
			}
			last = p
		}
	}
	return last
}

// advanceTurn 沿 turnDirection 找到下一名未放弃的玩家
func (r *Room) advanceTurn() {
	n := len(r.players)
	for i := 0; i < n; i++ {
		r.turnIndex = ((r.turnIndex+r.turnDirection)%n + n) % n
		if !r.players[r.turnIndex].HasPassed {
			return
		}
	}
}

func (r *Room) endAuctionRound() {
	r.sub = subRoundEnd
	r.revealed = nil
	r.resumeAt = r.now().Add(RoundEndDelay)
}

// tickPhase1 第一阶段的时间推进：停顿结束开新轮，回合超时或断线
// 触发强制行动
func (r *Room) tickPhase1(now time.Time) bool {
	switch r.sub {
	case subRoundEnd:
		if now.Before(r.resumeAt) {
			return false
		}
		r.startAuctionRound()
		return true

	case subBidding:
		cur := r.players[r.turnIndex]
		if cur.Online && now.Before(r.deadline) {
			return false
		}
		r.forceAction(cur)
		return true
	}
	return false
}

// forceAction 超时或断线的强制行动：被反转指定且付得起最低加价的
// 玩家强制出价，其余情况强制放弃。强制行动永不失败
func (r *Room) forceAction(p *Player) {
	if r.mustBid == p.ID {
		minRaise := r.highestBid + BidUnit
		if p.Coins+p.CurrentBid >= minRaise {
			r.placeBid(p, minRaise)
			return
		}
	}
	r.passTurn(p, true)
}
