package game

import "go-auction/dto"

// Snapshot 生成发给 viewerID 的房间视图。对手的金币、手牌和未使用
// 的道具一律脱敏，只保留数量；第二阶段亮牌后提交的卡对全员可见
func (r *Room) Snapshot(viewerID string) dto.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	revealedSubmissions := r.phase == dto.PhasePhase2 &&
		(r.sub == subRevealing || r.sub == subDistributing)

	players := make([]dto.PlayerSnapshot, 0, len(r.players))
	for i, p := range r.players {
		ps := dto.PlayerSnapshot{
			ID:              p.ID,
			Nickname:        p.Nickname,
			Avatar:          p.Avatar,
			IsHost:          p.IsHost,
			IsReady:         p.IsReady,
			IsBot:           p.IsBot,
			Online:          p.Online,
			CurrentBid:      p.CurrentBid,
			HasPassed:       p.HasPassed,
			IsCurrentTurn:   r.phase == dto.PhasePhase1 && r.sub == subBidding && i == r.turnIndex,
			PropertyCount:   len(p.Properties),
			RealEstateCount: len(p.Estates),
			ItemUsed:        p.ItemUsed,
		}

		switch r.phase {
		case dto.PhaseItemSelection:
			ps.HasSelected = p.ItemChosen
		case dto.PhasePhase2:
			ps.HasSelected = p.HasSubmitted
		}

		if p.ID == viewerID {
			ps.Coins = p.Coins
			ps.Properties = append([]int{}, p.Properties...)
			ps.RealEstateCards = append([]int{}, p.Estates...)
			ps.SelectedProperty = p.Submitted
			ps.Item = string(p.Item)
		} else {
			ps.Coins = -1
			ps.Properties = []int{}
			ps.RealEstateCards = []int{}
			if revealedSubmissions {
				ps.SelectedProperty = p.Submitted
			}
			// 道具在用掉之前对其他人保密
			if p.ItemUsed {
				ps.Item = string(p.Item)
			}
		}
		players = append(players, ps)
	}

	snap := dto.RoomSnapshot{
		RoomID:               r.ID,
		Phase:                r.phase,
		Players:              players,
		CurrentBid:           r.highestBid,
		CurrentHighBidder:    r.highBidder,
		RoundNumber:          r.round,
		Phase2RoundNumber:    r.round2,
		TurnDirection:        r.turnDirection,
		MustBidPlayer:        r.mustBid,
		ReverseUsedThisRound: r.roundReverseUsed,
		TurnStartTime:        r.turnStarted.UnixMilli(),
		TurnTimeoutMs:        TurnTimeout.Milliseconds(),
		CurrentProperties:    []int{},
		CurrentRealEstateCards: []int{},
	}

	switch r.phase {
	case dto.PhasePhase1:
		snap.CurrentProperties = append([]int{}, r.revealed...)
		if r.sub == subBidding {
			snap.CurrentTurn = r.players[r.turnIndex].ID
		}
	case dto.PhasePhase2:
		snap.CurrentRealEstateCards = append([]int{}, r.revealed...)
		snap.AllPlayersSelected = revealedSubmissions
	case dto.PhaseGameOver:
		snap.FinalRankings = append([]dto.PlayerRanking{}, r.rankings...)
	}

	return snap
}
