package dto

// Phase 游戏阶段，单向推进不可回退
type Phase string

const (
	PhaseLobby         Phase = "lobby"
	PhaseItemSelection Phase = "item_selection"
	PhasePhase1        Phase = "phase1_bidding"
	PhasePhase2        Phase = "phase2_playing"
	PhaseGameOver      Phase = "game_over"
)

// ItemType 特殊道具类型，全局只能使用一次
type ItemType string

const (
	ItemNone    ItemType = ""
	ItemReroll  ItemType = "reroll"
	ItemPeek    ItemType = "peek"
	ItemReverse ItemType = "reverse"
)

// ---------- 入站消息 payload ----------

type ReadyRequest struct {
	Ready bool `mapstructure:"ready"`
}

type SelectItemRequest struct {
	Item string `mapstructure:"item"`
}

type PlaceBidRequest struct {
	Amount int `mapstructure:"amount"`
}

type PlayCardRequest struct {
	CardID int `mapstructure:"card_id"`
}

type PeekRequest struct {
	TargetID string `mapstructure:"targetId"`
}

type ChatRequest struct {
	Message string `mapstructure:"message"`
}

// ---------- 出站快照 ----------

// PlayerSnapshot 单个玩家的视图。他人视角下 Coins 为 -1、
// 卡牌列表为空（只保留数量字段）
type PlayerSnapshot struct {
	ID               string `json:"id"`
	Nickname         string `json:"nickname"`
	Avatar           string `json:"avatar"`
	IsHost           bool   `json:"isHost"`
	IsReady          bool   `json:"isReady"`
	IsBot            bool   `json:"isBot"`
	Online           bool   `json:"online"`
	Coins            int    `json:"coins"`
	CurrentBid       int    `json:"currentBid"`
	HasPassed        bool   `json:"hasPassed"`
	IsCurrentTurn    bool   `json:"isCurrentTurn"`
	Properties       []int  `json:"properties"`
	PropertyCount    int    `json:"propertyCount"`
	RealEstateCards  []int  `json:"realEstateCards"`
	RealEstateCount  int    `json:"realEstateCount"`
	SelectedProperty int    `json:"selectedProperty"`
	HasSelected      bool   `json:"hasSelected"`
	Item             string `json:"item"`
	ItemUsed         bool   `json:"itemUsed"`
}

// RoomSnapshot 发给单个玩家的完整房间状态（已按对方视角脱敏）
type RoomSnapshot struct {
	RoomID                 string           `json:"roomId"`
	Phase                  Phase            `json:"phase"`
	Players                []PlayerSnapshot `json:"players"`
	CurrentProperties      []int            `json:"currentProperties"`
	CurrentRealEstateCards []int            `json:"currentRealEstateCards"`
	CurrentBid             int              `json:"currentBid"`
	CurrentHighBidder      string           `json:"currentHighBidder"`
	CurrentTurn            string           `json:"currentTurn"`
	RoundNumber            int              `json:"roundNumber"`
	Phase2RoundNumber      int              `json:"phase2RoundNumber"`
	TurnDirection          int              `json:"turnDirection"`
	MustBidPlayer          string           `json:"mustBidPlayer"`
	ReverseUsedThisRound   bool             `json:"reverseUsedThisRound"`
	AllPlayersSelected     bool             `json:"allPlayersSelected"`
	TurnStartTime          int64            `json:"turnStartTime"`
	TurnTimeoutMs          int64            `json:"turnTimeout"`
	FinalRankings          []PlayerRanking  `json:"finalRankings,omitempty"`
}

// PeekResult 偷看结果，只私发给使用者本人，到期后前端自动关闭
type PeekResult struct {
	RequesterID     string `json:"requesterId"`
	TargetID        string `json:"targetId"`
	TargetNickname  string `json:"targetNickname"`
	Coins           *int   `json:"coins,omitempty"`
	RealEstateCards []int  `json:"realEstateCards,omitempty"`
	DurationMs      int64  `json:"durationMs"`
}

// PlayerRanking 终局排名条目
type PlayerRanking struct {
	PlayerID        string `json:"playerId"`
	Nickname        string `json:"nickname"`
	Rank            int    `json:"rank"`
	RemainingCoins  int    `json:"remainingCoins"`
	EstateValue     int    `json:"estateValue"`
	RealEstateCards []int  `json:"realEstateCards"`
	FinalScore      int    `json:"finalScore"`
}
