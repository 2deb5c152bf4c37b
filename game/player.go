package game

import (
	"go-auction/dto"
	"go-auction/utils"
)

// 玩家头像配色，按加入顺序分配
var avatarPalette = []string{
	"bg-yellow-300",
	"bg-pink-300",
	"bg-cyan-300",
	"bg-green-300",
	"bg-purple-300",
}

// Player 房间内的一名玩家。所有字段由所属 Room 的锁保护
type Player struct {
	ID       string
	Nickname string
	Avatar   string
	IsHost   bool
	IsReady  bool
	IsBot    bool
	Online   bool

	Coins      int
	CurrentBid int
	HasPassed  bool

	Properties []int // 第一阶段赢得的职业卡
	Estates    []int // 第二阶段赢得的房产卡

	Submitted    int // 本轮提交的职业卡
	HasSubmitted bool

	Item       dto.ItemType
	ItemChosen bool
	ItemUsed   bool
}

// hasProperty 是否持有编号为 id 的职业卡
func (p *Player) hasProperty(id int) bool {
	return utils.ContainsInt(p.Properties, id)
}

// lowestProperty 最小编号的职业卡，超时自动提交用
func (p *Player) lowestProperty() int {
	return utils.MinInt(p.Properties)
}

// estateValue 持有房产的总面值
func (p *Player) estateValue() int {
	total := 0
	for _, c := range p.Estates {
		total += EstateValue(c)
	}
	return total
}
