package entities

// RoomInfo 存放在 Redis room:<id>:info 哈希里的房间元数据
type RoomInfo struct {
	Host       string `json:"host"`
	MaxPlayers int    `json:"maxPlayers"`
	Status     string `json:"status"` // waiting / playing / finished
	CreatedAt  int64  `json:"createdAt"`
}
