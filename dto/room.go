package dto

// GameConn 发送消息所需的最小连接接口，真实玩家为 *websocket.Conn，
// AI 玩家为 ws 包里的 VirtualConn
type GameConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// PlayerConn 房间内的一条玩家连接
type PlayerConn struct {
	PlayerID string
	Conn     GameConn
	Online   bool
}

type RoomInfo struct {
	RoomID     string       `json:"roomID"`
	Host       string       `json:"host"`
	MaxPlayers int          `json:"maxPlayers"`
	Status     string       `json:"status"`
	RoomPlayer []RoomPlayer `json:"players"`
}

type RoomPlayer struct {
	PlayerID string `json:"playerID"`
	Online   bool   `json:"online"`
}

type CreateRoomRequest struct {
	Nickname   string `json:"nickname" binding:"required"`
	MaxPlayers int    `json:"maxPlayers"`
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id"`
}

type DeleteRoomRequest struct {
	RoomID string `json:"roomID" binding:"required"`
}

type GetRoomList struct {
	Rooms []RoomInfo `json:"rooms"`
}
