package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"go-auction/dto"
	"go-auction/game"
	"go-auction/logger"
	"go-auction/repository"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RoomSession 一个房间的连接集合与游戏实例
type RoomSession struct {
	Game     *game.Room
	Conns    []dto.PlayerConn
	stop     chan struct{}
	archived bool
}

// 所有活跃房间。连接写入和 map 读写都必须持有 roomLock，
// gorilla 的连接同一时刻只允许一个写入方
var rooms = make(map[string]*RoomSession)
var roomLock sync.Mutex

// RegisterRoom 登记新房间并启动它的定时器
func RegisterRoom(roomID string, g *game.Room) *RoomSession {
	roomLock.Lock()
	defer roomLock.Unlock()

	sess := &RoomSession{
		Game:  g,
		Conns: []dto.PlayerConn{},
		stop:  make(chan struct{}),
	}
	rooms[roomID] = sess
	go runTicker(roomID, sess)
	return sess
}

// GetSession 按房间 ID 查找会话
func GetSession(roomID string) *RoomSession {
	roomLock.Lock()
	defer roomLock.Unlock()
	return rooms[roomID]
}

// RoomPlayers 在锁内为每个房间拷贝一份连接列表，供 REST 层枚举
func RoomPlayers() map[string][]dto.PlayerConn {
	roomLock.Lock()
	defer roomLock.Unlock()

	out := make(map[string][]dto.PlayerConn, len(rooms))
	for roomID, sess := range rooms {
		out[roomID] = append([]dto.PlayerConn{}, sess.Conns...)
	}
	return out
}

// ConnsOf 单个房间的连接列表快照
func ConnsOf(roomID string) []dto.PlayerConn {
	roomLock.Lock()
	defer roomLock.Unlock()

	sess, ok := rooms[roomID]
	if !ok {
		return nil
	}
	return append([]dto.PlayerConn{}, sess.Conns...)
}

// buildMessage 统一出站消息格式：type + 载荷字段
func buildMessage(msgType string, data map[string]interface{}) []byte {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["type"] = msgType
	msg, _ := json.Marshal(data)
	return msg
}

// sendError 把被拒绝的动作告知请求方，其他玩家不受影响
func sendError(conn dto.GameConn, err error) {
	var ge *game.Error
	if !errors.As(err, &ge) {
		ge = &game.Error{Code: "INTERNAL_ERROR", Message: err.Error()}
	}
	payload := buildMessage("room:error", map[string]interface{}{
		"code":    ge.Code,
		"message": ge.Message,
	})
	roomLock.Lock()
	conn.WriteMessage(websocket.TextMessage, payload)
	roomLock.Unlock()
}

// sendInit 连接建立后告知客户端自己的 playerId
func sendInit(conn dto.GameConn, playerID string) {
	payload := buildMessage("init", map[string]interface{}{
		"playerId": playerID,
	})
	roomLock.Lock()
	conn.WriteMessage(websocket.TextMessage, payload)
	roomLock.Unlock()
}

// sendTo 私发消息给房间内指定玩家
func sendTo(sess *RoomSession, playerID string, message []byte) {
	roomLock.Lock()
	defer roomLock.Unlock()

	for _, pc := range sess.Conns {
		if pc.PlayerID == playerID {
			pc.Conn.WriteMessage(websocket.TextMessage, message)
			return
		}
	}
}

// broadcastRoomState 给每个玩家推送按其视角脱敏后的房间快照。
// 整个写循环持锁，写失败的连接标记离线等待重连
func broadcastRoomState(roomID string) {
	roomLock.Lock()
	defer roomLock.Unlock()

	sess, ok := rooms[roomID]
	if !ok {
		return
	}
	for i := range sess.Conns {
		pc := &sess.Conns[i]
		snap := sess.Game.Snapshot(pc.PlayerID)
		payload, err := json.Marshal(map[string]interface{}{
			"type":  "room:state",
			"state": snap,
		})
		if err != nil {
			logger.L.Errorf("❌ 快照序列化失败 room=%s: %v", roomID, err)
			continue
		}
		if err := pc.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.L.Warnf("⚠️ 推送失败，标记离线: %s", pc.PlayerID)
			pc.Conn.Close()
			pc.Online = false
		}
	}
}

// broadcastRaw 给房间内所有连接发送同一条消息
func broadcastRaw(roomID string, message []byte) {
	roomLock.Lock()
	defer roomLock.Unlock()

	sess, ok := rooms[roomID]
	if !ok {
		return
	}
	for _, pc := range sess.Conns {
		pc.Conn.WriteMessage(websocket.TextMessage, message)
	}
}

// DestroyRoom 销毁房间：通知所有人、断开连接、停掉定时器、清理 Redis
func DestroyRoom(roomID, message string) {
	roomLock.Lock()
	sess, ok := rooms[roomID]
	if !ok {
		roomLock.Unlock()
		return
	}
	delete(rooms, roomID)
	close(sess.stop)

	notice := buildMessage("room:destroyed", map[string]interface{}{
		"message": message,
	})
	for _, pc := range sess.Conns {
		pc.Conn.WriteMessage(websocket.TextMessage, notice)
		pc.Conn.Close()
	}
	sess.Conns = nil
	roomLock.Unlock()

	if err := DeleteRoomInfo(repository.Rdb, repository.Ctx, roomID); err != nil {
		logger.L.Errorf("❌ 清理房间 %s 失败: %v", roomID, err)
	}
	logger.L.Infof("房间 %s 已销毁: %s", roomID, message)
}

// attachConn 登记或刷新一条玩家连接
func attachConn(sess *RoomSession, playerID string, conn dto.GameConn) {
	roomLock.Lock()
	defer roomLock.Unlock()

	for i, pc := range sess.Conns {
		if pc.PlayerID == playerID {
			sess.Conns[i].Conn = conn
			sess.Conns[i].Online = true
			return
		}
	}
	sess.Conns = append(sess.Conns, dto.PlayerConn{
		PlayerID: playerID,
		Conn:     conn,
		Online:   true,
	})
}

// detachConn 把玩家连接从房间里摘掉（大厅阶段）或标记离线（对局中）
func detachConn(roomID, playerID string, lobby bool) {
	roomLock.Lock()
	defer roomLock.Unlock()

	sess, ok := rooms[roomID]
	if !ok {
		return
	}
	for i, pc := range sess.Conns {
		if pc.PlayerID == playerID {
			if lobby {
				sess.Conns = append(sess.Conns[:i], sess.Conns[i+1:]...)
			} else {
				sess.Conns[i].Online = false
			}
			return
		}
	}
}

// HandleWebSocket WebSocket 主入口。加入用 ?roomID=&nickname=，
// 重连额外带 &playerID=
func HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L.Warnf("WebSocket 升级失败: %v", err)
		return
	}
	defer conn.Close()

	roomID := c.Query("roomID")
	if roomID == "" {
		sendError(conn, game.ErrRoomNotFound)
		return
	}
	sess := GetSession(roomID)
	if sess == nil {
		sendError(conn, game.ErrRoomNotFound)
		return
	}

	playerID := c.Query("playerID")
	if playerID != "" {
		// 重连
		if _, err := sess.Game.Rejoin(playerID); err != nil {
			sendError(conn, err)
			return
		}
		logger.L.Infof("玩家 %s 重连房间 %s", playerID, roomID)
	} else {
		nickname := c.Query("nickname")
		if nickname == "" {
			sendError(conn, &game.Error{Code: "VALIDATION_ERROR", Message: "缺少 nickname"})
			return
		}
		playerID = uuid.New().String()
		if _, err := sess.Game.Join(playerID, nickname); err != nil {
			sendError(conn, err)
			return
		}
		logger.L.Infof("玩家 %s(%s) 加入房间 %s", nickname, playerID, roomID)
	}

	attachConn(sess, playerID, conn)
	sendInit(conn, playerID)
	broadcastRoomState(roomID)

	listenMessages(conn, roomID, playerID)

	// 读循环退出即视为断线
	lobby := sess.Game.Phase() == dto.PhaseLobby
	detachConn(roomID, playerID, lobby)
	if destroyed := sess.Game.HandleDisconnect(playerID); destroyed {
		DestroyRoom(roomID, "房间已解散")
		return
	}
	broadcastRoomState(roomID)
	logger.L.Infof("玩家 %s 离开房间 %s", playerID, roomID)
}
