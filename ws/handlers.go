package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"

	"go-auction/dto"
	"go-auction/logger"
	"go-auction/repository"
)

type messageHandler func(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{})

var messageHandlers = map[string]messageHandler{
	"player_ready":     handleReady,
	"start_game":       handleStartGame,
	"select_item":      handleSelectItem,
	"place_bid":        handlePlaceBid,
	"pass_turn":        handlePassTurn,
	"play_card":        handlePlayCard,
	"use_item_reroll":  handleUseReroll,
	"use_item_peek":    handleUsePeek,
	"use_item_reverse": handleUseReverse,
	"add_bot":          handleAddBot,
	"chat_message":     handleChat,
}

// listenMessages 持续读取该连接的消息并分发给对应 handler
func listenMessages(conn dto.GameConn, roomID, playerID string) {
	wsConn, ok := conn.(*websocket.Conn)
	if !ok {
		return
	}
	for {
		_, msg, err := wsConn.ReadMessage()
		if err != nil {
			logger.L.Debugf("读取消息失败: %v", err)
			return
		}
		msgMap := make(map[string]interface{})
		if err := json.Unmarshal(msg, &msgMap); err != nil {
			logger.L.Warnf("消息解析失败: %v", err)
			continue
		}
		msgType, ok := msgMap["type"].(string)
		if !ok {
			continue
		}
		if msgType == "leave_room" {
			// 主动离开：关闭连接，走统一的断线清理
			return
		}
		if handler, found := messageHandlers[msgType]; found {
			handler(conn, roomID, playerID, msgMap)
		} else {
			logger.L.Warnf("⚠️ 未知的消息类型: %s", msgType)
		}
	}
}

// afterAction 动作成功后的统一收尾：广播新状态并检查是否终局
func afterAction(roomID string) {
	broadcastRoomState(roomID)
	checkGameOver(roomID)
}

func handleReady(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	sess := GetSession(roomID)
	if sess == nil {
		return
	}
	var req dto.ReadyRequest
	if err := mapstructure.Decode(msgMap, &req); err != nil {
		sendError(conn, err)
		return
	}
	if err := sess.Game.SetReady(playerID, req.Ready); err != nil {
		sendError(conn, err)
		return
	}
	broadcastRoomState(roomID)
}

func handleStartGame(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	sess := GetSession(roomID)
	if sess == nil {
		return
	}
	if err := sess.Game.StartGame(playerID); err != nil {
		sendError(conn, err)
		return
	}
	if err := SetRoomStatus(repository.Rdb, repository.Ctx, roomID, "playing"); err != nil {
		logger.L.Errorf("❌ %v", err)
	}
	logger.L.Infof("✅ 房间 %s 开局", roomID)
	broadcastRoomState(roomID)
}

func handleSelectItem(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	sess := GetSession(roomID)
	if sess == nil {
		return
	}
	var req dto.SelectItemRequest
	if err := mapstructure.Decode(msgMap, &req); err != nil {
		sendError(conn, err)
		return
	}
	if err := sess.Game.SelectItem(playerID, req.Item); err != nil {
		sendError(conn, err)
		return
	}
	broadcastRoomState(roomID)
}

func handlePlaceBid(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	sess := GetSession(roomID)
	if sess == nil {
		return
	}
	var req dto.PlaceBidRequest
	if err := mapstructure.Decode(msgMap, &req); err != nil {
		sendError(conn, err)
		return
	}
	if err := sess.Game.PlaceBid(playerID, req.Amount); err != nil {
		sendError(conn, err)
		return
	}
	afterAction(roomID)
}

func handlePassTurn(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	sess := GetSession(roomID)
	if sess == nil {
		return
	}
	if err := sess.Game.PassTurn(playerID); err != nil {
		sendError(conn, err)
		return
	}
	afterAction(roomID)
}

func handlePlayCard(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	sess := GetSession(roomID)
	if sess == nil {
		return
	}
	var req dto.PlayCardRequest
	if err := mapstructure.Decode(msgMap, &req); err != nil {
		sendError(conn, err)
		return
	}
	if err := sess.Game.PlayCard(playerID, req.CardID); err != nil {
		sendError(conn, err)
		return
	}
	afterAction(roomID)
}

func handleUseReroll(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	sess := GetSession(roomID)
	if sess == nil {
		return
	}
	if err := sess.Game.UseReroll(playerID); err != nil {
		sendError(conn, err)
		return
	}
	broadcastRoomState(roomID)
}

func handleUsePeek(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	sess := GetSession(roomID)
	if sess == nil {
		return
	}
	var req dto.PeekRequest
	if err := mapstructure.Decode(msgMap, &req); err != nil {
		sendError(conn, err)
		return
	}
	result, err := sess.Game.UsePeek(playerID, req.TargetID)
	if err != nil {
		sendError(conn, err)
		return
	}
	// 偷看结果只私发给使用者
	payload, _ := json.Marshal(map[string]interface{}{
		"type":   "peek:result",
		"result": result,
	})
	sendTo(sess, playerID, payload)
	broadcastRoomState(roomID)
}

func handleUseReverse(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	sess := GetSession(roomID)
	if sess == nil {
		return
	}
	if err := sess.Game.UseReverse(playerID); err != nil {
		sendError(conn, err)
		return
	}
	broadcastRoomState(roomID)
}

var botNames = []string{"阿强", "小美", "老王", "豆豆", "球球"}

func handleAddBot(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	sess := GetSession(roomID)
	if sess == nil {
		return
	}
	botID := uuid.New().String()
	nickname := botNames[len(sess.Game.PlayerIDs())%len(botNames)]
	if _, err := sess.Game.AddBot(botID, playerID, nickname); err != nil {
		sendError(conn, err)
		return
	}
	attachConn(sess, botID, NewVirtualConn(botID))
	logger.L.Infof("房间 %s 添加 AI 玩家 %s", roomID, nickname)
	broadcastRoomState(roomID)
}

func handleChat(conn dto.GameConn, roomID, playerID string, msgMap map[string]interface{}) {
	var req dto.ChatRequest
	if err := mapstructure.Decode(msgMap, &req); err != nil || req.Message == "" {
		return
	}
	broadcastRaw(roomID, buildMessage("chat:message", map[string]interface{}{
		"from":      playerID,
		"message":   req.Message,
		"timestamp": time.Now().UnixMilli(),
	}))
}

// checkGameOver 终局后归档战绩并更新房间状态，只执行一次
func checkGameOver(roomID string) {
	roomLock.Lock()
	sess, ok := rooms[roomID]
	if !ok || sess.archived {
		roomLock.Unlock()
		return
	}
	if sess.Game.Phase() != dto.PhaseGameOver {
		roomLock.Unlock()
		return
	}
	sess.archived = true
	roomLock.Unlock()

	rankings := sess.Game.Rankings()
	repository.SaveGameResult(roomID, rankings)
	if err := SetRoomStatus(repository.Rdb, repository.Ctx, roomID, "finished"); err != nil {
		logger.L.Errorf("❌ %v", err)
	}
	logger.L.Infof("🏁 房间 %s 对局结束", roomID)
}
