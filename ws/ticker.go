package ws

import (
	"time"
)

// tickInterval 定时器精度。超时强制行动和展示停顿都以服务端
// 时钟为准，不信任客户端回调
const tickInterval = 500 * time.Millisecond

// runTicker 每个房间一个定时器协程，驱动超时与 AI 决策
func runTicker(roomID string, sess *RoomSession) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.stop:
			return
		case <-ticker.C:
			changed := sess.Game.Tick()
			if sess.Game.AdvanceBots() {
				changed = true
			}
			if changed {
				broadcastRoomState(roomID)
				checkGameOver(roomID)
			}
		}
	}
}
