package service

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"go-auction/dto"
	"go-auction/entities"
	"go-auction/game"
	"go-auction/repository"
	"go-auction/ws"
)

// CreateRoom 创建房间：生成短房间号，元数据写 Redis，游戏状态
// 留在内存里由房间自己的定时器驱动
func CreateRoom(params dto.CreateRoomRequest) (string, error) {
	roomID := RandString(6)

	err := ws.SetRoomInfo(repository.Rdb, repository.Ctx, roomID, entities.RoomInfo{
		Host:       params.Nickname,
		MaxPlayers: params.MaxPlayers,
		Status:     "waiting",
		CreatedAt:  time.Now().Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("初始化房间信息失败: %w", err)
	}

	g := game.NewRoom(roomID, params.MaxPlayers,
		rand.New(rand.NewSource(uint64(time.Now().UnixNano()))), time.Now)
	ws.RegisterRoom(roomID, g)
	return roomID, nil
}

// DeleteRoom 管理端强制解散房间
func DeleteRoom(params dto.DeleteRoomRequest) error {
	if ws.GetSession(params.RoomID) == nil {
		return fmt.Errorf("房间不存在")
	}
	ws.DestroyRoom(params.RoomID, "房间已被解散")
	return nil
}

// GetRoomList 当前所有活跃房间。连接列表通过 ws 的加锁快照读取
func GetRoomList() ([]dto.RoomInfo, error) {
	rooms := make([]dto.RoomInfo, 0)
	for roomID, conns := range ws.RoomPlayers() {
		roomPlayers := make([]dto.RoomPlayer, 0, len(conns))
		for _, pc := range conns {
			roomPlayers = append(roomPlayers, dto.RoomPlayer{
				PlayerID: pc.PlayerID,
				Online:   pc.Online,
			})
		}

		roomInfo, err := ws.GetRoomInfo(repository.Rdb, repository.Ctx, roomID)
		if err != nil {
			continue
		}
		rooms = append(rooms, dto.RoomInfo{
			RoomID:     roomID,
			Host:       roomInfo.Host,
			MaxPlayers: roomInfo.MaxPlayers,
			Status:     roomInfo.Status,
			RoomPlayer: roomPlayers,
		})
	}
	return rooms, nil
}

// GetOnlinePlayer 在线真人数量
func GetOnlinePlayer() (int, error) {
	onlinePlayer := 0
	for _, conns := range ws.RoomPlayers() {
		for _, pc := range conns {
			if pc.Online {
				onlinePlayer++
			}
		}
	}
	return onlinePlayer, nil
}
