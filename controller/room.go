package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-auction/dto"
	"go-auction/repository"
	"go-auction/service"
	"go-auction/ws"
)

func CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	roomID, err := service.CreateRoom(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间创建成功",
		"data": dto.CreateRoomResponse{
			RoomID: roomID,
		},
	})
}

func DeleteRoom(c *gin.Context) {
	var req dto.DeleteRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	if err := service.DeleteRoom(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间删除成功",
	})
}

func GetRoomList(c *gin.Context) {
	rooms, err := service.GetRoomList()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "获取房间列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "获取成功",
		"status_code": http.StatusOK,
		"data": dto.GetRoomList{
			Rooms: rooms,
		},
	})
}

func GetOnlinePlayer(c *gin.Context) {
	count, err := service.GetOnlinePlayer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "获取在线人数失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        gin.H{"online": count},
	})
}

func GetRoomInfo(c *gin.Context) {
	roomID := c.Param("roomID")

	if ws.GetSession(roomID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房间不存在"})
		return
	}
	roomInfo, err := ws.GetRoomInfo(repository.Rdb, repository.Ctx, roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房间不存在"})
		return
	}

	conns := ws.ConnsOf(roomID)
	roomPlayers := make([]dto.RoomPlayer, 0, len(conns))
	for _, pc := range conns {
		roomPlayers = append(roomPlayers, dto.RoomPlayer{
			PlayerID: pc.PlayerID,
			Online:   pc.Online,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data": dto.RoomInfo{
			RoomID:     roomID,
			Host:       roomInfo.Host,
			MaxPlayers: roomInfo.MaxPlayers,
			Status:     roomInfo.Status,
			RoomPlayer: roomPlayers,
		},
	})
}
