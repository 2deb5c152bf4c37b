package router

import (
	"github.com/gin-gonic/gin"

	"go-auction/controller"
	"go-auction/middleware"
	"go-auction/ws"
)

func InitRouter(r *gin.Engine) {
	// 房间接口路由
	api := r.Group("/room")
	{
		api.POST("/create", controller.CreateRoom)
		api.GET("/list", controller.GetRoomList)
		api.GET("/online", controller.GetOnlinePlayer)
		api.GET("/:roomID", controller.GetRoomInfo)
		api.POST("/delete", middleware.AuthMiddleware(), controller.DeleteRoom)
	}

	// WebSocket 路由
	r.GET("/ws", ws.HandleWebSocket)
}
