package ws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"go-auction/entities"
)

// 房间元数据存放在 Redis 的 room:<id>:info 哈希里，游戏状态本身
// 全部在内存中，不落 Redis

func roomInfoKey(roomID string) string {
	return fmt.Sprintf("room:%s:info", roomID)
}

// SetRoomInfo 写入房间元数据
func SetRoomInfo(rdb *redis.Client, ctx context.Context, roomID string, info entities.RoomInfo) error {
	err := rdb.HSet(ctx, roomInfoKey(roomID), map[string]interface{}{
		"host":       info.Host,
		"maxPlayers": info.MaxPlayers,
		"status":     info.Status,
		"createdAt":  info.CreatedAt,
	}).Err()
	if err != nil {
		return fmt.Errorf("写入房间信息失败: %w", err)
	}
	return nil
}

// GetRoomInfo 读取房间元数据
func GetRoomInfo(rdb *redis.Client, ctx context.Context, roomID string) (entities.RoomInfo, error) {
	fields, err := rdb.HGetAll(ctx, roomInfoKey(roomID)).Result()
	if err != nil {
		return entities.RoomInfo{}, fmt.Errorf("获取房间信息失败: %w", err)
	}
	if len(fields) == 0 {
		return entities.RoomInfo{}, fmt.Errorf("房间 %s 不存在", roomID)
	}

	maxPlayers, _ := strconv.Atoi(fields["maxPlayers"])
	createdAt, _ := strconv.ParseInt(fields["createdAt"], 10, 64)
	return entities.RoomInfo{
		Host:       fields["host"],
		MaxPlayers: maxPlayers,
		Status:     fields["status"],
		CreatedAt:  createdAt,
	}, nil
}

// SetRoomStatus 更新房间状态（waiting / playing / finished）
func SetRoomStatus(rdb *redis.Client, ctx context.Context, roomID, status string) error {
	if err := rdb.HSet(ctx, roomInfoKey(roomID), "status", status).Err(); err != nil {
		return fmt.Errorf("更新房间状态失败: %w", err)
	}
	return nil
}

// DeleteRoomInfo 删除房间元数据
func DeleteRoomInfo(rdb *redis.Client, ctx context.Context, roomID string) error {
	if err := rdb.Del(ctx, roomInfoKey(roomID)).Err(); err != nil {
		return fmt.Errorf("删除房间信息失败: %w", err)
	}
	return nil
}
