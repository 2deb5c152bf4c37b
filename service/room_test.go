package service

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"go-auction/dto"
	"go-auction/game"
	"go-auction/ws"
)

// 没有房间时返回空数组而不是 null，前端直接遍历
func TestGetRoomListEmpty(t *testing.T) {
	rooms, err := GetRoomList()
	require.NoError(t, err)
	require.NotNil(t, rooms)
	assert.Empty(t, rooms)

	data, err := json.Marshal(dto.GetRoomList{Rooms: rooms})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rooms":[]}`, string(data))
}

// 建房和在线人数统计并发进行，枚举必须走 ws 的加锁快照
func TestOnlineCountDuringRoomChurn(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			roomID := fmt.Sprintf("churn%02d", i)
			g := game.NewRoom(roomID, 4, rand.New(rand.NewSource(uint64(i)+1)), time.Now)
			ws.RegisterRoom(roomID, g)
		}
	}()

	for {
		count, err := GetOnlinePlayer()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, 0)
		select {
		case <-done:
			return
		default:
		}
	}
}
