package ws

import "go-auction/dto"

var _ dto.GameConn = (*VirtualConn)(nil) // 编译期断言实现

// VirtualConn AI 玩家的虚拟连接。广播时直接丢弃消息，让 AI 玩家
// 能和真人走完全相同的连接管理逻辑
type VirtualConn struct {
	PlayerID string
}

func NewVirtualConn(playerID string) *VirtualConn {
	return &VirtualConn{PlayerID: playerID}
}

func (v *VirtualConn) WriteMessage(messageType int, data []byte) error {
	return nil
}

func (v *VirtualConn) Close() error {
	return nil
}
