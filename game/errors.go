package game

// Error 游戏动作被拒绝时返回给客户端的错误，Code 供前端分支判断
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrRoomFull             = &Error{Code: "ROOM_FULL", Message: "房间已满"}
	ErrRoomNotFound         = &Error{Code: "ROOM_NOT_FOUND", Message: "房间不存在"}
	ErrGameAlreadyOver      = &Error{Code: "GAME_ALREADY_OVER", Message: "游戏已结束"}
	ErrWrongPhase           = &Error{Code: "WRONG_PHASE", Message: "当前阶段不能执行该操作"}
	ErrNotYourTurn          = &Error{Code: "NOT_YOUR_TURN", Message: "还没轮到你"}
	ErrNotHost              = &Error{Code: "NOT_HOST", Message: "只有房主可以执行该操作"}
	ErrInsufficientFunds    = &Error{Code: "INSUFFICIENT_FUNDS", Message: "金币不足"}
	ErrPassForbidden        = &Error{Code: "PASS_FORBIDDEN", Message: "你被指定必须出价，不能放弃"}
	ErrItemAlreadyUsed      = &Error{Code: "ITEM_ALREADY_USED", Message: "道具已经用过了"}
	ErrItemNotUsableNow     = &Error{Code: "ITEM_NOT_USABLE_NOW", Message: "现在不能使用该道具"}
	ErrItemNotApplicable    = &Error{Code: "ITEM_NOT_APPLICABLE_IN_PHASE", Message: "该道具在当前阶段不可用"}
	ErrReverseUsedThisRound = &Error{Code: "REVERSE_ALREADY_USED_THIS_ROUND", Message: "本轮已经有人用过反转了"}
)

// newValidationError 载荷不合法，未触碰任何状态就被拒绝
func newValidationError(msg string) *Error {
	return &Error{Code: "VALIDATION_ERROR", Message: msg}
}
