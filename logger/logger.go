package logger

import (
	"go.uber.org/zap"
)

// L 全局日志对象，main 里初始化后各包直接使用
var L *zap.SugaredLogger

func Init() {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	L = l.Sugar()
}

// Sync 进程退出前刷新缓冲日志
func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}
