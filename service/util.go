package service

import (
	"time"

	"golang.org/x/exp/rand"
)

var rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

// RandString 生成房间号用的随机短串
func RandString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rng.Intn(len(letters))]
	}
	return string(b)
}
