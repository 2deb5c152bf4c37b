package game

import (
	"golang.org/x/exp/rand"
)

// NewJobDeck 职业卡牌堆：1~30 各一张
func NewJobDeck(rng *rand.Rand) []int {
	deck := make([]int, 0, 30)
	for i := 1; i <= 30; i++ {
		deck = append(deck, i)
	}
	shuffle(rng, deck)
	return deck
}

// NewEstateDeck 房产卡牌堆：1~15 各两张，面值 = 编号 * 1000
func NewEstateDeck(rng *rand.Rand) []int {
	deck := make([]int, 0, 30)
	for i := 1; i <= 15; i++ {
		deck = append(deck, i, i)
	}
	shuffle(rng, deck)
	return deck
}

func shuffle(rng *rand.Rand, deck []int) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// draw 从牌堆顶抽走 n 张。调用方必须先确认余量足够
func draw(deck []int, n int) (drawn []int, rest []int) {
	if n > len(deck) {
		n = len(deck)
	}
	drawn = append(drawn, deck[:n]...)
	rest = deck[n:]
	return drawn, rest
}

// EstateValue 房产卡面值
func EstateValue(id int) int {
	return id * BidUnit
}
