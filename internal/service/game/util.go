package game

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

func GenID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("Failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// RandSource 随机数来源，*rand.Rand 即满足该接口，测试时可替换为固定序列
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

// NewRandSource 以当前时间为种子创建随机数来源
func NewRandSource() RandSource {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>32|1))
}

// pick 从列表中等概率选取一个元素，列表为空时返回零值和 false
func pick[T any](rng RandSource, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}

	return items[rng.IntN(len(items))], true
}

// shuffle 原地 Fisher-Yates 洗牌
func shuffle[T any](rng RandSource, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// sample 无放回地等概率抽取 n 个元素，不修改原列表
func sample[T any](rng RandSource, items []T, n int) []T {
	pool := make([]T, len(items))
	copy(pool, items)

	if n > len(pool) {
		n = len(pool)
	}

	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n]
}
