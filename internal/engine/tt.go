package engine

import "morris/internal/morris"

const ratingCacheCap = 1 << 20

// 评分缓存的键：局面哈希不含 turn，而评分依赖 turn（阶段权重、手里子数、和棋倾向）
type ratingKey struct {
	Hash uint64
	Turn int
}

// ratingCache 只在一次搜索内有效：重复局面表每手都会变
type ratingCache struct {
	m    map[ratingKey]int
	hits int64
}

func newRatingCache() *ratingCache {
	return &ratingCache{m: make(map[ratingKey]int, 1<<12)}
}

func (c *ratingCache) reset() {
	clear(c.m)
	c.hits = 0
}

// rate 返回行棋方视角的分数，命中缓存时不再评估
func (c *ratingCache) rate(ev *Evaluator, b *morris.BoardState) int {
	key := ratingKey{Hash: b.Hash(), Turn: b.Turn}
	if v, ok := c.m[key]; ok {
		c.hits++
		return v
	}
	v := ev.rateForMover(b)
	if len(c.m) > ratingCacheCap {
		c.m = make(map[ratingKey]int, 1<<12)
	}
	c.m[key] = v
	return v
}
