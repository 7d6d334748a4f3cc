package morris

import "sync"

var (
	zobristOnce sync.Once

	zobristStones [2][NumPositions]uint64
	zobristSide   uint64
	zobristPhase  [3]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		// splitmix64，固定种子保证跨进程一致
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for c := 0; c < 2; c++ {
			for pos := 0; pos < NumPositions; pos++ {
				zobristStones[c][pos] = next()
			}
		}
		zobristSide = next()
		for i := range zobristPhase {
			zobristPhase[i] = next()
		}
	})
}

// Hash 局面哈希：棋子 + 行棋方 + 阶段。turn 不参与，重复局面按此判断。
func (b *BoardState) Hash() uint64 {
	initZobrist()

	var h uint64
	for c := 0; c < 2; c++ {
		for pos := 0; pos < NumPositions; pos++ {
			if b.Stones[c][pos] {
				h ^= zobristStones[c][pos]
			}
		}
	}
	if b.Player == Black {
		h ^= zobristSide
	}
	if b.Phase >= Placing && b.Phase <= Removing {
		h ^= zobristPhase[b.Phase]
	}
	return h
}
