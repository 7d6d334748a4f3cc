package morris

import "sync"

// History 只读的重复局面表，引擎用它给“和棋倾向”打分
type History interface {
	Count(hash uint64) int
}

// RepetitionTable 记录实战对局中每个局面出现的次数，由对局方维护
type RepetitionTable struct {
	mu     sync.RWMutex
	counts map[uint64]int
}

func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[uint64]int, 64)}
}

// Record 登记一次局面，返回登记后的次数
func (t *RepetitionTable) Record(b *BoardState) int {
	h := b.Hash()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[h]++
	return t.counts[h]
}

func (t *RepetitionTable) Count(hash uint64) int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts[hash]
}

func (t *RepetitionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.counts)
}
