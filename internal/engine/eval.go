package engine

import "morris/internal/morris"

const (
	// 距上次成三超过这么多手，开始按和棋倾向扣分
	drawTurnsWithoutMill = 45

	terminalWeight = 500_000
	drawWeight     = 100_000
)

// Criteria 九项评估指标，全部站在 state.Player 的角度
type Criteria struct {
	JustClosedMill int // 1: 刚成三，正在提子
	MillDiff       int // 成三线条数差
	BlockedDiff    int // 被堵死的棋子数差
	StoneDiff      int // 剩余棋子数差（盘上 + 手里）
	TwoPieceDiff   int // 再落一子即成三的空点数差
	ThreePieceDiff int // 一子同时制造两路威胁的空点数差
	DoubleMillDiff int // 同时处在横竖两条成三线上的棋子数差
	Terminal       int // +1 行棋方胜，-1 对方胜
	DrawPenalty    int // -1 重复局面或长时间未成三
}

// Evaluator 持有实战对局的只读信息（重复局面表、上次成三的手数）
type Evaluator struct {
	History      morris.History
	LastMillTurn int
}

// Rate 从 perspective 一方看局面的分数，Rate(s, c) == -Rate(s, c.Other())
func (e *Evaluator) Rate(b *morris.BoardState, perspective morris.Color) int {
	score := e.rateForMover(b)
	if perspective != b.Player {
		return -score
	}
	return score
}

func (e *Evaluator) rateForMover(b *morris.BoardState) int {
	c := e.Criteria(b)
	return weigh(b, c) + drawWeight*c.DrawPenalty
}

// weigh 按阶段选权重，多个条件同时满足时后面的表覆盖前面的：
// 布子 < 只剩 3 子 < 走子（含 turn>=18 的提子）。
func weigh(b *morris.BoardState, c Criteria) int {
	me, opp := b.Player, b.Player.Other()
	switch {
	case b.Phase == morris.Moving || (b.Phase == morris.Removing && b.Turn >= morris.PlacementTurns):
		return 500*c.JustClosedMill +
			60*c.MillDiff +
			15*c.BlockedDiff +
			20*c.StoneDiff +
			40*c.DoubleMillDiff +
			terminalWeight*c.Terminal
	case b.Remaining(me) <= 3 || b.Remaining(opp) <= 3:
		return 300*c.JustClosedMill +
			30*c.TwoPieceDiff +
			40*c.ThreePieceDiff +
			terminalWeight*c.Terminal
	default:
		return 100*c.JustClosedMill +
			30*c.MillDiff +
			5*c.BlockedDiff +
			10*c.StoneDiff +
			30*c.TwoPieceDiff +
			50*c.ThreePieceDiff
	}
}

// Criteria 计算九项指标
func (e *Evaluator) Criteria(b *morris.BoardState) Criteria {
	me := b.Player
	var c Criteria
	if b.Phase == morris.Removing {
		c.JustClosedMill = 1
	}
	c.MillDiff = diff(me, b.CountMills)
	c.BlockedDiff = diff(me, func(col morris.Color) int { return blockedStones(b, col) })
	c.StoneDiff = diff(me, b.Remaining)
	c.TwoPieceDiff = diff(me, func(col morris.Color) int { return twoPieceConfigs(b, col) })
	c.ThreePieceDiff = diff(me, func(col morris.Color) int { return threePieceConfigs(b, col) })
	c.DoubleMillDiff = diff(me, func(col morris.Color) int { return doubleMills(b, col) })

	switch b.GetWinner() {
	case me:
		c.Terminal = 1
	case me.Other():
		c.Terminal = -1
	}

	if e.History != nil && e.History.Count(b.Hash()) >= 1 {
		c.DrawPenalty = -1
	}
	if b.Turn-e.LastMillTurn >= drawTurnsWithoutMill {
		c.DrawPenalty = -1
	}
	return c
}

func diff(me morris.Color, f func(morris.Color) int) int {
	return f(me) - f(me.Other())
}

// blockedStones 四周没有空点的棋子数
func blockedStones(b *morris.BoardState, c morris.Color) int {
	n := 0
	for pos := 0; pos < morris.NumPositions; pos++ {
		if !b.Stones[c][pos] {
			continue
		}
		free := false
		for _, q := range morris.NeighborsOf(pos) {
			if b.IsEmpty(q) {
				free = true
				break
			}
		}
		if !free {
			n++
		}
	}
	return n
}

// lineShape 假设 c 落在空点 pos 上，pos 所在 axis 线上另外两点的己方子数和空点数
func lineShape(b *morris.BoardState, c morris.Color, pos int, axis morris.Axis) (own, empty int) {
	for _, q := range morris.LineOf(pos, axis) {
		if q == pos {
			continue
		}
		switch {
		case b.Stones[c][q]:
			own++
		case b.IsEmpty(q):
			empty++
		}
	}
	return own, empty
}

// twoPieceConfigs 空点上落 c 后恰好一个方向成三
func twoPieceConfigs(b *morris.BoardState, c morris.Color) int {
	n := 0
	for pos := 0; pos < morris.NumPositions; pos++ {
		if !b.IsEmpty(pos) {
			continue
		}
		h, _ := lineShape(b, c, pos, morris.Horizontal)
		v, _ := lineShape(b, c, pos, morris.Vertical)
		if (h == 2) != (v == 2) {
			n++
		}
	}
	return n
}

// threePieceConfigs 空点上落 c 后两个方向都形成“成三或差一子成三”，且不是双成三
func threePieceConfigs(b *morris.BoardState, c morris.Color) int {
	n := 0
	for pos := 0; pos < morris.NumPositions; pos++ {
		if !b.IsEmpty(pos) {
			continue
		}
		hOwn, hEmpty := lineShape(b, c, pos, morris.Horizontal)
		vOwn, vEmpty := lineShape(b, c, pos, morris.Vertical)
		hMill, vMill := hOwn == 2, vOwn == 2
		hOpen := hOwn == 1 && hEmpty == 1
		vOpen := vOwn == 1 && vEmpty == 1
		if (hMill && vOpen) || (vMill && hOpen) || (hOpen && vOpen) {
			n++
		}
	}
	return n
}

// doubleMills 同时在横竖两条成三线上的棋子
func doubleMills(b *morris.BoardState, c morris.Color) int {
	n := 0
	for pos := 0; pos < morris.NumPositions; pos++ {
		if b.Stones[c][pos] && b.CheckMillAxis(pos, morris.Horizontal) && b.CheckMillAxis(pos, morris.Vertical) {
			n++
		}
	}
	return n
}

// Evaluate 无对局历史时的便捷入口
func Evaluate(b *morris.BoardState, perspective morris.Color) int {
	e := Evaluator{LastMillTurn: b.Turn}
	return e.Rate(b, perspective)
}
