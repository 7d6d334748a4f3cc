package morris

// BoardState 是引擎私有的局面快照，搜索期间通过 ApplyMove/UndoMove 原地修改。
// 与界面上的“活棋盘”是两个实例，不能共享。
type BoardState struct {
	Stones [2][NumPositions]bool // Stones[color][pos]，同一个点最多一方为 true
	Player Color                 // 当前行棋方
	Turn   int                   // 完成的布子/走子手数，成三与提子不计
	Phase  Phase
}

// NewBoardState 返回开局空棋盘，白方先手
func NewBoardState() *BoardState {
	initTopology()
	return &BoardState{Player: White, Phase: Placing}
}

// Clone 深拷贝（数组是值拷贝）
func (b *BoardState) Clone() *BoardState {
	nb := *b
	return &nb
}

// Equal 逐字段比较
func (b *BoardState) Equal(o *BoardState) bool {
	return *b == *o
}

// At 返回 pos 上的棋子颜色
func (b *BoardState) At(pos int) Color {
	switch {
	case b.Stones[White][pos]:
		return White
	case b.Stones[Black][pos]:
		return Black
	}
	return NoColor
}

func (b *BoardState) IsEmpty(pos int) bool {
	return !b.Stones[White][pos] && !b.Stones[Black][pos]
}

// Place 直接摆子，不做规则检查（用于构造局面）
func (b *BoardState) Place(c Color, positions ...int) {
	for _, p := range positions {
		b.Stones[c.Other()][p] = false
		b.Stones[c][p] = true
	}
}

// OnBoard 盘面上 c 的棋子数
func (b *BoardState) OnBoard(c Color) int {
	n := 0
	for _, v := range b.Stones[c] {
		if v {
			n++
		}
	}
	return n
}

// placed 根据 turn/phase 推算 c 已经布下的子数。
// 成三不换手也不加 turn，所以 Player 与 turn 奇偶始终对应同一个先手方。
func (b *BoardState) placed(c Color) int {
	limit := min(b.Turn, PlacementTurns)
	n := 0
	for t := 0; t < limit; t++ {
		mover := b.Player
		if (b.Turn-t)%2 == 1 {
			mover = b.Player.Other()
		}
		if mover == c {
			n++
		}
	}
	// 布子阶段成三：当前这一手已经落子但 turn 还没加
	if b.Phase == Removing && b.Turn < PlacementTurns && c == b.Player {
		n++
	}
	return n
}

// InHand 手里还没布下的子数
func (b *BoardState) InHand(c Color) int {
	return max(StonesPerPlayer-b.placed(c), 0)
}

// Remaining 盘上 + 手里
func (b *BoardState) Remaining(c Color) int {
	return b.OnBoard(c) + b.InHand(c)
}

// CanFly 走子阶段只剩 3 子时可以飞
func (b *BoardState) CanFly(c Color) bool {
	return b.OnBoard(c) == 3
}
