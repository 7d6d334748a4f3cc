package morris

// GetWinner 返回胜方，未分胜负返回 NoColor。
//   - 走子阶段成三待提子，而对方只剩不到 4 子：行棋方胜
//   - 走子阶段行棋方无子可动（且不能飞）或不足 3 子：对方胜
func (b *BoardState) GetWinner() Color {
	switch b.Phase {
	case Removing:
		if b.Turn >= PlacementTurns && b.OnBoard(b.Player.Other()) <= 3 {
			return b.Player
		}
	case Moving:
		me := b.Player
		if b.OnBoard(me) < 3 || !b.hasSlide(me) {
			return me.Other()
		}
	}
	return NoColor
}
