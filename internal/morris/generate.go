package morris

// GetLegalMoves 按当前阶段生成合法着法；已分出胜负时返回空
func (b *BoardState) GetLegalMoves() []Move {
	if b.GetWinner() != NoColor {
		return nil
	}
	return b.generate(nil)
}

// AppendLegalMoves 同 GetLegalMoves，但复用调用方的切片
func (b *BoardState) AppendLegalMoves(moves []Move) []Move {
	if b.GetWinner() != NoColor {
		return moves
	}
	return b.generate(moves)
}

func (b *BoardState) generate(moves []Move) []Move {
	initTopology()
	switch b.Phase {
	case Placing:
		for pos := 0; pos < NumPositions; pos++ {
			if b.IsEmpty(pos) {
				moves = append(moves, PlaceMove(pos))
			}
		}
	case Moving:
		me := b.Player
		fly := b.CanFly(me)
		for from := 0; from < NumPositions; from++ {
			if !b.Stones[me][from] {
				continue
			}
			if fly {
				for to := 0; to < NumPositions; to++ {
					if b.IsEmpty(to) {
						moves = append(moves, SlideMove(from, to))
					}
				}
				continue
			}
			for _, to := range neighborList[from] {
				if b.IsEmpty(to) {
					moves = append(moves, SlideMove(from, to))
				}
			}
		}
	case Removing:
		victim := b.Player.Other()
		// 对方全部在成三里时，任何一颗都可以提
		anyStone := b.AllInMills(victim)
		for pos := 0; pos < NumPositions; pos++ {
			if !b.Stones[victim][pos] {
				continue
			}
			if anyStone || !b.CheckMill(pos) {
				moves = append(moves, RemoveMove(pos))
			}
		}
	}
	return moves
}

// hasSlide 走子阶段 c 是否至少有一步可走
func (b *BoardState) hasSlide(c Color) bool {
	initTopology()
	if b.CanFly(c) {
		return b.OnBoard(c)+b.OnBoard(c.Other()) < NumPositions
	}
	for from := 0; from < NumPositions; from++ {
		if !b.Stones[c][from] {
			continue
		}
		for _, to := range neighborList[from] {
			if b.IsEmpty(to) {
				return true
			}
		}
	}
	return false
}

// IsLegal 判断 m 是否在当前合法着法中
func (b *BoardState) IsLegal(m Move) bool {
	for _, lm := range b.GetLegalMoves() {
		if lm == m {
			return true
		}
	}
	return false
}
