package morris

// CheckMill 判断 pos 上的棋子是否处在一条横向或纵向的成三线上。
// pos 为空时返回 false。
func (b *BoardState) CheckMill(pos int) bool {
	c := b.At(pos)
	if c == NoColor {
		return false
	}
	return b.lineComplete(c, pos, Horizontal) || b.lineComplete(c, pos, Vertical)
}

// CheckMillAxis 只检查一个方向
func (b *BoardState) CheckMillAxis(pos int, axis Axis) bool {
	c := b.At(pos)
	if c == NoColor {
		return false
	}
	return b.lineComplete(c, pos, axis)
}

func (b *BoardState) lineComplete(c Color, pos int, axis Axis) bool {
	initTopology()
	for _, q := range linesOf[pos][axis] {
		if !b.Stones[c][q] {
			return false
		}
	}
	return true
}

// CountMills 数 c 的成三线条数，每条线只算一次
func (b *BoardState) CountMills(c Color) int {
	n := 0
	for _, line := range MillLines() {
		if b.Stones[c][line[0]] && b.Stones[c][line[1]] && b.Stones[c][line[2]] {
			n++
		}
	}
	return n
}

// AllInMills c 的每一颗子都在成三线上（c 没有子时也为 true）
func (b *BoardState) AllInMills(c Color) bool {
	for pos := 0; pos < NumPositions; pos++ {
		if b.Stones[c][pos] && !b.CheckMill(pos) {
			return false
		}
	}
	return true
}

// removable 提子规则：不能提成三中的子，除非对方全部子都在成三中
func (b *BoardState) removable(pos int) bool {
	victim := b.Player.Other()
	if !b.Stones[victim][pos] {
		return false
	}
	if !b.CheckMill(pos) {
		return true
	}
	return b.AllInMills(victim)
}
