package morris

import "fmt"

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

// Other 返回对手颜色；NoColor 仍返回 NoColor
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

type Phase int8

const (
	Placing  Phase = iota // 布子
	Moving                // 走子（含飞子）
	Removing              // 成三后提子，属于同一回合的子步
)

func (p Phase) String() string {
	switch p {
	case Placing:
		return "placing"
	case Moving:
		return "moving"
	case Removing:
		return "removing"
	}
	return fmt.Sprintf("phase(%d)", int8(p))
}

// NoPosition 表示“无起点”（布子）或“无终点”（提子）
const NoPosition = -1

// Move 是一步着法。
//   - 布子: From=-1, To=落点
//   - 走子: From=起点, To=终点
//   - 提子: From=被提的对方棋子, To=-1
type Move struct {
	Phase Phase `json:"phase"`
	From  int   `json:"from"`
	To    int   `json:"to"`
}

func PlaceMove(to int) Move { return Move{Phase: Placing, From: NoPosition, To: to} }
func SlideMove(from, to int) Move { return Move{Phase: Moving, From: from, To: to} }
func RemoveMove(target int) Move { return Move{Phase: Removing, From: target, To: NoPosition} }

func (m Move) String() string {
	switch m.Phase {
	case Placing:
		return fmt.Sprintf("place %d", m.To)
	case Moving:
		return fmt.Sprintf("move %d-%d", m.From, m.To)
	case Removing:
		return fmt.Sprintf("remove %d", m.From)
	}
	return fmt.Sprintf("%s %d-%d", m.Phase, m.From, m.To)
}
