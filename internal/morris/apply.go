package morris

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove 着法与阶段/占位/成三保护冲突，局面不会被修改
	ErrIllegalMove = errors.New("illegal move")
	// ErrInconsistentUndo 当前局面不可能由该着法产生
	ErrInconsistentUndo = errors.New("inconsistent undo")
)

func illegal(m Move, why string) error {
	return fmt.Errorf("%w: %s: %s", ErrIllegalMove, m, why)
}

func inconsistent(m Move, why string) error {
	return fmt.Errorf("%w: %s: %s", ErrInconsistentUndo, m, why)
}

// ApplyMove 原地执行一步。失败时返回 ErrIllegalMove，局面不变。
func (b *BoardState) ApplyMove(m Move) error {
	if err := b.checkApply(m); err != nil {
		return err
	}
	me := b.Player
	switch m.Phase {
	case Placing, Moving:
		if m.From != NoPosition {
			b.Stones[me][m.From] = false
		}
		b.Stones[me][m.To] = true
		b.afterMove(m.To)
	case Removing:
		b.Stones[me.Other()][m.From] = false
		b.afterMove(m.From)
	}
	return nil
}

func (b *BoardState) checkApply(m Move) error {
	if m.Phase != b.Phase {
		return illegal(m, "phase is "+b.Phase.String())
	}
	me := b.Player
	if me != White && me != Black {
		return illegal(m, "no player to move")
	}
	switch m.Phase {
	case Placing:
		if m.From != NoPosition {
			return illegal(m, "placement has a source")
		}
		if !validPosition(m.To) || !b.IsEmpty(m.To) {
			return illegal(m, "destination not empty")
		}
	case Moving:
		if !validPosition(m.From) || !b.Stones[me][m.From] {
			return illegal(m, "source not owned by mover")
		}
		if !validPosition(m.To) || !b.IsEmpty(m.To) {
			return illegal(m, "destination not empty")
		}
		if !b.CanFly(me) && !IsAdjacent(m.From, m.To) {
			return illegal(m, "destination not adjacent")
		}
	case Removing:
		if m.To != NoPosition {
			return illegal(m, "removal has a destination")
		}
		if !validPosition(m.From) || !b.Stones[me.Other()][m.From] {
			return illegal(m, "target not an opponent stone")
		}
		if !b.removable(m.From) {
			return illegal(m, "target is inside a closed mill")
		}
	default:
		return illegal(m, "unknown phase")
	}
	return nil
}

// afterMove 成三就进入提子子步（不加 turn 不换手），否则推进回合
func (b *BoardState) afterMove(pos int) {
	if b.Phase != Removing && b.CheckMill(pos) {
		b.Phase = Removing
		return
	}
	b.Phase = phaseAfter(b.Turn)
	b.Turn++
	b.Player = b.Player.Other()
}

// phaseAfter 第 turn 手结束后的阶段
func phaseAfter(turn int) Phase {
	if turn >= PlacementTurns-1 {
		return Moving
	}
	return Placing
}

// UndoMove 是 ApplyMove 的逆操作。局面对不上时返回 ErrInconsistentUndo，局面不变。
func (b *BoardState) UndoMove(m Move) error {
	switch m.Phase {
	case Placing, Moving:
		return b.undoMove(m)
	case Removing:
		return b.undoRemove(m)
	}
	return inconsistent(m, "unknown phase")
}

func (b *BoardState) undoMove(m Move) error {
	if !validPosition(m.To) {
		return inconsistent(m, "bad destination")
	}
	if m.Phase == Placing && m.From != NoPosition {
		return inconsistent(m, "placement has a source")
	}
	if m.Phase == Moving && (!validPosition(m.From) || !b.IsEmpty(m.From)) {
		return inconsistent(m, "source is occupied")
	}

	if b.Phase == Removing {
		// 这一步成了三：没有换手
		me := b.Player
		if !b.Stones[me][m.To] || !b.CheckMill(m.To) {
			return inconsistent(m, "no mill at destination")
		}
		b.Stones[me][m.To] = false
		if m.From != NoPosition {
			b.Stones[me][m.From] = true
		}
		b.Phase = m.Phase
		return nil
	}

	if b.Turn < 1 {
		return inconsistent(m, "turn is zero")
	}
	mover := b.Player.Other()
	if !b.Stones[mover][m.To] {
		return inconsistent(m, "destination not owned by mover")
	}
	if b.CheckMill(m.To) || b.Phase != phaseAfter(b.Turn-1) {
		return inconsistent(m, "phase does not follow move")
	}
	b.Stones[mover][m.To] = false
	if m.From != NoPosition {
		b.Stones[mover][m.From] = true
	}
	b.Turn--
	b.Player = mover
	b.Phase = m.Phase
	return nil
}

func (b *BoardState) undoRemove(m Move) error {
	if !validPosition(m.From) || m.To != NoPosition {
		return inconsistent(m, "bad target")
	}
	if !b.IsEmpty(m.From) {
		return inconsistent(m, "target is occupied")
	}
	if b.Turn < 1 || b.Phase != phaseAfter(b.Turn-1) {
		return inconsistent(m, "phase does not follow removal")
	}
	// 被提的是当前行棋方（提子后换手）的子
	b.Stones[b.Player][m.From] = true
	b.Turn--
	b.Player = b.Player.Other()
	b.Phase = Removing
	return nil
}
