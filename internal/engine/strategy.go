package engine

import (
	"fmt"
	"time"

	"lukechampine.com/frand"

	"morris/internal/morris"
)

// MoveStrategy 是对局方可以组合的走子策略
type MoveStrategy interface {
	Name() string
	SelectMove(req Request) (SearchResult, error)
}

// NewStrategy 按名字构造策略：random / greedy / search
func NewStrategy(name string, cfg SearchConfig) (MoveStrategy, error) {
	switch name {
	case "random":
		return RandomStrategy{}, nil
	case "greedy":
		return GreedyMillStrategy{}, nil
	case "search", "":
		return NewSearchStrategy(NewEngine(cfg)), nil
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}

// RandomStrategy 均匀随机走一步合法着法
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return "random" }

func (RandomStrategy) SelectMove(req Request) (SearchResult, error) {
	start := time.Now()
	if err := validateRequest(req); err != nil {
		return SearchResult{}, err
	}
	moves := req.State.GetLegalMoves()
	if len(moves) == 0 {
		return SearchResult{}, ErrNoLegalMoves
	}
	return SearchResult{
		Move:     moves[frand.Intn(len(moves))],
		Nodes:    int64(len(moves)),
		TimeUsed: time.Since(start),
	}, nil
}

// GreedyMillStrategy 规则型：能成三就成三，否则堵对方的三，否则随机。
// 提子时优先提对方“差一子成三”线上的子。
type GreedyMillStrategy struct{}

func (GreedyMillStrategy) Name() string { return "greedy" }

func (GreedyMillStrategy) SelectMove(req Request) (SearchResult, error) {
	start := time.Now()
	if err := validateRequest(req); err != nil {
		return SearchResult{}, err
	}
	b := req.State.Clone()
	moves := b.GetLegalMoves()
	if len(moves) == 0 {
		return SearchResult{}, ErrNoLegalMoves
	}

	var picked []morris.Move
	if b.Phase == morris.Removing {
		picked = threatStones(b, moves)
	} else {
		picked = millClosers(b, moves)
		if len(picked) == 0 {
			picked = millBlockers(b, moves)
		}
	}
	if len(picked) == 0 {
		picked = moves
	}
	return SearchResult{
		Move:     picked[frand.Intn(len(picked))],
		Nodes:    int64(len(moves)),
		TimeUsed: time.Since(start),
	}, nil
}

// millClosers 走完进入提子阶段的着法
func millClosers(b *morris.BoardState, moves []morris.Move) []morris.Move {
	var out []morris.Move
	for _, mv := range moves {
		if err := b.ApplyMove(mv); err != nil {
			continue
		}
		if b.Phase == morris.Removing {
			out = append(out, mv)
		}
		_ = b.UndoMove(mv)
	}
	return out
}

// completesFor pos 上放 c 的子能否成三
func completesFor(b *morris.BoardState, c morris.Color, pos int) bool {
	for _, axis := range []morris.Axis{morris.Horizontal, morris.Vertical} {
		own, _ := lineShape(b, c, pos, axis)
		if own == 2 {
			return true
		}
	}
	return false
}

// millBlockers 落到对方成三点上的着法
func millBlockers(b *morris.BoardState, moves []morris.Move) []morris.Move {
	opp := b.Player.Other()
	var out []morris.Move
	for _, mv := range moves {
		if mv.To == morris.NoPosition || !completesFor(b, opp, mv.To) {
			continue
		}
		out = append(out, mv)
	}
	return out
}

// threatStones 提掉对方能在下一手成三的线上的子
func threatStones(b *morris.BoardState, moves []morris.Move) []morris.Move {
	opp := b.Player.Other()
	var out []morris.Move
	for _, mv := range moves {
		for _, axis := range []morris.Axis{morris.Horizontal, morris.Vertical} {
			line := morris.LineOf(mv.From, axis)
			own, empty := 0, 0
			for _, q := range line {
				switch {
				case b.Stones[opp][q]:
					own++
				case b.IsEmpty(q):
					empty++
				}
			}
			if own == 2 && empty == 1 {
				out = append(out, mv)
				break
			}
		}
	}
	return out
}

// SearchStrategy 时间受限的束搜索
type SearchStrategy struct {
	engine *Engine
}

func NewSearchStrategy(e *Engine) *SearchStrategy {
	return &SearchStrategy{engine: e}
}

func (s *SearchStrategy) Name() string { return "search" }

func (s *SearchStrategy) SelectMove(req Request) (SearchResult, error) {
	return s.engine.Search(req)
}
