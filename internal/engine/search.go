package engine

import (
	"time"

	"lukechampine.com/frand"

	"morris/internal/morris"
)

// Search 在时间预算内按层展开博弈树（每层只留 BeamWidth 个最高分节点），
// 时间到后在根的子节点里选 boundMin 最高的着法。
//
// 预算只在每次弹出节点时检查，实际耗时可能多出一个节点的展开时间。
func (e *Engine) Search(req Request) (SearchResult, error) {
	if err := validateRequest(req); err != nil {
		return SearchResult{}, err
	}
	if !e.busy.CompareAndSwap(false, true) {
		return SearchResult{}, ErrSearchInFlight
	}
	defer e.busy.Store(false)

	start := time.Now()
	deadline := start.Add(clamp(req.Budget, 0, maxBudget))

	snapshot := req.State.Clone()
	if len(snapshot.GetLegalMoves()) == 0 {
		return SearchResult{}, ErrNoLegalMoves
	}

	state := snapshot.Clone()
	ev := &Evaluator{History: req.History, LastMillTurn: req.LastMillTurn}
	me := req.Color
	e.cache.reset()

	beam := e.cfg.BeamWidth
	tree := newSearchTree(beam * 16)
	frontier := []nodeID{rootNode}
	next := make([]nodeID, 0, beam*8)

	var (
		path     []morris.Move
		moves    []morris.Move
		nodes    int64
		depth    int
		timedOut bool
	)

	for len(frontier) > 0 && !timedOut {
		for _, id := range frontier {
			if !time.Now().Before(deadline) {
				timedOut = true
				break
			}

			path = tree.path(id, path)
			if !e.replay(state, snapshot, path) {
				continue
			}

			replayed := true
			moves = state.AppendLegalMoves(moves[:0])
			for _, mv := range moves {
				if err := state.ApplyMove(mv); err != nil {
					e.log.Error().Err(err).Str("state", state.Encode()).Msg("generated move rejected")
					continue
				}
				child := tree.addChild(id, mv)
				if err := tree.setRating(child, e.rate(ev, state, me)); err != nil {
					e.log.Error().Err(err).Int("node", int(child)).Msg("rating")
				}
				nodes++
				if err := state.UndoMove(mv); err != nil {
					e.log.Error().Err(err).Str("move", mv.String()).Msg("undo failed, restoring snapshot")
					*state = *snapshot
					// 快照上重新走到当前节点，继续展开剩下的着法
					if replayed = e.replay(state, snapshot, path); !replayed {
						// 已入队的兄弟节点仍然有效，只放弃当前子节点和剩下的着法
						break
					}
				}
				next = append(next, child)
			}

			if replayed {
				e.unwind(state, snapshot, path)
			}
		}

		if timedOut {
			break
		}

		next = tree.keepBest(next, beam)
		frontier, next = next, frontier[:0]
		depth++

		e.log.Debug().
			Int("depth", depth).
			Int("frontier", len(frontier)).
			Int64("nodes", nodes).
			Msg("level expanded")
	}

	res := SearchResult{
		Depth: depth,
		Nodes: nodes,
	}
	best, ok := selectChild(tree)
	if ok {
		res.Move = tree.node(best).move
		res.Rating = tree.node(best).boundMin
	} else {
		legal := snapshot.GetLegalMoves()
		res.Move = legal[frand.Intn(len(legal))]
		res.Degraded = true
		e.log.Warn().
			Dur("budget", req.Budget).
			Str("move", res.Move.String()).
			Msg("search exhausted before any node was rated, playing random move")
	}
	res.TimeUsed = time.Since(start)

	e.log.Info().
		Str("move", res.Move.String()).
		Int("rating", res.Rating).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Int64("cache_hits", e.cache.hits).
		Int("tree", tree.len()).
		Dur("elapsed", res.TimeUsed).
		Msg("search done")
	return res, nil
}

// rate 引擎视角的评分，按 (hash, turn) 缓存
func (e *Engine) rate(ev *Evaluator, b *morris.BoardState, me morris.Color) int {
	v := e.cache.rate(ev, b)
	if b.Player != me {
		return -v
	}
	return v
}

// replay 在 state 上依次执行根到节点的着法；中途失败会退回快照并返回 false
func (e *Engine) replay(state, snapshot *morris.BoardState, path []morris.Move) bool {
	for i, mv := range path {
		if err := state.ApplyMove(mv); err != nil {
			e.log.Error().Err(err).Int("ply", i).Str("move", mv.String()).Msg("replay failed, branch dropped")
			*state = *snapshot
			return false
		}
	}
	return true
}

// unwind 逆序撤销 path；撤销不一致时直接回到快照
func (e *Engine) unwind(state, snapshot *morris.BoardState, path []morris.Move) {
	for i := len(path) - 1; i >= 0; i-- {
		if err := state.UndoMove(path[i]); err != nil {
			e.log.Error().Err(err).Int("ply", i).Str("move", path[i].String()).Msg("unwind failed, restoring snapshot")
			*state = *snapshot
			return
		}
	}
}

// selectChild 根的子节点先打乱（随机打破平分），再取 boundMin 最高的
func selectChild(tree *searchTree) (nodeID, bool) {
	children := append([]nodeID(nil), tree.node(rootNode).children...)
	frand.Shuffle(len(children), func(i, j int) {
		children[i], children[j] = children[j], children[i]
	})
	best := noNode
	for _, id := range children {
		n := tree.node(id)
		if !n.bounded {
			continue
		}
		if best == noNode || n.boundMin > tree.node(best).boundMin {
			best = id
		}
	}
	return best, best != noNode
}
