package engine

import (
	"errors"
	"math"
	"sort"

	"morris/internal/morris"
)

type nodeID int32

const (
	rootNode nodeID = 0
	noNode   nodeID = -1
)

var errAlreadyRated = errors.New("node already rated")

// treeNode 只通过下标指向父节点，所有权在 searchTree.nodes 上
type treeNode struct {
	move     morris.Move
	parent   nodeID
	children []nodeID
	depth    int

	rating int
	rated  bool

	// 子树内见过的最低/最高分，只往根方向增量传播
	boundMin int
	boundMax int
	bounded  bool
}

type searchTree struct {
	nodes []treeNode
}

func newSearchTree(capacity int) *searchTree {
	t := &searchTree{nodes: make([]treeNode, 0, capacity)}
	t.nodes = append(t.nodes, treeNode{
		parent:   noNode,
		boundMin: math.MaxInt,
		boundMax: math.MinInt,
	})
	return t
}

func (t *searchTree) node(id nodeID) *treeNode {
	return &t.nodes[id]
}

func (t *searchTree) len() int {
	return len(t.nodes)
}

func (t *searchTree) addChild(parent nodeID, mv morris.Move) nodeID {
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, treeNode{
		move:     mv,
		parent:   parent,
		depth:    t.nodes[parent].depth + 1,
		boundMin: math.MaxInt,
		boundMax: math.MinInt,
	})
	p := &t.nodes[parent]
	p.children = append(p.children, id)
	return id
}

// setRating 记录评分并把边界一路推向根；同一节点只能评一次
func (t *searchTree) setRating(id nodeID, rating int) error {
	n := &t.nodes[id]
	if n.rated {
		return errAlreadyRated
	}
	n.rating = rating
	n.rated = true
	if !fold(n, rating, rating) {
		return nil
	}
	t.propagate(id)
	return nil
}

// propagate 迭代向上，父节点边界没有变化就停
func (t *searchTree) propagate(id nodeID) {
	for {
		child := &t.nodes[id]
		if child.parent == noNode {
			return
		}
		parent := &t.nodes[child.parent]
		if !fold(parent, child.boundMin, child.boundMax) {
			return
		}
		id = child.parent
	}
}

// fold 合并 [lo, hi]，返回边界是否改变
func fold(n *treeNode, lo, hi int) bool {
	if !n.bounded {
		n.boundMin, n.boundMax = lo, hi
		n.bounded = true
		return true
	}
	changed := false
	if lo < n.boundMin {
		n.boundMin = lo
		changed = true
	}
	if hi > n.boundMax {
		n.boundMax = hi
		changed = true
	}
	return changed
}

// path 根到 id 的着法序列（根本身没有着法）
func (t *searchTree) path(id nodeID, buf []morris.Move) []morris.Move {
	buf = buf[:0]
	for id != rootNode && id != noNode {
		n := &t.nodes[id]
		buf = append(buf, n.move)
		id = n.parent
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// keepBest 按评分从高到低排序，只留前 n 个，其余直接丢弃
func (t *searchTree) keepBest(ids []nodeID, n int) []nodeID {
	sort.SliceStable(ids, func(i, j int) bool {
		return t.nodes[ids[i]].rating > t.nodes[ids[j]].rating
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}
