package morris

import "sync"

// 棋盘编号：
//
//	0-----------1-----------2
//	|           |           |
//	|   3-------4-------5   |
//	|   |       |       |   |
//	|   |   6---7---8   |   |
//	|   |   |       |   |   |
//	9---10--11      12--13--14
//	|   |   |       |   |   |
//	|   |   15--16--17  |   |
//	|   |       |       |   |
//	|   18------19------20  |
//	|           |           |
//	21----------22----------23
const (
	NumPositions    = 24
	StonesPerPlayer = 9

	// 布子共 18 手（turn 0..17）
	PlacementTurns = 2 * StonesPerPlayer
)

type Axis int8

const (
	Horizontal Axis = 0
	Vertical   Axis = 1
)

// Neighbors 四个方向的邻点，NoPosition 表示没有
type Neighbors struct {
	Left, Right, Top, Bottom int
}

const no = NoPosition

var adjacency = [NumPositions]Neighbors{
	{no, 1, no, 9},    // 0
	{0, 2, no, 4},     // 1
	{1, no, no, 14},   // 2
	{no, 4, no, 10},   // 3
	{3, 5, 1, 7},      // 4
	{4, no, no, 13},   // 5
	{no, 7, no, 11},   // 6
	{6, 8, 4, no},     // 7
	{7, no, no, 12},   // 8
	{no, 10, 0, 21},   // 9
	{9, 11, 3, 18},    // 10
	{10, no, 6, 15},   // 11
	{no, 13, 8, 17},   // 12
	{12, 14, 5, 20},   // 13
	{13, no, 2, 23},   // 14
	{no, 16, 11, no},  // 15
	{15, 17, no, 19},  // 16
	{16, no, 12, no},  // 17
	{no, 19, 10, no},  // 18
	{18, 20, 16, 22},  // 19
	{19, no, 13, no},  // 20
	{no, 22, 9, no},   // 21
	{21, 23, 19, no},  // 22
	{22, no, 14, no},  // 23
}

var (
	topologyOnce sync.Once

	// linesOf[pos][axis] 是经过 pos 的那条三连线（按左→右 / 上→下排序）
	linesOf [NumPositions][2][3]int
	// 全部 16 条成三线
	millLines [][3]int
	// 每个点的邻点列表（去掉 NoPosition）
	neighborList [NumPositions][]int
)

func initTopology() {
	topologyOnce.Do(func() {
		for pos := 0; pos < NumPositions; pos++ {
			linesOf[pos][Horizontal] = walkLine(pos, Horizontal)
			linesOf[pos][Vertical] = walkLine(pos, Vertical)

			n := adjacency[pos]
			for _, q := range []int{n.Left, n.Right, n.Top, n.Bottom} {
				if q != NoPosition {
					neighborList[pos] = append(neighborList[pos], q)
				}
			}
		}
		for pos := 0; pos < NumPositions; pos++ {
			for axis := Horizontal; axis <= Vertical; axis++ {
				line := linesOf[pos][axis]
				// 每条线只在它的起点登记一次
				if line[0] == pos {
					millLines = append(millLines, line)
				}
			}
		}
	})
}

// 先走到该方向的端点，再向另一侧收集三个点
func walkLine(pos int, axis Axis) [3]int {
	back := func(p int) int {
		if axis == Horizontal {
			return adjacency[p].Left
		}
		return adjacency[p].Top
	}
	fwd := func(p int) int {
		if axis == Horizontal {
			return adjacency[p].Right
		}
		return adjacency[p].Bottom
	}
	start := pos
	for back(start) != NoPosition {
		start = back(start)
	}
	var line [3]int
	p := start
	for i := 0; i < 3; i++ {
		if p == NoPosition {
			panic("morris: broken adjacency table")
		}
		line[i] = p
		p = fwd(p)
	}
	if p != NoPosition {
		panic("morris: line longer than three")
	}
	return line
}

// Adjacent 返回 pos 的四向邻点
func Adjacent(pos int) Neighbors {
	return adjacency[pos]
}

// NeighborsOf 返回 pos 的全部邻点
func NeighborsOf(pos int) []int {
	initTopology()
	return neighborList[pos]
}

// IsAdjacent 判断两点是否相邻
func IsAdjacent(a, b int) bool {
	n := adjacency[a]
	return n.Left == b || n.Right == b || n.Top == b || n.Bottom == b
}

// LineOf 返回经过 pos 的某个方向的三连线
func LineOf(pos int, axis Axis) [3]int {
	initTopology()
	return linesOf[pos][axis]
}

// MillLines 返回全部 16 条成三线
func MillLines() [][3]int {
	initTopology()
	return millLines
}

func validPosition(pos int) bool {
	return pos >= 0 && pos < NumPositions
}
