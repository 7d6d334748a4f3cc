package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"

	"morris/internal/morris"
)

const (
	defaultBeamWidth = 200
	maxBeamWidth     = 1 << 14

	// 单步思考时间上限，超出的预算按上限处理
	maxBudget = 10 * time.Minute
)

var (
	// ErrNoLegalMoves 局面已经没有合法着法（终局或困毙），调用方按终局处理
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrSearchInFlight 上一次搜索还没结束
	ErrSearchInFlight = errors.New("search already in flight")
	// ErrWrongColor 请求的执棋方不是局面的行棋方
	ErrWrongColor = errors.New("color is not to move")
)

// SearchConfig 搜索配置
type SearchConfig struct {
	BeamWidth int             // 每层保留的最优节点数（0 表示默认 200）
	Logger    *zerolog.Logger // nil 表示不输出
}

// Request 对局方交给引擎的快照
type Request struct {
	State        *morris.BoardState // 当前局面，引擎内部会拷贝
	Color        morris.Color       // 替哪一方走
	Budget       time.Duration      // 思考时间
	History      morris.History     // 实战重复局面表，只读
	LastMillTurn int                // 实战中上一次成三的手数
}

// SearchResult 搜索结果
type SearchResult struct {
	Move     morris.Move
	Rating   int           // 选中着法的 boundMin（引擎视角）
	Depth    int           // 展开到的层数
	Nodes    int64         // 评估过的节点数
	TimeUsed time.Duration // 花费时间
	Degraded bool          // 时间内一个子节点都没评到，退化为随机着法
}

// Engine 一个 Engine 同时只跑一个搜索
type Engine struct {
	cfg   SearchConfig
	log   zerolog.Logger
	cache *ratingCache

	busy atomic.Bool
}

func NewEngine(cfg SearchConfig) *Engine {
	if cfg.BeamWidth <= 0 {
		cfg.BeamWidth = defaultBeamWidth
	}
	cfg.BeamWidth = clamp(cfg.BeamWidth, 1, maxBeamWidth)
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Engine{
		cfg:   cfg,
		log:   log.With().Str("component", "engine").Logger(),
		cache: newRatingCache(),
	}
}

func (e *Engine) BeamWidth() int {
	return e.cfg.BeamWidth
}

func validateRequest(req Request) error {
	if req.State == nil {
		return fmt.Errorf("%w: nil state", ErrNoLegalMoves)
	}
	if req.Color != req.State.Player {
		return fmt.Errorf("%w: %v asked, %v to move", ErrWrongColor, req.Color, req.State.Player)
	}
	return nil
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
