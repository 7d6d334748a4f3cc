package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"morris/internal/engine"
	"morris/internal/morris"
)

const (
	// 同一局面出现 3 次判和
	drawRepetitions = 3
	// 连续这么多手没人成三判和
	drawTurnsWithoutMill = 50
)

var (
	ErrGameOver       = errors.New("game is over")
	ErrNotAIPlayer    = errors.New("side to move has no strategy")
	ErrSearchInFlight = engine.ErrSearchInFlight
)

type Status int

const (
	Ongoing Status = iota
	Won
	Draw
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Options 新开一局的参数
type Options struct {
	Players [2]engine.MoveStrategy // nil 表示人类
	Budget  time.Duration          // AI 思考时间
	Logger  *zerolog.Logger
}

// GameSession 对局方持有的实战对局：活棋盘、重复局面表、上次成三的手数
type GameSession struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu           sync.Mutex
	board        *morris.BoardState
	history      *morris.RepetitionTable
	lastMillTurn int
	moves        []morris.Move

	players [2]engine.MoveStrategy
	budget  time.Duration
	log     zerolog.Logger

	// 同一时间只允许一个 AI 思考
	thinking sync.Mutex
}

func newSession(id string, opts Options) *GameSession {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	now := time.Now()
	g := &GameSession{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		board:     morris.NewBoardState(),
		history:   morris.NewRepetitionTable(),
		players:   opts.Players,
		budget:    opts.Budget,
		log:       log.With().Str("game", id).Logger(),
	}
	g.history.Record(g.board)
	return g
}

// Board 返回活棋盘的拷贝
func (g *GameSession) Board() *morris.BoardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone()
}

func (g *GameSession) Moves() []morris.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]morris.Move(nil), g.moves...)
}

func (g *GameSession) LastMillTurn() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastMillTurn
}

// Status 当前对局状态；Won 时第二个返回值是胜方
func (g *GameSession) Status() (Status, morris.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status()
}

func (g *GameSession) status() (Status, morris.Color) {
	if w := g.board.GetWinner(); w != morris.NoColor {
		return Won, w
	}
	if len(g.board.GetLegalMoves()) == 0 {
		// 理论上走不到：没有着法时 GetWinner 已经给出胜方
		return Won, g.board.Player.Other()
	}
	if g.history.Count(g.board.Hash()) >= drawRepetitions {
		return Draw, morris.NoColor
	}
	if g.board.Turn-g.lastMillTurn >= drawTurnsWithoutMill {
		return Draw, morris.NoColor
	}
	return Ongoing, morris.NoColor
}

// Play 在活棋盘上走一步（人类或 AI 的着法都走这里）
func (g *GameSession) Play(mv morris.Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if st, _ := g.status(); st != Ongoing {
		return ErrGameOver
	}
	if !g.board.IsLegal(mv) {
		return fmt.Errorf("%w: %s on %s", morris.ErrIllegalMove, mv, g.board.Encode())
	}
	if err := g.board.ApplyMove(mv); err != nil {
		return err
	}
	g.moves = append(g.moves, mv)
	g.UpdatedAt = time.Now()

	if g.board.Phase == morris.Removing {
		g.lastMillTurn = g.board.Turn
	} else {
		g.history.Record(g.board)
	}

	st, winner := g.status()
	g.log.Debug().
		Str("move", mv.String()).
		Str("board", g.board.Encode()).
		Stringer("status", st).
		Stringer("winner", winner).
		Msg("move played")
	return nil
}

// Think 让行棋方的策略算一步，不落子
func (g *GameSession) Think() (engine.SearchResult, error) {
	if !g.thinking.TryLock() {
		return engine.SearchResult{}, ErrSearchInFlight
	}
	defer g.thinking.Unlock()

	g.mu.Lock()
	if st, _ := g.status(); st != Ongoing {
		g.mu.Unlock()
		return engine.SearchResult{}, ErrGameOver
	}
	color := g.board.Player
	strategy := g.players[color]
	req := engine.Request{
		State:        g.board.Clone(),
		Color:        color,
		Budget:       g.budget,
		History:      g.history,
		LastMillTurn: g.lastMillTurn,
	}
	g.mu.Unlock()

	if strategy == nil {
		return engine.SearchResult{}, ErrNotAIPlayer
	}
	res, err := strategy.SelectMove(req)
	if err != nil {
		return engine.SearchResult{}, err
	}
	if res.Degraded {
		g.log.Warn().Str("strategy", strategy.Name()).Msg("degraded move selection")
	}
	return res, nil
}

// AIMove Think 之后把着法落到活棋盘上
func (g *GameSession) AIMove() (engine.SearchResult, error) {
	res, err := g.Think()
	if err != nil {
		return res, err
	}
	return res, g.Play(res.Move)
}
