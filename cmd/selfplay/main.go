package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"morris/internal/engine"
	"morris/internal/morris"
	"morris/internal/session"
)

type tally struct {
	mu          sync.Mutex
	wins        [2]int // 按策略 a / b 统计
	draws       int
	unfinished  int
	plies       int
	searchNodes int64
}

func main() {
	games := flag.Int("games", 10, "number of games to play")
	budget := flag.Duration("time", time.Second, "thinking time per AI move")
	white := flag.String("white", "search", "strategy of player A: random / greedy / search")
	black := flag.String("black", "greedy", "strategy of player B: random / greedy / search")
	beam := flag.Int("beam", 0, "beam width of the search strategy (0 = default)")
	parallel := flag.Int("parallel", 4, "games played at the same time")
	maxPlies := flag.Int("maxplies", 400, "stop a game after this many plies")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	names := [2]string{*white, *black}
	cfg := engine.SearchConfig{BeamWidth: *beam, Logger: &log}
	for _, n := range names {
		if _, err := engine.NewStrategy(n, cfg); err != nil {
			log.Fatal().Err(err).Msg("bad strategy")
		}
	}

	mgr := session.NewManager()
	var t tally
	start := time.Now()

	var eg errgroup.Group
	eg.SetLimit(*parallel)
	for i := 0; i < *games; i++ {
		i := i
		eg.Go(func() error {
			// 奇数局交换先后手
			a, b := 0, 1
			if i%2 == 1 {
				a, b = 1, 0
			}
			var players [2]engine.MoveStrategy
			for side, idx := range [2]int{a, b} {
				// 每局独立的引擎，Engine 同时只能跑一个搜索
				st, err := engine.NewStrategy(names[idx], cfg)
				if err != nil {
					return err
				}
				players[side] = st
			}
			g := mgr.NewGame(session.Options{Players: players, Budget: *budget, Logger: &log})
			defer mgr.Remove(g.ID)

			res, err := playGame(g, *maxPlies)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}

			t.mu.Lock()
			defer t.mu.Unlock()
			t.plies += res.plies
			t.searchNodes += res.nodes
			switch res.status {
			case session.Won:
				// winner 是颜色，换算回策略
				idx := a
				if res.winner == morris.Black {
					idx = b
				}
				t.wins[idx]++
			case session.Draw:
				t.draws++
			default:
				t.unfinished++
			}
			log.Info().
				Int("game", i+1).
				Str("white", names[a]).
				Str("black", names[b]).
				Stringer("status", res.status).
				Stringer("winner", res.winner).
				Int("plies", res.plies).
				Msg("game finished")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatal().Err(err).Msg("selfplay failed")
	}

	fmt.Printf("\n=== %d games in %v ===\n", *games, time.Since(start).Round(time.Millisecond))
	fmt.Printf("%-10s wins: %d\n", names[0]+" (A)", t.wins[0])
	fmt.Printf("%-10s wins: %d\n", names[1]+" (B)", t.wins[1])
	fmt.Printf("draws:          %d\n", t.draws)
	if t.unfinished > 0 {
		fmt.Printf("unfinished:     %d\n", t.unfinished)
	}
	if *games > 0 {
		fmt.Printf("avg plies:      %.1f\n", float64(t.plies)/float64(*games))
		fmt.Printf("avg nodes/game: %d\n", t.searchNodes/int64(*games))
	}
}

type gameResult struct {
	status session.Status
	winner morris.Color
	plies  int
	nodes  int64
}

func playGame(g *session.GameSession, maxPlies int) (gameResult, error) {
	var res gameResult
	for res.plies < maxPlies {
		if st, _ := g.Status(); st != session.Ongoing {
			break
		}
		sr, err := g.AIMove()
		if err != nil {
			return res, err
		}
		res.plies++
		res.nodes += sr.Nodes
	}
	res.status, res.winner = g.Status()
	return res, nil
}
