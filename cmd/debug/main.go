package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"morris/internal/engine"
	"morris/internal/morris"
)

func main() {
	think := flag.Duration("think", 0, "also run a search for this long")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	// 局面记谱由 4 段组成，可以不加引号直接写在命令行上
	b := morris.NewBoardState()
	if flag.NArg() > 0 {
		var err error
		b, err = morris.Decode(strings.Join(flag.Args(), " "))
		if err != nil {
			log.Fatal().Err(err).Msg("decode")
		}
	}

	fmt.Println("Board:", b.Encode())
	printBoard(b)

	for _, c := range []morris.Color{morris.White, morris.Black} {
		fmt.Printf("%-5v on board %d, in hand %d, mills %d\n", c, b.OnBoard(c), b.InHand(c), b.CountMills(c))
	}
	fmt.Println("Winner:", b.GetWinner())

	moves := b.GetLegalMoves()
	fmt.Printf("Legal moves (%d):", len(moves))
	for _, mv := range moves {
		fmt.Printf(" [%v]", mv)
	}
	fmt.Println()

	ev := &engine.Evaluator{LastMillTurn: b.Turn}
	fmt.Printf("Criteria (%v): %+v\n", b.Player, ev.Criteria(b))
	fmt.Printf("Rating: white %d, black %d\n", ev.Rate(b, morris.White), ev.Rate(b, morris.Black))

	if *think > 0 && len(moves) > 0 {
		e := engine.NewEngine(engine.SearchConfig{Logger: &log})
		res, err := e.Search(engine.Request{State: b, Color: b.Player, Budget: *think, LastMillTurn: b.Turn})
		if err != nil {
			log.Fatal().Err(err).Msg("search")
		}
		fmt.Printf("Best: %v rating %d depth %d nodes %d in %v (degraded %v)\n",
			res.Move, res.Rating, res.Depth, res.Nodes, res.TimeUsed, res.Degraded)
	}
}

// 按棋盘实际形状打印
var layout = []string{
	"%s-----------%s-----------%s",
	"|           |           |",
	"|   %s-------%s-------%s   |",
	"|   |       |       |   |",
	"|   |   %s---%s---%s   |   |",
	"|   |   |       |   |   |",
	"%s---%s---%s       %s---%s---%s",
	"|   |   |       |   |   |",
	"|   |   %s---%s---%s   |   |",
	"|   |       |       |   |",
	"|   %s-------%s-------%s   |",
	"|           |           |",
	"%s-----------%s-----------%s",
}

func printBoard(b *morris.BoardState) {
	cells := make([]any, 0, morris.NumPositions)
	for pos := 0; pos < morris.NumPositions; pos++ {
		switch b.At(pos) {
		case morris.White:
			cells = append(cells, "W")
		case morris.Black:
			cells = append(cells, "B")
		default:
			cells = append(cells, "o")
		}
	}
	for _, row := range layout {
		n := strings.Count(row, "%s")
		fmt.Printf(row+"\n", cells[:n]...)
		cells = cells[n:]
	}
}
