package main

import (
	"bufio"
	"fmt"
	"os"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/provider"
	"github.com/cricklet/perftdiff/internal/session"
	"github.com/pkg/profile"
	"golang.org/x/term"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
		}
	}()

	args := os.Args[1:]

	if Contains(args, "profile") {
		profilePath := RootDir() + "/data/CmdPerftdiffMain"
		p := profile.Start(profile.ProfilePath(profilePath))
		defer p.Stop()
	}
	args = FilterSlice(args, func(arg string) bool {
		return arg != "profile"
	})

	verbose := Contains(args, "verbose")
	args = FilterSlice(args, func(arg string) bool {
		return arg != "verbose"
	})

	chess960 := Contains(args, "chess960")
	args = FilterSlice(args, func(arg string) bool {
		return arg != "chess960"
	})

	if len(args) == 0 {
		fmt.Println("usage:")
		fmt.Println(" > perftdiff <script> [verbose] [chess960]")
		fmt.Println(" > perftdiff builtin [verbose] [chess960]")
		fmt.Println()
		fmt.Println("compares <script>'s perft counts against stockfish.")
		fmt.Println("set PERFTDIFF_STOCKFISH to point at a specific binary.")
		return
	}

	providerLogger := func(prefix string) Logger {
		if !verbose {
			return &SilentLogger
		}
		return PrefixLogger(prefix, FuncLogger(func(str string) {
			fmt.Fprint(os.Stderr, str)
		}))
	}

	var left provider.Provider
	if args[0] == "builtin" {
		left = provider.NewBuiltinProvider("builtin")
	} else {
		left = provider.NewScriptProvider(args[0],
			provider.WithScriptLogger(providerLogger("script: ")))
	}

	stockfishOptions := []provider.StockfishProviderOption{
		provider.WithStockfishLogger(providerLogger("stockfish: ")),
	}
	if path := os.Getenv("PERFTDIFF_STOCKFISH"); path != "" {
		stockfishOptions = append(stockfishOptions, provider.WithStockfishPath(path))
	}
	if chess960 {
		stockfishOptions = append(stockfishOptions, provider.WithChess960(true))
	}
	right := provider.NewStockfishProvider(stockfishOptions...)

	colors := term.IsTerminal(int(os.Stdout.Fd()))

	s := session.NewSession(left, right,
		session.WithColors(colors),
		session.WithLogger(FuncLogger(
			func(str string) {
				fmt.Fprint(os.Stderr, str)
			})),
	)
	defer s.Close()

	scanner := bufio.NewScanner(os.Stdin)

	for !s.IsDone() && scanner.Scan() {
		input := scanner.Text()
		result, err := s.HandleInput(input)
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, "error:", err.Message())
			continue
		}
		for _, v := range result {
			fmt.Println(v)
		}
	}
}
