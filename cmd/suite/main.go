package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"

	. "github.com/cricklet/perftdiff/internal/helpers"
	"github.com/cricklet/perftdiff/internal/provider"
	"github.com/cricklet/perftdiff/internal/suite"
)

func unmarshalSuiteCache(jsonPath string, results *[]suite.CaseResult) (bool, Error) {
	_, err := os.Stat(jsonPath)
	if !IsNil(err) {
		return false, NilError
	}
	input, err := os.ReadFile(jsonPath)
	if !IsNil(err) {
		return false, Wrap(err)
	}
	err = json.Unmarshal(input, results)
	if !IsNil(err) {
		return false, Wrap(err)
	}

	return true, NilError
}

func marshalSuiteCache(jsonPath string, results *[]suite.CaseResult) Error {
	output, err := json.MarshalIndent(results, "", "  ")
	if !IsNil(err) {
		return Wrap(err)
	}
	err = os.WriteFile(jsonPath, output, 0644)
	return Wrap(err)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Println("usage:")
		fmt.Println(" > suite <script> <cases>")
		fmt.Println(" > suite builtin <cases>")
		fmt.Println(" > suite clean")
		return
	}

	cachePath := RootDir() + "/data/suite_cache.json"

	if args[0] == "clean" {
		err := Wrap(os.Remove(cachePath))
		if err.HasError() {
			fmt.Println("no cache to clean")
		}
		return
	}

	if len(args) < 2 {
		fmt.Println("usage: suite <script> <cases>")
		return
	}

	cache := &[]suite.CaseResult{}
	found, err := unmarshalSuiteCache(cachePath, cache)
	if err.HasError() {
		panic(err)
	}

	logger := NewLiveLogger()
	logger.Println("found cache:", found)

	var left provider.Provider
	if args[0] == "builtin" {
		left = provider.NewBuiltinProvider("builtin")
	} else {
		left = provider.NewScriptProvider(args[0],
			provider.WithScriptLogger(NewFooterLogger(logger, 0)))
	}

	stockfishOptions := []provider.StockfishProviderOption{
		provider.WithStockfishLogger(NewFooterLogger(logger, 1)),
	}
	if path := os.Getenv("PERFTDIFF_STOCKFISH"); path != "" {
		stockfishOptions = append(stockfishOptions, provider.WithStockfishPath(path))
	}
	right := provider.NewStockfishProvider(stockfishOptions...)

	defer left.Close()
	defer right.Close()

	cases, err := suite.LoadCases(args[1])
	if err.HasError() {
		panic(err)
	}

	results := suite.Run(left, right, cases, *cache, logger,
		func(result suite.CaseResult) {
			*cache = append(*cache, result)
			saveErr := marshalSuiteCache(cachePath, cache)
			if saveErr.HasError() {
				panic(saveErr)
			}
		})

	logger.FlushFooter()
	logger.Println(suite.Summarize(results))
}
