package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"schedparse/adapters/excel"
	"schedparse/app"
	"schedparse/domain/schedule"
	"schedparse/internal/config"
	"schedparse/internal/extract"
)

type fileResult struct {
	File   string               `json:"file"`
	Result schedule.ParseResult `json:"result"`
}

func main() {
	workers := flag.Int("workers", 4, "number of files parsed concurrently")
	disableFuzzy := flag.Bool("no-fuzzy", false, "disable fuzzy header matching")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: parse [flags] <schedule.xlsx> [more.xlsx ...]")
		os.Exit(2)
	}

	parser := extract.NewParser(nil, extract.Options{DisableFuzzy: *disableFuzzy})
	svc := app.NewParseService(parser, nil, nil, config.EnhancerConfig{Mode: config.EnhancerModeFallback})

	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)

	for i, path := range files {
		g.Go(func() error {
			result, err := parseFile(ctx, svc, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = fileResult{File: path, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Parse failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		log.Fatalf("Encode results: %v", err)
	}
}

func parseFile(ctx context.Context, svc *app.ParseService, path string) (schedule.ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schedule.ParseResult{}, err
	}

	wb, err := excel.LoadWorkbook(data)
	if err != nil {
		return schedule.ParseResult{}, err
	}
	defer wb.Close()

	name := excel.ScheduleName(wb, filepath.Base(path))
	return svc.Parse(ctx, wb, name)
}
