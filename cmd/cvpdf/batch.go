package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	cvpdf "github.com/ahmednasr999/opportunity-engine-sub001"
)

// Pool abstracts serializer pool operations for testability.
type Pool interface {
	Acquire() (cvpdf.Serializer, error)
	Release(cvpdf.Serializer)
	Size() int
}

// Compile-time interface implementation check.
var _ Pool = (*cvpdf.SerializerPool)(nil)

// GenerationResult holds the outcome of a single profile.
type GenerationResult struct {
	InputPath  string
	OutputPath string
	Pages      int
	Omitted    []cvpdf.Section
	Err        error
	Duration   time.Duration
}

// generateBatch processes profiles concurrently using the serializer pool.
// Results keep the order of paths.
func generateBatch(ctx context.Context, pool Pool, paths []string, dest cvpdf.Destination) []GenerationResult {
	if len(paths) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(paths))

	results := make([]GenerationResult, len(paths))
	var wg sync.WaitGroup
	jobs := make(chan int, len(paths))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			s, err := pool.Acquire()
			if err != nil {
				// Serializer creation failed, mark the jobs this worker takes as failed
				for idx := range jobs {
					results[idx] = GenerationResult{InputPath: paths[idx], Err: err}
				}
				return
			}
			defer pool.Release(s)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = GenerationResult{InputPath: paths[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = generateFile(ctx, s, paths[idx], dest)
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// generateFile loads one profile and writes its document.
func generateFile(ctx context.Context, s cvpdf.Serializer, path string, dest cvpdf.Destination) GenerationResult {
	start := time.Now()
	result := GenerationResult{InputPath: path}

	p, err := cvpdf.LoadProfile(path)
	if err != nil {
		if errors.Is(err, cvpdf.ErrEmptyName) || errors.Is(err, fs.ErrNotExist) {
			result.Err = err
		} else {
			result.Err = fmt.Errorf("%w: %v", ErrReadProfile, err)
		}
		result.Duration = time.Since(start)
		return result
	}

	res, err := s.Generate(ctx, p, dest)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}

	result.OutputPath = res.Path
	result.Pages = res.Pages
	result.Omitted = res.Omitted
	return result
}

// ResultSummary holds the count of succeeded and failed generations.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed generations.
func countResults(results []GenerationResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// firstError returns the first failure in results.
func firstError(results []GenerationResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResultsWithWriter outputs generation results and returns the number of failures.
func printResultsWithWriter(results []GenerationResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d page(s), %v)\n",
				r.InputPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
			for _, s := range r.Omitted {
				fmt.Fprintf(env.Stdout, "  omitted %s: no data\n", s)
			}
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
