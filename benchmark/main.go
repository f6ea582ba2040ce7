// Package main provides a performance benchmarking tool for the commentiq CLI.
// It measures batch analysis times across different input sizes and worker counts,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - commentiq binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic comment files and cache databases are written
package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Workers     int
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir      string
	Timeout      time.Duration
	WorkerCounts []int
	NoCacheRuns  int
	CacheRuns    int
	Datasets     map[string]int
	DatasetOrder []string
}

// phrases are combined into synthetic comments with a mix of sentiment and length.
var phrases = []string{
	"The battery life is excellent and lasts all day.",
	"Shipping took forever and the box arrived damaged.",
	"Customer support answered quickly and solved my problem.",
	"The screen is a bit dim outdoors.",
	"I love the camera, the photos look amazing!",
	"Terrible experience, I want a refund.",
	"Setup was simple. Everything worked on the first try.",
	"The price is fair for what you get.",
	"Keyboard feels cheap and some keys stick.",
	"Would recommend to friends, great value overall.",
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:      workDir,
		Timeout:      5 * time.Minute,
		WorkerCounts: []int{1, 4, 14},
		NoCacheRuns:  3,
		CacheRuns:    4,
		Datasets: map[string]int{
			"small":  100,
			"medium": 1_000,
			"large":  10_000,
		},
		DatasetOrder: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateDatasets(config); err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results, config)
}

// checkPrerequisites verifies that the commentiq binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("commentiq"); err != nil {
		return fmt.Errorf("commentiq binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// datasetPath returns the comment file for a dataset
func datasetPath(config BenchmarkConfig, dataset string) string {
	return filepath.Join(config.WorkDir, dataset+".txt")
}

// generateDatasets writes one comment per line, each line unique so the cache sees every text
func generateDatasets(config BenchmarkConfig) error {
	for _, dataset := range config.DatasetOrder {
		path := datasetPath(config, dataset)
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		w := bufio.NewWriter(file)
		for i := range config.Datasets[dataset] {
			first := phrases[i%len(phrases)]
			second := phrases[(i/len(phrases))%len(phrases)]
			_, _ = fmt.Fprintf(w, "%s %s (#%d)\n", first, second, i)
		}
		if err := w.Flush(); err != nil {
			_ = file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
		fmt.Printf("Wrote %d comments to %s\n", config.Datasets[dataset], path)
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured datasets and worker counts
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, workers %v, no-cache: %d runs, cache: %d runs\n",
		len(config.DatasetOrder), config.Timeout, config.WorkerCounts, config.NoCacheRuns, config.CacheRuns)

	for _, dataset := range config.DatasetOrder {
		for _, workers := range config.WorkerCounts {
			results = append(results, runBenchmarkSuite(config, dataset, workers))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a dataset
func runBenchmarkSuite(config BenchmarkConfig, dataset string, workers int) BenchmarkResult {
	fmt.Printf("Running batch analysis on %s with %d workers\n", dataset, workers)

	// Every suite starts from an empty cache database
	cacheDB := filepath.Join(config.WorkDir, fmt.Sprintf("cache_%s_%d.db", dataset, workers))
	_ = os.Remove(cacheDB)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataset, workers, cacheBackend, cacheDB, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Workers:     workers,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes commentiq batch multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataset string, workers int, cacheBackend, cacheDB string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"batch",
		"--file", datasetPath(config, dataset),
		"--workers", fmt.Sprint(workers),
		"--cache-backend", cacheBackend,
		"--cache-db-connect", cacheDB,
		"--history-backend", "none",
		"--no-save",
		"--limit", "1",
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("commentiq", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analyzed") &&
		strings.Contains(outputStr, "(0 failed)") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/commentiq_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "workers", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, fmt.Sprint(result.Workers), result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult, config BenchmarkConfig) {
	fmt.Printf("Benchmark complete\n")

	for _, dataset := range config.DatasetOrder {
		fmt.Printf("%s (%d comments):\n", dataset, config.Datasets[dataset])
		for _, result := range results {
			if result.Dataset == dataset {
				fmt.Printf("  %2d workers: No-cache: %s, Cold: %s, Warm: %s\n", result.Workers, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
