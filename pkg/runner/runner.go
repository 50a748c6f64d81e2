// Package runner executes batches of independent walks in parallel and
// aggregates their outcomes. Each walk is a self-contained computation, so
// the only sharing between workers is the read-only material and scene.
package runner

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/dmelnik/go-randomwalk-sss/pkg/core"
	"github.com/dmelnik/go-randomwalk-sss/pkg/sss"
)

// Config controls a batch run
type Config struct {
	Samples int   // number of walks to run
	Workers int   // worker goroutines; <=0 means NumCPU
	Seed    int64 // base seed; each worker derives its own stream
}

// Stats aggregates the outcomes of a batch
type Stats struct {
	Total          int
	StatusCounts   map[sss.WalkStatus]int
	MeanThroughput core.Spectrum // averaged over all walks, failures count as zero
	MeanSteps      float64       // averaged over successful walks
}

// batchResult carries one worker's local accumulation back to the merger
type batchResult struct {
	counts     map[sss.WalkStatus]int
	throughput core.Spectrum
	steps      int
}

// Run executes cfg.Samples walks of mat inside scene starting at entry and
// returns the aggregated statistics. The walk core is invoked concurrently
// on the shared material, which stays read-only throughout.
func Run(cfg Config, walk *sss.RandomWalk, mat *sss.Material, scene core.Intersector, entry core.SurfacePoint) Stats {
	// An empty batch has nothing to split across workers
	if cfg.Samples <= 0 {
		return Stats{StatusCounts: make(map[sss.WalkStatus]int)}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > cfg.Samples {
		workers = cfg.Samples
	}

	// Split the batch evenly; the first worker absorbs the remainder
	per := cfg.Samples / workers
	extra := cfg.Samples % workers

	results := make(chan batchResult, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		count := per
		if w == 0 {
			count += extra
		}
		wg.Add(1)
		go func(workerID, count int) {
			defer wg.Done()
			sampler := core.NewRandomSampler(rand.New(rand.NewSource(cfg.Seed + int64(workerID))))
			local := batchResult{counts: make(map[sss.WalkStatus]int)}
			for i := 0; i < count; i++ {
				result, status := walk.Sample(mat, entry, scene, sampler)
				local.counts[status]++
				if status == sss.WalkOK {
					local.throughput = local.throughput.Add(result.Throughput)
					local.steps += result.Steps
				}
			}
			results <- local
		}(w, count)
	}
	wg.Wait()
	close(results)

	stats := Stats{Total: cfg.Samples, StatusCounts: make(map[sss.WalkStatus]int)}
	totalSteps := 0
	var throughputSum core.Spectrum
	for local := range results {
		for status, n := range local.counts {
			stats.StatusCounts[status] += n
		}
		throughputSum = throughputSum.Add(local.throughput)
		totalSteps += local.steps
	}

	if cfg.Samples > 0 {
		stats.MeanThroughput = throughputSum.Scale(1.0 / float64(cfg.Samples))
	}
	if ok := stats.StatusCounts[sss.WalkOK]; ok > 0 {
		stats.MeanSteps = float64(totalSteps) / float64(ok)
	}
	return stats
}
