// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"judgment-extract/internal/logging"
	"judgment-extract/internal/observability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxWorkers caps the default worker count
const MaxWorkers = 8

// Processor manages parallel judgment processing
type Processor struct {
	workers  int
	pipeline *Pipeline
	observer *observability.StandardObserver
	logger   *zap.Logger
}

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	BatchID        string        `json:"batch_id"`
	TotalFiles     int           `json:"total_files"`
	ProcessedFiles int           `json:"processed_files"`
	FailedFiles    int           `json:"failed_files"`
	ClassifyErrors int           `json:"classify_errors"`
	StoreErrors    int           `json:"store_errors"`
	TotalDuration  time.Duration `json:"total_duration_ms"`
	WorkerCount    int           `json:"worker_count"`
	AvgFileTime    time.Duration `json:"avg_file_time_ms"`
}

// NewProcessor creates a processor. A non-positive worker count uses the
// number of CPUs, capped at MaxWorkers.
func NewProcessor(workers int, pipeline *Pipeline, observer *observability.StandardObserver, logger *zap.Logger) *Processor {
	if workers <= 0 {
		workers = min(runtime.NumCPU(), MaxWorkers)
	}
	return &Processor{
		workers:  workers,
		pipeline: pipeline,
		observer: observer,
		logger:   logging.OrNop(logger).With(zap.String("component", "parallel_processor")),
	}
}

// ProgressCallback is called when a file is completed
type ProgressCallback func(completed, total int, currentFile string)

// ProcessFiles processes files in parallel and returns one result per path,
// in input order. A failing file never aborts the batch. The returned error
// is non-nil only when the processor is misconfigured or ctx is cancelled.
func (p *Processor) ProcessFiles(ctx context.Context, filePaths []string, progress ProgressCallback) ([]Result, *ProcessingStats, error) {
	if p.pipeline == nil {
		return nil, nil, errors.New("parallel: no pipeline configured")
	}

	start := time.Now()
	batchID := uuid.NewString()
	logger := p.logger.With(zap.String("batch_id", batchID))
	finishTiming := p.observer.StartTiming("parallel_processor", "process_files", "batch")

	workers := min(p.workers, max(len(filePaths), 1))
	pool := NewWorkerPool(workers, p.pipeline, p.observer, logger)
	pool.Start(ctx)

	go func() {
		for i, path := range filePaths {
			pool.Submit(&Job{JobID: fmt.Sprintf("job_%d", i), Index: i, FilePath: path})
		}
		pool.Close()
	}()

	results := make([]Result, 0, len(filePaths))
	stats := &ProcessingStats{BatchID: batchID, TotalFiles: len(filePaths), WorkerCount: workers}
	var busy time.Duration

	for result := range pool.Results() {
		switch {
		case result.Err != nil:
			stats.FailedFiles++
		default:
			stats.ProcessedFiles++
		}
		if result.ClassifyErr != nil {
			stats.ClassifyErrors++
		}
		if result.StoreErr != nil {
			stats.StoreErrors++
		}
		busy += result.Duration
		results = append(results, *result)

		if progress != nil {
			progress(len(results), len(filePaths), result.FilePath)
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	stats.TotalDuration = time.Since(start)
	stats.AvgFileTime = busy / time.Duration(max(len(results), 1))

	logger.Info("batch complete",
		zap.Int("total", stats.TotalFiles),
		zap.Int("processed", stats.ProcessedFiles),
		zap.Int("failed", stats.FailedFiles),
		zap.Duration("duration", stats.TotalDuration))
	finishTiming(stats.FailedFiles == 0, map[string]interface{}{
		"batch_id":        batchID,
		"total_files":     stats.TotalFiles,
		"processed_files": stats.ProcessedFiles,
		"failed_files":    stats.FailedFiles,
		"worker_count":    workers,
		"duration_ms":     stats.TotalDuration.Milliseconds(),
	})

	return results, stats, ctx.Err()
}
