// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"judgment-extract/internal/classifier"
	"judgment-extract/internal/logging"
	"judgment-extract/internal/observability"
	"judgment-extract/internal/preprocessors/pdftext"
	"judgment-extract/internal/record"

	"go.uber.org/zap"
)

// Decoder turns a file into judgment text.
type Decoder interface {
	Decode(ctx context.Context, path string) (*pdftext.TextContent, error)
}

// Extractor builds a frozen record from judgment text.
type Extractor interface {
	Extract(doc record.RawDocument) *record.Record
}

// Saver persists a frozen record.
type Saver interface {
	Save(ctx context.Context, rec *record.Record) error
}

// Pipeline is the per-document processing chain. Classifier and Store are optional.
type Pipeline struct {
	Decoder    Decoder
	Extractor  Extractor
	Classifier classifier.Classifier
	Store      Saver
}

// Job represents a file processing task
type Job struct {
	JobID    string
	Index    int
	FilePath string
}

// Result represents processing results. Err is set when no record could be
// produced; classification and storage failures leave Record in place.
type Result struct {
	JobID       string
	Index       int
	FilePath    string
	Backend     string
	Record      *record.Record
	Err         error
	ClassifyErr error
	StoreErr    error
	Duration    time.Duration
}

// WorkerPool runs a fixed number of workers over a job queue
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	pipeline *Pipeline
	observer *observability.StandardObserver
	logger   *zap.Logger
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int, pipeline *Pipeline, observer *observability.StandardObserver, logger *zap.Logger) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		pipeline: pipeline,
		observer: observer,
		logger:   logging.OrNop(logger),
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Submit adds a job to the queue
func (wp *WorkerPool) Submit(job *Job) {
	wp.jobs <- job
}

// Close stops accepting jobs, waits for the workers and closes the results channel
func (wp *WorkerPool) Close() {
	close(wp.jobs)
	wp.wg.Wait()
	close(wp.results)
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

// worker processes jobs from the queue. Every job yields exactly one result.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		start := time.Now()
		var result *Result
		if err := ctx.Err(); err != nil {
			result = &Result{Err: err}
		} else {
			result = wp.processJob(ctx, job, id)
		}
		result.JobID, result.Index, result.FilePath = job.JobID, job.Index, job.FilePath
		result.Duration = time.Since(start)
		wp.results <- result
	}
}

// processJob decodes one file and hands its text to the pipeline
func (wp *WorkerPool) processJob(ctx context.Context, job *Job, workerID int) *Result {
	finishTiming := wp.observer.StartTiming("worker_pool", "process_file", job.FilePath)
	logger := wp.logger.With(zap.String("job_id", job.JobID), zap.Int("worker", workerID))

	if wp.pipeline.Decoder == nil {
		finishTiming(false, nil)
		return &Result{Err: errors.New("no decoder configured")}
	}
	content, err := wp.pipeline.Decoder.Decode(ctx, job.FilePath)
	if err != nil {
		logger.Warn("decode failed", zap.String("file", job.FilePath), zap.Error(err))
		finishTiming(false, map[string]interface{}{"stage": "decode"})
		return &Result{Err: err}
	}

	result := wp.pipeline.Process(ctx, record.RawDocument{
		Text:     content.Text,
		FileName: filepath.Base(job.FilePath),
		FilePath: job.FilePath,
	}, logger)
	result.Backend = content.Backend

	finishTiming(result.Err == nil, map[string]interface{}{
		"backend": content.Backend,
		"pages":   content.PageCount,
		"chars":   content.CharCount,
	})
	return result
}

// Process extracts, optionally classifies and optionally stores doc.
func (p *Pipeline) Process(ctx context.Context, doc record.RawDocument, logger *zap.Logger) (result *Result) {
	logger = logging.OrNop(logger)
	result = &Result{FilePath: doc.FilePath}

	if p.Extractor == nil {
		result.Err = errors.New("no extractor configured")
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("extraction panicked", zap.String("file", doc.FileName), zap.Any("panic", r))
			result.Record = nil
			result.Err = fmt.Errorf("extract %s: %v", doc.FileName, r)
		}
	}()

	rec := p.Extractor.Extract(doc)

	if p.Classifier != nil {
		labels, err := p.Classifier.Classify(ctx, classifier.EvidenceFrom(rec))
		if err != nil {
			logger.Warn("classification failed, labels left unknown",
				zap.String("file", doc.FileName), zap.Error(err))
			result.ClassifyErr = err
		} else {
			rec = classifier.Apply(rec, labels)
		}
	}

	if p.Store != nil {
		if err := p.Store.Save(ctx, rec); err != nil {
			logger.Warn("failed to store record", zap.String("file", doc.FileName), zap.Error(err))
			result.StoreErr = err
		}
	}

	result.Record = rec
	return result
}
