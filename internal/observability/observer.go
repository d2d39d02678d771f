// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1 // aggregate timings only
	ObservabilityDebug   ObservabilityLevel = 2 // aggregates plus one JSON line per operation
)

// StandardObserver records timings of extraction operations. A nil
// observer is valid and records nothing.
type StandardObserver struct {
	level ObservabilityLevel
	trace *zap.Logger

	mu    sync.Mutex
	stats map[statKey]*OperationStats
}

type statKey struct{ component, operation string }

// OperationStats aggregates every timing of one component operation.
type OperationStats struct {
	Component string        `json:"component"`
	Operation string        `json:"operation"`
	Calls     int           `json:"calls"`
	Failures  int           `json:"failures"`
	Total     time.Duration `json:"total"`
	Max       time.Duration `json:"max"`
}

// Mean returns the average duration per call.
func (s OperationStats) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// NewStandardObserver creates an observer. In debug mode each completed
// operation is written to writer as a JSON line.
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	o := &StandardObserver{level: level, trace: zap.NewNop(), stats: make(map[statKey]*OperationStats)}
	if level == ObservabilityDebug && writer != nil {
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = ""
		enc.LevelKey = ""
		enc.MessageKey = ""
		core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(zapcore.AddSync(writer)), zapcore.DebugLevel)
		o.trace = zap.New(core)
	}
	return o
}

// Level reports the configured level.
func (o *StandardObserver) Level() ObservabilityLevel {
	if o == nil {
		return ObservabilityOff
	}
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		if o == nil {
			return
		}
		o.LogOperation(StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
			duration:   time.Since(start),
		})
	}
}

// LogOperation records a completed operation.
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o == nil || o.level == ObservabilityOff {
		return
	}
	if data.duration == 0 {
		data.duration = time.Duration(data.DurationMs) * time.Millisecond
	}

	o.mu.Lock()
	key := statKey{data.Component, data.Operation}
	s := o.stats[key]
	if s == nil {
		s = &OperationStats{Component: data.Component, Operation: data.Operation}
		o.stats[key] = s
	}
	s.Calls++
	if !data.Success {
		s.Failures++
	}
	s.Total += data.duration
	s.Max = max(s.Max, data.duration)
	o.mu.Unlock()

	if o.level < ObservabilityDebug {
		return
	}
	if data.RequestID == "" {
		data.RequestID = uuid.NewString()
	}
	fields := []zap.Field{
		zap.String("component", data.Component),
		zap.String("operation", data.Operation),
		zap.String("request_id", data.RequestID),
		zap.Int64("duration_ms", data.DurationMs),
		zap.Bool("success", data.Success),
	}
	if data.FilePath != "" {
		fields = append(fields, zap.String("file_path", data.FilePath))
	}
	if data.Error != "" {
		fields = append(fields, zap.String("error", data.Error))
	}
	if len(data.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", data.Metadata))
	}
	o.trace.Debug("", fields...)
}

// Summary returns the aggregated timings ordered by total time, largest
// first.
func (o *StandardObserver) Summary() []OperationStats {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	out := make([]OperationStats, 0, len(o.stats))
	for _, s := range o.stats {
		out = append(out, *s)
	}
	o.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		if out[i].Component != out[j].Component {
			return out[i].Component < out[j].Component
		}
		return out[i].Operation < out[j].Operation
	})
	return out
}

// StandardObservabilityData describes one completed operation.
type StandardObservabilityData struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	RequestID  string                 `json:"request_id"`
	FilePath   string                 `json:"file_path,omitempty"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`

	duration time.Duration
}
