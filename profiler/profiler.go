// Package profiler collects per-stage timing and size statistics for a batch run.
package profiler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Profiler tracks how long each named stage takes and how many bytes it
// produces. It is safe for concurrent use. The zero value is not usable,
// call New.
type Profiler struct {
	mu        sync.Mutex
	startTime time.Time
	stages    map[string]*stageTracker
}

// stageTracker accumulates the samples of one stage.
type stageTracker struct {
	count     int64
	totalTime time.Duration
	minTime   time.Duration
	maxTime   time.Duration
	bytes     uint64
}

// Stat is a snapshot of one stage.
type Stat struct {
	Name  string
	Count int64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	Bytes uint64
}

// New returns an empty profiler whose wall clock starts now.
func New() *Profiler {
	return &Profiler{
		startTime: time.Now(),
		stages:    make(map[string]*stageTracker),
	}
}

// StartOperation begins timing one run of a stage.
//
// Arguments:
// - name: The stage to record under.
//
// Returns:
// - A function to call when the stage completes.
func (p *Profiler) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Record adds one sample of duration d to stage name.
func (p *Profiler) Record(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := p.tracker(name)
	if t.count == 0 || d < t.minTime {
		t.minTime = d
	}
	if d > t.maxTime {
		t.maxTime = d
	}
	t.totalTime += d
	t.count++
}

// AddBytes attributes n produced bytes to stage name.
func (p *Profiler) AddBytes(name string, n int) {
	if n <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.tracker(name).bytes += uint64(n)
}

func (p *Profiler) tracker(name string) *stageTracker {
	t, ok := p.stages[name]
	if !ok {
		t = &stageTracker{}
		p.stages[name] = t
	}
	return t
}

// Stats returns a snapshot of every stage, sorted by name.
func (p *Profiler) Stats() []Stat {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := make([]Stat, 0, len(p.stages))
	for name, t := range p.stages {
		s := Stat{
			Name:  name,
			Count: t.count,
			Total: t.totalTime,
			Min:   t.minTime,
			Max:   t.maxTime,
			Bytes: t.bytes,
		}
		if t.count > 0 {
			s.Mean = t.totalTime / time.Duration(t.count)
		}
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Name < stats[j].Name
	})

	return stats
}

// Elapsed returns the wall time since New.
func (p *Profiler) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// Report logs one debug line per stage and a total.
func (p *Profiler) Report(logger *zap.Logger) {
	for _, s := range p.Stats() {
		fields := []zap.Field{
			zap.String("stage", s.Name),
			zap.Int64("count", s.Count),
			zap.Duration("total", s.Total),
			zap.Duration("mean", s.Mean),
			zap.Duration("min", s.Min),
			zap.Duration("max", s.Max),
		}
		if s.Bytes > 0 {
			fields = append(fields, zap.String("bytes", formatBytes(s.Bytes)))
		}
		logger.Debug("stage timings", fields...)
	}
	logger.Debug("run complete", zap.Duration("elapsed", p.Elapsed()))
}

// formatBytes formats byte counts in human-readable format.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
