package searcher

import (
	"sync/atomic"
	"time"
)

// Metrics describes the work done by one top-level search.
type Metrics struct {
	StartTime time.Time
	Duration  time.Duration
	Depth     int
	Visited   int64 // Interior nodes expanded
	Generated int64 // Successor states created
	Evaluated int64 // Static evaluations
	Terminal  int64 // Static evaluations of finished games
	Cutoffs   int64 // Alpha and beta cutoffs
}

type MetricsCollector interface {
	Start()
	AddVisit()
	AddGenerated()
	AddEvaluation(terminal bool)
	AddCutoff()
	Complete() Metrics
}

type metricsCollector struct {
	startTime time.Time
	visited   atomic.Int64
	generated atomic.Int64
	evaluated atomic.Int64
	terminal  atomic.Int64
	cutoffs   atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.visited.Store(0)
	m.generated.Store(0)
	m.evaluated.Store(0)
	m.terminal.Store(0)
	m.cutoffs.Store(0)
}

func (m *metricsCollector) AddVisit() {
	m.visited.Add(1)
}

func (m *metricsCollector) AddGenerated() {
	m.generated.Add(1)
}

func (m *metricsCollector) AddEvaluation(terminal bool) {
	m.evaluated.Add(1)
	if terminal {
		m.terminal.Add(1)
	}
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *metricsCollector) Complete() Metrics {
	return Metrics{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Visited:   m.visited.Load(),
		Generated: m.generated.Load(),
		Evaluated: m.evaluated.Load(),
		Terminal:  m.terminal.Load(),
		Cutoffs:   m.cutoffs.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()             {}
func (m *noMetricsCollector) AddVisit()          {}
func (m *noMetricsCollector) AddGenerated()      {}
func (m *noMetricsCollector) AddEvaluation(bool) {}
func (m *noMetricsCollector) AddCutoff()         {}
func (m *noMetricsCollector) Complete() Metrics  { return Metrics{} }
