package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth      int
	Goroutines int
	Pruning    bool
	Duration   time.Duration
	Nodes      int // Nodes expanded (searched with at least one candidate move)
	Leaves     int // Nodes scored by the static evaluator
	Cutoffs    int // Alpha-beta cut-offs
	Score      float64
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int    // Player ID
	Winner         string // Outcome name
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	PlayerCells    int
	AICells        int
}

type Collector interface {
	Start(depth, goroutines int, pruning bool)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete(score float64) SearchMetric
}

type collector struct {
	depth      int
	goroutines int
	pruning    bool
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
	cutoffs    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth, goroutines int, pruning bool) {
	m.startTime = time.Now()
	m.depth = depth
	m.goroutines = goroutines
	m.pruning = pruning
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete(score float64) SearchMetric {
	return SearchMetric{
		Depth:      m.depth,
		Goroutines: m.goroutines,
		Pruning:    m.pruning,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Leaves:     int(m.leaves.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Score:      score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, goroutines int, pruning bool) {}
func (m *dummyCollector) AddNode()                                  {}
func (m *dummyCollector) AddLeaf()                                  {}
func (m *dummyCollector) AddCutoff()                                {}
func (m *dummyCollector) Complete(score float64) SearchMetric       { return SearchMetric{Score: score} }
