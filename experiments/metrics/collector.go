package metrics

import (
	"sync/atomic"
	"time"

	"gomoku/game"
)

type SearchMetric struct {
	MaxDepth       int
	TimeLimit      time.Duration
	Duration       time.Duration
	CompletedDepth int
	Nodes          int
	Aborted        bool
}

type MoveMetric struct {
	Step   int
	Player game.Cell
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Cell
	Winner         game.Cell // Empty on a draw or an unfinished game
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(maxDepth int, timeLimit time.Duration)
	AddNode()
	CompleteDepth(depth int)
	SetAborted()
	Complete() SearchMetric
}

type collector struct {
	maxDepth       int
	timeLimit      time.Duration
	startTime      time.Time
	nodes          atomic.Int64
	completedDepth atomic.Int32
	aborted        atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxDepth int, timeLimit time.Duration) {
	m.startTime = time.Now()
	m.maxDepth = maxDepth
	m.timeLimit = timeLimit
	m.nodes.Store(0)
	m.completedDepth.Store(0)
	m.aborted.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.completedDepth.Store(int32(depth))
}

func (m *collector) SetAborted() {
	m.aborted.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		MaxDepth:       m.maxDepth,
		TimeLimit:      m.timeLimit,
		Duration:       time.Since(m.startTime),
		CompletedDepth: int(m.completedDepth.Load()),
		Nodes:          int(m.nodes.Load()),
		Aborted:        m.aborted.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth int, timeLimit time.Duration) {}
func (m *dummyCollector) AddNode()                                    {}
func (m *dummyCollector) CompleteDepth(depth int)                     {}
func (m *dummyCollector) SetAborted()                                 {}
func (m *dummyCollector) Complete() SearchMetric                      { return SearchMetric{} }
