package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration     time.Duration
	Expansions   int
	NewNodes     int   // Nodes added to the tree during this search
	TreeNodes    int   // Nodes in the root's subtree at the end of the search
	Depth        int   // Depth of the root at the end of the search
	Evaluation   int32 // Evaluation of the root at the end of the search
	IsRootDead   bool
	IsTreeReused bool
}

type MoveMetric struct {
	Step         int
	Piece        string
	Hold         bool
	SoftDropped  bool
	LinesCleared int
	SearchMetric
}

type GameMetric struct {
	Seed         uint64
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	Pieces       int
	LinesCleared int
	ToppedOut    bool
}

// AgentConfig identifies the search settings of one experiment arm.
type AgentConfig struct {
	ID       int
	Nodes    int
	Duration time.Duration
	Mode     string
	Previews int
}

type Collector interface {
	Start()
	SetTreeReused(value bool)
	AddExpansion(newNodes int)
	Complete(treeNodes, depth int, evaluation int32, dead bool) SearchMetric
}

type collector struct {
	startTime  time.Time
	expansions atomic.Int32
	newNodes   atomic.Int32
	treeReused atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.expansions.Store(0)
	m.newNodes.Store(0)
}

func (m *collector) SetTreeReused(value bool) {
	m.treeReused.Store(value)
}

func (m *collector) AddExpansion(newNodes int) {
	m.expansions.Add(1)
	m.newNodes.Add(int32(newNodes))
}

func (m *collector) Complete(treeNodes, depth int, evaluation int32, dead bool) SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Expansions:   int(m.expansions.Load()),
		NewNodes:     int(m.newNodes.Load()),
		TreeNodes:    treeNodes,
		Depth:        depth,
		Evaluation:   evaluation,
		IsRootDead:   dead,
		IsTreeReused: m.treeReused.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                   {}
func (m *dummyCollector) SetTreeReused(value bool)  {}
func (m *dummyCollector) AddExpansion(newNodes int) {}
func (m *dummyCollector) Complete(treeNodes, depth int, evaluation int32, dead bool) SearchMetric {
	return SearchMetric{}
}
