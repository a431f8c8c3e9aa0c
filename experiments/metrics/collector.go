package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Candidates   int
	Speculations int
	Mobility     bool
}

type MoveMetric struct {
	Turn  int
	Color string
	SearchMetric
}

type GameMetric struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Turns     int
	Commits   int
	Winner    string
	Scores    [4]int
}

type Collector interface {
	Start(goroutines int, mobility bool)
	AddCandidate()
	AddSpeculation()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	mobility     bool
	startTime    time.Time
	candidates   atomic.Int32
	speculations atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int, mobility bool) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.mobility = mobility
	m.candidates.Store(0)
	m.speculations.Store(0)
}

func (m *collector) AddCandidate() {
	m.candidates.Add(1)
}

func (m *collector) AddSpeculation() {
	m.speculations.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Candidates:   int(m.candidates.Load()),
		Speculations: int(m.speculations.Load()),
		Mobility:     m.mobility,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int, mobility bool) {}
func (m *dummyCollector) AddCandidate()                      {}
func (m *dummyCollector) AddSpeculation()                    {}
func (m *dummyCollector) Complete() SearchMetric             { return SearchMetric{} }
