package searcher

import "time"

// SearchMetrics summarizes one FindMove call.
type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Episodes     int
	Rollouts     int
	FullPlayouts int // rollouts that reached game over before the depth cap
	Pruned       int // expansions rejected by the dead-hand heuristic
	TreeReused   bool
}

// Collector accumulates search metrics. The search loop is single-threaded,
// so no synchronization is needed.
type Collector interface {
	Start()
	AddEpisode()
	AddRollout()
	AddFullPlayout()
	AddPruned()
	SetTreeReused(bool)
	Complete() SearchMetrics
}

type collector struct {
	metrics SearchMetrics
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.metrics = SearchMetrics{StartTime: time.Now()}
}

func (c *collector) AddEpisode()          { c.metrics.Episodes++ }
func (c *collector) AddRollout()          { c.metrics.Rollouts++ }
func (c *collector) AddFullPlayout()      { c.metrics.FullPlayouts++ }
func (c *collector) AddPruned()           { c.metrics.Pruned++ }
func (c *collector) SetTreeReused(v bool) { c.metrics.TreeReused = v }

func (c *collector) Complete() SearchMetrics {
	c.metrics.Duration = time.Since(c.metrics.StartTime)
	return c.metrics
}

type noCollector struct{}

// NewNoCollector returns a collector that records nothing.
func NewNoCollector() Collector { return noCollector{} }

func (noCollector) Start()                  {}
func (noCollector) AddEpisode()             {}
func (noCollector) AddRollout()             {}
func (noCollector) AddFullPlayout()         {}
func (noCollector) AddPruned()              {}
func (noCollector) SetTreeReused(bool)      {}
func (noCollector) Complete() SearchMetrics { return SearchMetrics{} }
