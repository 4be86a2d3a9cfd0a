package metrics

import (
	"time"

	"github.com/archboard/archboard/pkg/graph"
	"github.com/archboard/archboard/pkg/types"
)

// Collector periodically publishes diagram gauge metrics from the store
type Collector struct {
	store  *graph.Store
	stopCh chan struct{}
}

// NewCollector creates a new metrics collector over the graph store
func NewCollector(store *graph.Store) *Collector {
	return &Collector{
		store:  store,
		stopCh: make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *Collector) Start() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		// Collect immediately on start
		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	nodes := c.store.Nodes()

	counts := make(map[types.NodeKind]int)
	for _, n := range nodes {
		counts[n.Kind]++
	}
	for _, kind := range []types.NodeKind{
		types.KindService,
		types.KindDatabase,
		types.KindMessageQueue,
		types.KindLoadBalancer,
		types.KindCache,
		types.KindAPIGateway,
	} {
		DiagramNodesTotal.WithLabelValues(string(kind)).Set(float64(counts[kind]))
	}

	DiagramEdgesTotal.Set(float64(len(c.store.Edges())))
}
