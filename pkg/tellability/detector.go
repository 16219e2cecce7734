// Package tellability detects functional units in an enriched plot graph and
// scores how tellable the plot is.
package tellability

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dd0wney/cluso-plotgraph/pkg/connectivity"
	"github.com/dd0wney/cluso-plotgraph/pkg/isomorphism"
	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
	"github.com/dd0wney/cluso-plotgraph/pkg/metrics"
	"github.com/dd0wney/cluso-plotgraph/pkg/parallel"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
	"github.com/dd0wney/cluso-plotgraph/pkg/units"
)

// ErrNilGraph is returned when detection is asked to run without a graph.
var ErrNilGraph = errors.New("tellability: nil graph")

// DefaultTolerance is the number of template edges a composite unit match
// may miss.
const DefaultTolerance = 1

// Options configures a Detector
type Options struct {
	// Tolerance applies to composite units; primitives are always matched
	// exactly. Negative values select DefaultTolerance.
	Tolerance int
	// Workers bounds the concurrent template searches. Non-positive values
	// use GOMAXPROCS.
	Workers int
	// RequireAnchored only accepts composite matches whose every vertex
	// touches a matched template edge.
	RequireAnchored bool

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Detector finds functional units. It is safe for concurrent use on
// distinct graphs.
type Detector struct {
	opts   Options
	finder *isomorphism.Finder
	logger logging.Logger
}

// NewDetector creates a Detector
func NewDetector(opts Options) *Detector {
	if opts.Tolerance < 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Detector{
		opts:   opts,
		finder: &isomorphism.Finder{RequireAnchored: opts.RequireAnchored},
		logger: logging.OrDefault(opts.Logger).With(logging.Component("tellability")),
	}
}

// Detection is the outcome of searching every unit in one graph.
type Detection struct {
	// UnitCounts holds the instance count of every composite unit in catalog
	// order.
	UnitCounts *orderedmap.OrderedMap[string, int] `json:"units"`
	// Instances are the composite instances in catalog order.
	Instances []*units.Instance `json:"-"`
	// Polyvalent lists the vertices shared by two or more composite
	// instances, in the order they became polyvalent.
	Polyvalent []*plotgraph.Vertex `json:"-"`
	// Connectivity relates composite and primitive instances.
	Connectivity *connectivity.Graph `json:"-"`
}

// TotalInstances returns the number of composite instances.
func (d *Detection) TotalInstances() int {
	return len(d.Instances)
}

// Summary renders the found units as "name: count" pairs, sorted, or
// "<none>".
func (d *Detection) Summary() string {
	var parts []string
	for pair := d.UnitCounts.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", pair.Key, pair.Value))
		}
	}
	if len(parts) == 0 {
		return "<none>"
	}
	slices.Sort(parts)
	return strings.Join(parts, ", ")
}

// Detect searches every template of the catalog in g, marks polyvalent
// vertices and records all instances in a connectivity graph. Searches run
// concurrently; results are aggregated in catalog order.
func (d *Detector) Detect(g *plotgraph.Graph) (*Detection, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	composites := units.All()
	primitives := units.Primitives()
	catalog := append(composites, primitives...)

	target := isomorphism.Index(g)
	found := make([][]isomorphism.Match, len(catalog))

	pool, err := parallel.NewWorkerPool(min(d.opts.Workers, len(catalog)), parallel.WithLogger(d.logger))
	if err != nil {
		return nil, err
	}
	for i, u := range catalog {
		tolerance := d.opts.Tolerance
		if u.Primitive {
			tolerance = 0
		}
		pool.Submit(func() {
			start := time.Now()
			found[i] = d.finder.Find(u.Template, target, tolerance)
			elapsed := time.Since(start)
			d.opts.Metrics.RecordUnitSearch(u.Name, len(found[i]), elapsed)
			d.logger.Debug("unit search finished",
				logging.Unit(u.Name), logging.Count(len(found[i])), logging.Latency(elapsed))
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, fmt.Errorf("unit search: %w", err)
	}

	det := &Detection{
		UnitCounts:   orderedmap.New[string, int](),
		Connectivity: connectivity.New(g.Name),
	}
	hits := make(map[uint64]int)

	for i, u := range composites {
		det.UnitCounts.Set(u.Name, len(found[i]))
		for _, m := range found[i] {
			inst, err := units.NewInstance(u, m.Mapping)
			if err != nil {
				return nil, err
			}
			det.Connectivity.Add(inst)
			det.Instances = append(det.Instances, inst)

			for _, v := range inst.Vertices {
				hits[v.ID]++
				if hits[v.ID] == 2 {
					det.Polyvalent = append(det.Polyvalent, v)
				}
			}
		}
	}
	d.logger.Info("found units", logging.Trace(g.Name), logging.String("units", det.Summary()))

	for i, u := range primitives {
		for _, m := range found[len(composites)+i] {
			inst, err := units.NewInstance(u, m.Mapping)
			if err != nil {
				return nil, err
			}
			det.Connectivity.Add(inst)
		}
	}

	for _, v := range det.Polyvalent {
		v.Polyvalent = true
	}
	return det, nil
}
