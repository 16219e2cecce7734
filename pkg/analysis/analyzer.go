// Package analysis runs the complete pipeline from a decoded trace to a
// tellability result.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-plotgraph/pkg/config"
	"github.com/dd0wney/cluso-plotgraph/pkg/edgegen"
	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
	"github.com/dd0wney/cluso-plotgraph/pkg/metrics"
	"github.com/dd0wney/cluso-plotgraph/pkg/plotgraph"
	"github.com/dd0wney/cluso-plotgraph/pkg/tellability"
	"github.com/dd0wney/cluso-plotgraph/pkg/trace"
)

// Pipeline stages, used in logs and error messages.
const (
	StageValidate = "validate"
	StageBuild    = "build"
	StageEdges    = "edge_generation"
	StageDetect   = "detection"
)

// Result is the outcome of analysing one trace.
type Result struct {
	RunID    string        `json:"run_id"`
	Trace    string        `json:"trace"`
	Duration time.Duration `json:"duration_ns"`

	*tellability.Result

	Report *edgegen.Report  `json:"-"`
	Graph  *plotgraph.Graph `json:"-"`
}

// Analyzer wires edge generation and detection with one configuration.
// It is safe for concurrent use.
type Analyzer struct {
	cfg      *config.Config
	logger   logging.Logger
	metrics  *metrics.Registry
	engine   *edgegen.Engine
	detector *tellability.Detector
}

// New creates an Analyzer. A nil cfg selects config.Default().
func New(cfg *config.Config, logger logging.Logger, reg *metrics.Registry) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	logger = logging.OrDefault(logger)
	return &Analyzer{
		cfg:     cfg,
		logger:  logger.With(logging.Component("analysis")),
		metrics: reg,
		engine: edgegen.New(edgegen.Options{
			KeepUnmatchedMotivation: cfg.KeepUnmatchedMotivation,
			Logger:                  logger,
			Metrics:                 reg,
		}),
		detector: tellability.NewDetector(tellability.Options{
			Tolerance:       cfg.EffectiveTolerance(),
			RequireAnchored: cfg.RequireAnchored,
			Workers:         cfg.Workers,
			Logger:          logger,
			Metrics:         reg,
		}),
	}
}

// Analyze validates t, builds its plot graph, generates semantic edges and
// scores the result. ctx is checked between stages.
func (a *Analyzer) Analyze(ctx context.Context, t *trace.Trace) (*Result, error) {
	runID := uuid.NewString()
	name := ""
	if t != nil {
		name = t.Name
	}
	logger := a.logger.With(logging.RunID(runID), logging.Trace(name))
	timer := logging.StartTimer(logger, "analysis finished")

	res, err := a.run(ctx, logger, t)
	if err != nil {
		a.metrics.RecordAnalysisFailure()
		timer.EndError(err)
		return nil, err
	}
	res.RunID = runID
	res.Trace = name
	res.Duration = timer.End(logging.Float64("score", res.Score))
	a.metrics.RecordAnalysis(res.Score, res.Counts.Polyvalent, res.Duration)
	return res, nil
}

func (a *Analyzer) run(ctx context.Context, logger logging.Logger, t *trace.Trace) (*Result, error) {
	if err := stage(ctx, StageValidate); err != nil {
		return nil, err
	}
	if err := trace.Validate(t); err != nil {
		return nil, fmt.Errorf("%s: %w", StageValidate, err)
	}

	if err := stage(ctx, StageBuild); err != nil {
		return nil, err
	}
	g, err := trace.Build(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageBuild, err)
	}
	logger.Debug("graph built",
		logging.Stage(StageBuild),
		logging.Int("vertices", g.VertexCount()),
		logging.Int("edges", g.EdgeCount()))

	if err := stage(ctx, StageEdges); err != nil {
		return nil, err
	}
	report, err := a.engine.Apply(g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageEdges, err)
	}

	if err := stage(ctx, StageDetect); err != nil {
		return nil, err
	}
	tr, err := a.detector.Evaluate(g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageDetect, err)
	}

	return &Result{Result: tr, Report: report, Graph: g}, nil
}

func stage(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// AnalyzeFile loads and analyses one trace file.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	t, err := trace.Load(path)
	if err != nil {
		a.metrics.RecordAnalysisFailure()
		a.logger.Error("failed to load trace", logging.Path(path), logging.Error(err))
		return nil, err
	}
	return a.Analyze(ctx, t)
}

// AnalyzeFiles analyses several trace files concurrently, at most
// cfg.Workers at a time. Results are returned in the order of paths; the
// first failure cancels the remaining runs.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.cfg.Workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			res, err := a.AnalyzeFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
