// Package job orchestrates one report run: scan and aggregate in parallel,
// render, dispatch, persist the execution marker, and map failures into
// the structured result returned to the trigger.
package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/de-tools/cost-reporter/pkg/services/config"
	"github.com/de-tools/cost-reporter/pkg/services/dispatch"
	"github.com/de-tools/cost-reporter/pkg/services/report"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Event is the trigger input. Scheduled and manual invocations share the
// shape; extra fields on the wire are ignored.
type Event struct {
	Source string    `json:"source,omitempty"`
	Time   time.Time `json:"time,omitempty"`
	Test   bool      `json:"test,omitempty"`
}

// State names the run's position in the pipeline. Transitions are logged;
// Scanning and Aggregating overlap in time.
type State string

const (
	StateIdle        State = "idle"
	StateScanning    State = "scanning"
	StateAggregating State = "aggregating"
	StateRendering   State = "rendering"
	StateDispatching State = "dispatching"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

type ResourceScanner interface {
	Scan(ctx context.Context, regions []string) map[string][]domain.ResourceRecord
}

type RegionLister interface {
	ListRegions(ctx context.Context) ([]string, error)
}

type CostAggregator interface {
	Aggregate(ctx context.Context, now time.Time) (domain.CostSummary, error)
}

type Renderer interface {
	Render(input report.Input) (domain.Report, domain.Rendered, error)
}

type Mailer interface {
	Send(ctx context.Context, msg dispatch.Message) error
}

type MarkerStore interface {
	PutMarker(ctx context.Context, marker domain.ExecutionMarker) error
}

type Job struct {
	cfg        *config.Config
	regions    RegionLister
	scanner    ResourceScanner
	aggregator CostAggregator
	renderer   Renderer
	mailer     Mailer
	markers    MarkerStore
	clock      func() time.Time
}

func New(
	cfg *config.Config,
	regions RegionLister,
	scanner ResourceScanner,
	aggregator CostAggregator,
	renderer Renderer,
	mailer Mailer,
	markers MarkerStore,
) *Job {
	return &Job{
		cfg:        cfg,
		regions:    regions,
		scanner:    scanner,
		aggregator: aggregator,
		renderer:   renderer,
		mailer:     mailer,
		markers:    markers,
		clock:      time.Now,
	}
}

// WithClock overrides the run clock. Tests use it to pin the billing
// window and staleness checks.
func (j *Job) WithClock(clock func() time.Time) *Job {
	j.clock = clock
	return j
}

// Run executes one report run end to end and always returns a result, never
// panics across the boundary. The run is bounded by the configured timeout.
func (j *Job) Run(ctx context.Context, event Event) domain.RunResult {
	logger := zerolog.Ctx(ctx)
	start := j.clock()

	if !event.Time.IsZero() && start.Sub(event.Time) > j.cfg.MaxEventAge {
		logger.Warn().
			Time("event_time", event.Time).
			Dur("max_age", j.cfg.MaxEventAge).
			Msg("dropping stale trigger event")
		return domain.RunResult{
			Status:    domain.RunSucceeded,
			StartedAt: start,
			Summary:   "stale trigger event dropped",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, j.cfg.RunTimeout)
	defer cancel()

	j.transition(logger, StateIdle, StateScanning)
	j.transition(logger, StateScanning, StateAggregating)

	var (
		resources map[string][]domain.ResourceRecord
		regions   []string
		summary   domain.CostSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listed, err := j.regions.ListRegions(gctx)
		if err != nil {
			// Region enumeration failures are absorbed like any other
			// scan failure: the report simply carries no regional
			// inventory.
			zerolog.Ctx(gctx).Warn().Err(err).Msg("region listing failed, scanning no regions")
		}
		regions = listed
		resources = j.scanner.Scan(gctx, regions)
		return nil
	})
	g.Go(func() error {
		aggregated, err := j.aggregator.Aggregate(gctx, start)
		if err != nil {
			return err
		}
		summary = aggregated
		return nil
	})

	if err := g.Wait(); err != nil {
		return j.fail(ctx, start, domain.RunCounts{}, j.classify(ctx, err))
	}

	counts := domain.RunCounts{
		RegionsScanned: len(regions),
		CostLineItems:  len(summary.LineItems),
	}
	for _, records := range resources {
		counts.ResourcesFound += len(records)
	}

	j.transition(logger, StateAggregating, StateRendering)
	rpt, rendered, err := j.renderer.Render(report.Input{
		GeneratedAt: start,
		Summary:     summary,
		Resources:   resources,
	})
	if err != nil {
		return j.fail(ctx, start, counts, domain.NewRunError(domain.ErrKindInternal, err))
	}

	j.transition(logger, StateRendering, StateDispatching)
	if event.Test {
		logger.Info().Msg("test invocation, skipping dispatch")
	} else {
		sendErr := j.mailer.Send(ctx, dispatch.Message{
			Sender:     j.cfg.SenderEmail,
			Recipients: j.cfg.RecipientEmails,
			Subject:    rendered.Subject,
			HTMLBody:   rendered.HTML,
			TextBody:   rendered.Text,
		})
		if sendErr != nil {
			return j.fail(ctx, start, counts, j.classify(ctx, sendErr))
		}
	}

	j.transition(logger, StateDispatching, StateDone)
	elapsed := j.clock().Sub(start)
	j.putMarker(ctx, domain.ExecutionMarker{
		RunAt:     start,
		Outcome:   domain.RunSucceeded,
		TotalCost: rpt.Total,
		Counts:    counts,
	})

	logger.Info().
		Float64("total_cost", rpt.Total).
		Int("resources", counts.ResourcesFound).
		Dur("elapsed", elapsed).
		Msg("report run completed")

	return domain.RunResult{
		Status:      domain.RunSucceeded,
		StartedAt:   start,
		ElapsedSecs: elapsed.Seconds(),
		Counts:      counts,
		Summary:     fmt.Sprintf("report generated, total %.2f %s", rpt.Total, rpt.Currency),
	}
}

func (j *Job) transition(logger *zerolog.Logger, from, to State) {
	logger.Debug().Str("from", string(from)).Str("to", string(to)).Msg("state transition")
}

// classify maps a stage error onto the run error taxonomy. Timeout wins
// over the stage's own classification: a deadline abort surfacing through
// any stage is still a timeout.
func (j *Job) classify(ctx context.Context, err error) *domain.RunError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewRunError(domain.ErrKindTimeout,
			fmt.Errorf("run exceeded %s: %w", j.cfg.RunTimeout, err))
	}

	var runErr *domain.RunError
	if errors.As(err, &runErr) {
		return runErr
	}

	var sendErr *dispatch.SendError
	if errors.As(err, &sendErr) {
		return domain.NewRunError(domain.ErrKindDispatch, err)
	}

	return domain.NewRunError(domain.ErrKindInternal, err)
}

func (j *Job) fail(
	ctx context.Context,
	start time.Time,
	counts domain.RunCounts,
	runErr *domain.RunError,
) domain.RunResult {
	logger := zerolog.Ctx(ctx)
	logger.Error().
		Err(runErr).
		Str("kind", string(runErr.Kind)).
		Str("state", string(StateFailed)).
		Msg("report run failed")

	elapsed := j.clock().Sub(start)
	j.putMarker(ctx, domain.ExecutionMarker{
		RunAt:        start,
		Outcome:      domain.RunFailed,
		Counts:       counts,
		ErrorSummary: runErr.Error(),
	})

	return domain.RunResult{
		Status:      domain.RunFailed,
		StartedAt:   start,
		ElapsedSecs: elapsed.Seconds(),
		Counts:      counts,
		Err:         runErr,
	}
}

// putMarker is best-effort: a marker write failure is logged and nothing
// more, so observability problems never fail an otherwise good run. The
// write runs on a fresh context because the run's own context may already
// be past its deadline.
func (j *Job) putMarker(ctx context.Context, marker domain.ExecutionMarker) {
	logger := zerolog.Ctx(ctx)

	putCtx, cancel := context.WithTimeout(logger.WithContext(context.Background()), 30*time.Second)
	defer cancel()

	if err := j.markers.PutMarker(putCtx, marker); err != nil {
		logger.Error().Err(err).Msg("failed to persist execution marker")
	}
}
