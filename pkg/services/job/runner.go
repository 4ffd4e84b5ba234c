package job

import (
	"context"
	"time"

	"github.com/de-tools/cost-reporter/pkg/models/domain"
	"github.com/de-tools/cost-reporter/pkg/services/config"
	"github.com/de-tools/cost-reporter/pkg/services/cost"
	"github.com/de-tools/cost-reporter/pkg/services/dispatch"
	"github.com/de-tools/cost-reporter/pkg/services/report"
	"github.com/de-tools/cost-reporter/pkg/services/scanner"
	"github.com/de-tools/cost-reporter/pkg/services/scanner/analyzers"
)

// Build loads configuration and wires the full pipeline. Configuration
// problems fail here, before a single AWS query is issued.
func Build(ctx context.Context) (*Job, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, domain.NewRunError(domain.ErrKindConfiguration, err)
	}

	awsCfg, err := config.LoadAWS(ctx)
	if err != nil {
		return nil, domain.NewRunError(domain.ErrKindConfiguration, err)
	}

	return New(
		cfg,
		scanner.NewRegionLister(*awsCfg),
		scanner.New(analyzers.Default(*awsCfg)...),
		cost.NewAggregator(*awsCfg),
		report.NewRenderer(report.Thresholds{
			Medium: cfg.ThresholdMedium,
			High:   cfg.ThresholdHigh,
		}),
		dispatch.NewMailer(*awsCfg, cfg.SESRegion),
		dispatch.NewStateStore(*awsCfg, cfg.StateBucket, cfg.MarkerKey),
	), nil
}

// Execute is the shared one-shot entry used by the Lambda and CLI
// binaries: wire the pipeline, run once, map wiring failures into a
// failure result.
func Execute(ctx context.Context, event Event) domain.RunResult {
	start := time.Now()

	j, err := Build(ctx)
	if err != nil {
		runErr, ok := err.(*domain.RunError)
		if !ok {
			runErr = domain.NewRunError(domain.ErrKindConfiguration, err)
		}
		return domain.RunResult{
			Status:    domain.RunFailed,
			StartedAt: start,
			Err:       runErr,
		}
	}
	return j.Run(ctx, event)
}
