// Package pipeline runs the fetch, analyze, keywords, ads and export
// stages as one linear report flow.
package pipeline

import (
	"context"
	"time"

	"adcraft/internal/ai"
	"adcraft/internal/common/errors"
	"adcraft/internal/common/logger"
	"adcraft/internal/common/metrics"
	"adcraft/internal/common/observability"
	"adcraft/internal/exporter"
	"adcraft/internal/models"
	"adcraft/internal/scraper"
	"adcraft/internal/validation"
)

// Options tunes a single run.
type Options struct {
	// KeywordsOnly stops after keyword generation and exports the
	// keyword workbook instead of the complete report.
	KeywordsOnly bool
	// AdditionalContext is appended to the keyword prompt.
	AdditionalContext string
	// AdRequirements is appended to the ads prompt.
	AdRequirements string
	// OutputFilename overrides the timestamped default.
	OutputFilename string
	// MaxAdKeywords caps how many keywords feed the ads prompt.
	MaxAdKeywords int
}

// Runner wires the pipeline stages together.
type Runner struct {
	fetcher   *scraper.Fetcher
	generator *ai.Generator
	validator *validation.Validator
	exporter  *exporter.Exporter
	logger    logger.Logger
	obs       *observability.Observability
}

// NewRunner builds a Runner from already-constructed stages.
func NewRunner(fetcher *scraper.Fetcher, generator *ai.Generator, validator *validation.Validator, exp *exporter.Exporter, log logger.Logger) *Runner {
	return &Runner{
		fetcher:   fetcher,
		generator: generator,
		validator: validator,
		exporter:  exp,
		logger:    log,
	}
}

// WithObservability attaches the otel instruments. Stage durations and
// report outcomes are then recorded there alongside the prometheus
// vectors.
func (r *Runner) WithObservability(obs *observability.Observability) *Runner {
	r.obs = obs
	return r
}

func (r *Runner) timeStage(ctx context.Context, stage string, start time.Time) {
	duration := time.Since(start)
	metrics.PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if r.obs != nil {
		r.obs.RecordStageDuration(ctx, stage, duration)
	}
	r.logger.Info("stage complete", map[string]interface{}{
		"stage":       stage,
		"duration_ms": duration.Milliseconds(),
	})
}

// Run executes the full pipeline for one URL and returns the assembled
// report. Stages run strictly in order; a stage failure aborts the run,
// except keyword generation which degrades to fallback keywords inside
// the generator.
func (r *Runner) Run(ctx context.Context, url string, opts Options) (*models.Report, error) {
	report, err := r.run(ctx, url, opts)
	if err != nil {
		category := errors.GetErrorCategory(errors.CodeOf(err))
		metrics.PipelineFailures.WithLabelValues(category).Inc()
		if r.obs != nil {
			r.obs.RecordReportProcessed(ctx, "failure")
		}
		return nil, err
	}
	if r.obs != nil {
		r.obs.RecordReportProcessed(ctx, "success")
	}
	return report, nil
}

func (r *Runner) run(ctx context.Context, url string, opts Options) (*models.Report, error) {
	report := &models.Report{}

	start := time.Now()
	website, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	report.Website = website
	r.timeStage(ctx, "fetch", start)

	start = time.Now()
	analysis, err := r.generator.Analyze(ctx, website)
	if err != nil {
		return nil, err
	}
	report.Analysis = analysis
	r.timeStage(ctx, "analyze", start)

	start = time.Now()
	keywords, err := r.generator.GenerateKeywords(ctx, analysis, opts.AdditionalContext)
	if err != nil {
		return nil, err
	}
	report.Keywords = keywords
	r.timeStage(ctx, "keywords", start)

	if opts.KeywordsOnly {
		start = time.Now()
		path, err := r.exporter.ExportKeywords(keywords, opts.OutputFilename)
		if err != nil {
			return nil, err
		}
		report.OutputPath = path
		r.timeStage(ctx, "export", start)
		return report, nil
	}

	start = time.Now()
	maxKeywords := opts.MaxAdKeywords
	if maxKeywords <= 0 {
		maxKeywords = 20
	}
	ads, err := r.generator.GenerateAds(ctx, analysis, keywordTexts(keywords, maxKeywords), opts.AdRequirements)
	if err != nil {
		return nil, err
	}
	for i, ad := range ads {
		if violations := r.validator.ValidateAd(ad); len(violations) > 0 {
			r.logger.Warn("ad copy exceeds limits, truncating", map[string]interface{}{
				"variant":    i,
				"violations": len(violations),
			})
			ads[i] = r.validator.RepairAd(ad)
		}
	}
	report.Ads = ads
	r.timeStage(ctx, "ads", start)

	start = time.Now()
	path, err := r.exporter.ExportReport(report, opts.OutputFilename)
	if err != nil {
		return nil, err
	}
	report.OutputPath = path
	r.timeStage(ctx, "export", start)

	return report, nil
}

func keywordTexts(keywords []models.KeywordRecord, max int) []string {
	texts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		texts = append(texts, kw.Keyword)
	}
	if len(texts) > max {
		texts = texts[:max]
	}
	return texts
}
