package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/loc-eligibility/internal/config"
	"github.com/couchcryptid/loc-eligibility/internal/dataset"
	"github.com/couchcryptid/loc-eligibility/internal/domain"
	"github.com/couchcryptid/loc-eligibility/internal/observability"
	"github.com/couchcryptid/loc-eligibility/internal/output"
	"github.com/couchcryptid/loc-eligibility/internal/report"
)

// TableWriter persists the final report table.
type TableWriter interface {
	Write(t *domain.Table) (output.Written, error)
}

// Result summarizes a completed run.
type Result struct {
	// NoMatches is set when nothing qualified and no file was written.
	NoMatches        bool
	SOCMatches       int
	Eligible         int
	MissingGeography int
	Output           output.Written
}

// Pipeline runs locate, load, clean, filter, merge, format, and write once.
type Pipeline struct {
	cfg      *config.Config
	writer   TableWriter
	reporter *report.Reporter
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline for one validated configuration.
func New(cfg *config.Config, writer TableWriter, reporter *report.Reporter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		writer:   writer,
		reporter: reporter,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes the analysis. Finding no eligible locations is a normal
// outcome reported through Result.NoMatches. Cancelling ctx stops the run
// between stages with ctx.Err().
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	defer func() {
		p.metrics.RunDuration.Set(time.Since(start).Seconds())
	}()

	p.reporter.Banner("LOC ELIGIBILITY ANALYSIS")

	paths, err := dataset.Locate(p.cfg)
	if err != nil {
		return Result{}, err
	}
	p.reporter.Success("Data files located:")
	p.reporter.Detail("- ALC: %s", paths.Wages)
	p.reporter.Detail("- Geography: %s", paths.Geography)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	wages, geo, err := p.load(paths)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	filtered, err := p.filter(domain.CleanWageColumns(wages))
	if err != nil {
		return Result{}, err
	}
	res := Result{SOCMatches: filtered.SOCMatches}

	if filtered.Rows.Len() == 0 {
		p.metrics.EligibleRows.Set(0)
		p.metrics.LastSuccess.SetToCurrentTime()
		p.reporter.Plain("")
		p.reporter.Rule()
		p.reporter.Plain("No eligible locations found. Please check your configuration.")
		p.reporter.Rule()
		res.NoMatches = true
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	merged, err := p.merge(filtered.Rows, geo)
	if err != nil {
		return Result{}, err
	}
	res.MissingGeography = merged.MissingGeography

	final := output.SortRows(output.SelectColumns(merged.Rows, p.cfg.Output.Columns))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	written, err := p.write(final)
	if err != nil {
		return Result{}, err
	}
	res.Output = written
	res.Eligible = final.Len()

	p.metrics.EligibleRows.Set(float64(res.Eligible))
	p.metrics.LastSuccess.SetToCurrentTime()
	p.summarize(res)
	return res, nil
}

func (p *Pipeline) load(paths dataset.Paths) (*domain.Table, *domain.Table, error) {
	p.reporter.Section("Loading data files...")

	wages, err := dataset.LoadWages(paths.Wages)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading ALC file: %w", err)
	}
	rows, cols := wages.Shape()
	p.metrics.RowsLoaded.WithLabelValues("wages").Set(float64(rows))
	p.reporter.Success("Loaded ALC data: %s rows, %d columns", report.Count(rows), cols)

	geo, err := dataset.LoadGeography(paths.Geography, p.cfg.Advanced.CSVEncodings, p.logger)
	if err != nil {
		return nil, nil, err
	}
	p.metrics.EncodingFallbacks.Add(float64(len(geo.Rejected)))
	if len(geo.Rejected) > 0 {
		p.logger.Info("geography encoding fallback", "encoding", geo.Encoding, "rejected", geo.Rejected)
		p.reporter.Success("Loaded Geography data with %s encoding", geo.Encoding)
	} else {
		p.reporter.Success("Loaded Geography data")
	}
	rows, cols = geo.Table.Shape()
	p.metrics.RowsLoaded.WithLabelValues("geography").Set(float64(rows))
	p.reporter.Detail("Geography data: %s rows, %d columns", report.Count(rows), cols)

	return wages, geo.Table, nil
}

func (p *Pipeline) filter(wages *domain.Table) (domain.FilterResult, error) {
	p.reporter.Section("Filtering data...")

	c := domain.Criteria{
		SOCCode:    p.cfg.SOCCode.String(),
		Level:      p.cfg.WageLevel,
		HourlyWage: p.cfg.HourlyWage.Value,
		Operator:   p.cfg.Operator(),
	}
	res, err := domain.FilterWages(wages, c)
	if err != nil {
		return res, err
	}
	p.metrics.SOCMatches.Set(float64(res.SOCMatches))

	if res.SOCMatches == 0 {
		p.logger.Warn("no records for SOC code", "soc_code", c.SOCCode)
		p.reporter.Warn("No records found for SOC code '%s'", c.SOCCode)
		p.reporter.Detail("Available SOC codes (sample): %s", strings.Join(res.SampleCodes, ", "))
		return res, nil
	}

	p.reporter.Success("Found %s locations with SOC code '%s'", report.Count(res.SOCMatches), c.SOCCode)
	p.reporter.Success("Found %s locations where $%s %s %s",
		report.Count(res.Rows.Len()), p.cfg.HourlyWage, c.Operator, res.LevelColumn)
	p.reporter.Detail("(Using wage level: %s → %s)", c.Level, res.LevelColumn)

	if s := res.Stats; s != nil {
		p.reporter.Plain("")
		p.reporter.Plain("%s wage statistics for SOC %s:", res.LevelColumn, c.SOCCode)
		p.reporter.Detail("Min:    %s", report.Money(s.Min))
		p.reporter.Detail("25th:   %s", report.Money(s.P25))
		p.reporter.Detail("Median: %s", report.Money(s.Median))
		p.reporter.Detail("75th:   %s", report.Money(s.P75))
		p.reporter.Detail("Max:    %s", report.Money(s.Max))
		p.reporter.Detail("Your wage ($%s) is at the %.1fth percentile", p.cfg.HourlyWage, s.PercentileRank)
	}
	return res, nil
}

func (p *Pipeline) merge(filtered, geo *domain.Table) (domain.MergeResult, error) {
	p.reporter.Section("Merging with geography data...")

	res, err := domain.MergeGeography(filtered, geo)
	if err != nil {
		return res, err
	}
	p.metrics.MissingGeography.Set(float64(res.MissingGeography))
	p.reporter.Success("Merged data: %s rows", report.Count(res.Rows.Len()))
	if res.MissingGeography > 0 {
		p.logger.Warn("rows missing geography", "rows", res.MissingGeography)
		p.reporter.Warn("%s locations missing geography information", report.Count(res.MissingGeography))
	}
	return res, nil
}

func (p *Pipeline) write(t *domain.Table) (output.Written, error) {
	p.reporter.Section("Exporting results...")

	written, err := p.writer.Write(t)
	for _, f := range written.Failures {
		p.metrics.EngineFailures.WithLabelValues(f.Engine).Inc()
		p.reporter.Warn("Spreadsheet engine %s unavailable: %v", f.Engine, f.Err)
	}
	if err != nil {
		return written, err
	}
	if written.FellBack() {
		p.reporter.Warn("No spreadsheet engine available, falling back to CSV")
	}
	p.metrics.OutputWrites.WithLabelValues(written.Format, written.Engine).Inc()
	p.reporter.Success("Exported to %s: %s", formatLabel(written.Format), written.Path)
	return written, nil
}

func (p *Pipeline) summarize(res Result) {
	p.reporter.Plain("")
	p.reporter.Banner("ANALYSIS COMPLETE")
	p.reporter.Plain("Total eligible locations: %s", report.Count(res.Eligible))
	p.reporter.Plain("SOC Code: %s", p.cfg.SOCCode)
	p.reporter.Plain("Hourly Wage: $%s", p.cfg.HourlyWage)
	p.reporter.Plain("Wage Level: %s", p.cfg.WageLevel)
	p.reporter.Plain("Output file: %s", res.Output.Path)
	p.reporter.Rule()
}

func formatLabel(format string) string {
	switch format {
	case config.FormatExcel:
		return "Excel"
	case config.FormatArrow:
		return "Arrow"
	default:
		return "CSV"
	}
}
