// Command validate checks an OFLC dataset folder before it is analyzed:
// required columns, parseable wage amounts, ordered wage levels, and
// geography coverage of every wage area. It reads the same configuration
// file as analyze and exits non-zero when any phase fails.
//
// Usage:
//
//	go run ./cmd/validate -config config.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/couchcryptid/loc-eligibility/internal/config"
	"github.com/couchcryptid/loc-eligibility/internal/dataset"
	"github.com/couchcryptid/loc-eligibility/internal/domain"
	"github.com/couchcryptid/loc-eligibility/internal/observability"
	"github.com/couchcryptid/loc-eligibility/internal/report"
)

// maxListed caps the errors printed per phase.
const maxListed = 20

var levelColumns = []string{"Level1", "Level2", "Level3", "Level4"}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "config.yaml", "path to the YAML configuration file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	rep := report.New(stdout)
	cfg, err := config.Load(*configPath)
	if err != nil {
		rep.Error("%v", err)
		return 1
	}
	logger := observability.NewLogger(cfg.Logging, stderr)

	wages, geo, err := load(cfg, logger)
	if err != nil {
		rep.Error("%v", err)
		return 1
	}

	rep.Banner("OFLC Dataset Validation")
	rows, _ := wages.Shape()
	geoRows, _ := geo.Shape()
	rep.Plain("Records: %s wage rows, %s geography rows", report.Count(rows), report.Count(geoRows))

	phases := []*phase{
		validateColumns(wages, geo),
		validateWageValues(wages),
		validateLevelOrder(domain.CleanWageColumns(wages)),
		validateCoverage(wages, geo),
	}

	rep.Plain("")
	allPassed := true
	for _, p := range phases {
		if p.passed() {
			rep.Success("%-40s PASS", p.name)
			continue
		}
		allPassed = false
		rep.Error("%-40s FAIL (%d errors)", p.name, len(p.errors))
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		rep.Section(fmt.Sprintf("--- %s ---", p.name))
		for i, e := range p.errors[:min(len(p.errors), maxListed)] {
			rep.Detail("[%d] %s", i+1, e)
		}
		if n := len(p.errors) - maxListed; n > 0 {
			rep.Detail("... and %s more", report.Count(n))
		}
	}

	rep.Plain("")
	if allPassed {
		rep.Plain("All validations passed.")
		return 0
	}
	rep.Plain("Validation FAILED.")
	return 1
}

func load(cfg *config.Config, logger *slog.Logger) (*domain.Table, *domain.Table, error) {
	paths, err := dataset.Locate(cfg)
	if err != nil {
		return nil, nil, err
	}
	wages, err := dataset.LoadWages(paths.Wages)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading ALC file: %w", err)
	}
	geo, err := dataset.LoadGeography(paths.Geography, cfg.Advanced.CSVEncodings, logger)
	if err != nil {
		return nil, nil, err
	}
	return wages, geo.Table, nil
}

// ── Phase 1: Columns ──

func validateColumns(wages, geo *domain.Table) *phase {
	p := &phase{name: "Phase 1: Required columns"}
	required := append([]string{domain.ColumnArea, domain.ColumnSocCode}, levelColumns...)
	for _, c := range required {
		if !wages.Has(c) {
			p.errorf("wage table: missing column %q", c)
		}
	}
	for _, c := range []string{domain.ColumnArea, domain.ColumnAreaName} {
		if !geo.Has(c) {
			p.errorf("geography table: missing column %q", c)
		}
	}
	return p
}

// ── Phase 2: Wage values ──
// Every non-empty amount must survive cleaning as a number.

func validateWageValues(wages *domain.Table) *phase {
	p := &phase{name: "Phase 2: Wage amounts parse"}
	for i := range wages.Len() {
		for _, c := range domain.WageColumns {
			if !wages.Has(c) {
				continue
			}
			raw := wages.Cell(i, c)
			if raw.IsMissing() {
				continue
			}
			if domain.CleanWage(raw).IsMissing() {
				p.errorf("row %d: %s=%q is not an amount", i+2, c, raw.String())
			}
		}
	}
	return p
}

// ── Phase 3: Level order ──

func validateLevelOrder(cleaned *domain.Table) *phase {
	p := &phase{name: "Phase 3: Levels ascend L1..L4"}
	for i := range cleaned.Len() {
		prev, prevName := 0.0, ""
		for _, c := range levelColumns {
			v, ok := cleaned.Cell(i, c).Float()
			if !ok {
				continue
			}
			if prevName != "" && v < prev {
				p.errorf("row %d (Area %s, SOC %s): %s %.2f below %s %.2f", i+2,
					cleaned.Cell(i, domain.ColumnArea), cleaned.Cell(i, domain.ColumnSocCode), c, v, prevName, prev)
			}
			prev, prevName = v, c
		}
	}
	return p
}

// ── Phase 4: Geography coverage ──

func validateCoverage(wages, geo *domain.Table) *phase {
	p := &phase{name: "Phase 4: Geography coverage"}
	if !wages.Has(domain.ColumnArea) || !geo.Has(domain.ColumnArea) {
		p.errorf("cannot check coverage without Area columns")
		return p
	}

	known := map[string]int{}
	for i := range geo.Len() {
		known[strings.TrimSpace(geo.Cell(i, domain.ColumnArea).String())]++
	}
	for _, area := range slices.Sorted(maps.Keys(known)) {
		if n := known[area]; n > 1 {
			p.errorf("geography Area %s appears %d times", area, n)
		}
	}

	reported := map[string]bool{}
	for i := range wages.Len() {
		area := strings.TrimSpace(wages.Cell(i, domain.ColumnArea).String())
		if known[area] > 0 || reported[area] {
			continue
		}
		reported[area] = true
		p.errorf("wage Area %q has no geography row", area)
	}
	return p
}
