// Command genmock writes a synthetic OFLC prevailing-wage dataset: an
// ALC_Export.csv wage table and a Geography.csv area table under
// <out>/OFLC_Wages_<year>/. Values are derived from a fixed seed so the
// same flags always produce the same files.
//
// Usage:
//
//	go run ./cmd/genmock -out data -year 2024 -seed 7 -geo-encoding latin-1
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/charmap"

	"github.com/couchcryptid/loc-eligibility/internal/domain"
	"github.com/couchcryptid/loc-eligibility/internal/report"
)

// wageRecord mirrors the ALC export header.
type wageRecord struct {
	Area    string `csv:"Area"`
	SocCode string `csv:"SocCode"`
	GeoLvl  string `csv:"GeoLvl"`
	Level1  string `csv:"Level1"`
	Level2  string `csv:"Level2"`
	Level3  string `csv:"Level3"`
	Level4  string `csv:"Level4"`
	Average string `csv:"Average"`
	Label   string `csv:"Label"`
}

type geographyRecord struct {
	Area           string `csv:"Area"`
	AreaName       string `csv:"AreaName"`
	StateAb        string `csv:"StateAb"`
	State          string `csv:"State"`
	CountyTownName string `csv:"CountyTownName"`
}

// occupation pairs a SOC code with the median Level2 wage its areas cluster around.
type occupation struct {
	code string
	base float64
}

var occupations = []occupation{
	{code: "15-1252", base: 52},
	{code: "15-1211", base: 46},
	{code: "29-1141", base: 40},
	{code: "13-2011", base: 35},
	{code: "11-1021", base: 58},
}

// areas carries a cost-of-living factor applied to every occupation.
var areas = []struct {
	geo    geographyRecord
	factor float64
}{
	{geographyRecord{"12420", "Austin-Round Rock-Georgetown, TX", "TX", "Texas", "Travis County"}, 1.05},
	{geographyRecord{"19100", "Dallas-Fort Worth-Arlington, TX", "TX", "Texas", "Tarrant County"}, 1.00},
	{geographyRecord{"41940", "San Jose-Sunnyvale-Santa Clara, CA", "CA", "California", "Santa Clara County"}, 1.45},
	{geographyRecord{"23420", "Fresno, CA", "CA", "California", "Fresno County"}, 0.88},
	{geographyRecord{"29740", "Las Cruces, NM", "NM", "New Mexico", "Doña Ana County"}, 0.80},
	{geographyRecord{"35620", "New York-Newark-Jersey City, NY-NJ-PA", "NY", "New York", "New York County"}, 1.35},
	{geographyRecord{"42660", "Seattle-Tacoma-Bellevue, WA", "WA", "Washington", "King County"}, 1.30},
	{geographyRecord{"38060", "Phoenix-Mesa-Chandler, AZ", "AZ", "Arizona", "Maricopa County"}, 0.97},
	{geographyRecord{"1300003", "Northeast Georgia nonmetropolitan area", "GA", "Georgia", "Habersham County"}, 0.72},
	{geographyRecord{"7200010", "Mayagüez, PR", "PR", "Puerto Rico", "Mayagüez Municipio"}, 0.62},
}

// options are the parsed command-line flags.
type options struct {
	out         string
	year        string
	seed        uint64
	geoEncoding string
	orphans     int
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("genmock", flag.ContinueOnError)
	var opts options
	fs.StringVar(&opts.out, "out", "data", "data directory to create the year folder in")
	fs.StringVar(&opts.year, "year", "2024", "data year used in the folder name")
	fs.Uint64Var(&opts.seed, "seed", 1, "random seed")
	fs.StringVar(&opts.geoEncoding, "geo-encoding", "utf-8", "encoding of Geography.csv: utf-8 or latin-1")
	fs.IntVar(&opts.orphans, "orphans", 1, "wage areas written without a geography row")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	rep := report.New(stdout)
	dir := filepath.Join(opts.out, domain.YearDirName(opts.year))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset folder: %w", err)
	}

	wages, geo := generate(opts.seed, opts.orphans)

	wagesPath := filepath.Join(dir, "ALC_Export.csv")
	if err := writeRecords(wagesPath, wages, "utf-8"); err != nil {
		return fmt.Errorf("writing wage table: %w", err)
	}
	rep.Success("Wrote %s wage rows to %s", report.Count(len(wages)), wagesPath)

	geoPath := filepath.Join(dir, "Geography.csv")
	if err := writeRecords(geoPath, geo, opts.geoEncoding); err != nil {
		return fmt.Errorf("writing geography table: %w", err)
	}
	rep.Success("Wrote %s geography rows to %s (%s)", report.Count(len(geo)), geoPath, opts.geoEncoding)

	printStats(rep, wages)
	return nil
}

// generate builds one wage row per area and occupation. The last orphans
// areas are left out of the geography table.
func generate(seed uint64, orphans int) ([]wageRecord, []geographyRecord) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	orphans = max(0, min(orphans, len(areas)))

	wages := make([]wageRecord, 0, len(areas)*len(occupations))
	geo := make([]geographyRecord, 0, len(areas)-orphans)
	for i, a := range areas {
		if i < len(areas)-orphans {
			geo = append(geo, a.geo)
		}
		for _, occ := range occupations {
			l2 := occ.base * a.factor * (0.9 + 0.2*rng.Float64())
			levels := [4]float64{l2 * 0.8, l2, l2 * 1.2, l2 * 1.4}
			rec := wageRecord{
				Area:    a.geo.Area,
				SocCode: occ.code,
				GeoLvl:  "1",
				Level1:  money(levels[0]),
				Level2:  money(levels[1]),
				Level3:  money(levels[2]),
				Level4:  money(levels[3]),
				Average: money((levels[0] + levels[1] + levels[2] + levels[3]) / 4),
			}
			// Real exports leave a few levels blank and footnote them.
			if rng.IntN(20) == 0 {
				rec.Level4 = ""
				rec.Label = "Level 4 wage not available"
			}
			wages = append(wages, rec)
		}
	}
	return wages, geo
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func writeRecords(path string, records any, encoding string) error {
	var buf bytes.Buffer
	if err := gocsv.Marshal(records, &buf); err != nil {
		return err
	}
	data := buf.Bytes()

	switch strings.ToLower(encoding) {
	case "utf-8", "utf8":
	case "latin-1", "latin1", "iso-8859-1":
		encoded, err := charmap.ISO8859_1.NewEncoder().Bytes(data)
		if err != nil {
			return fmt.Errorf("encode %s: %w", encoding, err)
		}
		data = encoded
	default:
		return errors.New("unsupported encoding " + encoding)
	}
	return os.WriteFile(path, data, 0o600)
}

func printStats(rep *report.Reporter, wages []wageRecord) {
	bySOC := map[string][]domain.Cell{}
	for _, w := range wages {
		bySOC[w.SocCode] = append(bySOC[w.SocCode], domain.CleanWage(domain.TextCell(w.Level2)))
	}

	rep.Section("=== Stats for picking test wages ===")
	for _, occ := range occupations {
		s := domain.Describe(bySOC[occ.code], occ.base)
		if s == nil {
			continue
		}
		rep.Detail("%s Level2: min %s, median %s, max %s", occ.code,
			report.Money(s.Min), report.Money(s.Median), report.Money(s.Max))
	}
}
