// Package dataset finds and loads the per-year OFLC input tables.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/loc-eligibility/internal/config"
	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

// ErrNotFound is returned when the year directory or an input file is missing.
var ErrNotFound = errors.New("not found")

// Paths holds the resolved locations of one data release.
type Paths struct {
	Dir       string
	Wages     string
	Geography string
}

// Locate resolves <data_dir>/OFLC_Wages_<year>/ and the two input files
// inside it, failing on the first one that does not exist.
func Locate(cfg *config.Config) (Paths, error) {
	dir := filepath.Join(cfg.Resolve(cfg.Paths.DataDir), domain.YearDirName(cfg.DataYear.String()))
	if err := requireExists(dir, true); err != nil {
		return Paths{}, fmt.Errorf("data folder %w: %s", err, dir)
	}

	p := Paths{
		Dir:       dir,
		Wages:     filepath.Join(dir, cfg.Paths.ALCFile),
		Geography: filepath.Join(dir, cfg.Paths.GeographyFile),
	}
	if err := requireExists(p.Wages, false); err != nil {
		return Paths{}, fmt.Errorf("ALC file %w: %s", err, p.Wages)
	}
	if err := requireExists(p.Geography, false); err != nil {
		return Paths{}, fmt.Errorf("geography file %w: %s", err, p.Geography)
	}
	return p, nil
}

func requireExists(path string, dir bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	if dir && !info.IsDir() {
		return ErrNotFound
	}
	if !dir && info.IsDir() {
		return ErrNotFound
	}
	return nil
}
