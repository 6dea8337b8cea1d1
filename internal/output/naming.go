package output

import (
	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

const timestampLayout = "20060102_150405"

// FileName builds OFLC_Wages_<year>_eligible_locations[_<timestamp>].<ext>.
func FileName(year, ext string, timestamp bool) string {
	name := domain.YearDirName(year) + "_eligible_locations"
	if timestamp {
		name += "_" + clock.Now().Format(timestampLayout)
	}
	return name + "." + ext
}
