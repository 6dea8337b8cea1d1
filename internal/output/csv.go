package output

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

func writeCSV(path string, t *domain.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := gocsv.DefaultCSVWriter(f)
	if err := w.Write(t.Columns()); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		src := t.Row(i)
		record := make([]string, len(src))
		for j, c := range src {
			record[j] = c.String()
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
