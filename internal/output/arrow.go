package output

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"github.com/couchcryptid/loc-eligibility/internal/domain"
)

// arrowSchema types a column as float64 when every present value is a
// number, and as string otherwise. All fields are nullable.
func arrowSchema(t *domain.Table) *arrow.Schema {
	cols := t.Columns()
	fields := make([]arrow.Field, len(cols))
	for j, name := range cols {
		fields[j] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
		if numericColumn(t, j) {
			fields[j].Type = arrow.PrimitiveTypes.Float64
		}
	}
	return arrow.NewSchema(fields, nil)
}

func numericColumn(t *domain.Table, j int) bool {
	seen := false
	for i := 0; i < t.Len(); i++ {
		switch t.Row(i)[j].Kind {
		case domain.Text:
			return false
		case domain.Number:
			seen = true
		}
	}
	return seen
}

func writeArrow(path string, t *domain.Table) (err error) {
	pool := memory.NewGoAllocator()
	schema := arrowSchema(t)

	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	for i := 0; i < t.Len(); i++ {
		for j, c := range t.Row(i) {
			switch fb := b.Field(j).(type) {
			case *array.Float64Builder:
				if v, ok := c.Float(); ok {
					fb.Append(v)
				} else {
					fb.AppendNull()
				}
			case *array.StringBuilder:
				if c.IsMissing() {
					fb.AppendNull()
				} else {
					fb.Append(c.String())
				}
			default:
				return fmt.Errorf("unsupported arrow builder %T", fb)
			}
		}
	}

	rec := b.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return fmt.Errorf("open arrow writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return fmt.Errorf("write arrow record: %w", err)
	}
	return w.Close()
}
