// internal/adapters/flatfile/table.go
package flatfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ammerola/biomarket-be/internal/core/domain"
)

// Schema describes the fixed column layout of one table file and how a record
// maps onto it. Decode is handed fields in Columns order regardless of how the
// on-disk header happens to be permuted.
type Schema[T any] struct {
	Columns []string
	Encode  func(T) []string
	Decode  func(fields []string) (T, error)
}

// Table transcodes a slice of uniformly-shaped records to and from a delimited
// text file. It is stateless: nothing is cached between calls, so the owner
// always sees the current on-disk state.
type Table[T any] struct {
	Path   string
	Schema Schema[T]
}

// Load reads every record from the table file. A missing file is a valid
// "no data yet" state and loads as an empty slice. An existing file whose
// header does not carry the schema's column set, or any row that fails field
// count or type coercion, fails with MalformedDataError.
func (t Table[T]) Load() ([]T, error) {
	f, err := os.Open(t.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "open", Path: t.Path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(t.Schema.Columns)

	header, err := r.Read()
	if err == io.EOF {
		// File exists but holds nothing, not even a header. The original
		// writer always emits the header first, so treat it like "no data".
		return nil, nil
	}
	if err != nil {
		return nil, &domain.MalformedDataError{Path: t.Path, Reason: "unreadable header", Err: err}
	}

	// External edits may reorder columns; map by name instead of position.
	order, err := t.columnOrder(header)
	if err != nil {
		return nil, err
	}

	var records []T
	line := 1
	for {
		line++
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.MalformedDataError{
				Path: t.Path, Line: line, Reason: "wrong field count", Err: err,
			}
		}

		fields := make([]string, len(order))
		for i, src := range order {
			fields[i] = row[src]
		}
		rec, err := t.Schema.Decode(fields)
		if err != nil {
			return nil, &domain.MalformedDataError{
				Path: t.Path, Line: line, Reason: err.Error(), Err: err,
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save rewrites the table file with header plus all records. The write goes to
// a temp file in the same directory which is then renamed over the target, so
// a crash mid-write never leaves a truncated file that looks valid.
func (t Table[T]) Save(records []T) error {
	dir := filepath.Dir(t.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(t.Path)+".tmp-*")
	if err != nil {
		return &domain.StorageError{Op: "create", Path: t.Path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Schema.Columns); err != nil {
		tmp.Close()
		return &domain.StorageError{Op: "write", Path: t.Path, Err: err}
	}
	for _, rec := range records {
		if err := w.Write(t.Schema.Encode(rec)); err != nil {
			tmp.Close()
			return &domain.StorageError{Op: "write", Path: t.Path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return &domain.StorageError{Op: "write", Path: t.Path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &domain.StorageError{Op: "sync", Path: t.Path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.StorageError{Op: "close", Path: t.Path, Err: err}
	}
	if err := os.Rename(tmpName, t.Path); err != nil {
		return &domain.StorageError{Op: "rename", Path: t.Path, Err: err}
	}
	return nil
}

// columnOrder maps schema columns onto their positions in the on-disk header.
func (t Table[T]) columnOrder(header []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, col := range header {
		pos[col] = i
	}
	order := make([]int, len(t.Schema.Columns))
	for i, col := range t.Schema.Columns {
		src, ok := pos[col]
		if !ok {
			return nil, &domain.MalformedDataError{
				Path:   t.Path,
				Reason: fmt.Sprintf("header missing column %q", col),
			}
		}
		order[i] = src
	}
	return order, nil
}
