package workbook

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RawRow is one data row with cell text keyed by canonical field name.
// Number is the 1-based ordinal of the data row (the header does not count),
// which is also the row number used in diagnostics.
type RawRow struct {
	Number int
	Cells  map[string]string
}

// Workbook streams data rows from a spreadsheet. The sequence is lazy,
// finite and non-restartable; Close releases the underlying file.
type Workbook struct {
	file     *excelize.File
	rows     *excelize.Rows
	columns  map[int]string // sheet column index -> canonical field
	ordinal  int
	buffered *RawRow
	done     bool
}

// Open reads the header row, resolves column synonyms and buffers the first
// data row so that structural problems (unreadable file, missing required
// columns, zero data rows) surface here rather than mid-stream.
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open document: %v", ErrMalformed, err)
	}

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: cannot read sheet %q: %v", ErrMalformed, sheet, err)
	}

	if !rows.Next() {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("%w: sheet has no header row", ErrMalformed)
	}
	header, err := rows.Columns()
	if err != nil {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("%w: cannot read header row: %v", ErrMalformed, err)
	}

	columns := make(map[int]string)
	seen := make(map[string]bool)
	for i, h := range header {
		canonical, ok := resolveHeader(h)
		if !ok || seen[canonical] {
			continue // unknown columns are ignored, first match wins
		}
		columns[i] = canonical
		seen[canonical] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		rows.Close()
		f.Close()
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: missing required columns: %s", ErrMalformed, strings.Join(missing, ", "))
	}

	w := &Workbook{file: f, rows: rows, columns: columns}

	first, err := w.advance()
	if err == io.EOF {
		w.Close()
		return nil, fmt.Errorf("%w: sheet has no data rows", ErrMalformed)
	}
	if err != nil {
		w.Close()
		return nil, err
	}
	w.buffered = &first

	return w, nil
}

// Next returns the next data row, or io.EOF once the sheet is exhausted.
func (w *Workbook) Next() (RawRow, error) {
	if w.buffered != nil {
		row := *w.buffered
		w.buffered = nil
		return row, nil
	}
	if w.done {
		return RawRow{}, io.EOF
	}
	return w.advance()
}

// advance reads forward until it finds a row with at least one non-blank
// recognized cell. Fully blank rows (spreadsheet tail garbage) are skipped
// and do not consume an ordinal.
func (w *Workbook) advance() (RawRow, error) {
	for w.rows.Next() {
		cols, err := w.rows.Columns()
		if err != nil {
			return RawRow{}, fmt.Errorf("%w: cannot read row: %v", ErrMalformed, err)
		}

		cells := make(map[string]string, len(w.columns))
		hasData := false
		for i, canonical := range w.columns {
			var value string
			if i < len(cols) {
				value = strings.TrimSpace(cols[i])
			}
			if value != "" {
				hasData = true
			}
			cells[canonical] = value
		}
		if !hasData {
			continue
		}

		w.ordinal++
		return RawRow{Number: w.ordinal, Cells: cells}, nil
	}

	w.done = true
	if err := w.rows.Error(); err != nil {
		return RawRow{}, fmt.Errorf("%w: row stream failed: %v", ErrMalformed, err)
	}
	return RawRow{}, io.EOF
}

func (w *Workbook) Close() error {
	if w.rows != nil {
		w.rows.Close()
	}
	return w.file.Close()
}
