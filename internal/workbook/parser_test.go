package workbook_test

import (
	"bytes"
	"io"
	"testing"

	"go-payroll/internal/workbook"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

// buildSheet writes rows into an in-memory xlsx and returns its bytes.
func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func drain(t *testing.T, w *workbook.Workbook) []workbook.RawRow {
	t.Helper()
	var out []workbook.RawRow
	for {
		row, err := w.Next()
		if err == io.EOF {
			return out
		}
		assert.NoError(t, err)
		out = append(out, row)
	}
}

func TestOpen_ResolvesHeaderSynonyms(t *testing.T) {
	r := buildSheet(t, [][]interface{}{
		{"Emp Code", "Full Name", "E-Mail", "Basic Salary", "HRA"},
		{"E1", "Asha", "asha@example.com", 50000, 10000},
	})

	w, err := workbook.Open(r)
	assert.NoError(t, err)
	defer w.Close()

	rows := drain(t, w)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, "E1", rows[0].Cells[workbook.FieldEmployeeID])
	assert.Equal(t, "Asha", rows[0].Cells[workbook.FieldName])
	assert.Equal(t, "asha@example.com", rows[0].Cells[workbook.FieldEmail])
	assert.Equal(t, "50000", rows[0].Cells[workbook.FieldBasicPay])
	assert.Equal(t, "10000", rows[0].Cells[workbook.FieldHRA])
}

func TestOpen_IgnoresUnknownColumns(t *testing.T) {
	r := buildSheet(t, [][]interface{}{
		{"Employee ID", "Name", "Basic Pay", "Shoe Size"},
		{"E1", "Asha", 1000, 42},
	})

	w, err := workbook.Open(r)
	assert.NoError(t, err)
	defer w.Close()

	rows := drain(t, w)
	assert.Len(t, rows, 1)
	_, hasShoeSize := rows[0].Cells["shoe_size"]
	assert.False(t, hasShoeSize)
}

func TestOpen_MissingRequiredColumn(t *testing.T) {
	r := buildSheet(t, [][]interface{}{
		{"Employee ID", "Name", "HRA"}, // no Basic Pay
		{"E1", "Asha", 10},
	})

	_, err := workbook.Open(r)
	assert.ErrorIs(t, err, workbook.ErrMalformed)
	assert.Contains(t, err.Error(), "basic_pay")
}

func TestOpen_NoDataRows(t *testing.T) {
	r := buildSheet(t, [][]interface{}{
		{"Employee ID", "Name", "Basic Pay"},
	})

	_, err := workbook.Open(r)
	assert.ErrorIs(t, err, workbook.ErrMalformed)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestOpen_GarbageBytes(t *testing.T) {
	_, err := workbook.Open(bytes.NewReader([]byte("this is not a spreadsheet")))
	assert.ErrorIs(t, err, workbook.ErrMalformed)
}

func TestNext_SkipsBlankRowsAndNumbersInOrder(t *testing.T) {
	r := buildSheet(t, [][]interface{}{
		{"Employee ID", "Name", "Basic Pay"},
		{"E1", "Asha", 1000},
		{"", "", ""},
		{"E2", "Bina", 2000},
	})

	w, err := workbook.Open(r)
	assert.NoError(t, err)
	defer w.Close()

	rows := drain(t, w)
	assert.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, 2, rows[1].Number)
	assert.Equal(t, "E2", rows[1].Cells[workbook.FieldEmployeeID])
}
