package workbook_test

import (
	"testing"

	"go-payroll/internal/workbook"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rawRow(number int, cells map[string]string) workbook.RawRow {
	return workbook.RawRow{Number: number, Cells: cells}
}

func TestValidateRow_HappyPath(t *testing.T) {
	row, errs, warns := workbook.ValidateRow(rawRow(1, map[string]string{
		workbook.FieldEmployeeID:       "E1",
		workbook.FieldName:             "Asha Rao",
		workbook.FieldEmail:            "asha@example.com",
		workbook.FieldDepartment:       "Engineering",
		workbook.FieldBasicPay:         "50000",
		workbook.FieldHRA:              "10000.50",
		workbook.FieldOtherDeductions:  "1,200",
		workbook.FieldSpecialAllowance: "",
	}))

	assert.Empty(t, errs)
	assert.Empty(t, warns)
	assert.Equal(t, "E1", row.EmployeeID)
	assert.Equal(t, "Asha Rao", row.Name)
	assert.Equal(t, "asha@example.com", row.Email)
	assert.True(t, row.BasicPay.Equal(decimal.RequireFromString("50000")))
	assert.True(t, row.HRA.Equal(decimal.RequireFromString("10000.50")))
	assert.True(t, row.OtherDeductions.Equal(decimal.RequireFromString("1200")), "thousand separators are tolerated")
	assert.True(t, row.SpecialAllowance.IsZero(), "blank optional numerics default to zero")
	assert.True(t, row.VariablePay.IsZero(), "absent optional numerics default to zero")
}

func TestValidateRow_RequiredFields(t *testing.T) {
	_, errs, _ := workbook.ValidateRow(rawRow(3, map[string]string{
		workbook.FieldEmployeeID: "   ",
		workbook.FieldName:       "",
		workbook.FieldBasicPay:   "",
	}))

	assert.Len(t, errs, 3)
	for _, issue := range errs {
		assert.Equal(t, 3, issue.Row)
		assert.Equal(t, "is required", issue.Message)
	}
}

func TestValidateRow_MonetaryFields(t *testing.T) {
	t.Run("non-numeric is an error", func(t *testing.T) {
		_, errs, _ := workbook.ValidateRow(rawRow(2, map[string]string{
			workbook.FieldEmployeeID: "E1",
			workbook.FieldName:       "Asha",
			workbook.FieldBasicPay:   "fifty thousand",
		}))
		assert.Len(t, errs, 1)
		assert.Equal(t, workbook.FieldBasicPay, errs[0].Field)
		assert.Contains(t, errs[0].Message, "must be a number")
	})

	t.Run("negative is an error, not zeroed", func(t *testing.T) {
		_, errs, _ := workbook.ValidateRow(rawRow(2, map[string]string{
			workbook.FieldEmployeeID: "E1",
			workbook.FieldName:       "Asha",
			workbook.FieldBasicPay:   "1000",
			workbook.FieldHRA:        "-50",
		}))
		assert.Len(t, errs, 1)
		assert.Equal(t, workbook.FieldHRA, errs[0].Field)
		assert.Contains(t, errs[0].Message, "must not be negative")
	})
}

func TestValidateRow_MalformedEmailIsWarning(t *testing.T) {
	row, errs, warns := workbook.ValidateRow(rawRow(4, map[string]string{
		workbook.FieldEmployeeID: "E1",
		workbook.FieldName:       "Asha",
		workbook.FieldBasicPay:   "1000",
		workbook.FieldEmail:      "not-an-email",
	}))

	assert.Empty(t, errs, "bad email never blocks the row")
	assert.Len(t, warns, 1)
	assert.Equal(t, workbook.FieldEmail, warns[0].Field)
	assert.Empty(t, row.Email, "malformed email is cleared")
}
