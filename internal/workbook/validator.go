package workbook

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Row is a fully decoded, validated data row. Monetary fields default to
// zero when the column is absent or the cell is blank.
type Row struct {
	Number           int
	EmployeeID       string
	Name             string
	Email            string
	Department       string
	Designation      string
	BasicPay         decimal.Decimal
	HRA              decimal.Decimal
	VariablePay      decimal.Decimal
	SpecialAllowance decimal.Decimal
	OtherAllowances  decimal.Decimal
	OtherDeductions  decimal.Decimal
}

// Issue is one diagnostic tied to a field of a specific row.
type Issue struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// fieldDecoder is one entry of the per-field decode table: how to pull a
// canonical field out of the raw cells and into the typed row. A decoder
// with warn set demotes its failures to warnings and clears the field.
type fieldDecoder struct {
	field    string
	required bool
	warn     bool
	decode   func(row *Row, value string) error
}

func textDecoder(field string, required bool, pick func(*Row) *string) fieldDecoder {
	return fieldDecoder{
		field:    field,
		required: required,
		decode: func(row *Row, value string) error {
			*pick(row) = value
			return nil
		},
	}
}

func moneyDecoder(field string, required bool, pick func(*Row) *decimal.Decimal) fieldDecoder {
	return fieldDecoder{
		field:    field,
		required: required,
		decode: func(row *Row, value string) error {
			d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
			if err != nil {
				return fmt.Errorf("must be a number, got %q", value)
			}
			if d.IsNegative() {
				return fmt.Errorf("must not be negative, got %s", d)
			}
			*pick(row) = d
			return nil
		},
	}
}

var rowDecoders = []fieldDecoder{
	textDecoder(FieldEmployeeID, true, func(r *Row) *string { return &r.EmployeeID }),
	textDecoder(FieldName, true, func(r *Row) *string { return &r.Name }),
	{
		field: FieldEmail,
		warn:  true,
		decode: func(row *Row, value string) error {
			if !emailPattern.MatchString(value) {
				return fmt.Errorf("does not look like an email address, field cleared")
			}
			row.Email = value
			return nil
		},
	},
	textDecoder(FieldDepartment, false, func(r *Row) *string { return &r.Department }),
	textDecoder(FieldDesignation, false, func(r *Row) *string { return &r.Designation }),
	moneyDecoder(FieldBasicPay, true, func(r *Row) *decimal.Decimal { return &r.BasicPay }),
	moneyDecoder(FieldHRA, false, func(r *Row) *decimal.Decimal { return &r.HRA }),
	moneyDecoder(FieldVariablePay, false, func(r *Row) *decimal.Decimal { return &r.VariablePay }),
	moneyDecoder(FieldSpecialAllowance, false, func(r *Row) *decimal.Decimal { return &r.SpecialAllowance }),
	moneyDecoder(FieldOtherAllowances, false, func(r *Row) *decimal.Decimal { return &r.OtherAllowances }),
	moneyDecoder(FieldOtherDeductions, false, func(r *Row) *decimal.Decimal { return &r.OtherDeductions }),
}

// ValidateRow decodes one raw row against the schema. Errors exclude the
// row from the batch; warnings do not.
func ValidateRow(raw RawRow) (Row, []Issue, []Issue) {
	row := Row{Number: raw.Number}
	var errs, warns []Issue

	for _, d := range rowDecoders {
		value := strings.TrimSpace(raw.Cells[d.field])

		if value == "" {
			if d.required {
				errs = append(errs, Issue{Row: raw.Number, Field: d.field, Message: "is required"})
			}
			continue // optional fields keep their zero default
		}

		if err := d.decode(&row, value); err != nil {
			issue := Issue{Row: raw.Number, Field: d.field, Message: err.Error()}
			if d.warn {
				warns = append(warns, issue)
			} else {
				errs = append(errs, issue)
			}
		}
	}

	return row, errs, warns
}
