package workbook

import "strings"

// Canonical field names. Every recognized spreadsheet column resolves to one
// of these; everything else in the sheet is ignored.
const (
	FieldEmployeeID       = "employee_id"
	FieldName             = "name"
	FieldEmail            = "email"
	FieldDepartment       = "department"
	FieldDesignation      = "designation"
	FieldBasicPay         = "basic_pay"
	FieldHRA              = "hra"
	FieldVariablePay      = "variable_pay"
	FieldSpecialAllowance = "special_allowance"
	FieldOtherAllowances  = "other_allowances"
	FieldOtherDeductions  = "other_deductions"
)

// requiredColumns must all be present in the header row.
var requiredColumns = []string{FieldEmployeeID, FieldName, FieldBasicPay}

// headerSynonyms maps normalized header text to a canonical field. Keys are
// the output of normalizeHeader, so "Employee ID", "emp_code" and "EmpID"
// all land on employee_id.
var headerSynonyms = map[string]string{
	"employee_id": FieldEmployeeID,
	"emp_id":      FieldEmployeeID,
	"empid":       FieldEmployeeID,
	"emp_code":    FieldEmployeeID,
	"emp_no":      FieldEmployeeID,

	"name":          FieldName,
	"employee_name": FieldName,
	"full_name":     FieldName,

	"email":         FieldEmail,
	"e_mail":        FieldEmail,
	"email_address": FieldEmail,
	"mail":          FieldEmail,

	"department": FieldDepartment,
	"dept":       FieldDepartment,

	"designation": FieldDesignation,
	"title":       FieldDesignation,
	"job_title":   FieldDesignation,

	"basic_pay":    FieldBasicPay,
	"basic":        FieldBasicPay,
	"basic_salary": FieldBasicPay,

	"hra":                  FieldHRA,
	"house_rent_allowance": FieldHRA,

	"variable_pay": FieldVariablePay,
	"variable":     FieldVariablePay,

	"special_allowance":  FieldSpecialAllowance,
	"special_allowances": FieldSpecialAllowance,

	"other_allowances": FieldOtherAllowances,
	"other_allowance":  FieldOtherAllowances,

	"other_deductions": FieldOtherDeductions,
	"other_deduction":  FieldOtherDeductions,
	"deductions":       FieldOtherDeductions,
}

// normalizeHeader lower-cases the header and collapses runs of spaces,
// underscores and dashes into single underscores.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '_', '-', '.':
			pendingSep = true
		default:
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

func resolveHeader(s string) (string, bool) {
	canonical, ok := headerSynonyms[normalizeHeader(s)]
	return canonical, ok
}
