package upload

import (
	"encoding/json"
	"time"

	"go-payroll/internal/salary"
	"go-payroll/internal/workbook"

	"github.com/shopspring/decimal"
)

// Diagnostics is the row-indexed error/warning payload stored on the Upload
// and returned to the caller, present even on overall success.
type Diagnostics struct {
	Errors   []workbook.Issue `json:"errors"`
	Warnings []workbook.Issue `json:"warnings"`
}

func (d Diagnostics) marshal() []byte {
	if d.Errors == nil {
		d.Errors = []workbook.Issue{}
	}
	if d.Warnings == nil {
		d.Warnings = []workbook.Issue{}
	}
	raw, _ := json.Marshal(d)
	return raw
}

type UploadResponse struct {
	ID             string           `json:"id"`
	Filename       string           `json:"filename"`
	Status         string           `json:"status"`
	TotalEmployees int              `json:"total_employees"`
	ErrorMessage   string           `json:"error_message,omitempty"`
	Errors         []workbook.Issue `json:"errors"`
	Warnings       []workbook.Issue `json:"warnings"`
	UploadedAt     time.Time        `json:"uploaded_at"`
	ProcessedAt    *time.Time       `json:"processed_at,omitempty"`
}

type ValidationResponse struct {
	TotalRows int              `json:"total_rows"`
	ValidRows int              `json:"valid_rows"`
	Errors    []workbook.Issue `json:"errors"`
	Warnings  []workbook.Issue `json:"warnings"`
}

type UploadEmployeeResponse struct {
	EmployeeCode     string          `json:"employee_code"`
	EmployeeName     string          `json:"employee_name"`
	BasicPay         decimal.Decimal `json:"basic_pay"`
	HRA              decimal.Decimal `json:"hra"`
	VariablePay      decimal.Decimal `json:"variable_pay"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	OtherAllowances  decimal.Decimal `json:"other_allowances"`
	ProvidentFund    decimal.Decimal `json:"provident_fund"`
	ProfessionalTax  decimal.Decimal `json:"professional_tax"`
	IncomeTax        decimal.Decimal `json:"income_tax"`
	OtherDeductions  decimal.Decimal `json:"other_deductions"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetSalary        decimal.Decimal `json:"net_salary"`
}

type ComputeSalaryRequest struct {
	BasicPay         decimal.Decimal `json:"basic_pay"`
	HRA              decimal.Decimal `json:"hra"`
	VariablePay      decimal.Decimal `json:"variable_pay"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	OtherAllowances  decimal.Decimal `json:"other_allowances"`
	OtherDeductions  decimal.Decimal `json:"other_deductions"`
}

type ComputeSalaryResponse struct {
	GrossSalary      decimal.Decimal `json:"gross_salary"`
	ProvidentFund    decimal.Decimal `json:"provident_fund"`
	ProfessionalTax  decimal.Decimal `json:"professional_tax"`
	IncomeTax        decimal.Decimal `json:"income_tax"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetSalary        decimal.Decimal `json:"net_salary"`
}

func mapToResponse(up Upload) UploadResponse {
	resp := UploadResponse{
		ID:             up.ID.String(),
		Filename:       up.Filename,
		Status:         up.Status,
		TotalEmployees: up.TotalEmployees,
		Errors:         []workbook.Issue{},
		Warnings:       []workbook.Issue{},
		UploadedAt:     up.UploadDate,
		ProcessedAt:    up.ProcessedDate,
	}
	if up.ErrorMessage != nil {
		resp.ErrorMessage = *up.ErrorMessage
	}
	if len(up.Diagnostics) > 0 {
		var diag Diagnostics
		if json.Unmarshal(up.Diagnostics, &diag) == nil {
			if diag.Errors != nil {
				resp.Errors = diag.Errors
			}
			if diag.Warnings != nil {
				resp.Warnings = diag.Warnings
			}
		}
	}
	return resp
}

func mapToListResponse(uploads []Upload) []UploadResponse {
	res := make([]UploadResponse, len(uploads))
	for i, u := range uploads {
		res[i] = mapToResponse(u)
	}
	return res
}

func mapToEmployeeResponse(c salary.SalaryComponent) UploadEmployeeResponse {
	return UploadEmployeeResponse{
		EmployeeCode:     c.EmployeeCode,
		EmployeeName:     c.EmployeeName,
		BasicPay:         c.BasicPay,
		HRA:              c.HRA,
		VariablePay:      c.VariablePay,
		SpecialAllowance: c.SpecialAllowance,
		OtherAllowances:  c.OtherAllowances,
		ProvidentFund:    c.ProvidentFund,
		ProfessionalTax:  c.ProfessionalTax,
		IncomeTax:        c.IncomeTax,
		OtherDeductions:  c.OtherDeductions,
		GrossSalary:      c.GrossSalary,
		TotalDeductions:  c.TotalDeductions,
		NetSalary:        c.NetSalary,
	}
}
