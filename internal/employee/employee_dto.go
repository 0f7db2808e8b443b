package employee

import "github.com/shopspring/decimal"

type EmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Department   string `json:"department,omitempty"`
	Designation  string `json:"designation,omitempty"`
}

type SalarySnapshotResponse struct {
	UploadID         string          `json:"upload_id"`
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

type EmployeeDetailResponse struct {
	EmployeeResponse
	LatestSalary *SalarySnapshotResponse `json:"latest_salary,omitempty"`
}
