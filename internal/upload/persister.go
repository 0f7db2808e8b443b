package upload

import (
	"context"
	"errors"

	"go-payroll/internal/employee"
	"go-payroll/internal/salary"
	"go-payroll/internal/tax"
	"go-payroll/internal/workbook"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// persister writes one accepted row: the Employee upsert scoped to the
// submitting user plus a fresh SalaryComponent for this upload. It always
// runs inside the batch transaction, so any failure rolls back every row.
type persister struct {
	employees employee.Repository
	salaries  salary.Repository
}

func newPersister(employees employee.Repository, salaries salary.Repository) *persister {
	return &persister{employees: employees, salaries: salaries}
}

func (p *persister) persistRow(
	ctx context.Context,
	userID uuid.UUID,
	uploadID uuid.UUID,
	row workbook.Row,
	breakdown tax.Breakdown,
) error {
	empl, err := p.upsertEmployee(ctx, userID, row)
	if err != nil {
		return err
	}

	return p.salaries.Create(ctx, &salary.SalaryComponent{
		ID:               uuid.New(),
		EmployeeID:       empl.ID,
		UploadID:         uploadID,
		BasicPay:         row.BasicPay,
		HRA:              row.HRA,
		VariablePay:      row.VariablePay,
		SpecialAllowance: row.SpecialAllowance,
		OtherAllowances:  row.OtherAllowances,
		ProvidentFund:    breakdown.ProvidentFund,
		ProfessionalTax:  breakdown.ProfessionalTax,
		IncomeTax:        breakdown.IncomeTax,
		OtherDeductions:  row.OtherDeductions,
		GrossSalary:      breakdown.Gross,
		TotalDeductions:  breakdown.TotalDeductions,
		NetSalary:        breakdown.Net,
	})
}

// upsertEmployee resolves (user, employee_code) to a single Employee. A
// concurrent upload for the same user can win the insert race between our
// lookup and create; the composite unique key surfaces that as 23505 and the
// loser retries as an update.
func (p *persister) upsertEmployee(
	ctx context.Context,
	userID uuid.UUID,
	row workbook.Row,
) (*employee.Employee, error) {
	existing, err := p.employees.FindByUserAndCode(ctx, userID.String(), row.EmployeeID)
	if err == nil {
		applyRow(existing, row)
		if err := p.employees.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	empl := &employee.Employee{
		ID:           uuid.New(),
		UserID:       userID,
		EmployeeCode: row.EmployeeID,
	}
	applyRow(empl, row)

	if err := p.employees.Create(ctx, empl); err != nil {
		if !employee.IsCodeConflict(err) {
			return nil, err
		}
		existing, err := p.employees.FindByUserAndCode(ctx, userID.String(), row.EmployeeID)
		if err != nil {
			return nil, err
		}
		applyRow(existing, row)
		if err := p.employees.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	return empl, nil
}

func applyRow(empl *employee.Employee, row workbook.Row) {
	empl.Name = row.Name
	empl.Email = row.Email
	empl.Department = row.Department
	empl.Designation = row.Designation
}
