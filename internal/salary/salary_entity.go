package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryComponent is one calculated salary snapshot for one (employee,
// upload) pair. Derived columns are always recomputed from the inputs at
// save time and the row is never mutated after its batch completes; a later
// upload for the same employee gets a fresh row.
type SalaryComponent struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	// The FK on upload_id carries ON DELETE CASCADE in the schema, so
	// deleting an upload removes its components with it.
	UploadID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Earnings
	BasicPay         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	HRA              decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	VariablePay      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	SpecialAllowance decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherAllowances  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	// Deductions
	ProvidentFund   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	IncomeTax       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	// Derived
	GrossSalary     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated by joined queries only
	EmployeeCode string `gorm:"->"`
	EmployeeName string `gorm:"->"`
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}
