package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is one person within one submitting user's tenant. The pair
// (user_id, employee_code) is unique; the code alone is not, because two
// tenants may legitimately reuse the same identifier.
type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_employee_code"`
	EmployeeCode string    `gorm:"size:50;not null;uniqueIndex:uq_user_employee_code"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255"`
	Department   string    `gorm:"size:100"`
	Designation  string    `gorm:"size:100"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Employee) TableName() string {
	return "employees"
}
