package salary

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, component *SalaryComponent) error
	FindAllByUpload(ctx context.Context, userID string, uploadID string) ([]SalaryComponent, error)
	FindLatestByEmployee(ctx context.Context, employeeID string) (*SalaryComponent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, component *SalaryComponent) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *repository) FindAllByUpload(ctx context.Context, userID string, uploadID string) ([]SalaryComponent, error) {
	var components []SalaryComponent
	query := `
SELECT
	salary_components.*,
	employees.employee_code AS employee_code,
	employees.name AS employee_name
FROM salary_components
JOIN employees ON employees.id = salary_components.employee_id
JOIN uploads ON uploads.id = salary_components.upload_id
WHERE salary_components.upload_id = ?
	AND uploads.user_id = ?
ORDER BY employees.employee_code ASC
`

	err := r.db.WithContext(ctx).Raw(query, uploadID, userID).Scan(&components).Error
	return components, err
}

func (r *repository) FindLatestByEmployee(ctx context.Context, employeeID string) (*SalaryComponent, error) {
	var component SalaryComponent
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		First(&component).Error
	if err != nil {
		return nil, err
	}
	return &component, nil
}
