package upload

import (
	"context"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=upload_repo.go -destination=mock/upload_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, up *Upload) error
	Update(ctx context.Context, up *Upload) error
	FindAllByUser(ctx context.Context, userID string) ([]Upload, error)
	FindByIDAndUser(ctx context.Context, userID string, id string) (*Upload, error)
	DeleteByIDAndUser(ctx context.Context, userID string, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, up *Upload) error {
	return r.db.WithContext(ctx).Create(up).Error
}

func (r *repository) Update(ctx context.Context, up *Upload) error {
	return r.db.WithContext(ctx).Save(up).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Upload, error) {
	var uploads []Upload
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Order("upload_date DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, userID string, id string) (*Upload, error) {
	var up Upload
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		First(&up, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// DeleteByIDAndUser removes the upload row; salary components go with it via
// the schema's ON DELETE CASCADE on salary_components.upload_id. Returns the
// number of rows deleted so the caller can tell a miss from a hit.
func (r *repository) DeleteByIDAndUser(ctx context.Context, userID string, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Delete(&Upload{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
