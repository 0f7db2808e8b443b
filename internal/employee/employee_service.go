package employee

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const DirectoryKeyPrefix = "employees:directory:"

func GetDirectoryKey(userID string) string {
	return DirectoryKeyPrefix + userID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, userID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, userID, id string) (EmployeeDetailResponse, error)
	InvalidateDirectory(ctx context.Context, userID string)
}

type service struct {
	repo       Repository
	salaryRepo salary.Repository
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(
	repo Repository,
	salaryRepo salary.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:       repo,
		salaryRepo: salaryRepo,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) GetAll(ctx context.Context, userID string) ([]EmployeeResponse, error) {
	cacheKey := GetDirectoryKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		employees, err := s.repo.FindAllByUser(ctx, userID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(employees)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (EmployeeDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeDetailResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	l := contextutil.GetLogger(ctx, s.logger)
	l.Debug("get employee by id requested",
		zap.String("user_id", userID),
		zap.String("employee_id", id),
	)
	empl, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		l.Error("get employee by id failed", zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}

	resp := EmployeeDetailResponse{EmployeeResponse: mapToResponse(*empl)}

	component, err := s.salaryRepo.FindLatestByEmployee(ctx, empl.ID.String())
	if err != nil {
		// An employee without any completed batch simply has no snapshot yet.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("get latest salary failed",
				zap.String("employee_id", id),
				zap.Error(err),
			)
			return EmployeeDetailResponse{}, err
		}
		return resp, nil
	}

	resp.LatestSalary = mapToSnapshot(component)
	return resp, nil
}

// InvalidateDirectory drops the cached listing after a batch changes the
// employee set. Failures only log; the entry expires on its own.
func (s *service) InvalidateDirectory(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetDirectoryKey(userID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee directory cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           empl.ID.String(),
		EmployeeCode: empl.EmployeeCode,
		Name:         empl.Name,
		Email:        empl.Email,
		Department:   empl.Department,
		Designation:  empl.Designation,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}

func mapToSnapshot(component *salary.SalaryComponent) *SalarySnapshotResponse {
	return &SalarySnapshotResponse{
		UploadID:         component.UploadID.String(),
		BasicPay:         component.BasicPay,
		HRA:              component.HRA,
		VariablePay:      component.VariablePay,
		SpecialAllowance: component.SpecialAllowance,
		OtherAllowances:  component.OtherAllowances,
		ProvidentFund:    component.ProvidentFund,
		ProfessionalTax:  component.ProfessionalTax,
		IncomeTax:        component.IncomeTax,
		OtherDeductions:  component.OtherDeductions,
		GrossSalary:      component.GrossSalary,
		TotalDeductions:  component.TotalDeductions,
		NetSalary:        component.NetSalary,
	}
}
