package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/salary"

	employeeMock "go-payroll/internal/employee/mock"
	salaryMock "go-payroll/internal/salary/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service    employee.Service
	repo       *employeeMock.MockRepository
	salaryRepo *salaryMock.MockRepository
	redismock  redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	salaryRepo := salaryMock.NewMockRepository(ctrl)

	svc := employee.NewService(repo, salaryRepo, dbRedis)

	return &serviceDeps{
		service:    svc,
		repo:       repo,
		salaryRepo: salaryRepo,
		redismock:  redisMock,
	}
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New().String()
		cacheKey := employee.GetDirectoryKey(userID)

		expectedResp := []employee.EmployeeResponse{
			{ID: uuid.New().String(), EmployeeCode: "EMP001", Name: "Asha"},
		}
		jsonResp, _ := json.Marshal(expectedResp)

		deps.redismock.ExpectGet(cacheKey).SetVal(string(jsonResp))

		resp, err := deps.service.GetAll(ctx, userID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "EMP001", resp[0].EmployeeCode)
		deps.repo.EXPECT().FindAllByUser(gomock.Any(), gomock.Any()).Times(0)
	})

	t.Run("cache miss loads from repository and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New().String()
		cacheKey := employee.GetDirectoryKey(userID)

		deps.redismock.ExpectGet(cacheKey).RedisNil()

		mockEmployees := []employee.Employee{
			{ID: uuid.New(), EmployeeCode: "EMP002", Name: "Bina", Email: "bina@corp.test"},
		}
		deps.repo.EXPECT().
			FindAllByUser(gomock.Any(), userID).
			Return(mockEmployees, nil).
			Times(1)

		expectedResp := []employee.EmployeeResponse{
			{
				ID:           mockEmployees[0].ID.String(),
				EmployeeCode: "EMP002",
				Name:         "Bina",
				Email:        "bina@corp.test",
			},
		}
		jsonResp, _ := json.Marshal(expectedResp)
		deps.redismock.ExpectSet(cacheKey, jsonResp, 1*time.Hour).SetVal("OK")

		resp, err := deps.service.GetAll(ctx, userID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Bina", resp[0].Name)
	})

	t.Run("repository error is returned", func(t *testing.T) {
		deps := setupServiceTest(t)
		userID := uuid.New().String()
		cacheKey := employee.GetDirectoryKey(userID)

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().
			FindAllByUser(gomock.Any(), userID).
			Return(nil, errors.New("database connection lost")).
			Times(1)

		resp, err := deps.service.GetAll(ctx, userID)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "database connection lost")
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	targetID := uuid.New()

	t.Run("success with latest salary snapshot", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindByIDAndUser(ctx, userID, targetID.String()).
			Return(&employee.Employee{ID: targetID, EmployeeCode: "EMP010", Name: "Chitra"}, nil).
			Times(1)

		uploadID := uuid.New()
		deps.salaryRepo.EXPECT().
			FindLatestByEmployee(ctx, targetID.String()).
			Return(&salary.SalaryComponent{
				EmployeeID: targetID,
				UploadID:   uploadID,
				BasicPay:   decimal.RequireFromString("50000"),
				NetSalary:  decimal.RequireFromString("55491.67"),
			}, nil).
			Times(1)

		resp, err := deps.service.GetByID(ctx, userID, targetID.String())

		assert.NoError(t, err)
		assert.Equal(t, targetID.String(), resp.ID)
		assert.NotNil(t, resp.LatestSalary)
		assert.Equal(t, uploadID.String(), resp.LatestSalary.UploadID)
		assert.True(t, resp.LatestSalary.NetSalary.Equal(decimal.RequireFromString("55491.67")))
	})

	t.Run("no salary yet leaves snapshot empty", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindByIDAndUser(ctx, userID, targetID.String()).
			Return(&employee.Employee{ID: targetID, EmployeeCode: "EMP011", Name: "Dev"}, nil)

		deps.salaryRepo.EXPECT().
			FindLatestByEmployee(ctx, targetID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		resp, err := deps.service.GetByID(ctx, userID, targetID.String())

		assert.NoError(t, err)
		assert.Equal(t, targetID.String(), resp.ID)
		assert.Nil(t, resp.LatestSalary)
	})

	t.Run("malformed id rejected before touching storage", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, userID, "not-a-uuid")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("not found maps to domain error", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			FindByIDAndUser(ctx, userID, targetID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		resp, err := deps.service.GetByID(ctx, userID, targetID.String())

		assert.Error(t, err)
		assert.Empty(t, resp.ID)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("other tenant's employee is invisible", func(t *testing.T) {
		deps := setupServiceTest(t)
		otherUser := uuid.New().String()

		deps.repo.EXPECT().
			FindByIDAndUser(ctx, otherUser, targetID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, otherUser, targetID.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_InvalidateDirectory(t *testing.T) {
	deps := setupServiceTest(t)
	userID := uuid.New().String()

	deps.redismock.ExpectDel(employee.GetDirectoryKey(userID)).SetVal(1)

	deps.service.InvalidateDirectory(context.Background(), userID)

	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}
