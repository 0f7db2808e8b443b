package employee_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	GetAllFn  func(ctx context.Context, userID string) ([]employee.EmployeeResponse, error)
	GetByIDFn func(ctx context.Context, userID, id string) (employee.EmployeeDetailResponse, error)
}

func (f *fakeEmployeeService) GetAll(ctx context.Context, userID string) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, userID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, userID, id string) (employee.EmployeeDetailResponse, error) {
	return f.GetByIDFn(ctx, userID, id)
}
func (f *fakeEmployeeService) InvalidateDirectory(ctx context.Context, userID string) {}

func directoryFixture() []employee.EmployeeResponse {
	return []employee.EmployeeResponse{
		{ID: uuid.New().String(), EmployeeCode: "E001", Name: "Alice Kumar", Email: "alice@acme.test", Department: "Engineering"},
		{ID: uuid.New().String(), EmployeeCode: "E002", Name: "Bob Singh", Email: "bob@acme.test", Department: "Finance"},
		{ID: uuid.New().String(), EmployeeCode: "E003", Name: "Carol Iyer", Email: "carol@acme.test", Department: "Engineering"},
	}
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, uid string) ([]employee.EmployeeResponse, error) {
				assert.Equal(t, userID, uid)
				return directoryFixture(), nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
		c.Set("user_id_validated", userID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "E001")
		assert.Contains(t, w.Body.String(), "E003")
		assert.Contains(t, w.Body.String(), `"total":3`)
	})

	t.Run("name filter narrows the page", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, uid string) ([]employee.EmployeeResponse, error) {
				return directoryFixture(), nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees?q=alice", nil)
		c.Set("user_id_validated", userID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Alice Kumar")
		assert.NotContains(t, w.Body.String(), "Bob Singh")
		assert.Contains(t, w.Body.String(), `"total":1`)
	})

	t.Run("pagination slices the sorted directory", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, uid string) ([]employee.EmployeeResponse, error) {
				return directoryFixture(), nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees?page=2&page_size=2", nil)
		c.Set("user_id_validated", userID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "E003")
		assert.NotContains(t, w.Body.String(), "E001")
		assert.Contains(t, w.Body.String(), `"totalPages":2`)
	})

	t.Run("service error surfaces as envelope error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, uid string) ([]employee.EmployeeResponse, error) {
				return nil, errors.New("db unreachable")
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
		c.Set("user_id_validated", userID)

		h.GetAll(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":false`)
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success with latest salary", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, uid, id string) (employee.EmployeeDetailResponse, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, employeeID, id)
				return employee.EmployeeDetailResponse{
					EmployeeResponse: employee.EmployeeResponse{
						ID:           employeeID,
						EmployeeCode: "E001",
						Name:         "Alice Kumar",
					},
					LatestSalary: &employee.SalarySnapshotResponse{
						UploadID:  uuid.New().String(),
						NetSalary: decimal.RequireFromString("55491.67"),
					},
				}, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+employeeID, nil)
		c.Params = gin.Params{{Key: "id", Value: employeeID}}
		c.Set("user_id_validated", userID)

		h.GetById(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Alice Kumar")
		assert.Contains(t, w.Body.String(), "55491.67")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, uid, id string) (employee.EmployeeDetailResponse, error) {
				return employee.EmployeeDetailResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+employeeID, nil)
		c.Params = gin.Params{{Key: "id", Value: employeeID}}
		c.Set("user_id_validated", userID)

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}
