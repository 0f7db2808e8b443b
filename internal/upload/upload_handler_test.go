package upload_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/upload"
	uploaderrors "go-payroll/internal/upload/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeUploadService struct {
	ValidateFn      func(ctx context.Context, file io.Reader) (upload.ValidationResponse, error)
	ProcessFn       func(ctx context.Context, userID, filename string, file io.Reader) (upload.UploadResponse, error)
	ComputeSalaryFn func(ctx context.Context, req upload.ComputeSalaryRequest) (upload.ComputeSalaryResponse, error)
	GetAllFn        func(ctx context.Context, userID string) ([]upload.UploadResponse, error)
	GetByIDFn       func(ctx context.Context, userID, id string) (upload.UploadResponse, error)
	GetEmployeesFn  func(ctx context.Context, userID, id string) ([]upload.UploadEmployeeResponse, error)
	DeleteFn        func(ctx context.Context, userID, id string) error
}

func (f *fakeUploadService) Validate(ctx context.Context, file io.Reader) (upload.ValidationResponse, error) {
	return f.ValidateFn(ctx, file)
}
func (f *fakeUploadService) Process(ctx context.Context, userID, filename string, file io.Reader) (upload.UploadResponse, error) {
	return f.ProcessFn(ctx, userID, filename, file)
}
func (f *fakeUploadService) ComputeSalary(ctx context.Context, req upload.ComputeSalaryRequest) (upload.ComputeSalaryResponse, error) {
	return f.ComputeSalaryFn(ctx, req)
}
func (f *fakeUploadService) GetAll(ctx context.Context, userID string) ([]upload.UploadResponse, error) {
	return f.GetAllFn(ctx, userID)
}
func (f *fakeUploadService) GetByID(ctx context.Context, userID, id string) (upload.UploadResponse, error) {
	return f.GetByIDFn(ctx, userID, id)
}
func (f *fakeUploadService) GetEmployees(ctx context.Context, userID, id string) ([]upload.UploadEmployeeResponse, error) {
	return f.GetEmployeesFn(ctx, userID, id)
}
func (f *fakeUploadService) Delete(ctx context.Context, userID, id string) error {
	return f.DeleteFn(ctx, userID, id)
}

func multipartFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, filename)
	assert.NoError(t, err)
	_, err = fw.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestUploadHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		userID := uuid.New().String()
		svc := &fakeUploadService{
			ProcessFn: func(ctx context.Context, uid, filename string, file io.Reader) (upload.UploadResponse, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, "payroll.xlsx", filename)
				return upload.UploadResponse{
					ID:             uuid.New().String(),
					Filename:       filename,
					Status:         upload.StatusCompleted,
					TotalEmployees: 4,
				}, nil
			},
		}
		h := upload.NewHandler(svc, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body, contentType := multipartFile(t, "file", "payroll.xlsx", []byte("xlsx bytes"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
		req.Header.Set("Content-Type", contentType)
		c.Request = req
		c.Set("user_id_validated", userID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), upload.StatusCompleted)
		assert.Contains(t, w.Body.String(), "payroll.xlsx")
	})

	t.Run("missing file part", func(t *testing.T) {
		svc := &fakeUploadService{}
		h := upload.NewHandler(svc, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("user_id_validated", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "spreadsheet file is required")
	})
}

func TestUploadHandler_Validate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeUploadService{
		ValidateFn: func(ctx context.Context, file io.Reader) (upload.ValidationResponse, error) {
			return upload.ValidationResponse{
				TotalRows: 2,
				ValidRows: 1,
				Errors:    nil,
				Warnings:  nil,
			}, nil
		},
	}
	h := upload.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, contentType := multipartFile(t, "file", "payroll.xlsx", []byte("xlsx bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/validate", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	h.Validate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_rows":2`)
	assert.Contains(t, w.Body.String(), `"valid_rows":1`)
}

func TestUploadHandler_ComputeSalary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeUploadService{
			ComputeSalaryFn: func(ctx context.Context, req upload.ComputeSalaryRequest) (upload.ComputeSalaryResponse, error) {
				assert.True(t, req.BasicPay.Equal(decimal.RequireFromString("50000")))
				return upload.ComputeSalaryResponse{
					GrossSalary: decimal.RequireFromString("68000"),
					NetSalary:   decimal.RequireFromString("55491.67"),
				}, nil
			},
		}
		h := upload.NewHandler(svc, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"basic_pay":"50000","hra":"10000","variable_pay":"5000","special_allowance":"2000","other_allowances":"1000"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/salary/compute", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.ComputeSalary(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "55491.67")
	})

	t.Run("invalid body", func(t *testing.T) {
		svc := &fakeUploadService{}
		h := upload.NewHandler(svc, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/salary/compute", strings.NewReader(`{"basic_pay":`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req

		h.ComputeSalary(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUploadHandler_GetById(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		svc := &fakeUploadService{
			GetByIDFn: func(ctx context.Context, userID, id string) (upload.UploadResponse, error) {
				return upload.UploadResponse{}, uploaderrors.ErrUploadNotFound
			},
		}
		h := upload.NewHandler(svc, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/uploads/"+uuid.New().String(), nil)
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("user_id_validated", uuid.New().String())

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}

func TestUploadHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New().String()
	targetID := uuid.New().String()

	svc := &fakeUploadService{
		DeleteFn: func(ctx context.Context, uid, id string) error {
			assert.Equal(t, userID, uid)
			assert.Equal(t, targetID, id)
			return nil
		},
	}
	h := upload.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/uploads/"+targetID, nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: targetID}}
	c.Set("user_id_validated", userID)

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted")
}
