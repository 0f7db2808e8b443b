package upload

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/tax"
	uploaderrors "go-payroll/internal/upload/errors"
	"go-payroll/internal/workbook"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DirectoryCache is the slice of the employee service the batch processor
// needs: dropping the cached directory after a commit changes the roster.
type DirectoryCache interface {
	InvalidateDirectory(ctx context.Context, userID string)
}

//go:generate mockgen -source=upload_service.go -destination=mock/upload_service_mock.go -package=mock
type Service interface {
	Validate(ctx context.Context, file io.Reader) (ValidationResponse, error)
	Process(ctx context.Context, userID, filename string, file io.Reader) (UploadResponse, error)
	ComputeSalary(ctx context.Context, req ComputeSalaryRequest) (ComputeSalaryResponse, error)
	GetAll(ctx context.Context, userID string) ([]UploadResponse, error)
	GetByID(ctx context.Context, userID, id string) (UploadResponse, error)
	GetEmployees(ctx context.Context, userID, id string) ([]UploadEmployeeResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	salaries  salary.Repository
	outbox    kafka.OutboxRepository
	cache     DirectoryCache
	taxCfg    tax.Config
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	salaries salary.Repository,
	outbox kafka.OutboxRepository,
	cache DirectoryCache,
	taxCfg tax.Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("upload.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("upload.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		salaries:  salaries,
		outbox:    outbox,
		cache:     cache,
		taxCfg:    taxCfg,
		logger:    l,
	}
}

// acceptedRow pairs a validated row with its computed breakdown, in input
// order, so persistence order matches spreadsheet order.
type acceptedRow struct {
	row       workbook.Row
	breakdown tax.Breakdown
}

// Validate runs the parse + validate pipeline without touching storage.
func (s *service) Validate(ctx context.Context, file io.Reader) (ValidationResponse, error) {
	wb, err := workbook.Open(file)
	if err != nil {
		s.logger.Warn("validate workbook rejected", zap.Error(err))
		return ValidationResponse{}, mapWorkbookError(err)
	}
	defer wb.Close()

	resp := ValidationResponse{
		Errors:   []workbook.Issue{},
		Warnings: []workbook.Issue{},
	}

	for {
		raw, err := wb.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ValidationResponse{}, mapWorkbookError(err)
		}

		_, errs, warns := workbook.ValidateRow(raw)
		resp.TotalRows++
		if len(errs) == 0 {
			resp.ValidRows++
		}
		resp.Errors = append(resp.Errors, errs...)
		resp.Warnings = append(resp.Warnings, warns...)
	}

	return resp, nil
}

// Process runs the full pipeline and always leaves the Upload in a terminal
// state. Row errors are collected and the batch continues; only structural
// and infrastructure failures fail the whole batch.
func (s *service) Process(ctx context.Context, userID, filename string, file io.Reader) (UploadResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return UploadResponse{}, uploaderrors.ErrInvalidUserID
	}

	md := contextutil.ExtractMetadata(ctx)
	log := s.logger.With(
		zap.String("request_id", md.RequestID),
		zap.String("user_id", userID),
		zap.String("filename", filename),
	)
	log.Info("upload processing started")

	up := &Upload{
		ID:       uuid.New(),
		UserID:   uid,
		Filename: filename,
		Status:   StatusPending,
	}
	if err := s.repo.Create(ctx, up); err != nil {
		log.Error("create upload record failed", zap.Error(err))
		return UploadResponse{}, err
	}

	wb, err := workbook.Open(file)
	if err != nil {
		// Structural failure: the batch never reaches per-row processing.
		log.Warn("workbook rejected", zap.Error(err))
		return s.fail(ctx, up, err.Error(), Diagnostics{}, 0)
	}
	defer wb.Close()

	up.Status = StatusProcessing
	if err := s.repo.Update(ctx, up); err != nil {
		log.Error("mark upload processing failed", zap.Error(err))
		return UploadResponse{}, err
	}

	var (
		diag     Diagnostics
		accepted []acceptedRow
	)

	for {
		if err := ctx.Err(); err != nil {
			log.Warn("upload processing aborted", zap.Error(err))
			return s.fail(ctx, up, "processing aborted: "+err.Error(), diag, len(diag.Errors))
		}

		raw, err := wb.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("row stream failed", zap.Error(err))
			return s.fail(ctx, up, err.Error(), diag, len(diag.Errors))
		}

		row, errs, warns := workbook.ValidateRow(raw)
		diag.Warnings = append(diag.Warnings, warns...)
		if len(errs) > 0 {
			diag.Errors = append(diag.Errors, errs...)
			continue
		}

		accepted = append(accepted, acceptedRow{
			row: row,
			breakdown: tax.Compute(s.taxCfg, tax.Input{
				BasicPay:         row.BasicPay,
				HRA:              row.HRA,
				VariablePay:      row.VariablePay,
				SpecialAllowance: row.SpecialAllowance,
				OtherAllowances:  row.OtherAllowances,
				OtherDeductions:  row.OtherDeductions,
			}),
		})
	}

	if len(accepted) == 0 {
		log.Warn("upload has no valid rows", zap.Int("row_errors", len(diag.Errors)))
		return s.fail(ctx, up, "no valid rows in workbook", diag, len(diag.Errors))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txPersister := newPersister(s.employees.WithTx(tx), s.salaries.WithTx(tx))
		for _, a := range accepted {
			if err := txPersister.persistRow(ctx, uid, up.ID, a.row, a.breakdown); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		up.Status = StatusCompleted
		up.TotalEmployees = len(accepted)
		up.Diagnostics = diag.marshal()
		up.ProcessedDate = &now
		if err := s.repo.WithTx(tx).Update(ctx, up); err != nil {
			return err
		}

		return s.queueEvent(ctx, tx, up, len(diag.Errors))
	})
	if err != nil {
		// Persistence failure rolls back every accepted row.
		log.Error("batch persistence failed", zap.Error(err))
		return s.fail(ctx, up, "persistence failed: "+err.Error(), diag, len(diag.Errors))
	}

	if s.cache != nil {
		s.cache.InvalidateDirectory(ctx, userID)
	}

	log.Info("upload processing completed",
		zap.String("upload_id", up.ID.String()),
		zap.Int("total_employees", up.TotalEmployees),
		zap.Int("row_errors", len(diag.Errors)),
		zap.Int("row_warnings", len(diag.Warnings)),
	)

	return mapToResponse(*up), nil
}

// fail moves the upload to its failed terminal state together with the
// diagnostics and outbox event, in one transaction. The caller's context may
// already be canceled (that is often why we are here), so the terminal write
// runs detached from it.
func (s *service) fail(
	ctx context.Context,
	up *Upload,
	message string,
	diag Diagnostics,
	rowErrors int,
) (UploadResponse, error) {
	ctx = context.WithoutCancel(ctx)
	now := time.Now().UTC()
	up.Status = StatusFailed
	up.TotalEmployees = 0
	up.ErrorMessage = &message
	up.Diagnostics = diag.marshal()
	up.ProcessedDate = &now

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, up); err != nil {
			return err
		}
		return s.queueEvent(ctx, tx, up, rowErrors)
	})
	if err != nil {
		s.logger.Error("mark upload failed errored",
			zap.String("upload_id", up.ID.String()),
			zap.Error(err),
		)
		return UploadResponse{}, err
	}

	return mapToResponse(*up), nil
}

func (s *service) queueEvent(ctx context.Context, tx *gorm.DB, up *Upload, rowErrors int) error {
	if s.outbox == nil {
		return nil
	}

	event := events.UploadProcessedEvent{
		EventType:      "upload_processed",
		RequestID:      contextutil.GetRequestID(ctx),
		UploadID:       up.ID.String(),
		UserID:         up.UserID.String(),
		Status:         up.Status,
		TotalEmployees: up.TotalEmployees,
		RowErrors:      rowErrors,
		OccurredAt:     time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "upload",
		AggregateID:   up.ID.String(),
		EventType:     event.EventType,
		Topic:         events.UploadLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outboxEvent); err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, outboxEvent)
}

// ComputeSalary re-runs the tax engine over caller-supplied figures without
// touching storage, for export and re-display.
func (s *service) ComputeSalary(ctx context.Context, req ComputeSalaryRequest) (ComputeSalaryResponse, error) {
	inputs := map[string]bool{
		"basic_pay":         req.BasicPay.IsNegative(),
		"hra":               req.HRA.IsNegative(),
		"variable_pay":      req.VariablePay.IsNegative(),
		"special_allowance": req.SpecialAllowance.IsNegative(),
		"other_allowances":  req.OtherAllowances.IsNegative(),
		"other_deductions":  req.OtherDeductions.IsNegative(),
	}
	for field, negative := range inputs {
		if negative {
			s.logger.Warn("compute salary rejected negative input", zap.String("field", field))
			return ComputeSalaryResponse{}, uploaderrors.ErrNegativeAmount
		}
	}

	b := tax.Compute(s.taxCfg, tax.Input{
		BasicPay:         req.BasicPay,
		HRA:              req.HRA,
		VariablePay:      req.VariablePay,
		SpecialAllowance: req.SpecialAllowance,
		OtherAllowances:  req.OtherAllowances,
		OtherDeductions:  req.OtherDeductions,
	})

	return ComputeSalaryResponse{
		GrossSalary:     b.Gross,
		ProvidentFund:   b.ProvidentFund,
		ProfessionalTax: b.ProfessionalTax,
		IncomeTax:       b.IncomeTax,
		TotalDeductions: b.TotalDeductions,
		NetSalary:       b.Net,
	}, nil
}

func (s *service) GetAll(ctx context.Context, userID string) ([]UploadResponse, error) {
	uploads, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("get all uploads failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(uploads), nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (UploadResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UploadResponse{}, uploaderrors.ErrInvalidUploadID
	}

	up, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UploadResponse{}, uploaderrors.ErrUploadNotFound
		}
		s.logger.Error("get upload by id failed", zap.Error(err))
		return UploadResponse{}, err
	}
	return mapToResponse(*up), nil
}

func (s *service) GetEmployees(ctx context.Context, userID, id string) ([]UploadEmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, uploaderrors.ErrInvalidUploadID
	}

	if _, err := s.repo.FindByIDAndUser(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uploaderrors.ErrUploadNotFound
		}
		return nil, err
	}

	components, err := s.salaries.FindAllByUpload(ctx, userID, id)
	if err != nil {
		s.logger.Error("get upload employees failed", zap.Error(err))
		return nil, err
	}

	res := make([]UploadEmployeeResponse, len(components))
	for i, c := range components {
		res[i] = mapToEmployeeResponse(c)
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return uploaderrors.ErrInvalidUploadID
	}

	affected, err := s.repo.DeleteByIDAndUser(ctx, userID, id)
	if err != nil {
		s.logger.Error("delete upload failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return uploaderrors.ErrUploadNotFound
	}

	s.logger.Info("upload deleted", zap.String("upload_id", id))
	return nil
}

func mapWorkbookError(err error) error {
	if errors.Is(err, workbook.ErrMalformed) {
		return uploaderrors.NewMalformedWorkbook(err.Error())
	}
	return err
}
