package payslip

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payroll-receipts-backend/domain"
	"payroll-receipts-backend/entities"
	"payroll-receipts-backend/internal/utils/storage"
)

type (
	PayslipService interface {
		CreatePayslip(ctx context.Context, req domain.CreatePayslipRequest, ownerID string) (domain.PayslipResponse, error)
		UpdatePayslip(ctx context.Context, id uint, req domain.UpdatePayslipRequest, ownerID string) error
		DeletePayslip(ctx context.Context, id uint, ownerID string) error
		GetPayslips(ctx context.Context, scope ListScope, filter domain.PayslipFilter) ([]domain.PayslipResponse, error)
		LookupByCUIL(ctx context.Context, cuil string) (domain.LookupResponse, error)
		SignPayslip(ctx context.Context, id uint, employeeEmail string) error
		GetPayslipForEmployee(ctx context.Context, id uint, employeeEmail string) (*entities.Payslip, error)
	}

	payslipService struct {
		payslipRepository PayslipRepository
		s3                storage.AwsS3
	}
)

func NewPayslipService(payslipRepository PayslipRepository, s3 storage.AwsS3) PayslipService {
	return &payslipService{
		payslipRepository: payslipRepository,
		s3:                s3,
	}
}

// CreatePayslip uploads the PDF before touching the table: a record is never
// written with a missing file reference. The reverse failure (row write
// failing after a successful upload) leaves an orphaned object behind; there
// is no compensating delete.
func (s *payslipService) CreatePayslip(ctx context.Context, req domain.CreatePayslipRequest, ownerID string) (domain.PayslipResponse, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.PayslipResponse{}, domain.ErrParseUUID
	}

	if req.PdfFile == nil {
		return domain.PayslipResponse{}, domain.ErrMissingPdfFile
	}

	fileName := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(req.PdfFile.Filename))
	objectKey, err := s.s3.UploadFile(fileName, req.PdfFile, "payslips", storage.AllowPDF...)
	if err != nil {
		return domain.PayslipResponse{}, err
	}

	ps := &entities.Payslip{
		OwnerID:          ownerUUID,
		EmployeeCUIL:     req.EmployeeCUIL,
		EmployeeFullName: req.EmployeeFullName,
		EmployeeEmail:    req.EmployeeEmail,
		EmployerCUIT:     req.EmployerCUIT,
		EmployerName:     req.EmployerName,
		Period:           req.Period,
		PdfURL:           s.s3.GetPublicLinkKey(objectKey),
		PdfFilename:      req.PdfFile.Filename,
	}

	if err := s.payslipRepository.Create(ctx, ps); err != nil {
		return domain.PayslipResponse{}, err
	}

	return toPayslipResponse(ps), nil
}

// UpdatePayslip patches only the fields present in the request. When no new
// file is uploaded the stored pdf_url and pdf_filename stay untouched.
func (s *payslipService) UpdatePayslip(ctx context.Context, id uint, req domain.UpdatePayslipRequest, ownerID string) error {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.ErrParseUUID
	}

	patch := map[string]interface{}{}
	if req.EmployeeCUIL != "" {
		patch["employee_cuil"] = req.EmployeeCUIL
	}
	if req.EmployeeFullName != "" {
		patch["employee_full_name"] = req.EmployeeFullName
	}
	if req.EmployeeEmail != "" {
		patch["employee_email"] = req.EmployeeEmail
	}
	if req.EmployerCUIT != "" {
		patch["employer_cuit"] = req.EmployerCUIT
	}
	if req.EmployerName != "" {
		patch["employer_name"] = req.EmployerName
	}
	if req.Period != "" {
		patch["period"] = req.Period
	}

	if req.PdfFile != nil {
		fileName := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(req.PdfFile.Filename))
		objectKey, err := s.s3.UploadFile(fileName, req.PdfFile, "payslips", storage.AllowPDF...)
		if err != nil {
			return err
		}
		patch["pdf_url"] = s.s3.GetPublicLinkKey(objectKey)
		patch["pdf_filename"] = req.PdfFile.Filename
	}

	if len(patch) == 0 {
		return nil
	}

	rows, err := s.payslipRepository.Update(ctx, id, ownerUUID, patch)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNoRowsAffected
	}
	return nil
}

func (s *payslipService) DeletePayslip(ctx context.Context, id uint, ownerID string) error {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.ErrParseUUID
	}

	rows, err := s.payslipRepository.Delete(ctx, id, ownerUUID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNoRowsAffected
	}
	return nil
}

func (s *payslipService) GetPayslips(ctx context.Context, scope ListScope, filter domain.PayslipFilter) ([]domain.PayslipResponse, error) {
	payslips, err := s.payslipRepository.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.PayslipResponse, 0, len(payslips))
	for _, ps := range payslips {
		responses = append(responses, toPayslipResponse(ps))
	}
	return responses, nil
}

// LookupByCUIL feeds the form pre-fill. A miss is not a hard error: it means
// "new employee" and the caller clears the dependent fields.
func (s *payslipService) LookupByCUIL(ctx context.Context, cuil string) (domain.LookupResponse, error) {
	ps, err := s.payslipRepository.LookupByCUIL(ctx, cuil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LookupResponse{}, domain.ErrPayslipNotFound
		}
		return domain.LookupResponse{}, err
	}

	return domain.LookupResponse{
		EmployeeFullName: ps.EmployeeFullName,
		EmployeeEmail:    ps.EmployeeEmail,
		EmployerCUIT:     ps.EmployerCUIT,
		EmployerName:     ps.EmployerName,
	}, nil
}

// SignPayslip flips the acknowledgment flag for the employee whose email the
// record carries. The transition only goes false to true; re-signing an
// already signed record succeeds without touching the row again.
func (s *payslipService) SignPayslip(ctx context.Context, id uint, employeeEmail string) error {
	ps, err := s.payslipRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPayslipNotFound
		}
		return err
	}

	if ps.EmployeeEmail != employeeEmail {
		return domain.ErrNotPayslipOwner
	}

	if ps.Signed {
		return nil
	}

	return s.payslipRepository.MarkSigned(ctx, id)
}

func (s *payslipService) GetPayslipForEmployee(ctx context.Context, id uint, employeeEmail string) (*entities.Payslip, error) {
	ps, err := s.payslipRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPayslipNotFound
		}
		return nil, err
	}

	if ps.EmployeeEmail != employeeEmail {
		return nil, domain.ErrNotPayslipOwner
	}

	return ps, nil
}

func toPayslipResponse(ps *entities.Payslip) domain.PayslipResponse {
	return domain.PayslipResponse{
		ID:               ps.ID,
		EmployeeCUIL:     ps.EmployeeCUIL,
		EmployeeFullName: ps.EmployeeFullName,
		EmployeeEmail:    ps.EmployeeEmail,
		EmployerCUIT:     ps.EmployerCUIT,
		EmployerName:     ps.EmployerName,
		Period:           ps.Period,
		PdfURL:           ps.PdfURL,
		PdfFilename:      ps.PdfFilename,
		Signed:           ps.Signed,
		CreatedAt:        ps.CreatedAt,
	}
}
