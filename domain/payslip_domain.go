package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreatePayslip = "payslip uploaded successfully"
	MessageSuccessUpdatePayslip = "payslip updated successfully"
	MessageSuccessDeletePayslip = "payslip deleted successfully"
	MessageSuccessGetPayslips   = "payslips retrieved successfully"
	MessageSuccessLookupCUIL    = "employee data retrieved successfully"
	MessageSuccessSignPayslip   = "payslip signed successfully"
	MessageSuccessExport        = "export generated successfully"

	MessageFailedCreatePayslip = "failed to upload payslip"
	MessageFailedUpdatePayslip = "failed to update payslip"
	MessageFailedDeletePayslip = "failed to delete payslip"
	MessageFailedGetPayslips   = "failed to retrieve payslips"
	MessageFailedSignPayslip   = "failed to sign payslip"
	MessageFailedExport        = "failed to generate export"
	MessageFailedViewPayslip   = "failed to open payslip"
	MessageNoRecordsFound      = "no records found"

	ErrPayslipNotFound    = errors.New("payslip not found")
	ErrEmployeeEmailTaken = errors.New("employee email already bound to another employee")
	ErrNoRowsAffected     = errors.New("no rows affected")
	ErrMissingPdfFile     = errors.New("payslip PDF file is required")
	ErrNothingToExport    = errors.New("nothing to export")
	ErrNotPayslipOwner    = errors.New("payslip does not belong to this employee")
)

type (
	// CreatePayslipRequest arrives as a multipart form: the PDF file travels
	// with the record fields in a single submit.
	CreatePayslipRequest struct {
		EmployeeCUIL     string                `form:"employee_cuil" validate:"required,cuil"`
		EmployeeFullName string                `form:"employee_full_name" validate:"required"`
		EmployeeEmail    string                `form:"employee_email" validate:"required,email"`
		EmployerCUIT     string                `form:"employer_cuit" validate:"required,cuil"`
		EmployerName     string                `form:"employer_name" validate:"required"`
		Period           string                `form:"period" validate:"required,period"`
		PdfFile          *multipart.FileHeader `form:"-" validate:"required"`
	}

	// UpdatePayslipRequest is the same form with every field optional; a nil
	// PdfFile means the stored file reference is kept as-is.
	UpdatePayslipRequest struct {
		EmployeeCUIL     string                `form:"employee_cuil" validate:"omitempty,cuil"`
		EmployeeFullName string                `form:"employee_full_name" validate:"omitempty"`
		EmployeeEmail    string                `form:"employee_email" validate:"omitempty,email"`
		EmployerCUIT     string                `form:"employer_cuit" validate:"omitempty,cuil"`
		EmployerName     string                `form:"employer_name" validate:"omitempty"`
		Period           string                `form:"period" validate:"omitempty,period"`
		PdfFile          *multipart.FileHeader `form:"-"`
	}

	PayslipResponse struct {
		ID               uint      `json:"id"`
		EmployeeCUIL     string    `json:"employee_cuil"`
		EmployeeFullName string    `json:"employee_full_name"`
		EmployeeEmail    string    `json:"employee_email"`
		EmployerCUIT     string    `json:"employer_cuit"`
		EmployerName     string    `json:"employer_name"`
		Period           string    `json:"period"`
		PdfURL           string    `json:"pdf_url"`
		PdfFilename      string    `json:"pdf_filename"`
		Signed           bool      `json:"signed"`
		CreatedAt        time.Time `json:"created_at"`
	}

	// LookupResponse carries the denormalized fields pre-filled into the form
	// when a known CUIL is entered.
	LookupResponse struct {
		EmployeeFullName string `json:"employee_full_name"`
		EmployeeEmail    string `json:"employee_email"`
		EmployerCUIT     string `json:"employer_cuit"`
		EmployerName     string `json:"employer_name"`
	}

	// PayslipFilter holds the optional equality filters layered on a listing.
	// Period and CUIL are independent here; the client treats them as
	// mutually exclusive but the repository does not care.
	PayslipFilter struct {
		Period string `query:"period" validate:"omitempty,period"`
		CUIL   string `query:"cuil" validate:"omitempty,cuil"`
	}
)
