package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"payroll-receipts-backend/domain"
	"payroll-receipts-backend/internal/api/presenters"
	"payroll-receipts-backend/pkg/export"
	"payroll-receipts-backend/pkg/payslip"
	"payroll-receipts-backend/pkg/watermark"
)

type (
	PayslipHandler interface {
		CreatePayslip(c *fiber.Ctx) error
		UpdatePayslip(c *fiber.Ctx) error
		DeletePayslip(c *fiber.Ctx) error
		GetPayslips(c *fiber.Ctx) error
		LookupCUIL(c *fiber.Ctx) error
		SignPayslip(c *fiber.Ctx) error
		ViewPayslip(c *fiber.Ctx) error
		ExportXLSX(c *fiber.Ctx) error
		ExportPDF(c *fiber.Ctx) error
	}

	payslipHandler struct {
		payslipService   payslip.PayslipService
		exportService    export.ExportService
		watermarkService watermark.WatermarkService
		validator        *validator.Validate
	}
)

func NewPayslipHandler(
	payslipService payslip.PayslipService,
	exportService export.ExportService,
	watermarkService watermark.WatermarkService,
	validator *validator.Validate,
) PayslipHandler {
	return &payslipHandler{
		payslipService:   payslipService,
		exportService:    exportService,
		watermarkService: watermarkService,
		validator:        validator,
	}
}

func (h *payslipHandler) CreatePayslip(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(string)
	req := new(domain.CreatePayslipRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("pdf_file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayslip, domain.ErrMissingPdfFile)
	}
	req.PdfFile = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayslip, err)
	}

	res, err := h.payslipService.CreatePayslip(c.Context(), *req, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeEmailTaken) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCreatePayslip, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayslip, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePayslip)
}

func (h *payslipHandler) UpdatePayslip(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePayslip, err)
	}

	req := new(domain.UpdatePayslipRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// A replacement file is optional on edit; keep the stored one when absent.
	if file, err := c.FormFile("pdf_file"); err == nil {
		req.PdfFile = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePayslip, err)
	}

	if err := h.payslipService.UpdatePayslip(c.Context(), uint(id), *req, ownerID); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdatePayslip, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePayslip, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdatePayslip)
}

func (h *payslipHandler) DeletePayslip(c *fiber.Ctx) error {
	ownerID := c.Locals("user_id").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeletePayslip, err)
	}

	if err := h.payslipService.DeletePayslip(c.Context(), uint(id), ownerID); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeletePayslip, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeletePayslip, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePayslip)
}

func (h *payslipHandler) GetPayslips(c *fiber.Ctx) error {
	scope, err := h.scopeFromLocals(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPayslips, err)
	}

	filter, err := h.filterFromQuery(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPayslips, err)
	}

	payslips, err := h.payslipService.GetPayslips(c.Context(), scope, filter)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPayslips, err)
	}

	if len(payslips) == 0 {
		return presenters.SuccessResponse(c, payslips, fiber.StatusOK, domain.MessageNoRecordsFound)
	}

	return presenters.SuccessResponse(c, payslips, fiber.StatusOK, domain.MessageSuccessGetPayslips)
}

func (h *payslipHandler) LookupCUIL(c *fiber.Ctx) error {
	cuil := c.Params("cuil")

	if err := h.validator.Var(cuil, "required,cuil"); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPayslips, err)
	}

	res, err := h.payslipService.LookupByCUIL(c.Context(), cuil)
	if err != nil {
		if errors.Is(err, domain.ErrPayslipNotFound) {
			// A miss means "new employee", not a failure.
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageNoRecordsFound, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPayslips, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLookupCUIL)
}

func (h *payslipHandler) SignPayslip(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSignPayslip, err)
	}

	if err := h.payslipService.SignPayslip(c.Context(), uint(id), email); err != nil {
		if errors.Is(err, domain.ErrPayslipNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSignPayslip, err)
		}
		if errors.Is(err, domain.ErrNotPayslipOwner) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedSignPayslip, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSignPayslip, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSignPayslip)
}

// ViewPayslip streams a watermarked transient copy of the stored PDF. A
// stamping failure is logged and degrades to a redirect to the original file
// rather than blocking the view.
func (h *payslipHandler) ViewPayslip(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedViewPayslip, err)
	}

	ps, err := h.payslipService.GetPayslipForEmployee(c.Context(), uint(id), email)
	if err != nil {
		if errors.Is(err, domain.ErrPayslipNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedViewPayslip, err)
		}
		if errors.Is(err, domain.ErrNotPayslipOwner) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedViewPayslip, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedViewPayslip, err)
	}

	stamped, err := h.watermarkService.StampForViewing(c.Context(), ps.PdfURL)
	if err != nil {
		log.Errorf("watermark failed for payslip %d: %v", ps.ID, err)
		return c.Redirect(ps.PdfURL, fiber.StatusTemporaryRedirect)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", ps.PdfFilename))
	return c.Send(stamped)
}

func (h *payslipHandler) ExportXLSX(c *fiber.Ctx) error {
	return h.export(c, h.exportService.ExportXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (h *payslipHandler) ExportPDF(c *fiber.Ctx) error {
	return h.export(c, h.exportService.ExportPDF, "application/pdf")
}

func (h *payslipHandler) export(
	c *fiber.Ctx,
	render func(ctx context.Context, scope payslip.ListScope, filter domain.PayslipFilter) ([]byte, string, error),
	contentType string,
) error {
	scope, err := h.scopeFromLocals(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExport, err)
	}

	filter, err := h.filterFromQuery(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExport, err)
	}

	data, fileName, err := render(c.Context(), scope, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNothingToExport) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageNoRecordsFound, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExport, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Send(data)
}

// scopeFromLocals derives the listing scope from the authenticated identity:
// admins see records they own, employees see records bearing their email.
func (h *payslipHandler) scopeFromLocals(c *fiber.Ctx) (payslip.ListScope, error) {
	role := c.Locals("role").(string)

	if role == domain.RoleAdmin {
		ownerID, err := uuid.Parse(c.Locals("user_id").(string))
		if err != nil {
			return payslip.ListScope{}, domain.ErrParseUUID
		}
		return payslip.ListScope{OwnerID: ownerID}, nil
	}

	return payslip.ListScope{EmployeeEmail: c.Locals("email").(string)}, nil
}

func (h *payslipHandler) filterFromQuery(c *fiber.Ctx) (domain.PayslipFilter, error) {
	filter := domain.PayslipFilter{
		Period: c.Query("period"),
		CUIL:   c.Query("cuil"),
	}
	if err := h.validator.Struct(filter); err != nil {
		return domain.PayslipFilter{}, err
	}
	return filter, nil
}
