package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"payroll-receipts-backend/domain"
	"payroll-receipts-backend/entities"
	"payroll-receipts-backend/pkg/payslip"
)

// Column set shared by both renderers, mirroring the dashboard table.
var exportHeaders = []string{
	"Periodo",
	"Empleador",
	"CUIT Empleador",
	"Email Empleado",
	"CUIL",
	"Nombre y Apellido",
	"Archivo",
	"Firmado",
}

type (
	ExportService interface {
		ExportXLSX(ctx context.Context, scope payslip.ListScope, filter domain.PayslipFilter) ([]byte, string, error)
		ExportPDF(ctx context.Context, scope payslip.ListScope, filter domain.PayslipFilter) ([]byte, string, error)
	}

	exportService struct {
		payslipRepository payslip.PayslipRepository
	}
)

func NewExportService(payslipRepository payslip.PayslipRepository) ExportService {
	return &exportService{payslipRepository: payslipRepository}
}

// ExportXLSX renders the currently filtered record set to a spreadsheet, one
// row per record. An empty set is an error, not an empty file.
func (s *exportService) ExportXLSX(ctx context.Context, scope payslip.ListScope, filter domain.PayslipFilter) ([]byte, string, error) {
	payslips, err := s.payslipRepository.List(ctx, scope, filter)
	if err != nil {
		return nil, "", err
	}
	if len(payslips) == 0 {
		return nil, "", domain.ErrNothingToExport
	}

	f := excelize.NewFile()
	const sheet = "Recibos"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Border: border,
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", err
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return nil, "", err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	firstHeader, _ := excelize.CoordinatesToCellName(1, 1)
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	_ = f.SetCellStyle(sheet, firstHeader, lastHeader, headerStyle)

	for i, ps := range payslips {
		row := i + 2
		values := exportRow(ps)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(values), row)
		_ = f.SetCellStyle(sheet, first, last, bodyStyle)
	}

	_ = f.SetColWidth(sheet, "A", "A", 10)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "C", 16)
	_ = f.SetColWidth(sheet, "D", "D", 30)
	_ = f.SetColWidth(sheet, "E", "E", 16)
	_ = f.SetColWidth(sheet, "F", "F", 28)
	_ = f.SetColWidth(sheet, "G", "G", 32)
	_ = f.SetColWidth(sheet, "H", "H", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buf.Bytes(), fmt.Sprintf("recibos_%s.xlsx", filterToken(filter)), nil
}

// ExportPDF renders the same columns as a landscape paginated report with a
// title, a generation timestamp and alternating row shading.
func (s *exportService) ExportPDF(ctx context.Context, scope payslip.ListScope, filter domain.PayslipFilter) ([]byte, string, error) {
	payslips, err := s.payslipRepository.List(ctx, scope, filter)
	if err != nil {
		return nil, "", err
	}
	if len(payslips) == 0 {
		return nil, "", domain.ErrNothingToExport
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	colWidths := []float64{20, 45, 26, 55, 26, 45, 42, 18}

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, "Recibos de sueldo", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("Generado: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(221, 235, 247)
		for i, h := range exportHeaders {
			pdf.CellFormat(colWidths[i], 8, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	writeHeader()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()

	for i, ps := range payslips {
		if pdf.GetY()+7 > pageHeight-bottomMargin {
			pdf.AddPage()
			writeHeader()
		}

		fill := i%2 == 1
		pdf.SetFillColor(242, 242, 242)
		for col, v := range exportRow(ps) {
			pdf.CellFormat(colWidths[col], 7, tr(v), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), fmt.Sprintf("recibos_%s.pdf", filterToken(filter)), nil
}

func exportRow(ps *entities.Payslip) []string {
	signed := "No"
	if ps.Signed {
		signed = "Sí"
	}
	return []string{
		ps.Period,
		ps.EmployerName,
		ps.EmployerCUIT,
		ps.EmployeeEmail,
		ps.EmployeeCUIL,
		ps.EmployeeFullName,
		ps.PdfFilename,
		signed,
	}
}

// filterToken names the export file after the active period filter, or
// "todos" when no period is selected.
func filterToken(filter domain.PayslipFilter) string {
	if filter.Period != "" {
		return filter.Period
	}
	return "todos"
}
