package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"payroll-receipts-backend/domain"
	"payroll-receipts-backend/entities"
	"payroll-receipts-backend/pkg/payslip"
)

type fakeListRepository struct {
	payslip.PayslipRepository

	records []*entities.Payslip
}

func (f *fakeListRepository) List(_ context.Context, _ payslip.ListScope, _ domain.PayslipFilter) ([]*entities.Payslip, error) {
	return f.records, nil
}

func sampleRecords() []*entities.Payslip {
	return []*entities.Payslip{
		{
			EmployeeCUIL:     "20304050607",
			EmployeeFullName: "Gomez Ana",
			EmployeeEmail:    "ana@mail.com",
			EmployerCUIT:     "30112223334",
			EmployerName:     "Acme SA",
			Period:           "2024-02",
			PdfFilename:      "febrero.pdf",
			Signed:           true,
		},
		{
			EmployeeCUIL:     "27999888776",
			EmployeeFullName: "Perez Juan",
			EmployeeEmail:    "juan@mail.com",
			EmployerCUIT:     "30112223334",
			EmployerName:     "Acme SA",
			Period:           "2024-01",
			PdfFilename:      "enero.pdf",
			Signed:           false,
		},
	}
}

func TestExportXLSX(t *testing.T) {
	svc := NewExportService(&fakeListRepository{records: sampleRecords()})

	data, fileName, err := svc.ExportXLSX(context.Background(), payslip.ListScope{}, domain.PayslipFilter{})
	assert.Nil(t, err)
	assert.Equal(t, "recibos_todos.xlsx", fileName)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.Nil(t, err)
	defer f.Close()

	rows, err := f.GetRows("Recibos")
	assert.Nil(t, err)
	assert.Len(t, rows, 3)

	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "2024-02", rows[1][0])
	assert.Equal(t, "Sí", rows[1][7])
	assert.Equal(t, "No", rows[2][7])
}

func TestExportXLSXFileNameUsesPeriodFilter(t *testing.T) {
	svc := NewExportService(&fakeListRepository{records: sampleRecords()})

	_, fileName, err := svc.ExportXLSX(context.Background(), payslip.ListScope{}, domain.PayslipFilter{Period: "2024-02"})
	assert.Nil(t, err)
	assert.Equal(t, "recibos_2024-02.xlsx", fileName)
}

func TestExportXLSXNothingToExport(t *testing.T) {
	svc := NewExportService(&fakeListRepository{})

	_, _, err := svc.ExportXLSX(context.Background(), payslip.ListScope{}, domain.PayslipFilter{})
	assert.ErrorIs(t, err, domain.ErrNothingToExport)
}

func TestExportPDF(t *testing.T) {
	svc := NewExportService(&fakeListRepository{records: sampleRecords()})

	data, fileName, err := svc.ExportPDF(context.Background(), payslip.ListScope{}, domain.PayslipFilter{})
	assert.Nil(t, err)
	assert.Equal(t, "recibos_todos.pdf", fileName)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportPDFPaginates(t *testing.T) {
	records := make([]*entities.Payslip, 0, 80)
	for i := 0; i < 80; i++ {
		records = append(records, sampleRecords()[i%2])
	}
	svc := NewExportService(&fakeListRepository{records: records})

	data, _, err := svc.ExportPDF(context.Background(), payslip.ListScope{}, domain.PayslipFilter{})
	assert.Nil(t, err)

	// 80 rows do not fit one landscape A4 page.
	pages, err := api.PageCount(bytes.NewReader(data), nil)
	assert.Nil(t, err)
	assert.GreaterOrEqual(t, pages, 2)
}

func TestExportPDFNothingToExport(t *testing.T) {
	svc := NewExportService(&fakeListRepository{})

	_, _, err := svc.ExportPDF(context.Background(), payslip.ListScope{}, domain.PayslipFilter{})
	assert.ErrorIs(t, err, domain.ErrNothingToExport)
}
