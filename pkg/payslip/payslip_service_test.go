package payslip

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"payroll-receipts-backend/domain"
	"payroll-receipts-backend/entities"
)

type fakeRepository struct {
	PayslipRepository

	created    []*entities.Payslip
	byID       map[uint]*entities.Payslip
	updateRows int64
	lastPatch  map[string]interface{}
	signed     []uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[uint]*entities.Payslip{}}
}

func (f *fakeRepository) Create(_ context.Context, ps *entities.Payslip) error {
	f.created = append(f.created, ps)
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uint) (*entities.Payslip, error) {
	ps, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ps, nil
}

func (f *fakeRepository) Update(_ context.Context, _ uint, _ uuid.UUID, patch map[string]interface{}) (int64, error) {
	f.lastPatch = patch
	return f.updateRows, nil
}

func (f *fakeRepository) MarkSigned(_ context.Context, id uint) error {
	f.signed = append(f.signed, id)
	return nil
}

type fakeS3 struct {
	uploadErr error
	uploaded  []string
}

func (f *fakeS3) UploadFile(fileName string, _ *multipart.FileHeader, dir string, _ ...string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	key := dir + "/" + fileName
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.region.amazonaws.com/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(string) string { return "" }
func (f *fakeS3) DeleteFile(string) error            { return nil }

func pdfHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"application/pdf"}},
	}
}

func createRequest() domain.CreatePayslipRequest {
	return domain.CreatePayslipRequest{
		EmployeeCUIL:     "20304050607",
		EmployeeFullName: "Gomez Ana",
		EmployeeEmail:    "ana@mail.com",
		EmployerCUIT:     "30112223334",
		EmployerName:     "Acme SA",
		Period:           "2024-01",
		PdfFile:          pdfHeader("enero.pdf"),
	}
}

func TestCreatePayslipUploadsBeforeWrite(t *testing.T) {
	repo := newFakeRepository()
	s3 := &fakeS3{}
	svc := NewPayslipService(repo, s3)

	res, err := svc.CreatePayslip(context.Background(), createRequest(), uuid.New().String())
	assert.Nil(t, err)

	assert.Len(t, s3.uploaded, 1)
	assert.Len(t, repo.created, 1)
	assert.NotEmpty(t, repo.created[0].PdfURL)
	assert.Equal(t, "enero.pdf", repo.created[0].PdfFilename)
	assert.False(t, res.Signed)
}

func TestCreatePayslipAbortsOnUploadError(t *testing.T) {
	repo := newFakeRepository()
	s3 := &fakeS3{uploadErr: errors.New("storage rejected")}
	svc := NewPayslipService(repo, s3)

	_, err := svc.CreatePayslip(context.Background(), createRequest(), uuid.New().String())
	assert.NotNil(t, err)

	// The record write must never proceed when the upload failed.
	assert.Len(t, repo.created, 0)
}

func TestCreatePayslipRequiresFile(t *testing.T) {
	svc := NewPayslipService(newFakeRepository(), &fakeS3{})

	req := createRequest()
	req.PdfFile = nil

	_, err := svc.CreatePayslip(context.Background(), req, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrMissingPdfFile)
}

func TestUpdatePayslipKeepsFileWhenNoneUploaded(t *testing.T) {
	repo := newFakeRepository()
	repo.updateRows = 1
	s3 := &fakeS3{}
	svc := NewPayslipService(repo, s3)

	err := svc.UpdatePayslip(context.Background(), 1, domain.UpdatePayslipRequest{Period: "2024-02"}, uuid.New().String())
	assert.Nil(t, err)

	assert.Len(t, s3.uploaded, 0)
	assert.Equal(t, "2024-02", repo.lastPatch["period"])
	_, hasURL := repo.lastPatch["pdf_url"]
	_, hasName := repo.lastPatch["pdf_filename"]
	assert.False(t, hasURL)
	assert.False(t, hasName)
}

func TestUpdatePayslipReplacesFileWhenUploaded(t *testing.T) {
	repo := newFakeRepository()
	repo.updateRows = 1
	svc := NewPayslipService(repo, &fakeS3{})

	err := svc.UpdatePayslip(context.Background(), 1, domain.UpdatePayslipRequest{PdfFile: pdfHeader("febrero.pdf")}, uuid.New().String())
	assert.Nil(t, err)

	assert.Equal(t, "febrero.pdf", repo.lastPatch["pdf_filename"])
	assert.NotEmpty(t, repo.lastPatch["pdf_url"])
}

func TestUpdatePayslipZeroRows(t *testing.T) {
	repo := newFakeRepository()
	repo.updateRows = 0
	svc := NewPayslipService(repo, &fakeS3{})

	err := svc.UpdatePayslip(context.Background(), 1, domain.UpdatePayslipRequest{Period: "2024-02"}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNoRowsAffected)
}

func TestSignPayslipOnlyByMatchingEmail(t *testing.T) {
	repo := newFakeRepository()
	repo.byID[7] = &entities.Payslip{ID: 7, EmployeeEmail: "ana@mail.com"}
	svc := NewPayslipService(repo, &fakeS3{})

	err := svc.SignPayslip(context.Background(), 7, "otro@mail.com")
	assert.ErrorIs(t, err, domain.ErrNotPayslipOwner)
	assert.Len(t, repo.signed, 0)

	err = svc.SignPayslip(context.Background(), 7, "ana@mail.com")
	assert.Nil(t, err)
	assert.Equal(t, []uint{7}, repo.signed)
}

func TestSignPayslipAlreadySignedIsNoop(t *testing.T) {
	repo := newFakeRepository()
	repo.byID[7] = &entities.Payslip{ID: 7, EmployeeEmail: "ana@mail.com", Signed: true}
	svc := NewPayslipService(repo, &fakeS3{})

	err := svc.SignPayslip(context.Background(), 7, "ana@mail.com")
	assert.Nil(t, err)
	assert.Len(t, repo.signed, 0)
}

func TestSignPayslipNotFound(t *testing.T) {
	svc := NewPayslipService(newFakeRepository(), &fakeS3{})

	err := svc.SignPayslip(context.Background(), 99, "ana@mail.com")
	assert.ErrorIs(t, err, domain.ErrPayslipNotFound)
}
