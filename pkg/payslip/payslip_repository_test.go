package payslip

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"payroll-receipts-backend/domain"
	"payroll-receipts-backend/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entities.Payslip{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedPayslip(t *testing.T, repo PayslipRepository, owner uuid.UUID, cuil, name, email, period string) *entities.Payslip {
	t.Helper()

	ps := &entities.Payslip{
		OwnerID:          owner,
		EmployeeCUIL:     cuil,
		EmployeeFullName: name,
		EmployeeEmail:    email,
		EmployerCUIT:     "30112223334",
		EmployerName:     "Acme SA",
		Period:           period,
		PdfURL:           "https://bucket.s3.region.amazonaws.com/payslips/1.pdf",
		PdfFilename:      "recibo.pdf",
	}
	assert.Nil(t, repo.Create(context.Background(), ps))
	return ps
}

func TestListOrdering(t *testing.T) {
	repo := NewPayslipRepository(newTestDB(t))
	owner := uuid.New()
	ctx := context.Background()

	// Inserted out of order on purpose.
	seedPayslip(t, repo, owner, "20304050607", "Gomez Ana", "ana@mail.com", "2024-01")
	seedPayslip(t, repo, owner, "27999888776", "Perez Juan", "juan@mail.com", "2024-02")
	seedPayslip(t, repo, owner, "20111222333", "Diaz Berta", "berta@mail.com", "2024-02")
	seedPayslip(t, repo, owner, "20111222333", "Alvarez Carlos", "carlos@mail.com", "2024-02")

	got, err := repo.List(ctx, ListScope{OwnerID: owner}, domain.PayslipFilter{})
	assert.Nil(t, err)
	assert.Len(t, got, 4)

	// period descending first
	assert.Equal(t, "2024-02", got[0].Period)
	assert.Equal(t, "2024-02", got[1].Period)
	assert.Equal(t, "2024-02", got[2].Period)
	assert.Equal(t, "2024-01", got[3].Period)

	// equal periods ordered by CUIL ascending, then full name ascending
	assert.Equal(t, "Alvarez Carlos", got[0].EmployeeFullName)
	assert.Equal(t, "Diaz Berta", got[1].EmployeeFullName)
	assert.Equal(t, "27999888776", got[2].EmployeeCUIL)
}

func TestListScopes(t *testing.T) {
	repo := NewPayslipRepository(newTestDB(t))
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()

	seedPayslip(t, repo, ownerA, "20304050607", "Gomez Ana", "ana@mail.com", "2024-01")
	seedPayslip(t, repo, ownerB, "27999888776", "Perez Juan", "juan@mail.com", "2024-01")

	byOwner, err := repo.List(ctx, ListScope{OwnerID: ownerA}, domain.PayslipFilter{})
	assert.Nil(t, err)
	assert.Len(t, byOwner, 1)
	assert.Equal(t, "ana@mail.com", byOwner[0].EmployeeEmail)

	byEmail, err := repo.List(ctx, ListScope{EmployeeEmail: "juan@mail.com"}, domain.PayslipFilter{})
	assert.Nil(t, err)
	assert.Len(t, byEmail, 1)
	assert.Equal(t, ownerB, byEmail[0].OwnerID)
}

func TestListFilters(t *testing.T) {
	repo := NewPayslipRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	seedPayslip(t, repo, owner, "20304050607", "Gomez Ana", "ana@mail.com", "2024-01")
	seedPayslip(t, repo, owner, "20304050607", "Gomez Ana", "ana@mail.com", "2024-02")
	seedPayslip(t, repo, owner, "27999888776", "Perez Juan", "juan@mail.com", "2024-02")

	byPeriod, err := repo.List(ctx, ListScope{OwnerID: owner}, domain.PayslipFilter{Period: "2024-02"})
	assert.Nil(t, err)
	assert.Len(t, byPeriod, 2)

	byCUIL, err := repo.List(ctx, ListScope{OwnerID: owner}, domain.PayslipFilter{CUIL: "20304050607"})
	assert.Nil(t, err)
	assert.Len(t, byCUIL, 2)

	empty, err := repo.List(ctx, ListScope{OwnerID: owner}, domain.PayslipFilter{Period: "2023-12"})
	assert.Nil(t, err)
	assert.Len(t, empty, 0)
}

func TestUpdateScopedByOwner(t *testing.T) {
	repo := NewPayslipRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	ps := seedPayslip(t, repo, owner, "20304050607", "Gomez Ana", "ana@mail.com", "2024-01")

	// Patch from a non-owner affects zero rows and is not an error.
	rows, err := repo.Update(ctx, ps.ID, stranger, map[string]interface{}{"period": "2024-03"})
	assert.Nil(t, err)
	assert.Equal(t, int64(0), rows)

	rows, err = repo.Update(ctx, ps.ID, owner, map[string]interface{}{"period": "2024-02"})
	assert.Nil(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := repo.GetByID(ctx, ps.ID)
	assert.Nil(t, err)
	assert.Equal(t, "2024-02", got.Period)
	// untouched columns survive the patch
	assert.Equal(t, "recibo.pdf", got.PdfFilename)
}

func TestDeleteScopedByOwner(t *testing.T) {
	repo := NewPayslipRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	ps := seedPayslip(t, repo, owner, "20304050607", "Gomez Ana", "ana@mail.com", "2024-01")

	rows, err := repo.Delete(ctx, ps.ID, stranger)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), rows)

	rows, err = repo.Delete(ctx, ps.ID, owner)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestMarkSignedIdempotent(t *testing.T) {
	repo := NewPayslipRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	ps := seedPayslip(t, repo, owner, "20304050607", "Gomez Ana", "ana@mail.com", "2024-01")

	assert.Nil(t, repo.MarkSigned(ctx, ps.ID))
	assert.Nil(t, repo.MarkSigned(ctx, ps.ID))

	got, err := repo.GetByID(ctx, ps.ID)
	assert.Nil(t, err)
	assert.True(t, got.Signed)
}

func TestLookupByCUILNotOwnerScoped(t *testing.T) {
	repo := NewPayslipRepository(newTestDB(t))
	ctx := context.Background()

	seedPayslip(t, repo, uuid.New(), "20304050607", "Gomez Ana", "ana@mail.com", "2024-01")

	// A different admin still finds the record: the lookup spans the table.
	got, err := repo.LookupByCUIL(ctx, "20304050607")
	assert.Nil(t, err)
	assert.Equal(t, "Gomez Ana", got.EmployeeFullName)

	_, err = repo.LookupByCUIL(ctx, "27999888776")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLookupByCUILPrefersLatestPeriod(t *testing.T) {
	repo := NewPayslipRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	seedPayslip(t, repo, owner, "20304050607", "Gomez Ana", "ana@mail.com", "2023-12")
	latest := seedPayslip(t, repo, owner, "20304050607", "Gomez Ana", "ana.new@mail.com", "2024-02")

	got, err := repo.LookupByCUIL(ctx, "20304050607")
	assert.Nil(t, err)
	assert.Equal(t, latest.EmployeeEmail, got.EmployeeEmail)
}

func TestCreateEditFilterScenario(t *testing.T) {
	repo := NewPayslipRepository(newTestDB(t))
	ctx := context.Background()
	owner := uuid.New()

	ps := seedPayslip(t, repo, owner, "20304050607", "Gomez Ana", "ana@mail.com", "2024-01")

	listed, err := repo.List(ctx, ListScope{OwnerID: owner}, domain.PayslipFilter{})
	assert.Nil(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, "2024-01", listed[0].Period)

	// Edit the period without supplying a new file: filename is unchanged.
	rows, err := repo.Update(ctx, ps.ID, owner, map[string]interface{}{"period": "2024-02"})
	assert.Nil(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := repo.GetByID(ctx, ps.ID)
	assert.Nil(t, err)
	assert.Equal(t, "recibo.pdf", got.PdfFilename)

	newPeriod, err := repo.List(ctx, ListScope{OwnerID: owner}, domain.PayslipFilter{Period: "2024-02"})
	assert.Nil(t, err)
	assert.Len(t, newPeriod, 1)

	oldPeriod, err := repo.List(ctx, ListScope{OwnerID: owner}, domain.PayslipFilter{Period: "2024-01"})
	assert.Nil(t, err)
	assert.Len(t, oldPeriod, 0)
}
