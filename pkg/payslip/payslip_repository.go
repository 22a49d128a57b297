package payslip

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payroll-receipts-backend/domain"
	"payroll-receipts-backend/entities"
)

type (
	// ListScope restricts a listing to one caller: admins see the records
	// they own, employees see the records bearing their email. Exactly one
	// of the two fields is set.
	ListScope struct {
		OwnerID       uuid.UUID
		EmployeeEmail string
	}

	PayslipRepository interface {
		List(ctx context.Context, scope ListScope, filter domain.PayslipFilter) ([]*entities.Payslip, error)
		LookupByCUIL(ctx context.Context, cuil string) (*entities.Payslip, error)
		GetByID(ctx context.Context, id uint) (*entities.Payslip, error)
		Create(ctx context.Context, payslip *entities.Payslip) error
		Update(ctx context.Context, id uint, ownerID uuid.UUID, patch map[string]interface{}) (int64, error)
		Delete(ctx context.Context, id uint, ownerID uuid.UUID) (int64, error)
		MarkSigned(ctx context.Context, id uint) error
	}

	payslipRepository struct {
		db *gorm.DB
	}
)

func NewPayslipRepository(db *gorm.DB) PayslipRepository {
	return &payslipRepository{db: db}
}

// List returns every record in scope ordered by period descending, then
// employee CUIL ascending, then full name ascending. The most recent period
// always surfaces first; sub-ordering is deterministic.
func (r *payslipRepository) List(ctx context.Context, scope ListScope, filter domain.PayslipFilter) ([]*entities.Payslip, error) {
	var payslips []*entities.Payslip

	query := r.db.WithContext(ctx).Model(&entities.Payslip{})

	if scope.OwnerID != uuid.Nil {
		query = query.Where("owner_id = ?", scope.OwnerID)
	} else if scope.EmployeeEmail != "" {
		query = query.Where("employee_email = ?", scope.EmployeeEmail)
	}

	if filter.Period != "" {
		query = query.Where("period = ?", filter.Period)
	}
	if filter.CUIL != "" {
		query = query.Where("employee_cuil = ?", filter.CUIL)
	}

	if err := query.
		Order("period desc").
		Order("employee_cuil asc").
		Order("employee_full_name asc").
		Find(&payslips).Error; err != nil {
		return nil, err
	}

	return payslips, nil
}

// LookupByCUIL is deliberately not owner-scoped: the pre-fill works across
// every record the system knows, matching the latest period for the CUIL.
func (r *payslipRepository) LookupByCUIL(ctx context.Context, cuil string) (*entities.Payslip, error) {
	var payslip entities.Payslip
	if err := r.db.WithContext(ctx).
		Where("employee_cuil = ?", cuil).
		Order("period desc").
		First(&payslip).Error; err != nil {
		return nil, err
	}
	return &payslip, nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id uint) (*entities.Payslip, error) {
	var payslip entities.Payslip
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payslip).Error; err != nil {
		return nil, err
	}
	return &payslip, nil
}

func (r *payslipRepository) Create(ctx context.Context, payslip *entities.Payslip) error {
	if err := r.db.WithContext(ctx).Create(payslip).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmployeeEmailTaken
		}
		return err
	}
	return nil
}

// Update patches only the supplied columns, scoped by id and owner. A target
// not owned by the caller affects zero rows; that is reported through the
// count, not as an error.
func (r *payslipRepository) Update(ctx context.Context, id uint, ownerID uuid.UUID, patch map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entities.Payslip{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(patch)
	return result.RowsAffected, result.Error
}

func (r *payslipRepository) Delete(ctx context.Context, id uint, ownerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entities.Payslip{})
	return result.RowsAffected, result.Error
}

// MarkSigned flips the acknowledgment flag. Setting true on an already-signed
// record is a no-op success, which makes the call idempotent.
func (r *payslipRepository) MarkSigned(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entities.Payslip{}).
		Where("id = ?", id).
		Update("signed", true).Error
}
