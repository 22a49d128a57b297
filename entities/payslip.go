package entities

import (
	"github.com/google/uuid"
)

// Payslip is one salary receipt for one employee and one pay period.
// Employee and employer fields are denormalized on purpose: records must
// survive employees that never register an account.
type Payslip struct {
	ID               uint      `gorm:"primary_key;autoIncrement" json:"id"`
	OwnerID          uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	EmployeeCUIL     string    `gorm:"type:varchar(11);index" json:"employee_cuil"`
	EmployeeFullName string    `json:"employee_full_name"`
	EmployeeEmail    string    `gorm:"index" json:"employee_email"`
	EmployerCUIT     string    `gorm:"type:varchar(11)" json:"employer_cuit"`
	EmployerName     string    `json:"employer_name"`
	Period           string    `gorm:"type:varchar(7);index" json:"period"` // "YYYY-MM"
	PdfURL           string    `json:"pdf_url"`
	PdfFilename      string    `json:"pdf_filename"`
	Signed           bool      `gorm:"default:false" json:"signed"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
	Timestamp
}
