package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	CUIL         string    `gorm:"type:varchar(11)" json:"cuil"`
	EmployerName string    `json:"employer_name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	Phone        string    `json:"phone"`
	Password     string    `json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	Verified     bool      `gorm:"default:false" json:"verified"`

	Payslips []*Payslip `gorm:"foreignKey:OwnerID" json:"-"`
	Timestamp
}
