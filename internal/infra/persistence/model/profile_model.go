package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TeachingInstitutionModel mirrors the 'teaching_institutions' table. AccountID references accounts.id.
type TeachingInstitutionModel struct {
	AccountID     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Kind          *string        `gorm:"type:varchar(60)"`
	Name          *string        `gorm:"type:varchar(150)"`
	Location      *string        `gorm:"type:varchar(150)"`
	TeachingAreas pq.StringArray `gorm:"type:text[]"`
	StudentCount  *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (TeachingInstitutionModel) TableName() string {
	return "teaching_institutions"
}

// CompanySponsorModel mirrors the 'company_sponsors' table. AccountID references accounts.id.
type CompanySponsorModel struct {
	AccountID      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyName    *string        `gorm:"type:varchar(150)"`
	Sector         *string        `gorm:"type:varchar(100)"`
	SizeTier       *string        `gorm:"type:varchar(40)"`
	Location       *string        `gorm:"type:varchar(150)"`
	OperatingAreas pq.StringArray `gorm:"type:text[]"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (CompanySponsorModel) TableName() string {
	return "company_sponsors"
}

// ContractingInstitutionModel mirrors the 'contracting_institutions' table. AccountID references accounts.id.
type ContractingInstitutionModel struct {
	AccountID      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Kind           *string        `gorm:"type:varchar(60)"`
	Location       *string        `gorm:"type:varchar(150)"`
	InterestAreas  pq.StringArray `gorm:"type:text[]"`
	SocialPrograms pq.StringArray `gorm:"type:text[]"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ContractingInstitutionModel) TableName() string {
	return "contracting_institutions"
}
