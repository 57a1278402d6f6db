// Package model contains the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string    `gorm:"type:varchar(150);not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Role         string    `gorm:"type:varchar(40);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Verified     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
