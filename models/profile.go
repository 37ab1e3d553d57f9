package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment status values for a Profile.
const (
	PaymentPending  = "pendente"
	PaymentApproved = "aprovado"
)

// Profile is a staff-managed member record. Registration happens in an
// external flow; the console only reads and mutates existing rows.
type Profile struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FullName      *string   `json:"full_name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Whatsapp      *string   `json:"whatsapp"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'pendente'" json:"payment_status"`
	IsAdmin       bool      `gorm:"default:false" json:"is_admin"`
	PasswordHash  string    `gorm:"not null" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = PaymentPending
	}
	return
}
