package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerActive is the only status eligible as a deal counterparty.
const CustomerActive = "ativo"

// Customer is a CRM contact. The console never creates or edits customers;
// they arrive through a separate intake flow.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Status    string    `gorm:"type:varchar(20);not null;default:'ativo'" json:"status"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func (Customer) TableName() string {
	return "crm_customers"
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
