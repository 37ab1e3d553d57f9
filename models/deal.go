package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pipeline stages for a Deal.
const (
	DealProspecting = "prospeccao"
	DealQualified   = "qualificado"
	DealProposal    = "proposta"
	DealNegotiation = "negociacao"
	DealClosedWon   = "fechado_ganho"
	DealClosedLost  = "fechado_perdido"
)

// Deal is a pipeline opportunity. Every deal belongs to exactly one
// customer, fixed at creation time.
type Deal struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CustomerID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer          Customer   `gorm:"foreignKey:CustomerID" json:"customer"`
	Title             string     `gorm:"not null" json:"title"`
	Value             float64    `gorm:"type:decimal(10,2);default:0.0" json:"value"`
	Status            string     `gorm:"type:varchar(30);not null;default:'prospeccao'" json:"status"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	Notes             *string    `json:"notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (Deal) TableName() string {
	return "crm_deals"
}

func (d *Deal) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = DealProspecting
	}
	return
}
