package store

import (
	"crmconsole-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the typed boundary to the record backend. Implementations must
// return gorm.ErrRecordNotFound when a keyed lookup or update misses.
type Store interface {
	// Profiles
	ListProfiles() ([]models.Profile, error)
	CountProfiles() (int64, error)
	FindProfile(id uuid.UUID) (models.Profile, error)
	FindProfileByEmail(email string) (models.Profile, error)
	CreateProfile(profile models.Profile) (models.Profile, error)
	UpdateProfile(id uuid.UUID, fields map[string]interface{}) error

	// CRM
	ListDeals() ([]models.Deal, error)
	InsertDeal(deal models.Deal) (models.Deal, error)
	ListActiveCustomers() ([]models.Customer, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewGorm wraps a gorm connection in the Store interface.
func NewGorm(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ListProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.db.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *gormStore) CountProfiles() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Profile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *gormStore) FindProfile(id uuid.UUID) (models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "id = ?", id).Error
	return profile, err
}

func (s *gormStore) FindProfileByEmail(email string) (models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "email = ?", email).Error
	return profile, err
}

func (s *gormStore) CreateProfile(profile models.Profile) (models.Profile, error) {
	if err := s.db.Create(&profile).Error; err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (s *gormStore) UpdateProfile(id uuid.UUID, fields map[string]interface{}) error {
	result := s.db.Model(&models.Profile{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) ListDeals() ([]models.Deal, error) {
	var deals []models.Deal
	err := s.db.Preload("Customer").Order("created_at DESC").Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}

func (s *gormStore) InsertDeal(deal models.Deal) (models.Deal, error) {
	if err := s.db.Create(&deal).Error; err != nil {
		return models.Deal{}, err
	}
	// Reload with the embedded customer so callers get the join-read shape.
	var created models.Deal
	if err := s.db.Preload("Customer").First(&created, "id = ?", deal.ID).Error; err != nil {
		return models.Deal{}, err
	}
	return created, nil
}

func (s *gormStore) ListActiveCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.Where("status = ?", models.CustomerActive).
		Order("name").Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
