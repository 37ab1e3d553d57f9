package store

import (
	"sort"
	"sync"
	"time"

	"crmconsole-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoryStore keeps all records in process memory. It backs local
// development when DB_URL is unset and doubles as the test store.
type MemoryStore struct {
	mu        sync.Mutex
	profiles  map[uuid.UUID]models.Profile
	customers map[uuid.UUID]models.Customer
	deals     map[uuid.UUID]models.Deal
	now       func() time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		profiles:  make(map[uuid.UUID]models.Profile),
		customers: make(map[uuid.UUID]models.Customer),
		deals:     make(map[uuid.UUID]models.Deal),
		now:       time.Now,
	}
}

func (s *MemoryStore) ListProfiles() ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
	return profiles, nil
}

func (s *MemoryStore) CountProfiles() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.profiles)), nil
}

func (s *MemoryStore) FindProfile(id uuid.UUID) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (s *MemoryStore) FindProfileByEmail(email string) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return models.Profile{}, gorm.ErrRecordNotFound
}

func (s *MemoryStore) CreateProfile(profile models.Profile) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.PaymentStatus == "" {
		profile.PaymentStatus = models.PaymentPending
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = s.now()
	}
	s.profiles[profile.ID] = profile
	return profile, nil
}

func (s *MemoryStore) UpdateProfile(id uuid.UUID, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		switch column {
		case "payment_status":
			profile.PaymentStatus = value.(string)
		case "is_admin":
			profile.IsAdmin = value.(bool)
		case "email":
			profile.Email = value.(string)
		case "full_name":
			profile.FullName = nullableString(value)
		case "whatsapp":
			profile.Whatsapp = nullableString(value)
		}
	}
	s.profiles[id] = profile
	return nil
}

func (s *MemoryStore) ListDeals() ([]models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deals := make([]models.Deal, 0, len(s.deals))
	for _, d := range s.deals {
		d.Customer = s.customers[d.CustomerID]
		deals = append(deals, d)
	}
	sort.Slice(deals, func(i, j int) bool {
		return deals[i].CreatedAt.After(deals[j].CreatedAt)
	})
	return deals, nil
}

func (s *MemoryStore) InsertDeal(deal models.Deal) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if deal.ID == uuid.Nil {
		deal.ID = uuid.New()
	}
	if deal.Status == "" {
		deal.Status = models.DealProspecting
	}
	now := s.now()
	deal.CreatedAt = now
	deal.UpdatedAt = now
	deal.Customer = s.customers[deal.CustomerID]
	s.deals[deal.ID] = deal
	return deal, nil
}

func (s *MemoryStore) ListActiveCustomers() ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customers := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if c.Status == models.CustomerActive {
			customers = append(customers, c)
		}
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers, nil
}

// SeedCustomer inserts a customer directly; the console itself has no
// customer write path.
func (s *MemoryStore) SeedCustomer(customer models.Customer) models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if customer.Status == "" {
		customer.Status = models.CustomerActive
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = s.now()
	}
	s.customers[customer.ID] = customer
	return customer
}

func nullableString(value interface{}) *string {
	if value == nil {
		return nil
	}
	s := value.(string)
	return &s
}
