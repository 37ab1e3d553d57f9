package screens

import (
	"sync"

	"crmconsole-backend/models"
	"crmconsole-backend/store"

	"github.com/google/uuid"
)

// fakeStore wraps the memory store so single operations can be overridden
// or made to fail.
type fakeStore struct {
	*store.MemoryStore

	mu              sync.Mutex
	listProfilesFn  func() ([]models.Profile, error)
	countProfilesFn func() (int64, error)
	updateProfileFn func(uuid.UUID, map[string]interface{}) error
	listDealsFn     func() ([]models.Deal, error)
	insertDealFn    func(models.Deal) (models.Deal, error)

	updateCalls int
	insertCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{MemoryStore: store.NewMemory()}
}

func (f *fakeStore) ListProfiles() ([]models.Profile, error) {
	if f.listProfilesFn != nil {
		return f.listProfilesFn()
	}
	return f.MemoryStore.ListProfiles()
}

func (f *fakeStore) CountProfiles() (int64, error) {
	if f.countProfilesFn != nil {
		return f.countProfilesFn()
	}
	return f.MemoryStore.CountProfiles()
}

func (f *fakeStore) UpdateProfile(id uuid.UUID, fields map[string]interface{}) error {
	f.mu.Lock()
	f.updateCalls++
	f.mu.Unlock()
	if f.updateProfileFn != nil {
		return f.updateProfileFn(id, fields)
	}
	return f.MemoryStore.UpdateProfile(id, fields)
}

func (f *fakeStore) ListDeals() ([]models.Deal, error) {
	if f.listDealsFn != nil {
		return f.listDealsFn()
	}
	return f.MemoryStore.ListDeals()
}

func (f *fakeStore) InsertDeal(deal models.Deal) (models.Deal, error) {
	f.mu.Lock()
	f.insertCalls++
	f.mu.Unlock()
	if f.insertDealFn != nil {
		return f.insertDealFn(deal)
	}
	return f.MemoryStore.InsertDeal(deal)
}

// recordedPayments captures PaymentApproved calls.
type recordedPayments struct {
	approved []models.Profile
}

func (r *recordedPayments) PaymentApproved(profile models.Profile) {
	r.approved = append(r.approved, profile)
}

func strPtr(s string) *string {
	return &s
}
