package screens

import (
	"sync"

	"crmconsole-backend/store"

	"github.com/google/uuid"
)

type session struct {
	users     *UserAdminScreen
	usersFeed *Feed
	deals     *DealScreen
	dealsFeed *Feed
}

// Registry hands out per-staff-session screen instances keyed by the
// authenticated user id. A screen loads its records on first access.
type Registry struct {
	mu       sync.Mutex
	store    store.Store
	payments PaymentNotifier
	sessions map[uuid.UUID]*session
}

func NewRegistry(st store.Store, payments PaymentNotifier) *Registry {
	return &Registry{
		store:    st,
		payments: payments,
		sessions: make(map[uuid.UUID]*session),
	}
}

func (r *Registry) session(staffID uuid.UUID) *session {
	sess, ok := r.sessions[staffID]
	if !ok {
		sess = &session{}
		r.sessions[staffID] = sess
	}
	return sess
}

// UserAdmin returns the staff member's user-administration screen and its
// notification feed, creating and loading it on first access.
func (r *Registry) UserAdmin(staffID uuid.UUID) (*UserAdminScreen, *Feed) {
	r.mu.Lock()
	sess := r.session(staffID)
	if sess.users == nil {
		sess.usersFeed = NewFeed()
		sess.users = NewUserAdminScreen(r.store, sess.usersFeed, r.payments)
		r.mu.Unlock()
		sess.users.Refresh()
		return sess.users, sess.usersFeed
	}
	r.mu.Unlock()
	return sess.users, sess.usersFeed
}

// Deals returns the staff member's pipeline screen and its feed, creating
// and loading it on first access.
func (r *Registry) Deals(staffID uuid.UUID) (*DealScreen, *Feed) {
	r.mu.Lock()
	sess := r.session(staffID)
	if sess.deals == nil {
		sess.dealsFeed = NewFeed()
		sess.deals = NewDealScreen(r.store, sess.dealsFeed)
		r.mu.Unlock()
		sess.deals.Refresh()
		return sess.deals, sess.dealsFeed
	}
	r.mu.Unlock()
	return sess.deals, sess.dealsFeed
}
