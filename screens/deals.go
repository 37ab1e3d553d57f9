package screens

import (
	"log"
	"strings"
	"sync"
	"time"

	"crmconsole-backend/models"
	"crmconsole-backend/store"

	"github.com/google/uuid"
)

// DealForm carries the creation dialog's fields. The owning customer comes
// from the dialog state, never from the form.
type DealForm struct {
	Title             string     `json:"title"`
	Value             float64    `json:"value"`
	Status            string     `json:"status"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	Notes             string     `json:"notes"`
}

// DealScreenState is the pipeline screen state handed to the HTTP layer.
type DealScreenState struct {
	Deals      []models.Deal     `json:"deals"`
	Customers  []models.Customer `json:"customers"`
	Loading    bool              `json:"loading"`
	TotalDeals int               `json:"total_deals"`
	Dialog     DealDialog        `json:"dialog"`
}

// DealScreen coordinates the deal pipeline screen: the loaded deal list
// (with embedded customers), the eligible-customer list, and the dialog
// workflow Idle → CustomerPicking → DealEditing, plus the independent
// Idle ↔ DealViewing toggle.
type DealScreen struct {
	mu     sync.Mutex
	store  store.Store
	notify Notifier

	deals     []models.Deal
	customers []models.Customer
	loading   bool
	dialog    DealDialog

	refreshSeq uint64
	appliedSeq uint64
}

func NewDealScreen(st store.Store, notify Notifier) *DealScreen {
	return &DealScreen{store: st, notify: notify, loading: true, dialog: idleDialog()}
}

// Refresh reloads the deal list (join read, created_at descending) and the
// eligible customers. A customer load failure is logged but not surfaced;
// the screen still works for inspection without it.
func (s *DealScreen) Refresh() {
	s.mu.Lock()
	s.loading = true
	s.refreshSeq++
	seq := s.refreshSeq
	s.mu.Unlock()

	deals, err := s.store.ListDeals()
	customers, custErr := s.store.ListActiveCustomers()

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.appliedSeq {
		return // a newer refresh already landed
	}
	s.appliedSeq = seq
	s.loading = false
	if err != nil {
		log.Printf("erro ao buscar negócios: %v", err)
		s.notify.Error("Erro ao carregar negócios", describe(err, "Não foi possível carregar os negócios."))
	} else {
		s.deals = deals
	}
	if custErr != nil {
		log.Printf("erro ao buscar clientes: %v", custErr)
	} else {
		s.customers = customers
	}
}

// StartNewDeal opens the customer-picking dialog. With zero eligible
// customers the attempt is refused locally and the screen stays Idle.
func (s *DealScreen) StartNewDeal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog.Kind != DialogIdle {
		return
	}
	if len(s.customers) == 0 {
		s.notify.Error("Nenhum cliente disponível", "Adicione clientes antes de criar negócios.")
		return
	}
	s.dialog = DealDialog{Kind: DialogCustomerPicking}
}

// PickCustomer resolves the deal counterparty and advances to the form
// dialog. Only ids from the eligible list are accepted.
func (s *DealScreen) PickCustomer(customerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog.Kind != DialogCustomerPicking {
		return
	}
	for _, c := range s.customers {
		if c.ID == customerID {
			s.dialog = DealDialog{Kind: DialogDealEditing, CustomerID: customerID}
			return
		}
	}
	s.notify.Error("Cliente inválido", "O cliente selecionado não está disponível.")
}

// SaveDeal validates the form, inserts the deal, and prepends the created
// row. Preconditions (resolved customer, non-empty title) are checked before
// any store call; a write failure leaves list and dialog untouched.
func (s *DealScreen) SaveDeal(form DealForm) {
	s.mu.Lock()
	if s.dialog.Kind != DialogDealEditing {
		s.mu.Unlock()
		return
	}
	customerID := s.dialog.CustomerID
	s.mu.Unlock()

	if strings.TrimSpace(form.Title) == "" {
		s.notify.Error("Erro ao adicionar negócio", "O título do negócio é obrigatório.")
		return
	}

	status := form.Status
	if status == "" {
		status = models.DealProspecting
	}
	deal := models.Deal{
		CustomerID:        customerID,
		Title:             form.Title,
		Value:             form.Value,
		Status:            status,
		ExpectedCloseDate: form.ExpectedCloseDate,
	}
	if form.Notes != "" {
		notes := form.Notes
		deal.Notes = &notes
	}

	created, err := s.store.InsertDeal(deal)
	if err != nil {
		log.Printf("erro ao adicionar negócio: %v", err)
		s.notify.Error("Erro ao adicionar negócio", describe(err, "Não foi possível adicionar o negócio."))
		return
	}

	s.mu.Lock()
	s.deals = append([]models.Deal{created}, s.deals...)
	s.dialog = idleDialog()
	s.mu.Unlock()

	s.notify.Success("Negócio adicionado", "O negócio foi adicionado com sucesso.")
}

// ViewDeal opens the detail dialog for a loaded deal.
func (s *DealScreen) ViewDeal(dealID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog.Kind != DialogIdle {
		return
	}
	s.dialog = DealDialog{Kind: DialogDealViewing, DealID: dealID}
}

// Cancel closes whatever dialog is open and discards its payload.
func (s *DealScreen) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = idleDialog()
}

// State returns the visible screen state with search and status filtering
// applied locally over the loaded list.
func (s *DealScreen) State(search, status string) DealScreenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := FilterDeals(s.deals, search, status)
	deals := make([]models.Deal, len(filtered))
	copy(deals, filtered)
	customers := make([]models.Customer, len(s.customers))
	copy(customers, s.customers)
	return DealScreenState{
		Deals:      deals,
		Customers:  customers,
		Loading:    s.loading,
		TotalDeals: len(s.deals),
		Dialog:     s.dialog,
	}
}
