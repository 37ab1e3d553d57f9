package screens

import (
	"errors"
	"testing"
	"time"

	"crmconsole-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDealScreen(t *testing.T, customers ...models.Customer) (*DealScreen, *fakeStore, *Feed) {
	t.Helper()
	fs := newFakeStore()
	for _, c := range customers {
		fs.SeedCustomer(c)
	}
	feed := NewFeed()
	screen := NewDealScreen(fs, feed)
	screen.Refresh()
	feed.Drain()
	return screen, fs, feed
}

func TestRefreshLoadsDealsAndEligibleCustomers(t *testing.T) {
	fs := newFakeStore()
	active := fs.SeedCustomer(models.Customer{Name: "Ana Souza", Status: models.CustomerActive})
	fs.SeedCustomer(models.Customer{Name: "Inativo Ltda", Status: "inativo"})
	fs.InsertDeal(models.Deal{CustomerID: active.ID, Title: "Contrato X"})

	screen := NewDealScreen(fs, NewFeed())
	screen.Refresh()

	state := screen.State("", "")
	require.Len(t, state.Deals, 1)
	assert.Equal(t, "Ana Souza", state.Deals[0].Customer.Name)
	require.Len(t, state.Customers, 1) // only status ativo is eligible
	assert.Equal(t, active.ID, state.Customers[0].ID)
	assert.False(t, state.Loading)
}

func TestRefreshFailureKeepsPriorDeals(t *testing.T) {
	customer := models.Customer{Name: "Ana Souza"}
	screen, fs, feed := newDealScreen(t, customer)
	fs.InsertDeal(models.Deal{CustomerID: screen.State("", "").Customers[0].ID, Title: "Contrato X"})
	screen.Refresh()
	before := screen.State("", "").Deals

	fs.listDealsFn = func() ([]models.Deal, error) {
		return nil, errors.New("connection reset")
	}
	screen.Refresh()

	state := screen.State("", "")
	assert.Equal(t, before, state.Deals)
	assert.False(t, state.Loading)

	notices := feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "Erro ao carregar negócios", notices[0].Title)
	assert.Equal(t, "connection reset", notices[0].Description)
}

func TestStartNewDealWithoutCustomersStaysIdle(t *testing.T) {
	screen, fs, feed := newDealScreen(t)
	calls := fs.insertCalls

	screen.StartNewDeal()

	assert.Equal(t, DialogIdle, screen.State("", "").Dialog.Kind)
	assert.Equal(t, calls, fs.insertCalls)
	notices := feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Kind)
	assert.Equal(t, "Nenhum cliente disponível", notices[0].Title)
}

func TestCreateDealWorkflow(t *testing.T) {
	screen, _, feed := newDealScreen(t, models.Customer{Name: "Ana Souza"})
	customerID := screen.State("", "").Customers[0].ID

	screen.StartNewDeal()
	assert.Equal(t, DialogCustomerPicking, screen.State("", "").Dialog.Kind)

	screen.PickCustomer(customerID)
	dialog := screen.State("", "").Dialog
	assert.Equal(t, DialogDealEditing, dialog.Kind)
	assert.Equal(t, customerID, dialog.CustomerID)

	// Scenario: title only, no value or status supplied.
	screen.SaveDeal(DealForm{Title: "Contrato X"})

	state := screen.State("", "")
	assert.Equal(t, DialogIdle, state.Dialog.Kind)
	require.Len(t, state.Deals, 1)
	created := state.Deals[0]
	assert.Equal(t, "Contrato X", created.Title)
	assert.Equal(t, float64(0), created.Value)
	assert.Equal(t, models.DealProspecting, created.Status)
	assert.Equal(t, customerID, created.CustomerID)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	notices := feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "Negócio adicionado", notices[0].Title)
}

func TestCreatedDealIsPrepended(t *testing.T) {
	screen, fs, _ := newDealScreen(t, models.Customer{Name: "Ana Souza"})
	customerID := screen.State("", "").Customers[0].ID
	fs.InsertDeal(models.Deal{CustomerID: customerID, Title: "Antigo"})
	screen.Refresh()

	screen.StartNewDeal()
	screen.PickCustomer(customerID)
	screen.SaveDeal(DealForm{Title: "Novo"})

	deals := screen.State("", "").Deals
	require.Len(t, deals, 2)
	assert.Equal(t, "Novo", deals[0].Title)
}

func TestSaveDealWithoutCustomerIsRefused(t *testing.T) {
	screen, fs, _ := newDealScreen(t, models.Customer{Name: "Ana Souza"})
	before := screen.State("", "").Deals
	calls := fs.insertCalls

	// Dialog is Idle: no customer was resolved.
	screen.SaveDeal(DealForm{Title: "Contrato X"})

	assert.Equal(t, calls, fs.insertCalls) // no network call issued
	assert.Equal(t, before, screen.State("", "").Deals)
	assert.Equal(t, DialogIdle, screen.State("", "").Dialog.Kind)
}

func TestSaveDealEmptyTitleIsRefusedBeforeWrite(t *testing.T) {
	screen, fs, feed := newDealScreen(t, models.Customer{Name: "Ana Souza"})
	customerID := screen.State("", "").Customers[0].ID
	screen.StartNewDeal()
	screen.PickCustomer(customerID)
	calls := fs.insertCalls

	screen.SaveDeal(DealForm{Title: "   "})

	assert.Equal(t, calls, fs.insertCalls)
	assert.Equal(t, DialogDealEditing, screen.State("", "").Dialog.Kind)
	notices := feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Kind)
}

func TestSaveDealFailureKeepsListAndDialog(t *testing.T) {
	screen, fs, feed := newDealScreen(t, models.Customer{Name: "Ana Souza"})
	customerID := screen.State("", "").Customers[0].ID
	screen.StartNewDeal()
	screen.PickCustomer(customerID)
	before := screen.State("", "")

	fs.insertDealFn = func(models.Deal) (models.Deal, error) {
		return models.Deal{}, errors.New("insert rejected")
	}
	screen.SaveDeal(DealForm{Title: "Contrato X"})

	state := screen.State("", "")
	assert.Equal(t, before.Deals, state.Deals)
	assert.Equal(t, before.Dialog, state.Dialog) // still editing, retry possible

	notices := feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, "Erro ao adicionar negócio", notices[0].Title)
	assert.Equal(t, "insert rejected", notices[0].Description)
}

func TestPickCustomerOutsideEligibleSetIsRejected(t *testing.T) {
	screen, _, feed := newDealScreen(t, models.Customer{Name: "Ana Souza"})
	screen.StartNewDeal()

	screen.PickCustomer(uuid.New())

	assert.Equal(t, DialogCustomerPicking, screen.State("", "").Dialog.Kind)
	notices := feed.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Kind)
}

func TestCancelDiscardsWorkflowPayload(t *testing.T) {
	screen, _, _ := newDealScreen(t, models.Customer{Name: "Ana Souza"})
	customerID := screen.State("", "").Customers[0].ID
	screen.StartNewDeal()
	screen.PickCustomer(customerID)

	screen.Cancel()

	dialog := screen.State("", "").Dialog
	assert.Equal(t, DialogIdle, dialog.Kind)
	assert.Equal(t, uuid.Nil, dialog.CustomerID)
}

func TestViewDealToggles(t *testing.T) {
	screen, fs, _ := newDealScreen(t, models.Customer{Name: "Ana Souza"})
	customerID := screen.State("", "").Customers[0].ID
	created, _ := fs.InsertDeal(models.Deal{CustomerID: customerID, Title: "Contrato X"})
	screen.Refresh()

	screen.ViewDeal(created.ID)
	dialog := screen.State("", "").Dialog
	assert.Equal(t, DialogDealViewing, dialog.Kind)
	assert.Equal(t, created.ID, dialog.DealID)

	screen.Cancel()
	assert.Equal(t, DialogIdle, screen.State("", "").Dialog.Kind)
}

func TestViewDealWhileWorkflowOpenIsIgnored(t *testing.T) {
	screen, _, _ := newDealScreen(t, models.Customer{Name: "Ana Souza"})
	screen.StartNewDeal()

	screen.ViewDeal(uuid.New())

	// Two dialogs at once is unrepresentable; the picker stays open.
	assert.Equal(t, DialogCustomerPicking, screen.State("", "").Dialog.Kind)
}

func TestSaveDealCarriesOptionalFields(t *testing.T) {
	screen, _, _ := newDealScreen(t, models.Customer{Name: "Ana Souza"})
	customerID := screen.State("", "").Customers[0].ID
	screen.StartNewDeal()
	screen.PickCustomer(customerID)

	closeDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	screen.SaveDeal(DealForm{
		Title:             "Proposta site",
		Value:             15000,
		Status:            models.DealProposal,
		ExpectedCloseDate: &closeDate,
		Notes:             "Fechamento previsto para o fim do semestre",
	})

	deals := screen.State("", "").Deals
	require.Len(t, deals, 1)
	assert.Equal(t, float64(15000), deals[0].Value)
	assert.Equal(t, models.DealProposal, deals[0].Status)
	require.NotNil(t, deals[0].ExpectedCloseDate)
	assert.Equal(t, closeDate, *deals[0].ExpectedCloseDate)
	require.NotNil(t, deals[0].Notes)
}
