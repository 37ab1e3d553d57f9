package controllers

import (
	"net/http"

	"crmconsole-backend/screens"
	"crmconsole-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CRMController exposes the deal pipeline screen.
type CRMController struct {
	Screens *screens.Registry
}

type dealScreenResponse struct {
	screens.DealScreenState
	Notifications []screens.Notification `json:"notifications"`
}

func (ctl *CRMController) screen(c *gin.Context) (*screens.DealScreen, *screens.Feed, bool) {
	id, err := staffID(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return nil, nil, false
	}
	screen, feed := ctl.Screens.Deals(id)
	return screen, feed, true
}

func respondDealScreen(c *gin.Context, screen *screens.DealScreen, feed *screens.Feed) {
	c.JSON(http.StatusOK, dealScreenResponse{
		DealScreenState: screen.State(c.Query("search"), c.Query("status")),
		Notifications:   feed.Drain(),
	})
}

// GetDeals returns the screen state with search and status filters applied.
func (ctl *CRMController) GetDeals(c *gin.Context) {
	screen, feed, ok := ctl.screen(c)
	if !ok {
		return
	}
	respondDealScreen(c, screen, feed)
}

// RefreshDeals re-issues the deal and eligible-customer reads.
func (ctl *CRMController) RefreshDeals(c *gin.Context) {
	screen, feed, ok := ctl.screen(c)
	if !ok {
		return
	}
	screen.Refresh()
	respondDealScreen(c, screen, feed)
}

// NewDeal starts the creation workflow (customer-picking dialog).
func (ctl *CRMController) NewDeal(c *gin.Context) {
	screen, feed, ok := ctl.screen(c)
	if !ok {
		return
	}
	screen.StartNewDeal()
	respondDealScreen(c, screen, feed)
}

type pickCustomerInput struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// PickCustomer resolves the deal counterparty and advances to the form.
func (ctl *CRMController) PickCustomer(c *gin.Context) {
	screen, feed, ok := ctl.screen(c)
	if !ok {
		return
	}
	var input pickCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	screen.PickCustomer(input.CustomerID)
	respondDealScreen(c, screen, feed)
}

// SaveDeal creates the deal from the form dialog.
func (ctl *CRMController) SaveDeal(c *gin.Context) {
	screen, feed, ok := ctl.screen(c)
	if !ok {
		return
	}
	var form screens.DealForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	screen.SaveDeal(form)
	respondDealScreen(c, screen, feed)
}

// ViewDeal opens the detail dialog for a loaded deal.
func (ctl *CRMController) ViewDeal(c *gin.Context) {
	screen, feed, ok := ctl.screen(c)
	if !ok {
		return
	}
	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid deal ID format")
		return
	}
	screen.ViewDeal(dealID)
	respondDealScreen(c, screen, feed)
}

// CancelDialog closes whatever dialog is open.
func (ctl *CRMController) CancelDialog(c *gin.Context) {
	screen, feed, ok := ctl.screen(c)
	if !ok {
		return
	}
	screen.Cancel()
	respondDealScreen(c, screen, feed)
}
