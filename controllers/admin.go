package controllers

import (
	"errors"
	"net/http"

	"crmconsole-backend/screens"
	"crmconsole-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminController exposes the user-administration screen. Every response
// carries the screen's visible state plus any notifications raised since the
// last call.
type AdminController struct {
	Screens *screens.Registry
}

type userScreenResponse struct {
	screens.UserAdminState
	Notifications []screens.Notification `json:"notifications"`
}

// staffID extracts the authenticated staff member's id from the JWT claims
// placed in the request context.
func staffID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("userId")
	if !exists {
		return uuid.Nil, errors.New("user id not in context")
	}
	id, ok := raw.(string)
	if !ok {
		return uuid.Nil, errors.New("user id claim is not a string")
	}
	return uuid.Parse(id)
}

func (a *AdminController) screen(c *gin.Context) (*screens.UserAdminScreen, *screens.Feed, bool) {
	id, err := staffID(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return nil, nil, false
	}
	screen, feed := a.Screens.UserAdmin(id)
	return screen, feed, true
}

func respondUserScreen(c *gin.Context, screen *screens.UserAdminScreen, feed *screens.Feed) {
	c.JSON(http.StatusOK, userScreenResponse{
		UserAdminState: screen.State(c.Query("search")),
		Notifications:  feed.Drain(),
	})
}

// GetUsers returns the screen state with the search filter applied.
func (a *AdminController) GetUsers(c *gin.Context) {
	screen, feed, ok := a.screen(c)
	if !ok {
		return
	}
	respondUserScreen(c, screen, feed)
}

// RefreshUsers re-issues the full read and the total count.
func (a *AdminController) RefreshUsers(c *gin.Context) {
	screen, feed, ok := a.screen(c)
	if !ok {
		return
	}
	screen.Refresh()
	respondUserScreen(c, screen, feed)
}

// ApproveUser releases the member's access.
func (a *AdminController) ApproveUser(c *gin.Context) {
	screen, feed, ok := a.screen(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	screen.ApprovePayment(userID)
	respondUserScreen(c, screen, feed)
}

type toggleAdminInput struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// ToggleAdmin flips the admin capability relative to the current value sent
// by the client.
func (a *AdminController) ToggleAdmin(c *gin.Context) {
	screen, feed, ok := a.screen(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	var input toggleAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	screen.ToggleAdmin(userID, *input.IsAdmin)
	respondUserScreen(c, screen, feed)
}

// OpenEdit opens the edit dialog seeded from the selected record.
func (a *AdminController) OpenEdit(c *gin.Context) {
	screen, feed, ok := a.screen(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	screen.OpenEdit(userID)
	respondUserScreen(c, screen, feed)
}

// SaveEdit writes the edit dialog's fields.
func (a *AdminController) SaveEdit(c *gin.Context) {
	screen, feed, ok := a.screen(c)
	if !ok {
		return
	}
	var form screens.UserEditForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if form.Whatsapp != "" && !utils.ValidateWhatsapp(form.Whatsapp) {
		utils.RespondWithError(c, http.StatusBadRequest, "Formato de WhatsApp inválido")
		return
	}
	screen.SaveEdit(form)
	respondUserScreen(c, screen, feed)
}

// CancelEdit closes the edit dialog.
func (a *AdminController) CancelEdit(c *gin.Context) {
	screen, feed, ok := a.screen(c)
	if !ok {
		return
	}
	screen.CancelEdit()
	respondUserScreen(c, screen, feed)
}
