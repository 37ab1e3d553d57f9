package controllers

import (
	"errors"
	"net/http"
	"strings"

	"crmconsole-backend/store"
	"crmconsole-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthController owns the sign-in surface. The default admin shortcut uses
// fixed credentials so a developer can reach the console on a fresh install.
type AuthController struct {
	Store         store.Store
	AdminEmail    string
	AdminPassword string
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // email
	Password   string `json:"password" binding:"required"`
}

// Login checks credentials against the profile row and issues a JWT.
func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	profile, err := a.Store.FindProfileByEmail(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, profile.PasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(profile.ID.String(), profile.IsAdmin)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	expiryHours := 24
	maxAge := expiryHours * 3600

	c.SetCookie(
		"token",
		token,
		maxAge,
		"/",
		"",
		true,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        profile.ID,
			"email":     profile.Email,
			"full_name": profile.FullName,
			"is_admin":  profile.IsAdmin,
		},
	})
}

// AdminLogin signs in with the pre-provisioned default admin credentials.
// When that account is missing it reports a provisioning hint instead of a
// generic credential error.
func (a *AuthController) AdminLogin(c *gin.Context) {
	profile, err := a.Store.FindProfileByEmail(a.AdminEmail)
	if err != nil || !utils.CheckPasswordHash(a.AdminPassword, profile.PasswordHash) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":       "Usuário admin não encontrado",
			"description": "O usuário " + a.AdminEmail + " ainda não foi criado.",
		})
		return
	}

	token, err := utils.GenerateToken(profile.ID.String(), profile.IsAdmin)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        profile.ID,
			"email":     profile.Email,
			"full_name": profile.FullName,
			"is_admin":  profile.IsAdmin,
		},
		"message": "Usando credenciais de administrador padrão.",
	})
}

// Me returns the signed-in staff member's profile.
func (a *AuthController) Me(c *gin.Context) {
	id, err := staffID(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	profile, findErr := a.Store.FindProfile(id)
	if findErr != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        profile.ID,
			"email":     profile.Email,
			"full_name": profile.FullName,
			"is_admin":  profile.IsAdmin,
		},
	})
}
