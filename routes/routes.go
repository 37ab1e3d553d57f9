package routes

import (
	"os"
	"strings"

	"crmconsole-backend/config"
	"crmconsole-backend/controllers"
	"crmconsole-backend/screens"
	"crmconsole-backend/store"
	"crmconsole-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func corsOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}

// SetupRouter assembles the HTTP surface over the injected store and screen
// registry.
func SetupRouter(st store.Store, registry *screens.Registry, adminEmail, adminPassword string) *gin.Engine {
	r := gin.Default()

	origins := corsOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	authController := &controllers.AuthController{
		Store:         st,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	}
	adminController := &controllers.AdminController{Screens: registry}
	crmController := &controllers.CRMController{Screens: registry}

	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/admin-login", authController.AdminLogin)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// User administration screen (admin staff only)
		admin := api.Group("/admin")
		admin.Use(utils.AdminOnly())
		{
			users := admin.Group("/users")
			{
				users.GET("", adminController.GetUsers)
				users.POST("/refresh", adminController.RefreshUsers)
				users.POST("/:id/approve", adminController.ApproveUser)
				users.POST("/:id/toggle-admin", adminController.ToggleAdmin)
				users.POST("/:id/edit", adminController.OpenEdit)
				users.PUT("/:id", adminController.SaveEdit)
				users.POST("/edit/cancel", adminController.CancelEdit)
			}
		}

		// Deal pipeline screen
		crm := api.Group("/crm")
		{
			deals := crm.Group("/deals")
			{
				deals.GET("", crmController.GetDeals)
				deals.POST("", crmController.SaveDeal)
				deals.POST("/refresh", crmController.RefreshDeals)
				deals.POST("/new", crmController.NewDeal)
				deals.POST("/pick-customer", crmController.PickCustomer)
				deals.POST("/:id/view", crmController.ViewDeal)
				deals.POST("/dialog/cancel", crmController.CancelDialog)
			}
		}
	}

	return r
}
