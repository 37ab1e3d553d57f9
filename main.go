package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"crmconsole-backend/config"
	"crmconsole-backend/models"
	"crmconsole-backend/routes"
	"crmconsole-backend/screens"
	"crmconsole-backend/services"
	"crmconsole-backend/store"
	"crmconsole-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var st store.Store
	if dsn := os.Getenv("DB_URL"); dsn != "" {
		db, err := config.ConnectDB(dsn)
		if err != nil {
			log.Fatalf("Failed to connect database: %v", err)
		}
		db.AutoMigrate(
			&models.Profile{},
			&models.Customer{},
			&models.Deal{},
		)
		st = store.NewGorm(db)
	} else {
		log.Println("DB_URL not set, using in-memory store")
		st = store.NewMemory()
	}

	adminEmail := envOrDefault("ADMIN_EMAIL", "admin@admin.com")
	adminPassword := envOrDefault("ADMIN_PASSWORD", "admin123")
	if err := seedDefaultAdmin(st, adminEmail, adminPassword); err != nil {
		log.Printf("Failed to seed default admin: %v", err)
	}

	paymentService := services.NewPaymentNotificationService(st)
	var payments screens.PaymentNotifier
	if paymentService.Enabled() {
		payments = paymentService
		paymentService.StartScheduler()
	} else {
		log.Println("Twilio not configured, payment messages disabled")
	}

	registry := screens.NewRegistry(st, payments)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(st, registry, adminEmail, adminPassword)
	printRoutes(r)
	r.Run(":" + port)
}

// seedDefaultAdmin provisions the default admin shortcut account when it
// does not exist yet.
func seedDefaultAdmin(st store.Store, email, password string) error {
	_, err := st.FindProfileByEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	name := "Administrador"
	_, err = st.CreateProfile(models.Profile{
		FullName:      &name,
		Email:         email,
		PaymentStatus: models.PaymentApproved,
		IsAdmin:       true,
		PasswordHash:  hashed,
	})
	if err == nil {
		log.Printf("Default admin %s provisioned", email)
	}
	return err
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
