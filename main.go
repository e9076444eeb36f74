package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plantmon/config"
	"plantmon/controllers"
	"plantmon/mailer"
	"plantmon/middlewares"
	"plantmon/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	godotenv.Load()
	cfg := config.Load()

	// Connect to PostgreSQL database
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Set the global DB in the config package and migrate models
	config.DB = db
	controllers.MigrateModels(db)

	// Notification emitter with its mail worker, then the alert scanner
	smtp := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	renderer := mailer.NewRenderer(cfg.TemplateDir)
	emitter := worker.NewEmitter(db, smtp, renderer, cfg.DashboardURL)
	emitter.Broadcast = controllers.BroadcastNotification

	scanner := worker.NewScanner(db, emitter, worker.ScannerConfig{
		Enabled:      cfg.ScanEnabled,
		Interval:     cfg.ScanInterval,
		StartupDelay: cfg.ScanStartupDelay,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scannerDone := make(chan struct{})
	go func() {
		defer close(scannerDone)
		scanner.Run(ctx)
	}()

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.DashboardURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes: the serial bridge posts readings without a user token
	r.POST("/sensor-data", controllers.ReceiveReading)

	// Protected routes using auth middleware
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/ws", controllers.HandleWebSocket)
	auth.POST("/devices", controllers.RegisterDevice)
	auth.GET("/devices", controllers.GetDevices)
	auth.POST("/plants", controllers.CreatePlant)
	auth.GET("/plants", controllers.GetPlants)
	auth.POST("/pairings", controllers.CreatePairing)
	auth.GET("/pairings", controllers.GetPairings)
	auth.DELETE("/pairings/:id", controllers.DeletePairing)
	auth.GET("/history", controllers.GetHistory)
	auth.GET("/notifications", controllers.GetNotifications)
	auth.PUT("/notifications/:id/read", controllers.MarkNotificationRead)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	<-scannerDone
	emitter.Close()
	log.Println("Stopped.")
}
