package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"theater-backend/internal/auth"
	"theater-backend/internal/cache"
	"theater-backend/internal/config"
	"theater-backend/internal/database"
	"theater-backend/internal/db"
	"theater-backend/internal/handlers"
	"theater-backend/internal/health"
	h "theater-backend/internal/http"
	"theater-backend/internal/live"
	"theater-backend/internal/middleware"
	"theater-backend/internal/models"
	"theater-backend/internal/monitoring"
	"theater-backend/internal/repositories"
	"theater-backend/internal/services"
	"theater-backend/internal/storage"
)

// startAuditDumpLoop periodically ships the previous day's audit entries to
// object storage. Does nothing when storage is not configured.
func startAuditDumpLoop(ctx context.Context, auditService *services.AuditService, uploader *storage.Uploader, interval time.Duration) {
	if uploader == nil {
		log.Println("[AuditDump] Object storage not configured, periodic dumps disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				from := time.Now().Add(-interval)
				data, err := auditService.ExportJSON(ctx, models.AuditLogFilter{DateFrom: &from})
				if err != nil {
					log.Printf("[AuditDump] Export failed: %v", err)
					continue
				}
				name := fmt.Sprintf("audit_log_%s.json", time.Now().UTC().Format("2006-01-02"))
				key, err := uploader.Upload(ctx, name, "application/json", data)
				if err != nil {
					log.Printf("[AuditDump] Upload failed: %v", err)
					continue
				}
				log.Printf("[AuditDump] Uploaded %s", key)
			}
		}
	}()
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	monitoringPort := flag.Int("monitoring-port", 9090, "Monitoring dashboard port")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (settings served from database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	migrator := database.NewMigrator(pool)
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelMigrate()
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Start monitoring dashboard server in background
	go monitoring.NewMonitoringServer(pool, *monitoringPort).Start()

	// Start live update broadcaster for the admin dashboard
	live.Start()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)
	showRepo := repositories.NewShowRepository(pool)
	eventRepo := repositories.NewEventRepository(pool)
	reservationRepo := repositories.NewReservationRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	paymentLinkRepo := repositories.NewPaymentLinkRepository(pool)
	waitlistRepo := repositories.NewWaitlistRepository(pool)
	archiveRepo := repositories.NewArchiveRepository(pool)
	auditLogRepo := repositories.NewAuditLogRepository(pool)
	merchandiseRepo := repositories.NewMerchandiseRepository(pool)
	systemSettingRepo := repositories.NewSystemSettingRepository(pool)

	// Initialize services
	auditService := services.NewAuditService(auditLogRepo)
	userService := services.NewUserService(userRepo, loginLogRepo, jwtManager, auditService)
	totpService := services.NewTOTPService(totpRepo, userRepo, auditService)
	pricingService := services.NewPricingService(systemSettingRepo, merchandiseRepo)
	reservationService := services.NewReservationService(
		reservationRepo, eventRepo, waitlistRepo, paymentRepo,
		archiveRepo, merchandiseRepo, pricingService, auditService, cfg)
	eventService := services.NewEventService(eventRepo, showRepo, reservationService, auditService)
	paymentService := services.NewPaymentService(paymentRepo, reservationRepo, auditService)
	paymentLinkService := services.NewPaymentLinkService(
		cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret,
		paymentLinkRepo, paymentService)
	bulkService := services.NewBulkService(reservationService, paymentService)
	waitlistService := services.NewWaitlistService(waitlistRepo, eventRepo, reservationService, auditService)
	customerService := services.NewCustomerService(reservationRepo)
	statsService := services.NewStatsService(reservationRepo, eventRepo, paymentRepo)
	reportService := services.NewReportService(
		reservationRepo, eventRepo, showRepo, waitlistRepo, paymentRepo, merchandiseRepo)
	excelService := services.NewExcelService(reservationRepo, eventRepo, showRepo, paymentRepo)

	// Object storage for export artifacts (nil when not configured)
	uploader := storage.NewUploader(cfg)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, totpService, jwtManager)
	totpHandler := handlers.NewTOTPHandler(totpService, userService)
	userHandler := handlers.NewUserHandler(userService)
	showHandler := handlers.NewShowHandler(showRepo)
	eventHandler := handlers.NewEventHandler(eventService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	paymentLinkHandler := handlers.NewPaymentLinkHandler(paymentLinkService)
	bulkHandler := handlers.NewBulkHandler(bulkService)
	waitlistHandler := handlers.NewWaitlistHandler(waitlistService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	statsHandler := handlers.NewStatsHandler(statsService)
	settingHandler := handlers.NewSettingHandler(systemSettingRepo)
	merchandiseHandler := handlers.NewMerchandiseHandler(merchandiseRepo)
	auditHandler := handlers.NewAuditHandler(auditService)
	archiveHandler := handlers.NewArchiveHandler(archiveRepo)
	reportHandler := handlers.NewReportHandler(reportService, excelService, uploader)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Create router
	router := h.NewRouter(
		authHandler, totpHandler, userHandler, showHandler, eventHandler,
		reservationHandler, paymentHandler, paymentLinkHandler, bulkHandler,
		waitlistHandler, customerHandler, statsHandler, settingHandler,
		merchandiseHandler, auditHandler, archiveHandler, reportHandler,
		healthHandler, authMiddleware)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Background loops: expired option sweep and the daily audit dump
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	reservationService.StartOptionSweeper(sweeperCtx, time.Hour)
	startAuditDumpLoop(sweeperCtx, auditService, uploader, 24*time.Hour)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopSweeper()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
