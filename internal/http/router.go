package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"theater-backend/internal/handlers"
	"theater-backend/internal/live"
	"theater-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	totpHandler *handlers.TOTPHandler,
	userHandler *handlers.UserHandler,
	showHandler *handlers.ShowHandler,
	eventHandler *handlers.EventHandler,
	reservationHandler *handlers.ReservationHandler,
	paymentHandler *handlers.PaymentHandler,
	paymentLinkHandler *handlers.PaymentLinkHandler,
	bulkHandler *handlers.BulkHandler,
	waitlistHandler *handlers.WaitlistHandler,
	customerHandler *handlers.CustomerHandler,
	statsHandler *handlers.StatsHandler,
	settingHandler *handlers.SettingHandler,
	merchandiseHandler *handlers.MerchandiseHandler,
	auditHandler *handlers.AuditHandler,
	archiveHandler *handlers.ArchiveHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-totp", authHandler.VerifyTOTP).Methods("POST")

	// Public API routes - booking site configuration and catalog
	r.HandleFunc("/api/public/config", settingHandler.GetPublicConfig).Methods("GET")
	r.HandleFunc("/api/public/merchandise", merchandiseHandler.ListPublicItems).Methods("GET")

	// Payment gateway webhook (signature-verified, not JWT-authenticated)
	r.HandleFunc("/api/payments/webhook", paymentLinkHandler.HandleWebhook).Methods("POST")

	// Protected API routes - session
	authAPI := r.PathPrefix("/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/change-password", authHandler.ChangePassword).Methods("POST")

	// Protected API routes - TOTP enrollment (any authenticated user)
	totpAPI := r.PathPrefix("/api/totp").Subrouter()
	totpAPI.Use(authMiddleware.Authenticate)
	totpAPI.HandleFunc("/setup", totpHandler.Setup).Methods("POST")
	totpAPI.HandleFunc("/confirm", totpHandler.ConfirmSetup).Methods("POST")
	totpAPI.HandleFunc("/disable", totpHandler.Disable).Methods("POST")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}/active", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.SetActive)).ServeHTTP).Methods("PATCH")
	usersAPI.HandleFunc("/login-history", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.LoginHistory)).ServeHTTP).Methods("GET")

	// Protected API routes - Shows (admin manages, managers view)
	showsAPI := r.PathPrefix("/api/shows").Subrouter()
	showsAPI.Use(authMiddleware.Authenticate)
	showsAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(showHandler.CreateShow)).ServeHTTP).Methods("POST")
	showsAPI.HandleFunc("", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(showHandler.ListShows)).ServeHTTP).Methods("GET")
	showsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(showHandler.GetShow)).ServeHTTP).Methods("GET")
	showsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(showHandler.UpdateShow)).ServeHTTP).Methods("PUT")

	// Protected API routes - Events
	eventsAPI := r.PathPrefix("/api/events").Subrouter()
	eventsAPI.Use(authMiddleware.Authenticate)
	eventsAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(eventHandler.CreateEvent)).ServeHTTP).Methods("POST")
	eventsAPI.HandleFunc("", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(eventHandler.ListEvents)).ServeHTTP).Methods("GET")
	eventsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(eventHandler.GetEvent)).ServeHTTP).Methods("GET")
	eventsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(eventHandler.UpdateEvent)).ServeHTTP).Methods("PUT")
	eventsAPI.HandleFunc("/{id}/duplicate", authMiddleware.RequireRole("admin")(http.HandlerFunc(eventHandler.Duplicate)).ServeHTTP).Methods("POST")
	eventsAPI.HandleFunc("/{id}/occupancy", authMiddleware.RequireRole("admin", "manager", "host")(http.HandlerFunc(eventHandler.GetOccupancy)).ServeHTTP).Methods("GET")

	// Protected API routes - Reservations (hosts only check in)
	reservationsAPI := r.PathPrefix("/api/reservations").Subrouter()
	reservationsAPI.Use(authMiddleware.Authenticate)
	reservationsAPI.HandleFunc("", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reservationHandler.CreateReservation)).ServeHTTP).Methods("POST")
	reservationsAPI.HandleFunc("", authMiddleware.RequireRole("admin", "manager", "host")(http.HandlerFunc(reservationHandler.ListReservations)).ServeHTTP).Methods("GET")
	reservationsAPI.HandleFunc("/options", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reservationHandler.CreateOption)).ServeHTTP).Methods("POST")
	reservationsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin", "manager", "host")(http.HandlerFunc(reservationHandler.GetReservation)).ServeHTTP).Methods("GET")
	reservationsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reservationHandler.UpdateReservation)).ServeHTTP).Methods("PUT")
	reservationsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(reservationHandler.DeleteReservation)).ServeHTTP).Methods("DELETE")
	reservationsAPI.HandleFunc("/{id}/status", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reservationHandler.UpdateStatus)).ServeHTTP).Methods("PUT")
	reservationsAPI.HandleFunc("/{id}/confirm", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reservationHandler.Confirm)).ServeHTTP).Methods("POST")
	reservationsAPI.HandleFunc("/{id}/reject", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reservationHandler.Reject)).ServeHTTP).Methods("POST")
	reservationsAPI.HandleFunc("/{id}/cancel", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reservationHandler.Cancel)).ServeHTTP).Methods("POST")
	reservationsAPI.HandleFunc("/{id}/check-in", authMiddleware.RequireRole("admin", "manager", "host")(http.HandlerFunc(reservationHandler.CheckIn)).ServeHTTP).Methods("POST")
	reservationsAPI.HandleFunc("/{id}/merchandise", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(merchandiseHandler.GetReservationLines)).ServeHTTP).Methods("GET")

	// Protected API routes - Payments and refunds
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("/reservations/{id}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(paymentHandler.RecordPayment)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/reservations/{id}/refunds", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(paymentHandler.RecordRefund)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/reservations/{id}/summary", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(paymentHandler.GetSummary)).ServeHTTP).Methods("GET")
	paymentsAPI.HandleFunc("/reservations/{id}/ledger", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(paymentHandler.GetLedger)).ServeHTTP).Methods("GET")
	paymentsAPI.HandleFunc("/gateway/status", paymentLinkHandler.GetStatus).Methods("GET")
	paymentsAPI.HandleFunc("/reservations/{id}/links", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(paymentLinkHandler.CreateLink)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/reservations/{id}/links", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(paymentLinkHandler.ListLinks)).ServeHTTP).Methods("GET")

	// Protected API routes - Bulk operations
	bulkAPI := r.PathPrefix("/api/bulk").Subrouter()
	bulkAPI.Use(authMiddleware.Authenticate)
	bulkAPI.HandleFunc("/confirm", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(bulkHandler.Confirm)).ServeHTTP).Methods("POST")
	bulkAPI.HandleFunc("/reject", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(bulkHandler.Reject)).ServeHTTP).Methods("POST")
	bulkAPI.HandleFunc("/delete", authMiddleware.RequireRole("admin")(http.HandlerFunc(bulkHandler.Delete)).ServeHTTP).Methods("POST")
	bulkAPI.HandleFunc("/mark-paid", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(bulkHandler.MarkPaid)).ServeHTTP).Methods("POST")

	// Protected API routes - Waitlist
	waitlistAPI := r.PathPrefix("/api/waitlist").Subrouter()
	waitlistAPI.Use(authMiddleware.Authenticate)
	waitlistAPI.HandleFunc("", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(waitlistHandler.AddEntry)).ServeHTTP).Methods("POST")
	waitlistAPI.HandleFunc("/event/{event_id}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(waitlistHandler.ListByEvent)).ServeHTTP).Methods("GET")
	waitlistAPI.HandleFunc("/{id}/contacted", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(waitlistHandler.MarkContacted)).ServeHTTP).Methods("POST")
	waitlistAPI.HandleFunc("/{id}/convert", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(waitlistHandler.Convert)).ServeHTTP).Methods("POST")
	waitlistAPI.HandleFunc("/{id}/status", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(waitlistHandler.UpdateStatus)).ServeHTTP).Methods("PUT")
	waitlistAPI.HandleFunc("/{id}/priority", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(waitlistHandler.SetPriority)).ServeHTTP).Methods("PUT")

	// Protected API routes - Customer profiles
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(customerHandler.ListProfiles)).ServeHTTP).Methods("GET")
	customersAPI.HandleFunc("/{email}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(customerHandler.GetDetail)).ServeHTTP).Methods("GET")

	// Protected API routes - Dashboard stats
	statsAPI := r.PathPrefix("/api/stats").Subrouter()
	statsAPI.Use(authMiddleware.Authenticate)
	statsAPI.HandleFunc("/dashboard", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(statsHandler.Dashboard)).ServeHTTP).Methods("GET")

	// Protected API routes - System Settings
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(settingHandler.ListSettings)).ServeHTTP).Methods("GET")
	settingsAPI.HandleFunc("/{key}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(settingHandler.GetSetting)).ServeHTTP).Methods("GET")
	settingsAPI.HandleFunc("/{key}", authMiddleware.RequireRole("admin")(http.HandlerFunc(settingHandler.SetSetting)).ServeHTTP).Methods("PUT")

	// Protected API routes - Merchandise catalog
	merchandiseAPI := r.PathPrefix("/api/merchandise").Subrouter()
	merchandiseAPI.Use(authMiddleware.Authenticate)
	merchandiseAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(merchandiseHandler.CreateItem)).ServeHTTP).Methods("POST")
	merchandiseAPI.HandleFunc("", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(merchandiseHandler.ListItems)).ServeHTTP).Methods("GET")
	merchandiseAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(merchandiseHandler.UpdateItem)).ServeHTTP).Methods("PUT")

	// Protected API routes - Audit log (admin only)
	auditAPI := r.PathPrefix("/api/audit").Subrouter()
	auditAPI.Use(authMiddleware.Authenticate)
	auditAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(auditHandler.ListEntries)).ServeHTTP).Methods("GET")
	auditAPI.HandleFunc("/export/json", authMiddleware.RequireRole("admin")(http.HandlerFunc(auditHandler.ExportJSON)).ServeHTTP).Methods("GET")
	auditAPI.HandleFunc("/export/csv", authMiddleware.RequireRole("admin")(http.HandlerFunc(auditHandler.ExportCSV)).ServeHTTP).Methods("GET")

	// Protected API routes - Deleted reservation archives (admin only)
	archivesAPI := r.PathPrefix("/api/archives").Subrouter()
	archivesAPI.Use(authMiddleware.Authenticate)
	archivesAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(archiveHandler.ListArchives)).ServeHTTP).Methods("GET")
	archivesAPI.HandleFunc("/reservation/{reservation_id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(archiveHandler.GetByReservation)).ServeHTTP).Methods("GET")

	// Protected API routes - Reports and exports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/events/{id}/guest-list.pdf", authMiddleware.RequireRole("admin", "manager", "host")(http.HandlerFunc(reportHandler.GetEventPDF)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/events/{id}/guest-list.csv", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reportHandler.GetEventCSV)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/events/{id}/invoices.zip", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reportHandler.GetBulkInvoiceZip)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/events/{id}/invoices/upload", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reportHandler.UploadBulkInvoiceZip)).ServeHTTP).Methods("POST")
	reportsAPI.HandleFunc("/reservations/{id}/invoice.pdf", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reportHandler.GetInvoicePDF)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/payments.csv", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reportHandler.GetPaymentsCSV)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/reservations.xlsx", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reportHandler.GetReservationsExcel)).ServeHTTP).Methods("GET")
	reportsAPI.HandleFunc("/exports", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(reportHandler.ListStoredExports)).ServeHTTP).Methods("GET")

	// Live updates for the admin dashboard
	wsAPI := r.PathPrefix("/ws").Subrouter()
	wsAPI.Use(authMiddleware.Authenticate)
	wsAPI.HandleFunc("", live.ServeWS)

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
