package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roastery-backend/internal/handlers"
	"roastery-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	totpHandler *handlers.TOTPHandler,
	userHandler *handlers.UserHandler,
	customerHandler *handlers.CustomerHandler,
	purchaseHandler *handlers.PurchaseHandler,
	transactionHandler *handlers.TransactionHandler,
	catalogHandler *handlers.CatalogHandler,
	statsHandler *handlers.StatsHandler,
	reportHandler *handlers.ReportHandler,
	loginLogHandler *handlers.LoginLogHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Probes and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/totp/verify", authHandler.VerifyTwoFactor).Methods("POST")

	// Authenticated account routes
	accountAPI := r.PathPrefix("/auth").Subrouter()
	accountAPI.Use(authMiddleware.Authenticate)
	accountAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	accountAPI.HandleFunc("/totp/setup", totpHandler.Setup).Methods("POST")
	accountAPI.HandleFunc("/totp/confirm", totpHandler.Confirm).Methods("POST")
	accountAPI.HandleFunc("/totp", totpHandler.Disable).Methods("DELETE")

	// Staff accounts (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.UpdateUser).Methods("PUT")
	usersAPI.HandleFunc("/{id}/password", userHandler.ChangePassword).Methods("PUT")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")

	// Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("/search", customerHandler.Search).Methods("GET")
	customersAPI.HandleFunc("/by-card", customerHandler.GetByCard).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")

	// Purchases
	purchasesAPI := r.PathPrefix("/api/purchases").Subrouter()
	purchasesAPI.Use(authMiddleware.Authenticate)
	purchasesAPI.HandleFunc("/new-customer", purchaseHandler.CreateCustomer).Methods("POST")
	purchasesAPI.HandleFunc("/customer", purchaseHandler.RecordForCustomer).Methods("POST")
	purchasesAPI.HandleFunc("/anonymous", purchaseHandler.RecordAnonymous).Methods("POST")
	purchasesAPI.HandleFunc("/replace", purchaseHandler.Replace).Methods("POST")

	// Transactions
	transactionsAPI := r.PathPrefix("/api/transactions").Subrouter()
	transactionsAPI.Use(authMiddleware.Authenticate)
	transactionsAPI.HandleFunc("", transactionHandler.ListTransactions).Methods("GET")
	transactionsAPI.HandleFunc("/{id}", transactionHandler.GetTransaction).Methods("GET")

	// Catalog reads for the register
	catalogAPI := r.PathPrefix("/api/catalog").Subrouter()
	catalogAPI.Use(authMiddleware.Authenticate)
	catalogAPI.HandleFunc("/tree", catalogHandler.Tree).Methods("GET")
	catalogAPI.HandleFunc("/categories", catalogHandler.ListCategories).Methods("GET")
	catalogAPI.HandleFunc("/picker", catalogHandler.Picker).Methods("GET")

	// Stats
	statsAPI := r.PathPrefix("/api/stats").Subrouter()
	statsAPI.Use(authMiddleware.Authenticate)
	statsAPI.HandleFunc("/revenue", statsHandler.Revenue).Methods("GET")
	statsAPI.HandleFunc("/payments", statsHandler.Payments).Methods("GET")
	statsAPI.HandleFunc("/products", statsHandler.Products).Methods("GET")
	statsAPI.HandleFunc("/categories", statsHandler.Categories).Methods("GET")
	statsAPI.HandleFunc("/report", statsHandler.Report).Methods("GET")

	// Report downloads
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/period.pdf", reportHandler.PeriodPDF).Methods("GET")
	reportsAPI.HandleFunc("/period.csv", reportHandler.PeriodCSV).Methods("GET")
	reportsAPI.HandleFunc("/transactions.csv", reportHandler.TransactionsCSV).Methods("GET")

	// Admin-only routes
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.RequireAdmin)
	adminAPI.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	adminAPI.HandleFunc("/login-logs", loginLogHandler.ListLoginLogs).Methods("GET")
	adminAPI.HandleFunc("/customers/{id}", customerHandler.DeleteCustomer).Methods("DELETE")
	adminAPI.HandleFunc("/transactions/{id}", transactionHandler.DeleteTransaction).Methods("DELETE")

	// Admin catalog management
	adminAPI.HandleFunc("/categories", catalogHandler.CreateCategory).Methods("POST")
	adminAPI.HandleFunc("/categories/{id}", catalogHandler.UpdateCategory).Methods("PUT")
	adminAPI.HandleFunc("/categories/{id}", catalogHandler.DeleteCategory).Methods("DELETE")
	adminAPI.HandleFunc("/subcategories", catalogHandler.CreateSubcategory).Methods("POST")
	adminAPI.HandleFunc("/subcategories/{id}", catalogHandler.UpdateSubcategory).Methods("PUT")
	adminAPI.HandleFunc("/subcategories/{id}", catalogHandler.DeleteSubcategory).Methods("DELETE")
	adminAPI.HandleFunc("/products", catalogHandler.CreateProduct).Methods("POST")
	adminAPI.HandleFunc("/products/{id}", catalogHandler.UpdateProduct).Methods("PUT")
	adminAPI.HandleFunc("/products/{id}", catalogHandler.DeleteProduct).Methods("DELETE")

	return r
}
