package http

import (
	"net/http"

	"nearest-blood-locator/internal/delivery/http/handler"
	"nearest-blood-locator/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	donorHandler        *handler.DonorHandler
	bloodBankHandler    *handler.BloodBankHandler
	bloodStockHandler   *handler.BloodStockHandler
	bloodRequestHandler *handler.BloodRequestHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	donorHandler *handler.DonorHandler,
	bloodBankHandler *handler.BloodBankHandler,
	bloodStockHandler *handler.BloodStockHandler,
	bloodRequestHandler *handler.BloodRequestHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		donorHandler:        donorHandler,
		bloodBankHandler:    bloodBankHandler,
		bloodStockHandler:   bloodStockHandler,
		bloodRequestHandler: bloodRequestHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

// protected chains authentication and the given role checks in front of h.
func (r *Router) protected(h http.HandlerFunc, roles ...func(http.Handler) http.Handler) http.Handler {
	var next http.Handler = h
	for i := len(roles) - 1; i >= 0; i-- {
		next = roles[i](next)
	}
	return r.authMiddleware.Authenticate(next)
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes
	api.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	api.Handle("/logout", r.protected(r.authHandler.Logout)).Methods(http.MethodPost)
	api.Handle("/me", r.protected(r.authHandler.GetCurrentUser)).Methods(http.MethodGet)

	// Donors
	api.HandleFunc("/donors", r.donorHandler.SearchDonors).Methods(http.MethodGet)
	api.Handle("/donors", r.protected(r.donorHandler.UpsertMyProfile, middleware.RequireDonor)).Methods(http.MethodPost)
	api.Handle("/donors/me", r.protected(r.donorHandler.GetMyProfile, middleware.RequireDonor)).Methods(http.MethodGet)
	api.Handle("/donors/me", r.protected(r.donorHandler.DeleteMyProfile, middleware.RequireDonor)).Methods(http.MethodDelete)

	// Blood banks
	api.HandleFunc("/bloodbanks", r.bloodBankHandler.SearchBanks).Methods(http.MethodGet)
	api.Handle("/bloodbanks", r.protected(r.bloodBankHandler.UpsertMyBank, middleware.RequireBank)).Methods(http.MethodPost)
	api.Handle("/bloodbanks/my", r.protected(r.bloodBankHandler.GetMyBanks, middleware.RequireBank)).Methods(http.MethodGet)
	api.Handle("/bloodbanks/{id}", r.protected(r.bloodBankHandler.DeleteBank, middleware.RequireBank)).Methods(http.MethodDelete)

	// Blood stock
	api.Handle("/blood-stock", r.authMiddleware.OptionalAuthenticate(http.HandlerFunc(r.bloodStockHandler.ListStock))).Methods(http.MethodGet)
	api.Handle("/blood-stock", r.protected(r.bloodStockHandler.AddStock, middleware.RequireBank)).Methods(http.MethodPost)
	api.Handle("/blood-stock", r.protected(r.bloodStockHandler.UpdateStock, middleware.RequireBank)).Methods(http.MethodPut)
	api.Handle("/blood-stock/export", r.protected(r.bloodStockHandler.ExportStock, middleware.RequireBank)).Methods(http.MethodGet)

	// Recipient requests. my-requests must be registered before {id}.
	api.HandleFunc("/recipients", r.bloodRequestHandler.ListRequests).Methods(http.MethodGet)
	api.Handle("/recipients", r.protected(r.bloodRequestHandler.CreateRequest, middleware.RequireRecipient)).Methods(http.MethodPost)
	api.Handle("/recipients/my-requests", r.protected(r.bloodRequestHandler.GetMyRequests, middleware.RequireRecipient)).Methods(http.MethodGet)
	api.HandleFunc("/recipients/{id}", r.bloodRequestHandler.GetRequest).Methods(http.MethodGet)
	api.Handle("/recipients/{id}", r.protected(r.bloodRequestHandler.CancelRequest, middleware.RequireRecipient)).Methods(http.MethodDelete)

	// Audit trail
	api.Handle("/audit-logs/my", r.protected(r.auditLogHandler.GetMyAuditLogs)).Methods(http.MethodGet)

	// Preflight requests never match a method-bound route above.
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
