package api

import (
	"net/http"
	"time"

	"github.com/raushankrgupta/shoplungu/catalog"
	"github.com/raushankrgupta/shoplungu/checkout"
	"github.com/raushankrgupta/shoplungu/pipeline"
	"github.com/raushankrgupta/shoplungu/session"
	"github.com/raushankrgupta/shoplungu/storage"
	"github.com/raushankrgupta/shoplungu/utils"
	"go.uber.org/zap"
)

// Handler serves the storefront API
type Handler struct {
	Catalog  *catalog.Catalog
	Sessions *session.Manager
	Checkout *checkout.Service
	// Inbox keeps submitted contact messages
	Inbox  storage.Storage
	Mailer *utils.Mailer
	Logger *zap.Logger

	PageSize int
	// ContactDelay simulates sending the contact form
	ContactDelay time.Duration
	// SupportEmail receives contact form messages when mail is enabled
	SupportEmail string
}

// Routes registers every endpoint on a new mux, wrapped in CORS and latency logging
func (h *Handler) Routes() http.Handler {
	if h.Logger == nil {
		h.Logger = zap.NewNop()
	}
	if h.PageSize <= 0 {
		h.PageSize = pipeline.DefaultPageSize
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.HealthHandler)

	// Catalog
	mux.HandleFunc("GET /api/products", h.WithOptionalSession(h.ProductsHandler))
	mux.HandleFunc("GET /api/products/{id}", h.WithOptionalSession(h.ProductHandler))
	mux.HandleFunc("GET /api/catalog", h.WithOptionalSession(h.CatalogHandler))
	mux.HandleFunc("GET /api/categories", h.WithOptionalSession(h.CategoriesHandler))
	mux.HandleFunc("GET /api/categories/{slug}", h.WithOptionalSession(h.CategoryHandler))
	mux.HandleFunc("GET /api/home", h.WithOptionalSession(h.HomeHandler))
	mux.HandleFunc("GET /api/search/suggest", h.WithOptionalSession(h.SuggestHandler))

	// Shopper state
	mux.HandleFunc("/api/cart", h.WithSession(h.CartHandler))
	mux.HandleFunc("/api/wishlist", h.WithSession(h.WishlistHandler))

	// Mock auth
	mux.HandleFunc("POST /api/auth/login", h.WithSession(h.LoginHandler))
	mux.HandleFunc("POST /api/auth/register", h.WithSession(h.RegisterHandler))
	mux.HandleFunc("POST /api/auth/logout", h.WithSession(h.LogoutHandler))
	mux.HandleFunc("/api/profile", h.WithSession(h.ProfileHandler))

	// Orders
	mux.HandleFunc("POST /api/checkout", h.WithSession(h.CheckoutHandler))
	mux.HandleFunc("GET /api/checkout", h.WithSession(h.CheckoutFormHandler))
	mux.HandleFunc("GET /api/orders/confirmation", h.WithSession(h.ConfirmationHandler))

	mux.HandleFunc("POST /api/contact", h.WithOptionalSession(h.ContactHandler))

	return utils.CORSMiddleware(utils.LatencyMiddleware(h.Logger, mux))
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
