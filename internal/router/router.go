package router

import (
	"net/http"

	"catalog-api/internal/handler"
	"catalog-api/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	customerHandler *handler.CustomerHandler,
	logger zerolog.Logger,
) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/categories", categoryHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/categories", categoryHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", categoryHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", categoryHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/categories/{id}", categoryHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", productHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/customers", customerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/customers", customerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", customerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", customerHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}", customerHandler.Delete).Methods(http.MethodDelete)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS
	var h http.Handler = r
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
