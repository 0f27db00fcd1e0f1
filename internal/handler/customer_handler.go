package handler

import (
	"net/http"

	"catalog-api/internal/model"
	"catalog-api/internal/service"
	"catalog-api/internal/validation"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	service   service.CustomerService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, validator *validation.Validator, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("handler", "customer").Logger(),
	}
}

// List handles GET /api/customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if customers == nil {
		customers = []model.Customer{}
	}

	writeJSON(w, http.StatusOK, customers)
}

// Get handles GET /api/customers/{id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	customer, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Create handles POST /api/customers.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	customer, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

// Update handles PUT /api/customers/{id}.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	var req model.UpdateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	customer, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Delete handles DELETE /api/customers/{id}.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
