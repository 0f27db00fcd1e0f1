package service

import (
	"context"
	"fmt"
	"strings"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
)

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// List retrieves all customers.
func (s *customerService) List(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.Debug().Int("count", len(customers)).Msg("retrieved customers")

	return customers, nil
}

// Get retrieves a single customer by ID.
func (s *customerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to get customer")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer == nil {
		return nil, model.NewNotFound("Customer", id)
	}

	return customer, nil
}

// Create persists a new customer. The email must be unique ignoring case;
// check and insert share one transaction.
func (s *customerService) Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		City:      req.City,
		Country:   req.Country,
	}

	tx, err := s.customerRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var exists bool
	if exists, err = s.customerRepo.ExistsByEmailIgnoreCase(ctx, tx, customer.Email, 0); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	if exists {
		err = model.NewConflict(fmt.Sprintf("Customer with email '%s' already exists", customer.Email))
		s.logger.Warn().Str("email", customer.Email).Msg("customer email already exists")
		return nil, err
	}

	if err = s.customerRepo.Insert(ctx, tx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info().Int64("customer_id", customer.ID).Msg("customer created")

	return customer, nil
}

// Update applies the non-nil request fields to an existing customer. A changed
// email is re-checked for uniqueness against all other customers.
func (s *customerService) Update(ctx context.Context, id int64, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	tx, err := s.customerRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var customer *model.Customer
	if customer, err = s.customerRepo.GetForUpdate(ctx, tx, id); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	if customer == nil {
		err = model.NewNotFound("Customer", id)
		return nil, err
	}

	if req.FirstName != nil {
		customer.FirstName = strings.TrimSpace(*req.FirstName)
	}

	if req.LastName != nil {
		customer.LastName = strings.TrimSpace(*req.LastName)
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)

		if !strings.EqualFold(email, customer.Email) {
			var exists bool
			if exists, err = s.customerRepo.ExistsByEmailIgnoreCase(ctx, tx, email, id); err != nil {
				return nil, fmt.Errorf("failed to update customer: %w", err)
			}
			if exists {
				err = model.NewConflict(fmt.Sprintf("Customer with email '%s' already exists", email))
				s.logger.Warn().Str("email", email).Msg("customer email already exists")
				return nil, err
			}
		}

		customer.Email = email
	}

	if req.City != nil {
		customer.City = req.City
	}

	if req.Country != nil {
		customer.Country = req.Country
	}

	if err = s.customerRepo.Update(ctx, tx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.logger.Info().Int64("customer_id", id).Msg("customer updated")

	return customer, nil
}

// Delete removes a customer, confirming existence first.
func (s *customerService) Delete(ctx context.Context, id int64) error {
	tx, err := s.customerRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var customer *model.Customer
	if customer, err = s.customerRepo.GetForUpdate(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if customer == nil {
		err = model.NewNotFound("Customer", id)
		return err
	}

	if err = s.customerRepo.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info().Int64("customer_id", id).Msg("customer deleted")

	return nil
}
