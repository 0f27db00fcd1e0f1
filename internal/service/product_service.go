package service

import (
	"context"
	"fmt"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves all products, or one category's products when a filter is
// supplied. The filter category is not validated; an unknown one yields an
// empty list.
func (s *productService) List(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	var (
		products []model.Product
		err      error
	)

	if categoryID == nil {
		products, err = s.productRepo.GetAll(ctx)
	} else {
		products, err = s.productRepo.GetByCategoryID(ctx, *categoryID)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// Get retrieves a single product by ID.
func (s *productService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.NewNotFound("Product", id)
	}

	return product, nil
}

// Create persists a new product. The referenced category must exist at write
// time; resolution and insert share one transaction.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	name := normalizeName(req.Name)
	if name == "" {
		return nil, model.NewValidation([]model.FieldError{
			{Field: "name", Message: "must not be blank"},
		})
	}

	tx, err := s.productRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var category *model.Category
	if category, err = s.categoryRepo.GetForUpdate(ctx, tx, req.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	if category == nil {
		err = model.NewNotFound("Category", req.CategoryID)
		s.logger.Warn().Int64("category_id", req.CategoryID).Msg("product references unknown category")
		return nil, err
	}

	product := &model.Product{
		Name:         name,
		Price:        *req.Price,
		InStock:      *req.InStock,
		CategoryID:   category.ID,
		CategoryName: category.Name,
	}

	if err = s.productRepo.Insert(ctx, tx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Int64("category_id", product.CategoryID).
		Msg("product created")

	return product, nil
}

// Update applies the non-nil request fields to an existing product. A supplied
// category is re-resolved; nil fields leave stored values unchanged.
func (s *productService) Update(ctx context.Context, id int64, req *model.UpdateProductRequest) (*model.Product, error) {
	tx, err := s.productRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var product *model.Product
	if product, err = s.productRepo.GetForUpdate(ctx, tx, id); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		err = model.NewNotFound("Product", id)
		return nil, err
	}

	if req.Name != nil {
		name := normalizeName(*req.Name)
		if name == "" {
			err = model.NewValidation([]model.FieldError{
				{Field: "name", Message: "must not be blank"},
			})
			return nil, err
		}
		product.Name = name
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if req.CategoryID != nil {
		var category *model.Category
		if category, err = s.categoryRepo.GetForUpdate(ctx, tx, *req.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
		if category == nil {
			err = model.NewNotFound("Category", *req.CategoryID)
			s.logger.Warn().Int64("category_id", *req.CategoryID).Msg("product references unknown category")
			return nil, err
		}
		product.CategoryID = category.ID
		product.CategoryName = category.Name
	}

	if err = s.productRepo.Update(ctx, tx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")

	return product, nil
}

// Delete removes a product, confirming existence first so an absent ID is
// reported as NotFound rather than silently succeeding.
func (s *productService) Delete(ctx context.Context, id int64) error {
	tx, err := s.productRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var product *model.Product
	if product, err = s.productRepo.GetForUpdate(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if product == nil {
		err = model.NewNotFound("Product", id)
		return err
	}

	if err = s.productRepo.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return nil
}
