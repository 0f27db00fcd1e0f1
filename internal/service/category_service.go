package service

import (
	"context"
	"fmt"
	"strings"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// List retrieves all categories.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	s.logger.Debug().Int("count", len(categories)).Msg("retrieved categories")

	return categories, nil
}

// Get retrieves a single category by ID.
func (s *categoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to get category")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if category == nil {
		return nil, model.NewNotFound("Category", id)
	}

	return category, nil
}

// Create persists a new category. The name must be non-blank after trimming
// and unique ignoring case; check and insert share one transaction.
func (s *categoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	name := normalizeName(req.Name)
	if name == "" {
		return nil, model.NewValidation([]model.FieldError{
			{Field: "name", Message: "must not be blank"},
		})
	}

	category := &model.Category{Name: name}
	if req.Description != nil {
		category.Description = normalizeDescription(*req.Description)
	}

	tx, err := s.categoryRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var exists bool
	if exists, err = s.categoryRepo.ExistsByNameIgnoreCase(ctx, tx, name, 0); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	if exists {
		err = model.NewConflict(fmt.Sprintf("Category with name '%s' already exists", name))
		s.logger.Warn().Str("name", name).Msg("category name already exists")
		return nil, err
	}

	if err = s.categoryRepo.Insert(ctx, tx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Int64("category_id", category.ID).Str("name", name).Msg("category created")

	return category, nil
}

// Update applies the non-nil request fields to an existing category. A
// supplied name is re-checked for uniqueness against all other categories.
func (s *categoryService) Update(ctx context.Context, id int64, req *model.UpdateCategoryRequest) (*model.Category, error) {
	tx, err := s.categoryRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var category *model.Category
	if category, err = s.categoryRepo.GetForUpdate(ctx, tx, id); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if category == nil {
		err = model.NewNotFound("Category", id)
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

		if !strings.EqualFold(name, category.Name) {
			var exists bool
			if exists, err = s.categoryRepo.ExistsByNameIgnoreCase(ctx, tx, name, id); err != nil {
				return nil, fmt.Errorf("failed to update category: %w", err)
			}
			if exists {
				err = model.NewConflict(fmt.Sprintf("Category with name '%s' already exists", name))
				s.logger.Warn().Str("name", name).Msg("category name already exists")
				return nil, err
			}
		}

		category.Name = name
	}

	if req.Description != nil {
		category.Description = normalizeDescription(*req.Description)
	}

	if err = s.categoryRepo.Update(ctx, tx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.Info().Int64("category_id", id).Msg("category updated")

	return category, nil
}

// Delete removes a category. It fails when the category is absent or when any
// product still references it; check and delete share one transaction.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	tx, err := s.categoryRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var category *model.Category
	if category, err = s.categoryRepo.GetForUpdate(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if category == nil {
		err = model.NewNotFound("Category", id)
		return err
	}

	var count int64
	if count, err = s.productRepo.CountByCategoryID(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if count > 0 {
		err = model.NewConflict(fmt.Sprintf("Category with id=%d cannot be deleted because it has products", id))
		s.logger.Warn().Int64("category_id", id).Int64("product_count", count).Msg("category has dependent products")
		return err
	}

	if err = s.categoryRepo.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info().Int64("category_id", id).Msg("category deleted")

	return nil
}
