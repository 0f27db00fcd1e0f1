package service

import (
	"context"
	"errors"
	"testing"

	"catalog-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Category, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByNameIgnoreCase(ctx context.Context, tx pgx.Tx, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, tx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Insert(ctx context.Context, tx pgx.Tx, category *model.Category) error {
	args := m.Called(ctx, tx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, tx pgx.Tx, category *model.Category) error {
	args := m.Called(ctx, tx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return pgconn.CommandTag{}, nil
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

func newCommittingTx() *MockTx {
	tx := new(MockTx)
	tx.On("Commit", mock.Anything).Return(nil)
	return tx
}

func newRollingBackTx() *MockTx {
	tx := new(MockTx)
	tx.On("Rollback", mock.Anything).Return(nil)
	return tx
}

func TestCategoryService_Get(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		expected := &model.Category{ID: 1, Name: "Books"}
		categoryRepo.On("GetByID", ctx, int64(1)).Return(expected, nil)

		got, err := svc.Get(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("Not found", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		categoryRepo.On("GetByID", ctx, int64(9)).Return(nil, nil)

		got, err := svc.Get(ctx, 9)

		assert.Nil(t, got)
		var apiErr *model.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, model.KindNotFound, apiErr.Kind)
		assert.Equal(t, "Category with id=9 not found", apiErr.Message)
	})

	t.Run("Idempotent reads", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		expected := &model.Category{ID: 1, Name: "Books"}
		categoryRepo.On("GetByID", ctx, int64(1)).Return(expected, nil)

		first, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		second, err := svc.Get(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestCategoryService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Success with normalization", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		tx := newCommittingTx()
		categoryRepo.On("BeginTx", ctx).Return(tx, nil)
		categoryRepo.On("ExistsByNameIgnoreCase", ctx, tx, "Books", int64(0)).Return(false, nil)
		categoryRepo.On("Insert", ctx, tx, mock.AnythingOfType("*model.Category")).
			Run(func(args mock.Arguments) {
				args.Get(2).(*model.Category).ID = 1
			}).
			Return(nil)

		desc := "  all   kinds\tof books  "
		got, err := svc.Create(ctx, &model.CreateCategoryRequest{Name: "  Books ", Description: &desc})

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "Books", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, "all kinds of books", *got.Description)
		tx.AssertCalled(t, "Commit", ctx)
	})

	t.Run("Blank name rejected before any transaction", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		got, err := svc.Create(ctx, &model.CreateCategoryRequest{Name: "   "})

		assert.Nil(t, got)
		var apiErr *model.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, model.KindValidation, apiErr.Kind)
		assert.Equal(t, "name:must not be blank", apiErr.Message)
		categoryRepo.AssertNotCalled(t, "BeginTx")
	})

	t.Run("Duplicate name conflict", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		tx := newRollingBackTx()
		categoryRepo.On("BeginTx", ctx).Return(tx, nil)
		categoryRepo.On("ExistsByNameIgnoreCase", ctx, tx, "books", int64(0)).Return(true, nil)

		got, err := svc.Create(ctx, &model.CreateCategoryRequest{Name: "books"})

		assert.Nil(t, got)
		var apiErr *model.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, model.KindConflict, apiErr.Kind)
		assert.Equal(t, "Category with name 'books' already exists", apiErr.Message)
		categoryRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
		tx.AssertCalled(t, "Rollback", ctx)
	})

	t.Run("Repository error surfaces and rolls back", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		tx := newRollingBackTx()
		categoryRepo.On("BeginTx", ctx).Return(tx, nil)
		categoryRepo.On("ExistsByNameIgnoreCase", ctx, tx, "Books", int64(0)).
			Return(false, errors.New("connection reset"))

		got, err := svc.Create(ctx, &model.CreateCategoryRequest{Name: "Books"})

		assert.Nil(t, got)
		require.Error(t, err)
		var apiErr *model.Error
		assert.False(t, errors.As(err, &apiErr))
		tx.AssertCalled(t, "Rollback", ctx)
	})
}

func TestCategoryService_Update(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	desc := "existing description"

	t.Run("Not found", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		tx := newRollingBackTx()
		categoryRepo.On("BeginTx", ctx).Return(tx, nil)
		categoryRepo.On("GetForUpdate", ctx, tx, int64(9)).Return(nil, nil)

		got, err := svc.Update(ctx, 9, &model.UpdateCategoryRequest{})

		assert.Nil(t, got)
		var apiErr *model.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, model.KindNotFound, apiErr.Kind)
	})

	t.Run("Nil fields leave entity unchanged", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		stored := &model.Category{ID: 1, Name: "Books", Description: &desc}

		tx := newCommittingTx()
		categoryRepo.On("BeginTx", ctx).Return(tx, nil)
		categoryRepo.On("GetForUpdate", ctx, tx, int64(1)).Return(stored, nil)
		categoryRepo.On("Update", ctx, tx, stored).Return(nil)

		got, err := svc.Update(ctx, 1, &model.UpdateCategoryRequest{})

		require.NoError(t, err)
		assert.Equal(t, "Books", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, desc, *got.Description)
		categoryRepo.AssertNotCalled(t, "ExistsByNameIgnoreCase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rename re-checks uniqueness", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		stored := &model.Category{ID: 1, Name: "Books"}
		newName := "Magazines"

		tx := newRollingBackTx()
		categoryRepo.On("BeginTx", ctx).Return(tx, nil)
		categoryRepo.On("GetForUpdate", ctx, tx, int64(1)).Return(stored, nil)
		categoryRepo.On("ExistsByNameIgnoreCase", ctx, tx, "Magazines", int64(1)).Return(true, nil)

		got, err := svc.Update(ctx, 1, &model.UpdateCategoryRequest{Name: &newName})

		assert.Nil(t, got)
		var apiErr *model.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, model.KindConflict, apiErr.Kind)
	})

	t.Run("Case-only rename skips uniqueness check", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		stored := &model.Category{ID: 1, Name: "Books"}
		newName := "BOOKS"

		tx := newCommittingTx()
		categoryRepo.On("BeginTx", ctx).Return(tx, nil)
		categoryRepo.On("GetForUpdate", ctx, tx, int64(1)).Return(stored, nil)
		categoryRepo.On("Update", ctx, tx, stored).Return(nil)

		got, err := svc.Update(ctx, 1, &model.UpdateCategoryRequest{Name: &newName})

		require.NoError(t, err)
		assert.Equal(t, "BOOKS", got.Name)
		categoryRepo.AssertNotCalled(t, "ExistsByNameIgnoreCase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Not found", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		tx := newRollingBackTx()
		categoryRepo.On("BeginTx", ctx).Return(tx, nil)
		categoryRepo.On("GetForUpdate", ctx, tx, int64(9)).Return(nil, nil)

		err := svc.Delete(ctx, 9)

		var apiErr *model.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, model.KindNotFound, apiErr.Kind)
	})

	t.Run("Guard against dependent products", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		tx := newRollingBackTx()
		categoryRepo.On("BeginTx", ctx).Return(tx, nil)
		categoryRepo.On("GetForUpdate", ctx, tx, int64(1)).Return(&model.Category{ID: 1, Name: "Books"}, nil)
		productRepo.On("CountByCategoryID", ctx, tx, int64(1)).Return(int64(3), nil)

		err := svc.Delete(ctx, 1)

		var apiErr *model.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, model.KindConflict, apiErr.Kind)
		assert.Equal(t, "Category with id=1 cannot be deleted because it has products", apiErr.Message)
		categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		tx.AssertCalled(t, "Rollback", ctx)
	})

	t.Run("Success with zero products", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		svc := NewCategoryService(categoryRepo, productRepo, logger)

		tx := newCommittingTx()
		categoryRepo.On("BeginTx", ctx).Return(tx, nil)
		categoryRepo.On("GetForUpdate", ctx, tx, int64(1)).Return(&model.Category{ID: 1, Name: "Books"}, nil)
		productRepo.On("CountByCategoryID", ctx, tx, int64(1)).Return(int64(0), nil)
		categoryRepo.On("Delete", ctx, tx, int64(1)).Return(nil)

		err := svc.Delete(ctx, 1)

		require.NoError(t, err)
		tx.AssertCalled(t, "Commit", ctx)
	})
}
