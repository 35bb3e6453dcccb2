package jobs

import (
	"context"
	"testing"

	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInventoryItemRepository struct {
	mock.Mock
}

func (m *MockInventoryItemRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) List(ctx context.Context, limit, offset int) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryItemRepository) GetForUpdate(ctx context.Context, q repositories.Querier, id uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) AddQuantity(ctx context.Context, q repositories.Querier, id uuid.UUID, delta float64) error {
	args := m.Called(ctx, q, id, delta)
	return args.Error(0)
}

func TestCheckLowStock(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockInventoryItemRepository)

	items := []*models.InventoryItem{
		{ID: uuid.New(), Name: "Blend Coffee 200g", Quantity: 4},
		{ID: uuid.New(), Name: "Gift Box Set", Quantity: 25},
		{ID: uuid.New(), Name: "Paper Filter #2 100ct", Quantity: 10},
	}
	mockRepo.On("List", ctx, 1000, 0).Return(items, nil)

	svc := NewLowStockAlertService(mockRepo)

	alerts, err := svc.CheckLowStock(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, alerts, 2)
	assert.Equal(t, "Blend Coffee 200g", alerts[0].ItemName)
	assert.Equal(t, 4.0, alerts[0].CurrentStock)
	assert.Equal(t, "Paper Filter #2 100ct", alerts[1].ItemName)
}

func TestCheckLowStock_DefaultThreshold(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockInventoryItemRepository)

	items := []*models.InventoryItem{
		{ID: uuid.New(), Name: "Drip Bag Assortment 10pk", Quantity: 11},
	}
	mockRepo.On("List", ctx, 1000, 0).Return(items, nil)

	svc := NewLowStockAlertService(mockRepo)

	alerts, err := svc.CheckLowStock(ctx, 0)
	assert.NoError(t, err)
	assert.Empty(t, alerts)
}
