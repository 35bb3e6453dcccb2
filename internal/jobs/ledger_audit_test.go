package jobs

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInventoryHistoryRepository struct {
	mock.Mock
}

func (m *MockInventoryHistoryRepository) Append(ctx context.Context, q repositories.Querier, entry *models.InventoryHistory) error {
	args := m.Called(ctx, q, entry)
	return args.Error(0)
}

func (m *MockInventoryHistoryRepository) ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*models.InventoryHistory, error) {
	args := m.Called(ctx, itemID, limit, offset)
	return args.Get(0).([]*models.InventoryHistory), args.Error(1)
}

func (m *MockInventoryHistoryRepository) List(ctx context.Context, limit, offset int) ([]*models.InventoryHistory, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.InventoryHistory), args.Error(1)
}

func (m *MockInventoryHistoryRepository) SumDeltasByItem(ctx context.Context, itemID uuid.UUID) (float64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockInventoryHistoryRepository) CountByItem(ctx context.Context, itemID uuid.UUID) (int, error) {
	args := m.Called(ctx, itemID)
	return args.Int(0), args.Error(1)
}

func TestAudit_ComputesDriftPerItem(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockInventoryItemRepository)
	historyRepo := new(MockInventoryHistoryRepository)

	driftedID := uuid.New()
	balancedID := uuid.New()
	items := []*models.InventoryItem{
		{ID: driftedID, Name: "Blend Coffee 200g", Quantity: 16},
		{ID: balancedID, Name: "Gift Box Set", Quantity: 8},
	}
	itemRepo.On("List", ctx, 1000, 0).Return(items, nil)
	historyRepo.On("SumDeltasByItem", ctx, driftedID).Return(40.0, nil)
	historyRepo.On("SumDeltasByItem", ctx, balancedID).Return(8.0, nil)

	svc := NewLedgerAuditService(itemRepo, historyRepo)

	reports, err := svc.Audit(ctx)
	assert.NoError(t, err)
	assert.Len(t, reports, 2)
	assert.Equal(t, -24.0, reports[0].Drift)
	assert.Equal(t, 0.0, reports[1].Drift)
}

func TestLogAuditReports_ReportsDrift(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	svc := NewLedgerAuditService(nil, nil)
	svc.LogAuditReports([]LedgerAuditReport{
		{ItemName: "Blend Coffee 200g", Quantity: 16, DeltaSum: 40, Drift: -24},
		{ItemName: "Gift Box Set", Quantity: 8, DeltaSum: 8, Drift: 0},
		{ItemName: "Paper Filter #2 100ct", Quantity: -3, DeltaSum: -3, Drift: 0, Negative: true},
	})

	out := buf.String()
	assert.Contains(t, out, "Ledger drift for item 'Blend Coffee 200g'")
	assert.Contains(t, out, "drift -24.00")
	assert.NotContains(t, out, "Gift Box Set")
	assert.Contains(t, out, "negative stock -3.00")
	assert.Contains(t, out, "Ledger audit completed for 3 items")
}
