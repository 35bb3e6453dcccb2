package services

import (
	"context"
	"testing"
	"time"

	"beanmart/internal/common"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	service    OrderService
	supplierID uuid.UUID
	itemID     uuid.UUID
	context    context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	orderRepo := repositories.NewPurchaseOrderRepository(mock)
	orderItemRepo := repositories.NewOrderItemRepository(mock)
	supplierRepo := repositories.NewSupplierRepository(mock)
	itemRepo := repositories.NewInventoryItemRepository(mock)
	suite.service = NewOrderService(mock, orderRepo, orderItemRepo, supplierRepo, itemRepo)

	suite.supplierID = uuid.New()
	suite.itemID = uuid.New()
	suite.context = context.Background()
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) expectSupplierLookup() {
	rows := pgxmock.NewRows([]string{"id", "name", "address", "phone", "email", "contact_info", "created_at", "updated_at"}).
		AddRow(suite.supplierID, "Highland Roasters Co.", (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), time.Now(), time.Now())
	suite.mock.ExpectQuery(`FROM suppliers\s+WHERE id = \$1`).
		WithArgs(suite.supplierID).
		WillReturnRows(rows)
}

func (suite *OrderServiceTestSuite) expectItemLookup(id uuid.UUID, name string) {
	rows := pgxmock.NewRows([]string{"id", "name", "quantity", "price", "order_unit", "created_at", "updated_at"}).
		AddRow(id, name, 12.0, 450.0, (*string)(nil), time.Now(), time.Now())
	suite.mock.ExpectQuery(`FROM inventory_items\s+WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(rows)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	secondItemID := uuid.New()

	suite.expectSupplierLookup()
	suite.expectItemLookup(suite.itemID, "Blend Coffee 200g")
	suite.expectItemLookup(secondItemID, "Paper Filter #2 100ct")

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO purchase_orders`).
		WithArgs(pgxmock.AnyArg(), suite.supplierID, pgxmock.AnyArg(), 2100.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), suite.itemID, 4, 450.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), secondItemID, 1, 300.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	detail, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{
		SupplierID:    suite.supplierID,
		OrderDate:     time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		DeclaredTotal: 2100,
		Lines: []OrderLineInput{
			{InventoryItemID: suite.itemID, UnitPrice: 450, Quantity: 4, Subtotal: 1800},
			{InventoryItemID: secondItemID, UnitPrice: 300, Quantity: 1, Subtotal: 300},
		},
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.supplierID, detail.SupplierID)
	assert.Equal(suite.T(), 2100.0, detail.TotalAmount)
	assert.Len(suite.T(), detail.Items, 2)
	assert.Equal(suite.T(), "Blend Coffee 200g", detail.Items[0].Name)
	assert.Equal(suite.T(), 1800.0, detail.Items[0].Subtotal)
	assert.Equal(suite.T(), "Highland Roasters Co.", detail.Supplier.Name)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NoLines() {
	_, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{
		SupplierID: suite.supplierID,
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NonPositiveQuantity() {
	_, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{
		SupplierID: suite.supplierID,
		Lines: []OrderLineInput{
			{InventoryItemID: suite.itemID, UnitPrice: 450, Quantity: 0},
		},
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_SupplierNotFound() {
	suite.mock.ExpectQuery(`FROM suppliers\s+WHERE id = \$1`).
		WithArgs(suite.supplierID).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{
		SupplierID: suite.supplierID,
		Lines: []OrderLineInput{
			{InventoryItemID: suite.itemID, UnitPrice: 450, Quantity: 1},
		},
	})
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnknownItem() {
	suite.expectSupplierLookup()
	suite.mock.ExpectQuery(`FROM inventory_items\s+WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.service.CreateOrder(suite.context, &CreateOrderRequest{
		SupplierID: suite.supplierID,
		Lines: []OrderLineInput{
			{InventoryItemID: suite.itemID, UnitPrice: 450, Quantity: 1},
		},
	})
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestGetOrder_ComputesLineSubtotals() {
	orderID := uuid.New()

	orderRows := pgxmock.NewRows([]string{"id", "supplier_id", "order_date", "total_amount", "created_at"}).
		AddRow(orderID, suite.supplierID, time.Now(), 1350.0, time.Now())
	suite.mock.ExpectQuery(`FROM purchase_orders\s+WHERE id = \$1`).
		WithArgs(orderID).
		WillReturnRows(orderRows)

	suite.expectSupplierLookup()

	itemRows := pgxmock.NewRows([]string{"id", "purchase_order_id", "inventory_item_id", "quantity_ordered", "unit_price", "is_received", "received_date", "created_at", "item_name"}).
		AddRow(uuid.New(), orderID, suite.itemID, 3, 450.0, false, (*time.Time)(nil), time.Now(), "Blend Coffee 200g")
	suite.mock.ExpectQuery(`FROM order_items oi\s+JOIN inventory_items ii`).
		WithArgs(orderID).
		WillReturnRows(itemRows)

	detail, err := suite.service.GetOrder(suite.context, orderID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), detail.Items, 1)
	assert.Equal(suite.T(), 1350.0, detail.Items[0].Subtotal)
	assert.Equal(suite.T(), "Blend Coffee 200g", detail.Items[0].Name)
}
