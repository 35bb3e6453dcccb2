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

type LedgerServiceTestSuite struct {
	suite.Suite
	mock        pgxmock.PgxPoolIface
	service     LedgerService
	itemID      uuid.UUID
	orderItemID uuid.UUID
	context     context.Context
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	itemRepo := repositories.NewInventoryItemRepository(mock)
	historyRepo := repositories.NewInventoryHistoryRepository(mock)
	orderItemRepo := repositories.NewOrderItemRepository(mock)
	suite.service = NewLedgerService(mock, itemRepo, historyRepo, orderItemRepo, nil)

	suite.itemID = uuid.New()
	suite.orderItemID = uuid.New()
	suite.context = context.Background()
}

func (suite *LedgerServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) expectItemLock(quantity float64) {
	rows := pgxmock.NewRows([]string{"id", "name", "quantity", "price", "order_unit", "created_at", "updated_at"}).
		AddRow(suite.itemID, "Blend Coffee 200g", quantity, 450.0, (*string)(nil), time.Now(), time.Now())
	suite.mock.ExpectQuery(`FROM inventory_items\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs(suite.itemID).
		WillReturnRows(rows)
}

func (suite *LedgerServiceTestSuite) TestAdjustStock_Restock() {
	suite.mock.ExpectBegin()
	suite.expectItemLock(11)
	suite.mock.ExpectExec(`UPDATE inventory_items`).
		WithArgs(5.0, suite.itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO inventory_history`).
		WithArgs(pgxmock.AnyArg(), suite.itemID, 5.0, "restock").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	err := suite.service.AdjustStock(suite.context, suite.itemID, 5, "restock")
	assert.NoError(suite.T(), err)
}

func (suite *LedgerServiceTestSuite) TestAdjustStock_NegativeDeltaAllowed() {
	// A sale larger than the running total is recorded as-is; the quantity
	// goes negative rather than losing part of the delta.
	suite.mock.ExpectBegin()
	suite.expectItemLock(2)
	suite.mock.ExpectExec(`UPDATE inventory_items`).
		WithArgs(-5.0, suite.itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO inventory_history`).
		WithArgs(pgxmock.AnyArg(), suite.itemID, -5.0, "sale").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	err := suite.service.AdjustStock(suite.context, suite.itemID, -5, "sale")
	assert.NoError(suite.T(), err)
}

func (suite *LedgerServiceTestSuite) TestAdjustStock_MissingReason() {
	err := suite.service.AdjustStock(suite.context, suite.itemID, 5, "  ")
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestAdjustStock_ItemNotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`FROM inventory_items\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs(suite.itemID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	err := suite.service.AdjustStock(suite.context, suite.itemID, 5, "restock")
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestAdjustStock_SequenceAccumulates() {
	// Each adjustment locks the quantity the previous one left behind and
	// appends exactly one history row, so after the whole sequence the
	// running quantity is the start plus the sum of the deltas.
	adjustments := []struct {
		before float64
		delta  float64
		reason string
	}{
		{11, 5, "restock"},
		{16, -4, "sale"},
		{12, 2, "correction"},
	}

	for _, a := range adjustments {
		suite.mock.ExpectBegin()
		suite.expectItemLock(a.before)
		suite.mock.ExpectExec(`UPDATE inventory_items`).
			WithArgs(a.delta, suite.itemID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		suite.mock.ExpectExec(`INSERT INTO inventory_history`).
			WithArgs(pgxmock.AnyArg(), suite.itemID, a.delta, a.reason).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		suite.mock.ExpectCommit()
		suite.mock.ExpectRollback()
	}

	for _, a := range adjustments {
		err := suite.service.AdjustStock(suite.context, suite.itemID, a.delta, a.reason)
		assert.NoError(suite.T(), err)
	}
}

func (suite *LedgerServiceTestSuite) expectOrderItemLock(received bool) {
	var receivedDate *time.Time
	if received {
		now := time.Now()
		receivedDate = &now
	}
	rows := pgxmock.NewRows([]string{"id", "purchase_order_id", "inventory_item_id", "quantity_ordered", "unit_price", "is_received", "received_date", "created_at"}).
		AddRow(suite.orderItemID, uuid.New(), suite.itemID, 3, 450.0, received, receivedDate, time.Now())
	suite.mock.ExpectQuery(`SELECT (.+) FROM order_items WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.orderItemID).
		WillReturnRows(rows)
}

func (suite *LedgerServiceTestSuite) TestReceiveOrderItem_CreditsStock() {
	suite.mock.ExpectBegin()
	suite.expectOrderItemLock(false)
	suite.mock.ExpectExec(`UPDATE inventory_items`).
		WithArgs(3.0, suite.itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO inventory_history`).
		WithArgs(pgxmock.AnyArg(), suite.itemID, 3.0, ReceiptReason).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE order_items`).
		WithArgs(pgxmock.AnyArg(), suite.orderItemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	received, err := suite.service.ReceiveOrderItem(suite.context, suite.orderItemID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), received)
}

func (suite *LedgerServiceTestSuite) TestReceiveOrderItem_SecondReceiptIsNoop() {
	suite.mock.ExpectBegin()
	suite.expectOrderItemLock(true)
	suite.mock.ExpectRollback()

	received, err := suite.service.ReceiveOrderItem(suite.context, suite.orderItemID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), received)
}

func (suite *LedgerServiceTestSuite) TestReceiveOrderItem_FullOrderReceipt() {
	// Receiving every line of an order credits each item by exactly its
	// ordered quantity and leaves no unreceived lines behind.
	orderID := uuid.New()
	lines := []struct {
		lineID   uuid.UUID
		itemID   uuid.UUID
		quantity int
		price    float64
	}{
		{uuid.New(), uuid.New(), 3, 450},
		{uuid.New(), uuid.New(), 2, 1500},
	}

	for _, l := range lines {
		rows := pgxmock.NewRows([]string{"id", "purchase_order_id", "inventory_item_id", "quantity_ordered", "unit_price", "is_received", "received_date", "created_at"}).
			AddRow(l.lineID, orderID, l.itemID, l.quantity, l.price, false, (*time.Time)(nil), time.Now())
		suite.mock.ExpectBegin()
		suite.mock.ExpectQuery(`SELECT (.+) FROM order_items WHERE id = \$1 FOR UPDATE`).
			WithArgs(l.lineID).
			WillReturnRows(rows)
		suite.mock.ExpectExec(`UPDATE inventory_items`).
			WithArgs(float64(l.quantity), l.itemID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		suite.mock.ExpectExec(`INSERT INTO inventory_history`).
			WithArgs(pgxmock.AnyArg(), l.itemID, float64(l.quantity), ReceiptReason).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		suite.mock.ExpectExec(`UPDATE order_items`).
			WithArgs(pgxmock.AnyArg(), l.lineID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		suite.mock.ExpectCommit()
		suite.mock.ExpectRollback()
	}
	suite.mock.ExpectQuery(`FROM order_items oi\s+JOIN inventory_items ii ON oi\.inventory_item_id = ii\.id\s+WHERE oi\.is_received = FALSE`).
		WithArgs(50, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "purchase_order_id", "inventory_item_id", "quantity_ordered", "unit_price", "is_received", "received_date", "created_at", "item_name"}))

	for _, l := range lines {
		received, err := suite.service.ReceiveOrderItem(suite.context, l.lineID)
		assert.NoError(suite.T(), err)
		assert.True(suite.T(), received)
	}

	remaining, err := repositories.NewOrderItemRepository(suite.mock).ListUnreceived(suite.context, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), remaining)
}

func (suite *LedgerServiceTestSuite) TestReceiveOrderItem_NotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT (.+) FROM order_items WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.orderItemID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	received, err := suite.service.ReceiveOrderItem(suite.context, suite.orderItemID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.False(suite.T(), received)
}
