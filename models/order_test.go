package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&Customer{}, &Partner{}, &Product{}, &Service{},
		&Order{}, &OrderItem{}, &Purchase{}, &PurchaseItem{},
		&Payment{}, &Transaction{},
	))
	return db
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: 100}
	assert.Equal(t, 300.0, item.LineTotal())

	item.Discount = 10
	assert.Equal(t, 270.0, item.LineTotal())
}

func TestOrderComputeTotal(t *testing.T) {
	order := Order{Items: []OrderItem{
		{Quantity: 2, UnitPrice: 50},
		{Quantity: 1, UnitPrice: 200, Discount: 25},
	}}
	assert.Equal(t, 250.0, order.ComputeTotal())
	assert.Equal(t, 250.0, order.Total)
}

func TestOrderStatusTransitions(t *testing.T) {
	db := newTestDB(t)

	newOrder := func(status OrderStatus) *Order {
		o := &Order{Number: fmt.Sprintf("ORD-%s", status), Status: status}
		require.NoError(t, db.Create(o).Error)
		return o
	}

	t.Run("pending to confirmed", func(t *testing.T) {
		o := newOrder(OrderPending)
		require.NoError(t, o.UpdateStatus(db, OrderConfirmed))
		assert.Equal(t, OrderConfirmed, o.Status)
	})

	t.Run("pending to fulfilled rejected", func(t *testing.T) {
		o := &Order{Number: "ORD-skip", Status: OrderPending}
		require.NoError(t, db.Create(o).Error)
		assert.Error(t, o.UpdateStatus(db, OrderFulfilled))
		assert.Equal(t, OrderPending, o.Status)
	})

	t.Run("confirmed to fulfilled", func(t *testing.T) {
		o := newOrder(OrderConfirmed)
		require.NoError(t, o.UpdateStatus(db, OrderFulfilled))
	})

	t.Run("fulfilled is terminal", func(t *testing.T) {
		o := newOrder(OrderFulfilled)
		assert.Error(t, o.UpdateStatus(db, OrderCanceled))
	})

	t.Run("canceled is terminal", func(t *testing.T) {
		o := newOrder(OrderCanceled)
		assert.Error(t, o.UpdateStatus(db, OrderConfirmed))
	})
}

func TestOrderDefaultsToPending(t *testing.T) {
	db := newTestDB(t)

	o := &Order{Number: "ORD-default"}
	require.NoError(t, db.Create(o).Error)
	assert.Equal(t, OrderPending, o.Status)
}

func TestPurchaseStatusTransitions(t *testing.T) {
	db := newTestDB(t)

	p := &Purchase{Number: "PUR-1", Status: PurchasePending}
	require.NoError(t, db.Create(p).Error)
	require.NoError(t, p.UpdateStatus(db, PurchaseReceived))
	assert.Error(t, p.UpdateStatus(db, PurchaseCanceled))

	p2 := &Purchase{Number: "PUR-2", Status: PurchasePending}
	require.NoError(t, db.Create(p2).Error)
	require.NoError(t, p2.UpdateStatus(db, PurchaseCanceled))
	assert.Error(t, p2.UpdateStatus(db, PurchaseReceived))
}

func TestProductDiscountedPrice(t *testing.T) {
	db := newTestDB(t)

	p := &Product{Name: "Oil", SKU: "OIL-1", Price: 200, Discount: 15}
	require.NoError(t, db.Create(p).Error)

	var got Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 170.0, got.DiscountedPrice)
}
