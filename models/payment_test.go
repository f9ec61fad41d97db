package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentDirectionInference(t *testing.T) {
	db := newTestDB(t)

	orderID := uint(0)
	{
		o := &Order{Number: "ORD-pay"}
		require.NoError(t, db.Create(o).Error)
		orderID = o.ID
	}
	purchaseID := uint(0)
	{
		p := &Purchase{Number: "PUR-pay"}
		require.NoError(t, db.Create(p).Error)
		purchaseID = p.ID
	}

	in := &Payment{Amount: 100, Method: PaymentCash, OrderID: &orderID}
	require.NoError(t, db.Create(in).Error)
	assert.Equal(t, PaymentIn, in.Direction)

	out := &Payment{Amount: 100, Method: PaymentTransfer, PurchaseID: &purchaseID}
	require.NoError(t, db.Create(out).Error)
	assert.Equal(t, PaymentOut, out.Direction)

	// Explicit direction is never overwritten
	refund := &Payment{Amount: 50, Method: PaymentCash, OrderID: &orderID, Direction: PaymentOut}
	require.NoError(t, db.Create(refund).Error)
	assert.Equal(t, PaymentOut, refund.Direction)
}

func TestResolvePayerFromOrder(t *testing.T) {
	db := newTestDB(t)

	customer := &Customer{Name: "Asha Rao", Email: "asha@thetahouse.test"}
	require.NoError(t, db.Create(customer).Error)
	order := &Order{Number: "ORD-payer", CustomerID: customer.ID}
	require.NoError(t, db.Create(order).Error)

	p := &Payment{Amount: 100, OrderID: &order.ID}
	payer, err := p.ResolvePayer(db)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", payer)
}

func TestResolvePayerFromPurchase(t *testing.T) {
	db := newTestDB(t)

	partner := &Partner{Name: "Herbal Supplies Co", Kind: PartnerSupplier}
	require.NoError(t, db.Create(partner).Error)
	purchase := &Purchase{Number: "PUR-payer", PartnerID: partner.ID}
	require.NoError(t, db.Create(purchase).Error)

	p := &Payment{Amount: 100, PurchaseID: &purchase.ID}
	payer, err := p.ResolvePayer(db)
	require.NoError(t, err)
	assert.Equal(t, "Herbal Supplies Co", payer)
}

func TestResolvePayerExplicitFallback(t *testing.T) {
	db := newTestDB(t)

	p := &Payment{Amount: 100, PayerName: "Walk-in"}
	payer, err := p.ResolvePayer(db)
	require.NoError(t, err)
	assert.Equal(t, "Walk-in", payer)
}

func TestResolvePayerMissingOrder(t *testing.T) {
	db := newTestDB(t)

	missing := uint(999)
	p := &Payment{Amount: 100, OrderID: &missing}
	_, err := p.ResolvePayer(db)
	assert.Error(t, err)
}

func TestTransactionDefaults(t *testing.T) {
	db := newTestDB(t)

	tr := &Transaction{Amount: 100, Kind: TransactionIncome}
	require.NoError(t, db.Create(tr).Error)
	assert.Equal(t, SourceManual, tr.Source)
	assert.False(t, tr.OccurredAt.IsZero())
}
