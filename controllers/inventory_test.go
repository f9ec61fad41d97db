package controllers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thetahouse/thetahouse/models"
)

func newStockDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.StockMovement{}))
	return db
}

func TestApplyMovement(t *testing.T) {
	db := newStockDB(t)

	product := &models.Product{Name: "Lavender Oil", SKU: "OIL-LAV", Price: 300, StockQty: 10}
	require.NoError(t, db.Create(product).Error)

	require.NoError(t, ApplyMovement(db, product.ID, 5, models.MovementPurchase, "purchase:1", ""))
	require.NoError(t, ApplyMovement(db, product.ID, -3, models.MovementSale, "order:7", ""))

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 12, got.StockQty)

	var movements []models.StockMovement
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&movements).Error)
	assert.Len(t, movements, 2)
}

func TestApplyMovementRejectsNegativeStock(t *testing.T) {
	db := newStockDB(t)

	product := &models.Product{Name: "Lavender Oil", SKU: "OIL-LAV", Price: 300, StockQty: 2}
	require.NoError(t, db.Create(product).Error)

	err := ApplyMovement(db, product.ID, -5, models.MovementSale, "order:9", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")

	// Neither the quantity nor the movement log changed
	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 2, got.StockQty)

	var count int64
	require.NoError(t, db.Model(&models.StockMovement{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplyMovementUnknownProduct(t *testing.T) {
	db := newStockDB(t)
	assert.Error(t, ApplyMovement(db, 999, 1, models.MovementAdjustment, "", ""))
}
