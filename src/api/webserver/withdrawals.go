package webserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/starpool-io/launchpad-admin/src/api/data"
	"github.com/starpool-io/launchpad-admin/src/api/types"
)

type Withdrawals struct{ db *gorm.DB }

func NewWithdrawals(db *gorm.DB) Withdrawals { return Withdrawals{db: db} }

// Balance reports what the platform can withdraw from a pool: sold amount
// less the platform fee.
func (h Withdrawals) Balance(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}

	var row types.Pool
	if err := h.db.First(&row, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "pool not found"})
		return
	}

	sold := decimalColumn(row.SoldAmount)
	feeRate := data.FeeRate()
	fee := sold.Mul(feeRate).Round(row.TokenDecimals)
	net := sold.Sub(fee)

	c.JSON(http.StatusOK, gin.H{
		"sold_amount":  sold.String(),
		"fee_rate":     feeRate.String(),
		"fee":          fee.String(),
		"withdrawable": net.String(),
	})
}

// Create records a withdrawal. One withdrawal per pool and currency: repeat
// requests return the existing record instead of double-recording.
func (h Withdrawals) Create(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}

	var req struct {
		Currency string `json:"currency" binding:"required,max=16"`
		TxRef    string `json:"txRef" binding:"max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var row types.Pool
	if err := h.db.First(&row, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "pool not found"})
		return
	}

	var existing types.Withdrawal
	if err := h.db.First(&existing, "pool_id = ? AND currency = ?", id, req.Currency).Error; err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}

	sold := decimalColumn(row.SoldAmount)
	if sold.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "nothing to withdraw"})
		return
	}
	fee := sold.Mul(data.FeeRate()).Round(row.TokenDecimals)

	wd := types.Withdrawal{
		PoolID:    id,
		Currency:  req.Currency,
		Amount:    sold.Sub(fee).String(),
		Fee:       fee.String(),
		TxRef:     req.TxRef,
		CreatedBy: c.GetString("addr"),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.db.Create(&wd).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	log.Printf("admin %s withdrew %s %s from pool %d (fee %s)",
		wd.CreatedBy, wd.Amount, wd.Currency, id, wd.Fee)
	c.JSON(http.StatusCreated, wd)
}
