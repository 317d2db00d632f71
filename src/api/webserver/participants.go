package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/starpool-io/launchpad-admin/src/api/types"
	"github.com/starpool-io/launchpad-admin/src/pool"
)

type Participants struct{ db *gorm.DB }

func NewParticipants(db *gorm.DB) Participants { return Participants{db: db} }

type participantView struct {
	Address    string `json:"address"`
	Tier       uint8  `json:"tier"`
	Allocation string `json:"allocation"` // display units
	Claimed    string `json:"claimed"`
	JoinedAt   string `json:"joined_at"`
}

func (h Participants) List(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}

	var poolRow types.Pool
	if err := h.db.First(&poolRow, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "pool not found"})
		return
	}

	var rows []types.Participant
	if err := h.db.Where("pool_id = ?", id).Order("joined_at").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	rate, err := decimal.NewFromString(poolRow.TokenRatio)
	if err != nil {
		rate = decimal.Zero // ToDisplay treats this as 1 and logs
	}

	out := make([]participantView, 0, len(rows))
	total := decimal.Zero
	for _, r := range rows {
		alloc := decimalColumn(r.Allocation)
		claimed := decimalColumn(r.Claimed)
		display := pool.ToDisplay(alloc, rate, poolRow.TokenDecimals)
		total = total.Add(display)
		out = append(out, participantView{
			Address:    r.Address,
			Tier:       r.Tier,
			Allocation: display.String(),
			Claimed:    pool.ToDisplay(claimed, rate, poolRow.TokenDecimals).String(),
			JoinedAt:   r.JoinedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":            len(out),
		"total_allocation": total.String(),
		"participants":     out,
	})
}

// decimalColumn parses a decimal column, reading garbage as zero.
func decimalColumn(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
