package webserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/starpool-io/launchpad-admin/src/api/types"
)

type Whitelist struct{ db *gorm.DB }

func NewWhitelist(db *gorm.DB) Whitelist { return Whitelist{db: db} }

func poolID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad pool id"})
		return 0, false
	}
	return id, true
}

func (w Whitelist) List(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}

	var entries []types.WhitelistEntry
	if err := w.db.Where("pool_id = ?", id).Order("created_at").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(entries), "entries": entries})
}

func (w Whitelist) Add(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}

	var req struct {
		Addresses []string `json:"addresses" binding:"required,min=1,max=500,dive,min=32,max=64"`
		Tier      uint8    `json:"tier" binding:"omitempty,max=5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var poolRow types.Pool
	if err := w.db.First(&poolRow, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "pool not found"})
		return
	}

	added := 0
	for _, addr := range req.Addresses {
		entry := types.WhitelistEntry{PoolID: id, Address: addr, Tier: req.Tier}
		res := w.db.Where("pool_id = ? AND address = ?", id, addr).FirstOrCreate(&entry)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"err": res.Error.Error()})
			return
		}
		if res.RowsAffected > 0 {
			added++
		}
	}

	log.Printf("admin %s whitelisted %d/%d addresses on pool %d",
		c.GetString("addr"), added, len(req.Addresses), id)
	c.JSON(http.StatusOK, gin.H{"added": added, "skipped": len(req.Addresses) - added})
}

func (w Whitelist) Remove(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}

	res := w.db.Where("pool_id = ? AND address = ?", id, c.Param("address")).
		Delete(&types.WhitelistEntry{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"err": "address not whitelisted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
