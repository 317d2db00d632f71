package webserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/starpool-io/launchpad-admin/src/api/data"
	"github.com/starpool-io/launchpad-admin/src/api/types"
)

type Admin struct {
	db *gorm.DB
}

func NewAdmin(db *gorm.DB) Admin {
	return Admin{db: db}
}

// AdminMiddleware requires the authenticated address to be registered staff.
func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admin types.AdminUser
		if err := db.First(&admin, "address = ?", c.GetString("addr")).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"err": "admin access required"})
			c.Abort()
			return
		}
		c.Set("role", admin.Role)
		c.Next()
	}
}

func (a Admin) ListSettings(c *gin.Context) {
	var settings []types.Setting
	if err := a.db.Order("name").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (a Admin) SetSetting(c *gin.Context) {
	name := c.Param("name")
	var req struct {
		Value string `json:"value" binding:"required,max=256"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	log.Printf("admin %s setting %s = %s", c.GetString("addr"), name, req.Value)

	var setting types.Setting
	err := a.db.Where("name = ?", name).First(&setting).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		err = a.db.Create(&types.Setting{Name: name, Value: req.Value}).Error
	case err == nil:
		err = a.db.Model(&setting).Update("value", req.Value).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	if err := data.RefreshSettings(a.db); err != nil {
		log.Printf("settings refresh: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a Admin) ListTiers(c *gin.Context) {
	var tiers []types.StakingTier
	if err := a.db.Order("level").Find(&tiers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tiers)
}

func (a Admin) SetTier(c *gin.Context) {
	level, err := strconv.ParseUint(c.Param("level"), 10, 8)
	if err != nil || level < 1 || level > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "tier level must be 1-5"})
		return
	}

	var req struct {
		Name       string `json:"name" binding:"required,max=32"`
		MinStake   string `json:"minStake" binding:"required"`
		PoolWeight uint32 `json:"poolWeight" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	tier := types.StakingTier{
		Level:      uint8(level),
		Name:       req.Name,
		MinStake:   req.MinStake,
		PoolWeight: req.PoolWeight,
	}
	if err := a.db.Save(&tier).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	log.Printf("admin %s updated staking tier %d", c.GetString("addr"), level)
	c.JSON(http.StatusOK, tier)
}
