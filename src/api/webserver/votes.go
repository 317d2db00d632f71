package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/starpool-io/launchpad-admin/src/api/data"
	"github.com/starpool-io/launchpad-admin/src/api/types"
)

type Votes struct{ db *gorm.DB }

func NewVotes(db *gorm.DB) Votes { return Votes{db: db} }

func (v Votes) Cast(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}

	var req struct {
		Choice string `json:"choice" binding:"required,oneof=up down"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var poolRow types.Pool
	if err := v.db.First(&poolRow, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "pool not found"})
		return
	}

	choice := int16(0)
	if req.Choice == "up" {
		choice = 1
	}

	// Recasting replaces the previous vote.
	v.db.Where("pool_id = ? AND address = ?", id, c.GetString("addr")).Delete(&types.PoolVote{})

	vote := types.PoolVote{
		PoolID:  id,
		Address: c.GetString("addr"),
		Choice:  choice,
	}
	if err := v.db.Create(&vote).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}

func (v Votes) Summary(c *gin.Context) {
	id, ok := poolID(c)
	if !ok {
		return
	}

	var poolRow types.Pool
	if err := v.db.First(&poolRow, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "pool not found"})
		return
	}

	type agg struct {
		Choice int16
		Count  int64
	}
	var rows []agg
	v.db.Table("pool_votes").Select("choice, count(*) as count").
		Where("pool_id = ?", id).Group("choice").Scan(&rows)

	var up, down int64
	for _, r := range rows {
		switch r.Choice {
		case 1:
			up = r.Count
		case 0:
			down = r.Count
		}
	}

	required := poolRow.RequiredVote
	if required == 0 {
		required = data.RequiredVote()
	}

	c.JSON(http.StatusOK, gin.H{
		"up":             up,
		"down":           down,
		"required":       required,
		"is_enough_vote": required <= up-down,
	})
}
