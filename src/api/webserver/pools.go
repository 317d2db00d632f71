package webserver

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/starpool-io/launchpad-admin/src/api/data"
	"github.com/starpool-io/launchpad-admin/src/api/types"
	"github.com/starpool-io/launchpad-admin/src/pool"
)

type Pools struct {
	db       *gorm.DB
	rdb      *redis.Client
	sanitize *bluemonday.Policy
}

func NewPools(db *gorm.DB, rdb *redis.Client) Pools {
	return Pools{db: db, rdb: rdb, sanitize: bluemonday.UGCPolicy()}
}

func (p Pools) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := p.db.Model(&types.Pool{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	q.Count(&total)

	var pools []types.Pool
	if err := q.Order("id desc").Offset((page - 1) * limit).Limit(limit).Find(&pools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "page": page, "pools": pools})
}

// findPool resolves :id as a numeric id or a slug.
func (p Pools) findPool(c *gin.Context) (types.Pool, bool) {
	var row types.Pool
	key := c.Param("id")
	var err error
	if id, convErr := strconv.ParseUint(key, 10, 64); convErr == nil {
		err = p.db.First(&row, "id = ?", id).Error
	} else {
		err = p.db.First(&row, "slug = ?", key).Error
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "pool not found"})
		return row, false
	}
	return row, true
}

func (p Pools) Get(c *gin.Context) {
	row, ok := p.findPool(c)
	if !ok {
		return
	}

	var up, down int64
	p.db.Model(&types.PoolVote{}).Where("pool_id = ? AND choice = 1", row.ID).Count(&up)
	p.db.Model(&types.PoolVote{}).Where("pool_id = ? AND choice = 0", row.ID).Count(&down)

	required := row.RequiredVote
	if required == 0 {
		required = data.RequiredVote()
	}

	c.JSON(http.StatusOK, gin.H{
		"pool":            row,
		"total_vote_up":   up,
		"total_vote_down": down,
		"is_enough_vote":  required <= up-down,
	})
}

type poolMetaRequest struct {
	Slug            string `json:"slug" binding:"required,max=128"`
	Name            string `json:"name" binding:"required,max=255"`
	Version         uint8  `json:"version" binding:"omitempty,min=1,max=4"`
	TokenAddress    string `json:"tokenAddress" binding:"max=64"`
	TokenName       string `json:"tokenName" binding:"max=64"`
	TokenSymbol     string `json:"tokenSymbol" binding:"max=16"`
	TokenDecimals   int32  `json:"tokenDecimals" binding:"omitempty,min=0,max=18"`
	TokenRatio      string `json:"tokenRatio"`
	Description     string `json:"description"`
	Banner          string `json:"banner" binding:"max=512"`
	Website         string `json:"website" binding:"max=256"`
	ContractAddress string `json:"contractAddress" binding:"max=64"`
	RequiredVote    int64  `json:"requiredVote" binding:"omitempty,min=0"`
}

func (p Pools) Create(c *gin.Context) {
	var req poolMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	ratio := "1"
	if req.TokenRatio != "" {
		d, err := decimal.NewFromString(req.TokenRatio)
		if err != nil || d.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "tokenRatio must be a positive decimal"})
			return
		}
		ratio = d.String()
	}

	version := req.Version
	if version == 0 {
		version = 1
	}
	decimals := req.TokenDecimals
	if decimals == 0 {
		decimals = pool.DefaultQuoteDecimals
	}
	required := req.RequiredVote
	if required == 0 {
		required = data.RequiredVote()
	}

	row := types.Pool{
		Slug:            req.Slug,
		Name:            req.Name,
		Version:         version,
		TokenAddress:    req.TokenAddress,
		TokenName:       req.TokenName,
		TokenSymbol:     req.TokenSymbol,
		TokenDecimals:   decimals,
		TokenRatio:      ratio,
		Description:     p.sanitize.Sanitize(req.Description),
		Banner:          req.Banner,
		Website:         req.Website,
		ContractAddress: req.ContractAddress,
		Status:          "draft",
		SoldAmount:      "0",
		RequiredVote:    required,
	}
	if err := p.db.Create(&row).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"err": err.Error()})
		return
	}

	log.Printf("admin %s created pool %s", c.GetString("addr"), row.Slug)
	c.JSON(http.StatusCreated, row)
}

func (p Pools) Update(c *gin.Context) {
	row, ok := p.findPool(c)
	if !ok {
		return
	}

	var req poolMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": p.sanitize.Sanitize(req.Description),
		"banner":      req.Banner,
		"website":     req.Website,
	}
	if req.TokenRatio != "" {
		d, err := decimal.NewFromString(req.TokenRatio)
		if err != nil || d.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "tokenRatio must be a positive decimal"})
			return
		}
		updates["token_ratio"] = d.String()
	}
	if req.RequiredVote > 0 {
		updates["required_vote"] = req.RequiredVote
	}

	if err := p.db.Model(&row).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type timingRequest struct {
	JoinPoolStart     time.Time `json:"joinPoolStart" binding:"required"`
	JoinPoolEnd       time.Time `json:"joinPoolEnd" binding:"required"`
	ClaimAt           time.Time `json:"claimAt" binding:"required"`
	EarlyJoinActive   bool      `json:"earlyJoinActive"`
	ExclusiveActive   bool      `json:"exclusiveActive"`
	FcfsStakeActive   bool      `json:"fcfsStakeActive"`
	EarlyJoinDuration int64     `json:"earlyJoinDuration" binding:"omitempty,min=0"`
	ExclusiveDuration int64     `json:"exclusiveDuration" binding:"omitempty,min=0"`
	FcfsStakeDuration int64     `json:"fcfsStakeDuration" binding:"omitempty,min=0"`
}

// UpdateTiming reconciles the proposed schedule against the committed one and,
// when something actually changed, persists the new schedule and hands the
// minimal update plan to the on-chain worker. Unchanged fields are never
// written anywhere.
func (p Pools) UpdateTiming(c *gin.Context) {
	row, ok := p.findPool(c)
	if !ok {
		return
	}

	var req timingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if !req.JoinPoolEnd.After(req.JoinPoolStart) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "joinPoolEnd must be after joinPoolStart"})
		return
	}
	if req.ClaimAt.Before(req.JoinPoolEnd) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "claimAt must not precede joinPoolEnd"})
		return
	}
	switch {
	case row.Version <= 1 && (req.ExclusiveActive || req.FcfsStakeActive):
		c.JSON(http.StatusBadRequest, gin.H{"err": "contract version 1 supports only the early-join phase"})
		return
	case row.Version == 2 && (req.EarlyJoinActive || req.FcfsStakeActive):
		c.JSON(http.StatusBadRequest, gin.H{"err": "contract version 2 supports only the exclusive phase"})
		return
	case row.Version == 3 && req.EarlyJoinActive:
		c.JSON(http.StatusBadRequest, gin.H{"err": "early-join phase requires contract version 4"})
		return
	}

	form := pool.TimingForm{
		EarlyJoinActive: req.EarlyJoinActive,
		ExclusiveActive: req.ExclusiveActive,
		FcfsStakeActive: req.FcfsStakeActive,

		JoinPoolStart:     timeOrZero(row.JoinPoolStart),
		JoinPoolEnd:       timeOrZero(row.JoinPoolEnd),
		ClaimAt:           timeOrZero(row.ClaimAt),
		EarlyJoinDuration: row.EarlyJoinDuration,
		ExclusiveDuration: row.ExclusiveDuration,
		FcfsStakeDuration: row.FcfsStakeDuration,

		NewJoinPoolStart:     req.JoinPoolStart,
		NewJoinPoolEnd:       req.JoinPoolEnd,
		NewClaimAt:           req.ClaimAt,
		NewEarlyJoinDuration: req.EarlyJoinDuration,
		NewExclusiveDuration: req.ExclusiveDuration,
		NewFcfsStakeDuration: req.FcfsStakeDuration,
	}
	plan := pool.Reconcile(form)

	if !plan.NeedUpdate {
		c.JSON(http.StatusOK, plan)
		return
	}

	updates := map[string]interface{}{
		"join_pool_start":     req.JoinPoolStart.UTC(),
		"join_pool_end":       req.JoinPoolEnd.UTC(),
		"claim_at":            req.ClaimAt.UTC(),
		"early_join_active":   req.EarlyJoinActive,
		"exclusive_active":    req.ExclusiveActive,
		"fcfs_stake_active":   req.FcfsStakeActive,
		"early_join_duration": req.EarlyJoinDuration,
		"exclusive_duration":  req.ExclusiveDuration,
		"fcfs_stake_duration": req.FcfsStakeDuration,
	}
	if err := p.db.Model(&row).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	if err := data.PublishPoolEvent(c, p.rdb, planEvent(row.ID, plan)); err != nil {
		log.Printf("pool %d: publish timing event: %v", row.ID, err)
	}
	log.Printf("admin %s updated timing for pool %s", c.GetString("addr"), row.Slug)
	c.JSON(http.StatusOK, plan)
}

// planEvent flattens an update plan into stream fields, dropping absent
// timestamps so the worker only touches changed campaign fields.
func planEvent(poolID uint64, plan pool.UpdatePlan) map[string]interface{} {
	ev := map[string]interface{}{"kind": "pool.timing", "pool_id": poolID}
	put := func(key string, t *time.Time) {
		if t != nil {
			ev[key] = t.UnixMilli()
		}
	}
	put("early_join_start_at", plan.EarlyJoinStartAt)
	put("early_join_end_at", plan.EarlyJoinEndAt)
	put("exclusive_join_start_at", plan.ExclusiveJoinStartAt)
	put("exclusive_join_end_at", plan.ExclusiveJoinEndAt)
	put("fcfs_stake_join_start_at", plan.FcfsStakeJoinStartAt)
	put("fcfs_stake_join_end_at", plan.FcfsStakeJoinEndAt)
	put("public_join_start_at", plan.PublicJoinStartAt)
	put("public_join_end_at", plan.PublicJoinEndAt)
	put("claim_at", plan.ClaimAt)
	return ev
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
