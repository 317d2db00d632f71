package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/starpool-io/launchpad-admin/src/api/config"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://admin.starpool.io"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	secret := []byte(cfg.JWTSecret)
	authH := NewAuth(rdb, secret)
	poolH := NewPools(db, rdb)
	wlH := NewWhitelist(db)
	partH := NewParticipants(db)
	wdH := NewWithdrawals(db)
	voteH := NewVotes(db)
	adminH := NewAdmin(db)

	authLimiter := NewRateLimiter(10, time.Minute)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/challenge", RateLimitMiddleware(authLimiter), authH.Challenge)
		v1.POST("/auth/verify", RateLimitMiddleware(authLimiter), authH.Verify)

		secured := v1.Group("")
		secured.Use(JWTMiddleware(secret))
		{
			secured.GET("/pools", poolH.List)
			secured.GET("/pools/:id", poolH.Get)
			secured.GET("/pools/:id/whitelist", wlH.List)
			secured.GET("/pools/:id/participants", partH.List)
			secured.GET("/pools/:id/withdrawable", wdH.Balance)
			secured.GET("/pools/:id/votes", voteH.Summary)
			secured.POST("/pools/:id/votes", voteH.Cast)
			secured.GET("/settings", adminH.ListSettings)
			secured.GET("/tiers", adminH.ListTiers)
		}

		admin := v1.Group("")
		admin.Use(JWTMiddleware(secret), AdminMiddleware(db))
		{
			admin.POST("/pools", poolH.Create)
			admin.PUT("/pools/:id", poolH.Update)
			admin.PUT("/pools/:id/timing", poolH.UpdateTiming)
			admin.POST("/pools/:id/whitelist", wlH.Add)
			admin.DELETE("/pools/:id/whitelist/:address", wlH.Remove)
			admin.POST("/pools/:id/withdrawals", wdH.Create)
			admin.PUT("/settings/:name", adminH.SetSetting)
			admin.PUT("/tiers/:level", adminH.SetTier)
		}
	}
}
