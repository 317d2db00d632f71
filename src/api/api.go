package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/starpool-io/launchpad-admin/src/api/config"
	"github.com/starpool-io/launchpad-admin/src/api/data"
	"github.com/starpool-io/launchpad-admin/src/api/types"
	"github.com/starpool-io/launchpad-admin/src/api/webserver"
	"github.com/starpool-io/launchpad-admin/src/webclient"
)

var allModels = []interface{}{
	&types.Pool{}, &types.WhitelistEntry{},
	&types.Participant{}, &types.Withdrawal{},
	&types.PoolVote{}, &types.StakingTier{},
	&types.Setting{}, &types.AdminUser{},
}

func migrate(db *gorm.DB) {
	err := db.AutoMigrate(allModels...)

	if err == nil {
		return
	}

	log.Printf("auto-migrate failed (%v) - dropping & recreating schema", err)
	_ = db.Migrator().DropTable(
		"withdrawals", "pool_votes", "participants",
		"whitelist_entries", "pools", "staking_tiers",
		"settings", "admin_users",
	)
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate after drop: %v", err)
	}
}

func seedDefaults(db *gorm.DB) {
	defaults := []types.Setting{
		{Name: data.SettingFeeRate, Value: "0.02"},
		{Name: data.SettingRequiredVote, Value: "500"},
	}
	for _, s := range defaults {
		var row types.Setting
		_ = db.Where(types.Setting{Name: s.Name}).
			Attrs(types.Setting{Value: s.Value}).
			FirstOrCreate(&row).Error
	}

	tiers := []types.StakingTier{
		{Level: 1, Name: "Dove", MinStake: "500", PoolWeight: 1},
		{Level: 2, Name: "Hawk", MinStake: "5000", PoolWeight: 3},
		{Level: 3, Name: "Eagle", MinStake: "20000", PoolWeight: 8},
		{Level: 4, Name: "Phoenix", MinStake: "60000", PoolWeight: 20},
		{Level: 5, Name: "Dragon", MinStake: "150000", PoolWeight: 50},
	}
	for _, t := range tiers {
		var row types.StakingTier
		_ = db.Where(types.StakingTier{Level: t.Level}).
			Attrs(t).
			FirstOrCreate(&row).Error
	}
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)
	seedDefaults(db)

	if err := data.LoadSettings(db); err != nil {
		log.Fatalf("settings: %v", err)
	}

	rdb := data.MustRedis(cfg.RedisURL)

	ctx, cancel := context.WithCancel(context.Background())
	backend := webclient.New(cfg.BackendURL, 30*time.Second)
	go data.RunPoolSync(ctx, backend, db, time.Duration(cfg.SyncInterval)*time.Second)

	router := webserver.New(cfg, db, rdb)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("launchpad admin API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
