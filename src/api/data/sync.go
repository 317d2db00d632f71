package data

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/shopspring/decimal"
	"github.com/starpool-io/launchpad-admin/src/api/types"
	"github.com/starpool-io/launchpad-admin/src/pool"
	"github.com/starpool-io/launchpad-admin/src/webclient"
)

// RunPoolSync periodically pulls raw pool records from the platform backend,
// normalizes them and folds drifted on-chain fields back into the stored
// snapshot. Runs until ctx is cancelled.
func RunPoolSync(ctx context.Context, backend *webclient.Client, db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := syncOnce(ctx, backend, db); err != nil {
				log.Printf("pool sync: %v", err)
			}
		}
	}
}

func syncOnce(ctx context.Context, backend *webclient.Client, db *gorm.DB) error {
	var raws []pool.RawPoolRecord
	if err := backend.GetJSON(ctx, "/pools", &raws); err != nil {
		return fmt.Errorf("fetch pools: %w", err)
	}

	for _, raw := range raws {
		normalized := pool.Normalize(raw)

		var row types.Pool
		err := db.First(&row, "slug = ?", normalized.Slug).Error
		if err == gorm.ErrRecordNotFound {
			continue // pool not managed by this console yet
		}
		if err != nil {
			return err
		}

		updates := driftUpdates(row, normalized)
		if len(updates) == 0 {
			continue
		}
		log.Printf("pool sync: %s drifted, updating %d fields", normalized.Slug, len(updates))
		if err := db.Model(&row).Updates(updates).Error; err != nil {
			return err
		}
	}
	return nil
}

// driftUpdates compares the stored snapshot against a freshly normalized
// record and returns only the columns that changed.
func driftUpdates(row types.Pool, p pool.Pool) map[string]interface{} {
	updates := map[string]interface{}{}

	if row.IsInitialized != p.IsInitialized {
		updates["is_initialized"] = p.IsInitialized
	}
	if !sameAmount(row.SoldAmount, p.SoldAmount) {
		updates["sold_amount"] = p.SoldAmount.String()
	}
	if !sameTime(row.JoinPoolStart, p.JoinPoolStart) {
		updates["join_pool_start"] = p.JoinPoolStart
	}
	if !sameTime(row.JoinPoolEnd, p.JoinPoolEnd) {
		updates["join_pool_end"] = p.JoinPoolEnd
	}
	if !sameTime(row.ClaimAt, p.ClaimAt) {
		updates["claim_at"] = p.ClaimAt
	}
	if row.EarlyJoinActive != p.EarlyJoinPhase.Active {
		updates["early_join_active"] = p.EarlyJoinPhase.Active
	}
	if row.ExclusiveActive != p.ExclusivePhase.Active {
		updates["exclusive_active"] = p.ExclusivePhase.Active
	}
	if row.FcfsStakeActive != p.FcfsStakePhase.Active {
		updates["fcfs_stake_active"] = p.FcfsStakePhase.Active
	}
	if p.EarlyJoinPhase.Active && row.EarlyJoinDuration != p.EarlyJoinPhase.DurationMinutes {
		updates["early_join_duration"] = p.EarlyJoinPhase.DurationMinutes
	}
	if p.ExclusivePhase.Active && row.ExclusiveDuration != p.ExclusivePhase.DurationMinutes {
		updates["exclusive_duration"] = p.ExclusivePhase.DurationMinutes
	}
	if p.FcfsStakePhase.Active && row.FcfsStakeDuration != p.FcfsStakePhase.DurationMinutes {
		updates["fcfs_stake_duration"] = p.FcfsStakePhase.DurationMinutes
	}
	return updates
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// sameAmount compares a stored decimal column against a computed amount
// numerically, so trailing zeros from rounding ("2" vs "2.000000000") do not
// read as drift. An unparseable column is always drift.
func sameAmount(col string, d decimal.Decimal) bool {
	stored, err := decimal.NewFromString(col)
	if err != nil {
		return false
	}
	return stored.Equal(d)
}
