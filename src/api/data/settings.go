package data

import (
	"log"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/starpool-io/launchpad-admin/src/api/types"
)

// Well-known setting names.
const (
	SettingFeeRate      = "fee_rate"      // platform fee, e.g. "0.02"
	SettingRequiredVote = "required_vote" // default vote threshold for new pools
)

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings loads all settings from database into cache
func LoadSettings(db *gorm.DB) error {
	var settings []types.Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string)
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}

	return nil
}

// GetSetting retrieves a setting value by name
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}

// RefreshSettings reloads settings from database
func RefreshSettings(db *gorm.DB) error {
	return LoadSettings(db)
}

// FeeRate returns the platform fee as a decimal fraction, zero when unset or
// unparseable.
func FeeRate() decimal.Decimal {
	v := GetSetting(SettingFeeRate)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		log.Printf("settings: bad fee_rate %q", v)
		return decimal.Zero
	}
	return d
}

// RequiredVote returns the default vote threshold, zero when unset.
func RequiredVote() int64 {
	n, _ := strconv.ParseInt(GetSetting(SettingRequiredVote), 10, 64)
	return n
}
