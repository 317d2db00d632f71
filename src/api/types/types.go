package types

import "time"

// Pools (off-chain metadata plus the last synced on-chain snapshot).
// Monetary columns hold decimal strings; arithmetic happens in src/pool.
type Pool struct {
	ID              uint64 `gorm:"primaryKey"`
	Slug            string `gorm:"size:128;uniqueIndex;not null"`
	Name            string `gorm:"size:255;not null"`
	Version         uint8  `gorm:"default:1"`
	TokenAddress    string `gorm:"size:64"`
	TokenName       string `gorm:"size:64"`
	TokenSymbol     string `gorm:"size:16"`
	TokenDecimals   int32  `gorm:"default:9"`
	TokenRatio      string `gorm:"size:64;default:1"`
	Description     string `gorm:"type:text"`
	Banner          string `gorm:"size:512"`
	Website         string `gorm:"size:256"`
	ContractAddress string `gorm:"size:64;index"`
	Status          string `gorm:"size:32;index;default:draft"`

	IsInitialized bool `gorm:"default:false"`
	JoinPoolStart *time.Time
	JoinPoolEnd   *time.Time
	ClaimAt       *time.Time

	EarlyJoinActive   bool  `gorm:"default:false"`
	ExclusiveActive   bool  `gorm:"default:false"`
	FcfsStakeActive   bool  `gorm:"default:false"`
	EarlyJoinDuration int64 `gorm:"default:0"` // minutes
	ExclusiveDuration int64 `gorm:"default:0"`
	FcfsStakeDuration int64 `gorm:"default:0"`

	SoldAmount   string `gorm:"size:64;default:0"`
	RequiredVote int64  `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Whitelist    []WhitelistEntry `gorm:"foreignKey:PoolID"`
	Participants []Participant    `gorm:"foreignKey:PoolID"`
}

// Whitelist entries for the exclusive phase
type WhitelistEntry struct {
	ID        uint64 `gorm:"primaryKey"`
	PoolID    uint64 `gorm:"uniqueIndex:idx_pool_address;not null"`
	Address   string `gorm:"uniqueIndex:idx_pool_address;size:64;not null"`
	Tier      uint8  `gorm:"default:0"`
	CreatedAt time.Time
	Pool      Pool `gorm:"foreignKey:PoolID"`
}

// Participants with their allocations (raw base units as decimal strings)
type Participant struct {
	ID         uint64 `gorm:"primaryKey"`
	PoolID     uint64 `gorm:"index;not null"`
	Address    string `gorm:"size:64;not null"`
	Allocation string `gorm:"size:64;default:0"`
	Claimed    string `gorm:"size:64;default:0"`
	Tier       uint8  `gorm:"default:0"`
	JoinedAt   time.Time
	Pool       Pool `gorm:"foreignKey:PoolID"`
}

// Withdrawal records (fee split computed at creation time)
type Withdrawal struct {
	ID        uint64 `gorm:"primaryKey"`
	PoolID    uint64 `gorm:"uniqueIndex:idx_pool_currency;not null"`
	Currency  string `gorm:"uniqueIndex:idx_pool_currency;size:16;not null"`
	Amount    string `gorm:"size:64;not null"`
	Fee       string `gorm:"size:64;not null"`
	TxRef     string `gorm:"size:128"`
	CreatedBy string `gorm:"size:64;not null"`
	CreatedAt time.Time
	Pool      Pool `gorm:"foreignKey:PoolID"`
}

// Community votes on pools (off-chain, one per address per pool)
type PoolVote struct {
	ID        uint64 `gorm:"primaryKey"`
	PoolID    uint64 `gorm:"index;not null"`
	Address   string `gorm:"size:64;not null"`
	Choice    int16  `gorm:"not null"` // 1 up, 0 down
	CreatedAt time.Time
	Pool      Pool `gorm:"foreignKey:PoolID"`
}

// Staking tiers feeding the exclusive-phase allocation levels
type StakingTier struct {
	Level      uint8  `gorm:"primaryKey"`
	Name       string `gorm:"size:32;not null"`
	MinStake   string `gorm:"size:64;not null"`
	PoolWeight uint32 `gorm:"default:1"`
}

// Platform settings (fee rate, vote threshold, ...)
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}

// Console staff
type AdminUser struct {
	Address   string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:64"`
	Role      string `gorm:"size:32;default:operator"` // operator|superadmin
	CreatedAt time.Time
}
