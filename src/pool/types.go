package pool

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchemaVersion identifies the sale-contract layout a raw record was produced by.
// The campaign account gained phases over time: V1 has early-join, V2 swapped it
// for the exclusive (whitelist) phase, V3 added fcfs-stake, V4 carries all three
// optional phases ahead of the public one.
type SchemaVersion uint8

const (
	V1 SchemaVersion = iota + 1
	V2
	V3
	V4
)

// RawToken is the off-chain token descriptor attached to a pool record.
type RawToken struct {
	Address  string `json:"token_address"`
	Name     string `json:"token_name"`
	Symbol   string `json:"token_symbol"`
	Decimals int32  `json:"token_decimals"`
}

// PhaseWindow is one join phase as stored on the campaign account. Amounts are
// raw token base units; timestamps are unix seconds (0 = unset).
type PhaseWindow struct {
	IsActive         bool            `json:"is_active"`
	StartAt          int64           `json:"start_at"`
	EndAt            int64           `json:"end_at"`
	MaxTotalAlloc    decimal.Decimal `json:"max_total_alloc"`
	SoldAllocation   decimal.Decimal `json:"sold_allocation"`
	NumberJoinedUser int             `json:"number_joined_user"`
}

// AllocationLevel is one exclusive-phase stake tier (contract versions 4 and up).
// MaxIndividualAmount is raw base units.
type AllocationLevel struct {
	Level               int             `json:"level"`
	NumberOfUsers       int             `json:"number_of_users"`
	MaxIndividualAmount decimal.Decimal `json:"max_individual_amount"`
}

// RawCampaign is the on-chain campaign sub-object. Phases absent from older
// contract versions arrive as null and stay nil here.
type RawCampaign struct {
	EarlyJoinPhase *PhaseWindow `json:"early_join_phase,omitempty"`
	ExclusivePhase *PhaseWindow `json:"exclusive_phase,omitempty"`
	FcfsStakePhase *PhaseWindow `json:"fcfs_stake_phase,omitempty"`
	PublicPhase    *PhaseWindow `json:"public_phase,omitempty"`
	ClaimAt        int64        `json:"claim_at"`
}

// RawOnchain is the on-chain half of a pool record.
type RawOnchain struct {
	IsInitialized bool         `json:"is_initialized"`
	Campaign      *RawCampaign `json:"campaign,omitempty"`
}

// RawPoolRecord is the combined off-chain/on-chain record as the backend
// serves it. Version 0 means the record predates version tagging and is read
// as version 1.
type RawPoolRecord struct {
	ID              uint64            `json:"id"`
	Slug            string            `json:"slug"`
	Name            string            `json:"name"`
	Version         uint8             `json:"version,omitempty"`
	Token           RawToken          `json:"token"`
	Rate            decimal.Decimal   `json:"token_ratio"`
	Description     string            `json:"description"`
	Banner          string            `json:"banner"`
	Website         string            `json:"website"`
	ContractAddress string            `json:"contract_address"`
	TotalVoteUp     int64             `json:"total_vote_up"`
	TotalVoteDown   int64             `json:"total_vote_down"`
	RequiredVote    int64             `json:"required_absolute_vote"`
	AllocationTiers []AllocationLevel `json:"allocation_levels,omitempty"`
	Data            *RawOnchain       `json:"data,omitempty"`
}

// Phase is a normalized join phase. Amounts are display units, timestamps UTC.
type Phase struct {
	Active          bool            `json:"active"`
	StartAt         *time.Time      `json:"start_at,omitempty"`
	EndAt           *time.Time      `json:"end_at,omitempty"`
	MaxTotalAlloc   decimal.Decimal `json:"max_total_alloc"`
	SoldAllocation  decimal.Decimal `json:"sold_allocation"`
	JoinedUsers     int             `json:"joined_users"`
	DurationMinutes int64           `json:"duration_minutes"`
}

// TierAllocation is one exclusive-phase tier in display units.
// Total = Users * MaxIndividual.
type TierAllocation struct {
	Level         int             `json:"level"`
	Users         int             `json:"users"`
	MaxIndividual decimal.Decimal `json:"max_individual"`
	Total         decimal.Decimal `json:"total"`
}

// Pool is the flat view model every admin screen consumes. Built fresh from a
// RawPoolRecord on each fetch and never mutated afterwards.
type Pool struct {
	ID              uint64          `json:"id"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Version         SchemaVersion   `json:"version"`
	TokenAddress    string          `json:"token_address"`
	TokenName       string          `json:"token_name"`
	TokenSymbol     string          `json:"token_symbol"`
	TokenDecimals   int32           `json:"token_decimals"`
	Rate            decimal.Decimal `json:"token_ratio"`
	Description     string          `json:"description"`
	Banner          string          `json:"banner"`
	Website         string          `json:"website"`
	ContractAddress string          `json:"contract_address"`

	IsInitialized bool       `json:"is_initialized"`
	JoinPoolStart *time.Time `json:"join_pool_start,omitempty"`
	JoinPoolEnd   *time.Time `json:"join_pool_end,omitempty"`
	ClaimAt       *time.Time `json:"claim_at,omitempty"`

	EarlyJoinPhase Phase `json:"early_join_phase"`
	ExclusivePhase Phase `json:"exclusive_phase"`
	FcfsStakePhase Phase `json:"fcfs_stake_phase"`
	PublicPhase    Phase `json:"public_phase"`

	SoldAmount decimal.Decimal  `json:"sold_amount"`
	Tiers      []TierAllocation `json:"tiers,omitempty"`

	TotalVoteUp   int64 `json:"total_vote_up"`
	TotalVoteDown int64 `json:"total_vote_down"`
	RequiredVote  int64 `json:"required_absolute_vote"`
	IsEnoughVote  bool  `json:"is_enough_vote"`
}

// TimingForm is an immutable snapshot of a pool's committed schedule next to
// the values an admin proposes. Durations are minutes. Callers must populate
// the committed side from the most recently fetched pool state; a stale
// baseline makes change detection lie.
type TimingForm struct {
	EarlyJoinActive bool
	ExclusiveActive bool
	FcfsStakeActive bool

	JoinPoolStart     time.Time
	JoinPoolEnd       time.Time
	ClaimAt           time.Time
	EarlyJoinDuration int64
	ExclusiveDuration int64
	FcfsStakeDuration int64

	NewJoinPoolStart     time.Time
	NewJoinPoolEnd       time.Time
	NewClaimAt           time.Time
	NewEarlyJoinDuration int64
	NewExclusiveDuration int64
	NewFcfsStakeDuration int64
}

// UpdatePlan is the minimal set of phase timestamps an on-chain update must
// carry. Nil fields are omitted from the instruction entirely so unrelated
// campaign fields are never reset.
type UpdatePlan struct {
	NeedUpdate           bool       `json:"need_update"`
	EarlyJoinStartAt     *time.Time `json:"earlyJoinStartAt,omitempty"`
	EarlyJoinEndAt       *time.Time `json:"earlyJoinEndAt,omitempty"`
	ExclusiveJoinStartAt *time.Time `json:"exclusiveJoinStartAt,omitempty"`
	ExclusiveJoinEndAt   *time.Time `json:"exclusiveJoinEndAt,omitempty"`
	FcfsStakeJoinStartAt *time.Time `json:"fcfsStakeJoinStartAt,omitempty"`
	FcfsStakeJoinEndAt   *time.Time `json:"fcfsStakeJoinEndAt,omitempty"`
	PublicJoinStartAt    *time.Time `json:"publicJoinStartAt,omitempty"`
	PublicJoinEndAt      *time.Time `json:"publicJoinEndAt,omitempty"`
	ClaimAt              *time.Time `json:"claimAt,omitempty"`
}
