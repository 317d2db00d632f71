package pool

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func window(active bool, start, end int64) *PhaseWindow {
	return &PhaseWindow{IsActive: active, StartAt: start, EndAt: end}
}

func rawWithCampaign(version uint8, c *RawCampaign) RawPoolRecord {
	return RawPoolRecord{
		ID:      7,
		Slug:    "moonshot",
		Version: version,
		Token:   RawToken{Symbol: "MSHT", Decimals: 9},
		Rate:    decimal.NewFromInt(1),
		Data:    &RawOnchain{IsInitialized: true, Campaign: c},
	}
}

func TestNormalizeJoinWindowPerVersion(t *testing.T) {
	const (
		optStart = 1000
		optEnd   = 2000
		pubStart = 2000
		pubEnd   = 9000
	)
	public := window(true, pubStart, pubEnd)

	cases := []struct {
		name    string
		version uint8
		c       *RawCampaign
	}{
		{"v1 early", 1, &RawCampaign{EarlyJoinPhase: window(true, optStart, optEnd), PublicPhase: public}},
		{"v2 exclusive", 2, &RawCampaign{ExclusivePhase: window(true, optStart, optEnd), PublicPhase: public}},
		{"v3 exclusive", 3, &RawCampaign{ExclusivePhase: window(true, optStart, optEnd), PublicPhase: public}},
		{"v3 fcfs", 3, &RawCampaign{FcfsStakePhase: window(true, optStart, optEnd), PublicPhase: public}},
		{"v4 early", 4, &RawCampaign{EarlyJoinPhase: window(true, optStart, optEnd), PublicPhase: public}},
		{"v4 fcfs", 4, &RawCampaign{FcfsStakePhase: window(true, optStart, optEnd), PublicPhase: public}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Normalize(rawWithCampaign(tc.version, tc.c))
			require.NotNil(t, p.JoinPoolStart)
			require.NotNil(t, p.JoinPoolEnd)
			require.Equal(t, int64(optStart), p.JoinPoolStart.Unix())
			require.Equal(t, int64(pubEnd), p.JoinPoolEnd.Unix())
		})
	}
}

func TestNormalizeNoOptionalPhase(t *testing.T) {
	p := Normalize(rawWithCampaign(4, &RawCampaign{PublicPhase: window(true, 2000, 9000)}))

	require.Equal(t, int64(2000), p.JoinPoolStart.Unix())
	require.Equal(t, int64(9000), p.JoinPoolEnd.Unix())
	require.False(t, p.EarlyJoinPhase.Active)
	require.Nil(t, p.EarlyJoinPhase.StartAt)
}

func TestNormalizeMissingOnchainData(t *testing.T) {
	raw := rawWithCampaign(1, nil)
	raw.Data = nil

	p := Normalize(raw)

	require.False(t, p.IsInitialized)
	require.Nil(t, p.JoinPoolStart)
	require.Nil(t, p.JoinPoolEnd)
	require.Nil(t, p.ClaimAt)
	require.True(t, p.SoldAmount.IsZero())
}

func TestNormalizeVersionFallback(t *testing.T) {
	early := &RawCampaign{
		EarlyJoinPhase: window(true, 1000, 2000),
		PublicPhase:    window(true, 2000, 9000),
	}
	for _, v := range []uint8{0, 9} {
		p := Normalize(rawWithCampaign(v, early))
		require.Equal(t, V1, p.Version)
		require.Equal(t, int64(1000), p.JoinPoolStart.Unix())
	}
}

func TestNormalizeSoldAmountSumsActivePhases(t *testing.T) {
	raw := rawWithCampaign(4, &RawCampaign{
		ExclusivePhase: &PhaseWindow{IsActive: true, StartAt: 1000, EndAt: 2000, SoldAllocation: decimal.NewFromInt(3_000_000_000)},
		FcfsStakePhase: &PhaseWindow{IsActive: false, SoldAllocation: decimal.NewFromInt(999)},
		PublicPhase:    &PhaseWindow{IsActive: true, StartAt: 2000, EndAt: 9000, SoldAllocation: decimal.NewFromInt(1_000_000_000)},
	})
	raw.Rate = decimal.NewFromInt(2)

	p := Normalize(raw)

	// 3e9/2 + 1e9/2 in display units; the inactive phase is excluded.
	require.True(t, p.SoldAmount.Equal(decimal.NewFromInt(2)), "got %s", p.SoldAmount)
}

func TestNormalizeTierAggregation(t *testing.T) {
	raw := rawWithCampaign(4, &RawCampaign{PublicPhase: window(true, 2000, 9000)})
	raw.Rate = decimal.NewFromInt(2)
	raw.AllocationTiers = []AllocationLevel{
		{Level: 1, NumberOfUsers: 10, MaxIndividualAmount: decimal.NewFromInt(5_000_000_000)},
	}

	p := Normalize(raw)

	require.Len(t, p.Tiers, 1)
	require.True(t, p.Tiers[0].MaxIndividual.Equal(decimal.RequireFromString("2.5")))
	require.True(t, p.Tiers[0].Total.Equal(decimal.NewFromInt(25)))
}

func TestNormalizeTiersOnlyV4(t *testing.T) {
	raw := rawWithCampaign(3, &RawCampaign{PublicPhase: window(true, 2000, 9000)})
	raw.AllocationTiers = []AllocationLevel{{Level: 1, NumberOfUsers: 5, MaxIndividualAmount: decimal.NewFromInt(1)}}

	require.Nil(t, Normalize(raw).Tiers)
}

func TestNormalizeVoteSufficiency(t *testing.T) {
	raw := rawWithCampaign(4, &RawCampaign{PublicPhase: window(true, 2000, 9000)})
	raw.TotalVoteUp = 120
	raw.TotalVoteDown = 30
	raw.RequiredVote = 90

	require.True(t, Normalize(raw).IsEnoughVote)

	raw.RequiredVote = 91
	require.False(t, Normalize(raw).IsEnoughVote)
}

func TestNormalizePhaseDuration(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Unix()
	raw := rawWithCampaign(2, &RawCampaign{
		ExclusivePhase: window(true, start, start+45*60),
		PublicPhase:    window(true, start+45*60, start+3600*24),
	})

	require.Equal(t, int64(45), Normalize(raw).ExclusivePhase.DurationMinutes)
}
