package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// committedEarly is a baseline schedule with only the early-join phase on.
func committedEarly() TimingForm {
	return TimingForm{
		EarlyJoinActive:      true,
		JoinPoolStart:        t0,
		JoinPoolEnd:          t0.Add(7 * 24 * time.Hour),
		ClaimAt:              t0.Add(8 * 24 * time.Hour),
		EarlyJoinDuration:    20,
		NewJoinPoolStart:     t0,
		NewJoinPoolEnd:       t0.Add(7 * 24 * time.Hour),
		NewClaimAt:           t0.Add(8 * 24 * time.Hour),
		NewEarlyJoinDuration: 20,
	}
}

func TestReconcileNoChanges(t *testing.T) {
	plan := Reconcile(committedEarly())

	require.False(t, plan.NeedUpdate)
	// Timestamps are still derived even when nothing changed; the caller
	// decides to skip the on-chain call.
	require.NotNil(t, plan.EarlyJoinStartAt)
	require.NotNil(t, plan.EarlyJoinEndAt)
	require.NotNil(t, plan.PublicJoinStartAt)
	require.NotNil(t, plan.PublicJoinEndAt)
	require.NotNil(t, plan.ClaimAt)
	require.Nil(t, plan.ExclusiveJoinStartAt)
	require.Nil(t, plan.FcfsStakeJoinStartAt)
}

func TestReconcileEarlyDurationChanged(t *testing.T) {
	f := committedEarly()
	f.NewEarlyJoinDuration = 30

	plan := Reconcile(f)

	require.True(t, plan.NeedUpdate)
	require.True(t, plan.EarlyJoinEndAt.Equal(t0.Add(30*time.Minute)))
	require.True(t, plan.PublicJoinStartAt.Equal(t0.Add(30*time.Minute)))
}

func TestReconcileExclusiveWithFcfs(t *testing.T) {
	f := TimingForm{
		ExclusiveActive:      true,
		FcfsStakeActive:      true,
		JoinPoolStart:        t0,
		JoinPoolEnd:          t0.Add(48 * time.Hour),
		ClaimAt:              t0.Add(72 * time.Hour),
		ExclusiveDuration:    30,
		FcfsStakeDuration:    30,
		NewJoinPoolStart:     t0,
		NewJoinPoolEnd:       t0.Add(48 * time.Hour),
		NewClaimAt:           t0.Add(72 * time.Hour),
		NewExclusiveDuration: 60,
		NewFcfsStakeDuration: 45,
	}

	plan := Reconcile(f)

	require.True(t, plan.NeedUpdate)
	require.True(t, plan.ExclusiveJoinStartAt.Equal(t0))
	require.True(t, plan.ExclusiveJoinEndAt.Equal(t0.Add(60*time.Minute)))
	require.True(t, plan.FcfsStakeJoinStartAt.Equal(t0.Add(60*time.Minute)))
	require.True(t, plan.FcfsStakeJoinEndAt.Equal(t0.Add(105*time.Minute)))
	require.True(t, plan.PublicJoinStartAt.Equal(t0.Add(105*time.Minute)))
	require.Nil(t, plan.EarlyJoinStartAt)
	require.Nil(t, plan.EarlyJoinEndAt)
}

func TestReconcileEarlyWithFcfsChains(t *testing.T) {
	// Early-join plus fcfs-stake without exclusive: fcfs chains off the end
	// of the early phase, same rule as chaining off exclusive.
	f := committedEarly()
	f.FcfsStakeActive = true
	f.FcfsStakeDuration = 45
	f.NewFcfsStakeDuration = 45

	plan := Reconcile(f)

	require.False(t, plan.NeedUpdate)
	require.True(t, plan.FcfsStakeJoinStartAt.Equal(*plan.EarlyJoinEndAt))
	require.True(t, plan.FcfsStakeJoinEndAt.Equal(t0.Add(65*time.Minute)))
	require.True(t, plan.PublicJoinStartAt.Equal(t0.Add(65*time.Minute)))
}

func TestReconcileNoOptionalPhases(t *testing.T) {
	f := TimingForm{
		JoinPoolStart:    t0,
		JoinPoolEnd:      t0.Add(time.Hour),
		ClaimAt:          t0.Add(2 * time.Hour),
		NewJoinPoolStart: t0.Add(10 * time.Minute),
		NewJoinPoolEnd:   t0.Add(time.Hour),
		NewClaimAt:       t0.Add(2 * time.Hour),
	}

	plan := Reconcile(f)

	require.True(t, plan.NeedUpdate)
	require.True(t, plan.PublicJoinStartAt.Equal(t0.Add(10*time.Minute)))
	require.Nil(t, plan.EarlyJoinStartAt)
	require.Nil(t, plan.ExclusiveJoinStartAt)
	require.Nil(t, plan.FcfsStakeJoinStartAt)
}

func TestReconcileDetectsEachField(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TimingForm)
	}{
		{"start", func(f *TimingForm) { f.NewJoinPoolStart = f.NewJoinPoolStart.Add(time.Millisecond) }},
		{"end", func(f *TimingForm) { f.NewJoinPoolEnd = f.NewJoinPoolEnd.Add(time.Millisecond) }},
		{"claim", func(f *TimingForm) { f.NewClaimAt = f.NewClaimAt.Add(time.Millisecond) }},
		{"early duration", func(f *TimingForm) { f.NewEarlyJoinDuration++ }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := committedEarly()
			tc.mutate(&f)
			require.True(t, Reconcile(f).NeedUpdate)
		})
	}
}

func TestReconcileIgnoresTimezoneRendering(t *testing.T) {
	// Same instant in a different location is not a change.
	f := committedEarly()
	loc := time.FixedZone("UTC+7", 7*3600)
	f.NewJoinPoolStart = f.NewJoinPoolStart.In(loc)
	f.NewJoinPoolEnd = f.NewJoinPoolEnd.In(loc)
	f.NewClaimAt = f.NewClaimAt.In(loc)

	require.False(t, Reconcile(f).NeedUpdate)
}

func TestReconcileIdempotent(t *testing.T) {
	f := committedEarly()
	f.NewEarlyJoinDuration = 30

	first := Reconcile(f)
	second := Reconcile(f)

	require.Equal(t, first, second)
}
