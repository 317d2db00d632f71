package pool

import "time"

// Reconcile compares a proposed schedule against the committed one and
// produces the minimal set of phase timestamps the on-chain update must
// carry. It is pure: identical input yields identical output, and it raises
// no errors — rejecting nonsensical schedules (end before start and the like)
// is the caller's validation concern.
//
// Derivation follows the contract's phase ordering: the public phase always
// ends the window; each enabled optional phase starts where the previous one
// ends and runs for its configured duration. The public start is pushed to
// the end of the last enabled optional phase. Fields for disabled phases stay
// nil so a partial update cannot clear unrelated campaign state.
//
// Contracts without an early-join phase (schema v3) are handled by the same
// rule with EarlyJoinActive left false.
func Reconcile(f TimingForm) UpdatePlan {
	plan := UpdatePlan{
		PublicJoinEndAt: timePtr(f.NewJoinPoolEnd),
		ClaimAt:         timePtr(f.NewClaimAt),
	}
	need := !sameMillis(f.NewJoinPoolEnd, f.JoinPoolEnd) || !sameMillis(f.NewClaimAt, f.ClaimAt)

	switch {
	case f.EarlyJoinActive:
		start := f.NewJoinPoolStart
		end := start.Add(minutes(f.NewEarlyJoinDuration))
		plan.EarlyJoinStartAt = timePtr(start)
		plan.EarlyJoinEndAt = timePtr(end)
		if !sameMillis(start, f.JoinPoolStart) || f.NewEarlyJoinDuration != f.EarlyJoinDuration {
			need = true
		}

		publicStart := end
		if f.FcfsStakeActive {
			fcfsEnd := end.Add(minutes(f.NewFcfsStakeDuration))
			plan.FcfsStakeJoinStartAt = timePtr(end)
			plan.FcfsStakeJoinEndAt = timePtr(fcfsEnd)
			publicStart = fcfsEnd
			if f.NewFcfsStakeDuration != f.FcfsStakeDuration {
				need = true
			}
		}
		plan.PublicJoinStartAt = timePtr(publicStart)

	case f.ExclusiveActive:
		start := f.NewJoinPoolStart
		end := start.Add(minutes(f.NewExclusiveDuration))
		plan.ExclusiveJoinStartAt = timePtr(start)
		plan.ExclusiveJoinEndAt = timePtr(end)
		if !sameMillis(start, f.JoinPoolStart) || f.NewExclusiveDuration != f.ExclusiveDuration {
			need = true
		}

		publicStart := end
		if f.FcfsStakeActive {
			fcfsEnd := end.Add(minutes(f.NewFcfsStakeDuration))
			plan.FcfsStakeJoinStartAt = timePtr(end)
			plan.FcfsStakeJoinEndAt = timePtr(fcfsEnd)
			publicStart = fcfsEnd
			if f.NewFcfsStakeDuration != f.FcfsStakeDuration {
				need = true
			}
		}
		plan.PublicJoinStartAt = timePtr(publicStart)

	default:
		start := f.NewJoinPoolStart
		plan.PublicJoinStartAt = timePtr(start)
		if !sameMillis(start, f.JoinPoolStart) {
			need = true
		}
	}

	plan.NeedUpdate = need
	return plan
}

func minutes(m int64) time.Duration {
	return time.Duration(m) * time.Minute
}

// sameMillis compares two instants at millisecond resolution, the precision
// the contract stores. Comparing instants rather than rendered strings keeps
// timezone serialization from manufacturing phantom changes.
func sameMillis(a, b time.Time) bool {
	return a.UnixMilli() == b.UnixMilli()
}

func timePtr(t time.Time) *time.Time {
	return &t
}
