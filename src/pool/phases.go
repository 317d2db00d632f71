package pool

import "time"

// unixTime converts a unix-seconds wire timestamp to UTC, treating 0 as unset.
func unixTime(s int64) *time.Time {
	if s == 0 {
		return nil
	}
	t := time.Unix(s, 0).UTC()
	return &t
}

// normalizePhase converts one raw phase window to display units. A nil window
// (phase absent from this contract version) reads as an inactive phase.
func normalizePhase(w *PhaseWindow, rate Rate) Phase {
	if w == nil {
		return Phase{}
	}
	p := Phase{
		Active:         w.IsActive,
		StartAt:        unixTime(w.StartAt),
		EndAt:          unixTime(w.EndAt),
		MaxTotalAlloc:  ToDisplay(w.MaxTotalAlloc, rate.Ratio, rate.Decimals),
		SoldAllocation: ToDisplay(w.SoldAllocation, rate.Ratio, rate.Decimals),
		JoinedUsers:    w.NumberJoinedUser,
	}
	if p.StartAt != nil && p.EndAt != nil {
		p.DurationMinutes = int64(p.EndAt.Sub(*p.StartAt) / time.Minute)
	}
	return p
}

// joinWindow walks phases in contract order and returns the start of the
// first active phase and the end of the terminal (public) phase. The contract
// keeps phases contiguous and ordered with public as the always-active
// catch-all, so the join window is exactly that pair.
func joinWindow(ordered ...Phase) (start, end *time.Time) {
	for _, p := range ordered {
		if p.Active {
			start = p.StartAt
			break
		}
	}
	public := ordered[len(ordered)-1]
	return start, public.EndAt
}
