package pool

import (
	"log"

	"github.com/shopspring/decimal"
)

// parseVersion maps the wire version tag onto a SchemaVersion. Zero (records
// that predate version tagging) reads as V1; anything above V4 also falls back
// to V1, the oldest contract shape, and is flagged in the log so an unnoticed
// contract upgrade does not silently misread records.
func parseVersion(v uint8) SchemaVersion {
	switch v {
	case 0:
		return V1
	case uint8(V1), uint8(V2), uint8(V3), uint8(V4):
		return SchemaVersion(v)
	default:
		log.Printf("pool: unsupported schema version %d, reading as v1", v)
		return V1
	}
}

// Normalize flattens a raw combined off-chain/on-chain record into the Pool
// view model. It is pure and tolerates missing on-chain data: phases a
// contract version does not carry come out inactive, not as errors.
func Normalize(raw RawPoolRecord) Pool {
	version := parseVersion(raw.Version)

	decimals := raw.Token.Decimals
	if decimals <= 0 {
		decimals = DefaultQuoteDecimals
	}
	rate := Rate{Ratio: raw.Rate, Decimals: decimals}

	p := Pool{
		ID:              raw.ID,
		Slug:            raw.Slug,
		Name:            raw.Name,
		Version:         version,
		TokenAddress:    raw.Token.Address,
		TokenName:       raw.Token.Name,
		TokenSymbol:     raw.Token.Symbol,
		TokenDecimals:   decimals,
		Rate:            raw.Rate,
		Description:     raw.Description,
		Banner:          raw.Banner,
		Website:         raw.Website,
		ContractAddress: raw.ContractAddress,
		TotalVoteUp:     raw.TotalVoteUp,
		TotalVoteDown:   raw.TotalVoteDown,
		RequiredVote:    raw.RequiredVote,
	}
	p.IsEnoughVote = raw.RequiredVote <= raw.TotalVoteUp-raw.TotalVoteDown

	var campaign *RawCampaign
	if raw.Data != nil {
		p.IsInitialized = raw.Data.IsInitialized
		campaign = raw.Data.Campaign
	}
	if campaign == nil {
		campaign = &RawCampaign{}
	}

	p.EarlyJoinPhase = normalizePhase(campaign.EarlyJoinPhase, rate)
	p.ExclusivePhase = normalizePhase(campaign.ExclusivePhase, rate)
	p.FcfsStakePhase = normalizePhase(campaign.FcfsStakePhase, rate)
	p.PublicPhase = normalizePhase(campaign.PublicPhase, rate)
	p.ClaimAt = unixTime(campaign.ClaimAt)

	switch version {
	case V1:
		if p.EarlyJoinPhase.Active {
			p.JoinPoolStart = p.EarlyJoinPhase.StartAt
		} else {
			p.JoinPoolStart = p.PublicPhase.StartAt
		}
		p.JoinPoolEnd = p.PublicPhase.EndAt
	case V2:
		if p.ExclusivePhase.Active {
			p.JoinPoolStart = p.ExclusivePhase.StartAt
		} else {
			p.JoinPoolStart = p.PublicPhase.StartAt
		}
		p.JoinPoolEnd = p.PublicPhase.EndAt
	case V3:
		p.JoinPoolStart, p.JoinPoolEnd = joinWindow(p.ExclusivePhase, p.FcfsStakePhase, p.PublicPhase)
	case V4:
		p.JoinPoolStart, p.JoinPoolEnd = joinWindow(p.EarlyJoinPhase, p.ExclusivePhase, p.FcfsStakePhase, p.PublicPhase)
	}

	p.SoldAmount = soldAmount(p.EarlyJoinPhase, p.ExclusivePhase, p.FcfsStakePhase, p.PublicPhase)

	if version >= V4 {
		p.Tiers = tierAllocations(raw.AllocationTiers, rate)
	}

	return p
}

// soldAmount sums the already-converted sold allocation of every active
// phase. Each phase is converted independently before summing; the phases
// share one rate but not necessarily one provenance.
func soldAmount(phases ...Phase) decimal.Decimal {
	total := decimal.Zero
	for _, p := range phases {
		if p.Active {
			total = total.Add(p.SoldAllocation)
		}
	}
	return total
}

// tierAllocations converts the exclusive-phase stake tiers to display units.
// Levels run 1..5; the per-tier total is users * per-user cap.
func tierAllocations(levels []AllocationLevel, rate Rate) []TierAllocation {
	if len(levels) == 0 {
		return nil
	}
	tiers := make([]TierAllocation, 0, len(levels))
	for _, l := range levels {
		maxIndividual := ToDisplay(l.MaxIndividualAmount, rate.Ratio, rate.Decimals)
		tiers = append(tiers, TierAllocation{
			Level:         l.Level,
			Users:         l.NumberOfUsers,
			MaxIndividual: maxIndividual,
			Total:         maxIndividual.Mul(decimal.NewFromInt(int64(l.NumberOfUsers))),
		})
	}
	return tiers
}
