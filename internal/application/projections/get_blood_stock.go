package projections

import (
	"context"

	"bloodbank/internal/domain/donor"
)

// StockLevel is the net millilitres available for one blood group.
type StockLevel struct {
	BloodGroup string `json:"blood_group"`
	Donated    int    `json:"donated"`
	Fulfilled  int    `json:"fulfilled"`
	Available  int    `json:"available"`
}

// GetBloodStockDeps holds dependencies for the blood stock projection.
type GetBloodStockDeps struct {
	DonationStore DonationReadStore
	RequestStore  RequestReadStore
}

// QueryGetBloodStock computes per-group availability as total donated
// millilitres minus millilitres consumed by fulfilled requests. Every blood
// group appears in the result even with zero activity, and a group that has
// fulfilled more than it collected reports a negative balance rather than
// being clamped.
func QueryGetBloodStock(ctx context.Context, deps GetBloodStockDeps) ([]StockLevel, error) {
	donated, err := deps.DonationStore.QuantityByBloodGroup(ctx)
	if err != nil {
		return nil, err
	}
	fulfilled, err := deps.RequestStore.FulfilledByBloodGroup(ctx)
	if err != nil {
		return nil, err
	}

	in := make(map[string]int, len(donated))
	for _, g := range donated {
		in[g.BloodGroup] = g.Quantity
	}
	out := make(map[string]int, len(fulfilled))
	for _, g := range fulfilled {
		out[g.BloodGroup] = g.Quantity
	}

	levels := make([]StockLevel, 0, len(donor.BloodGroups))
	for _, group := range donor.BloodGroups {
		levels = append(levels, StockLevel{
			BloodGroup: group,
			Donated:    in[group],
			Fulfilled:  out[group],
			Available:  in[group] - out[group],
		})
	}
	return levels, nil
}
