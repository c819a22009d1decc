package aggregate

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"groStats/internal/amount"
	"groStats/internal/model"
)

// Every strategy routes through the 3pool, so each of its stablecoins and
// Curve itself are reported at full concentration.
var (
	baseStablecoins = []string{"DAI", "USDC", "USDT"}
	baseProtocol    = "Curve"
)

// ComputeExposure rolls strategy amounts into stablecoin (metacoin) and
// protocol concentrations, as fractions of the total strategy amount.
func ComputeExposure(vaults []model.Vault) model.Exposure {
	total := decimal.Zero
	byMetacoin := newGroupTotals()
	byProtocol := newGroupTotals()

	for _, vault := range vaults {
		for _, strat := range vault.Strategies {
			value := amount.Parse(strat.Amount)
			total = total.Add(value)
			byMetacoin.add(strat.Metacoin, value)
			byProtocol.add(strat.Protocol, value)
		}
	}

	stablecoins := make([]model.ExposureItem, 0, len(baseStablecoins)+len(byMetacoin.keys))
	for _, coin := range baseStablecoins {
		stablecoins = append(stablecoins, exposureItem(coin, decimal.NewFromInt(1)))
	}
	stablecoins = append(stablecoins, byMetacoin.items(total)...)

	protocols := make([]model.ExposureItem, 0, 1+len(byProtocol.keys))
	protocols = append(protocols, exposureItem(baseProtocol, decimal.NewFromInt(1)))
	protocols = append(protocols, byProtocol.items(total)...)

	return model.Exposure{
		Stablecoins: stablecoins,
		Protocols:   protocols,
	}
}

// EmptyExposure is the exposure section when vault data is unavailable.
func EmptyExposure() model.Exposure {
	return model.Exposure{
		Stablecoins: []model.ExposureItem{},
		Protocols:   []model.ExposureItem{},
	}
}

type groupTotals struct {
	keys   []string
	totals map[string]decimal.Decimal
}

func newGroupTotals() *groupTotals {
	return &groupTotals{totals: make(map[string]decimal.Decimal)}
}

func (g *groupTotals) add(key string, value decimal.Decimal) {
	key = strings.ToUpper(strings.TrimSpace(key))
	prev, ok := g.totals[key]
	if !ok {
		g.keys = append(g.keys, key)
	}
	g.totals[key] = prev.Add(value)
}

func (g *groupTotals) items(total decimal.Decimal) []model.ExposureItem {
	keys := append([]string(nil), g.keys...)
	sort.Strings(keys)
	items := make([]model.ExposureItem, 0, len(keys))
	for _, key := range keys {
		items = append(items, exposureItem(key, amount.Div(g.totals[key], total)))
	}
	return items
}

func exposureItem(name string, concentration decimal.Decimal) model.ExposureItem {
	return model.ExposureItem{
		Name:          name,
		DisplayName:   name,
		Concentration: amount.Str(concentration),
	}
}
