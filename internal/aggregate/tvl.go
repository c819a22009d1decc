package aggregate

import (
	"github.com/shopspring/decimal"

	"groStats/internal/amount"
	"groStats/internal/model"
)

// TvlValues are the numeric TVL components used by the APY estimator.
type TvlValues struct {
	Pwrd  decimal.Decimal
	Gvt   decimal.Decimal
	Total decimal.Decimal
	Util  decimal.Decimal
}

// ComputeTvl values pwrd at its based supply over the rebasing factor and gvt
// at supply times price.
func ComputeTvl(core model.CoreData, factor model.Factor, price model.Price, master model.MasterData) (model.Tvl, TvlValues) {
	pwrd := amount.Div(amount.Parse(core.TotalSupplyPwrdBased.String()), amount.Parse(factor.Pwrd.String()))
	gvt := amount.Parse(core.TotalSupplyGvt.String()).Mul(amount.Parse(price.Gvt.String()))
	total := pwrd.Add(gvt)
	util := decimal.Zero
	if gvt.IsPositive() {
		util = pwrd.Div(gvt)
	}
	limit := amount.Str(amount.Parse(master.UtilRatioLimit.String()))

	return model.Tvl{
			Pwrd:             amount.Str(pwrd),
			Gvt:              amount.Str(gvt),
			Total:            amount.Str(total),
			UtilRatio:        amount.Str(util),
			UtilRatioLimitPD: limit,
			UtilRatioLimitGW: limit,
		}, TvlValues{
			Pwrd:  pwrd,
			Gvt:   gvt,
			Total: total,
			Util:  util,
		}
}

// EmptyTvl is a TVL section filled with value.
func EmptyTvl(value string) model.Tvl {
	return model.Tvl{
		Pwrd:             value,
		Gvt:              value,
		Total:            value,
		UtilRatio:        value,
		UtilRatioLimitPD: value,
		UtilRatioLimitGW: value,
	}
}
