package aggregate

import (
	"github.com/shopspring/decimal"

	"groStats/internal/model"
)

const apyPlaces = 4

// DefaultPwrdYieldShare is the fraction of its own yield pwrd keeps; the rest
// is paid to gvt holders for carrying the risk.
var DefaultPwrdYieldShare = decimal.RequireFromString("0.2")

// ApyEstimator splits the trailing yield signal between pwrd and gvt.
type ApyEstimator struct {
	PwrdYieldShare decimal.Decimal
}

func NewApyEstimator(pwrdYieldShare decimal.Decimal) ApyEstimator {
	if pwrdYieldShare.IsNegative() || pwrdYieldShare.GreaterThan(one) {
		pwrdYieldShare = DefaultPwrdYieldShare
	}
	return ApyEstimator{PwrdYieldShare: pwrdYieldShare}
}

// Compute derives the APY breakdown from the TVL split and last3d signal.
//
//	pwrd = last3d * s
//	gvt  = last3d * (1 + u * (1 - s)),  u = pwrdTvl / gvtTvl
//
// With no gvt TVL the gvt figure falls back to last3d.
func (e ApyEstimator) Compute(gvtTvl, pwrdTvl, last3dApy decimal.Decimal) model.Apy {
	share := e.PwrdYieldShare
	pwrd := last3dApy.Mul(share)
	gvt := last3dApy
	if gvtTvl.IsPositive() {
		util := pwrdTvl.Div(gvtTvl)
		gvt = last3dApy.Mul(one.Add(util.Mul(one.Sub(share))))
	}

	apy := EmptyApy("0")
	apy.Current = model.TokenPair{
		Pwrd: formatApy(pwrd),
		Gvt:  formatApy(gvt),
	}
	return apy
}

func formatApy(d decimal.Decimal) string {
	return d.Round(apyPlaces).String()
}

// EmptyApy is an APY section filled with value.
func EmptyApy(value string) model.Apy {
	pair := model.TokenPair{Pwrd: value, Gvt: value}
	return model.Apy{
		Last24h:   pair,
		Last7d:    pair,
		Daily:     pair,
		Weekly:    pair,
		Monthly:   pair,
		AllTime:   pair,
		Current:   pair,
		HodlBonus: value,
	}
}
