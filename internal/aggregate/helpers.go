package aggregate

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"groStats/internal/model"
)

const (
	day           = 24 * time.Hour
	harvestWindow = 15 * day
	apyWindow     = 3 * day
	daysPerYear   = 365
)

var (
	one      = decimal.NewFromInt(1)
	apyScale = decimal.NewFromInt(daysPerYear).Div(decimal.NewFromInt(int64(apyWindow / day)))
)

func parseUnix(value model.FlexString) (time.Time, bool) {
	ts, err := strconv.ParseInt(strings.TrimSpace(value.String()), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(ts, 0).UTC(), true
}

func parseID(value model.FlexString) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(value.String()))
	if err != nil {
		return 0, false
	}
	return id, true
}

func clamp01(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(one) {
		return one
	}
	return d
}
