package stats

import (
	"strconv"
	"time"

	"groStats/internal/model"
)

// Snapshot extracts the persisted APY/TVL observation from a protocol document.
func Snapshot(doc model.ProtocolStats, createdAt time.Time) model.ApySnapshot {
	ts, _ := strconv.ParseUint(doc.CurrentTimestamp, 10, 64)
	return model.ApySnapshot{
		Network:     doc.Network,
		Timestamp:   ts,
		ApyPwrd:     doc.Apy.Current.Pwrd,
		ApyGvt:      doc.Apy.Current.Gvt,
		TvlPwrd:     doc.Tvl.Pwrd,
		TvlGvt:      doc.Tvl.Gvt,
		TvlTotal:    doc.Tvl.Total,
		Last3dApy:   doc.System.Last3dApy,
		CreatedAtTs: strconv.FormatInt(createdAt.Unix(), 10),
	}
}
