package mt

import "vecvcg/statsagg"

// Record converts Stats into a statsagg.Record for aggregation alongside
// the rest of a multi-resource solve or leave-one-out pass.
func (s Stats) Record() statsagg.Record {
	return statsagg.Record{
		"totalRuntime": s.TotalRuntime.Seconds(),
		"dsBuildTime":  s.DsBuildTime.Seconds(),
		"unitsAwarded": s.UnitsAwarded,
		"playerCount":  s.PlayerCount,
	}
}
