package join

import "vecvcg/statsagg"

// Record converts BuildStats into a statsagg.Record for aggregation
// across chain folds and leave-one-out builds.
func (s BuildStats) Record() statsagg.Record {
	return statsagg.Record{
		"totalRuntime":       s.TotalRuntime.Seconds(),
		"dsCreatePointsTime": s.DsCreatePointsTime.Seconds(),
		"dsBuildTime":        s.DsBuildTime.Seconds(),
		"dsQueryTime":        s.DsQueryTime.Seconds(),
		"dsQueryFetchTime":   s.DsQueryFetchTime.Seconds(),

		"expectedComparedPoints": s.ExpectedComparedPoints,
		"comparedPoints":         s.ComparedPoints,
		"comparedInBoundPoints":  s.ComparedInBoundPoints,
		"comparedEdgePoints":     s.ComparedEdgePoints,
		"comparedBruteForce":     s.ComparedBruteForce,

		"dsPts":           s.DsPts,
		"totalPts":        s.TotalPts,
		"totalQueries":    s.TotalQueries,
		"joinedFuncCount": s.JoinedFuncCount,
		"bruteForceCount": s.BruteForceCount,

		"method": s.Method,
	}
}
