// Package breakeven builds parallel cost and equity timelines for competing
// mortgage decisions and locates the month at which one path becomes, and
// remains, the better one.
package breakeven

// firstStableCrossover returns the 1-indexed month at which holds first
// becomes true and continues to hold through the horizon, or nil when it never
// does. A single-month dip back below the threshold disqualifies everything
// before it.
func firstStableCrossover(horizon int, holds func(month int) bool) *int {
	if horizon <= 0 {
		return nil
	}
	lastMiss := 0
	for month := horizon; month >= 1; month-- {
		if !holds(month) {
			lastMiss = month
			break
		}
	}
	if lastMiss == horizon {
		return nil
	}
	month := lastMiss + 1
	return &month
}
