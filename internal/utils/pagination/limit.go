package pagination

// ClampLimit bounds a requested page size to [minLimit, maxLimit].
// A maxLimit of zero or less leaves the upper side open.
func ClampLimit(limit, minLimit, maxLimit int) int {
	if limit < minLimit {
		return minLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		return maxLimit
	}
	return limit
}

// LimitOrDefault substitutes def when the caller supplied no limit (zero or less).
func LimitOrDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
