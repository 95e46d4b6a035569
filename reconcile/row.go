package reconcile

// Row is one user's aggregated punch activity for one calendar day, grouped
// upstream from raw time-clock events. For a single punch only SingleTime is
// meaningful; for two or more punches ActualIn is the earliest and ActualOut
// the latest observed punch. Empty strings stand for absent values.
type Row struct {
	UserID     string
	Date       string
	PunchCount int
	ActualIn   string
	ActualOut  string
	SingleTime string
}

// usable reports whether the row carries enough punch data to classify.
// Unusable rows are skipped silently, not treated as errors.
func (r Row) usable() bool {
	if r.UserID == "" || r.Date == "" {
		return false
	}
	switch {
	case r.PunchCount == 1:
		return r.SingleTime != ""
	case r.PunchCount >= 2:
		return r.ActualIn != "" && r.ActualOut != ""
	default:
		return false
	}
}
