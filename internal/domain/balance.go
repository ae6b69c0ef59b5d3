package domain

// Balance aggregates hours by entry type. Every status counts towards the totals;
// the per-status counters let callers show how much of it is still pending.
type Balance struct {
	Extra        float64
	Compensation float64
	EntryCount   int
	Pending      int
	Approved     int
	Rejected     int
}

// Add folds a single entry into the balance.
func (b *Balance) Add(entry TimeEntry) {
	switch entry.Type {
	case EntryTypeExtra:
		b.Extra += entry.TotalHours
	case EntryTypeCompensation:
		b.Compensation += entry.TotalHours
	}
	b.EntryCount++

	switch {
	case entry.IsPending():
		b.Pending++
	case entry.Status == StatusApproved:
		b.Approved++
	case entry.Status == StatusRejected:
		b.Rejected++
	}
}

// Total is the extra hours still owed to the user: extra minus compensation.
// A negative value means the user has taken more time off than they accrued.
func (b Balance) Total() float64 {
	return b.Extra - b.Compensation
}

// IsNegative reports whether the user is in debt.
func (b Balance) IsNegative() bool {
	return b.Total() < 0
}
