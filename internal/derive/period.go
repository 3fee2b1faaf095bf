package derive

import (
	"fmt"
	"time"
)

// Period is an inclusive day-granular date range.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Days returns the period length in calendar days.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// LastNDays returns the n-day period ending on end, inclusive.
func LastNDays(end time.Time, n int) Period {
	end = end.Truncate(24 * time.Hour)
	return Period{
		Start: end.AddDate(0, 0, -(n - 1)),
		End:   end,
		Label: fmt.Sprintf("%dd", n),
	}
}

// Previous returns the equal-length period immediately preceding p, with no
// gap and no overlap.
func Previous(p Period) Period {
	days := p.Days()
	end := p.Start.AddDate(0, 0, -1)
	return Period{
		Start: end.AddDate(0, 0, -(days - 1)),
		End:   end,
		Label: "prev " + p.Label,
	}
}
