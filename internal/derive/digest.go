package derive

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/creatorops/tubectl/internal/yt"
)

// FetchReport obtains the raw report for a period. Injected so the digest
// can be driven by the remote client in commands and by fakes in tests.
type FetchReport func(p Period) (*yt.Report, error)

// DigestEntry is one period length's comparison, keyed by its label.
type DigestEntry struct {
	Label      string     `json:"label"`
	Comparison Comparison `json:"comparison"`
}

// Digest packages independent period-over-period comparisons for several
// period lengths ending on the same day.
type Digest struct {
	End     time.Time     `json:"end"`
	Entries []DigestEntry `json:"entries"`
}

// BuildDigest compares each requested period length against its own
// immediately-preceding period of equal length. Lengths are computed
// independently: the same underlying data may be sliced several ways, but no
// single comparison mixes periods.
func BuildDigest(fetch FetchReport, end time.Time, lengths []int) (*Digest, error) {
	digest := &Digest{End: end}

	for _, n := range lengths {
		if n <= 0 {
			return nil, eris.Errorf("derive: digest period length must be positive, got %d", n)
		}
		current := LastNDays(end, n)
		previous := Previous(current)

		curReport, err := fetch(current)
		if err != nil {
			return nil, eris.Wrapf(err, "derive: digest %s current period", current.Label)
		}
		prevReport, err := fetch(previous)
		if err != nil {
			return nil, eris.Wrapf(err, "derive: digest %s previous period", current.Label)
		}

		digest.Entries = append(digest.Entries, DigestEntry{
			Label:      current.Label,
			Comparison: Compare(curReport, prevReport, current, previous),
		})
	}

	return digest, nil
}
