package helixir

import "strings"

// Resolution is a candle resolution code. Codes are sent to the API
// verbatim after normalization to upper case.
type Resolution string

const (
	M1  Resolution = "M1"
	M5  Resolution = "M5"
	M10 Resolution = "M10"
	M15 Resolution = "M15"
	M30 Resolution = "M30"
	H1  Resolution = "H1"
	H4  Resolution = "H4"
	H12 Resolution = "H12"
	D1  Resolution = "D1"
	W1  Resolution = "W1"
	MN1 Resolution = "MN1"
)

// Resolutions lists every valid resolution code. W1 and MN1 are valid
// parameters but have no ranged-query window.
var Resolutions = []Resolution{M1, M5, M10, M15, M30, H1, H4, H12, D1, W1, MN1}

func (r Resolution) normalize() Resolution {
	return Resolution(strings.ToUpper(strings.TrimSpace(string(r))))
}

func (r Resolution) valid() bool {
	n := r.normalize()
	for _, code := range Resolutions {
		if n == code {
			return true
		}
	}
	return false
}

// Against selects the currency prices are quoted in.
type Against string

const (
	// AgainstDefault leaves the choice to the API.
	AgainstDefault Against = ""
	AgainstUSD     Against = "USD"
	AgainstPEG     Against = "PEG"
)

func (a Against) valid() bool {
	switch a {
	case AgainstDefault, AgainstUSD, AgainstPEG:
		return true
	default:
		return false
	}
}
