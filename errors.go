package helixir

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for parameter validation and request handling. All
// returned errors wrap one of these for errors.Is checks.
var (
	ErrInvalidChain          = errors.New("invalid chain")
	ErrInvalidAgainst        = errors.New("invalid against currency")
	ErrInvalidDate           = errors.New("invalid date")
	ErrRangeTooEarly         = errors.New("range ends before first indexed data")
	ErrInvalidRange          = errors.New("invalid time range")
	ErrRangeTooLarge         = errors.New("time range too long for resolution")
	ErrInvalidResolution     = errors.New("invalid resolution")
	ErrUnsupportedResolution = errors.New("resolution not supported for ranged queries")
	ErrInvalidLimit          = errors.New("invalid limit")
	ErrInvalidPage           = errors.New("invalid page")
	ErrInvalidSort           = errors.New("invalid sort")
	ErrInvalidContract       = errors.New("invalid contract address")
	ErrMissingToken          = errors.New("symbol or contract required")
	ErrUnknownSymbol         = errors.New("unknown symbol")
	ErrAmbiguousSymbol       = errors.New("ambiguous symbol")
	ErrEmptySeries           = errors.New("no data points in range")
)

// APIError carries an error envelope returned by the API.
type APIError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api error (status %d)", e.Status)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Errors) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Errors, "; "))
	}
	return b.String()
}
