package helixir

import (
	"net/url"
	"strconv"

	"helixir/internal/convert"
)

// defaultChain is used when a request leaves Chain unset.
const defaultChain = "bsc"

// ChainRequest parameterizes endpoints scoped to one chain.
type ChainRequest struct {
	// Chain accepts a numeric ID (56), an ID string ("56") or a short
	// name ("bsc"/"BSC"). Unset means bsc.
	Chain          any
	SkipValidation bool
}

// TokenQuery selects a token by contract address or by symbol. With a
// contract given, the symbol is ignored; a symbol is resolved against
// the asset listing and must match exactly one asset on the selected
// chain.
type TokenQuery struct {
	Symbol   string
	Contract string
	Chain    any
	// SkipValidation sends parameters as given. Symbols are not
	// resolved when set, so a contract has to be supplied.
	SkipValidation bool
}

// SeriesRequest parameterizes ranged time-series endpoints. Unset
// bounds default to the data epoch and the current time; long ranges
// are split into sub-requests.
type SeriesRequest struct {
	TokenQuery
	// From and To accept unix timestamps, time.Time or ISO-8601
	// strings.
	From       any
	To         any
	Resolution Resolution
}

// SocialRequest parameterizes the social feed endpoints.
type SocialRequest struct {
	// From accepts a unix timestamp, time.Time or an ISO-8601 string;
	// messages older than it are excluded.
	From           any
	Limit          int
	Tag            string
	SkipValidation bool
}

func effectiveChain(chain any) any {
	if chain == nil {
		return defaultChain
	}
	return chain
}

// chainSegment renders the chain-scoped path prefix. The chain value
// is interpolated as given by the caller.
func chainSegment(chain any) string {
	return "chain/" + convert.ToString(effectiveChain(chain))
}

// rawBounds coerces unvalidated range bounds for the chunker. Values
// no coercion can handle count as unset.
func rawBounds(from, to any) (int64, bool, int64, bool) {
	f, fset := rawUnix(from)
	t, tset := rawUnix(to)
	return f, fset, t, tset
}

func rawUnix(v any) (int64, bool) {
	if v == nil {
		return 0, false
	}
	if n, err := convert.Int64E(v); err == nil {
		return n, n != 0
	}
	if ts, err := convert.TimeE(v); err == nil {
		return ts.Unix(), true
	}
	return 0, false
}

func setUnix(q url.Values, key string, ts int64, set bool) {
	if set {
		q.Set(key, strconv.FormatInt(ts, 10))
	}
}

func setRaw(q url.Values, key string, v any) {
	if v != nil {
		q.Set(key, convert.ToString(v))
	}
}

func setPagination(q url.Values, limit int, page int64, sort string) {
	if limit != 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if page != 0 {
		q.Set("page", strconv.FormatInt(page, 10))
	}
	if sort != "" {
		q.Set("sort", sort)
	}
}
