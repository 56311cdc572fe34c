package helixir

import (
	"context"
	"fmt"
	"strings"
	"time"

	"helixir/internal/convert"
)

// Parameter validation. Validators run client-side before a request
// is issued; every endpoint accepts SkipValidation to bypass them.
// Zero values of optional parameters (limit, page, sort, from, to)
// skip their checks.

// validateChain maps an accepted chain spelling to its numeric ID.
func (c *Client) validateChain(chain any) (int64, error) {
	id, ok := c.tables().NormalizeChain(chain)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidChain, chain)
	}
	return id, nil
}

func validateAgainst(against Against) error {
	if !against.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAgainst, against)
	}
	return nil
}

// validateDate coerces a date parameter to a unix timestamp. Accepted
// inputs are nil, integer epochs, time.Time and ISO-8601 strings;
// numeric strings are not dates. Dates before the data epoch only
// warn, ranged checks decide whether that is fatal.
func (c *Client) validateDate(date any) (int64, bool, error) {
	var ts int64
	switch d := date.(type) {
	case nil:
		return 0, false, nil
	case int:
		ts = int64(d)
	case int64:
		ts = d
	case time.Time:
		ts = d.Unix()
	case string:
		parsed, err := convert.ParseISOTime(d)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %q", ErrInvalidDate, d)
		}
		ts = parsed.Unix()
	default:
		return 0, false, fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, date)
	}
	if epoch := c.tables().DataEpoch; ts < epoch {
		c.warnf("data are available only from %s", time.Unix(epoch, 0).UTC().Format(time.RFC3339))
	}
	return ts, true, nil
}

// validateFromTo validates a time range. Returned booleans report
// whether each bound was set.
func (c *Client) validateFromTo(from, to any) (int64, bool, int64, bool, error) {
	fromTS, fromSet, err := c.validateDate(from)
	if err != nil {
		return 0, false, 0, false, err
	}
	toTS, toSet, err := c.validateDate(to)
	if err != nil {
		return 0, false, 0, false, err
	}
	if toSet && toTS != 0 {
		if toTS < c.tables().DataEpoch {
			return 0, false, 0, false, fmt.Errorf("%w: to=%d", ErrRangeTooEarly, toTS)
		}
		if fromSet && fromTS != 0 && toTS <= fromTS {
			return 0, false, 0, false, fmt.Errorf("%w: to must be greater than from", ErrInvalidRange)
		}
	}
	return fromTS, fromSet, toTS, toSet, nil
}

func validateResolution(resolution Resolution) (Resolution, error) {
	if !resolution.valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidResolution, resolution)
	}
	return resolution.normalize(), nil
}

// validateLimit checks a page size. Zero means server default.
func (c *Client) validateLimit(limit int) error {
	if limit == 0 {
		return nil
	}
	bounds := c.tables().Limit
	if int64(limit) < bounds.Min || int64(limit) > bounds.Max {
		return fmt.Errorf("%w: must be within [%d, %d], got %d", ErrInvalidLimit, bounds.Min, bounds.Max, limit)
	}
	return nil
}

// validatePage checks a page number. Zero means first page.
func (c *Client) validatePage(page int64) error {
	if page == 0 {
		return nil
	}
	bounds := c.tables().Page
	if page < bounds.Min || page > bounds.Max {
		return fmt.Errorf("%w: must be within [%d, %d], got %d", ErrInvalidPage, bounds.Min, bounds.Max, page)
	}
	return nil
}

// validateSort checks a sort expression: "+column"/"-column" or
// "column.asc"/"column.desc". The column must be sortable globally
// and on the queried endpoint.
func (c *Client) validateSort(sort string, columns []string) error {
	if sort == "" {
		return nil
	}
	sort = strings.ToLower(sort)

	var col, order string
	if strings.Contains(sort, ".") {
		col, order, _ = strings.Cut(sort, ".")
	} else {
		col, order = sort[1:], sort[:1]
	}

	switch order {
	case "+", "-", "asc", "desc":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSort, sort)
	}
	if !contains(c.tables().SortColumns, col) || !contains(columns, col) {
		return fmt.Errorf("%w: %q", ErrInvalidSort, sort)
	}
	return nil
}

func validateContract(contract string) error {
	if len(contract) < 3 || !strings.HasPrefix(contract, "0x") || strings.Contains(contract, " ") {
		return fmt.Errorf("%w: %q", ErrInvalidContract, contract)
	}
	return nil
}

// resolveToken turns a symbol or contract parameter into the contract
// address used in request paths. With a contract given, only its
// format is checked; with a symbol, the chain narrows down ambiguous
// listings.
func (c *Client) resolveToken(ctx context.Context, symbol, contract string, chain any) (string, error) {
	if contract != "" {
		return contract, validateContract(contract)
	}
	if symbol == "" {
		return "", ErrMissingToken
	}
	var chainID int64
	hasChain := false
	if chain != nil {
		id, err := c.validateChain(chain)
		if err != nil {
			return "", err
		}
		chainID, hasChain = id, true
	}
	return c.symbolToContract(ctx, symbol, chainID, hasChain)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
