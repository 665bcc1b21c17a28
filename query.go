package gotable

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ajg/form"
	"github.com/samber/lo"
)

// Query is the display state of one request: search term, position, page
// size and sort. It is derived per request and never stored; everything it
// holds is echoed back through Values into the generated controls.
type Query struct {
	// Search is the case-folded search term.
	Search string
	// Offset is the zero-based index of the first record of the page.
	Offset int
	// PageSize is NoLimit when pagination is disabled.
	PageSize int
	Sort     OrderBy
}

// rawQuery mirrors the accepted request parameters. Every field is a string
// so that malformed numbers never fail decoding.
type rawQuery struct {
	Q             string `form:"q"`
	Skip          string `form:"skip"`
	Offset        string `form:"offset"`
	Page          string `form:"page"`
	Top           string `form:"top"`
	PageSize      string `form:"pageSize"`
	OrderBy       string `form:"orderby"`
	SortField     string `form:"sortField"`
	SortDirection string `form:"sortDirection"`
}

// linkQuery is the canonical encoding emitted into generated controls.
type linkQuery struct {
	Q       string `form:"q,omitempty"`
	Top     int    `form:"top,omitempty"`
	Skip    int    `form:"skip,omitempty"`
	OrderBy string `form:"orderby,omitempty"`
}

var _queryKeys = []string{
	"q", "skip", "offset", "page", "top", "pageSize", "orderby", "sortField", "sortDirection",
}

// ResolveQuery parses request parameters into a Query. It never fails:
// missing or malformed values fall back to the defaults of opts.
//
// Accepted parameters:
//   - q: search term, case-folded.
//   - skip or offset: zero-based offset; page: 1-based page number. The
//     offset forms win when both schemes are present.
//   - top or pageSize: positive page size.
//   - orderby: "field [asc|desc]", or sortField with sortDirection.
func ResolveQuery(values url.Values, opts Options) Query {
	var raw rawQuery

	decoder := form.NewDecoder(nil)
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.DecodeValues(&raw, lo.PickByKeys(values, _queryKeys)); err != nil {
		raw = rawQuery{}
	}

	ret := Query{
		Search:   lo.Ternary(opts.Search, foldString(raw.Q), ""),
		PageSize: NoLimit,
		Sort:     DefaultOrderBy,
	}

	if opts.Pagination {
		ret.PageSize = NormalizePageSize(
			atoiOr(lo.CoalesceOrEmpty(raw.Top, raw.PageSize), 0),
			opts.DefaultPageSize,
			opts.MaxPageSize,
		)
	}

	switch {
	case raw.Skip != "":
		ret.Offset = NewPosition(atoiOr(raw.Skip, 0)).GetOffset()
	case raw.Offset != "":
		ret.Offset = NewPosition(atoiOr(raw.Offset, 0)).GetOffset()
	case raw.Page != "":
		ret.Offset = PositionFromPage(atoiOr(raw.Page, 1), ret.PageSize).GetOffset()
	}
	// Without pagination the page holds the whole filtered set.
	ret.Offset = lo.Ternary(opts.Pagination, max(ret.Offset, 0), 0)

	if opts.Order {
		ret.Sort = resolveSort(raw)
	}

	return ret
}

func resolveSort(raw rawQuery) OrderBy {
	var (
		sort OrderBy
		err  error
	)

	switch {
	case strings.TrimSpace(raw.OrderBy) != "":
		sort, err = ParseSort(raw.OrderBy)
	case strings.TrimSpace(raw.SortField) != "":
		sort, err = ParseSortParts(raw.SortField, raw.SortDirection)
	default:
		return DefaultOrderBy
	}

	if err != nil {
		return DefaultOrderBy
	}

	return sort
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}

	return n
}

// Values encodes the query into request parameters. ResolveQuery applied to
// the result yields the same Query.
func (q Query) Values() url.Values {
	values, err := form.EncodeToValues(linkQuery{
		Q:       q.Search,
		Top:     lo.Ternary(q.PageSize > 0, q.PageSize, 0),
		Skip:    lo.Ternary(q.PageSize > 0, q.Offset, 0),
		OrderBy: q.Sort.String(),
	})
	if err != nil {
		// linkQuery holds only strings and ints.
		panic(err)
	}

	return values
}

// Encode returns the URL-encoded form of Values.
func (q Query) Encode() string {
	return q.Values().Encode()
}

// WithSearch returns the query with a new, case-folded, search term.
func (q Query) WithSearch(term string) Query {
	q.Search = foldString(term)
	return q
}

// WithOffset returns the query positioned at offset.
func (q Query) WithOffset(offset int) Query {
	q.Offset = offset
	return q
}

// WithPageSize returns the query with a new page size.
func (q Query) WithPageSize(size int) Query {
	q.PageSize = size
	return q
}

// WithSort returns the query ordered by o.
func (q Query) WithSort(o OrderBy) Query {
	q.Sort = o
	return q
}

// Position returns the offset as a Position.
func (q Query) Position() Position {
	return NewPosition(q.Offset)
}
