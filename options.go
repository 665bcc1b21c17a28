package gotable

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// Options is the effective configuration of a table. Every recognized
// option is enumerated here; use DefaultOptions and Merge to build one.
type Options struct {
	// Search renders the search input and applies the search term.
	Search bool
	// LiveSearch refreshes while typing after SearchDelay instead of on
	// value commit.
	LiveSearch  bool
	SearchDelay time.Duration
	// Order makes header cells sort controls.
	Order bool
	// Pagination renders the page-size selector and the paginator. Without
	// it a page holds the whole filtered set.
	Pagination bool
	// Total renders the "Showing A to B of N records" summary.
	Total bool
	// SelectBox renders the leading selection column.
	SelectBox bool
	// Delete renders the bulk-delete trigger. Needs SelectBox.
	Delete bool
	// PageSizes are the choices of the page-size selector.
	PageSizes       []int
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultOptions returns a fresh copy of the defaults on every call.
func DefaultOptions() Options {
	return Options{
		Search:          true,
		LiveSearch:      true,
		SearchDelay:     300 * time.Millisecond,
		Order:           true,
		Pagination:      true,
		Total:           true,
		SelectBox:       true,
		Delete:          true,
		PageSizes:       []int{10, 20, 50, 100},
		DefaultPageSize: DefaultPageSize,
		MaxPageSize:     MaxPageSize,
	}
}

// Overrides holds per-table option overrides. Nil fields keep the default.
type Overrides struct {
	Search          *bool          `koanf:"search"`
	LiveSearch      *bool          `koanf:"live_search"`
	SearchDelay     *time.Duration `koanf:"search_delay"`
	Order           *bool          `koanf:"order"`
	Pagination      *bool          `koanf:"pagination"`
	Total           *bool          `koanf:"total"`
	SelectBox       *bool          `koanf:"select_box"`
	Delete          *bool          `koanf:"delete"`
	PageSizes       []int          `koanf:"page_sizes"`
	DefaultPageSize *int           `koanf:"default_page_size"`
	MaxPageSize     *int           `koanf:"max_page_size"`
}

// Merge returns defaults with overrides applied. Neither argument is
// modified and the result shares no memory with them.
func Merge(defaults Options, overrides Overrides) Options {
	ret := Options{
		Search:          lo.FromPtrOr(overrides.Search, defaults.Search),
		LiveSearch:      lo.FromPtrOr(overrides.LiveSearch, defaults.LiveSearch),
		SearchDelay:     lo.FromPtrOr(overrides.SearchDelay, defaults.SearchDelay),
		Order:           lo.FromPtrOr(overrides.Order, defaults.Order),
		Pagination:      lo.FromPtrOr(overrides.Pagination, defaults.Pagination),
		Total:           lo.FromPtrOr(overrides.Total, defaults.Total),
		SelectBox:       lo.FromPtrOr(overrides.SelectBox, defaults.SelectBox),
		Delete:          lo.FromPtrOr(overrides.Delete, defaults.Delete),
		PageSizes:       slices.Clone(defaults.PageSizes),
		DefaultPageSize: lo.FromPtrOr(overrides.DefaultPageSize, defaults.DefaultPageSize),
		MaxPageSize:     lo.FromPtrOr(overrides.MaxPageSize, defaults.MaxPageSize),
	}
	if len(overrides.PageSizes) > 0 {
		ret.PageSizes = slices.Clone(overrides.PageSizes)
	}

	return ret.normalize()
}

// normalize keeps the page-size settings consistent with each other.
func (o Options) normalize() Options {
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = MaxPageSize
	}

	o.PageSizes = lo.Uniq(lo.Filter(o.PageSizes, func(size int, _ int) bool {
		return size > 0 && size <= o.MaxPageSize
	}))
	slices.Sort(o.PageSizes)

	o.DefaultPageSize = NormalizePageSize(o.DefaultPageSize, lo.Ternary(len(o.PageSizes) > 0, lo.Min(o.PageSizes), DefaultPageSize), o.MaxPageSize)
	if !slices.Contains(o.PageSizes, o.DefaultPageSize) {
		o.PageSizes = append(o.PageSizes, o.DefaultPageSize)
		slices.Sort(o.PageSizes)
	}

	if o.SearchDelay < 0 {
		o.SearchDelay = 0
	}

	return o
}

// Deletable reports whether the bulk-delete trigger is rendered.
func (o Options) Deletable() bool {
	return o.Delete && o.SelectBox
}
