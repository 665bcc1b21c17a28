package gotable

import (
	"slices"

	"github.com/samber/lo"
)

// Page is a generic paginated result: the records of the current page plus
// the metadata the paginator and summary are built from.
type Page struct {
	// Items result elements.
	Items []Record
	// Total number of records that passed the filter.
	Total int
	// Pages is max(ceil(Total/PageSize), 1).
	Pages int
	// CurrentPage is floor(Offset/PageSize) + 1.
	CurrentPage int
	// Offset is the clamped offset the page starts at.
	Offset int
	// PageSize is the effective size; NoLimit is resolved to the total.
	PageSize int
}

// From returns the 1-based index of the first record shown, 0 when empty.
func (p Page) From() int {
	return lo.Ternary(p.Total > 0, p.Offset+1, 0)
}

// To returns the 1-based index of the last record shown.
func (p Page) To() int {
	return min(p.Offset+p.PageSize, p.Total)
}

// Run filters, sorts and paginates records for q.
//
// Every call is a full pass over records; nothing is cached or indexed
// between requests. records is never modified.
//
//   - Filter: keep a record iff q.Search is empty or a case-insensitive
//     substring of at least one searchable field.
//   - Sort: stable sort by q.Sort.Column with the column comparator,
//     reversed for DirectionDESC. Equal keys keep their store order in both
//     directions.
//   - Paginate: clamp the offset into [0, total-1] and slice one page. A
//     NoLimit page starts at the first record.
func Run(records []Record, q Query, searchable []string, columns Columns) Page {
	predicate := searchDNF(q.Search, searchable)
	filtered := lo.Filter(records, func(r Record, _ int) bool {
		return predicate.match(r)
	})

	sortRecords(filtered, q.Sort, columns.Type(q.Sort.Column))

	total := len(filtered)
	size := lo.Ternary(q.PageSize > 0, q.PageSize, max(total, 1))
	position := lo.Ternary(q.PageSize > 0, q.Position(), NewPosition(0)).Clamp(total)

	return Page{
		Items:       lo.Slice(filtered, position.GetOffset(), position.GetOffset()+size),
		Total:       total,
		Pages:       PageCount(total, size),
		CurrentPage: position.Page(size),
		Offset:      position.GetOffset(),
		PageSize:    size,
	}
}

// sortRecords computes the sort key of every record once, then sorts.
func sortRecords(records []Record, o OrderBy, typ ColumnType) {
	keyed := lo.Map(records, func(r Record, _ int) lo.Tuple2[sortKey, Record] {
		return lo.T2(typ.sortKey(r[o.Column]), r)
	})

	compare := func(a, b lo.Tuple2[sortKey, Record]) int {
		return a.A.compare(b.A)
	}
	if o.Direction == DirectionDESC {
		compare = func(a, b lo.Tuple2[sortKey, Record]) int {
			return b.A.compare(a.A)
		}
	}
	slices.SortStableFunc(keyed, compare)

	for i, kr := range keyed {
		records[i] = kr.B
	}
}
