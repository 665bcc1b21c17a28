// Package gotable renders searchable, sortable, paginated HTML tables over a
// record collection as fragments for partial-page refresh (htmx).
//
// Overview
//
// A request flows through four stages:
//   - ResolveQuery: raw request parameters become a Query. Malformed input
//     never fails, it falls back to the configured defaults.
//   - Run: the whole collection is filtered by the search term, stably
//     sorted with the column's comparator (natural order for text columns)
//     and sliced into a Page with a clamped offset.
//   - BuildWindow: the truncated page-number run (1 2 … 4 5 6 … 9 10).
//   - Renderer: header, body and controls, every control carrying the full
//     query state so navigation never loses context.
//
// Key concepts
//   - Table: one configurable component bound to a Store, columns and
//     Options. Several tables may share a page under different ids.
//   - Store: read-all and delete-by-ids. MemoryStore and GormStore ship
//     with the package.
//   - Handler: GET renders the fragment, DELETE removes the selected ids and
//     re-renders with the same query.
//
// See examples/records for a runnable host.
package gotable
