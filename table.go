package gotable

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"slices"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Table is one configurable data table: a Store, the displayed columns and
// the effective Options. Every request recomputes its page from the full
// record set.
type Table struct {
	id         string
	route      string
	store      Store
	columns    Columns
	searchable []string
	options    Options
	renderer   *Renderer
	log        logrus.FieldLogger
}

// NewTable creates a table rendered into the region with the given id.
// Columns are displayed in the given order and are searchable by default.
func NewTable(id string, store Store, columns ...Column) *Table {
	return &Table{
		id:         id,
		route:      "/" + id,
		store:      store,
		columns:    slices.Clone(columns),
		searchable: Columns(columns).Names(),
		options:    DefaultOptions(),
		renderer:   NewRenderer(),
		log:        logrus.StandardLogger(),
	}
}

// WithRoute sets the page route. Fragments are served at route + "/data".
func (t *Table) WithRoute(route string) *Table {
	if t == nil {
		t = new(Table)
	}

	t.route = route

	return t
}

// WithOptions applies overrides on top of DefaultOptions.
func (t *Table) WithOptions(overrides Overrides) *Table {
	if t == nil {
		t = new(Table)
	}

	t.options = Merge(DefaultOptions(), overrides)

	return t
}

// WithSearchable restricts search to the given fields.
func (t *Table) WithSearchable(fields ...string) *Table {
	if t == nil {
		t = new(Table)
	}

	t.searchable = slices.Clone(fields)

	return t
}

func (t *Table) WithLogger(log logrus.FieldLogger) *Table {
	if t == nil {
		t = new(Table)
	}

	t.log = log

	return t
}

func (t *Table) ID() string {
	return t.id
}

func (t *Table) Route() string {
	return t.route
}

// Options returns the effective options.
func (t *Table) Options() Options {
	return t.options
}

func (t *Table) logger() logrus.FieldLogger {
	return lo.Ternary[logrus.FieldLogger](t.log != nil, t.log, logrus.StandardLogger()).WithField("table", t.id)
}

// sortable returns the fields a request may sort by.
func (t *Table) sortable() []string {
	return lo.Uniq(append(t.columns.Names(), IDField))
}

// ResolveQuery is ResolveQuery with the table options, restricted to the
// sortable fields. An unknown sort field falls back to DefaultOrderBy.
func (t *Table) ResolveQuery(values url.Values) Query {
	q := ResolveQuery(values, t.options)

	fields := t.sortable()
	if !slices.Contains(fields, q.Sort.Column) {
		t.logger().WithFields(logrus.Fields{
			"field":      q.Sort.Column,
			"suggestion": closestAlias(q.Sort.Column, fields),
		}).Warn("unknown sort field, falling back to default sort")
		q.Sort = DefaultOrderBy
	}

	return q
}

// Fetch reads the store and runs the pipeline for q.
func (t *Table) Fetch(ctx context.Context, q Query) (Page, error) {
	if t.store == nil {
		return Page{}, ErrNilStore
	}

	records, err := t.store.ReadAll(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("cannot read records: %w", err)
	}

	return Run(records, q, t.searchable, t.columns), nil
}

// View builds the render input for q over page.
func (t *Table) View(q Query, page Page) View {
	return View{
		ID:      t.id,
		Route:   t.route,
		Columns: t.columns,
		Options: t.options,
		Query:   q,
		Page:    page,
	}
}

// Render fetches the page of q and writes its fragment.
func (t *Table) Render(ctx context.Context, w io.Writer, q Query) error {
	page, err := t.Fetch(ctx, q)
	if err != nil {
		return err
	}

	return t.renderer.Render(w, t.View(q, page))
}

// DeleteSelected removes the selected records. The caller re-renders with
// the same q; the pipeline clamps the offset if the page became empty.
func (t *Table) DeleteSelected(ctx context.Context, ids []string, q Query) (int, error) {
	if t.store == nil {
		return 0, ErrNilStore
	}

	ids = lo.Uniq(lo.Compact(ids))
	if len(ids) == 0 {
		return 0, nil
	}

	removed, err := t.store.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("cannot delete records: %w", err)
	}

	t.logger().WithFields(logrus.Fields{
		"requested": len(ids),
		"removed":   removed,
		"query":     q.Encode(),
	}).Info("records deleted")

	return removed, nil
}

// RenderContainer writes the region that loads the first fragment.
func (t *Table) RenderContainer(w io.Writer, values url.Values) error {
	return t.renderer.RenderContainer(w, t.id, t.route, t.ResolveQuery(values))
}

// Reset replaces the store content with records. The store must implement
// Resetter.
func (t *Table) Reset(ctx context.Context, records []Record) error {
	resetter, ok := t.store.(Resetter)
	if !ok {
		return fmt.Errorf("store %T cannot be reset", t.store)
	}

	if err := resetter.Reset(ctx, records); err != nil {
		return fmt.Errorf("cannot reset records: %w", err)
	}

	t.logger().WithField("records", len(records)).Info("records reset")

	return nil
}
