package gotable

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

//go:embed templates/*.gohtml
var _templatesFS embed.FS

var _templates = template.Must(template.New("gotable").ParseFS(_templatesFS, "templates/*.gohtml"))

// View is everything a fragment is rendered from. Rendering is a pure
// function of the View: the same View always yields the same bytes.
type View struct {
	// ID is the id of the page region the fragment is swapped into.
	ID string
	// Route is the page route; the fragment endpoint is Route + "/data".
	Route   string
	Columns Columns
	Options Options
	Query   Query
	Page    Page
}

// DataURL returns the fragment endpoint without parameters.
func (v View) DataURL() string {
	return dataURL(v.Route)
}

func dataURL(route string) string {
	return strings.TrimSuffix(route, "/") + "/data"
}

// linkURLs returns the fragment and page addresses that reproduce q.
func (v View) linkURLs(q Query) (string, string) {
	encoded := q.Encode()
	return v.DataURL() + "?" + encoded, v.Route + "?" + encoded
}

type headerCell struct {
	Label    string
	Glyph    string
	Sortable bool
	AriaSort string
	GetURL   string
	PushURL  string
}

type bodyRow struct {
	ID    string
	Cells []string
}

type pageSizeChoice struct {
	Value    int
	Selected bool
}

type windowLink struct {
	Label    string
	Current  bool
	Disabled bool
	Ellipsis bool
	GetURL   string
	PushURL  string
}

type fragmentData struct {
	View

	TableID         string
	DataURL         string
	SearchTrigger   string
	SortToken       string
	Deletable       bool
	IncludeSearch   string
	IncludePageSize string
	IncludeDelete   string
	Header          []headerCell
	Rows            []bodyRow
	ColSpan         int
	PageSizes       []pageSizeChoice
	Window          []windowLink
}

type containerData struct {
	ID          string
	DataURL     string
	ReloadEvent string
}

// ReloadEvent is the client event that makes the region of a table reload.
func ReloadEvent(id string) string {
	return "reload-" + id
}

// Renderer renders table fragments from embedded html/template templates.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{tmpl: _templates}
}

// Render writes the fragment of v. Nothing is written when rendering fails.
func (r *Renderer) Render(w io.Writer, v View) error {
	return r.execute(w, "fragment", buildFragment(v))
}

// RenderContainer writes the region that loads the fragment of q as soon
// as it appears and again on ReloadEvent.
func (r *Renderer) RenderContainer(w io.Writer, id, route string, q Query) error {
	return r.execute(w, "container", containerData{
		ID:          id,
		DataURL:     dataURL(route) + "?" + q.Encode(),
		ReloadEvent: ReloadEvent(id),
	})
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if r == nil || r.tmpl == nil {
		r = NewRenderer()
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("cannot render %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

func buildFragment(v View) fragmentData {
	scope := "#" + v.ID + " "
	include := func(names ...string) string {
		return strings.Join(lo.Map(names, func(name string, _ int) string {
			return scope + "[name='" + name + "']"
		}), ",")
	}

	return fragmentData{
		View:            v,
		TableID:         v.ID + "-table",
		DataURL:         v.DataURL(),
		SearchTrigger:   searchTrigger(v.Options),
		SortToken:       v.Query.Sort.String(),
		Deletable:       v.Options.Deletable(),
		IncludeSearch:   include("top", "orderby"),
		IncludePageSize: include("q", "orderby"),
		IncludeDelete:   include("selected[]", "q", "top", "skip", "orderby"),
		Header:          buildHeader(v),
		Rows:            buildRows(v),
		ColSpan:         len(v.Columns) + lo.Ternary(v.Options.SelectBox, 1, 0),
		PageSizes:       buildPageSizes(v),
		Window:          buildWindowLinks(v),
	}
}

func searchTrigger(o Options) string {
	if !o.LiveSearch {
		return "change"
	}

	return fmt.Sprintf("keyup changed delay:%dms, search", o.SearchDelay.Milliseconds())
}

func buildHeader(v View) []headerCell {
	return lo.Map(v.Columns, func(col Column, _ int) headerCell {
		cell := headerCell{Label: col.Label()}
		if !v.Options.Order {
			return cell
		}

		cell.Sortable = true
		cell.AriaSort = "none"
		if v.Query.Sort.Column == col.Name {
			cell.Glyph = v.Query.Sort.Direction.Glyph()
			cell.AriaSort = lo.Ternary(v.Query.Sort.Direction == DirectionDESC, "descending", "ascending")
		}
		cell.GetURL, cell.PushURL = v.linkURLs(v.Query.WithSort(v.Query.Sort.Toggle(col.Name)))

		return cell
	})
}

func buildRows(v View) []bodyRow {
	return lo.Map(v.Page.Items, func(r Record, _ int) bodyRow {
		return bodyRow{
			ID: r.ID(),
			Cells: lo.Map(v.Columns, func(col Column, _ int) string {
				return col.Value(r)
			}),
		}
	})
}

func buildPageSizes(v View) []pageSizeChoice {
	return lo.Map(v.Options.PageSizes, func(size int, _ int) pageSizeChoice {
		return pageSizeChoice{Value: size, Selected: size == v.Query.PageSize}
	})
}

func buildWindowLinks(v View) []windowLink {
	if !v.Options.Pagination {
		return nil
	}

	return lo.Map(BuildWindow(v.Page.Total, v.Page.PageSize, v.Page.CurrentPage), func(item WindowItem, _ int) windowLink {
		link := windowLink{
			Current:  item.Current,
			Disabled: item.Disabled,
			Ellipsis: item.Kind == WindowEllipsis,
		}

		switch item.Kind {
		case WindowPrev:
			link.Label = "Previous"
		case WindowNext:
			link.Label = "Next"
		case WindowPage:
			link.Label = strconv.Itoa(item.Page)
		}

		if item.Navigable() {
			link.GetURL, link.PushURL = v.linkURLs(v.Query.WithOffset(item.Offset))
		}

		return link
	})
}
