package gotable

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parseFragment(t *testing.T, s string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)

	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var ret []*html.Node
	if n.Type == html.ElementNode && match(n) {
		ret = append(ret, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		ret = append(ret, findAll(c, match)...)
	}

	return ret
}

func byAtom(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.DataAtom == a
	}
}

func byAttr(key, value string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := attrOf(n, key)
		return ok && v == value
	}
}

func attrOf(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textOf(c))
	}

	return strings.TrimSpace(sb.String())
}

var _renderColumns = Columns{TextColumn("name"), NumericColumn("age").WithTitle("Age, years")}

func renderView(t *testing.T, records []Record, q Query, overrides Overrides) (View, string) {
	t.Helper()

	opts := Merge(DefaultOptions(), overrides)
	v := View{
		ID:      "users",
		Route:   "/users",
		Columns: _renderColumns,
		Options: opts,
		Query:   q,
		Page:    Run(records, q, []string{"name"}, _renderColumns),
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, v))

	return v, buf.String()
}

func userRecords(n int) []Record {
	records := make([]Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, Record{IDField: i, "name": fmt.Sprintf("user %d", i), "age": 20 + i})
	}

	return records
}

func Test_Renderer_Render(t *testing.T) {
	q := Query{Offset: 10, PageSize: 10, Sort: OrderBy{Column: "name", Direction: DirectionDESC}}
	_, out := renderView(t, userRecords(25), q, Overrides{})
	doc := parseFragment(t, out)

	t.Run("controls", func(t *testing.T) {
		search := findAll(doc, byAttr("type", "search"))
		require.Len(t, search, 1)
		trigger, _ := attrOf(search[0], "hx-trigger")
		require.Equal(t, "keyup changed delay:300ms, search", trigger)
		include, _ := attrOf(search[0], "hx-include")
		require.Equal(t, "#users [name='top'],#users [name='orderby']", include)
		getURL, _ := attrOf(search[0], "hx-get")
		require.Equal(t, "/users/data", getURL)

		options := findAll(doc, byAtom(atom.Option))
		require.Equal(t, []string{"10", "20", "50", "100"}, lo.Map(options, func(n *html.Node, _ int) string {
			return textOf(n)
		}))
		_, selected := attrOf(options[0], "selected")
		require.True(t, selected)
		_, selected = attrOf(options[1], "selected")
		require.False(t, selected)

		orderby := findAll(doc, byAttr("name", "orderby"))
		require.Len(t, orderby, 1)
		value, _ := attrOf(orderby[0], "value")
		require.Equal(t, "name desc", value)

		skip := findAll(doc, byAttr("name", "skip"))
		require.Len(t, skip, 1)
		value, _ = attrOf(skip[0], "value")
		require.Equal(t, "10", value)

		deleteButton := findAll(doc, func(n *html.Node) bool {
			_, ok := attrOf(n, "hx-delete")
			return ok
		})
		require.Len(t, deleteButton, 1)
		require.Equal(t, "Delete Selected", textOf(deleteButton[0]))
	})

	t.Run("header", func(t *testing.T) {
		headers := findAll(doc, byAtom(atom.Th))
		require.Len(t, headers, 3)

		require.Equal(t, "Name ▼", textOf(headers[1]))
		ariaSort, _ := attrOf(headers[1], "aria-sort")
		require.Equal(t, "descending", ariaSort)
		getURL, _ := attrOf(headers[1], "hx-get")
		require.Equal(t, "/users/data?"+q.WithSort(OrderBy{Column: "name", Direction: DirectionASC}).Encode(), getURL)

		require.Equal(t, "Age, years", textOf(headers[2]))
		pushURL, _ := attrOf(headers[2], "hx-push-url")
		require.Equal(t, "/users?orderby=age+asc&skip=10&top=10", pushURL)
	})

	t.Run("rows", func(t *testing.T) {
		rows := findAll(doc, func(n *html.Node) bool {
			return n.DataAtom == atom.Tr && n.Parent != nil && n.Parent.DataAtom == atom.Tbody
		})
		require.Len(t, rows, 10)

		cells := findAll(rows[0], byAtom(atom.Td))
		require.Len(t, cells, 3)
		require.Equal(t, "user 15", textOf(cells[1]))
		require.Equal(t, "35", textOf(cells[2]))

		boxes := findAll(doc, byAttr("name", "selected[]"))
		require.Len(t, boxes, 10)
		value, _ := attrOf(boxes[0], "value")
		require.Equal(t, "15", value)
	})

	t.Run("footer", func(t *testing.T) {
		summary := findAll(doc, byAttr("class", "gotable-summary"))
		require.Len(t, summary, 1)
		require.Equal(t, "Showing 11 to 20 of 25 records", textOf(summary[0]))

		nav := findAll(doc, byAtom(atom.Nav))
		require.Len(t, nav, 1)

		links := findAll(nav[0], byAtom(atom.A))
		require.Equal(t, []string{"Previous", "1", "3", "Next"}, lo.Map(links, func(n *html.Node, _ int) string {
			return textOf(n)
		}))
		prev, _ := attrOf(links[0], "hx-get")
		require.Equal(t, "/users/data?orderby=name+desc&top=10", prev)
		next, _ := attrOf(links[3], "href")
		require.Equal(t, "/users?orderby=name+desc&skip=20&top=10", next)

		current := findAll(nav[0], byAttr("aria-current", "page"))
		require.Len(t, current, 1)
		require.Equal(t, "2", textOf(current[0]))
	})

	t.Run("selection script", func(t *testing.T) {
		require.Contains(t, out, `document.getElementById("users-table")`)
	})
}

func Test_Renderer_Render_Idempotent(t *testing.T) {
	q := Query{Search: "user 1", PageSize: 10, Sort: DefaultOrderBy}
	v, first := renderView(t, userRecords(30), q, Overrides{})

	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, v))
	require.Equal(t, first, buf.String())
}

func Test_Renderer_Render_Empty(t *testing.T) {
	q := Query{Search: "nobody", PageSize: 10, Sort: DefaultOrderBy}
	_, out := renderView(t, userRecords(5), q, Overrides{})
	doc := parseFragment(t, out)

	empty := findAll(doc, byAttr("class", "gotable-empty"))
	require.Len(t, empty, 1)
	require.Equal(t, "No records found", textOf(empty[0]))
	cell := findAll(empty[0], byAtom(atom.Td))
	require.Len(t, cell, 1)
	colspan, _ := attrOf(cell[0], "colspan")
	require.Equal(t, "3", colspan)

	summary := findAll(doc, byAttr("class", "gotable-summary"))
	require.Len(t, summary, 1)
	require.Equal(t, "Showing 0 to 0 of 0 records", textOf(summary[0]))

	nav := findAll(doc, byAtom(atom.Nav))
	require.Len(t, nav, 1)
	require.Empty(t, findAll(nav[0], byAtom(atom.A)))
	disabled := findAll(nav[0], byAttr("class", "disabled"))
	require.Equal(t, []string{"Previous", "Next"}, lo.Map(disabled, func(n *html.Node, _ int) string {
		return textOf(n)
	}))
}

func Test_Renderer_Render_OptionsOff(t *testing.T) {
	off := lo.ToPtr(false)
	overrides := Overrides{
		Search:     off,
		Order:      off,
		Pagination: off,
		Total:      off,
		SelectBox:  off,
	}
	q := Query{PageSize: NoLimit, Sort: DefaultOrderBy}
	_, out := renderView(t, userRecords(25), q, overrides)
	doc := parseFragment(t, out)

	require.Empty(t, findAll(doc, byAttr("type", "search")))
	require.Empty(t, findAll(doc, byAtom(atom.Select)))
	require.Empty(t, findAll(doc, byAttr("type", "checkbox")))
	require.Empty(t, findAll(doc, byAtom(atom.Nav)))
	require.Empty(t, findAll(doc, byAtom(atom.Script)))
	require.Empty(t, findAll(doc, byAttr("class", "gotable-summary")))
	require.Empty(t, findAll(doc, func(n *html.Node) bool {
		_, ok := attrOf(n, "hx-delete")
		return ok
	}))

	headers := findAll(doc, byAtom(atom.Th))
	require.Len(t, headers, 2)
	_, sortable := attrOf(headers[0], "hx-get")
	require.False(t, sortable)

	rows := findAll(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Tr && n.Parent != nil && n.Parent.DataAtom == atom.Tbody
	})
	require.Len(t, rows, 25)
}

func Test_Renderer_Render_Escaping(t *testing.T) {
	records := []Record{{IDField: 1, "name": `<script>alert("x")</script>`, "age": 1}}
	q := Query{Search: `"><b>`, PageSize: 10, Sort: DefaultOrderBy}
	_, out := renderView(t, records, q, Overrides{})

	require.NotContains(t, out, `<script>alert`)
	require.NotContains(t, out, `"><b>`)

	doc := parseFragment(t, out)
	search := findAll(doc, byAttr("type", "search"))
	require.Len(t, search, 1)
	value, _ := attrOf(search[0], "value")
	require.Equal(t, `"><b>`, value)
}

func Test_Renderer_RenderContainer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer().RenderContainer(&buf, "users", "/users", Query{PageSize: 10, Sort: DefaultOrderBy}))

	doc := parseFragment(t, buf.String())
	region := findAll(doc, byAttr("id", "users"))
	require.Len(t, region, 1)

	getURL, _ := attrOf(region[0], "hx-get")
	require.Equal(t, "/users/data?orderby=id+asc&top=10", getURL)
	trigger, _ := attrOf(region[0], "hx-trigger")
	require.Equal(t, "load, reload-users from:body", trigger)
}

func Test_searchTrigger(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, "keyup changed delay:300ms, search", searchTrigger(opts))

	opts.LiveSearch = false
	require.Equal(t, "change", searchTrigger(opts))
}
