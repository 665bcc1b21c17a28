package gotable

import "github.com/samber/lo"

// WindowItemKind identifies a paginator control.
type WindowItemKind int

const (
	WindowPrev WindowItemKind = iota
	WindowPage
	WindowEllipsis
	WindowNext
)

// WindowItem is one paginator control.
type WindowItem struct {
	Kind WindowItemKind
	// Page is the 1-based target page; 0 for ellipsis markers.
	Page int
	// Offset is the offset of the target page.
	Offset int
	// Current marks the control of the page being shown.
	Current bool
	// Disabled marks Prev on the first page and Next on the last one.
	Disabled bool
}

// Navigable reports whether the control links somewhere.
func (i WindowItem) Navigable() bool {
	return (i.Kind == WindowPage || i.Kind == WindowPrev || i.Kind == WindowNext) && !i.Current && !i.Disabled
}

// Window is the ordered paginator: Prev, a truncated run of pages with
// ellipsis markers, Next.
type Window []WindowItem

// windowEdge is how many pages are always shown at each end.
const windowEdge = 2

// BuildWindow computes the paginator for total records split into pages of
// pageSize, showing currentPage.
//
// Page p is shown iff p <= 2, p > pages-2 or |p-currentPage| <= 1. Exactly
// one ellipsis marker separates two shown pages that are not adjacent.
//
//	pages = 10, currentPage = 5: Prev 1 2 … 4 5 6 … 9 10 Next
func BuildWindow(total, pageSize, currentPage int) Window {
	if pageSize <= 0 {
		pageSize = max(total, 1)
	}
	pages := PageCount(total, pageSize)
	currentPage = lo.Clamp(currentPage, 1, pages)

	ret := make(Window, 0, 2*windowEdge+5)
	ret = append(ret, WindowItem{
		Kind:     WindowPrev,
		Page:     max(currentPage-1, 1),
		Offset:   PageStart(currentPage-1, pageSize),
		Disabled: currentPage == 1,
	})

	last := 0
	for p := 1; p <= pages; p++ {
		if !isPageShown(p, pages, currentPage) {
			continue
		}
		if last > 0 && p-last > 1 {
			ret = append(ret, WindowItem{Kind: WindowEllipsis})
		}
		ret = append(ret, WindowItem{
			Kind:    WindowPage,
			Page:    p,
			Offset:  PageStart(p, pageSize),
			Current: p == currentPage,
		})
		last = p
	}

	ret = append(ret, WindowItem{
		Kind:     WindowNext,
		Page:     min(currentPage+1, pages),
		Offset:   PageStart(min(currentPage+1, pages), pageSize),
		Disabled: currentPage == pages,
	})

	return ret
}

func isPageShown(p, pages, currentPage int) bool {
	return p <= windowEdge || p > pages-windowEdge || abs(p-currentPage) <= 1
}

func abs(n int) int {
	return lo.Ternary(n < 0, -n, n)
}
