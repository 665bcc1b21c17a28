package gotable

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/samber/lo"
)

const (
	// HeaderTrigger makes htmx dispatch the named client event.
	HeaderTrigger = "HX-Trigger"

	_maxFormBytes = 1 << 20
	_contentType  = "text/html; charset=utf-8"
)

// selection parameter names, with and without the bracket suffix.
var _selectionKeys = []string{"selected[]", "selected"}

// Handler serves the fragment endpoint of a Table:
//
//   - GET renders the fragment for the request parameters.
//   - DELETE removes the selected records and renders the fragment again
//     with the same parameters.
type Handler struct {
	table *Table
}

func NewHandler(table *Table) *Handler {
	return &Handler{table: table}
}

// ServeHTTP - implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.serveFragment(w, r, r.URL.Query())
	case http.MethodDelete:
		h.serveDelete(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, DELETE")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *Handler) serveDelete(w http.ResponseWriter, r *http.Request) {
	values, err := requestValues(w, r)
	if err != nil {
		http.Error(w, "cannot read request body", http.StatusBadRequest)
		return
	}

	q := h.table.ResolveQuery(values)
	if _, err = h.table.DeleteSelected(r.Context(), selectedIDs(values), q); err != nil {
		h.fail(w, err)
		return
	}

	h.render(r.Context(), w, q)
}

func (h *Handler) serveFragment(w http.ResponseWriter, r *http.Request, values url.Values) {
	h.render(r.Context(), w, h.table.ResolveQuery(values))
}

func (h *Handler) render(ctx context.Context, w http.ResponseWriter, q Query) {
	var buf bytes.Buffer
	if err := h.table.Render(ctx, &buf, q); err != nil {
		h.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", _contentType)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.table.logger().WithError(err).Error("cannot serve table fragment")
	http.Error(w, "table is unavailable", http.StatusInternalServerError)
}

// Reset returns a handler that reinitializes the store with seed() and
// signals the table region to reload.
func (h *Handler) Reset(seed func() []Record) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.table.Reset(r.Context(), seed()); err != nil {
			h.table.logger().WithError(err).Error("cannot reset table")
			http.Error(w, "cannot reset table", http.StatusInternalServerError)
			return
		}

		w.Header().Set(HeaderTrigger, ReloadEvent(h.table.ID()))
		w.WriteHeader(http.StatusNoContent)
	})
}

// requestValues merges URL parameters with a form-encoded body. DELETE
// bodies are not parsed by http.Request.ParseForm.
func requestValues(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	values := r.URL.Query()
	if r.Body == nil || r.Body == http.NoBody {
		return values, nil
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/x-www-form-urlencoded" {
			return values, nil
		}
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, _maxFormBytes))
	if err != nil {
		return nil, fmt.Errorf("cannot read body: %w", err)
	}

	body, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("cannot parse body: %w", err)
	}

	for key, vs := range body {
		values[key] = append(values[key], vs...)
	}

	return values, nil
}

func selectedIDs(values url.Values) []string {
	return lo.Uniq(lo.Compact(lo.FlatMap(_selectionKeys, func(key string, _ int) []string {
		return values[key]
	})))
}

var _ http.Handler = (*Handler)(nil)
