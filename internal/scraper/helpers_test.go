package scraper

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pfrederiksen/ufc-events/internal/event"
	"github.com/pfrederiksen/ufc-events/internal/logger"
	"golang.org/x/net/html"
)

// fakeFetcher serves pages from memory and records the URIs requested
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, uri)

	if err, ok := f.errs[uri]; ok {
		return nil, err
	}
	return []byte(f.pages[uri]), nil
}

func mustParse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := ParseHTML([]byte(markup))
	if err != nil {
		t.Fatalf("ParseHTML() error: %v", err)
	}
	return doc
}

func mustFind(t *testing.T, n *html.Node, selector string) *html.Node {
	t.Helper()
	nodes := NewSelectorQuerier().Query(n, selector)
	if len(nodes) == 0 {
		t.Fatalf("no node matches %q", selector)
	}
	return nodes[0]
}

// cell parses inner as the content of a single table cell
func cell(t *testing.T, inner string) *html.Node {
	t.Helper()
	doc := mustParse(t, "<table><tbody><tr><td>"+inner+"</td></tr></tbody></table>")
	return mustFind(t, doc, "td")
}

// tr renders a table row of td cells holding raw markup
func tr(cells ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cells {
		b.WriteString("<td>" + c + "</td>")
	}
	b.WriteString("</tr>\n")
	return b.String()
}

// rowCells parses a single row and returns its data cells
func rowCells(t *testing.T, cells ...string) []*html.Node {
	t.Helper()
	doc := mustParse(t, "<table><tbody>"+tr(cells...)+"</tbody></table>")
	return dataCells(mustFind(t, doc, "tr"))
}

func eventsTable(id string, rows ...string) string {
	return `<table id="` + id + `"><tbody>` + "\n<tr><th>Event</th><th>Date</th></tr>\n" +
		strings.Join(rows, "") + "</tbody></table>\n"
}

func page(body ...string) string {
	return "<html><body>\n" + strings.Join(body, "\n") + "\n</body></html>"
}

func testLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.New(logger.LevelDebug, &buf), &buf
}

func isElementNamed(n *html.Node, name string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == name
}

func mustDate(t *testing.T, text string) time.Time {
	t.Helper()
	d, err := event.ParseDate(text)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", text, err)
	}
	return d
}
