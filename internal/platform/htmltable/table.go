// Package htmltable turns stat tables scraped from provider pages into flat
// header-keyed records.
package htmltable

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Record is one accepted table row. Values is keyed by header label and
// Headers keeps the column order of the source table.
type Record struct {
	Headers []string
	Values  map[string]string
	// Group is the position group label in grouped mode.
	Group string
}

func (r Record) Get(header string) (string, bool) {
	v, ok := r.Values[header]
	return v, ok
}

// Row returns the values in header order.
func (r Record) Row() []string {
	out := make([]string, 0, len(r.Headers))
	for _, h := range r.Headers {
		out = append(out, r.Values[h])
	}
	return out
}

func newRecord(headers, cells []string, group string) Record {
	values := make(map[string]string, len(headers))
	for i, h := range headers {
		values[h] = cells[i]
	}
	return Record{
		Headers: append([]string(nil), headers...),
		Values:  values,
		Group:   group,
	}
}

// ExtractFlat reads the first table in the document. Rows whose cell count
// differs from the header count are dropped. The first cell of each row is
// passed through the team canonicalizer for source.
func ExtractFlat(document string, source string) []Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil
	}

	var headers []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strippedText(th))
	})
	if len(headers) == 0 {
		return nil
	}

	rows := table.Find("tr")
	if rows.Length() > 0 && rows.First().Find("th").Length() > 0 {
		rows = rows.Slice(1, goquery.ToEnd)
	}

	var out []Record
	rows.Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strippedText(td))
		})
		if len(cells) != len(headers) {
			return
		}
		cells[0] = Canonicalize(source, cells[0])
		out = append(out, newRecord(headers, cells, ""))
	})
	return out
}

var trackedGroups = map[string]struct{}{
	"Tight End":     {},
	"Wide Receiver": {},
	"Running Back":  {},
	"Quarterback":   {},
}

// ExtractGrouped reads position-segmented tables made of paired thead/tbody
// blocks. Only quarterback, running back, wide receiver and tight end blocks
// are kept. The first header is relabeled "Player" and the last "Total".
func ExtractGrouped(document string) []Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil
	}

	heads := table.Find("thead")
	bodies := table.Find("tbody")
	pairs := heads.Length()
	if bodies.Length() < pairs {
		pairs = bodies.Length()
	}

	var out []Record
	for i := 0; i < pairs; i++ {
		ths := heads.Eq(i).Find("th")
		if ths.Length() == 0 {
			continue
		}
		group := strings.TrimSpace(ths.First().Text())
		if _, ok := trackedGroups[group]; !ok {
			continue
		}

		headers := make([]string, 0, ths.Length())
		ths.Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, strippedText(th))
		})
		headers[0] = "Player"
		headers[len(headers)-1] = "Total"

		bodies.Eq(i).Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := make([]string, 0, len(headers))
			tr.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
				cells = append(cells, cellText(td))
				return len(cells) < len(headers)
			})
			if len(cells) == len(headers) {
				out = append(out, newRecord(headers, cells, group))
			}
		})
	}
	return out
}

// cellText prefers a nested link, then bold text, then the cell itself.
func cellText(td *goquery.Selection) string {
	if a := td.Find("a").First(); a.Length() > 0 {
		return strippedText(a)
	}
	if b := td.Find("b").First(); b.Length() > 0 {
		return strippedText(b)
	}
	return strippedText(td)
}

// strippedText joins every descendant text node after trimming it.
func strippedText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(n, &b)
	}
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(strings.TrimSpace(n.Data))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
