package htmltable

import (
	"testing"
)

const nflPassingPage = `
<html><body>
<table>
  <thead>
    <tr><th>Team</th><th>Att</th><th>Cmp</th><th>Pass Yds</th></tr>
  </thead>
  <tbody>
    <tr><td><span>Packers</span> <span>Packers</span></td><td>30</td><td>20</td><td>4,105</td></tr>
    <tr><td colspan="4">spacer</td></tr>
    <tr><td>ChiefsChiefs</td><td>35</td><td>25</td><td>4,300</td></tr>
    <tr><td>Bears</td><td>31</td><td>19</td><td>3,900</td><td>extra</td></tr>
  </tbody>
</table>
<table><tr><th>Ignored</th></tr><tr><td>x</td></tr></table>
</body></html>`

func TestExtractFlat_AcceptsOnlyFullWidthRows(t *testing.T) {
	t.Parallel()

	records := ExtractFlat(nflPassingPage, SourceNFL)
	if len(records) != 2 {
		t.Fatalf("unexpected record count: got=%d want=2", len(records))
	}

	for _, rec := range records {
		if len(rec.Values) != 4 {
			t.Fatalf("unexpected key count: got=%d want=4 (%v)", len(rec.Values), rec.Values)
		}
		if len(rec.Headers) != 4 || rec.Headers[0] != "Team" || rec.Headers[3] != "Pass Yds" {
			t.Fatalf("unexpected headers: %v", rec.Headers)
		}
	}

	if got, _ := records[0].Get("Team"); got != "Packers" {
		t.Fatalf("unexpected canonical team: %q", got)
	}
	if got, _ := records[1].Get("Team"); got != "Chiefs" {
		t.Fatalf("unexpected canonical team: %q", got)
	}
	if got, _ := records[0].Get("Pass Yds"); got != "4,105" {
		t.Fatalf("unexpected pass yards: %q", got)
	}
	row := records[1].Row()
	if len(row) != 4 || row[1] != "35" {
		t.Fatalf("unexpected ordered row: %v", row)
	}
}

func TestExtractFlat_HeaderRowWithoutThead(t *testing.T) {
	t.Parallel()

	page := `<table>
<tr><th>Team</th><th>Season</th><th>EPA/Play</th></tr>
<tr><td>Green Bay Packers</td><td>2024</td><td>0.12</td></tr>
</table>`

	records := ExtractFlat(page, SourceSumer)
	if len(records) != 1 {
		t.Fatalf("unexpected record count: got=%d want=1", len(records))
	}
	if got, _ := records[0].Get("Team"); got != "Packers" {
		t.Fatalf("unexpected canonical team: %q", got)
	}
}

func TestExtractFlat_NoTable(t *testing.T) {
	t.Parallel()

	if got := ExtractFlat("<html><body><p>maintenance</p></body></html>", SourceNFL); len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
	if got := ExtractFlat("", SourceSharp); len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

const snapCountPage = `
<table>
  <thead><tr><th>Quarterback</th><th>Wk 1</th><th>Wk 2</th><th><a href="#">Season</a></th></tr></thead>
  <tbody>
    <tr><td><a href="/p/1">Jordan Love</a> GB</td><td><b>64</b></td><td>70</td><td>134</td></tr>
    <tr><td>short row</td><td>1</td></tr>
  </tbody>
  <thead><tr><th>Kicker</th><th>Wk 1</th><th>Wk 2</th><th>Season</th></tr></thead>
  <tbody>
    <tr><td>Some Kicker</td><td>5</td><td>6</td><td>11</td></tr>
  </tbody>
  <thead><tr><th>Tight End</th><th>Wk 1</th><th>Wk 2</th><th>Season</th></tr></thead>
  <tbody>
    <tr><td><a href="/p/2">Tucker Kraft</a></td><td>50</td><td>48</td><td>98</td></tr>
  </tbody>
</table>`

func TestExtractGrouped_FiltersGroupsAndRelabelsHeaders(t *testing.T) {
	t.Parallel()

	records := ExtractGrouped(snapCountPage)
	if len(records) != 2 {
		t.Fatalf("unexpected record count: got=%d want=2", len(records))
	}

	first := records[0]
	if first.Group != "Quarterback" {
		t.Fatalf("unexpected group: %q", first.Group)
	}
	if first.Headers[0] != "Player" || first.Headers[len(first.Headers)-1] != "Total" {
		t.Fatalf("unexpected headers: %v", first.Headers)
	}
	if got, _ := first.Get("Player"); got != "Jordan Love" {
		t.Fatalf("expected link text, got %q", got)
	}
	if got, _ := first.Get("Wk 1"); got != "64" {
		t.Fatalf("expected bold text, got %q", got)
	}
	if got, _ := first.Get("Total"); got != "134" {
		t.Fatalf("unexpected total: %q", got)
	}

	if records[1].Group != "Tight End" {
		t.Fatalf("unexpected group: %q", records[1].Group)
	}
}

func TestExtractGrouped_NoTable(t *testing.T) {
	t.Parallel()

	if got := ExtractGrouped("<div></div>"); len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}
