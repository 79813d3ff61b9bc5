package usecase

import (
	"context"
	"fmt"
	"sync"

	sonic "github.com/bytedance/sonic"
)

// stubFetcher serves canned documents by URL.
type stubFetcher struct {
	mu       sync.Mutex
	docs     map[string]string
	failures map[string]error
	calls    []string
}

func newStubFetcher(docs map[string]string) *stubFetcher {
	return &stubFetcher{docs: docs, failures: map[string]error{}}
}

func (f *stubFetcher) fail(url string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[url] = err
}

func (f *stubFetcher) get(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	err, failing := f.failures[url]
	doc, ok := f.docs[url]
	f.mu.Unlock()

	if failing {
		return "", fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: no document for %s", ErrDependencyUnavailable, url)
	}
	return doc, nil
}

func (f *stubFetcher) FetchJSON(ctx context.Context, _ string, url string, target any) error {
	doc, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	return sonic.UnmarshalString(doc, target)
}

func (f *stubFetcher) FetchHTML(ctx context.Context, _ string, url string) (string, error) {
	return f.get(ctx, url)
}

const (
	teamsURL       = "https://feeds.test/standings"
	rosterURL      = "https://feeds.test/roster/{team_id}"
	gameLogURL     = "https://feeds.test/gamelog/{player_id}"
	scoreboardURL  = "https://feeds.test/scoreboard/{week}"
	offPassingURL  = "https://pages.test/offense-passing"
	coverageURL    = "https://pages.test/coverage"
	oddsURL        = "https://feeds.test/odds"
	snapCountURL   = "https://pages.test/snap-counts"
	upcomingWeek   = 3
	weeksBackLimit = 1
)

const standingsDoc = `{
  "content": {"standings": {"groups": [
    {"abbreviation": "NFC", "groups": [
      {"abbreviation": "NFC North", "standings": {"entries": [
        {"team": {"id": "9", "displayName": "Green Bay Packers", "name": "Packers", "abbreviation": "GB"}}
      ]}}
    ]},
    {"abbreviation": "AFC", "groups": [
      {"abbreviation": "AFC West", "standings": {"entries": [
        {"team": {"id": 12, "displayName": "Kansas City Chiefs", "name": "Chiefs", "abbreviation": "KC"}}
      ]}}
    ]}
  ]}}
}`

const scoreboardWeek2Doc = `{
  "events": [
    {
      "id": "401",
      "date": "2024-09-15T17:00Z",
      "name": "Kansas City Chiefs at Green Bay Packers",
      "shortName": "KC @ GB",
      "season": {"year": 2024, "type": 2},
      "week": {"number": 2},
      "status": {"type": {"detail": "Final"}},
      "competitions": [{"competitors": [
        {"homeAway": "home", "score": "24", "team": {"abbreviation": "GB"}},
        {"homeAway": "away", "score": "21", "team": {"abbreviation": "KC"}}
      ]}]
    },
    {
      "id": "402",
      "date": "2024-09-15T20:25Z",
      "name": "Somebody at Nobody",
      "shortName": "SB @ NB",
      "season": {"year": 2024, "type": 2},
      "week": {"number": 2},
      "status": {"type": {"detail": "Final"}},
      "competitions": [{"competitors": [
        {"homeAway": "home", "score": "3", "team": {"abbreviation": "NB"}},
        {"homeAway": "away", "score": "0", "team": {"abbreviation": "GB"}}
      ]}]
    }
  ]
}`

const rosterGBDoc = `{
  "team": {"abbreviation": "GB"},
  "athletes": [
    {"position": "offense", "items": [
      {"id": "4036378", "firstName": "Jordan", "lastName": "Love", "displayName": "Jordan Love", "jersey": "10",
       "experience": {"years": 5}, "position": {"abbreviation": "QB"}},
      {"id": "3915511", "firstName": "Josh", "lastName": "Jacobs", "displayName": "Josh Jacobs", "jersey": "8",
       "experience": {"years": 6}, "position": {"abbreviation": "RB"}},
      {"id": "1111", "firstName": "Left", "lastName": "Tackle", "displayName": "Left Tackle", "jersey": "76",
       "experience": {"years": 3}, "position": {"abbreviation": "OT"}}
    ]},
    {"position": "specialTeam", "items": [
      {"id": "2222", "firstName": "Brandon", "lastName": "McManus", "displayName": "Brandon McManus",
       "experience": {"years": 11}, "position": {"abbreviation": "PK"}}
    ]}
  ]
}`

const rosterKCDoc = `{
  "team": {"abbreviation": "KC"},
  "athletes": [
    {"position": "offense", "items": [
      {"id": "3139477", "firstName": "Patrick", "lastName": "Mahomes", "displayName": "Patrick Mahomes", "jersey": "15",
       "experience": {"years": 8}, "position": {"abbreviation": "QB"}}
    ]}
  ]
}`

const gameLogLoveDoc = `{
  "names": ["isStarter", "passingAttempts", "completions", "passingYards", "completionPct", "rushingYards"],
  "seasonTypes": [{"categories": [{"events": [
    {"eventId": "401", "stats": ["true", "34", "22", "1,024", "64.7%", "-"]}
  ]}]}]
}`

const gameLogJacobsDoc = `{
  "names": ["rushingAttempts", "rushingYards"],
  "seasonTypes": [{"categories": [{"events": [
    {"eventId": "401", "stats": ["18", "85"]},
    {"eventId": "999", "stats": ["12", "40"]}
  ]}]}]
}`

const gameLogMahomesDoc = `{
  "names": ["isStarter", "passingYards"],
  "seasonTypes": [{"categories": [{"events": [
    {"eventId": "401", "stats": ["false", "291"]}
  ]}]}]
}`

const offensePassingSumerPage = `<table>
<thead><tr>
  <th>Team</th><th>Att</th><th>Cmp</th><th>Cmp %</th><th>Yds/Att</th><th>Pass Yds</th>
  <th>TD</th><th>INT</th><th>Rate</th><th>Sck</th><th>SckY</th>
</tr></thead>
<tbody>
  <tr><td>Green Bay Packers</td><td>30</td><td>20</td><td>66.7</td><td>7.1</td><td>300</td><td>2</td><td>1</td><td>98.4</td><td>2</td><td>14</td></tr>
  <tr><td>Kansas City Chiefs</td><td>35</td><td>25</td><td>71.4</td><td>8.0</td><td>450</td><td>3</td><td>0</td><td>110.2</td><td>1</td><td>6</td></tr>
  <tr><td>New York Jets</td><td>28</td><td>17</td><td>60.7</td><td>6.0</td><td>250</td><td>1</td><td>2</td><td>75.0</td><td>4</td><td>30</td></tr>
  <tr><td colspan="11">Totals</td></tr>
</tbody>
</table>`

const coverageSchemePage = `<table>
<thead><tr><th>Team</th><th>Man Rate</th><th>Zone Rate</th><th>Middle Closed Rate</th><th>Middle Open Rate</th></tr></thead>
<tbody>
  <tr><td>Packers</td><td>31.5%</td><td>68.5%</td><td>50.1%</td><td>49.9%</td></tr>
</tbody>
</table>`

const oddsDoc = `{
  "lines": [
    {"displayValue": "Week 3", "events": [{"competitions": [{"competitors": [
      {"team": {"abbreviation": "GB"}, "odds": {
        "spread": {"open": {"line": "-2.5", "odds": "-110"}, "close": {"line": "-3", "odds": "-115"}},
        "moneyline": {"open": {"odds": "-135"}, "close": {"odds": "-150"}}
      }},
      {"team": {"abbreviation": "ZZ"}, "odds": {"spread": {"open": {"line": "+2.5"}}}}
    ]}]}]},
    {"displayValue": "Week 4", "events": [{"competitions": [{"competitors": [
      {"team": {"abbreviation": "KC"}, "odds": {"total": {"displayName": "Over", "open": {"line": "47.5"}}}}
    ]}]}]}
  ]
}`

const snapCountPage = `<table>
<thead><tr><th>Quarterback</th><th>Wk 1</th><th>Wk 2</th><th><a href="#">Season</a></th></tr></thead>
<tbody>
  <tr><td><a href="/p/love">Jordan Love</a></td><td>64</td><td>-</td><td>64</td></tr>
  <tr><td><a href="/p/unknown">Backup Guy</a></td><td>3</td><td>0</td><td>3</td></tr>
</tbody>
<thead><tr><th>Kicker</th><th>Wk 1</th><th>Wk 2</th><th>Season</th></tr></thead>
<tbody>
  <tr><td>Brandon McManus</td><td>8</td><td>7</td><td>15</td></tr>
</tbody>
</table>`

func fixtureDocs() map[string]string {
	return map[string]string{
		teamsURL:                               standingsDoc,
		expandURL(scoreboardURL, "week", "2"):  scoreboardWeek2Doc,
		expandURL(rosterURL, "team_id", "9"):   rosterGBDoc,
		expandURL(rosterURL, "team_id", "12"):  rosterKCDoc,
		expandURL(gameLogURL, "player_id", "4036378"): gameLogLoveDoc,
		expandURL(gameLogURL, "player_id", "3915511"): gameLogJacobsDoc,
		expandURL(gameLogURL, "player_id", "3139477"): gameLogMahomesDoc,
		offPassingURL: offensePassingSumerPage,
		coverageURL:   coverageSchemePage,
		oddsURL:       oddsDoc,
		snapCountURL:  snapCountPage,
	}
}
