package scrape

import (
	"strings"
	"testing"
)

const fighterPageHTML = `<!DOCTYPE html>
<html><head><title>Roger Gracie BJJ Heroes - the jiu jitsu encyclopedia</title></head>
<body>
<h1>Roger Gracie</h1>
<table>
<tr><th>ID</th><th>Opponent</th><th>W/L</th><th>Method</th><th>Competition</th><th>Weight</th><th>Stage</th><th>Year</th></tr>
<tr><td>101</td><td>Jacare Souza</td><td>W</td><td>Choke from back</td><td>World Championship</td><td>ABS</td><td>F</td><td>2004</td></tr>
<tr><td>102</td><td>Marcus Almeida</td><td>L</td><td>Pts: 2x0</td><td>World Championship</td><td>ABS</td><td>SF</td><td>2017</td></tr>
</table>
</body></html>`

func TestParseFighterPage(t *testing.T) {
	name, matches, err := parseFighterPage(strings.NewReader(fighterPageHTML))
	if err != nil {
		t.Fatalf("parseFighterPage: %v", err)
	}
	if name != "Roger Gracie" {
		t.Errorf("name = %q, want Roger Gracie", name)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}

	first := matches[0]
	want := map[string]string{
		"ID":          "101",
		"Opponent":    "Jacare Souza",
		"W/L":         "W",
		"Method":      "Choke from back",
		"Competition": "World Championship",
		"Stage":       "F",
		"Year":        "2004",
	}
	for col, v := range want {
		if first[col] != v {
			t.Errorf("first[%q] = %q, want %q", col, first[col], v)
		}
	}
	if matches[1]["Opponent"] != "Marcus Almeida" {
		t.Errorf("second opponent = %q", matches[1]["Opponent"])
	}
}

func TestParseFighterPage_NoTable(t *testing.T) {
	page := `<html><head><title>Some Fighter BJJ Heroes</title></head><body><p>No record yet.</p></body></html>`
	name, matches, err := parseFighterPage(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parseFighterPage: %v", err)
	}
	if name != "Some Fighter" {
		t.Errorf("name = %q", name)
	}
	if matches != nil {
		t.Errorf("matches = %v, want none", matches)
	}
}

// Rows with fewer cells than the header are layout noise and are dropped.
func TestParseFighterPage_ShortRowsSkipped(t *testing.T) {
	page := `<html><head><title>X BJJ Heroes</title></head><body><table>
<tr><th>ID</th><th>Opponent</th><th>W/L</th></tr>
<tr><td colspan="3">advert</td></tr>
<tr><td>1</td><td>Y</td><td>W</td></tr>
</table></body></html>`
	_, matches, err := parseFighterPage(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parseFighterPage: %v", err)
	}
	if len(matches) != 1 || matches[0]["Opponent"] != "Y" {
		t.Errorf("matches = %v, want only the complete row", matches)
	}
}

// Nested markup inside cells flattens to collapsed text.
func TestParseFighterPage_NestedCellMarkup(t *testing.T) {
	page := `<html><head><title>X BJJ Heroes</title></head><body><table>
<tr><th>Opponent</th></tr>
<tr><td><a href="/x"><span>Jo</span> <b>Smith</b></a></td></tr>
</table></body></html>`
	_, matches, err := parseFighterPage(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parseFighterPage: %v", err)
	}
	if len(matches) != 1 || matches[0]["Opponent"] != "Jo Smith" {
		t.Errorf("matches = %v", matches)
	}
}

func TestParseFighterPage_TitleWithoutSiteSuffix(t *testing.T) {
	page := `<html><head><title>Plain Title</title></head><body></body></html>`
	name, _, err := parseFighterPage(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parseFighterPage: %v", err)
	}
	if name != "Plain Title" {
		t.Errorf("name = %q", name)
	}
}
