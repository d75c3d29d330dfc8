package scrape

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// parseFighterPage extracts the fighter name and the first match table from
// a fighter page. The name comes from the <title> element, which the site
// renders as "<Fighter Name> BJJ Heroes ...".
func parseFighterPage(r io.Reader) (string, []map[string]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", nil, err
	}

	name := "Unknown"
	if title := textOf(findNode(doc, "title")); title != "" {
		if i := strings.Index(title, "BJJ Heroes"); i > 0 {
			if n := strings.TrimSpace(title[:i]); n != "" {
				name = n
			}
		} else {
			name = title
		}
	}

	table := findNode(doc, "table")
	if table == nil {
		return name, nil, nil
	}

	rows := findAll(table, "tr")
	if len(rows) < 2 {
		return name, nil, nil
	}

	var headers []string
	for _, cell := range cellsOf(rows[0]) {
		headers = append(headers, textOf(cell))
	}

	var matches []map[string]string
	for _, row := range rows[1:] {
		cells := cellsOf(row)
		if len(cells) < len(headers) {
			continue
		}
		match := make(map[string]string, len(headers))
		for i, h := range headers {
			match[h] = textOf(cells[i])
		}
		matches = append(matches, match)
	}
	return name, matches, nil
}

// findNode returns the first element named tag in depth-first order.
func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every element named tag under n in depth-first order.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, tag)...)
	}
	return out
}

// cellsOf returns the th/td children of a table row.
func cellsOf(row *html.Node) []*html.Node {
	var cells []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, c)
		}
	}
	return cells
}

// textOf returns the concatenated, whitespace-collapsed text of a node.
func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
