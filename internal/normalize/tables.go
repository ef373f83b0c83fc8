// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

var errNoTable = errors.New("no table element in fragment")

// TableRows parses an HTML table fragment into a row-major cell grid. The
// first <table> element in the fragment is used; <th> and <td> cells are
// both treated as data. Cell text is whitespace-collapsed.
func TableRows(fragment string) ([][]string, error) {
	if !strings.Contains(strings.ToLower(fragment), "<table") {
		return nil, errNoTable
	}

	// html.Parse wraps fragments in html/body, which is fine here: we only
	// look for the first table element in the resulting tree.
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}

	table := findElement(doc, "table")
	if table == nil {
		return nil, errNoTable
	}

	var rows [][]string
	for _, tr := range descendants(table, "tr") {
		var cells []string
		for _, cell := range childElements(tr) {
			if cell.Data == "td" || cell.Data == "th" {
				cells = append(cells, collapseSpace(nodeText(cell)))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	if len(rows) == 0 {
		return nil, errNoTable
	}
	return rows, nil
}

// findElement returns the first element named tag in depth-first order.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// descendants returns every element named tag below n in document order.
func descendants(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// childElements returns the direct element children of n.
func childElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// nodeText concatenates all text below n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// collapseSpace trims s and collapses internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
